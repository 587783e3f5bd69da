package metrics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"mes-golang/internal/storage"
)

func entryWithEfficiency(actual, target int) *storage.ProductionLogEntry {
	return &storage.ProductionLogEntry{ActualQuantity: actual, TargetQuantity: target}
}

func TestRunningMean_SkipsZeroEfficiency(t *testing.T) {
	var g GroupTotals

	g = g.add(entryWithEfficiency(50, 100))  // 50%
	g = g.add(entryWithEfficiency(0, 100))   // 0%, excluded from the mean
	g = g.add(entryWithEfficiency(120, 100)) // 120%
	g = g.add(entryWithEfficiency(80, 100))  // 80%
	g = g.add(entryWithEfficiency(30, 0))    // no target, excluded

	assert.Equal(t, 5, g.LogCount)
	assert.InDelta(t, (50.0+120.0+80.0)/3, g.AvgEfficiency, 0.0001)
}

func TestRunningMean_OrderInvariant(t *testing.T) {
	entries := []*storage.ProductionLogEntry{
		entryWithEfficiency(50, 100),
		entryWithEfficiency(0, 100),
		entryWithEfficiency(120, 100),
		entryWithEfficiency(80, 100),
		entryWithEfficiency(95, 100),
		entryWithEfficiency(30, 0),
	}

	var reference GroupTotals
	for _, e := range entries {
		reference = reference.add(e)
	}

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		shuffled := make([]*storage.ProductionLogEntry, len(entries))
		copy(shuffled, entries)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		var g GroupTotals
		for _, e := range shuffled {
			g = g.add(e)
		}

		assert.InDelta(t, reference.AvgEfficiency, g.AvgEfficiency, 0.0001)
		assert.Equal(t, reference.LogCount, g.LogCount)
	}
}

func TestGroupAccumulator_DropsEmptyKeys(t *testing.T) {
	acc := newGroupAccumulator(func(e *storage.ProductionLogEntry) string { return e.OperatorID })

	acc.add(&storage.ProductionLogEntry{OperatorID: "OP-1", ActualQuantity: 10})
	acc.add(&storage.ProductionLogEntry{OperatorID: "", ActualQuantity: 99})

	groups := acc.finalize()
	assert.Len(t, groups, 1)
	assert.Equal(t, "OP-1", groups[0].Key)
	assert.Equal(t, 10, groups[0].Output)
}

func TestGroupAccumulator_SortedByKey(t *testing.T) {
	acc := newGroupAccumulator(func(e *storage.ProductionLogEntry) string { return e.MachineID })

	acc.add(&storage.ProductionLogEntry{MachineID: "M-2"})
	acc.add(&storage.ProductionLogEntry{MachineID: "M-1"})
	acc.add(&storage.ProductionLogEntry{MachineID: "M-3"})
	acc.add(&storage.ProductionLogEntry{MachineID: "M-1"})

	groups := acc.finalize()
	assert.Len(t, groups, 3)
	assert.Equal(t, "M-1", groups[0].Key)
	assert.Equal(t, 2, groups[0].LogCount)
	assert.Equal(t, "M-2", groups[1].Key)
	assert.Equal(t, "M-3", groups[2].Key)
}

func TestRejectionRate(t *testing.T) {
	assert.Equal(t, 10.0, rejectionRate(180, 20))
	assert.Equal(t, 0.0, rejectionRate(0, 0))
	assert.Equal(t, 100.0, rejectionRate(0, 5))
}
