package metrics

import (
	"sort"

	"mes-golang/internal/storage"
)

// add folds one log entry into the accumulator and returns the updated value.
// The running efficiency mean only advances on entries with efficiency > 0;
// everything else still counts toward LogCount and the quantity sums.
func (g GroupTotals) add(e *storage.ProductionLogEntry) GroupTotals {
	g.Output += e.ActualQuantity
	g.Target += e.TargetQuantity
	g.Rejections += e.TotalRejectionQuantity
	g.Runtime += e.ActualRuntimeMinutes
	g.Downtime += e.TotalDowntimeMinutes
	g.LogCount++

	if eff := e.EfficiencyPercent(); eff > 0 {
		g.effCount++
		g.AvgEfficiency = (g.AvgEfficiency*float64(g.effCount-1) + eff) / float64(g.effCount)
	}

	return g
}

// groupAccumulator keeps one GroupTotals per key during the single aggregation
// pass. Values are read, folded and written back, never mutated in place.
type groupAccumulator struct {
	keyFn  func(*storage.ProductionLogEntry) string
	groups map[string]GroupTotals
}

func newGroupAccumulator(keyFn func(*storage.ProductionLogEntry) string) *groupAccumulator {
	return &groupAccumulator{
		keyFn:  keyFn,
		groups: make(map[string]GroupTotals),
	}
}

func (a *groupAccumulator) add(e *storage.ProductionLogEntry) {
	key := a.keyFn(e)
	if key == "" {
		return
	}

	g := a.groups[key]
	g.Key = key
	a.groups[key] = g.add(e)
}

// finalize rounds the running means and returns the groups sorted by key.
func (a *groupAccumulator) finalize() []GroupTotals {
	out := make([]GroupTotals, 0, len(a.groups))
	for _, g := range a.groups {
		g.AvgEfficiency = round1(g.AvgEfficiency)
		out = append(out, g)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })

	return out
}

// rejectionRate is rejections over total produced (good + rejected), in percent.
func rejectionRate(output, rejections int) float64 {
	total := output + rejections
	if total <= 0 {
		return 0
	}
	return round1(100 * float64(rejections) / float64(total))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
