package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mes-golang/internal/storage"
)

func logWithEvents(machineID, shift string, events ...storage.DowntimeEvent) *storage.ProductionLogEntry {
	return &storage.ProductionLogEntry{
		MachineID:      machineID,
		Shift:          shift,
		DowntimeEvents: events,
	}
}

func TestDowntimeAnalyzer_ReasonPareto(t *testing.T) {
	analyzer := newDowntimeAnalyzer()

	analyzer.add(logWithEvents("M-1", "Day",
		storage.DowntimeEvent{Reason: "Tool change", DurationMinutes: 30},
		storage.DowntimeEvent{Reason: "Power failure", DurationMinutes: 60},
	))
	analyzer.add(logWithEvents("M-2", "Night",
		storage.DowntimeEvent{Reason: "Tool change", DurationMinutes: 20},
		storage.DowntimeEvent{Reason: "Zero event", DurationMinutes: 0}, // ignored
	))

	losses := analyzer.losses(1000)

	assert.Len(t, losses, 2)

	assert.Equal(t, "Power failure", losses[0].Reason)
	assert.Equal(t, CategoryElectrical, losses[0].Category)
	assert.Equal(t, 60, losses[0].Minutes)
	assert.Equal(t, 1.0, losses[0].Hours)
	assert.Equal(t, 54.5, losses[0].PctOfDowntime) // 60/110
	assert.Equal(t, 6.0, losses[0].PctOfCapacity)  // 60/1000
	assert.Equal(t, 1, losses[0].Occurrences)

	assert.Equal(t, "Tool change", losses[1].Reason)
	assert.Equal(t, CategoryTooling, losses[1].Category)
	assert.Equal(t, 50, losses[1].Minutes)
	assert.Equal(t, 2, losses[1].Occurrences)

	// Sorted descending, percentages do not exceed 100 in total.
	assert.GreaterOrEqual(t, losses[0].Minutes, losses[1].Minutes)
	assert.LessOrEqual(t, losses[0].PctOfDowntime+losses[1].PctOfDowntime, 100.0)
}

func TestDowntimeAnalyzer_MachineAndShiftBreakdowns(t *testing.T) {
	analyzer := newDowntimeAnalyzer()

	analyzer.add(logWithEvents("M-1", "Day",
		storage.DowntimeEvent{Reason: "Tool change", DurationMinutes: 45},
		storage.DowntimeEvent{Reason: "Power failure", DurationMinutes: 15},
	))
	analyzer.add(logWithEvents("M-1", "Night",
		storage.DowntimeEvent{Reason: "Power failure", DurationMinutes: 40},
	))

	machines := analyzer.machineBreakdown(nameLookup{"M-1": "Lathe 1"})
	assert.Len(t, machines, 1)
	assert.Equal(t, "Lathe 1", machines[0].MachineName)
	assert.Equal(t, 100, machines[0].Minutes)
	assert.Equal(t, 3, machines[0].Occurrences)
	// Power failure accumulates 55 min across shifts, tool change only 45.
	assert.Equal(t, "Power failure", machines[0].TopReason)

	shifts := analyzer.shiftBreakdown()
	assert.Len(t, shifts, 2)
	assert.Equal(t, "Day", shifts[0].Shift)
	assert.Equal(t, 60, shifts[0].Minutes)
	assert.Equal(t, "Tool change", shifts[0].TopReason)
}

func TestDowntimeAnalyzer_CategoryRollup(t *testing.T) {
	analyzer := newDowntimeAnalyzer()

	analyzer.add(logWithEvents("M-1", "Day",
		storage.DowntimeEvent{Reason: "Tool change", DurationMinutes: 30},
		storage.DowntimeEvent{Reason: "Insert wear", DurationMinutes: 20},
		storage.DowntimeEvent{Reason: "act of god", DurationMinutes: 10},
	))

	categories := analyzer.categoryBreakdown()

	assert.Len(t, categories, 2)
	assert.Equal(t, CategoryTooling, categories[0].Category)
	assert.Equal(t, 50, categories[0].Minutes)
	assert.Equal(t, CategoryOther, categories[1].Category)
	assert.Equal(t, 10, categories[1].Minutes)
}

func TestDowntimeAnalyzer_NoDowntimeMeansZeroPercentages(t *testing.T) {
	analyzer := newDowntimeAnalyzer()
	analyzer.add(logWithEvents("M-1", "Day"))

	assert.Empty(t, analyzer.losses(1380))
	assert.Empty(t, analyzer.machineBreakdown(nameLookup{}))
	assert.Equal(t, 0.0, analyzer.pctOfTotal(0))
}
