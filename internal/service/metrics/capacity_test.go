package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mes-golang/internal/storage"
)

func TestParseClockMinutes(t *testing.T) {
	tests := []struct {
		clock   string
		minutes int
		ok      bool
	}{
		{"00:00", 0, true},
		{"08:30", 510, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"08:60", 0, false},
		{"", 0, false},
		{"830", 0, false},
	}

	for _, tt := range tests {
		minutes, ok := parseClockMinutes(tt.clock)
		assert.Equal(t, tt.ok, ok, "clock %q", tt.clock)
		assert.Equal(t, tt.minutes, minutes, "clock %q", tt.clock)
	}
}

func TestPaidCapacityMinutes_DefaultWhenTimesMissing(t *testing.T) {
	entry := &storage.ProductionLogEntry{}
	assert.Equal(t, 690, paidCapacityMinutes(entry, DefaultShiftMinutes))

	onlyStart := &storage.ProductionLogEntry{ShiftStartTime: "08:00"}
	assert.Equal(t, 690, paidCapacityMinutes(onlyStart, DefaultShiftMinutes))
}

func TestPaidCapacityMinutes_DayShift(t *testing.T) {
	entry := &storage.ProductionLogEntry{ShiftStartTime: "08:00", ShiftEndTime: "19:30"}
	assert.Equal(t, 690, paidCapacityMinutes(entry, DefaultShiftMinutes))
}

func TestPaidCapacityMinutes_OvernightWrap(t *testing.T) {
	entry := &storage.ProductionLogEntry{ShiftStartTime: "22:00", ShiftEndTime: "06:00"}
	assert.Equal(t, 480, paidCapacityMinutes(entry, DefaultShiftMinutes))
}

func TestUtilizationPercent(t *testing.T) {
	assert.Equal(t, 65.2, utilizationPercent(900, 1380))
	assert.Equal(t, 0.0, utilizationPercent(500, 0))

	// Runtime above capacity clamps at 100.
	assert.Equal(t, 100.0, utilizationPercent(2000, 1380))
}
