package metrics

import (
	"math"
	"strconv"
	"strings"

	"mes-golang/internal/storage"
)

// DefaultShiftMinutes is the paid shift length assumed when a log entry carries
// no shift start/end times. 11.5 hours, overridable through config.
const DefaultShiftMinutes = 690

const minutesPerDay = 1440

// paidCapacityMinutes derives the paid capacity of a single log entry. Shifts
// crossing midnight come out negative from the raw subtraction and wrap by one
// day.
func paidCapacityMinutes(e *storage.ProductionLogEntry, defaultShift int) int {
	start, okStart := parseClockMinutes(e.ShiftStartTime)
	end, okEnd := parseClockMinutes(e.ShiftEndTime)
	if !okStart || !okEnd {
		return defaultShift
	}

	duration := end - start
	if duration < 0 {
		duration += minutesPerDay
	}
	return duration
}

// parseClockMinutes parses "HH:MM" into minutes since midnight.
func parseClockMinutes(clock string) (int, bool) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 || hours > 23 {
		return 0, false
	}
	mins, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || mins < 0 || mins > 59 {
		return 0, false
	}

	return hours*60 + mins, true
}

// utilizationPercent is productive runtime over paid capacity, clamped to 100.
func utilizationPercent(runtimeMinutes, capacityMinutes int) float64 {
	if capacityMinutes <= 0 {
		return 0
	}
	pct := round1(100 * float64(runtimeMinutes) / float64(capacityMinutes))
	return math.Min(pct, 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
