package metrics

import (
	"sort"

	"mes-golang/internal/storage"
)

// downtimeAnalyzer flattens the embedded downtime events of every log entry
// into reason, machine, shift and category breakdowns. Events with zero or
// negative duration are ignored.
type downtimeAnalyzer struct {
	totalMinutes int

	byReason   map[string]*reasonStats
	byMachine  map[string]*downtimeStats
	byShift    map[string]*downtimeStats
	byCategory map[string]*categoryStats
}

type reasonStats struct {
	minutes     int
	occurrences int
	category    string
}

type downtimeStats struct {
	minutes     int
	occurrences int
	reasons     map[string]int
}

type categoryStats struct {
	minutes     int
	occurrences int
}

func newDowntimeAnalyzer() *downtimeAnalyzer {
	return &downtimeAnalyzer{
		byReason:   make(map[string]*reasonStats),
		byMachine:  make(map[string]*downtimeStats),
		byShift:    make(map[string]*downtimeStats),
		byCategory: make(map[string]*categoryStats),
	}
}

func (a *downtimeAnalyzer) add(e *storage.ProductionLogEntry) {
	for _, event := range e.DowntimeEvents {
		if event.DurationMinutes <= 0 {
			continue
		}

		a.totalMinutes += event.DurationMinutes

		rs := a.byReason[event.Reason]
		if rs == nil {
			rs = &reasonStats{category: CategorizeDowntime(event.Reason)}
			a.byReason[event.Reason] = rs
		}
		rs.minutes += event.DurationMinutes
		rs.occurrences++

		a.addStats(a.byMachine, e.MachineID, event)
		a.addStats(a.byShift, e.Shift, event)

		cs := a.byCategory[rs.category]
		if cs == nil {
			cs = &categoryStats{}
			a.byCategory[rs.category] = cs
		}
		cs.minutes += event.DurationMinutes
		cs.occurrences++
	}
}

func (a *downtimeAnalyzer) addStats(m map[string]*downtimeStats, key string, event storage.DowntimeEvent) {
	if key == "" {
		key = "Unknown"
	}

	ds := m[key]
	if ds == nil {
		ds = &downtimeStats{reasons: make(map[string]int)}
		m[key] = ds
	}
	ds.minutes += event.DurationMinutes
	ds.occurrences++
	ds.reasons[event.Reason] += event.DurationMinutes
}

// losses returns the reason Pareto sorted descending by minutes. Percentages
// stay zero when the window saw no downtime at all.
func (a *downtimeAnalyzer) losses(paidCapacityMinutes int) []DowntimeLoss {
	out := make([]DowntimeLoss, 0, len(a.byReason))
	for reason, rs := range a.byReason {
		out = append(out, DowntimeLoss{
			Reason:        reason,
			Category:      rs.category,
			Minutes:       rs.minutes,
			Hours:         round1(float64(rs.minutes) / 60),
			PctOfDowntime: a.pctOfTotal(rs.minutes),
			PctOfCapacity: pctOf(rs.minutes, paidCapacityMinutes),
			Occurrences:   rs.occurrences,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Minutes > out[j].Minutes })

	return out
}

func (a *downtimeAnalyzer) machineBreakdown(names nameLookup) []MachineDowntime {
	out := make([]MachineDowntime, 0, len(a.byMachine))
	for machineID, ds := range a.byMachine {
		out = append(out, MachineDowntime{
			MachineID:     machineID,
			MachineName:   names.resolve(machineID),
			Minutes:       ds.minutes,
			Occurrences:   ds.occurrences,
			TopReason:     topReason(ds.reasons),
			PctOfDowntime: a.pctOfTotal(ds.minutes),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Minutes > out[j].Minutes })

	return out
}

func (a *downtimeAnalyzer) shiftBreakdown() []ShiftDowntime {
	out := make([]ShiftDowntime, 0, len(a.byShift))
	for shift, ds := range a.byShift {
		out = append(out, ShiftDowntime{
			Shift:         shift,
			Minutes:       ds.minutes,
			Occurrences:   ds.occurrences,
			TopReason:     topReason(ds.reasons),
			PctOfDowntime: a.pctOfTotal(ds.minutes),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Minutes > out[j].Minutes })

	return out
}

func (a *downtimeAnalyzer) categoryBreakdown() []CategoryDowntime {
	out := make([]CategoryDowntime, 0, len(a.byCategory))
	for category, cs := range a.byCategory {
		out = append(out, CategoryDowntime{
			Category:      category,
			Minutes:       cs.minutes,
			Occurrences:   cs.occurrences,
			PctOfDowntime: a.pctOfTotal(cs.minutes),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Minutes > out[j].Minutes })

	return out
}

func (a *downtimeAnalyzer) pctOfTotal(minutes int) float64 {
	return pctOf(minutes, a.totalMinutes)
}

func pctOf(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return round1(100 * float64(part) / float64(whole))
}

func topReason(reasons map[string]int) string {
	var top string
	var topMinutes int
	for reason, minutes := range reasons {
		if minutes > topMinutes || (minutes == topMinutes && (top == "" || reason < top)) {
			top = reason
			topMinutes = minutes
		}
	}
	return top
}
