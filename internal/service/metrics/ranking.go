package metrics

import (
	"sort"
	"time"

	"github.com/samber/lo"
)

const (
	RankHigh   = "high"
	RankMedium = "medium"
	RankLow    = "low"
)

const (
	repeatDowntimeMinOccurrences = 3
	repeatRejectionMinQuantity   = 10
	repeatOffenderLimit          = 5
	repeatSetupWindowHours       = 24
)

// tertileRank splits an already-sorted list into thirds: the first ⌈n/3⌉
// entries rank high, the next ⌈n/3⌉ medium, the rest low. The caller decides
// which sort direction means "better".
func tertileRank(index, total int) string {
	if total <= 0 {
		return RankLow
	}

	limit := (total + 2) / 3
	switch {
	case index < limit:
		return RankHigh
	case index < 2*limit:
		return RankMedium
	default:
		return RankLow
	}
}

// repeatDowntimeOffenders picks machines that went down at least three times,
// worst first, capped at five.
func repeatDowntimeOffenders(byMachine []MachineDowntime) []RepeatDowntimeOffender {
	offenders := lo.FilterMap(byMachine, func(md MachineDowntime, _ int) (RepeatDowntimeOffender, bool) {
		if md.Occurrences < repeatDowntimeMinOccurrences {
			return RepeatDowntimeOffender{}, false
		}
		return RepeatDowntimeOffender{
			MachineID:   md.MachineID,
			MachineName: md.MachineName,
			Occurrences: md.Occurrences,
			TotalMin:    md.Minutes,
		}, true
	})

	sort.Slice(offenders, func(i, j int) bool { return offenders[i].TotalMin > offenders[j].TotalMin })

	if len(offenders) > repeatOffenderLimit {
		offenders = offenders[:repeatOffenderLimit]
	}
	return offenders
}

// repeatRejectionOffenders picks items with at least ten rejections in the
// window, worst first, capped at five.
func repeatRejectionOffenders(byItem []GroupTotals) []RepeatRejectionOffender {
	offenders := lo.FilterMap(byItem, func(g GroupTotals, _ int) (RepeatRejectionOffender, bool) {
		if g.Rejections < repeatRejectionMinQuantity {
			return RepeatRejectionOffender{}, false
		}
		return RepeatRejectionOffender{
			Item:            g.Key,
			TotalRejections: g.Rejections,
			LogCount:        g.LogCount,
		}, true
	})

	sort.Slice(offenders, func(i, j int) bool {
		return offenders[i].TotalRejections > offenders[j].TotalRejections
	})

	if len(offenders) > repeatOffenderLimit {
		offenders = offenders[:repeatOffenderLimit]
	}
	return offenders
}

// repeatSetupTracker detects repeated setups of the same item/work-order pair
// within a trailing 24-hour window. The per-key history grows across the whole
// analysis window regardless of whether a setup matched.
type repeatSetupTracker struct {
	history map[string][]time.Time
}

func newRepeatSetupTracker() *repeatSetupTracker {
	return &repeatSetupTracker{history: make(map[string][]time.Time)}
}

// observe records one setup start and reports whether any earlier setup of the
// same key happened within the last 24 hours.
func (t *repeatSetupTracker) observe(itemCode, workOrderID string, start time.Time) bool {
	key := itemCode + "|" + workOrderID

	repeat := false
	for _, prior := range t.history[key] {
		hours := start.Sub(prior).Hours()
		if hours >= 0 && hours <= repeatSetupWindowHours {
			repeat = true
			break
		}
	}

	t.history[key] = append(t.history[key], start)

	return repeat
}
