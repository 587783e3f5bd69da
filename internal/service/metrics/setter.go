package metrics

import (
	"sort"

	"mes-golang/internal/storage"
)

const approvalDelayWeight = 0.5

type setterAccumulator struct {
	setupCount  int
	durations   []float64
	delays      []float64
	repeatCount int
}

// scoreSetters derives one composite efficiency score per setter. Lower is
// better: it is average setup duration plus half the average first-piece
// approval delay plus a penalty scaled by the share of repeated setups.
func scoreSetters(setups []*storage.SetupActivityEntry, names nameLookup) []SetterPerformance {
	tracker := newRepeatSetupTracker()
	accs := make(map[string]*setterAccumulator)

	for _, s := range setups {
		acc := accs[s.SetterID]
		if acc == nil {
			acc = &setterAccumulator{}
			accs[s.SetterID] = acc
		}

		acc.setupCount++

		if s.SetupDurationMinutes > 0 {
			acc.durations = append(acc.durations, float64(s.SetupDurationMinutes))
		}

		if s.SetupEndTime != nil && s.FirstPieceApprovalTime != nil {
			delay := s.FirstPieceApprovalTime.Sub(*s.SetupEndTime).Minutes()
			if delay >= 0 {
				acc.delays = append(acc.delays, delay)
			}
		}

		if s.SetupStartTime != nil {
			if tracker.observe(s.ItemCode, s.WorkOrderID, *s.SetupStartTime) {
				acc.repeatCount++
			}
		}
	}

	out := make([]SetterPerformance, 0, len(accs))
	for setterID, acc := range accs {
		avgDuration := mean(acc.durations)
		avgDelay := mean(acc.delays)

		var repeatPenalty float64
		if acc.setupCount > 0 {
			repeatPenalty = float64(acc.repeatCount) / float64(acc.setupCount) * 10
		}

		score := avgDuration + approvalDelayWeight*avgDelay + repeatPenalty

		out = append(out, SetterPerformance{
			SetterID:         setterID,
			SetterName:       names.resolve(setterID),
			SetupCount:       acc.setupCount,
			AvgSetupMinutes:  round1(avgDuration),
			AvgApprovalDelay: round1(avgDelay),
			RepeatCount:      acc.repeatCount,
			EfficiencyScore:  round1(score),
		})
	}

	// Ascending: the lowest scores are the best setters.
	sort.Slice(out, func(i, j int) bool {
		if out[i].EfficiencyScore != out[j].EfficiencyScore {
			return out[i].EfficiencyScore < out[j].EfficiencyScore
		}
		return out[i].SetterID < out[j].SetterID
	})

	for i := range out {
		out[i].Rank = tertileRank(i, len(out))
	}

	return out
}
