package metrics

import "math"

// CostRates are the unit-cost constants of the financial impact estimate.
// Rework is costed at half the rejection rate.
type CostRates struct {
	HourlyDowntimeCost    float64
	RejectionCostPerPiece float64
}

func (c CostRates) ReworkCostPerPiece() float64 {
	return c.RejectionCostPerPiece * 0.5
}

// estimateFinancialImpact turns the window's loss totals into currency,
// rounded to whole units.
func estimateFinancialImpact(totalRejections, totalDowntimeMinutes, totalRework int, rates CostRates) FinancialImpact {
	rejectionCost := math.Round(float64(totalRejections) * rates.RejectionCostPerPiece)
	downtimeCost := math.Round(float64(totalDowntimeMinutes) / 60 * rates.HourlyDowntimeCost)
	reworkCost := math.Round(float64(totalRework) * rates.ReworkCostPerPiece())

	return FinancialImpact{
		RejectionCost: rejectionCost,
		DowntimeCost:  downtimeCost,
		ReworkCost:    reworkCost,
		TotalLoss:     rejectionCost + downtimeCost + reworkCost,
	}
}
