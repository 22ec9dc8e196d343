package valuation

import "github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/model"

// Summarize reduces a list of positions into portfolio-level totals. Any
// filtering (e.g. by platform) is the caller's job. The accumulation is
// commutative, so ordering of the input does not matter, and an empty list
// yields an all-zero summary.
//
// TotalDayGain sums the stored per-position DayChangeVal rather than
// recomputing it from DayChangePct; the refresh path writes both fields from
// the same source so they stay consistent (see DayGainValue).
func Summarize(positions []model.Position) model.PortfolioSummary {
	var totalAssets, totalCost, totalDayGain float64

	for _, p := range positions {
		totalAssets += p.HoldingShares * p.CurrentNav
		totalCost += p.HoldingShares * p.CostPrice
		totalDayGain += p.DayChangeVal
	}

	summary := model.PortfolioSummary{
		TotalAssets:  totalAssets,
		TotalDayGain: totalDayGain,
		HoldingGain:  totalAssets - totalCost,
	}

	// Percent fields are 0 by convention when the denominator is not
	// positive, never NaN or an error.
	if totalCost > 0 {
		summary.HoldingGainPct = summary.HoldingGain / totalCost * 100
	}
	if yesterday := totalAssets - totalDayGain; yesterday > 0 {
		summary.TotalDayGainPct = totalDayGain / yesterday * 100
	}

	return summary
}

// DayGainValue derives the absolute day gain for a position from its current
// market value and the day's percent change. Yesterday's value is
// marketValue / (1 + pct/100), so the gain is the difference. This is the
// single formula used whenever DayChangeVal is written, keeping the stored
// absolute value consistent with the stored percentage.
func DayGainValue(marketValue, dayChangePct float64) float64 {
	denom := 1 + dayChangePct/100
	if denom == 0 {
		return 0
	}
	return marketValue * (dayChangePct / 100) / denom
}
