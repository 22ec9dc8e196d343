package model

// ReturnSeriesPoint is one entry of a daily cumulative-return series as
// delivered by the market data vendor. Values are percentages relative to a
// common (unknown) base; the last point corresponds to the fund's latest NAV.
type ReturnSeriesPoint struct {
	Date                string  // YYYY-MM-DD
	CumulativeReturnPct float64 // e.g. 2.0 for +2%
}

// HistoryRow is one reconstructed row of the historical NAV table.
type HistoryRow struct {
	Date         string  `json:"date"`
	ImpliedNav   float64 `json:"impliedNav"`
	DayChangePct float64 `json:"dayChangePct"`
}
