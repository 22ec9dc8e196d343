package model

// PortfolioSummary represents the aggregated state of a set of positions.
// It is recomputed on every read from the current position list and is
// never persisted. All values are raw signed numbers; formatting is a
// presentation concern.
type PortfolioSummary struct {
	TotalAssets     float64 `json:"totalAssets"`     // Current market value
	TotalDayGain    float64 `json:"totalDayGain"`    // Absolute day gain across positions
	TotalDayGainPct float64 `json:"totalDayGainPct"` // Day gain relative to yesterday's value
	HoldingGain     float64 `json:"holdingGain"`     // Market value minus cost basis
	HoldingGainPct  float64 `json:"holdingGainPct"`  // Holding gain relative to cost basis
}
