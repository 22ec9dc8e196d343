package model

import "time"

// Position represents a fund holding from the database.
// The position is joined to an Account by the Platform string, not by ID.
type Position struct {
	ID            string
	Code          string
	Name          string
	Platform      string
	HoldingShares float64
	CostPrice     float64
	CurrentNav    float64
	LastUpdate    time.Time
	DayChangePct  float64
	DayChangeVal  float64
}

// PositionFilter for querying positions
type PositionFilter struct {
	Platform string // empty means all platforms
}

// NavUpdate carries the refreshed market data for a single position.
// DayChangeVal is derived from DayChangePct and the position's market value
// at write time so the two fields cannot drift apart.
type NavUpdate struct {
	PositionID   string
	CurrentNav   float64
	LastUpdate   time.Time
	DayChangePct float64
	DayChangeVal float64
}
