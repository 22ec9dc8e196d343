package model

// Account represents a brokerage or channel through which positions are held.
// The Name is unique and acts as the join key against Position.Platform.
type Account struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
}
