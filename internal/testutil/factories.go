package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/model"
)

// PositionBuilder provides a fluent interface for creating test positions.
//
// Example usage:
//
//	// Simple creation with defaults
//	position := testutil.NewPosition().Build(t, db)
//
//	// Customized position
//	position := testutil.NewPosition().
//	    WithCode("002001").
//	    WithPlatform("Alipay").
//	    WithHolding(100, 2.0).
//	    WithNav(2.5).
//	    Build(t, db)
type PositionBuilder struct {
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

// NewPosition creates a PositionBuilder with sensible defaults.
func NewPosition() *PositionBuilder {
	return &PositionBuilder{
		ID:            MakeID(),
		Code:          MakeFundCode(),
		Name:          MakeFundName("Test Fund"),
		Platform:      "Default",
		HoldingShares: 100,
		CostPrice:     1.0,
		CurrentNav:    1.0,
		LastUpdate:    time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

// WithID sets a custom ID.
func (b *PositionBuilder) WithID(id string) *PositionBuilder {
	b.ID = id
	return b
}

// WithCode sets a custom fund code.
func (b *PositionBuilder) WithCode(code string) *PositionBuilder {
	b.Code = code
	return b
}

// WithName sets a custom fund name.
func (b *PositionBuilder) WithName(name string) *PositionBuilder {
	b.Name = name
	return b
}

// WithPlatform sets the holding account name.
func (b *PositionBuilder) WithPlatform(platform string) *PositionBuilder {
	b.Platform = platform
	return b
}

// WithHolding sets the share count and cost price.
func (b *PositionBuilder) WithHolding(shares, costPrice float64) *PositionBuilder {
	b.HoldingShares = shares
	b.CostPrice = costPrice
	return b
}

// WithNav sets the current net asset value.
func (b *PositionBuilder) WithNav(nav float64) *PositionBuilder {
	b.CurrentNav = nav
	return b
}

// WithDayChange sets the day change percentage and value.
func (b *PositionBuilder) WithDayChange(pct, val float64) *PositionBuilder {
	b.DayChangePct = pct
	b.DayChangeVal = val
	return b
}

// WithLastUpdate sets the NAV date.
func (b *PositionBuilder) WithLastUpdate(date time.Time) *PositionBuilder {
	b.LastUpdate = date
	return b
}

// Build creates the position in the database and returns it.
func (b *PositionBuilder) Build(t *testing.T, db *sql.DB) model.Position {
	t.Helper()

	query := `
		INSERT INTO position (
			id, code, name, platform, holding_shares, cost_price,
			current_nav, last_update, day_change_pct, day_change_val
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.Code, b.Name, b.Platform, b.HoldingShares, b.CostPrice,
		b.CurrentNav, b.LastUpdate.Format("2006-01-02"), b.DayChangePct, b.DayChangeVal,
	)
	if err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}

	return model.Position{
		ID:            b.ID,
		Code:          b.Code,
		Name:          b.Name,
		Platform:      b.Platform,
		HoldingShares: b.HoldingShares,
		CostPrice:     b.CostPrice,
		CurrentNav:    b.CurrentNav,
		LastUpdate:    b.LastUpdate,
		DayChangePct:  b.DayChangePct,
		DayChangeVal:  b.DayChangeVal,
	}
}

// AccountBuilder provides a fluent interface for creating test accounts.
//
// Example usage:
//
//	account := testutil.NewAccount().WithName("Broker A").Build(t, db)
//	protected := testutil.NewAccount().AsDefault().Build(t, db)
type AccountBuilder struct {
	ID        string
	Name      string
	IsDefault bool
}

// NewAccount creates an AccountBuilder with sensible defaults.
func NewAccount() *AccountBuilder {
	return &AccountBuilder{
		ID:        MakeID(),
		Name:      MakeAccountName("Test Account"),
		IsDefault: false,
	}
}

// WithID sets a custom ID.
func (b *AccountBuilder) WithID(id string) *AccountBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.Name = name
	return b
}

// AsDefault marks the account as a protected seeded default.
func (b *AccountBuilder) AsDefault() *AccountBuilder {
	b.IsDefault = true
	return b
}

// Build creates the account in the database and returns it.
func (b *AccountBuilder) Build(t *testing.T, db *sql.DB) model.Account {
	t.Helper()

	query := `INSERT INTO account (id, name, is_default) VALUES (?, ?, ?)`

	if _, err := db.Exec(query, b.ID, b.Name, b.IsDefault); err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	return model.Account{
		ID:        b.ID,
		Name:      b.Name,
		IsDefault: b.IsDefault,
	}
}
