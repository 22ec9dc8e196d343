// Package valuation implements the numerical core of the holdings tracker:
// the reactive position-entry calculator, the portfolio summary aggregator,
// and the return-series NAV reconstructor. Everything in this package is a
// pure computation over explicit inputs; storage and market data fetch live
// elsewhere.
package valuation

import (
	"math"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/apperrors"
)

// Decimal places used when rendering derived field values back to raw text.
const (
	amountDecimals = 2
	sharesDecimals = 2
	costDecimals   = 4
	gainDecimals   = 2
)

// Entry keeps the four linked position-entry fields mutually consistent
// while the user edits one of them at a time. The derivation graph is fixed
// and acyclic: amount and shares derive each other through the NAV; unit
// cost and gain derive each other through amount and shares. Each handler
// stores the edited field verbatim (including unparsable mid-edit text) and
// recomputes only the fields whose inputs currently parse; anything else
// keeps its last value.
type Entry struct {
	Amount     Field // market value, shares x NAV
	Shares     Field
	UnitCost   Field
	Gain       Field // amount - shares x unit cost
	CurrentNav float64
}

// NewEntry starts a blank entry for a freshly selected fund. The unit cost
// defaults to the fetched current NAV, assuming a same-day purchase until
// the user edits it.
func NewEntry(currentNav float64) *Entry {
	e := &Entry{CurrentNav: currentNav}
	if currentNav > 0 {
		e.UnitCost = FieldOf(currentNav, costDecimals)
	}
	return e
}

// EditEntry populates an entry from a stored position. All four fields are
// derived once from the persisted (shares, cost, nav) triple.
func EditEntry(shares, costPrice, currentNav float64) *Entry {
	e := &Entry{CurrentNav: currentNav}
	amount := shares * currentNav
	e.Shares = FieldOf(shares, sharesDecimals)
	e.UnitCost = FieldOf(costPrice, costDecimals)
	e.Amount = FieldOf(amount, amountDecimals)
	e.Gain = FieldOf(amount-shares*costPrice, gainDecimals)
	return e
}

// AmountChanged handles an edit to the holding amount. Shares follow from
// amount / NAV; if the unit cost parses, the gain follows from both.
func (e *Entry) AmountChanged(raw string) {
	e.Amount = ParseField(raw)
	if e.CurrentNav <= 0 || !e.Amount.Valid {
		return
	}
	shares := e.Amount.Value / e.CurrentNav
	e.Shares = FieldOf(shares, sharesDecimals)
	if e.UnitCost.Valid {
		e.Gain = FieldOf(e.Amount.Value-e.UnitCost.Value*shares, gainDecimals)
	}
}

// SharesChanged handles an edit to the share count. The amount follows from
// shares x NAV; if the unit cost parses, the gain follows from both.
func (e *Entry) SharesChanged(raw string) {
	e.Shares = ParseField(raw)
	if e.CurrentNav <= 0 || !e.Shares.Valid {
		return
	}
	amount := e.Shares.Value * e.CurrentNav
	e.Amount = FieldOf(amount, amountDecimals)
	if e.UnitCost.Valid {
		e.Gain = FieldOf(amount-e.UnitCost.Value*e.Shares.Value, gainDecimals)
	}
}

// UnitCostChanged handles an edit to the unit cost. Only the gain is
// recomputed, and only when shares and amount are both numeric.
func (e *Entry) UnitCostChanged(raw string) {
	e.UnitCost = ParseField(raw)
	if !e.UnitCost.Valid || !e.Shares.Valid || !e.Amount.Valid {
		return
	}
	e.Gain = FieldOf(e.Amount.Value-e.UnitCost.Value*e.Shares.Value, gainDecimals)
}

// GainChanged handles an edit to the total gain. The unit cost is back-solved
// from (amount - gain) / shares when shares and amount are numeric and shares
// is positive.
func (e *Entry) GainChanged(raw string) {
	e.Gain = ParseField(raw)
	if !e.Gain.Valid || !e.Shares.Valid || e.Shares.Value <= 0 || !e.Amount.Valid {
		return
	}
	e.UnitCost = FieldOf((e.Amount.Value-e.Gain.Value)/e.Shares.Value, costDecimals)
}

// Commit validates the entry and returns the pair that gets persisted. Only
// shares and cost are stored; amount and gain are transient form state that
// remains re-derivable from (shares, cost, nav). An unparsable or missing
// unit cost falls back to the current NAV (break-even) rather than rejecting
// the save.
func (e *Entry) Commit() (shares, costPrice float64, err error) {
	if e.CurrentNav <= 0 {
		return 0, 0, apperrors.ErrInvalidNav
	}
	if !e.Shares.Valid || e.Shares.Value <= 0 ||
		math.IsNaN(e.Shares.Value) || math.IsInf(e.Shares.Value, 0) {
		return 0, 0, apperrors.ErrInvalidShares
	}
	costPrice = e.CurrentNav
	if e.UnitCost.Valid {
		costPrice = e.UnitCost.Value
	}
	return e.Shares.Value, costPrice, nil
}
