package valuation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/apperrors"
)

// TestEntry_AmountChanged tests the amount edit handler.
//
// WHY: Amount is the field users edit most; shares and gain must follow it
// through the NAV while the unit cost is left alone.
func TestEntry_AmountChanged(t *testing.T) {
	t.Run("derives shares and gain from a valid amount", func(t *testing.T) {
		// Setup: shares=100, cost=2.0, nav=2.5 -> amount=250, gain=50
		e := EditEntry(100, 2.0, 2.5)
		assert.InDelta(t, 250.00, e.Amount.Value, 1e-9)
		assert.InDelta(t, 50.00, e.Gain.Value, 1e-9)

		// Execute: edit amount to 300
		e.AmountChanged("300")

		// Assert: shares=120, gain=60, cost untouched
		assert.InDelta(t, 120.00, e.Shares.Value, 1e-9)
		assert.InDelta(t, 60.00, e.Gain.Value, 1e-9)
		assert.InDelta(t, 2.0, e.UnitCost.Value, 1e-9)
	})

	t.Run("keeps dependent fields on unparsable input", func(t *testing.T) {
		e := EditEntry(100, 2.0, 2.5)

		e.AmountChanged("3x0")

		// The raw text is stored verbatim, but shares and gain keep their
		// last valid values.
		assert.Equal(t, "3x0", e.Amount.Raw)
		assert.False(t, e.Amount.Valid)
		assert.InDelta(t, 100.0, e.Shares.Value, 1e-9)
		assert.InDelta(t, 50.0, e.Gain.Value, 1e-9)
	})

	t.Run("skips gain when unit cost is unparsable", func(t *testing.T) {
		e := NewEntry(2.5)
		e.UnitCostChanged("")
		prevGain := e.Gain

		e.AmountChanged("250")

		assert.InDelta(t, 100.0, e.Shares.Value, 1e-9)
		assert.Equal(t, prevGain, e.Gain)
	})

	t.Run("does nothing without a positive NAV", func(t *testing.T) {
		e := NewEntry(0)

		e.AmountChanged("250")

		assert.False(t, e.Shares.Valid)
	})
}

// TestEntry_SharesChanged tests the shares edit handler.
func TestEntry_SharesChanged(t *testing.T) {
	t.Run("derives amount and gain from shares", func(t *testing.T) {
		e := NewEntry(2.5)
		e.UnitCostChanged("2.0")

		e.SharesChanged("100")

		assert.InDelta(t, 250.0, e.Amount.Value, 1e-9)
		assert.InDelta(t, 50.0, e.Gain.Value, 1e-9)
	})

	t.Run("mid-edit text leaves amount alone", func(t *testing.T) {
		e := EditEntry(100, 2.0, 2.5)

		e.SharesChanged("-")

		assert.False(t, e.Shares.Valid)
		assert.InDelta(t, 250.0, e.Amount.Value, 1e-9)
	})
}

// TestEntry_RoundTrip verifies the round-trip consistency property: deriving
// (amount, gain) from (shares, cost, nav) and feeding the amount back through
// AmountChanged reproduces the original shares and gain.
//
// WHY: This is the invariant that makes serialized single-field edits safe;
// without it the form would drift every time a user tabbed through fields.
func TestEntry_RoundTrip(t *testing.T) {
	cases := []struct {
		shares, cost, nav float64
	}{
		{100, 2.0, 2.5},
		{33.333, 1.8421, 1.9},
		{0.5, 12.0, 10.0}, // unrealized loss
		{1500000, 1.0001, 1.0045},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("shares=%g cost=%g nav=%g", tc.shares, tc.cost, tc.nav), func(t *testing.T) {
			e := EditEntry(tc.shares, tc.cost, tc.nav)
			origGain := e.Gain.Value

			e.AmountChanged(e.Amount.Raw)

			// Tolerance is loose because the raw text is rendered to two
			// decimal places before being parsed back.
			assert.InDelta(t, tc.shares, e.Shares.Value, 0.01)
			assert.InDelta(t, origGain, e.Gain.Value, 0.05)
		})
	}
}

// TestEntry_GainCostDuality verifies that UnitCostChanged and GainChanged are
// algebraic inverses while amount and shares are held fixed.
func TestEntry_GainCostDuality(t *testing.T) {
	cases := []struct {
		amount, shares, nav, cost float64
	}{
		{250, 100, 2.5, 2.0},
		{1000, 400, 2.5, 2.7}, // cost above NAV
		{99.99, 33, 3.03, 3.0},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("cost=%g", tc.cost), func(t *testing.T) {
			e := NewEntry(tc.nav)
			e.SharesChanged(fmt.Sprintf("%g", tc.shares))
			e.AmountChanged(fmt.Sprintf("%g", tc.amount))

			e.UnitCostChanged(fmt.Sprintf("%g", tc.cost))
			gain := e.Gain.Value
			e.GainChanged(fmt.Sprintf("%.10f", gain))

			assert.InDelta(t, tc.cost, e.UnitCost.Value, 1e-4)
		})
	}
}

// TestNewEntry tests new-position defaults.
func TestNewEntry(t *testing.T) {
	t.Run("unit cost defaults to the current NAV", func(t *testing.T) {
		e := NewEntry(1.2345)

		require.True(t, e.UnitCost.Valid)
		assert.InDelta(t, 1.2345, e.UnitCost.Value, 1e-9)
	})

	t.Run("no default cost without a NAV", func(t *testing.T) {
		e := NewEntry(0)
		assert.False(t, e.UnitCost.Valid)
	})
}

// TestEntry_Commit tests save-time validation.
//
// WHY: Commit is the only boundary where entry mistakes become errors; every
// other irregularity resolves to a skipped recomputation.
func TestEntry_Commit(t *testing.T) {
	t.Run("persists shares and cost", func(t *testing.T) {
		e := EditEntry(100, 2.0, 2.5)

		shares, cost, err := e.Commit()

		require.NoError(t, err)
		assert.InDelta(t, 100.0, shares, 1e-9)
		assert.InDelta(t, 2.0, cost, 1e-9)
	})

	t.Run("rejects non-positive NAV", func(t *testing.T) {
		e := EditEntry(100, 2.0, 2.5)
		e.CurrentNav = 0

		_, _, err := e.Commit()

		assert.True(t, errors.Is(err, apperrors.ErrInvalidNav))
	})

	t.Run("rejects unparsable shares", func(t *testing.T) {
		e := NewEntry(2.5)
		e.SharesChanged("abc")

		_, _, err := e.Commit()

		assert.True(t, errors.Is(err, apperrors.ErrInvalidShares))
	})

	t.Run("rejects zero shares", func(t *testing.T) {
		e := NewEntry(2.5)
		e.SharesChanged("0")

		_, _, err := e.Commit()

		assert.True(t, errors.Is(err, apperrors.ErrInvalidShares))
	})

	t.Run("missing unit cost falls back to NAV", func(t *testing.T) {
		e := NewEntry(2.5)
		e.SharesChanged("100")
		e.UnitCostChanged("") // user cleared the field

		shares, cost, err := e.Commit()

		require.NoError(t, err)
		assert.InDelta(t, 100.0, shares, 1e-9)
		assert.InDelta(t, 2.5, cost, 1e-9) // break-even assumption
	})
}
