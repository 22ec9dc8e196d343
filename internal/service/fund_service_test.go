package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/apperrors"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/morningstar"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/testutil"
)

// TestFundService_CurrentNav tests the NAV source fallback chain.
//
// WHY: The vendor's endpoints degrade independently. The NAV snapshot falls
// through common-data, then performance, then the locally stored position,
// and a fund is only unknown when all three come up empty.
func TestFundService_CurrentNav(t *testing.T) {
	t.Run("prefers common data", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient().
			WithCommonData("002001", testutil.MakeCommonData(2.5, "2025-03-04", 1.0))
		svc := testutil.NewTestFundService(t, db, market)

		common, err := svc.CurrentNav(context.Background(), "002001")
		if err != nil {
			t.Fatalf("CurrentNav() returned unexpected error: %v", err)
		}
		if common.Nav != 2.5 {
			t.Errorf("Nav = %v, want 2.5", common.Nav)
		}
	})

	t.Run("falls back to the performance day end", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		perf := morningstar.Performance{}
		perf.DayEnd.Nav = 3.1
		perf.DayEnd.EndDate = "2025-03-03"
		perf.DayEnd.ChangeP = -0.5

		market := testutil.NewMockMarketClient().WithPerformance("002001", perf)
		svc := testutil.NewTestFundService(t, db, market)

		common, err := svc.CurrentNav(context.Background(), "002001")
		if err != nil {
			t.Fatalf("CurrentNav() returned unexpected error: %v", err)
		}
		if common.Nav != 3.1 || common.NavDate != "2025-03-03" {
			t.Errorf("Snapshot = %+v, want performance day end", common)
		}
	})

	t.Run("falls back to the stored position", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient().WithError(errors.New("vendor down"))
		svc := testutil.NewTestFundService(t, db, market)

		testutil.NewPosition().WithCode("002001").WithNav(1.234).WithDayChange(0.7, 0).Build(t, db)

		common, err := svc.CurrentNav(context.Background(), "002001")
		if err != nil {
			t.Fatalf("CurrentNav() returned unexpected error: %v", err)
		}
		if common.Nav != 1.234 || common.NavChangePercent != 0.7 {
			t.Errorf("Snapshot = %+v, want the stored position's data", common)
		}
	})

	t.Run("unknown everywhere yields fund not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient().WithError(errors.New("vendor down"))
		svc := testutil.NewTestFundService(t, db, market)

		_, err := svc.CurrentNav(context.Background(), "002001")
		if !errors.Is(err, apperrors.ErrFundNotFound) {
			t.Errorf("Expected ErrFundNotFound, got %v", err)
		}
	})
}

// TestFundService_GetHistory tests NAV table reconstruction over a range.
//
// WHY: The vendor only publishes cumulative returns; the implied NAV table
// must anchor on the authoritative current NAV, come back newest-first, and
// honor the range and limit parameters.
func TestFundService_GetHistory(t *testing.T) {
	t.Run("reconstructs the table newest first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient().
			WithCommonData("002001", testutil.MakeCommonData(1.0654, "2025-03-05", 1.5)).
			WithGrowth("002001", testutil.MakeGrowthSeries(
				[]string{"2025-03-03", "2025-03-04", "2025-03-05"},
				[]float64{0, 2.0, 1.5},
			))
		svc := testutil.NewTestFundService(t, db, market)

		rows, err := svc.GetHistory(context.Background(), "002001", "1M", 0)
		if err != nil {
			t.Fatalf("GetHistory() returned unexpected error: %v", err)
		}

		if len(rows) != 3 {
			t.Fatalf("Expected 3 rows, got %d", len(rows))
		}
		if rows[0].Date != "2025-03-05" {
			t.Errorf("First row date = %s, want the newest date", rows[0].Date)
		}
		// The newest row's implied NAV is exactly the current NAV.
		if rows[0].ImpliedNav != 1.0654 {
			t.Errorf("Newest ImpliedNav = %v, want exactly 1.0654", rows[0].ImpliedNav)
		}
	})

	t.Run("limit truncates the table", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient().
			WithCommonData("002001", testutil.MakeCommonData(1.05, "2025-03-05", 0)).
			WithGrowth("002001", testutil.MakeGrowthSeries(
				[]string{"2025-03-02", "2025-03-03", "2025-03-04", "2025-03-05"},
				[]float64{0, 1.0, 2.0, 5.0},
			))
		svc := testutil.NewTestFundService(t, db, market)

		rows, err := svc.GetHistory(context.Background(), "002001", "1M", 2)
		if err != nil {
			t.Fatalf("GetHistory() returned unexpected error: %v", err)
		}

		if len(rows) != 2 {
			t.Errorf("Expected 2 rows, got %d", len(rows))
		}
	})

	t.Run("mismatched series lengths truncate instead of panicking", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		// More dates than return values, as a misbehaving client could hand over
		market := testutil.NewMockMarketClient().
			WithCommonData("002001", testutil.MakeCommonData(1.02, "2025-03-05", 0)).
			WithGrowth("002001", morningstar.GrowthSeries{
				Dates: []string{"2025-03-03", "2025-03-04", "2025-03-05"},
				Fund:  []float64{0, 2.0},
			})
		svc := testutil.NewTestFundService(t, db, market)

		rows, err := svc.GetHistory(context.Background(), "002001", "1M", 0)
		if err != nil {
			t.Fatalf("GetHistory() returned unexpected error: %v", err)
		}

		if len(rows) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(rows))
		}
		if rows[0].Date != "2025-03-04" {
			t.Errorf("First row date = %s, want the newest paired date", rows[0].Date)
		}
	})

	t.Run("rejects an unknown range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient()
		svc := testutil.NewTestFundService(t, db, market)

		_, err := svc.GetHistory(context.Background(), "002001", "7D", 0)
		if !errors.Is(err, apperrors.ErrInvalidDateRange) {
			t.Errorf("Expected ErrInvalidDateRange, got %v", err)
		}
	})

	t.Run("degenerate series yields an empty table", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient().
			WithCommonData("002001", testutil.MakeCommonData(1.0, "2025-03-05", 0)).
			WithGrowth("002001", testutil.MakeGrowthSeries(
				[]string{"2025-03-04", "2025-03-05"},
				[]float64{0, -100},
			))
		svc := testutil.NewTestFundService(t, db, market)

		rows, err := svc.GetHistory(context.Background(), "002001", "1M", 0)
		if err != nil {
			t.Fatalf("GetHistory() returned unexpected error: %v", err)
		}
		if len(rows) != 0 {
			t.Errorf("Expected empty table, got %d rows", len(rows))
		}
	})
}

// TestFundService_GetFundDetail tests the detail view assembly.
//
// WHY: Performance and holdings are cosmetic extras; their failure must not
// take down the detail view as long as a NAV snapshot exists.
func TestFundService_GetFundDetail(t *testing.T) {
	t.Run("missing extras do not fail the detail", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient().
			WithCommonData("002001", testutil.MakeCommonData(2.5, "2025-03-04", 1.0))
		svc := testutil.NewTestFundService(t, db, market)

		detail, err := svc.GetFundDetail(context.Background(), "002001")
		if err != nil {
			t.Fatalf("GetFundDetail() returned unexpected error: %v", err)
		}

		if detail.Common.Nav != 2.5 {
			t.Errorf("Common.Nav = %v, want 2.5", detail.Common.Nav)
		}
		if len(detail.Holdings.EquityHoldings) != 0 {
			t.Errorf("Expected zero-valued holdings, got %+v", detail.Holdings)
		}
	})

	t.Run("includes holdings when the vendor has them", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		market := testutil.NewMockMarketClient().
			WithCommonData("002001", testutil.MakeCommonData(2.5, "2025-03-04", 1.0)).
			WithHoldings("002001", morningstar.Holdings{
				SecID:         "F000000",
				PortfolioDate: "2025-02-28",
				EquityHoldings: []morningstar.EquityHolding{
					{Name: "Example Co", Weight: 9.5},
				},
			})
		svc := testutil.NewTestFundService(t, db, market)

		detail, err := svc.GetFundDetail(context.Background(), "002001")
		if err != nil {
			t.Fatalf("GetFundDetail() returned unexpected error: %v", err)
		}

		if len(detail.Holdings.EquityHoldings) != 1 {
			t.Fatalf("Expected 1 equity holding, got %d", len(detail.Holdings.EquityHoldings))
		}
	})
}
