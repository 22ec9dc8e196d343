package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/apperrors"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/model"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/morningstar"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/repository"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/valuation"
)

// MarketClient is the slice of the vendor client the fund and refresh
// services depend on. Satisfied by *morningstar.Client and by test mocks.
type MarketClient interface {
	SearchFunds(ctx context.Context, query string) ([]morningstar.SearchFund, error)
	GetCommonData(ctx context.Context, code string) (morningstar.CommonData, error)
	GetPerformance(ctx context.Context, code string) (morningstar.Performance, error)
	GetGrowthData(ctx context.Context, code, startDate, endDate string) (morningstar.GrowthSeries, error)
	GetHoldings(ctx context.Context, code string) (morningstar.Holdings, error)
}

// FundDetail bundles the vendor data shown on a fund's detail page.
type FundDetail struct {
	Code        string
	Common      morningstar.CommonData
	Performance morningstar.Performance
	Holdings    morningstar.Holdings
}

// FundService handles fund lookups against the market data vendor and the
// reconstruction of historical NAV tables from cumulative-return series.
type FundService struct {
	positionRepo *repository.PositionRepository
	market       MarketClient
}

// NewFundService creates a new FundService with the provided dependencies.
func NewFundService(positionRepo *repository.PositionRepository, market MarketClient) *FundService {
	return &FundService{
		positionRepo: positionRepo,
		market:       market,
	}
}

// SearchFunds looks up funds by code or name fragment.
func (s *FundService) SearchFunds(ctx context.Context, query string) ([]morningstar.SearchFund, error) {
	return s.market.SearchFunds(ctx, query)
}

// GetFundDetail fetches the vendor data for a fund's detail view.
// Performance and holdings are best-effort extras and come back zero-valued
// when the vendor cannot deliver them; the NAV snapshot itself falls through
// resolveNav's source chain.
func (s *FundService) GetFundDetail(ctx context.Context, code string) (FundDetail, error) {
	common, err := s.resolveNav(ctx, code)
	if err != nil {
		return FundDetail{}, err
	}

	detail := FundDetail{Code: code, Common: common}

	if perf, err := s.market.GetPerformance(ctx, code); err == nil {
		detail.Performance = perf
	}
	if holdings, err := s.market.GetHoldings(ctx, code); err == nil {
		detail.Holdings = holdings
	}

	return detail, nil
}

// CurrentNav returns the latest NAV snapshot for a fund. See resolveNav for
// the source chain.
func (s *FundService) CurrentNav(ctx context.Context, code string) (morningstar.CommonData, error) {
	return s.resolveNav(ctx, code)
}

// resolveNav resolves the latest NAV snapshot for a fund through a fixed
// priority chain: the common-data endpoint, then the performance endpoint's
// day-end block, then the locally stored position. Only when all three fail
// is the fund considered unknown.
func (s *FundService) resolveNav(ctx context.Context, code string) (morningstar.CommonData, error) {
	if common, err := s.market.GetCommonData(ctx, code); err == nil {
		return common, nil
	}

	if perf, err := s.market.GetPerformance(ctx, code); err == nil && perf.DayEnd.Nav > 0 {
		return morningstar.CommonData{
			Nav:              perf.DayEnd.Nav,
			NavDate:          perf.DayEnd.EndDate,
			NavChangePercent: perf.DayEnd.ChangeP,
		}, nil
	}

	if position, err := s.positionRepo.GetPositionByCode(code); err == nil {
		return morningstar.CommonData{
			Nav:              position.CurrentNav,
			NavDate:          position.LastUpdate.Format("2006-01-02"),
			NavChangePercent: position.DayChangePct,
		}, nil
	}

	return morningstar.CommonData{}, fmt.Errorf("%w: %s", apperrors.ErrFundNotFound, code)
}

// Supported history ranges, keyed by the query value.
var historyRanges = map[string]func(end time.Time) time.Time{
	"1M": func(end time.Time) time.Time { return end.AddDate(0, -1, 0) },
	"3M": func(end time.Time) time.Time { return end.AddDate(0, -3, 0) },
	"6M": func(end time.Time) time.Time { return end.AddDate(0, -6, 0) },
	"1Y": func(end time.Time) time.Time { return end.AddDate(-1, 0, 0) },
	"3Y": func(end time.Time) time.Time { return end.AddDate(-3, 0, 0) },
	"5Y": func(end time.Time) time.Time { return end.AddDate(-5, 0, 0) },
}

// GetHistory reconstructs the historical NAV table for a fund over the given
// range ("1M".."5Y"). The series end date is the vendor's NAV date and the
// terminal NAV is the vendor's authoritative current NAV, so the newest row
// always matches what the user sees elsewhere in the app. Rows come back
// most-recent-first; limit > 0 truncates.
//
// A degenerate return series (terminal -100%) yields an empty table rather
// than an error: the history is simply unavailable.
func (s *FundService) GetHistory(ctx context.Context, code, rangeKey string, limit int) ([]model.HistoryRow, error) {
	startOf, ok := historyRanges[rangeKey]
	if !ok {
		return nil, fmt.Errorf("%w: unknown range %q", apperrors.ErrInvalidDateRange, rangeKey)
	}

	common, err := s.resolveNav(ctx, code)
	if err != nil {
		return nil, err
	}

	end, err := time.Parse("2006-01-02", common.NavDate)
	if err != nil {
		return nil, fmt.Errorf("vendor returned unparsable NAV date %q: %w", common.NavDate, err)
	}
	start := startOf(end)

	growth, err := s.market.GetGrowthData(ctx, code, start.Format("2006-01-02"), common.NavDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrFailedToRetrieveHistory, code)
	}

	// The interface does not guarantee matching series lengths; pair up to
	// the shorter one.
	points := len(growth.Dates)
	if len(growth.Fund) < points {
		points = len(growth.Fund)
	}
	series := make([]model.ReturnSeriesPoint, points)
	for i := range series {
		series[i] = model.ReturnSeriesPoint{
			Date:                growth.Dates[i],
			CumulativeReturnPct: growth.Fund[i],
		}
	}

	rows, err := valuation.ReconstructHistory(series, common.Nav)
	if errors.Is(err, apperrors.ErrDegenerateReturnSeries) {
		return []model.HistoryRow{}, nil
	}
	if err != nil {
		return nil, err
	}

	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}
