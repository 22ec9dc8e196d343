package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/morningstar"
)

// MockMarketClient is a mock implementation of service.MarketClient for
// testing. It returns predefined test data instead of making actual API
// calls. The zero value fails every lookup; use the With* builders to
// configure responses.
type MockMarketClient struct {
	mu sync.Mutex

	// SearchResults is returned from SearchFunds
	SearchResults []morningstar.SearchFund
	// CommonByCode maps fund codes to common-data responses
	CommonByCode map[string]morningstar.CommonData
	// PerformanceByCode maps fund codes to performance responses
	PerformanceByCode map[string]morningstar.Performance
	// GrowthByCode maps fund codes to growth series responses
	GrowthByCode map[string]morningstar.GrowthSeries
	// HoldingsByCode maps fund codes to holdings responses
	HoldingsByCode map[string]morningstar.Holdings
	// Err, when set, is returned from every method
	Err error

	// CallCount tracks the total number of vendor calls made
	CallCount int
}

// NewMockMarketClient creates an empty mock market client.
func NewMockMarketClient() *MockMarketClient {
	return &MockMarketClient{
		CommonByCode:      map[string]morningstar.CommonData{},
		PerformanceByCode: map[string]morningstar.Performance{},
		GrowthByCode:      map[string]morningstar.GrowthSeries{},
		HoldingsByCode:    map[string]morningstar.Holdings{},
	}
}

// WithCommonData configures the common-data response for a fund code.
func (m *MockMarketClient) WithCommonData(code string, data morningstar.CommonData) *MockMarketClient {
	m.CommonByCode[code] = data
	return m
}

// WithPerformance configures the performance response for a fund code.
func (m *MockMarketClient) WithPerformance(code string, perf morningstar.Performance) *MockMarketClient {
	m.PerformanceByCode[code] = perf
	return m
}

// WithGrowth configures the growth series response for a fund code.
func (m *MockMarketClient) WithGrowth(code string, growth morningstar.GrowthSeries) *MockMarketClient {
	m.GrowthByCode[code] = growth
	return m
}

// WithHoldings configures the holdings response for a fund code.
func (m *MockMarketClient) WithHoldings(code string, holdings morningstar.Holdings) *MockMarketClient {
	m.HoldingsByCode[code] = holdings
	return m
}

// WithSearchResults configures the search response.
func (m *MockMarketClient) WithSearchResults(funds ...morningstar.SearchFund) *MockMarketClient {
	m.SearchResults = funds
	return m
}

// WithError configures the mock to fail every call with the given error.
func (m *MockMarketClient) WithError(err error) *MockMarketClient {
	m.Err = err
	return m
}

func (m *MockMarketClient) called() {
	m.mu.Lock()
	m.CallCount++
	m.mu.Unlock()
}

// Calls returns the total number of vendor calls made so far.
func (m *MockMarketClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

// SearchFunds returns the configured search results.
func (m *MockMarketClient) SearchFunds(_ context.Context, _ string) ([]morningstar.SearchFund, error) {
	m.called()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.SearchResults, nil
}

// GetCommonData returns the configured common data for the code.
func (m *MockMarketClient) GetCommonData(_ context.Context, code string) (morningstar.CommonData, error) {
	m.called()
	if m.Err != nil {
		return morningstar.CommonData{}, m.Err
	}
	data, ok := m.CommonByCode[code]
	if !ok {
		return morningstar.CommonData{}, fmt.Errorf("no common data configured for %s", code)
	}
	return data, nil
}

// GetPerformance returns the configured performance data for the code.
func (m *MockMarketClient) GetPerformance(_ context.Context, code string) (morningstar.Performance, error) {
	m.called()
	if m.Err != nil {
		return morningstar.Performance{}, m.Err
	}
	perf, ok := m.PerformanceByCode[code]
	if !ok {
		return morningstar.Performance{}, fmt.Errorf("no performance configured for %s", code)
	}
	return perf, nil
}

// GetGrowthData returns the configured growth series for the code.
func (m *MockMarketClient) GetGrowthData(_ context.Context, code, _, _ string) (morningstar.GrowthSeries, error) {
	m.called()
	if m.Err != nil {
		return morningstar.GrowthSeries{}, m.Err
	}
	growth, ok := m.GrowthByCode[code]
	if !ok {
		return morningstar.GrowthSeries{}, fmt.Errorf("no growth data configured for %s", code)
	}
	return growth, nil
}

// GetHoldings returns the configured holdings for the code.
func (m *MockMarketClient) GetHoldings(_ context.Context, code string) (morningstar.Holdings, error) {
	m.called()
	if m.Err != nil {
		return morningstar.Holdings{}, m.Err
	}
	holdings, ok := m.HoldingsByCode[code]
	if !ok {
		return morningstar.Holdings{}, fmt.Errorf("no holdings configured for %s", code)
	}
	return holdings, nil
}

// MakeCommonData builds a common-data snapshot for testing.
func MakeCommonData(nav float64, navDate string, changePct float64) morningstar.CommonData {
	return morningstar.CommonData{
		Nav:              nav,
		NavDate:          navDate,
		NavChangePercent: changePct,
		AccumulatedNav:   nav,
		FundType:         "Equity",
		RiskLevel:        "Medium",
	}
}

// MakeGrowthSeries builds a growth series with the given dates and
// cumulative return percentages.
func MakeGrowthSeries(dates []string, returns []float64) morningstar.GrowthSeries {
	return morningstar.GrowthSeries{
		Dates:     dates,
		Fund:      returns,
		CatAvg:    make([]float64, len(dates)),
		Benchmark: make([]float64, len(dates)),
	}
}
