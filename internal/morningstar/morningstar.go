// Package morningstar implements the market data vendor client. It fetches
// fund search results, the latest NAV snapshot, cumulative-return series and
// portfolio holdings. The client only transports and parses data; all
// valuation math lives in internal/valuation.
package morningstar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client provides methods for fetching fund data from the Morningstar CN API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets a bearer token sent on every request. Some deployments of
// the vendor API require it; the public endpoints do not.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// NewClient creates a new vendor client against the given API base URL
// (e.g. "https://www.morningstar.cn/cn-api").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchFunds looks up funds matching the query string (code or name
// fragment).
func (c *Client) SearchFunds(ctx context.Context, query string) ([]SearchFund, error) {
	endpoint := fmt.Sprintf("%s/public/v1/fund-cache/%s", c.baseURL, url.PathEscape(query))

	var response searchResponse
	if err := c.get(ctx, endpoint, &response); err != nil {
		return nil, fmt.Errorf("fund search failed: %w", err)
	}

	return response.Data, nil
}

// GetCommonData fetches the latest NAV snapshot for a fund. This is the
// authoritative NAV source; the performance endpoint is only a fallback.
func (c *Client) GetCommonData(ctx context.Context, code string) (CommonData, error) {
	endpoint := fmt.Sprintf("%s/v2/funds/%s/common-data", c.baseURL, url.PathEscape(code))

	var response commonDataResponse
	if err := c.get(ctx, endpoint, &response); err != nil {
		return CommonData{}, fmt.Errorf("common data fetch failed for %s: %w", code, err)
	}

	if response.Data.Nav <= 0 {
		return CommonData{}, fmt.Errorf("no NAV returned for %s", code)
	}

	return response.Data, nil
}

// GetPerformance fetches day-end stats and trailing returns for a fund.
func (c *Client) GetPerformance(ctx context.Context, code string) (Performance, error) {
	endpoint := fmt.Sprintf("%s/v2/funds/%s/performance", c.baseURL, url.PathEscape(code))

	var response performanceResponse
	if err := c.get(ctx, endpoint, &response); err != nil {
		return Performance{}, fmt.Errorf("performance fetch failed for %s: %w", code, err)
	}

	return response.Data, nil
}

// Benchmark and peer-category identifiers used by the growth-data endpoint.
// These match what the vendor's own web frontend sends.
const (
	defaultBenchmarkSecID = "F00001LXGJ"
	defaultCategorySecID  = "CHCA000043"
)

// GetGrowthData fetches the daily cumulative-return series for a fund over
// [startDate, endDate] (both YYYY-MM-DD). The fund series is required; the
// peer-average and benchmark series are passed through when present.
func (c *Client) GetGrowthData(ctx context.Context, code, startDate, endDate string) (GrowthSeries, error) {
	endpoint := fmt.Sprintf("%s/v2/funds/%s/growth-data", c.baseURL, url.PathEscape(code))

	body := growthDataRequest{
		GrowthDataPoint: "cumulativeReturn",
		InitValue:       10000,
		Freq:            "1d",
		CalcBmkSecID:    defaultBenchmarkSecID,
		Currency:        "CNY",
		Type:            "return",
		StartDate:       startDate,
		EndDate:         endDate,
		CatAvgSecID:     defaultCategorySecID,
		Bmk1SecID:       defaultBenchmarkSecID,
		Outputs:         []string{"tsData", "pr"},
	}

	var response growthDataResponse
	if err := c.post(ctx, endpoint, body, &response); err != nil {
		return GrowthSeries{}, fmt.Errorf("growth data fetch failed for %s: %w", code, err)
	}

	ts := response.Data.TsData
	if len(ts.Dates) == 0 || len(ts.Funds) == 0 {
		return GrowthSeries{}, fmt.Errorf("no return series returned for %s", code)
	}
	if len(ts.Funds[0]) != len(ts.Dates) {
		return GrowthSeries{}, fmt.Errorf("mismatched series lengths for %s", code)
	}

	return GrowthSeries{
		Dates:     ts.Dates,
		Fund:      ts.Funds[0],
		CatAvg:    ts.CatAvg,
		Benchmark: ts.Bmk1,
	}, nil
}

// GetHoldings fetches the latest disclosed portfolio holdings for a fund.
func (c *Client) GetHoldings(ctx context.Context, code string) (Holdings, error) {
	endpoint := fmt.Sprintf("%s/v2/funds/%s/holdings", c.baseURL, url.PathEscape(code))

	var response holdingsResponse
	if err := c.get(ctx, endpoint, &response); err != nil {
		return Holdings{}, fmt.Errorf("holdings fetch failed for %s: %w", code, err)
	}

	return Holdings{
		SecID:          response.Data.SecID,
		PortfolioDate:  response.Data.PortfolioDate,
		EquityHoldings: response.Data.EquityHoldings,
		BondHoldings:   response.Data.BondHoldings,
	}, nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, endpoint string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do executes a request, sets common headers and decodes the JSON body.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("vendor API returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, out)
}
