package morningstar

// searchResponse represents the raw JSON response of the fund-cache search
// endpoint.
type searchResponse struct {
	Meta meta         `json:"_meta"`
	Data []SearchFund `json:"data"`
}

type meta struct {
	ResponseStatus string `json:"response_status"`
	ResponseHint   string `json:"response_hint"`
}

// SearchFund is a single fund search result.
type SearchFund struct {
	FundClassID string `json:"fundClassId"`
	FundName    string `json:"fundName"`
	Symbol      string `json:"symbol"`
	FundType    string `json:"fundType"`
	FundNameArr string `json:"fundNameArr"`
}

// DisplayName returns the preferred display name for a search result.
func (f SearchFund) DisplayName() string {
	if f.FundNameArr != "" {
		return f.FundNameArr
	}
	return f.FundName
}

// commonDataResponse represents the raw JSON response of the common-data
// endpoint, the authoritative source for the latest NAV.
type commonDataResponse struct {
	Meta meta       `json:"_meta"`
	Data CommonData `json:"data"`
}

// CommonData holds the latest NAV snapshot plus fund classification fields.
type CommonData struct {
	Nav                 float64 `json:"nav"`
	NavDate             string  `json:"navDate"`
	NavChangePercent    float64 `json:"navChangePercent"`
	AccumulatedNav      float64 `json:"ihc"`
	FundType            string  `json:"fundType"`
	RiskLevel           string  `json:"riskLevel"`
	MorningstarCategory string  `json:"morningstarCategory"`
}

// performanceResponse represents the raw JSON response of the performance
// endpoint.
type performanceResponse struct {
	Data Performance `json:"data"`
}

// Performance holds day-end stats and trailing returns.
type Performance struct {
	DayEnd struct {
		EndDate string             `json:"endDate"`
		Nav     float64            `json:"nav"`
		Change  float64            `json:"change"`
		ChangeP float64            `json:"changeP"`
		Returns map[string]float64 `json:"returns"`
	} `json:"dayEnd"`
	Annual struct {
		Returns []ReturnDataPoint `json:"returns"`
	} `json:"annual"`
	Quarterly struct {
		Returns []ReturnDataPoint `json:"returns"`
	} `json:"quarterly"`
}

// ReturnDataPoint is one labeled return value (the key is a date string or a
// year number depending on the series).
type ReturnDataPoint struct {
	K any     `json:"k"`
	V float64 `json:"v"`
}

// growthDataRequest is the request body of the growth-data endpoint.
type growthDataRequest struct {
	GrowthDataPoint string   `json:"growthDataPoint"`
	InitValue       int      `json:"initValue"`
	Freq            string   `json:"freq"`
	CalcBmkSecID    string   `json:"calcBmkSecId"`
	Currency        string   `json:"currency"`
	Type            string   `json:"type"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
	CatAvgSecID     string   `json:"catAvgSecId"`
	Bmk1SecID       string   `json:"bmk1SecId"`
	Outputs         []string `json:"outputs"`
}

// growthDataResponse represents the raw JSON response of the growth-data
// endpoint.
type growthDataResponse struct {
	Meta meta `json:"_meta"`
	Data struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
		TsData    struct {
			Dates  []string    `json:"dates"`
			Funds  [][]float64 `json:"funds"`
			CatAvg []float64   `json:"catAvg"`
			Bmk1   []float64   `json:"bmk1"`
		} `json:"tsData"`
	} `json:"data"`
}

// GrowthSeries is the parsed cumulative-return series for a fund over a date
// range. All values are percentages anchored at the start of the range. The
// peer-average and benchmark series are carried for callers that want them
// but may be empty.
type GrowthSeries struct {
	Dates     []string
	Fund      []float64
	CatAvg    []float64
	Benchmark []float64
}

// holdingsResponse represents the raw JSON response of the holdings endpoint.
type holdingsResponse struct {
	Meta meta `json:"_meta"`
	Data struct {
		SecID          string          `json:"secId"`
		PortfolioDate  string          `json:"portfolioDate"`
		EquityHoldings []EquityHolding `json:"equityHoldings"`
		BondHoldings   []BondHolding   `json:"bondHoldings"`
	} `json:"data"`
}

// EquityHolding is one stock position inside a fund's reported portfolio.
type EquityHolding struct {
	Ticker   string  `json:"ticker"`
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Sector   string  `json:"sector"`
	StyleBox string  `json:"styleBox"`
}

// BondHolding is one bond position inside a fund's reported portfolio.
type BondHolding struct {
	Ticker string  `json:"ticker"`
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Holdings is the parsed holdings disclosure for a fund.
type Holdings struct {
	SecID          string
	PortfolioDate  string
	EquityHoldings []EquityHolding
	BondHoldings   []BondHolding
}
