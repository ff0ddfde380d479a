package finnhub

// Quote is a point-in-time price snapshot for one symbol.
// Field tags follow the provider's compact naming.
type Quote struct {
	Current   float64 `json:"c"`
	Change    float64 `json:"d"`
	ChangePct float64 `json:"dp"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Open      float64 `json:"o"`
	PrevClose float64 `json:"pc"`
	Timestamp int64   `json:"t"`
}

// CompanyProfile contains descriptive company metadata.
// MarketCap is reported in millions of the listing currency.
type CompanyProfile struct {
	Name              string  `json:"name"`
	Ticker            string  `json:"ticker"`
	Industry          string  `json:"finnhubIndustry"`
	Exchange          string  `json:"exchange"`
	Currency          string  `json:"currency"`
	Country           string  `json:"country"`
	IPODate           string  `json:"ipo"`
	LogoURL           string  `json:"logo"`
	WebURL            string  `json:"weburl"`
	MarketCap         float64 `json:"marketCapitalization"`
	SharesOutstanding float64 `json:"shareOutstanding"`
}

// MetricsResponse wraps the flat metric map returned by /stock/metric.
// Values are nullable; several synonymous keys may encode the same ratio
// (trailing-twelve-month vs. fiscal-year variants).
type MetricsResponse struct {
	Symbol string              `json:"symbol"`
	Metric map[string]*float64 `json:"metric"`
}

// Candles is a historical OHLCV series in the provider's columnar layout.
// Status is "ok" when data is present, "no_data" otherwise.
type Candles struct {
	Closes     []float64 `json:"c"`
	Highs      []float64 `json:"h"`
	Lows       []float64 `json:"l"`
	Opens      []float64 `json:"o"`
	Volumes    []float64 `json:"v"`
	Timestamps []int64   `json:"t"`
	Status     string    `json:"s"`
}

// NewsArticle is one company news item
type NewsArticle struct {
	Category string `json:"category"`
	Datetime int64  `json:"datetime"`
	Headline string `json:"headline"`
	ID       int64  `json:"id"`
	Image    string `json:"image"`
	Related  string `json:"related"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}

// SymbolMatch is one symbol-search hit
type SymbolMatch struct {
	Description   string `json:"description"`
	DisplaySymbol string `json:"displaySymbol"`
	Symbol        string `json:"symbol"`
	Type          string `json:"type"`
}

// SearchResponse wraps symbol-search results
type SearchResponse struct {
	Count  int           `json:"count"`
	Result []SymbolMatch `json:"result"`
}
