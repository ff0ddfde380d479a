package finnhub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/marketlens/marketlens/internal/metrics"
)

// ErrNoData is returned when the provider has no data for a symbol.
// The handler layer maps it to 404.
var ErrNoData = errors.New("no data available for symbol")

// Free-tier budget is 60 calls/minute; one request per second with a small
// burst keeps the fan-out for a single dashboard request inside it.
const (
	requestsPerSecond = 1
	burstSize         = 10
)

// Client is a Finnhub API client
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
	metrics *metrics.Registry
	log     zerolog.Logger
}

// NewClient creates a new Finnhub client
func NewClient(baseURL, apiKey string, reg *metrics.Registry, log zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
		metrics: reg,
		log:     log.With().Str("client", "finnhub").Logger(),
	}
}

// GetQuote fetches the current quote for a symbol
func (c *Client) GetQuote(ctx context.Context, symbol string) (*Quote, error) {
	var quote Quote
	params := url.Values{"symbol": {symbol}}

	if err := c.get(ctx, "/quote", params, &quote); err != nil {
		return nil, err
	}

	// The provider returns an all-zero quote for unknown symbols
	if quote.Current == 0 && quote.Timestamp == 0 {
		return nil, ErrNoData
	}

	return &quote, nil
}

// GetProfile fetches the company profile for a symbol.
// Returns ErrNoData when the provider has no profile; callers treat a
// missing profile as a degraded but valid state.
func (c *Client) GetProfile(ctx context.Context, symbol string) (*CompanyProfile, error) {
	var profile CompanyProfile
	params := url.Values{"symbol": {symbol}}

	if err := c.get(ctx, "/stock/profile2", params, &profile); err != nil {
		return nil, err
	}

	if profile.Name == "" && profile.Ticker == "" {
		return nil, ErrNoData
	}

	return &profile, nil
}

// GetMetrics fetches the raw financial metric map for a symbol
func (c *Client) GetMetrics(ctx context.Context, symbol string) (*MetricsResponse, error) {
	var resp MetricsResponse
	params := url.Values{
		"symbol": {symbol},
		"metric": {"all"},
	}

	if err := c.get(ctx, "/stock/metric", params, &resp); err != nil {
		return nil, err
	}

	if len(resp.Metric) == 0 {
		return nil, ErrNoData
	}

	return &resp, nil
}

// GetCandles fetches daily OHLCV candles for the given day span
func (c *Client) GetCandles(ctx context.Context, symbol string, days int) (*Candles, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -days)

	var candles Candles
	params := url.Values{
		"symbol":     {symbol},
		"resolution": {"D"},
		"from":       {fmt.Sprintf("%d", from.Unix())},
		"to":         {fmt.Sprintf("%d", now.Unix())},
	}

	if err := c.get(ctx, "/stock/candle", params, &candles); err != nil {
		return nil, err
	}

	if candles.Status != "ok" || len(candles.Closes) == 0 {
		return nil, ErrNoData
	}

	return &candles, nil
}

// GetCompanyNews fetches company news for the trailing week
func (c *Client) GetCompanyNews(ctx context.Context, symbol string) ([]NewsArticle, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -7)

	var articles []NewsArticle
	params := url.Values{
		"symbol": {symbol},
		"from":   {from.Format("2006-01-02")},
		"to":     {now.Format("2006-01-02")},
	}

	if err := c.get(ctx, "/company-news", params, &articles); err != nil {
		return nil, err
	}

	return articles, nil
}

// Search looks up symbols matching a free-text query
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	var resp SearchResponse
	params := url.Values{"q": {query}}

	if err := c.get(ctx, "/search", params, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// get performs a rate-limited GET against the provider and decodes JSON
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	params.Set("token", c.apiKey)
	reqURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if c.metrics != nil {
		c.metrics.ProviderLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		c.countRequest(endpoint, "error")
		return fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.countRequest(endpoint, "not_found")
		return ErrNoData
	}

	if resp.StatusCode != http.StatusOK {
		c.countRequest(endpoint, fmt.Sprintf("%d", resp.StatusCode))
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("provider returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.countRequest(endpoint, "decode_error")
		return fmt.Errorf("failed to decode provider response: %w", err)
	}

	c.countRequest(endpoint, "ok")
	return nil
}

func (c *Client) countRequest(endpoint, status string) {
	if c.metrics != nil {
		c.metrics.ProviderRequests.WithLabelValues(endpoint, status).Inc()
	}
}
