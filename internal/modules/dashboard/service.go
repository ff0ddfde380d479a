package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketlens/marketlens/internal/cache"
	"github.com/marketlens/marketlens/internal/clients/classifier"
	"github.com/marketlens/marketlens/internal/clients/finnhub"
	"github.com/marketlens/marketlens/internal/metrics"
	"github.com/marketlens/marketlens/internal/modules/analysis"
	"github.com/marketlens/marketlens/internal/modules/sentiment"
	"github.com/marketlens/marketlens/pkg/formulas"
)

// Provider response TTLs. Quotes move constantly, profiles barely at all.
const (
	quoteTTL   = 30 * time.Second
	profileTTL = 24 * time.Hour
	metricsTTL = 6 * time.Hour
	candlesTTL = 10 * time.Minute
	newsTTL    = 10 * time.Minute
)

// riskFreeRate is the annual rate used for the history Sharpe ratio
const riskFreeRate = 0.02

// Options controls which optional dashboard sections are assembled
type Options struct {
	IncludeNews bool
	HistoryDays int
}

// Service assembles the dashboard payload for a symbol. Provider fetches
// fan out concurrently and are individually optional except the quote;
// scoring runs on whatever arrived.
type Service struct {
	provider    *finnhub.Client
	classifier  *classifier.Client // nil when no sentiment service configured
	cache       *cache.Cache
	metrics     *metrics.Registry
	technical   *analysis.TechnicalScorer
	fundamental *analysis.FundamentalAnalyzer
	historyDays int
	log         zerolog.Logger
}

// NewService creates a new dashboard service. historyDays is the default
// candle window used when a request does not ask for a specific range.
func NewService(
	provider *finnhub.Client,
	classify *classifier.Client,
	c *cache.Cache,
	reg *metrics.Registry,
	historyDays int,
	log zerolog.Logger,
) *Service {
	if historyDays <= 0 {
		historyDays = 90
	}

	return &Service{
		provider:    provider,
		classifier:  classify,
		cache:       c,
		metrics:     reg,
		technical:   analysis.NewTechnicalScorer(),
		fundamental: analysis.NewFundamentalAnalyzer(),
		historyDays: historyDays,
		log:         log.With().Str("module", "dashboard").Logger(),
	}
}

// GetDashboard builds the full payload for one symbol.
// Returns finnhub.ErrNoData when the symbol has no quote at all.
func (s *Service) GetDashboard(ctx context.Context, symbol string, opts Options) (*Dashboard, error) {
	quote, err := s.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if opts.HistoryDays <= 0 {
		opts.HistoryDays = s.historyDays
	}

	// Fan out the remaining fetches; each one is independent and a
	// failure only degrades its own section.
	var (
		wg          sync.WaitGroup
		profile     *finnhub.CompanyProfile
		metricsResp *finnhub.MetricsResponse
		candles     *finnhub.Candles
		articles    []finnhub.NewsArticle
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		profile = s.getProfile(ctx, symbol)
	}()
	go func() {
		defer wg.Done()
		metricsResp = s.getMetrics(ctx, symbol)
	}()
	go func() {
		defer wg.Done()
		candles = s.getCandles(ctx, symbol, opts.HistoryDays)
	}()

	if opts.IncludeNews {
		wg.Add(1)
		go func() {
			defer wg.Done()
			articles = s.getNews(ctx, symbol)
		}()
	}

	wg.Wait()

	var closes []float64
	if candles != nil {
		closes = candles.Closes
	}

	composite := s.technical.Score(quote, profile, closes)
	s.countAnalysis("technical")

	var ratios *analysis.KeyRatios
	industry := ""
	if profile != nil {
		industry = profile.Industry
	}
	if metricsResp != nil {
		extracted := analysis.ExtractRatios(metricsResp.Metric)
		ratios = &extracted
	}
	fundamental := s.fundamental.Analyze(ratios, analysis.BenchmarkFor(industry))
	s.countAnalysis("fundamental")

	dash := &Dashboard{
		Symbol:      symbol,
		Quote:       quote,
		Profile:     profile,
		Analysis:    composite,
		Fundamental: fundamental,
		History:     buildHistory(candles),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if opts.IncludeNews {
		dash.News, dash.Sentiment = s.scoreNews(ctx, articles)
	}

	return dash, nil
}

// GetQuote fetches (or serves from cache) the quote for a symbol
func (s *Service) GetQuote(ctx context.Context, symbol string) (*finnhub.Quote, error) {
	key := "quote:" + symbol
	if cached, ok := s.cache.Get(key); ok {
		s.countCache("quote", true)
		return cached.(*finnhub.Quote), nil
	}
	s.countCache("quote", false)

	quote, err := s.provider.GetQuote(ctx, symbol)
	if err != nil {
		if errors.Is(err, finnhub.ErrNoData) {
			return nil, err
		}
		return nil, fmt.Errorf("quote fetch failed: %w", err)
	}

	s.cache.Set(key, quote, quoteTTL)
	return quote, nil
}

// GetHistory fetches candles plus derived stats for a symbol
func (s *Service) GetHistory(ctx context.Context, symbol string, days int) (*History, error) {
	if days <= 0 {
		days = s.historyDays
	}

	candles := s.getCandles(ctx, symbol, days)
	if candles == nil {
		return nil, finnhub.ErrNoData
	}

	return buildHistory(candles), nil
}

// GetNews fetches news with sentiment for a symbol
func (s *Service) GetNews(ctx context.Context, symbol string) ([]NewsItem, *sentiment.Summary, error) {
	articles := s.getNews(ctx, symbol)
	if articles == nil {
		return nil, nil, finnhub.ErrNoData
	}

	items, summary := s.scoreNews(ctx, articles)
	return items, summary, nil
}

// Search looks up symbols matching a query
func (s *Service) Search(ctx context.Context, query string) (*finnhub.SearchResponse, error) {
	return s.provider.Search(ctx, query)
}

// scoreNews classifies headlines and aggregates the results. Without a
// configured classifier the articles are returned unscored.
func (s *Service) scoreNews(ctx context.Context, articles []finnhub.NewsArticle) ([]NewsItem, *sentiment.Summary) {
	items := make([]NewsItem, len(articles))
	for i, a := range articles {
		items[i] = NewsItem{
			Headline: a.Headline,
			Summary:  a.Summary,
			URL:      a.URL,
			Source:   a.Source,
			Datetime: a.Datetime,
		}
	}

	if s.classifier == nil || len(articles) == 0 {
		return items, nil
	}

	headlines := make([]string, len(articles))
	for i, a := range articles {
		headlines[i] = a.Headline
	}

	results := s.classifier.Classify(ctx, headlines)
	for i := range results {
		if i < len(items) {
			r := results[i]
			items[i].Sentiment = &r
		}
	}

	summary := sentiment.Aggregate(results)
	s.countAnalysis("sentiment")

	return items, &summary
}

// getProfile returns nil on any failure; a missing profile is a valid
// degraded state for scoring.
func (s *Service) getProfile(ctx context.Context, symbol string) *finnhub.CompanyProfile {
	key := "profile:" + symbol
	if cached, ok := s.cache.Get(key); ok {
		s.countCache("profile", true)
		return cached.(*finnhub.CompanyProfile)
	}
	s.countCache("profile", false)

	profile, err := s.provider.GetProfile(ctx, symbol)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("Profile unavailable, continuing without it")
		return nil
	}

	s.cache.Set(key, profile, profileTTL)
	return profile
}

func (s *Service) getMetrics(ctx context.Context, symbol string) *finnhub.MetricsResponse {
	key := "metrics:" + symbol
	if cached, ok := s.cache.Get(key); ok {
		s.countCache("metrics", true)
		return cached.(*finnhub.MetricsResponse)
	}
	s.countCache("metrics", false)

	resp, err := s.provider.GetMetrics(ctx, symbol)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("Financial metrics unavailable, continuing without them")
		return nil
	}

	s.cache.Set(key, resp, metricsTTL)
	return resp
}

func (s *Service) getCandles(ctx context.Context, symbol string, days int) *finnhub.Candles {
	key := fmt.Sprintf("candles:%s:%d", symbol, days)
	if cached, ok := s.cache.Get(key); ok {
		s.countCache("candles", true)
		return cached.(*finnhub.Candles)
	}
	s.countCache("candles", false)

	candles, err := s.provider.GetCandles(ctx, symbol, days)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("Historical candles unavailable, continuing without them")
		return nil
	}

	s.cache.Set(key, candles, candlesTTL)
	return candles
}

func (s *Service) getNews(ctx context.Context, symbol string) []finnhub.NewsArticle {
	key := "news:" + symbol
	if cached, ok := s.cache.Get(key); ok {
		s.countCache("news", true)
		return cached.([]finnhub.NewsArticle)
	}
	s.countCache("news", false)

	articles, err := s.provider.GetCompanyNews(ctx, symbol)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("News unavailable, continuing without it")
		return nil
	}

	s.cache.Set(key, articles, newsTTL)
	return articles
}

// buildHistory converts candles into the outbound history section
func buildHistory(candles *finnhub.Candles) *History {
	if candles == nil {
		return nil
	}

	return &History{
		Closes:     candles.Closes,
		Highs:      candles.Highs,
		Lows:       candles.Lows,
		Volumes:    candles.Volumes,
		Timestamps: candles.Timestamps,
		Stats: HistoryStats{
			RSI14:                formulas.CalculateRSI(candles.Closes, 14),
			SMA20:                formulas.CalculateSMA(candles.Closes, 20),
			SMA50:                formulas.CalculateSMA(candles.Closes, 50),
			SharpeRatio:          formulas.SharpeFromPrices(candles.Closes, riskFreeRate),
			AnnualizedVolatility: formulas.AnnualizedVolatility(candles.Closes),
			MaxDrawdown:          formulas.MaxDrawdown(candles.Closes),
		},
	}
}

func (s *Service) countCache(cacheType string, hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		s.metrics.CacheMisses.WithLabelValues(cacheType).Inc()
	}
}

func (s *Service) countAnalysis(kind string) {
	if s.metrics != nil {
		s.metrics.AnalysesComputed.WithLabelValues(kind).Inc()
	}
}
