package dashboard

import (
	"github.com/marketlens/marketlens/internal/clients/finnhub"
	"github.com/marketlens/marketlens/internal/modules/analysis"
	"github.com/marketlens/marketlens/internal/modules/sentiment"
)

// Dashboard is the full outbound payload for one symbol. Quote is the only
// hard requirement; every other section degrades to its zero value or is
// omitted when the underlying fetch failed.
type Dashboard struct {
	Symbol      string                       `json:"symbol"`
	Quote       *finnhub.Quote               `json:"quote"`
	Profile     *finnhub.CompanyProfile      `json:"profile,omitempty"`
	Analysis    analysis.CompositeScore      `json:"analysis"`
	Fundamental analysis.FundamentalAnalysis `json:"fundamental"`
	History     *History                     `json:"history,omitempty"`
	News        []NewsItem                   `json:"news,omitempty"`
	Sentiment   *sentiment.Summary           `json:"sentiment,omitempty"`
	GeneratedAt string                       `json:"generated_at"`
}

// History carries the historical arrays plus derived indicator stats
type History struct {
	Closes     []float64    `json:"closes"`
	Highs      []float64    `json:"highs"`
	Lows       []float64    `json:"lows"`
	Volumes    []float64    `json:"volumes"`
	Timestamps []int64      `json:"timestamps"`
	Stats      HistoryStats `json:"stats"`
}

// HistoryStats holds indicators derived from the close series
type HistoryStats struct {
	RSI14                *float64 `json:"rsi_14,omitempty"`
	SMA20                *float64 `json:"sma_20,omitempty"`
	SMA50                *float64 `json:"sma_50,omitempty"`
	SharpeRatio          *float64 `json:"sharpe_ratio,omitempty"`
	AnnualizedVolatility float64  `json:"annualized_volatility"`
	MaxDrawdown          float64  `json:"max_drawdown"`
}

// NewsItem is one article, optionally carrying its sentiment classification
type NewsItem struct {
	Headline  string            `json:"headline"`
	Summary   string            `json:"summary,omitempty"`
	URL       string            `json:"url"`
	Source    string            `json:"source"`
	Datetime  int64             `json:"datetime"`
	Sentiment *sentiment.Result `json:"sentiment,omitempty"`
}
