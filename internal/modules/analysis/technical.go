package analysis

import (
	"math"

	"github.com/marketlens/marketlens/internal/clients/finnhub"
	"github.com/marketlens/marketlens/pkg/formulas"
)

// Technical sub-score weights. When a sub-score cannot be computed (only
// the trend score can be absent) its weight is excluded and the remaining
// weights renormalized.
const (
	weightPrice      = 0.30
	weightMomentum   = 0.25
	weightVolatility = 0.20
	weightMarket     = 0.15
	weightTrend      = 0.10
)

// trendMinCloses is the minimum history length for the trend sub-score
const trendMinCloses = 10

// technicalOrder fixes the category order used in breakdowns and explanations
var technicalOrder = []string{"price", "momentum", "volatility", "market", "trend"}

// TechnicalScorer computes the composite technical score for one symbol
type TechnicalScorer struct{}

// NewTechnicalScorer creates a new technical scorer
func NewTechnicalScorer() *TechnicalScorer {
	return &TechnicalScorer{}
}

// Score computes the composite technical score from a quote, an optional
// profile and an optional close-price history.
//
// Sub-scores (each 0-100, neutral 50 when inputs are missing):
//   - price:      daily percent change through fixed buckets
//   - momentum:   position of the current price inside the day's range
//   - volatility: day range relative to previous close, inverse-scored
//   - market:     market-cap tier
//   - trend:      recent 5-close average vs. an older 5-close window;
//     omitted (weight renormalized) when fewer than 10 closes exist
//
// The computation is total: it never panics out to the caller, and any
// internal failure collapses to the neutral default composite.
func (ts *TechnicalScorer) Score(quote *finnhub.Quote, profile *finnhub.CompanyProfile, closes []float64) (result CompositeScore) {
	defer func() {
		if r := recover(); r != nil {
			result = neutralComposite()
		}
	}()

	breakdown := map[string]float64{
		"price":      scorePricePerformance(quote),
		"momentum":   scoreMomentum(quote),
		"volatility": scoreVolatility(quote),
		"market":     scoreMarketCap(profile),
	}

	weights := map[string]float64{
		"price":      weightPrice,
		"momentum":   weightMomentum,
		"volatility": weightVolatility,
		"market":     weightMarket,
	}

	if trend := scoreTrend(closes); trend != nil {
		breakdown["trend"] = *trend
		weights["trend"] = weightTrend
	}

	weightedSum := 0.0
	totalWeight := 0.0
	for name, weight := range weights {
		weightedSum += breakdown[name] * weight
		totalWeight += weight
	}

	score := clampScore(math.Round(weightedSum / totalWeight))

	return CompositeScore{
		Score:          int(score),
		Label:          technicalLabel(score),
		Color:          scoreColor(score),
		Breakdown:      breakdown,
		Explanation:    buildExplanation(breakdown),
		Recommendation: recommendationFor(score),
	}
}

// scorePricePerformance maps the daily percent change through fixed
// buckets. Boundaries are half-open on the upper side.
func scorePricePerformance(quote *finnhub.Quote) float64 {
	if quote == nil {
		return 50
	}

	dp := quote.ChangePct
	switch {
	case dp > 5:
		return 90
	case dp > 2:
		return 80
	case dp > 0:
		return 65
	case dp > -2:
		return 35
	case dp > -5:
		return 20
	default:
		return 10
	}
}

// scoreMomentum measures where the current price sits inside the day's
// range. A degenerate range (high == low, or missing) is neutral.
func scoreMomentum(quote *finnhub.Quote) float64 {
	if quote == nil || quote.High == quote.Low {
		return 50
	}

	position := (quote.Current - quote.Low) / (quote.High - quote.Low) * 100
	return math.Max(0, math.Min(100, position))
}

// scoreVolatility inverse-scores the day's range relative to the previous
// close: a calm session scores high, a wide one low.
func scoreVolatility(quote *finnhub.Quote) float64 {
	if quote == nil || quote.PrevClose <= 0 {
		return 50
	}

	dayRange := (quote.High - quote.Low) / quote.PrevClose * 100
	switch {
	case dayRange < 1:
		return 80
	case dayRange < 2:
		return 70
	case dayRange < 3:
		return 60
	case dayRange < 5:
		return 40
	case dayRange < 8:
		return 25
	default:
		return 10
	}
}

// scoreMarketCap tiers the company by market capitalization
// (provider reports currency-unit millions)
func scoreMarketCap(profile *finnhub.CompanyProfile) float64 {
	if profile == nil || profile.MarketCap <= 0 {
		return 50
	}

	switch {
	case profile.MarketCap > 10000:
		return 80
	case profile.MarketCap > 2000:
		return 65
	case profile.MarketCap > 300:
		return 45
	default:
		return 30
	}
}

// scoreTrend compares the mean of the most recent 5 closes against the
// mean of a 5-sample window taken 15-20 samples back (clamped to the start
// of shorter series). Returns nil when fewer than 10 closes are available;
// the composite then excludes the trend weight entirely.
func scoreTrend(closes []float64) *float64 {
	if len(closes) < trendMinCloses {
		return nil
	}

	recent := formulas.Mean(closes[len(closes)-5:])

	olderStart := len(closes) - 20
	if olderStart < 0 {
		olderStart = 0
	}
	older := formulas.Mean(closes[olderStart : olderStart+5])

	if older == 0 {
		return nil
	}

	diff := (recent - older) / older * 100

	var score float64
	switch {
	case diff > 10:
		score = 90
	case diff > 5:
		score = 80
	case diff > 0:
		score = 65
	case diff > -5:
		score = 35
	case diff > -10:
		score = 20
	default:
		score = 10
	}

	return &score
}

// neutralComposite is the fallback shape when scoring fails internally
func neutralComposite() CompositeScore {
	return CompositeScore{
		Score:          50,
		Label:          "Moderate",
		Color:          "yellow",
		Breakdown:      map[string]float64{},
		Explanation:    "Insufficient data for a detailed technical assessment.",
		Recommendation: "Monitor: not enough signal to act on.",
	}
}

// clampScore clamps a score to [0,100]
func clampScore(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}
