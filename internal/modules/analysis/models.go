package analysis

// InsightType classifies a generated insight
type InsightType string

const (
	InsightPositive InsightType = "positive"
	InsightNegative InsightType = "negative"
	InsightNeutral  InsightType = "neutral"
	InsightWarning  InsightType = "warning"
)

// Insight is one human-readable observation produced by a scoring rule
type Insight struct {
	Type InsightType `json:"type"`
	Text string      `json:"text"`
}

// RatioComparison pairs an extracted ratio value with its industry benchmark.
// Either side may be nil when the provider or the benchmark table lacks it.
type RatioComparison struct {
	Value     *float64 `json:"value"`
	Benchmark *float64 `json:"benchmark"`
}

// CategoryScore is the result of scoring one analysis category
type CategoryScore struct {
	Score    float64                    `json:"score"`
	Insights []Insight                  `json:"insights"`
	Ratios   map[string]RatioComparison `json:"ratios,omitempty"`
}

// CompositeScore is the terminal output of one technical scoring pass
type CompositeScore struct {
	Score          int                `json:"score"`
	Label          string             `json:"label"`
	Color          string             `json:"color"`
	Breakdown      map[string]float64 `json:"breakdown"`
	Explanation    string             `json:"explanation"`
	Recommendation string             `json:"recommendation"`
}

// OverallScore is the weighted aggregate of the fundamental categories
type OverallScore struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// FundamentalAnalysis is the full output of the fundamental score engine.
// Available is false when no ratio data reached the engine at all; in that
// case the other fields carry the documented "unavailable" shape.
type FundamentalAnalysis struct {
	Available  bool                     `json:"available"`
	Overall    OverallScore             `json:"overall"`
	Categories map[string]CategoryScore `json:"categories,omitempty"`
	Summary    string                   `json:"summary"`
}

// KeyRatios is the canonical ratio set derived from raw provider metrics.
// Every field is optional; semantics are fixed once extracted regardless of
// which provider key populated the field (margins, yields and growth rates
// are percentages, the rest unitless ratios).
type KeyRatios struct {
	PERatio         *float64 `json:"peRatio"`
	PBRatio         *float64 `json:"pbRatio"`
	ROE             *float64 `json:"roe"`
	ROA             *float64 `json:"roa"`
	DebtToEquity    *float64 `json:"debtToEquity"`
	CurrentRatio    *float64 `json:"currentRatio"`
	QuickRatio      *float64 `json:"quickRatio"`
	GrossMargin     *float64 `json:"grossMargin"`
	OperatingMargin *float64 `json:"operatingMargin"`
	NetMargin       *float64 `json:"netMargin"`
	DividendYield   *float64 `json:"dividendYield"`
	PayoutRatio     *float64 `json:"payoutRatio"`
	RevenueGrowth   *float64 `json:"revenueGrowth"`
	EPSGrowth       *float64 `json:"epsGrowth"`
	Beta            *float64 `json:"beta"`
}

// get returns a ratio value by its canonical name
func (k *KeyRatios) get(name string) *float64 {
	if k == nil {
		return nil
	}

	switch name {
	case "peRatio":
		return k.PERatio
	case "pbRatio":
		return k.PBRatio
	case "roe":
		return k.ROE
	case "roa":
		return k.ROA
	case "debtToEquity":
		return k.DebtToEquity
	case "currentRatio":
		return k.CurrentRatio
	case "quickRatio":
		return k.QuickRatio
	case "grossMargin":
		return k.GrossMargin
	case "operatingMargin":
		return k.OperatingMargin
	case "netMargin":
		return k.NetMargin
	case "dividendYield":
		return k.DividendYield
	case "payoutRatio":
		return k.PayoutRatio
	case "revenueGrowth":
		return k.RevenueGrowth
	case "epsGrowth":
		return k.EPSGrowth
	case "beta":
		return k.Beta
	}

	return nil
}
