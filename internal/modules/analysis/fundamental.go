package analysis

import (
	"fmt"
)

// Fundamental category weights
const (
	weightValuation     = 0.25
	weightProfitability = 0.25
	weightLiquidity     = 0.15
	weightLeverage      = 0.15
	weightDividend      = 0.10
	weightGrowth        = 0.10
)

// baselineScore is the neutral starting point for every category
const baselineScore = 50.0

// ruleOp is the comparison a scoring rule applies
type ruleOp int

const (
	// value < threshold x benchmark
	opLtBenchTimes ruleOp = iota
	// value > threshold x benchmark
	opGtBenchTimes
	// value < threshold (absolute)
	opLtAbs
	// value > threshold (absolute)
	opGtAbs
	// threshold < value <= upper (absolute)
	opBetweenAbs
	// threshold x benchmark < value <= upper x benchmark
	opBetweenBenchTimes
)

// rule is one declarative scoring rule. Every rule that fires adds its
// delta to the category score and appends an insight with the formatted
// ratio value. requirePositive guards benchmark comparisons that are
// meaningless for non-positive values (a negative P/E is not "cheap").
type rule struct {
	ratio           string
	op              ruleOp
	threshold       float64
	upper           float64
	delta           float64
	insight         InsightType
	template        string
	requirePositive bool
}

// categoryDef binds a category to its weight, the ratios surfaced in its
// comparison map, and its rule table
type categoryDef struct {
	name   string
	weight float64
	ratios []string
	rules  []rule
}

// fundamentalCategories is the full rule set, evaluated uniformly.
// Margins, yields and growth rates are percentages.
var fundamentalCategories = []categoryDef{
	{
		name:   "valuation",
		weight: weightValuation,
		ratios: []string{"peRatio", "pbRatio"},
		rules: []rule{
			{ratio: "peRatio", op: opLtAbs, threshold: 0, delta: -15, insight: InsightWarning, template: "Negative P/E of %.1f signals negative earnings"},
			{ratio: "peRatio", op: opLtBenchTimes, threshold: 0.8, delta: 15, insight: InsightPositive, template: "P/E of %.1f is well below the industry benchmark", requirePositive: true},
			{ratio: "peRatio", op: opGtBenchTimes, threshold: 1.5, delta: -10, insight: InsightNegative, template: "P/E of %.1f is well above the industry benchmark"},
			{ratio: "pbRatio", op: opLtBenchTimes, threshold: 0.8, delta: 10, insight: InsightPositive, template: "P/B of %.1f is below the industry benchmark", requirePositive: true},
			{ratio: "pbRatio", op: opGtBenchTimes, threshold: 1.5, delta: -5, insight: InsightNegative, template: "P/B of %.1f is stretched against the industry benchmark"},
		},
	},
	{
		name:   "profitability",
		weight: weightProfitability,
		ratios: []string{"roe", "roa", "netMargin", "operatingMargin"},
		rules: []rule{
			{ratio: "roe", op: opGtBenchTimes, threshold: 1.2, delta: 15, insight: InsightPositive, template: "ROE of %.1f%% beats the industry benchmark"},
			{ratio: "roe", op: opLtBenchTimes, threshold: 0.5, delta: -10, insight: InsightNegative, template: "ROE of %.1f%% lags the industry benchmark"},
			{ratio: "roa", op: opGtBenchTimes, threshold: 1.0, delta: 10, insight: InsightPositive, template: "ROA of %.1f%% is above the industry benchmark"},
			{ratio: "netMargin", op: opGtBenchTimes, threshold: 1.0, delta: 10, insight: InsightPositive, template: "Net margin of %.1f%% tops the industry benchmark"},
			{ratio: "netMargin", op: opLtAbs, threshold: 0, delta: -15, insight: InsightWarning, template: "Negative net margin of %.1f%%, the company is unprofitable"},
			{ratio: "operatingMargin", op: opGtAbs, threshold: 15, delta: 5, insight: InsightPositive, template: "Operating margin of %.1f%% shows pricing power"},
		},
	},
	{
		name:   "liquidity",
		weight: weightLiquidity,
		ratios: []string{"currentRatio", "quickRatio"},
		rules: []rule{
			{ratio: "currentRatio", op: opGtAbs, threshold: 2, delta: 15, insight: InsightPositive, template: "Current ratio of %.1f provides a comfortable cushion"},
			{ratio: "currentRatio", op: opBetweenAbs, threshold: 1, upper: 2, delta: 5, insight: InsightPositive, template: "Current ratio of %.1f covers short-term obligations"},
			{ratio: "currentRatio", op: opLtAbs, threshold: 1, delta: -15, insight: InsightWarning, template: "Current ratio of %.1f, short-term obligations exceed liquid assets"},
			{ratio: "quickRatio", op: opGtAbs, threshold: 1, delta: 10, insight: InsightPositive, template: "Quick ratio of %.1f covers liabilities without leaning on inventory"},
			{ratio: "quickRatio", op: opLtAbs, threshold: 0.5, delta: -10, insight: InsightNegative, template: "Quick ratio of %.1f is thin"},
		},
	},
	{
		name:   "leverage",
		weight: weightLeverage,
		ratios: []string{"debtToEquity"},
		rules: []rule{
			{ratio: "debtToEquity", op: opLtBenchTimes, threshold: 0.5, delta: 15, insight: InsightPositive, template: "Debt/equity of %.1f is well under the industry norm"},
			{ratio: "debtToEquity", op: opBetweenBenchTimes, threshold: 0.5, upper: 1.0, delta: 5, insight: InsightPositive, template: "Debt/equity of %.1f sits below the industry norm"},
			{ratio: "debtToEquity", op: opBetweenBenchTimes, threshold: 1.0, upper: 2.0, delta: -10, insight: InsightNegative, template: "Debt/equity of %.1f runs above the industry norm"},
			{ratio: "debtToEquity", op: opGtBenchTimes, threshold: 2.0, delta: -20, insight: InsightWarning, template: "Debt/equity of %.1f is more than double the industry norm"},
		},
	},
	{
		name:   "dividend",
		weight: weightDividend,
		ratios: []string{"dividendYield", "payoutRatio"},
		rules: []rule{
			{ratio: "dividendYield", op: opGtBenchTimes, threshold: 1.0, delta: 10, insight: InsightPositive, template: "Dividend yield of %.1f%% beats the industry benchmark"},
			{ratio: "dividendYield", op: opBetweenAbs, threshold: 0, upper: 6, delta: 5, insight: InsightPositive, template: "Dividend yield of %.1f%% adds steady income"},
			{ratio: "dividendYield", op: opGtAbs, threshold: 6, delta: -10, insight: InsightWarning, template: "Dividend yield of %.1f%% is unusually high and may be unsustainable"},
			{ratio: "payoutRatio", op: opGtAbs, threshold: 80, delta: -5, insight: InsightWarning, template: "Payout ratio of %.1f%% leaves little room for dividend growth"},
		},
	},
	{
		name:   "growth",
		weight: weightGrowth,
		ratios: []string{"revenueGrowth", "epsGrowth"},
		rules: []rule{
			{ratio: "revenueGrowth", op: opGtAbs, threshold: 15, delta: 15, insight: InsightPositive, template: "Revenue growing %.1f%% year over year"},
			{ratio: "revenueGrowth", op: opBetweenAbs, threshold: 5, upper: 15, delta: 10, insight: InsightPositive, template: "Revenue growing %.1f%% year over year"},
			{ratio: "revenueGrowth", op: opLtAbs, threshold: 0, delta: -15, insight: InsightNegative, template: "Revenue shrinking %.1f%% year over year"},
			{ratio: "epsGrowth", op: opGtAbs, threshold: 15, delta: 10, insight: InsightPositive, template: "EPS growing %.1f%% year over year"},
			{ratio: "epsGrowth", op: opLtAbs, threshold: 0, delta: -10, insight: InsightNegative, template: "EPS shrinking %.1f%% year over year"},
		},
	},
}

// FundamentalAnalyzer scores ratio health against industry benchmarks
type FundamentalAnalyzer struct{}

// NewFundamentalAnalyzer creates a new fundamental analyzer
func NewFundamentalAnalyzer() *FundamentalAnalyzer {
	return &FundamentalAnalyzer{}
}

// Analyze computes the six category scores and the weighted overall score.
// Each category starts at the neutral baseline and applies the deltas of
// every rule that fires; scores clamp to [0,100]. A nil ratio set returns
// the "unavailable" shape rather than a degraded score.
func (fa *FundamentalAnalyzer) Analyze(ratios *KeyRatios, bench IndustryBenchmark) FundamentalAnalysis {
	if ratios == nil {
		return FundamentalAnalysis{
			Available: false,
			Summary:   "No fundamental data available for this symbol.",
		}
	}

	categories := make(map[string]CategoryScore, len(fundamentalCategories))
	weightedSum := 0.0
	positives := 0
	negatives := 0

	for _, def := range fundamentalCategories {
		cat := scoreCategory(def, ratios, bench)
		categories[def.name] = cat
		weightedSum += cat.Score * def.weight

		for _, ins := range cat.Insights {
			switch ins.Type {
			case InsightPositive:
				positives++
			case InsightNegative, InsightWarning:
				negatives++
			}
		}
	}

	overall := clampScore(weightedSum)

	return FundamentalAnalysis{
		Available: true,
		Overall: OverallScore{
			Score: overall,
			Label: fundamentalLabel(overall),
		},
		Categories: categories,
		Summary:    buildFundamentalSummary(positives, negatives),
	}
}

// scoreCategory evaluates one category's rule table
func scoreCategory(def categoryDef, ratios *KeyRatios, bench IndustryBenchmark) CategoryScore {
	score := baselineScore
	insights := []Insight{}

	for _, r := range def.rules {
		value := ratios.get(r.ratio)
		if value == nil {
			continue
		}
		if !ruleFires(r, *value, bench) {
			continue
		}

		score += r.delta
		insights = append(insights, Insight{
			Type: r.insight,
			Text: fmt.Sprintf(r.template, *value),
		})
	}

	comparison := make(map[string]RatioComparison, len(def.ratios))
	for _, name := range def.ratios {
		rc := RatioComparison{Value: ratios.get(name)}
		if benchVal, ok := bench.valueFor(name); ok {
			b := benchVal
			rc.Benchmark = &b
		}
		comparison[name] = rc
	}

	return CategoryScore{
		Score:    clampScore(score),
		Insights: insights,
		Ratios:   comparison,
	}
}

// ruleFires evaluates one rule against a present ratio value
func ruleFires(r rule, value float64, bench IndustryBenchmark) bool {
	if r.requirePositive && value <= 0 {
		return false
	}

	switch r.op {
	case opLtAbs:
		return value < r.threshold
	case opGtAbs:
		return value > r.threshold
	case opBetweenAbs:
		return value > r.threshold && value <= r.upper
	}

	// Benchmark-relative operators
	benchVal, ok := bench.valueFor(r.ratio)
	if !ok || benchVal == 0 {
		return false
	}

	switch r.op {
	case opLtBenchTimes:
		return value < r.threshold*benchVal
	case opGtBenchTimes:
		return value > r.threshold*benchVal
	case opBetweenBenchTimes:
		return value > r.threshold*benchVal && value <= r.upper*benchVal
	}

	return false
}
