package sentiment

import (
	"fmt"
	"math"
)

// Sentiment labels
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// Result is the classification outcome for one headline. A non-empty Err
// means classification failed; such results are counted as neutral.
type Result struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
	Err   string  `json:"error,omitempty"`
}

// Summary aggregates a list of per-headline results.
// Counts always sum to Total; percentages sum to 100 within rounding.
type Summary struct {
	Positive    int            `json:"positive"`
	Negative    int            `json:"negative"`
	Neutral     int            `json:"neutral"`
	Total       int            `json:"total"`
	Percentages map[string]int `json:"percentages"`
	Overall     string         `json:"overall"`
	Summary     string         `json:"summary"`
}

// Aggregate reduces per-headline sentiment results into counts,
// percentages, an overall label and a template summary sentence.
func Aggregate(results []Result) Summary {
	if len(results) == 0 {
		return Summary{
			Percentages: map[string]int{LabelPositive: 0, LabelNegative: 0, LabelNeutral: 0},
			Overall:     LabelNeutral,
			Summary:     "No recent headlines to score.",
		}
	}

	var positive, negative, neutral int
	for _, r := range results {
		if r.Err != "" {
			neutral++
			continue
		}

		switch r.Label {
		case LabelPositive:
			positive++
		case LabelNegative:
			negative++
		default:
			neutral++
		}
	}

	total := len(results)

	overall := LabelNeutral
	if positive > negative+neutral {
		overall = LabelPositive
	} else if negative > positive+neutral {
		overall = LabelNegative
	}

	return Summary{
		Positive: positive,
		Negative: negative,
		Neutral:  neutral,
		Total:    total,
		Percentages: map[string]int{
			LabelPositive: pct(positive, total),
			LabelNegative: pct(negative, total),
			LabelNeutral:  pct(neutral, total),
		},
		Overall: overall,
		Summary: summaryText(overall, positive, negative, neutral),
	}
}

// pct computes a rounded percentage
func pct(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// summaryText selects the template sentence for the overall label
func summaryText(overall string, positive, negative, neutral int) string {
	switch overall {
	case LabelPositive:
		return fmt.Sprintf("Coverage leans positive: %d positive, %d negative, %d neutral headlines.",
			positive, negative, neutral)
	case LabelNegative:
		return fmt.Sprintf("Coverage leans negative: %d negative, %d positive, %d neutral headlines.",
			negative, positive, neutral)
	default:
		return fmt.Sprintf("Coverage is balanced: %d positive, %d negative, %d neutral headlines.",
			positive, negative, neutral)
	}
}
