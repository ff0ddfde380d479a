package analysis

import (
	"fmt"
	"strings"
)

// technicalLabel maps a composite technical score to its qualitative label
func technicalLabel(score float64) string {
	switch {
	case score >= 70:
		return "Strong"
	case score >= 40:
		return "Moderate"
	default:
		return "Weak"
	}
}

// scoreColor maps a score to a severity tag for the rendering layer
func scoreColor(score float64) string {
	switch {
	case score >= 70:
		return "green"
	case score >= 40:
		return "yellow"
	default:
		return "red"
	}
}

// recommendationFor maps a composite score to a discrete action with text
func recommendationFor(score float64) string {
	switch {
	case score >= 70:
		return "Consider: technical indicators are favorable."
	case score >= 40:
		return "Monitor: technical signals are mixed."
	default:
		return "Caution: technical indicators are weak."
	}
}

// categoryTitles translates breakdown keys into readable phrases
var categoryTitles = map[string]string{
	"price":      "price performance",
	"momentum":   "intraday momentum",
	"volatility": "volatility",
	"market":     "market-cap tier",
	"trend":      "historical trend",
}

// buildExplanation lists notably strong (>70) and weak (<30) sub-scores
// in the fixed category order
func buildExplanation(breakdown map[string]float64) string {
	var strong, weak []string

	for _, name := range technicalOrder {
		score, ok := breakdown[name]
		if !ok {
			continue
		}
		if score > 70 {
			strong = append(strong, categoryTitles[name])
		} else if score < 30 {
			weak = append(weak, categoryTitles[name])
		}
	}

	switch {
	case len(strong) > 0 && len(weak) > 0:
		return fmt.Sprintf("Strong %s offset by weak %s.",
			strings.Join(strong, ", "), strings.Join(weak, ", "))
	case len(strong) > 0:
		return fmt.Sprintf("Strong %s.", strings.Join(strong, ", "))
	case len(weak) > 0:
		return fmt.Sprintf("Weak %s.", strings.Join(weak, ", "))
	default:
		return "No sub-score stands out; the picture is balanced."
	}
}

// fundamentalLabel maps an overall fundamental score to its label
func fundamentalLabel(score float64) string {
	switch {
	case score >= 75:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Poor"
	}
}

// buildFundamentalSummary produces one of three template sentences from
// the positive/negative insight counts across all categories
func buildFundamentalSummary(positives, negatives int) string {
	switch {
	case positives > negatives:
		return fmt.Sprintf("Fundamentals lean healthy: %d positive signals against %d negative.", positives, negatives)
	case negatives > positives:
		return fmt.Sprintf("Fundamentals show strain: %d negative signals against %d positive.", negatives, positives)
	default:
		return fmt.Sprintf("Fundamentals are mixed: %d positive and %d negative signals.", positives, negatives)
	}
}
