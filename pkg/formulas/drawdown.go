package formulas

// MaxDrawdown calculates the largest peak-to-trough decline over a price
// series, returned as a negative fraction (e.g. -0.25 for a 25% drawdown).
// Returns 0 for series shorter than two points.
func MaxDrawdown(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}

	peak := prices[0]
	maxDD := 0.0

	for _, p := range prices[1:] {
		if p > peak {
			peak = p
			continue
		}
		if peak > 0 {
			dd := (p - peak) / peak
			if dd < maxDD {
				maxDD = dd
			}
		}
	}

	return maxDD
}
