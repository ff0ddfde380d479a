package analysis

import (
	"math"
	"testing"

	"github.com/marketlens/marketlens/internal/clients/finnhub"
)

func TestScorePricePerformance(t *testing.T) {
	tests := []struct {
		name      string
		changePct float64
		want      float64
	}{
		{"Big rally", 5.26, 90},
		{"Boundary exactly 5 falls to next bucket", 5, 80},
		{"Solid gain", 3.1, 80},
		{"Small gain", 0.4, 65},
		{"Flat day", 0, 35},
		{"Small loss", -1.5, 35},
		{"Notable loss", -3.2, 20},
		{"Heavy loss", -7.8, 10},
		{"Boundary exactly -5", -5, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorePricePerformance(&finnhub.Quote{ChangePct: tt.changePct})
			if got != tt.want {
				t.Errorf("scorePricePerformance(dp=%v) = %v, want %v", tt.changePct, got, tt.want)
			}
		})
	}

	if got := scorePricePerformance(nil); got != 50 {
		t.Errorf("nil quote should score neutral 50, got %v", got)
	}
}

func TestScoreMomentum(t *testing.T) {
	tests := []struct {
		name  string
		quote finnhub.Quote
		want  float64
	}{
		{"Midpoint of range", finnhub.Quote{Current: 100, High: 110, Low: 90}, 50},
		{"At the high", finnhub.Quote{Current: 110, High: 110, Low: 90}, 100},
		{"At the low", finnhub.Quote{Current: 90, High: 110, Low: 90}, 0},
		{"Degenerate range is neutral", finnhub.Quote{Current: 100, High: 100, Low: 100}, 50},
		{"Current above high clamps to 100", finnhub.Quote{Current: 120, High: 110, Low: 90}, 100},
		{"Current below low clamps to 0", finnhub.Quote{Current: 80, High: 110, Low: 90}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreMomentum(&tt.quote)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("scoreMomentum(%+v) = %v, want %v", tt.quote, got, tt.want)
			}
		})
	}
}

func TestScoreVolatility(t *testing.T) {
	tests := []struct {
		name  string
		quote finnhub.Quote
		want  float64
	}{
		{"Calm session", finnhub.Quote{High: 100.5, Low: 100, PrevClose: 100}, 80},
		{"Mild range", finnhub.Quote{High: 101.5, Low: 100, PrevClose: 100}, 70},
		{"Moderate range", finnhub.Quote{High: 102.5, Low: 100, PrevClose: 100}, 60},
		{"Wide range", finnhub.Quote{High: 104, Low: 100, PrevClose: 100}, 40},
		{"Very wide range", finnhub.Quote{High: 107, Low: 100, PrevClose: 100}, 25},
		{"Extreme range", finnhub.Quote{High: 110, Low: 100, PrevClose: 100}, 10},
		{"Zero previous close is neutral", finnhub.Quote{High: 110, Low: 100, PrevClose: 0}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreVolatility(&tt.quote)
			if got != tt.want {
				t.Errorf("scoreVolatility(%+v) = %v, want %v", tt.quote, got, tt.want)
			}
		})
	}
}

func TestScoreMarketCap(t *testing.T) {
	tests := []struct {
		name      string
		marketCap float64
		want      float64
	}{
		{"Mega cap", 2500000, 80},
		{"Large cap boundary", 10001, 80},
		{"Mid cap", 5000, 65},
		{"Small cap", 800, 45},
		{"Micro cap", 150, 30},
		{"Missing market cap is neutral", 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreMarketCap(&finnhub.CompanyProfile{MarketCap: tt.marketCap})
			if got != tt.want {
				t.Errorf("scoreMarketCap(%v) = %v, want %v", tt.marketCap, got, tt.want)
			}
		})
	}

	if got := scoreMarketCap(nil); got != 50 {
		t.Errorf("nil profile should score neutral 50, got %v", got)
	}
}

func TestScoreTrend(t *testing.T) {
	flat := func(n int, v float64) []float64 {
		closes := make([]float64, n)
		for i := range closes {
			closes[i] = v
		}
		return closes
	}

	t.Run("Too short returns nil", func(t *testing.T) {
		if got := scoreTrend(flat(9, 100)); got != nil {
			t.Errorf("expected nil trend for 9 closes, got %v", *got)
		}
	})

	t.Run("Flat series is mildly negative bucket", func(t *testing.T) {
		// recent == older, diff 0 falls in the (-5, 0] bucket
		got := scoreTrend(flat(30, 100))
		if got == nil || *got != 35 {
			t.Fatalf("flat series trend = %v, want 35", got)
		}
	})

	t.Run("Strong uptrend", func(t *testing.T) {
		closes := flat(30, 100)
		for i := 25; i < 30; i++ {
			closes[i] = 120
		}
		got := scoreTrend(closes)
		if got == nil || *got != 90 {
			t.Fatalf("uptrend = %v, want 90", got)
		}
	})

	t.Run("Strong downtrend", func(t *testing.T) {
		closes := flat(30, 100)
		for i := 25; i < 30; i++ {
			closes[i] = 80
		}
		got := scoreTrend(closes)
		if got == nil || *got != 10 {
			t.Fatalf("downtrend = %v, want 10", got)
		}
	})

	t.Run("Short series clamps older window to start", func(t *testing.T) {
		// 12 closes: older window starts at index 0, not -8
		closes := flat(12, 100)
		for i := 7; i < 12; i++ {
			closes[i] = 110
		}
		got := scoreTrend(closes)
		if got == nil || *got != 80 {
			t.Fatalf("12-close trend = %v, want 80", got)
		}
	})

	t.Run("Zero older mean returns nil", func(t *testing.T) {
		if got := scoreTrend(flat(30, 0)); got != nil {
			t.Errorf("expected nil trend for all-zero closes, got %v", *got)
		}
	})
}

func TestCompositeScore(t *testing.T) {
	scorer := NewTechnicalScorer()

	quote := &finnhub.Quote{
		Current:   105,
		ChangePct: 5.26,
		High:      110,
		Low:       90,
		PrevClose: 100,
	}
	profile := &finnhub.CompanyProfile{MarketCap: 50000}

	t.Run("Without history the trend weight is excluded", func(t *testing.T) {
		result := scorer.Score(quote, profile, nil)

		if _, ok := result.Breakdown["trend"]; ok {
			t.Error("breakdown should not carry a trend entry without history")
		}

		// price 90*.30 + momentum 75*.25 + volatility 10*.20 + market 80*.15
		// renormalized over weight 0.90
		want := int(math.Round((90*0.30 + 75*0.25 + 10*0.20 + 80*0.15) / 0.90))
		if result.Score != want {
			t.Errorf("composite = %d, want %d", result.Score, want)
		}
	})

	t.Run("With history all five sub-scores contribute", func(t *testing.T) {
		closes := make([]float64, 30)
		for i := range closes {
			closes[i] = 100
		}
		result := scorer.Score(quote, profile, closes)

		if len(result.Breakdown) != 5 {
			t.Fatalf("breakdown has %d entries, want 5", len(result.Breakdown))
		}
		if result.Score < 0 || result.Score > 100 {
			t.Errorf("composite %d outside [0,100]", result.Score)
		}
	})

	t.Run("Label, color and recommendation are consistent", func(t *testing.T) {
		result := scorer.Score(quote, profile, nil)

		switch {
		case result.Score >= 70:
			if result.Label != "Strong" || result.Color != "green" {
				t.Errorf("score %d labeled %q/%q", result.Score, result.Label, result.Color)
			}
		case result.Score >= 40:
			if result.Label != "Moderate" || result.Color != "yellow" {
				t.Errorf("score %d labeled %q/%q", result.Score, result.Label, result.Color)
			}
		default:
			if result.Label != "Weak" || result.Color != "red" {
				t.Errorf("score %d labeled %q/%q", result.Score, result.Label, result.Color)
			}
		}

		if result.Recommendation == "" {
			t.Error("recommendation should never be empty")
		}
	})

	t.Run("Deterministic for identical input", func(t *testing.T) {
		first := scorer.Score(quote, profile, nil)
		second := scorer.Score(quote, profile, nil)
		if first.Score != second.Score {
			t.Errorf("scores differ for identical input: %d vs %d", first.Score, second.Score)
		}
	})

	t.Run("Nil quote still yields a neutral-ish total result", func(t *testing.T) {
		result := scorer.Score(nil, nil, nil)
		if result.Score < 0 || result.Score > 100 {
			t.Errorf("composite %d outside [0,100]", result.Score)
		}
		if result.Label == "" || result.Recommendation == "" {
			t.Error("result shape must be fully populated even without inputs")
		}
	})
}

func TestBuildExplanation(t *testing.T) {
	tests := []struct {
		name      string
		breakdown map[string]float64
		want      string
	}{
		{
			name:      "Balanced picture",
			breakdown: map[string]float64{"price": 50, "momentum": 50},
			want:      "No sub-score stands out; the picture is balanced.",
		},
		{
			name:      "Only strong",
			breakdown: map[string]float64{"price": 90, "momentum": 50},
			want:      "Strong price performance.",
		},
		{
			name:      "Only weak",
			breakdown: map[string]float64{"price": 50, "volatility": 10},
			want:      "Weak volatility.",
		},
		{
			name:      "Mixed keeps category order",
			breakdown: map[string]float64{"price": 90, "momentum": 80, "volatility": 10},
			want:      "Strong price performance, intraday momentum offset by weak volatility.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildExplanation(tt.breakdown); got != tt.want {
				t.Errorf("buildExplanation() = %q, want %q", got, tt.want)
			}
		})
	}
}
