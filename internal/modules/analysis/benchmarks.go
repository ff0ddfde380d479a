package analysis

import "strings"

// IndustryBenchmark holds expected ratio values for one industry bucket.
// Margins, yields and growth are percentages; the rest unitless ratios.
type IndustryBenchmark struct {
	Name          string  `json:"name"`
	PERatio       float64 `json:"peRatio"`
	PBRatio       float64 `json:"pbRatio"`
	ROE           float64 `json:"roe"`
	ROA           float64 `json:"roa"`
	DebtToEquity  float64 `json:"debtToEquity"`
	CurrentRatio  float64 `json:"currentRatio"`
	NetMargin     float64 `json:"netMargin"`
	DividendYield float64 `json:"dividendYield"`
	RevenueGrowth float64 `json:"revenueGrowth"`
}

// valueFor returns the benchmark value for a canonical ratio name.
// Ratios without a benchmarked expectation return false.
func (b IndustryBenchmark) valueFor(name string) (float64, bool) {
	switch name {
	case "peRatio":
		return b.PERatio, true
	case "pbRatio":
		return b.PBRatio, true
	case "roe":
		return b.ROE, true
	case "roa":
		return b.ROA, true
	case "debtToEquity":
		return b.DebtToEquity, true
	case "currentRatio":
		return b.CurrentRatio, true
	case "netMargin":
		return b.NetMargin, true
	case "dividendYield":
		return b.DividendYield, true
	case "revenueGrowth":
		return b.RevenueGrowth, true
	}

	return 0, false
}

// defaultBenchmark is the documented fallback for unknown or missing industries
var defaultBenchmark = IndustryBenchmark{
	Name:          "General Market",
	PERatio:       20,
	PBRatio:       2.5,
	ROE:           12,
	ROA:           5,
	DebtToEquity:  1.0,
	CurrentRatio:  1.5,
	NetMargin:     8,
	DividendYield: 2.0,
	RevenueGrowth: 5,
}

// industryBenchmarks is matched in order against the lowercased industry
// name; first substring match wins. Built once, never mutated at runtime.
var industryBenchmarks = []struct {
	match string
	bench IndustryBenchmark
}{
	{"technology", IndustryBenchmark{Name: "Technology", PERatio: 28, PBRatio: 6, ROE: 18, ROA: 8, DebtToEquity: 0.6, CurrentRatio: 1.8, NetMargin: 15, DividendYield: 0.8, RevenueGrowth: 12}},
	{"semiconductor", IndustryBenchmark{Name: "Technology", PERatio: 28, PBRatio: 6, ROE: 18, ROA: 8, DebtToEquity: 0.6, CurrentRatio: 1.8, NetMargin: 15, DividendYield: 0.8, RevenueGrowth: 12}},
	{"software", IndustryBenchmark{Name: "Technology", PERatio: 28, PBRatio: 6, ROE: 18, ROA: 8, DebtToEquity: 0.6, CurrentRatio: 1.8, NetMargin: 15, DividendYield: 0.8, RevenueGrowth: 12}},
	{"health", IndustryBenchmark{Name: "Healthcare", PERatio: 24, PBRatio: 4, ROE: 15, ROA: 7, DebtToEquity: 0.8, CurrentRatio: 1.6, NetMargin: 12, DividendYield: 1.5, RevenueGrowth: 8}},
	{"pharmaceutical", IndustryBenchmark{Name: "Healthcare", PERatio: 24, PBRatio: 4, ROE: 15, ROA: 7, DebtToEquity: 0.8, CurrentRatio: 1.6, NetMargin: 12, DividendYield: 1.5, RevenueGrowth: 8}},
	{"biotech", IndustryBenchmark{Name: "Healthcare", PERatio: 24, PBRatio: 4, ROE: 15, ROA: 7, DebtToEquity: 0.8, CurrentRatio: 1.6, NetMargin: 12, DividendYield: 1.5, RevenueGrowth: 8}},
	{"bank", IndustryBenchmark{Name: "Financial Services", PERatio: 12, PBRatio: 1.2, ROE: 11, ROA: 1.2, DebtToEquity: 2.5, CurrentRatio: 1.1, NetMargin: 20, DividendYield: 3.0, RevenueGrowth: 5}},
	{"financial", IndustryBenchmark{Name: "Financial Services", PERatio: 12, PBRatio: 1.2, ROE: 11, ROA: 1.2, DebtToEquity: 2.5, CurrentRatio: 1.1, NetMargin: 20, DividendYield: 3.0, RevenueGrowth: 5}},
	{"insurance", IndustryBenchmark{Name: "Financial Services", PERatio: 12, PBRatio: 1.2, ROE: 11, ROA: 1.2, DebtToEquity: 2.5, CurrentRatio: 1.1, NetMargin: 20, DividendYield: 3.0, RevenueGrowth: 5}},
	{"energy", IndustryBenchmark{Name: "Energy", PERatio: 12, PBRatio: 1.5, ROE: 10, ROA: 5, DebtToEquity: 0.9, CurrentRatio: 1.3, NetMargin: 8, DividendYield: 4.0, RevenueGrowth: 3}},
	{"oil", IndustryBenchmark{Name: "Energy", PERatio: 12, PBRatio: 1.5, ROE: 10, ROA: 5, DebtToEquity: 0.9, CurrentRatio: 1.3, NetMargin: 8, DividendYield: 4.0, RevenueGrowth: 3}},
	{"utilit", IndustryBenchmark{Name: "Utilities", PERatio: 17, PBRatio: 1.8, ROE: 9, ROA: 3, DebtToEquity: 1.4, CurrentRatio: 1.0, NetMargin: 10, DividendYield: 3.5, RevenueGrowth: 3}},
	{"retail", IndustryBenchmark{Name: "Consumer", PERatio: 20, PBRatio: 3, ROE: 14, ROA: 6, DebtToEquity: 1.0, CurrentRatio: 1.4, NetMargin: 7, DividendYield: 2.0, RevenueGrowth: 5}},
	{"consumer", IndustryBenchmark{Name: "Consumer", PERatio: 20, PBRatio: 3, ROE: 14, ROA: 6, DebtToEquity: 1.0, CurrentRatio: 1.4, NetMargin: 7, DividendYield: 2.0, RevenueGrowth: 5}},
	{"industrial", IndustryBenchmark{Name: "Industrials", PERatio: 18, PBRatio: 2.5, ROE: 13, ROA: 6, DebtToEquity: 1.1, CurrentRatio: 1.5, NetMargin: 9, DividendYield: 2.0, RevenueGrowth: 5}},
	{"machinery", IndustryBenchmark{Name: "Industrials", PERatio: 18, PBRatio: 2.5, ROE: 13, ROA: 6, DebtToEquity: 1.1, CurrentRatio: 1.5, NetMargin: 9, DividendYield: 2.0, RevenueGrowth: 5}},
}

// BenchmarkFor resolves the benchmark for an industry name.
// Case-insensitive substring match, first match wins; an empty or unknown
// industry returns the default benchmark. Pure and deterministic.
func BenchmarkFor(industry string) IndustryBenchmark {
	needle := strings.ToLower(strings.TrimSpace(industry))
	if needle == "" {
		return defaultBenchmark
	}

	for _, entry := range industryBenchmarks {
		if strings.Contains(needle, entry.match) {
			return entry.bench
		}
	}

	return defaultBenchmark
}
