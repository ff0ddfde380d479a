package analysis

// ratioSynonyms maps each canonical ratio to the ordered list of provider
// metric keys that may encode it. Trailing-twelve-month keys are preferred
// over fiscal-year ones; the first key present wins.
var ratioSynonyms = map[string][]string{
	"peRatio":         {"peTTM", "peBasicExclExtraTTM", "peAnnual"},
	"pbRatio":         {"pbQuarterly", "pbAnnual"},
	"roe":             {"roeTTM", "roeRfy", "roeAnnual"},
	"roa":             {"roaTTM", "roaRfy", "roaAnnual"},
	"debtToEquity":    {"totalDebt/totalEquityQuarterly", "totalDebt/totalEquityAnnual"},
	"currentRatio":    {"currentRatioQuarterly", "currentRatioAnnual"},
	"quickRatio":      {"quickRatioQuarterly", "quickRatioAnnual"},
	"grossMargin":     {"grossMarginTTM", "grossMarginAnnual"},
	"operatingMargin": {"operatingMarginTTM", "operatingMarginAnnual"},
	"netMargin":       {"netProfitMarginTTM", "netProfitMarginAnnual"},
	"dividendYield":   {"currentDividendYieldTTM", "dividendYieldIndicatedAnnual"},
	"payoutRatio":     {"payoutRatioTTM", "payoutRatioAnnual"},
	"revenueGrowth":   {"revenueGrowthTTMYoy", "revenueGrowthQuarterlyYoy", "revenueGrowth3Y"},
	"epsGrowth":       {"epsGrowthTTMYoy", "epsGrowthQuarterlyYoy", "epsGrowth3Y"},
	"beta":            {"beta"},
}

// ExtractRatios normalizes a raw provider metric map into the canonical
// ratio set. Values are passed through as the provider supplies them, no
// unit conversion. A nil or empty map yields all-nil ratios; extraction
// never fails.
func ExtractRatios(metrics map[string]*float64) KeyRatios {
	return KeyRatios{
		PERatio:         pickMetric(metrics, ratioSynonyms["peRatio"]),
		PBRatio:         pickMetric(metrics, ratioSynonyms["pbRatio"]),
		ROE:             pickMetric(metrics, ratioSynonyms["roe"]),
		ROA:             pickMetric(metrics, ratioSynonyms["roa"]),
		DebtToEquity:    pickMetric(metrics, ratioSynonyms["debtToEquity"]),
		CurrentRatio:    pickMetric(metrics, ratioSynonyms["currentRatio"]),
		QuickRatio:      pickMetric(metrics, ratioSynonyms["quickRatio"]),
		GrossMargin:     pickMetric(metrics, ratioSynonyms["grossMargin"]),
		OperatingMargin: pickMetric(metrics, ratioSynonyms["operatingMargin"]),
		NetMargin:       pickMetric(metrics, ratioSynonyms["netMargin"]),
		DividendYield:   pickMetric(metrics, ratioSynonyms["dividendYield"]),
		PayoutRatio:     pickMetric(metrics, ratioSynonyms["payoutRatio"]),
		RevenueGrowth:   pickMetric(metrics, ratioSynonyms["revenueGrowth"]),
		EPSGrowth:       pickMetric(metrics, ratioSynonyms["epsGrowth"]),
		Beta:            pickMetric(metrics, ratioSynonyms["beta"]),
	}
}

// pickMetric returns the first non-nil value among the synonym keys
func pickMetric(metrics map[string]*float64, keys []string) *float64 {
	if metrics == nil {
		return nil
	}

	for _, key := range keys {
		if val, ok := metrics[key]; ok && val != nil {
			v := *val
			return &v
		}
	}

	return nil
}
