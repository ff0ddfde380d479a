package formulas

import (
	"math"
)

// tradingDaysPerYear is the annualization basis for daily series
const tradingDaysPerYear = 252

// SharpeRatio calculates the annualized Sharpe ratio from periodic returns.
//
//	Sharpe = (mean return - periodic risk-free rate) / std dev of returns
//	annualized by sqrt(periods per year)
//
// riskFreeRate is annual, as a decimal. Returns nil when there are fewer
// than two returns or the series has no variance.
func SharpeRatio(returns []float64, riskFreeRate float64, periodsPerYear int) *float64 {
	if len(returns) < 2 {
		return nil
	}

	stdDev := StdDev(returns)
	if stdDev == 0 {
		return nil
	}

	periodicRiskFree := riskFreeRate / float64(periodsPerYear)
	sharpe := (Mean(returns) - periodicRiskFree) / stdDev

	annualized := sharpe * math.Sqrt(float64(periodsPerYear))
	return &annualized
}

// SharpeFromPrices calculates the annualized Sharpe ratio directly from a
// daily close series
func SharpeFromPrices(prices []float64, riskFreeRate float64) *float64 {
	if len(prices) < 2 {
		return nil
	}

	return SharpeRatio(CalculateReturns(prices), riskFreeRate, tradingDaysPerYear)
}
