package indicator

import (
	"math"

	talib "github.com/markcheno/go-talib"

	"kairos/internal/market"
)

// volatilityFullScale is the per-sample return stddev that maps to a
// normalized volatility of 1.0 (5% swings per sample is extreme even for
// crypto).
const volatilityFullScale = 0.05

// EstimateVolatility derives a normalized [0,1] volatility figure from a
// price series. Used to auto-fill MarketContext.volatility when the caller
// does not supply one. Returns false when the series is too short.
func EstimateVolatility(samples []market.PriceSample) (float64, bool) {
	closes := market.Closes(samples)
	if len(closes) < 3 {
		return 0, false
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, closes[i]/closes[i-1]-1)
	}
	if len(returns) < 2 {
		return 0, false
	}
	period := len(returns)
	if period > bollingerPeriod {
		period = bollingerPeriod
	}
	series := talib.StdDev(returns, period, 1)
	sigma := 0.0
	for i := len(series) - 1; i >= 0; i-- {
		if !math.IsNaN(series[i]) && !math.IsInf(series[i], 0) {
			sigma = series[i]
			break
		}
	}
	return clamp01(sigma / volatilityFullScale), true
}
