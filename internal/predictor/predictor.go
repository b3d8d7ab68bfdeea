package predictor

// Horizon factor weights. A factor absent from the input is skipped and its
// weight is NOT redistributed, so the attainable probability shrinks with
// the input. That asymmetry is part of the service's observed contract; do
// not "fix" it.
const (
	shortTechnicalWeight  = 0.40
	shortVolumeWeight     = 0.20
	shortVolatilityWeight = 0.15

	mediumTechnicalWeight   = 0.40
	mediumFundamentalWeight = 0.35
	mediumMarketWeight      = 0.25

	longFundamentalWeight = 0.35
	longMarketWeight      = 0.30
	longCorrelationWeight = 0.15
)

// Confidence increments per contributing factor family.
const (
	confidenceMajor = 0.3 // technical, fundamental
	confidenceMid   = 0.2 // market
	confidenceMinor = 0.1 // volume, volatility, correlation
)

// Predict produces the raw three-horizon persistence estimate, before any
// advisory adjustment.
func Predict(signal SignalDescriptor, market MarketContext) Predictions {
	technical, hasTechnical := technicalFactor(signal.Technical)
	fundamental, hasFundamental := fundamentalFactor(signal.Fundamental)
	marketScore, hasMarket := marketFactor(market)

	var volume float64
	hasVolume := false
	if signal.Technical != nil && signal.Technical.Volume != nil {
		volume = volumePersistence(*signal.Technical.Volume)
		hasVolume = true
	}
	var volatility float64
	hasVolatility := false
	if market.Volatility != nil {
		volatility = volatilityPersistence(*market.Volatility)
		hasVolatility = true
	}
	var correlation float64
	hasCorrelation := false
	if market.Correlation != nil {
		correlation = correlationPersistence(*market.Correlation)
		hasCorrelation = true
	}

	short := horizon(DurationShort)
	short.add("technical", technical, shortTechnicalWeight, confidenceMajor, hasTechnical)
	short.add("volume", volume, shortVolumeWeight, confidenceMinor, hasVolume)
	short.add("volatility", volatility, shortVolatilityWeight, confidenceMinor, hasVolatility)

	medium := horizon(DurationMedium)
	medium.add("technical", technical, mediumTechnicalWeight, confidenceMajor, hasTechnical)
	medium.add("fundamental", fundamental, mediumFundamentalWeight, confidenceMajor, hasFundamental)
	medium.add("market", marketScore, mediumMarketWeight, confidenceMid, hasMarket)

	long := horizon(DurationLong)
	long.add("fundamental", fundamental, longFundamentalWeight, confidenceMajor, hasFundamental)
	long.add("market", marketScore, longMarketWeight, confidenceMid, hasMarket)
	long.add("correlation", correlation, longCorrelationWeight, confidenceMinor, hasCorrelation)

	return Predictions{
		ShortTerm:  short.finish(),
		MediumTerm: medium.finish(),
		LongTerm:   long.finish(),
	}
}

type horizonAcc struct {
	duration    string
	probability float64
	confidence  float64
	factors     []string
}

func horizon(duration string) *horizonAcc {
	return &horizonAcc{duration: duration}
}

func (h *horizonAcc) add(name string, score, weight, confidence float64, present bool) {
	if !present {
		return
	}
	h.probability += score * weight
	h.confidence += confidence
	h.factors = append(h.factors, name)
}

func (h *horizonAcc) finish() HorizonPrediction {
	return HorizonPrediction{
		Probability: clamp01(h.probability),
		Confidence:  clamp01(h.confidence),
		Duration:    h.duration,
		Factors:     h.factors,
	}
}

// technicalFactor averages the persistence mapping of whichever technical
// sub-indicators were supplied.
func technicalFactor(t *TechnicalFactors) (float64, bool) {
	if t == nil {
		return 0, false
	}
	var sum float64
	var n int
	if t.RSI != nil {
		sum += rsiPersistence(*t.RSI)
		n++
	}
	if t.MACD != nil {
		sum += momentumPersistence(*t.MACD)
		n++
	}
	if t.Bollinger != nil {
		sum += bollingerPersistence(*t.Bollinger)
		n++
	}
	if t.Volume != nil {
		sum += volumePersistence(*t.Volume)
		n++
	}
	if t.SupportResistance != nil {
		sum += supportPersistence(*t.SupportResistance)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func fundamentalFactor(f *FundamentalFactors) (float64, bool) {
	if f == nil {
		return 0, false
	}
	var sum float64
	var n int
	if f.NewsSentiment != nil {
		sum += 0.3 + 0.5*clamp01(*f.NewsSentiment)
		n++
	}
	if f.SocialSentiment != nil {
		sum += 0.3 + 0.4*clamp01(*f.SocialSentiment)
		n++
	}
	if f.WhaleActivity != nil {
		// Heavy whale flow destabilizes a signal.
		sum += 0.7 - 0.4*clamp01(*f.WhaleActivity)
		n++
	}
	if f.DefiActivity != nil {
		sum += 0.4 + 0.3*clamp01(*f.DefiActivity)
		n++
	}
	if f.MarketCap != nil {
		// Larger caps hold their signals longer.
		sum += 0.3 + 0.5*clamp01(*f.MarketCap)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func marketFactor(m MarketContext) (float64, bool) {
	var sum float64
	var n int
	if m.Volatility != nil {
		sum += volatilityPersistence(*m.Volatility)
		n++
	}
	if m.TrendStrength != nil {
		sum += 0.3 + 0.5*clamp01(*m.TrendStrength)
		n++
	}
	if m.Liquidity != nil {
		sum += 0.4 + 0.4*clamp01(*m.Liquidity)
		n++
	}
	if m.TimeOfDay != nil {
		sum += 0.45 + 0.1*clamp01(*m.TimeOfDay)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Per-indicator persistence mappings. All monotone and bounded to [0,1].

// rsiPersistence: an oversold reading (<30) marks a signal likely to hold
// while it unwinds; the further into overbought, the sooner it fades.
func rsiPersistence(rsi float64) float64 {
	if rsi < 30 {
		return 0.8
	}
	if rsi > 100 {
		rsi = 100
	}
	return 0.8 - 0.5*((rsi-30)/70)
}

func momentumPersistence(v float64) float64 {
	return 0.4 + 0.4*clamp01(v)
}

// bollingerPersistence takes the band position (0=lower, 1=upper); a price
// stretched to the top of the band has less room to keep running.
func bollingerPersistence(pos float64) float64 {
	return 0.7 - 0.3*clamp01(pos)
}

func volumePersistence(v float64) float64 {
	return 0.4 + 0.4*clamp01(v)
}

func supportPersistence(v float64) float64 {
	return 0.3 + 0.5*clamp01(v)
}

// volatilityPersistence: calm tape lets a signal run; churn kills it.
func volatilityPersistence(vol float64) float64 {
	return 0.8 - 0.6*clamp01(vol)
}

func correlationPersistence(corr float64) float64 {
	return 0.7 - 0.4*clamp01(corr)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
