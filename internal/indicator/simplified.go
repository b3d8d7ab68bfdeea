package indicator

import (
	"kairos/internal/market"
)

// Simplified estimator thresholds, expressed against the 24h change
// percentage and the volume/market-cap turnover ratio.
const (
	simpleTrendPct     = 1.0
	simpleExtremePct   = 5.0
	simpleSRPct        = 3.0
	simpleTurnoverHigh = 0.15
	simpleTurnoverLow  = 0.02
)

// computeSimplified derives a heuristic indicator set directly from the
// snapshot when there is not enough history for the windowed math. It never
// fails and always yields a well-formed set.
func computeSimplified(samples []market.PriceSample, snap market.Snapshot) Set {
	price := snap.CurrentPrice
	if price <= 0 && len(samples) > 0 {
		price = samples[len(samples)-1].Price
	}
	pc := snap.PriceChangePct24h

	set := Set{Degraded: true}

	set.RSI = classifyRSI(clamp(50+pc*2, 0, 100))

	macd := MACDResult{Line: pc / 100, Histogram: pc / 100}
	switch {
	case pc > simpleTrendPct:
		macd.Trend = SignalBullish
	case pc < -simpleTrendPct:
		macd.Trend = SignalBearish
	default:
		macd.Trend = SignalNeutral
	}
	macd.Strength = clamp01(abs(pc) / 10)
	set.MACD = macd

	boll := BollingerResult{Upper: price * 1.02, Middle: price, Lower: price * 0.98}
	switch {
	case pc > simpleExtremePct:
		boll.Position = PositionAboveUpper
	case pc > simpleTrendPct:
		boll.Position = PositionUpperHalf
	case pc < -simpleExtremePct:
		boll.Position = PositionBelowLower
	case pc < -simpleTrendPct:
		boll.Position = PositionLowerHalf
	default:
		boll.Position = PositionMiddle
	}
	boll.Strength = clamp(0.5+abs(pc)/10, 0.5, 1)
	set.Bollinger = boll

	ma := MovingAverageResult{SMA20: price, SMA50: price, EMA12: price, EMA26: price}
	switch {
	case pc > simpleTrendPct:
		ma.Trend = SignalBullish
	case pc < -simpleTrendPct:
		ma.Trend = SignalBearish
	default:
		ma.Trend = SignalNeutral
	}
	ma.Strength = clamp01(abs(pc) / 10)
	set.MovingAverages = ma

	sr := SupportResistanceResult{Support: price * 0.95, Resistance: price * 1.05}
	switch {
	case pc > simpleSRPct:
		sr.Zone = ZoneNearResistance
		sr.Strength = 0.8
	case pc < -simpleSRPct:
		sr.Zone = ZoneNearSupport
		sr.Strength = 0.2
	default:
		sr.Zone = ZoneMidRange
		sr.Strength = 0.5
	}
	set.SupportResistance = sr

	turnover := 0.0
	if snap.MarketCap > 0 {
		turnover = snap.TotalVolume / snap.MarketCap
	}
	vol := VolumeResult{Ratio: turnover}
	switch {
	case turnover > simpleTurnoverHigh:
		vol.Signal = VolumeHigh
	case turnover > 0 && turnover < simpleTurnoverLow:
		vol.Signal = VolumeLow
	default:
		vol.Signal = VolumeNormal
	}
	vol.Strength = clamp01(turnover / (2 * simpleTurnoverHigh))
	set.Volume = vol

	return set
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
