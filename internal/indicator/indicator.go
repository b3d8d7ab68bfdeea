package indicator

import (
	"math"

	"kairos/internal/market"
)

// Compute turns a chronological price/volume series plus a current snapshot
// into a full indicator set. Fewer than rsiPeriod samples switches to the
// simplified estimator; fewer than 2 samples is a hard error.
func Compute(samples []market.PriceSample, snap market.Snapshot) (Set, error) {
	if len(samples) < 2 {
		return Set{}, ErrInsufficientData
	}
	if len(samples) < rsiPeriod {
		return computeSimplified(samples, snap), nil
	}

	closes := market.Closes(samples)
	volumes := market.Volumes(samples)
	price := snap.CurrentPrice
	if price <= 0 {
		price = closes[len(closes)-1]
	}
	currentVolume := snap.TotalVolume
	if currentVolume <= 0 {
		currentVolume = volumes[len(volumes)-1]
	}

	set := Set{
		RSI:               computeRSI(closes),
		MACD:              computeMACD(closes),
		Bollinger:         computeBollinger(closes, price),
		MovingAverages:    computeMovingAverages(closes, price),
		SupportResistance: computeSupportResistance(closes, price),
		Volume:            computeVolume(volumes, currentVolume),
	}
	return set, nil
}

// computeRSI implements Wilder smoothing: the seed average gain/loss covers
// the first rsiPeriod deltas, every later delta folds in via
// avg = (avg*(period-1) + new) / period.
func computeRSI(closes []float64) RSIResult {
	period := rsiPeriod
	var gain, loss float64
	seedSpan := len(closes) - 1
	if seedSpan > period {
		seedSpan = period
	}
	for i := 1; i <= seedSpan; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gain += delta
		} else {
			loss -= delta
		}
	}
	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)
	for i := seedSpan + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		g, l := 0.0, 0.0
		if delta > 0 {
			g = delta
		} else {
			l = -delta
		}
		avgGain = (avgGain*float64(period-1) + g) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + l) / float64(period)
	}
	if avgLoss < 0.0001 {
		avgLoss = 0.0001
	}
	rs := avgGain / avgLoss
	rsi := 100 - 100/(1+rs)
	return classifyRSI(rsi)
}

func classifyRSI(rsi float64) RSIResult {
	r := RSIResult{Value: rsi}
	switch {
	case rsi >= 70:
		r.Signal = SignalOverbought
		r.Strength = clamp01((rsi - 70) / 30)
	case rsi <= 30:
		r.Signal = SignalOversold
		r.Strength = clamp01((30 - rsi) / 30)
	case rsi > 50:
		r.Signal = SignalBullish
		r.Strength = clamp01((rsi - 50) / 20)
	default:
		r.Signal = SignalBearish
		r.Strength = clamp01((50 - rsi) / 20)
	}
	return r
}

// computeMACD derives the MACD line from two seeded EMAs and a signal line
// from the EMA(9) of the MACD series itself.
func computeMACD(closes []float64) MACDResult {
	fast := emaSeries(closes, macdFastPeriod)
	slow := emaSeries(closes, macdSlowPeriod)
	macdLine := make([]float64, len(closes))
	for i := range closes {
		macdLine[i] = fast[i] - slow[i]
	}
	signal := emaSeries(macdLine, macdSignalSpan)

	line := macdLine[len(macdLine)-1]
	sig := signal[len(signal)-1]
	hist := line - sig

	r := MACDResult{Line: line, SignalLine: sig, Histogram: hist}
	switch {
	case line > sig && hist > 0:
		r.Trend = SignalBullish
	case line < 0 && hist < 0:
		r.Trend = SignalBearish
	default:
		r.Trend = SignalNeutral
	}
	if line != 0 {
		r.Strength = clamp01(math.Abs(hist) / math.Abs(line))
	}
	return r
}

// emaSeries seeds with the first value and applies alpha = 2/(period+1)
// iteratively over the whole series.
func emaSeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(period+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = values[i]*alpha + out[i-1]*(1-alpha)
	}
	return out
}

func computeBollinger(closes []float64, price float64) BollingerResult {
	window := trailing(closes, bollingerPeriod)
	mid := mean(window)
	sigma := stddev(window, mid)
	upper := mid + bollingerK*sigma
	lower := mid - bollingerK*sigma

	r := BollingerResult{Upper: upper, Middle: mid, Lower: lower}
	switch {
	case price > upper:
		r.Position = PositionAboveUpper
	case price < lower:
		r.Position = PositionBelowLower
	case price > mid:
		r.Position = PositionUpperHalf
	case price < mid:
		r.Position = PositionLowerHalf
	default:
		r.Position = PositionMiddle
	}
	if sigma > 0 {
		r.Strength = clamp01(0.5 + 0.5*math.Abs(price-mid)/(bollingerK*sigma))
	} else {
		r.Strength = 0.5
	}
	return r
}

func computeMovingAverages(closes []float64, price float64) MovingAverageResult {
	ema12 := emaSeries(closes, 12)
	ema26 := emaSeries(closes, 26)
	r := MovingAverageResult{
		SMA20: mean(trailing(closes, 20)),
		SMA50: mean(trailing(closes, 50)),
		EMA12: ema12[len(ema12)-1],
		EMA26: ema26[len(ema26)-1],
	}
	switch {
	case r.EMA12 > r.EMA26 && price > r.SMA20:
		r.Trend = SignalBullish
	case r.EMA12 < r.EMA26 && price < r.SMA20:
		r.Trend = SignalBearish
	default:
		r.Trend = SignalNeutral
	}
	if r.EMA26 > 0 {
		// EMA spread of 5% counts as full trend strength.
		r.Strength = clamp01(math.Abs(r.EMA12-r.EMA26) / (r.EMA26 * 0.05))
	}
	return r
}

func computeSupportResistance(closes []float64, price float64) SupportResistanceResult {
	window := trailing(closes, srWindow)
	support, resistance := window[0], window[0]
	for _, v := range window {
		if v < support {
			support = v
		}
		if v > resistance {
			resistance = v
		}
	}
	r := SupportResistanceResult{Support: support, Resistance: resistance}
	span := resistance - support
	if span <= 0 {
		r.Zone = ZoneMidRange
		r.Strength = 0.5
		return r
	}
	pos := (price - support) / span
	switch {
	case pos >= 0.9:
		r.Zone = ZoneNearResistance
		r.Strength = 0.8
	case pos <= 0.1:
		r.Zone = ZoneNearSupport
		r.Strength = 0.2
	default:
		r.Zone = ZoneMidRange
		r.Strength = 0.5
	}
	return r
}

func computeVolume(volumes []float64, currentVolume float64) VolumeResult {
	window := trailing(volumes, volumeWindow)
	avg := mean(window)
	r := VolumeResult{}
	if avg <= 0 {
		r.Ratio = 1
	} else {
		r.Ratio = currentVolume / avg
	}
	switch {
	case r.Ratio > 2:
		r.Signal = VolumeHigh
	case r.Ratio < 0.5:
		r.Signal = VolumeLow
	default:
		r.Signal = VolumeNormal
	}
	r.Strength = clamp01(math.Abs(r.Ratio - 1))
	return r
}

func trailing(values []float64, n int) []float64 {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev is the population standard deviation.
func stddev(values []float64, mu float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - mu
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
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
