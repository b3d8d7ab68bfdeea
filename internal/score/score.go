package score

import (
	"kairos/internal/indicator"
)

// Fixed aggregation weights. Missing indicators drop out of both numerator
// and denominator (present-weight renormalization); the weight is never
// redistributed to the others.
const (
	weightRSI       = 0.25
	weightMACD      = 0.25
	weightBollinger = 0.20
	weightMA        = 0.15
	weightSR        = 0.10
	weightVolume    = 0.05
)

const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// Entry is one discrete directional signal emitted by a single indicator.
type Entry struct {
	Type      string  `json:"type"`
	Indicator string  `json:"indicator"`
	Strength  float64 `json:"strength"`
}

// TechnicalScore is the weighted composite in [0,1] plus the raw per-
// indicator buy/sell entries.
type TechnicalScore struct {
	Score   float64 `json:"score"`
	Signals []Entry `json:"signals"`
}

// Aggregate folds an indicator set into one composite score and collects the
// discrete signal entries.
func Aggregate(set indicator.Set) TechnicalScore {
	var weighted, totalWeight float64
	add := func(score, weight float64, present bool) {
		if !present {
			return
		}
		weighted += score * weight
		totalWeight += weight
	}

	add(rsiScore(set.RSI), weightRSI, set.RSI.Signal != "")
	add(macdScore(set.MACD), weightMACD, set.MACD.Trend != "")
	add(bollingerScore(set.Bollinger), weightBollinger, set.Bollinger.Position != "")
	add(maScore(set.MovingAverages), weightMA, set.MovingAverages.Trend != "")
	add(srScore(set.SupportResistance), weightSR, set.SupportResistance.Zone != "")
	add(volumeScore(set.Volume), weightVolume, set.Volume.Signal != "")

	ts := TechnicalScore{Signals: collectSignals(set)}
	if totalWeight > 0 {
		ts.Score = clamp01(weighted / totalWeight)
	}
	return ts
}

// Monotone mapping tables: higher score means stronger buy pressure.

func rsiScore(r indicator.RSIResult) float64 {
	switch r.Signal {
	case indicator.SignalOversold:
		return 0.8
	case indicator.SignalOverbought:
		return 0.2
	case indicator.SignalBullish:
		return 0.6 + 0.2*r.Strength
	case indicator.SignalBearish:
		return 0.4 - 0.2*r.Strength
	}
	return 0.5
}

func macdScore(m indicator.MACDResult) float64 {
	switch m.Trend {
	case indicator.SignalBullish:
		return 0.6 + 0.2*m.Strength
	case indicator.SignalBearish:
		return 0.4 - 0.2*m.Strength
	}
	return 0.5
}

func bollingerScore(b indicator.BollingerResult) float64 {
	switch b.Position {
	case indicator.PositionBelowLower:
		return 0.8
	case indicator.PositionAboveUpper:
		return 0.2
	case indicator.PositionLowerHalf:
		return 0.6
	case indicator.PositionUpperHalf:
		return 0.4
	}
	return 0.5
}

func maScore(m indicator.MovingAverageResult) float64 {
	switch m.Trend {
	case indicator.SignalBullish:
		return 0.6 + 0.2*m.Strength
	case indicator.SignalBearish:
		return 0.4 - 0.2*m.Strength
	}
	return 0.5
}

// Price near resistance tends to stall, near support tends to bounce, so the
// buy-pressure score is the inverse of the positional strength.
func srScore(s indicator.SupportResistanceResult) float64 {
	return clamp01(1 - s.Strength)
}

func volumeScore(v indicator.VolumeResult) float64 {
	switch v.Signal {
	case indicator.VolumeHigh:
		return 0.7
	case indicator.VolumeLow:
		return 0.3
	}
	return 0.5
}

// collectSignals emits the unconditional per-indicator buy/sell entries for
// the extremes, regardless of the composite outcome.
func collectSignals(set indicator.Set) []Entry {
	var out []Entry
	switch set.RSI.Signal {
	case indicator.SignalOversold:
		out = append(out, Entry{Type: SideBuy, Indicator: "rsi", Strength: set.RSI.Strength})
	case indicator.SignalOverbought:
		out = append(out, Entry{Type: SideSell, Indicator: "rsi", Strength: set.RSI.Strength})
	}
	switch set.MACD.Trend {
	case indicator.SignalBullish:
		out = append(out, Entry{Type: SideBuy, Indicator: "macd", Strength: set.MACD.Strength})
	case indicator.SignalBearish:
		out = append(out, Entry{Type: SideSell, Indicator: "macd", Strength: set.MACD.Strength})
	}
	switch set.Bollinger.Position {
	case indicator.PositionBelowLower:
		out = append(out, Entry{Type: SideBuy, Indicator: "bollinger", Strength: set.Bollinger.Strength})
	case indicator.PositionAboveUpper:
		out = append(out, Entry{Type: SideSell, Indicator: "bollinger", Strength: set.Bollinger.Strength})
	}
	return out
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
