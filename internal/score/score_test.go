package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kairos/internal/indicator"
)

func bullishSet() indicator.Set {
	return indicator.Set{
		RSI:               indicator.RSIResult{Value: 25, Signal: indicator.SignalOversold, Strength: 0.2},
		MACD:              indicator.MACDResult{Trend: indicator.SignalBullish, Strength: 0.8},
		Bollinger:         indicator.BollingerResult{Position: indicator.PositionBelowLower, Strength: 0.9},
		MovingAverages:    indicator.MovingAverageResult{Trend: indicator.SignalBullish, Strength: 0.6},
		SupportResistance: indicator.SupportResistanceResult{Zone: indicator.ZoneNearSupport, Strength: 0.2},
		Volume:            indicator.VolumeResult{Signal: indicator.VolumeHigh, Ratio: 2.4, Strength: 1},
	}
}

func bearishSet() indicator.Set {
	return indicator.Set{
		RSI:               indicator.RSIResult{Value: 82, Signal: indicator.SignalOverbought, Strength: 0.4},
		MACD:              indicator.MACDResult{Trend: indicator.SignalBearish, Strength: 0.7},
		Bollinger:         indicator.BollingerResult{Position: indicator.PositionAboveUpper, Strength: 0.8},
		MovingAverages:    indicator.MovingAverageResult{Trend: indicator.SignalBearish, Strength: 0.5},
		SupportResistance: indicator.SupportResistanceResult{Zone: indicator.ZoneNearResistance, Strength: 0.8},
		Volume:            indicator.VolumeResult{Signal: indicator.VolumeLow, Ratio: 0.3, Strength: 0.7},
	}
}

func TestAggregateBounds(t *testing.T) {
	for _, set := range []indicator.Set{bullishSet(), bearishSet(), {}} {
		ts := Aggregate(set)
		assert.GreaterOrEqual(t, ts.Score, 0.0)
		assert.LessOrEqual(t, ts.Score, 1.0)
	}
}

func TestAggregateDirection(t *testing.T) {
	bull := Aggregate(bullishSet())
	bear := Aggregate(bearishSet())
	assert.Greater(t, bull.Score, 0.6)
	assert.Less(t, bear.Score, 0.4)
	assert.Greater(t, bull.Score, bear.Score)
}

func TestAggregateEmptySetScoresZero(t *testing.T) {
	ts := Aggregate(indicator.Set{})
	assert.Zero(t, ts.Score)
	assert.Empty(t, ts.Signals)
}

func TestAggregateRenormalizesMissingIndicators(t *testing.T) {
	// RSI alone: the composite must equal the RSI score exactly, not the
	// RSI score scaled by its nominal weight.
	set := indicator.Set{
		RSI: indicator.RSIResult{Value: 25, Signal: indicator.SignalOversold, Strength: 0.2},
	}
	ts := Aggregate(set)
	assert.InDelta(t, 0.8, ts.Score, 1e-9)
}

func TestAggregateWeightedMean(t *testing.T) {
	// RSI oversold (0.8, w .25) + MACD bearish strength 1 (0.2, w .25):
	// composite = (0.8*.25 + 0.2*.25) / 0.5 = 0.5.
	set := indicator.Set{
		RSI:  indicator.RSIResult{Signal: indicator.SignalOversold},
		MACD: indicator.MACDResult{Trend: indicator.SignalBearish, Strength: 1},
	}
	ts := Aggregate(set)
	assert.InDelta(t, 0.5, ts.Score, 1e-9)
}

func TestCollectSignals(t *testing.T) {
	bull := Aggregate(bullishSet())
	var kinds []string
	for _, s := range bull.Signals {
		kinds = append(kinds, s.Type+":"+s.Indicator)
	}
	assert.ElementsMatch(t, []string{"BUY:rsi", "BUY:macd", "BUY:bollinger"}, kinds)

	bear := Aggregate(bearishSet())
	for _, s := range bear.Signals {
		assert.Equal(t, SideSell, s.Type)
	}
	assert.Len(t, bear.Signals, 3)
}

func TestClassifyThresholds(t *testing.T) {
	cases := map[float64]string{
		0.0:  StrengthWeak,
		0.29: StrengthWeak,
		0.3:  StrengthModerate,
		0.59: StrengthModerate,
		0.6:  StrengthStrong,
		0.79: StrengthStrong,
		0.8:  StrengthVeryStrong,
		1.0:  StrengthVeryStrong,
	}
	for in, want := range cases {
		assert.Equal(t, want, Classify(in), "Classify(%v)", in)
	}
}

func TestClassifySignalKeepsPointEightStrong(t *testing.T) {
	assert.Equal(t, StrengthStrong, ClassifySignal(0.8))
	assert.Equal(t, StrengthVeryStrong, ClassifySignal(0.81))
	assert.Equal(t, StrengthModerate, ClassifySignal(0.45))
	assert.Equal(t, StrengthWeak, ClassifySignal(0.1))
}

func TestClassifyMonotone(t *testing.T) {
	rank := map[string]int{
		StrengthWeak:       0,
		StrengthModerate:   1,
		StrengthStrong:     2,
		StrengthVeryStrong: 3,
	}
	prev := -1
	for s := 0.0; s <= 1.0; s += 0.01 {
		r := rank[Classify(s)]
		assert.GreaterOrEqual(t, r, prev)
		prev = r
	}
}
