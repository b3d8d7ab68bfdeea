package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func f64(v float64) *float64 { return &v }

func fullSignal() SignalDescriptor {
	return SignalDescriptor{
		Type:     "buy",
		Strength: 0.8,
		Technical: &TechnicalFactors{
			RSI:               f64(72),
			MACD:              f64(0.6),
			Bollinger:         f64(0.9),
			Volume:            f64(0.8),
			SupportResistance: f64(0.4),
		},
		Fundamental: &FundamentalFactors{
			NewsSentiment:   f64(0.7),
			SocialSentiment: f64(0.6),
			WhaleActivity:   f64(0.3),
			DefiActivity:    f64(0.5),
			MarketCap:       f64(0.9),
		},
	}
}

func fullMarket() MarketContext {
	return MarketContext{
		Volatility:    f64(0.4),
		TrendStrength: f64(0.7),
		Correlation:   f64(0.5),
		Liquidity:     f64(0.8),
		TimeOfDay:     f64(0.5),
	}
}

func TestPredictDurations(t *testing.T) {
	p := Predict(fullSignal(), fullMarket())
	assert.Equal(t, "1-4시간", p.ShortTerm.Duration)
	assert.Equal(t, "4-24시간", p.MediumTerm.Duration)
	assert.Equal(t, "1-7일", p.LongTerm.Duration)
}

func TestPredictBounds(t *testing.T) {
	inputs := []struct {
		signal SignalDescriptor
		market MarketContext
	}{
		{fullSignal(), fullMarket()},
		{SignalDescriptor{Type: "buy", Strength: 0.5}, MarketContext{}},
		{SignalDescriptor{Type: "sell", Strength: 1, Technical: &TechnicalFactors{RSI: f64(5)}}, MarketContext{Volatility: f64(1)}},
	}
	for _, in := range inputs {
		p := Predict(in.signal, in.market)
		for _, h := range []HorizonPrediction{p.ShortTerm, p.MediumTerm, p.LongTerm} {
			assert.GreaterOrEqual(t, h.Probability, 0.0)
			assert.LessOrEqual(t, h.Probability, 1.0)
			assert.GreaterOrEqual(t, h.Confidence, 0.0)
			assert.LessOrEqual(t, h.Confidence, 1.0)
		}
	}
}

func TestPredictEmptyInputsYieldZero(t *testing.T) {
	p := Predict(SignalDescriptor{Type: "buy", Strength: 0.5}, MarketContext{})
	for _, h := range []HorizonPrediction{p.ShortTerm, p.MediumTerm, p.LongTerm} {
		assert.Zero(t, h.Probability)
		assert.Zero(t, h.Confidence)
		assert.Empty(t, h.Factors)
	}
}

func TestAbsentFactorWeightNotRedistributed(t *testing.T) {
	// Technical only: short-term probability is capped at the technical
	// weight even for a perfectly persistent reading.
	signal := SignalDescriptor{
		Type:      "buy",
		Strength:  0.9,
		Technical: &TechnicalFactors{RSI: f64(10)}, // persistence 0.8
	}
	p := Predict(signal, MarketContext{})
	assert.InDelta(t, 0.8*0.40, p.ShortTerm.Probability, 1e-9)
	assert.Equal(t, []string{"technical"}, p.ShortTerm.Factors)
	assert.InDelta(t, 0.3, p.ShortTerm.Confidence, 1e-9)

	// Long term has no technical input at all.
	assert.Zero(t, p.LongTerm.Probability)
	assert.Empty(t, p.LongTerm.Factors)
}

func TestShortTermComposition(t *testing.T) {
	signal := SignalDescriptor{
		Type:     "buy",
		Strength: 0.7,
		Technical: &TechnicalFactors{
			RSI:    f64(10),  // 0.8
			Volume: f64(0.5), // 0.6
		},
	}
	market := MarketContext{Volatility: f64(0.5)} // 0.5
	p := Predict(signal, market)

	technical := (0.8 + 0.6) / 2
	want := technical*0.40 + 0.6*0.20 + 0.5*0.15
	assert.InDelta(t, want, p.ShortTerm.Probability, 1e-9)
	assert.Equal(t, []string{"technical", "volume", "volatility"}, p.ShortTerm.Factors)
	// 0.3 technical + 0.1 volume + 0.1 volatility
	assert.InDelta(t, 0.5, p.ShortTerm.Confidence, 1e-9)
}

func TestMediumTermFactors(t *testing.T) {
	p := Predict(fullSignal(), fullMarket())
	assert.Equal(t, []string{"technical", "fundamental", "market"}, p.MediumTerm.Factors)
	// 0.3 + 0.3 + 0.2
	assert.InDelta(t, 0.8, p.MediumTerm.Confidence, 1e-9)
	assert.Equal(t, []string{"fundamental", "market", "correlation"}, p.LongTerm.Factors)
	// 0.3 + 0.2 + 0.1
	assert.InDelta(t, 0.6, p.LongTerm.Confidence, 1e-9)
}

func TestRSIPersistenceMapping(t *testing.T) {
	assert.InDelta(t, 0.8, rsiPersistence(10), 1e-9)
	assert.InDelta(t, 0.8, rsiPersistence(29.9), 1e-9)
	assert.InDelta(t, 0.8-0.5*(40.0/70.0), rsiPersistence(70), 1e-9)
	assert.InDelta(t, 0.3, rsiPersistence(100), 1e-9)
	assert.InDelta(t, 0.3, rsiPersistence(140), 1e-9)
	// Monotone non-increasing above 30.
	prev := rsiPersistence(30)
	for rsi := 31.0; rsi <= 100; rsi++ {
		cur := rsiPersistence(rsi)
		assert.LessOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestVolatilityPersistenceMapping(t *testing.T) {
	assert.InDelta(t, 0.8, volatilityPersistence(0), 1e-9)
	assert.InDelta(t, 0.2, volatilityPersistence(1), 1e-9)
	assert.InDelta(t, 0.2, volatilityPersistence(3), 1e-9)
	assert.Greater(t, volatilityPersistence(0.2), volatilityPersistence(0.8))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, SignalDescriptor{Type: "buy", Strength: 0.5}.Validate())
	assert.Error(t, SignalDescriptor{Strength: 0.5}.Validate())
	assert.Error(t, SignalDescriptor{Type: "  ", Strength: 0.5}.Validate())
	assert.Error(t, SignalDescriptor{Type: "buy"}.Validate())
	assert.Error(t, SignalDescriptor{Type: "buy", Strength: 1.2}.Validate())
	assert.Error(t, SignalDescriptor{Type: "buy", Strength: -0.1}.Validate())
	assert.NoError(t, SignalDescriptor{Type: "buy", Strength: 1}.Validate())
}
