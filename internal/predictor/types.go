package predictor

import (
	"fmt"
	"strings"
)

// TechnicalFactors carries the caller's view of the signal's technical
// backdrop. Nil fields are excluded from factor averages entirely; they are
// never defaulted to zero.
type TechnicalFactors struct {
	RSI               *float64 `json:"rsi,omitempty"`
	MACD              *float64 `json:"macd,omitempty"`
	Bollinger         *float64 `json:"bollinger,omitempty"`
	Volume            *float64 `json:"volume,omitempty"`
	SupportResistance *float64 `json:"support_resistance,omitempty"`
}

// FundamentalFactors are normalized [0,1] readings of off-chart activity.
type FundamentalFactors struct {
	NewsSentiment   *float64 `json:"news_sentiment,omitempty"`
	SocialSentiment *float64 `json:"social_sentiment,omitempty"`
	WhaleActivity   *float64 `json:"whale_activity,omitempty"`
	DefiActivity    *float64 `json:"defi_activity,omitempty"`
	MarketCap       *float64 `json:"market_cap,omitempty"`
}

// SignalDescriptor is the observed trading signal whose persistence is being
// predicted.
type SignalDescriptor struct {
	Type        string              `json:"type"`
	Strength    float64             `json:"strength"`
	Technical   *TechnicalFactors   `json:"technical,omitempty"`
	Fundamental *FundamentalFactors `json:"fundamental,omitempty"`
}

// Validate reports whether the descriptor carries the minimum required
// fields for a prediction.
func (s SignalDescriptor) Validate() error {
	if strings.TrimSpace(s.Type) == "" {
		return fmt.Errorf("signal type is required")
	}
	if s.Strength <= 0 || s.Strength > 1 {
		return fmt.Errorf("signal strength must be in (0,1], got %v", s.Strength)
	}
	return nil
}

// MarketContext holds normalized [0,1] market-wide readings; nil means
// unspecified.
type MarketContext struct {
	Volatility    *float64 `json:"volatility,omitempty"`
	TrendStrength *float64 `json:"trend_strength,omitempty"`
	Correlation   *float64 `json:"correlation,omitempty"`
	Liquidity     *float64 `json:"liquidity,omitempty"`
	TimeOfDay     *float64 `json:"time_of_day,omitempty"`
}

// HorizonPrediction is the persistence estimate for one time horizon.
type HorizonPrediction struct {
	Probability float64  `json:"probability"`
	Confidence  float64  `json:"confidence"`
	Duration    string   `json:"duration"`
	Factors     []string `json:"factors"`
}

// Predictions groups the three fixed horizons.
type Predictions struct {
	ShortTerm  HorizonPrediction `json:"shortTerm"`
	MediumTerm HorizonPrediction `json:"mediumTerm"`
	LongTerm   HorizonPrediction `json:"longTerm"`
}

// Horizon duration labels, kept verbatim from the original service contract.
const (
	DurationShort  = "1-4시간"
	DurationMedium = "4-24시간"
	DurationLong   = "1-7일"
)
