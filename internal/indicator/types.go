package indicator

import "errors"

// ErrInsufficientData is returned when fewer than two price samples are
// available. It is the only hard failure the calculator produces; any other
// shortage of history degrades to the simplified estimator instead.
var ErrInsufficientData = errors.New("insufficient price data: at least 2 samples required")

// Signal labels shared by the indicator records.
const (
	SignalOverbought = "OVERBOUGHT"
	SignalOversold   = "OVERSOLD"
	SignalBullish    = "BULLISH"
	SignalBearish    = "BEARISH"
	SignalNeutral    = "NEUTRAL"

	PositionAboveUpper = "ABOVE_UPPER"
	PositionBelowLower = "BELOW_LOWER"
	PositionUpperHalf  = "UPPER_HALF"
	PositionLowerHalf  = "LOWER_HALF"
	PositionMiddle     = "MIDDLE"

	ZoneNearResistance = "NEAR_RESISTANCE"
	ZoneNearSupport    = "NEAR_SUPPORT"
	ZoneMidRange       = "MID_RANGE"

	VolumeHigh   = "HIGH"
	VolumeLow    = "LOW"
	VolumeNormal = "NORMAL"
)

// Default lookback periods.
const (
	rsiPeriod       = 14
	macdFastPeriod  = 12
	macdSlowPeriod  = 26
	macdSignalSpan  = 9
	bollingerPeriod = 20
	bollingerK      = 2.0
	srWindow        = 20
	volumeWindow    = 10
)

type RSIResult struct {
	Value    float64 `json:"value"`
	Signal   string  `json:"signal"`
	Strength float64 `json:"strength"`
}

type MACDResult struct {
	Line       float64 `json:"line"`
	SignalLine float64 `json:"signal_line"`
	Histogram  float64 `json:"histogram"`
	Trend      string  `json:"trend"`
	Strength   float64 `json:"strength"`
}

type BollingerResult struct {
	Upper    float64 `json:"upper"`
	Middle   float64 `json:"middle"`
	Lower    float64 `json:"lower"`
	Position string  `json:"position"`
	Strength float64 `json:"strength"`
}

type MovingAverageResult struct {
	SMA20    float64 `json:"sma20"`
	SMA50    float64 `json:"sma50"`
	EMA12    float64 `json:"ema12"`
	EMA26    float64 `json:"ema26"`
	Trend    string  `json:"trend"`
	Strength float64 `json:"strength"`
}

type SupportResistanceResult struct {
	Support    float64 `json:"support"`
	Resistance float64 `json:"resistance"`
	Zone       string  `json:"zone"`
	Strength   float64 `json:"strength"`
}

type VolumeResult struct {
	Ratio    float64 `json:"ratio"`
	Signal   string  `json:"signal"`
	Strength float64 `json:"strength"`
}

// Set is an immutable snapshot of all computed indicators for one analysis
// call. Degraded marks results produced by the simplified estimator.
type Set struct {
	RSI               RSIResult               `json:"rsi"`
	MACD              MACDResult              `json:"macd"`
	Bollinger         BollingerResult         `json:"bollinger"`
	MovingAverages    MovingAverageResult     `json:"moving_averages"`
	SupportResistance SupportResistanceResult `json:"support_resistance"`
	Volume            VolumeResult            `json:"volume_analysis"`
	Degraded          bool                    `json:"degraded,omitempty"`
}
