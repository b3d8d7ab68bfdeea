package market

import "time"

// PriceSample is one point of an asset's price/volume history. Sequences are
// chronological; spacing between samples is not required to be uniform.
type PriceSample struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
	Volume    float64   `json:"volume"`
	MarketCap float64   `json:"market_cap,omitempty"`
}

// Snapshot is the current market view of a single asset.
type Snapshot struct {
	Symbol            string  `json:"symbol"`
	CurrentPrice      float64 `json:"current_price"`
	PriceChangePct24h float64 `json:"price_change_percentage_24h"`
	TotalVolume       float64 `json:"total_volume"`
	MarketCap         float64 `json:"market_cap"`
}

// Closes extracts the price series.
func Closes(samples []PriceSample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Price
	}
	return out
}

// Volumes extracts the volume series.
func Volumes(samples []PriceSample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Volume
	}
	return out
}
