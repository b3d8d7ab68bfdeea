package market

import "context"

// HistorySource supplies price/volume history plus a current snapshot for a
// symbol. Implementations may return fewer samples than requested, or none.
type HistorySource interface {
	// FetchHistory returns up to limit chronological samples for symbol.
	FetchHistory(ctx context.Context, symbol, interval string, limit int) ([]PriceSample, error)
	// FetchSnapshot returns the current market view for symbol.
	FetchSnapshot(ctx context.Context, symbol string) (Snapshot, error)
}
