package engine

import (
	"context"
	"fmt"
	"time"

	"kairos/internal/indicator"
	"kairos/internal/report"
	"kairos/internal/score"
)

// AnalyzeTechnical fetches history plus a snapshot for symbol and runs the
// indicator/scoring half of the pipeline. ErrInsufficientData propagates;
// short history silently degrades to the simplified estimator.
func (e *Engine) AnalyzeTechnical(ctx context.Context, symbol string) (TechnicalAnalysis, error) {
	if e.source == nil {
		return TechnicalAnalysis{}, fmt.Errorf("no market history source configured")
	}
	samples, err := e.source.FetchHistory(ctx, symbol, e.cfg.HistoryInterval, e.cfg.HistoryLimit)
	if err != nil {
		return TechnicalAnalysis{}, fmt.Errorf("fetch history for %s: %w", symbol, err)
	}
	snap, err := e.source.FetchSnapshot(ctx, symbol)
	if err != nil {
		return TechnicalAnalysis{}, fmt.Errorf("fetch snapshot for %s: %w", symbol, err)
	}
	set, err := indicator.Compute(samples, snap)
	if err != nil {
		return TechnicalAnalysis{}, err
	}
	ts := score.Aggregate(set)
	return TechnicalAnalysis{
		Symbol:     snap.Symbol,
		Indicators: set,
		Composite:  ts.Score,
		Strength:   score.Classify(ts.Score),
		Signals:    ts.Signals,
		Timestamp:  time.Now(),
	}, nil
}

// ChartInput gathers the raw material for the diagnostic chart page.
func (e *Engine) ChartInput(ctx context.Context, symbol string) (report.Input, error) {
	if e.source == nil {
		return report.Input{}, fmt.Errorf("no market history source configured")
	}
	samples, err := e.source.FetchHistory(ctx, symbol, e.cfg.HistoryInterval, e.cfg.HistoryLimit)
	if err != nil {
		return report.Input{}, fmt.Errorf("fetch history for %s: %w", symbol, err)
	}
	snap, err := e.source.FetchSnapshot(ctx, symbol)
	if err != nil {
		return report.Input{}, fmt.Errorf("fetch snapshot for %s: %w", symbol, err)
	}
	set, err := indicator.Compute(samples, snap)
	if err != nil {
		return report.Input{}, err
	}
	return report.Input{Symbol: snap.Symbol, Samples: samples, Set: set}, nil
}
