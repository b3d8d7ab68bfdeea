package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PredictBatch processes signals sequentially and independently. Per-item
// failures are captured in the item's result entry; the batch itself only
// errs on an empty request.
func (e *Engine) PredictBatch(ctx context.Context, req BatchRequest) (BatchResult, error) {
	if len(req.Signals) == 0 {
		return BatchResult{}, fmt.Errorf("batch requires at least one signal")
	}
	out := BatchResult{
		Results:      make([]BatchItemResult, 0, len(req.Signals)),
		TotalSignals: len(req.Signals),
	}
	for _, item := range req.Signals {
		id := item.ID
		if id == "" {
			id = uuid.NewString()
		}
		started := time.Now()
		pred, err := e.PredictSignalPersistence(ctx, PredictRequest{
			SignalData:  item.SignalData,
			MarketData:  item.MarketData,
			ContextData: item.ContextData,
		})
		elapsed := time.Since(started).Milliseconds()
		res := BatchItemResult{ID: id, ProcessingTimeMs: elapsed}
		if err != nil {
			res.Success = false
			res.Error = err.Error()
			out.FailedPredictions++
		} else {
			res.Success = true
			res.Prediction = &pred
			out.SuccessfulPredictions++
		}
		out.Results = append(out.Results, res)
		out.TotalProcessingTimeMs += elapsed
	}
	out.AvgProcessingTimeMs = out.TotalProcessingTimeMs / int64(out.TotalSignals)
	return out, nil
}
