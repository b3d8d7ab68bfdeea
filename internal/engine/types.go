package engine

import (
	"time"

	"kairos/internal/indicator"
	"kairos/internal/predictor"
	"kairos/internal/score"
)

// ModelVersion stamps every prediction served by this engine build.
const ModelVersion = "persistence-v2.1"

// PredictRequest is the wire request for a single persistence prediction.
// Symbol is optional; when present and marketData.volatility is missing the
// engine estimates volatility from recent history.
type PredictRequest struct {
	Symbol      string                     `json:"symbol,omitempty"`
	SignalData  predictor.SignalDescriptor `json:"signalData"`
	MarketData  *predictor.MarketContext   `json:"marketData,omitempty"`
	ContextData map[string]any             `json:"contextData,omitempty"`
}

// AIAnalysis is the advisory layer's contribution to the final result.
type AIAnalysis struct {
	Reasoning          string   `json:"reasoning"`
	Confidence         float64  `json:"confidence"`
	RiskFactors        []string `json:"riskFactors"`
	OpportunityFactors []string `json:"opportunityFactors"`
}

// PersistencePrediction is the integrated result returned to callers.
// Immutable once returned; the engine never mutates a served prediction.
type PersistencePrediction struct {
	SignalStrength    string                `json:"signalStrength"`
	Predictions       predictor.Predictions `json:"predictions"`
	AIAnalysis        AIAnalysis            `json:"aiAnalysis"`
	OverallConfidence float64               `json:"overallConfidence"`
	Timestamp         time.Time             `json:"timestamp"`
	ModelVersion      string                `json:"modelVersion"`
}

// BatchItem is one entry of a batch request.
type BatchItem struct {
	ID          string                     `json:"id"`
	SignalData  predictor.SignalDescriptor `json:"signalData"`
	MarketData  *predictor.MarketContext   `json:"marketData,omitempty"`
	ContextData map[string]any             `json:"contextData,omitempty"`
}

// BatchRequest groups independent signals; one item failing never aborts
// its siblings.
type BatchRequest struct {
	Signals []BatchItem `json:"signals"`
}

type BatchItemResult struct {
	ID               string                 `json:"id"`
	Success          bool                   `json:"success"`
	Error            string                 `json:"error,omitempty"`
	ProcessingTimeMs int64                  `json:"processingTime"`
	Prediction       *PersistencePrediction `json:"prediction,omitempty"`
}

type BatchResult struct {
	Results               []BatchItemResult `json:"results"`
	TotalSignals          int               `json:"totalSignals"`
	SuccessfulPredictions int               `json:"successfulPredictions"`
	FailedPredictions     int               `json:"failedPredictions"`
	TotalProcessingTimeMs int64             `json:"totalProcessingTime"`
	AvgProcessingTimeMs   int64             `json:"averageProcessingTime"`
}

// TechnicalAnalysis is the output of the indicator/score half of the
// pipeline, exposed per symbol.
type TechnicalAnalysis struct {
	Symbol     string        `json:"symbol"`
	Indicators indicator.Set `json:"indicators"`
	Composite  float64       `json:"composite"`
	Strength   string        `json:"strength"`
	Signals    []score.Entry `json:"signals"`
	Timestamp  time.Time     `json:"timestamp"`
}
