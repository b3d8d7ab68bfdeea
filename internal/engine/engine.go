package engine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"kairos/internal/advisor"
	"kairos/internal/cache"
	"kairos/internal/indicator"
	"kairos/internal/logger"
	"kairos/internal/market"
	"kairos/internal/predictor"
	"kairos/internal/score"
	"kairos/internal/store/predictionlog"
)

// Adviser is the advisory adjuster seam, satisfied by *advisor.Adjuster.
type Adviser interface {
	Advise(ctx context.Context, in advisor.Input) (advisor.Advice, error)
}

// Recorder appends served predictions to the prediction log. Failures are
// logged and absorbed; persistence is never on the request's critical path.
type Recorder interface {
	Save(ctx context.Context, rec predictionlog.Record) error
}

// Config tunes the engine's collaborator usage.
type Config struct {
	HistoryInterval string
	HistoryLimit    int
	CacheTTL        time.Duration
	CacheBucket     time.Duration
}

func (c Config) withDefaults() Config {
	if c.HistoryInterval == "" {
		c.HistoryInterval = "1h"
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = 100
	}
	return c
}

// Engine wires the indicator, scoring, persistence and advisory stages
// behind the prediction cache.
type Engine struct {
	cfg      Config
	source   market.HistorySource // optional
	adviser  Adviser
	recorder Recorder // optional
	cache    *cache.Cache[PersistencePrediction]
}

func New(cfg Config, source market.HistorySource, adviser Adviser, recorder Recorder) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:      cfg,
		source:   source,
		adviser:  adviser,
		recorder: recorder,
		cache:    cache.New[PersistencePrediction](cfg.CacheTTL, cfg.CacheBucket),
	}
}

// PredictSignalPersistence runs the full prediction pipeline for one
// signal. Only an invalid signal descriptor surfaces as an error; advisory
// failures degrade to the deterministic fallback inside the result.
func (e *Engine) PredictSignalPersistence(ctx context.Context, req PredictRequest) (PersistencePrediction, error) {
	if err := req.SignalData.Validate(); err != nil {
		return PersistencePrediction{}, err
	}
	mkt := predictor.MarketContext{}
	if req.MarketData != nil {
		mkt = *req.MarketData
	}
	e.fillVolatility(ctx, req.Symbol, &mkt)

	key := e.cache.Fingerprint(req.SignalData.Type, req.SignalData.Strength, mkt.Volatility, time.Now())
	result, hit, err := e.cache.GetOrCompute(key, func() (PersistencePrediction, error) {
		return e.compute(ctx, req, mkt, key), nil
	})
	if err != nil {
		return PersistencePrediction{}, err
	}
	if hit {
		// Served-from-cache results keep identical predictions but carry a
		// fresh serve time.
		result.Timestamp = time.Now()
	}
	return result, nil
}

func (e *Engine) compute(ctx context.Context, req PredictRequest, mkt predictor.MarketContext, fingerprint string) PersistencePrediction {
	raw := predictor.Predict(req.SignalData, mkt)

	advice, err := e.adviser.Advise(ctx, advisor.Input{
		Signal:      req.SignalData,
		Market:      mkt,
		Predictions: raw,
	})
	if err != nil && !errors.Is(err, advisor.ErrAdvisoryUnavailable) {
		logger.Warnf("advisory adjuster returned unexpected error: %v", err)
	}

	adjusted := applyAdvice(raw, advice)
	result := PersistencePrediction{
		SignalStrength: score.ClassifySignal(req.SignalData.Strength),
		Predictions:    adjusted,
		AIAnalysis: AIAnalysis{
			Reasoning:          advice.Reasoning,
			Confidence:         advice.Confidence,
			RiskFactors:        advice.RiskFactors,
			OpportunityFactors: advice.OpportunityFactors,
		},
		OverallConfidence: overallConfidence(adjusted),
		Timestamp:         time.Now(),
		ModelVersion:      ModelVersion,
	}
	e.record(ctx, req, advice, fingerprint, result)
	return result
}

// applyAdvice shifts every horizon probability by adjustment scaled with
// the advisory confidence, and averages each horizon's confidence with the
// advisory confidence.
func applyAdvice(p predictor.Predictions, adv advisor.Advice) predictor.Predictions {
	shift := adv.Adjustment * adv.Confidence
	blend := func(h predictor.HorizonPrediction) predictor.HorizonPrediction {
		h.Probability = clamp01(h.Probability + shift)
		h.Confidence = clamp01((h.Confidence + adv.Confidence) / 2)
		return h
	}
	p.ShortTerm = blend(p.ShortTerm)
	p.MediumTerm = blend(p.MediumTerm)
	p.LongTerm = blend(p.LongTerm)
	return p
}

func overallConfidence(p predictor.Predictions) float64 {
	return clamp01((p.ShortTerm.Confidence + p.MediumTerm.Confidence + p.LongTerm.Confidence) / 3)
}

// fillVolatility estimates market volatility from recent history when the
// caller left it unset and a history source plus symbol are available.
func (e *Engine) fillVolatility(ctx context.Context, symbol string, mkt *predictor.MarketContext) {
	if mkt.Volatility != nil || e.source == nil || symbol == "" {
		return
	}
	samples, err := e.source.FetchHistory(ctx, symbol, e.cfg.HistoryInterval, e.cfg.HistoryLimit)
	if err != nil {
		logger.Debugf("volatility estimate skipped for %s: %v", symbol, err)
		return
	}
	if vol, ok := indicator.EstimateVolatility(samples); ok {
		mkt.Volatility = &vol
	}
}

func (e *Engine) record(ctx context.Context, req PredictRequest, adv advisor.Advice, fingerprint string, result PersistencePrediction) {
	if e.recorder == nil {
		return
	}
	rec := predictionlog.Record{
		TraceID:        uuid.NewString(),
		Fingerprint:    fingerprint,
		SignalType:     req.SignalData.Type,
		SignalStrength: req.SignalData.Strength,
		AdvisorySource: adv.Source,
		Result:         resultDocument(result),
		CreatedAt:      result.Timestamp,
	}
	if err := e.recorder.Save(ctx, rec); err != nil {
		logger.Warnf("prediction log save failed: %v", err)
	}
}

func resultDocument(result PersistencePrediction) map[string]any {
	return map[string]any{
		"signalStrength":    result.SignalStrength,
		"predictions":       result.Predictions,
		"aiAnalysis":        result.AIAnalysis,
		"overallConfidence": result.OverallConfidence,
		"modelVersion":      result.ModelVersion,
	}
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
