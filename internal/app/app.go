package app

import (
	"context"
	"time"

	"kairos/internal/advisor"
	"kairos/internal/advisor/profile"
	"kairos/internal/advisor/provider"
	"kairos/internal/config"
	"kairos/internal/engine"
	"kairos/internal/logger"
	"kairos/internal/market"
	"kairos/internal/store/predictionlog"
	httpapi "kairos/internal/transport/http"
)

// App owns the assembled service: market source, advisory chain, engine,
// prediction log and HTTP surface.
type App struct {
	cfg    *config.Config
	engine *engine.Engine
	server *httpapi.Server
	logs   *predictionlog.Store
}

func New(cfg *config.Config) (*App, error) {
	source := market.NewBinanceSource(market.BinanceConfig{
		RESTBaseURL: cfg.Market.RESTBaseURL,
		HTTPTimeout: time.Duration(cfg.Market.HTTPTimeoutSeconds) * time.Second,
	})

	profiles, err := profile.NewRegistry(cfg.Advisor.ProfilePath)
	if err != nil {
		return nil, err
	}
	chain := provider.BuildChain(modelConfigs(cfg), time.Duration(cfg.Advisor.DefaultTimeoutSeconds)*time.Second)
	if len(chain) == 0 {
		logger.Warnf("no advisory providers configured; predictions will use the deterministic fallback")
	}
	adjuster := advisor.NewAdjuster(chain, profiles, time.Duration(cfg.Advisor.OverallDeadlineSeconds)*time.Second)

	var logs *predictionlog.Store
	if cfg.Store.Enabled {
		logs, err = predictionlog.New(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
	}

	eng := engine.New(engine.Config{
		HistoryInterval: cfg.Market.HistoryInterval,
		HistoryLimit:    cfg.Market.HistoryLimit,
		CacheTTL:        time.Duration(cfg.Cache.TTLSeconds) * time.Second,
		CacheBucket:     time.Duration(cfg.Cache.BucketSeconds) * time.Second,
	}, source, adjuster, recorderOrNil(logs))

	server, err := httpapi.NewServer(httpapi.ServerConfig{
		Addr:   cfg.App.HTTPAddr,
		Engine: eng,
		Logs:   logs,
	})
	if err != nil {
		return nil, err
	}

	return &App{cfg: cfg, engine: eng, server: server, logs: logs}, nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- a.server.Start() }()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	if a.logs != nil {
		if err := a.logs.Close(); err != nil {
			logger.Warnf("prediction log close: %v", err)
		}
	}
	return nil
}

// Engine exposes the assembled engine for embedding callers.
func (a *App) Engine() *engine.Engine { return a.engine }

func modelConfigs(cfg *config.Config) []provider.ModelCfg {
	out := make([]provider.ModelCfg, 0, len(cfg.Advisor.Models))
	for _, m := range cfg.Advisor.Models {
		out = append(out, provider.ModelCfg{
			ID:             m.ID,
			APIURL:         m.APIURL,
			APIKey:         m.APIKey,
			Model:          m.Model,
			Enabled:        m.Enabled,
			Headers:        m.Headers,
			TimeoutSeconds: m.TimeoutSeconds,
			MaxRetries:     m.MaxRetries,
		})
	}
	return out
}

// recorderOrNil avoids handing the engine a typed-nil interface value.
func recorderOrNil(logs *predictionlog.Store) engine.Recorder {
	if logs == nil {
		return nil
	}
	return logs
}
