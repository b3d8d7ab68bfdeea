package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kairos/internal/engine"
	"kairos/internal/logger"
	"kairos/internal/store/predictionlog"
)

// Server exposes the prediction engine over a minimal JSON API.
type Server struct {
	addr   string
	router *gin.Engine
	http   *http.Server
}

// ServerConfig wires the server's collaborators. Logs may be nil when the
// prediction log is disabled.
type ServerConfig struct {
	Addr   string
	Engine *engine.Engine
	Logs   *predictionlog.Store
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Engine == nil {
		return nil, errors.New("http server requires an engine")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":9920"
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	h := &handlers{engine: cfg.Engine, logs: cfg.Logs}
	router.GET("/healthz", h.health)
	api := router.Group("/api")
	{
		api.POST("/persistence/predict", h.predict)
		api.POST("/persistence/batch", h.predictBatch)
		api.GET("/analysis/:symbol", h.analyze)
		api.GET("/chart/:symbol", h.chart)
		api.GET("/predictions", h.recentPredictions)
	}

	return &Server{addr: cfg.Addr, router: router}, nil
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Infof("http server listening on %s", s.addr)
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the handler tree for tests.
func (s *Server) Router() http.Handler { return s.router }

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debugf("http %s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}
