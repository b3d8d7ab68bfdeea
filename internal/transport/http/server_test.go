package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kairos/internal/advisor"
	"kairos/internal/engine"
	"kairos/internal/market"
)

type fallbackAdviser struct{}

func (fallbackAdviser) Advise(ctx context.Context, in advisor.Input) (advisor.Advice, error) {
	return advisor.Fallback(""), advisor.ErrAdvisoryUnavailable
}

type fakeSource struct {
	samples []market.PriceSample
	err     error
}

func (f *fakeSource) FetchHistory(ctx context.Context, symbol, interval string, limit int) ([]market.PriceSample, error) {
	return f.samples, f.err
}

func (f *fakeSource) FetchSnapshot(ctx context.Context, symbol string) (market.Snapshot, error) {
	if f.err != nil {
		return market.Snapshot{}, f.err
	}
	price := 0.0
	if n := len(f.samples); n > 0 {
		price = f.samples[n-1].Price
	}
	return market.Snapshot{Symbol: symbol, CurrentPrice: price, TotalVolume: 1000}, nil
}

func sampleHistory(n int) []market.PriceSample {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	out := make([]market.PriceSample, n)
	for i := range out {
		out[i] = market.PriceSample{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			Price:     100 + float64(i),
			Volume:    1000,
		}
	}
	return out
}

func testServer(t *testing.T, src *fakeSource) *Server {
	t.Helper()
	var hs market.HistorySource
	if src != nil {
		hs = src
	}
	eng := engine.New(engine.Config{}, hs, fallbackAdviser{}, nil)
	srv, err := NewServer(ServerConfig{Engine: eng})
	require.NoError(t, err)
	return srv
}

func TestNewServerRequiresEngine(t *testing.T) {
	_, err := NewServer(ServerConfig{})
	assert.Error(t, err)
}

func TestHealthz(t *testing.T) {
	srv := testServer(t, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, engine.ModelVersion, body["modelVersion"])
}

func TestPredictEndpoint(t *testing.T) {
	srv := testServer(t, nil)
	reqBody := `{
	  "signalData": {"type": "buy", "strength": 0.8, "technical": {"rsi": 72}},
	  "marketData": {"volatility": 0.9}
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/persistence/predict", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var pred engine.PersistencePrediction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pred))
	assert.Equal(t, "strong", pred.SignalStrength)
	assert.Equal(t, engine.ModelVersion, pred.ModelVersion)
	assert.Equal(t, "1-4시간", pred.Predictions.ShortTerm.Duration)
	assert.InDelta(t, 0.5, pred.AIAnalysis.Confidence, 1e-9)
}

func TestPredictEndpointRejectsInvalidSignal(t *testing.T) {
	srv := testServer(t, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/persistence/predict",
		strings.NewReader(`{"signalData": {"strength": 0.5}}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "signal type")
}

func TestPredictEndpointRejectsMalformedBody(t *testing.T) {
	srv := testServer(t, nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/persistence/predict", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBatchEndpoint(t *testing.T) {
	srv := testServer(t, nil)
	reqBody := `{"signals": [
	  {"id": "s1", "signalData": {"type": "buy", "strength": 0.7}},
	  {"id": "s2", "signalData": {}},
	  {"id": "s3", "signalData": {"type": "sell", "strength": 0.4}}
	]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/persistence/batch", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res engine.BatchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 3, res.TotalSignals)
	assert.Equal(t, 2, res.SuccessfulPredictions)
	assert.Equal(t, 1, res.FailedPredictions)
	assert.NotEmpty(t, res.Results[1].Error)
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv := testServer(t, &fakeSource{samples: sampleHistory(30)})
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analysis/BTCUSDT", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res engine.TechnicalAnalysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "BTCUSDT", res.Symbol)
	assert.GreaterOrEqual(t, res.Composite, 0.0)
	assert.LessOrEqual(t, res.Composite, 1.0)
	assert.NotEmpty(t, res.Strength)
}

func TestAnalyzeEndpointInsufficientData(t *testing.T) {
	srv := testServer(t, &fakeSource{samples: sampleHistory(1)})
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analysis/BTCUSDT", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAnalyzeEndpointUpstreamFailure(t *testing.T) {
	srv := testServer(t, &fakeSource{err: fmt.Errorf("exchange down")})
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/analysis/BTCUSDT", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestChartEndpoint(t *testing.T) {
	srv := testServer(t, &fakeSource{samples: sampleHistory(30)})
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chart/BTCUSDT", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "BTCUSDT")
}

func TestPredictionsEndpointDisabled(t *testing.T) {
	srv := testServer(t, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/predictions", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
