package predictionlog

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "predictions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNewRejectsEmptyPath(t *testing.T) {
	_, err := New("  ")
	assert.Error(t, err)
}

func TestSaveAndRecent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	rec := Record{
		TraceID:        "trace-1",
		Fingerprint:    "buy|0.80|0.50|123",
		SignalType:     "buy",
		SignalStrength: 0.8,
		AdvisorySource: "primary",
		Result:         map[string]any{"signalStrength": "strong", "overallConfidence": 0.55},
		CreatedAt:      time.Now(),
	}
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "trace-1", got[0].TraceID)
	assert.Equal(t, "buy", got[0].SignalType)
	assert.InDelta(t, 0.8, got[0].SignalStrength, 1e-9)
	assert.Equal(t, "strong", got[0].Result["signalStrength"])
}

func TestRecentOrderAndLimit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Save(ctx, Record{
			TraceID:   fmt.Sprintf("trace-%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := s.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "trace-4", got[0].TraceID)
	assert.Equal(t, "trace-2", got[2].TraceID)
}

func TestRecentClampsLimit(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Save(context.Background(), Record{TraceID: "t"}))

	got, err := s.Recent(context.Background(), -1)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = s.Recent(context.Background(), 10_000)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSaveFillsCreatedAt(t *testing.T) {
	s := testStore(t)
	require.NoError(t, s.Save(context.Background(), Record{TraceID: "t"}))
	got, err := s.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].CreatedAt.IsZero())
}
