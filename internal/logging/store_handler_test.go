package logging

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/fernandoludvig/finance-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	mu    sync.Mutex
	logs  []models.SystemLog
	err   error
	delay time.Duration
}

func (f *fakeSink) Write(_ context.Context, batch []models.SystemLog) error {
	time.Sleep(f.delay)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs = append(f.logs, batch...)
	return f.err
}

func (f *fakeSink) written() []models.SystemLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.SystemLog(nil), f.logs...)
}

func TestStoreHandler_MapsKnownAttributes(t *testing.T) {
	sink := &fakeSink{}
	h := NewStoreHandler(sink)
	logger := slog.New(h).With("request_id", "req-1")

	logger.Error("request failed",
		"method", "POST",
		"path", "/api/transactions",
		"status", 500,
		"error", "boom",
		"latency_ms", 12.6,
		"user_id", "65f0c0ffee",
		"attempt", 2,
	)
	h.Stop()

	logs := sink.written()
	require.Len(t, logs, 1)
	entry := logs[0]
	assert.Equal(t, "ERROR", entry.Level)
	assert.Equal(t, "request failed", entry.Message)
	assert.Equal(t, "req-1", entry.RequestID)
	assert.Equal(t, "POST", entry.Method)
	assert.Equal(t, "/api/transactions", entry.Path)
	assert.Equal(t, 500, entry.Status)
	assert.Equal(t, "boom", entry.Error)
	assert.Equal(t, 13, entry.LatencyMs)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "65f0c0ffee", *entry.UserID)

	var extra map[string]any
	require.NoError(t, json.Unmarshal(entry.Extra, &extra))
	assert.Equal(t, float64(2), extra["attempt"])
}

func TestStoreHandler_IgnoresBelowError(t *testing.T) {
	sink := &fakeSink{}
	h := NewStoreHandler(sink)
	logger := slog.New(h)

	logger.Info("hello")
	logger.Warn("careful")
	h.Stop()

	assert.Empty(t, sink.written())
}

func TestStoreHandler_FullBatchIsWrittenBeforeStopReturns(t *testing.T) {
	sink := &fakeSink{delay: 50 * time.Millisecond}
	h := NewStoreHandler(sink)
	logger := slog.New(h)

	for i := 0; i < batchSize; i++ {
		logger.Error("burst", "i", i)
	}
	h.Stop()

	assert.Len(t, sink.written(), batchSize)
}

func TestStoreHandler_StopIsIdempotent(t *testing.T) {
	h := NewStoreHandler(&fakeSink{err: errors.New("down")})
	slog.New(h).Error("lost")
	h.Stop()
	h.Stop()
}

func TestMultiHandler_SkipsNil(t *testing.T) {
	sink := &fakeSink{}
	store := NewStoreHandler(sink)
	m := NewMultiHandler(nil, store)

	assert.False(t, m.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, m.Enabled(context.Background(), slog.LevelError))

	slog.New(m).Error("kept")
	store.Stop()
	assert.Len(t, sink.written(), 1)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
