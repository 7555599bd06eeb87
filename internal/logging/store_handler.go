package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/fernandoludvig/finance-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	batchSize     = 50
	flushInterval = 5 * time.Second
)

// LogSink persists a batch of system log records.
type LogSink interface {
	Write(ctx context.Context, batch []models.SystemLog) error
}

// GormSink writes system logs to the system_logs table.
type GormSink struct {
	db *gorm.DB
}

func NewGormSink(db *gorm.DB) *GormSink {
	return &GormSink{db: db}
}

func (s *GormSink) Write(ctx context.Context, batch []models.SystemLog) error {
	return s.db.WithContext(ctx).CreateInBatches(batch, batchSize).Error
}

// StoreHandler is an slog.Handler that batches ERROR+ records into a LogSink.
type StoreHandler struct {
	sink   LogSink
	attrs  []slog.Attr
	shared *storeBuffer
}

type storeBuffer struct {
	mu       sync.Mutex
	buffer   []models.SystemLog
	ticker   *time.Ticker
	flushNow chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func NewStoreHandler(sink LogSink) *StoreHandler {
	h := &StoreHandler{
		sink: sink,
		shared: &storeBuffer{
			buffer: make([]models.SystemLog, 0, batchSize),
			ticker:   time.NewTicker(flushInterval),
			flushNow: make(chan struct{}, 1),
			done:     make(chan struct{}),
		},
	}
	h.shared.wg.Add(1)
	go h.flushLoop()
	return h
}

func (h *StoreHandler) flushLoop() {
	defer h.shared.wg.Done()
	for {
		select {
		case <-h.shared.ticker.C:
			h.flush()
		case <-h.shared.flushNow:
			h.flush()
		case <-h.shared.done:
			h.flush()
			return
		}
	}
}

func (h *StoreHandler) flush() {
	b := h.shared
	b.mu.Lock()
	if len(b.buffer) == 0 {
		b.mu.Unlock()
		return
	}
	batch := b.buffer
	b.buffer = make([]models.SystemLog, 0, batchSize)
	b.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := h.sink.Write(ctx, batch); err != nil {
		// Logged below ERROR so the failure does not loop back into the sink.
		slog.Warn("failed to flush system logs", "error", err, "count", len(batch))
	}
}

// Stop flushes pending records and waits for the flush loop to exit. All
// sink writes happen on that loop, so none run after Stop returns.
func (h *StoreHandler) Stop() {
	h.shared.stopOnce.Do(func() {
		h.shared.ticker.Stop()
		close(h.shared.done)
	})
	h.shared.wg.Wait()
}

// Enabled only handles ERROR and above.
func (h *StoreHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *StoreHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]any)
	collect := func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			entry.RequestID = a.Value.String()
		case "user_id":
			s := a.Value.String()
			entry.UserID = &s
		case "method":
			entry.Method = a.Value.String()
		case "path":
			entry.Path = a.Value.String()
		case "status":
			if a.Value.Kind() == slog.KindInt64 {
				entry.Status = int(a.Value.Int64())
			}
		case "error":
			entry.Error = a.Value.String()
		case "latency_ms":
			switch a.Value.Kind() {
			case slog.KindFloat64:
				entry.LatencyMs = int(math.Round(a.Value.Float64()))
			case slog.KindInt64:
				entry.LatencyMs = int(a.Value.Int64())
			}
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	record.Attrs(collect)

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	b := h.shared
	b.mu.Lock()
	b.buffer = append(b.buffer, entry)
	needFlush := len(b.buffer) >= batchSize
	b.mu.Unlock()

	if needFlush {
		select {
		case b.flushNow <- struct{}{}:
		default:
		}
	}
	return nil
}

// WithAttrs keeps logger-scoped attributes such as request ids; groups are
// flattened.
func (h *StoreHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &StoreHandler{sink: h.sink, attrs: merged, shared: h.shared}
}

func (h *StoreHandler) WithGroup(string) slog.Handler {
	return h
}
