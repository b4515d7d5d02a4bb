package logger

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler captures every record it handles.
type recordingHandler struct {
	mu      sync.Mutex
	level   slog.Level
	records []slog.Record
}

func (h *recordingHandler) Enabled(_ context.Context, l slog.Level) bool { return l >= h.level }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *recordingHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(_ string) slog.Handler      { return h }

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

func TestMultiHandlerFansOutToEverySink(t *testing.T) {
	a := &recordingHandler{level: slog.LevelDebug}
	b := &recordingHandler{level: slog.LevelDebug}

	log := slog.New(NewMultiHandler(a, b))
	log.Info("order placed", "order_id", 42)
	log.Debug("cache miss")

	assert.Equal(t, 2, a.count())
	assert.Equal(t, 2, b.count())
}

func TestMultiHandlerSkipsDisabledSinks(t *testing.T) {
	quiet := &recordingHandler{level: slog.LevelError}
	chatty := &recordingHandler{level: slog.LevelDebug}

	log := slog.New(NewMultiHandler(quiet, chatty))
	log.Info("only one sink wants this")

	assert.Equal(t, 0, quiet.count())
	assert.Equal(t, 1, chatty.count())
}

func TestSetupMongoSinkWithoutURIKeepsHandler(t *testing.T) {
	t.Setenv("LOG_MONGO_URI", "")

	before := L
	SetupMongoSink()

	require.Same(t, before, L)
	assert.Nil(t, mongoSink)
}
