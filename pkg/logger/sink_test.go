package logger_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/logger"
)

type memorySink struct {
	mu      sync.Mutex
	batches [][]logger.Entry
}

func (m *memorySink) WriteEntries(_ context.Context, entries []logger.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, append([]logger.Entry(nil), entries...))
	return nil
}

func (m *memorySink) all() []logger.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []logger.Entry
	for _, b := range m.batches {
		out = append(out, b...)
	}
	return out
}

func TestSinkHandlerBatchesAndFlushesOnClose(t *testing.T) {
	sink := &memorySink{}
	h := logger.NewSinkHandler(sink, logger.SinkOptions{BatchSize: 2, Flush: time.Hour, Level: slog.LevelInfo})
	log := slog.New(h).With("request_id", "req-9")

	log.Debug("dropped by level")
	log.Info("one", "order_id", 7)
	log.WithGroup("db").Warn("two", "table", "orders")
	log.Error("three")
	h.Close()

	entries := sink.all()
	require.Len(t, entries, 3)
	assert.Equal(t, "one", entries[0].Msg)
	assert.Equal(t, "req-9", entries[0].RequestID)
	assert.Equal(t, map[string]any{"order_id": int64(7)}, entries[0].Attrs)
	assert.Equal(t, "WARN", entries[1].Level)
	assert.Equal(t, map[string]any{"db.table": "orders"}, entries[1].Attrs)
	assert.Nil(t, entries[2].Attrs)
	assert.Len(t, sink.batches[0], 2, "first batch is written when full")

	h.Close()
}

func TestTeeWritesToBoth(t *testing.T) {
	prev := logger.L
	t.Cleanup(func() { logger.L = prev; slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger.L = logger.New(&buf, "production", "info")

	sink := &memorySink{}
	h := logger.NewSinkHandler(sink, logger.SinkOptions{})
	logger.Tee(h)

	logger.Info("shipped", "k", "v")
	h.Close()

	assert.Contains(t, buf.String(), `"msg":"shipped"`)
	entries := sink.all()
	require.Len(t, entries, 1)
	assert.Equal(t, "shipped", entries[0].Msg)
}

type brokenSink struct{}

func (brokenSink) WriteEntries(context.Context, []logger.Entry) error {
	return errors.New("connection refused")
}

func TestSinkFailuresAreCountedAndReportedOnce(t *testing.T) {
	var stderr bytes.Buffer
	h := logger.NewSinkHandler(brokenSink{}, logger.SinkOptions{BatchSize: 1, Flush: time.Hour, ErrorLog: &stderr})
	log := slog.New(h)

	log.Info("a")
	log.Info("b")
	log.Info("c")
	h.Close()

	assert.Equal(t, int64(3), h.Failed())
	assert.Equal(t, 1, strings.Count(stderr.String(), "sink write failed"))
	assert.Contains(t, stderr.String(), "connection refused")
}
