package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Entry is one log record as shipped to a Sink.
type Entry struct {
	Time      time.Time      `bson:"time"`
	Level     string         `bson:"level"`
	Msg       string         `bson:"msg"`
	RequestID string         `bson:"request_id,omitempty"`
	Attrs     map[string]any `bson:"attrs,omitempty"`
}

// Sink stores batches of entries, e.g. a document collection.
type Sink interface {
	WriteEntries(ctx context.Context, entries []Entry) error
}

// SinkOptions tune a SinkHandler. Zero values pick the defaults.
type SinkOptions struct {
	Level     slog.Leveler
	QueueSize int           // default 4096
	BatchSize int           // default 50
	Flush     time.Duration // default 2s

	// ErrorLog receives a single line the first time a batch fails to
	// write. Default os.Stderr.
	ErrorLog io.Writer
}

// SinkHandler is an slog.Handler that queues records and writes them to a
// Sink from one background goroutine. When the queue is full the record is
// dropped; Handle never blocks.
type SinkHandler struct {
	shared *sinkState
	attrs  []slog.Attr
	group  string
}

type sinkState struct {
	sink      Sink
	level     slog.Leveler
	batchSize int
	flush     time.Duration
	errorLog  io.Writer
	failed    atomic.Int64
	reported  atomic.Bool
	queue     chan Entry
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewSinkHandler starts the writer goroutine. Call Close to flush and stop.
func NewSinkHandler(sink Sink, opts SinkOptions) *SinkHandler {
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 4096
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 50
	}
	if opts.Flush <= 0 {
		opts.Flush = 2 * time.Second
	}
	if opts.ErrorLog == nil {
		opts.ErrorLog = os.Stderr
	}
	st := &sinkState{
		sink:      sink,
		level:     opts.Level,
		batchSize: opts.BatchSize,
		flush:     opts.Flush,
		errorLog:  opts.ErrorLog,
		queue:     make(chan Entry, opts.QueueSize),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	go st.run()
	return &SinkHandler{shared: st}
}

func (h *SinkHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.shared.level.Level()
}

func (h *SinkHandler) Handle(_ context.Context, r slog.Record) error {
	e := Entry{Time: r.Time, Level: r.Level.String(), Msg: r.Message, Attrs: map[string]any{}}

	var add func(a slog.Attr)
	add = func(a slog.Attr) {
		if a.Key == "request_id" {
			e.RequestID = a.Value.String()
			return
		}
		v := a.Value.Resolve()
		switch v.Kind() {
		case slog.KindGroup:
			for _, ga := range v.Group() {
				add(slog.Attr{Key: a.Key + "." + ga.Key, Value: ga.Value})
			}
		case slog.KindAny:
			if err, ok := v.Any().(error); ok {
				e.Attrs[a.Key] = err.Error()
				return
			}
			e.Attrs[a.Key] = v.Any()
		default:
			e.Attrs[a.Key] = v.Any()
		}
	}
	for _, a := range h.attrs {
		add(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		add(h.qualify(a))
		return true
	})
	if len(e.Attrs) == 0 {
		e.Attrs = nil
	}

	select {
	case h.shared.queue <- e:
	default:
	}
	return nil
}

func (h *SinkHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		merged = append(merged, h.qualify(a))
	}
	return &SinkHandler{shared: h.shared, attrs: merged, group: h.group}
}

// qualify prefixes a's key with the open group, except request_id.
func (h *SinkHandler) qualify(a slog.Attr) slog.Attr {
	if h.group == "" || a.Key == "request_id" {
		return a
	}
	return slog.Attr{Key: h.group + "." + a.Key, Value: a.Value}
}

func (h *SinkHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}
	return &SinkHandler{shared: h.shared, attrs: h.attrs, group: group}
}

// Failed returns how many entries the sink rejected so far.
func (h *SinkHandler) Failed() int64 { return h.shared.failed.Load() }

// Close flushes queued entries and waits for the writer to exit.
func (h *SinkHandler) Close() {
	h.shared.closeOnce.Do(func() { close(h.shared.done) })
	<-h.shared.stopped
}

func (st *sinkState) run() {
	defer close(st.stopped)

	ticker := time.NewTicker(st.flush)
	defer ticker.Stop()

	batch := make([]Entry, 0, st.batchSize)
	write := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.sink.WriteEntries(ctx, batch); err != nil {
			st.failed.Add(int64(len(batch)))
			if st.reported.CompareAndSwap(false, true) {
				fmt.Fprintf(st.errorLog, "logger: sink write failed, dropping %d entries: %v\n", len(batch), err)
			}
		}
		batch = make([]Entry, 0, st.batchSize)
	}

	for {
		select {
		case e := <-st.queue:
			batch = append(batch, e)
			if len(batch) >= st.batchSize {
				write()
			}
		case <-ticker.C:
			write()
		case <-st.done:
			for {
				select {
				case e := <-st.queue:
					batch = append(batch, e)
					if len(batch) >= st.batchSize {
						write()
					}
				default:
					write()
					return
				}
			}
		}
	}
}

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}
	return nil
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// Tee makes the base logger also write to extra handlers.
func Tee(extra ...slog.Handler) {
	hs := append(fanout{L.Handler()}, extra...)
	L = slog.New(hs)
	slog.SetDefault(L)
}
