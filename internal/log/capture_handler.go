package log

import (
	"context"
	"log/slog"
	"sync"
)

// Record is one captured log record in a test-friendly shape.
type Record struct {
	// Level is the record's severity.
	Level slog.Level

	// Message is the log message.
	Message string

	// Attrs holds the record's attributes, including any attached via
	// Logger.With, keyed by attribute name.
	Attrs map[string]any
}

// Has reports whether the record carries the given attribute value.
func (r Record) Has(key string, value any) bool {
	v, ok := r.Attrs[key]
	return ok && v == value
}

// CaptureHandler is an slog.Handler that stores every record it handles.
//
// Design decision: We implement a handler rather than a custom logger
// because it integrates seamlessly with standard slog APIs: the code under
// test receives a plain *slog.Logger and never knows it is being observed.
//
// All captured records share one store, so handlers derived via WithAttrs
// or WithGroup still append to the same slice. CaptureHandler is safe for
// concurrent use; the analysis step logs from multiple goroutines.
type CaptureHandler struct {
	mu      *sync.Mutex
	records *[]Record

	// next receives every record after capture. Nil means capture-only.
	next slog.Handler

	// attrs are attributes attached via WithAttrs on this branch.
	attrs []slog.Attr
}

// NewCaptureHandler creates a CaptureHandler. Pass nil to capture without
// forwarding.
func NewCaptureHandler(next slog.Handler) *CaptureHandler {
	records := make([]Record, 0)
	return &CaptureHandler{
		mu:      &sync.Mutex{},
		records: &records,
		next:    next,
	}
}

// Logger returns a *slog.Logger backed by this handler.
func (h *CaptureHandler) Logger() *slog.Logger {
	return slog.New(h)
}

// Enabled reports whether the handler handles records at the given level.
// Capture is always on; forwarding defers to the wrapped handler.
func (h *CaptureHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// Handle captures the record and forwards it when a next handler is set.
func (h *CaptureHandler) Handle(ctx context.Context, record slog.Record) error {
	captured := Record{
		Level:   record.Level,
		Message: record.Message,
		Attrs:   make(map[string]any, record.NumAttrs()+len(h.attrs)),
	}
	for _, a := range h.attrs {
		captured.Attrs[a.Key] = a.Value.Any()
	}
	record.Attrs(func(a slog.Attr) bool {
		captured.Attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	*h.records = append(*h.records, captured)
	h.mu.Unlock()

	if h.next != nil && h.next.Enabled(ctx, record.Level) {
		return h.next.Handle(ctx, record)
	}
	return nil
}

// WithAttrs returns a handler whose records carry the additional
// attributes. The returned handler appends to the same capture store.
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	clone.attrs = append(clone.attrs, attrs...)
	if h.next != nil {
		clone.next = h.next.WithAttrs(attrs)
	}
	return &clone
}

// WithGroup returns a handler for the given group. Groups are flattened
// for capture purposes; forwarding preserves them.
func (h *CaptureHandler) WithGroup(name string) slog.Handler {
	if h.next == nil {
		return h
	}
	clone := *h
	clone.next = h.next.WithGroup(name)
	return &clone
}

// Records returns a copy of all captured records in emission order.
func (h *CaptureHandler) Records() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Record, len(*h.records))
	copy(out, *h.records)
	return out
}

// Reset discards all captured records.
func (h *CaptureHandler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	*h.records = (*h.records)[:0]
}

// Ensure CaptureHandler implements slog.Handler.
var _ slog.Handler = (*CaptureHandler)(nil)
