// Package log provides a structured slog handler that writes one JSON
// LogMessageWire per record.
package log

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"sync"
)

// WireHandler implements slog.Handler by serializing records as LogMessageWire lines.
type WireHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	attrs  []LogAttrWire
	groups []string
	opts   handlerConfig
}

// HandlerOption configures the WireHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level     slog.Leveler
	addSource bool
}

// defaultHandlerConfig returns the default configuration.
func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level: slog.LevelInfo,
	}
}

// WithLevel sets the minimum log level to report.
func WithLevel(level slog.Leveler) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file/line).
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// NewHandler creates a new WireHandler writing to w.
func NewHandler(w io.Writer, opts ...HandlerOption) *WireHandler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &WireHandler{mu: &sync.Mutex{}, w: w, opts: cfg}
}

// New returns a logger backed by a WireHandler.
func New(w io.Writer, opts ...HandlerOption) *slog.Logger {
	return slog.New(NewHandler(w, opts...))
}

// ParseLevel maps a config level name (debug, info, warn, error) to a slog.Level.
// An empty name is LevelInfo.
func ParseLevel(name string) (slog.Level, error) {
	if name == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// Enabled reports whether the handler handles records at the given level.
func (h *WireHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level.Level()
}

// Handle serializes record and writes it as a single line.
func (h *WireHandler) Handle(ctx context.Context, record slog.Record) error {
	msg := LogMessageWire{
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
		Context:   contextToWire(ctx),
	}

	if h.opts.addSource && record.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{record.PC})
		f, _ := frames.Next()
		msg.Source = fmt.Sprintf("%s:%d", f.File, f.Line)
	}

	msg.Attrs = append(msg.Attrs, h.attrs...)
	prefix := h.prefix()
	record.Attrs(func(attr slog.Attr) bool {
		msg.Attrs = appendAttr(msg.Attrs, prefix, attr)
		return true
	})

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal log message: %w", err)
	}
	data = append(data, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.w.Write(data)
	return err
}

// WithAttrs returns a new WireHandler that includes the given attributes.
func (h *WireHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	newHandler := h.clone()
	prefix := h.prefix()
	for _, attr := range attrs {
		newHandler.attrs = appendAttr(newHandler.attrs, prefix, attr)
	}
	return newHandler
}

// WithGroup returns a new WireHandler that qualifies later attribute keys with name.
func (h *WireHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newHandler := h.clone()
	newHandler.groups = append(newHandler.groups, name)
	return newHandler
}

func (h *WireHandler) clone() *WireHandler {
	newHandler := *h
	newHandler.attrs = append([]LogAttrWire(nil), h.attrs...)
	newHandler.groups = append([]string(nil), h.groups...)
	return &newHandler
}

func (h *WireHandler) prefix() string {
	if len(h.groups) == 0 {
		return ""
	}
	return strings.Join(h.groups, ".") + "."
}

// appendAttr flattens groups into dotted keys.
func appendAttr(dst []LogAttrWire, prefix string, attr slog.Attr) []LogAttrWire {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return dst
	}
	if attr.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if attr.Key != "" {
			groupPrefix = prefix + attr.Key + "."
		}
		for _, a := range attr.Value.Group() {
			dst = appendAttr(dst, groupPrefix, a)
		}
		return dst
	}
	attr.Key = prefix + attr.Key
	return append(dst, toLogAttrWire(attr))
}
