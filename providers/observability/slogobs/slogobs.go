package slogobs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"computeruse/providers/observability"
)

// LevelTrace is more verbose than slog.LevelDebug, which has no native
// equivalent for trace-level output.
const LevelTrace = slog.Level(-8)

// Observer implements observability.Provider using Go's standard library slog.
type Observer struct {
	logger *slog.Logger
}

// Option is a functional option for configuring the Observer.
type Option func(*config)

type config struct {
	level  slog.Level
	output io.Writer
	logger *slog.Logger // takes precedence over level/output when set
}

// WithLevel sets the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithOutput sets the output writer for logs.
func WithOutput(output io.Writer) Option {
	return func(c *config) {
		c.output = output
	}
}

// WithLogger uses an existing slog.Logger instead of building one from the
// other options.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// New creates a new slog-based observer. Without options it writes text
// records to stderr at INFO level.
func New(opts ...Option) *Observer {
	cfg := &config{
		level:  slog.LevelInfo,
		output: os.Stderr,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(cfg.output, &slog.HandlerOptions{Level: cfg.level}))
	}

	return &Observer{logger: logger}
}

// Ensure Observer implements observability.Provider
var _ observability.Provider = (*Observer)(nil)

// --- TRACING ---

// StartSpan begins a new named span and emits a debug log event at its start.
// The returned Span's End method logs the elapsed duration.
func (o *Observer) StartSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, observability.Span) {
	span := &slogSpan{
		name:      name,
		startTime: time.Now(),
		logger:    o.logger,
		attrs:     attrs,
	}

	o.logger.LogAttrs(ctx, slog.LevelDebug, "span started", toSlogAttrs(name, attrs)...)

	return observability.ContextWithSpan(ctx, span), span
}

type slogSpan struct {
	name      string
	startTime time.Time
	logger    *slog.Logger
	mu        sync.Mutex
	attrs     []observability.Attribute
	status    observability.StatusCode
	statusMsg string
}

func (s *slogSpan) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	attrs := toSlogAttrs(s.name, s.attrs)
	attrs = append(attrs, slog.Duration("duration", time.Since(s.startTime)))
	level := slog.LevelDebug
	if s.status == observability.StatusError {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("status", s.statusMsg))
	}
	s.logger.LogAttrs(context.Background(), level, "span ended", attrs...)
}

func (s *slogSpan) SetAttributes(attrs ...observability.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attrs = append(s.attrs, attrs...)
}

func (s *slogSpan) SetStatus(code observability.StatusCode, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = code
	s.statusMsg = description
}

func (s *slogSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = observability.StatusError
	s.statusMsg = err.Error()
	s.logger.LogAttrs(context.Background(), slog.LevelWarn, "span error",
		slog.String("span", s.name), slog.String("error", err.Error()))
}

func (s *slogSpan) AddEvent(name string, attrs ...observability.Attribute) {
	s.mu.Lock()
	defer s.mu.Unlock()
	logAttrs := toSlogAttrs(s.name, attrs)
	logAttrs = append(logAttrs, slog.String("event", name))
	s.logger.LogAttrs(context.Background(), slog.LevelDebug, "span event", logAttrs...)
}

// --- LOGGING ---

func (o *Observer) Trace(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, LevelTrace, msg, attrs)
}

func (o *Observer) Debug(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelDebug, msg, attrs)
}

func (o *Observer) Info(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelInfo, msg, attrs)
}

func (o *Observer) Warn(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelWarn, msg, attrs)
}

func (o *Observer) Error(ctx context.Context, msg string, attrs ...observability.Attribute) {
	o.log(ctx, slog.LevelError, msg, attrs)
}

func (o *Observer) log(ctx context.Context, level slog.Level, msg string, attrs []observability.Attribute) {
	logAttrs := make([]slog.Attr, 0, len(attrs))
	for _, attr := range attrs {
		logAttrs = append(logAttrs, slog.Any(attr.Key, attr.Value))
	}
	o.logger.LogAttrs(ctx, level, msg, logAttrs...)
}

func toSlogAttrs(spanName string, attrs []observability.Attribute) []slog.Attr {
	logAttrs := make([]slog.Attr, 0, len(attrs)+1)
	logAttrs = append(logAttrs, slog.String("span", spanName))
	for _, attr := range attrs {
		logAttrs = append(logAttrs, slog.Any(attr.Key, attr.Value))
	}
	return logAttrs
}
