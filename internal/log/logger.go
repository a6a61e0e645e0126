// Package log wraps log/slog for the client: level and format parsing,
// file output for the console, taxonomy-aware error fields and trace
// correlation.
package log

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/lasatanica/backoffice/internal/errors"
)

// Logger is a slog logger that understands the API error taxonomy and
// stamps records with the active trace
type Logger struct {
	slog   *slog.Logger
	config Config
}

// New creates a Logger from config
func New(config Config) *Logger {
	opts := &slog.HandlerOptions{
		Level:     config.Level.ToSlogLevel(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if config.Format == FormatJSON {
		handler = slog.NewJSONHandler(config.Output.Writer(), opts)
	} else {
		handler = slog.NewTextHandler(config.Output.Writer(), opts)
	}

	var attrs []slog.Attr
	if config.ServiceName != "" {
		attrs = append(attrs, slog.String("service", config.ServiceName))
	}
	if config.ServiceVersion != "" {
		attrs = append(attrs, slog.String("version", config.ServiceVersion))
	}
	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}

	return &Logger{
		slog:   slog.New(traceHandler{handler}),
		config: config,
	}
}

// Default creates a logger with DefaultConfig
func Default() *Logger {
	return New(DefaultConfig())
}

// traceHandler adds trace_id and span_id when the record's context carries
// a sampled span
type traceHandler struct {
	slog.Handler
}

func (h traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return h.Handler.Handle(ctx, r)
}

func (h traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return traceHandler{h.Handler.WithAttrs(attrs)}
}

func (h traceHandler) WithGroup(name string) slog.Handler {
	return traceHandler{h.Handler.WithGroup(name)}
}

// With returns a Logger that adds args to every record
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...), config: l.config}
}

// WithGroup returns a Logger that nests later attributes under name
func (l *Logger) WithGroup(name string) *Logger {
	return &Logger{slog: l.slog.WithGroup(name), config: l.config}
}

// WithError adds err to every record. Taxonomy errors also carry
// error_code, error_kind and status_code.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.With(errorArgs(err)...)
}

func errorArgs(err error) []any {
	apiErr, ok := errors.As(err)
	if !ok {
		return []any{"error", err.Error()}
	}

	args := []any{
		"error", apiErr.Message,
		"error_code", string(apiErr.Code),
		"error_kind", apiErr.Kind.String(),
	}
	if apiErr.StatusCode != 0 {
		args = append(args, "status_code", apiErr.StatusCode)
	}
	if apiErr.Detail != "" {
		args = append(args, "detail", apiErr.Detail)
	}
	if apiErr.Cause != nil {
		args = append(args, "cause", apiErr.Cause.Error())
	}
	return args
}

func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.slog.DebugContext(ctx, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.slog.InfoContext(ctx, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.slog.WarnContext(ctx, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.slog.ErrorContext(ctx, msg, args...)
}

// LogErrorContext logs err at error level with its taxonomy fields
func (l *Logger) LogErrorContext(ctx context.Context, msg string, err error) {
	if err == nil {
		return
	}
	l.ErrorContext(ctx, msg, errorArgs(err)...)
}

// Enabled reports whether records at level are written
func (l *Logger) Enabled(ctx context.Context, level Level) bool {
	return l.slog.Enabled(ctx, level.ToSlogLevel())
}

// Config returns the configuration the logger was built with
func (l *Logger) Config() Config {
	return l.config
}
