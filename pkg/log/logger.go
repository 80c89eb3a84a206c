package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/cockroachdb/errors"
)

const (
	ErrAttrKey        = "error"
	StacktraceAttrKey = "stacktrace"
)

// ErrAttr wraps err so the process handler can extract its stack trace.
func ErrAttr(err error) slog.Attr {
	return slog.Any(ErrAttrKey, err)
}

// stackHandler decorates a slog handler: records carrying an error
// attribute are emitted with a stacktrace attribute holding the error's
// captured stack.
type stackHandler struct {
	next slog.Handler
}

func withStacktraces(next slog.Handler) slog.Handler {
	return &stackHandler{next: next}
}

func (h *stackHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.next.Enabled(ctx, l)
}

func (h *stackHandler) Handle(ctx context.Context, r slog.Record) error {
	var trace string
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key != ErrAttrKey {
			return true
		}
		if err, ok := attr.Value.Any().(error); ok {
			if details := errors.GetSafeDetails(err).SafeDetails; len(details) > 0 {
				trace = details[0]
			}
		}
		return false
	})
	if trace != "" {
		r.AddAttrs(slog.String(StacktraceAttrKey, trace))
	}
	return h.next.Handle(ctx, r)
}

func (h *stackHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &stackHandler{next: h.next.WithAttrs(attrs)}
}

func (h *stackHandler) WithGroup(g string) slog.Handler {
	return &stackHandler{next: h.next.WithGroup(g)}
}

// SetupLogger installs the default process logger writing JSON to stdout.
// Panics on an unknown level string, matching slog's fail-fast convention.
func SetupLogger(loglevel string) {
	SetupLoggerWithWriter(loglevel, os.Stdout)
}

// SetupLoggerWithWriter installs the default process logger writing to w.
func SetupLoggerWithWriter(loglevel string, w io.Writer) {
	ops := slog.HandlerOptions{
		Level: ToSlogLevel(loglevel),
	}
	handler := slog.NewJSONHandler(w, &ops)

	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = &slogLogger{logger: slog.New(withStacktraces(handler))}
}

// ToSlogLevel converts a level name to a slog.Level.
func ToSlogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		panic(fmt.Sprintf("invalid log level: %s", level))
	}
}

var (
	defaultMu     sync.Mutex
	defaultLogger Logger = newDefault()
)

func newDefault() Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &slogLogger{logger: slog.New(withStacktraces(handler))}
}

// GetLogger returns the default logger instance.
func GetLogger() Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultLogger
}

// GetLoggerWithName returns the default logger with a component field set.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

// slogLogger adapts *slog.Logger to the Logger interface.
type slogLogger struct {
	logger *slog.Logger
}

func (s *slogLogger) Debug(msg string, fields ...any) {
	s.logger.Debug(msg, normalizeFields(fields)...)
}

func (s *slogLogger) Info(msg string, fields ...any) {
	s.logger.Info(msg, normalizeFields(fields)...)
}

func (s *slogLogger) Warn(msg string, fields ...any) {
	s.logger.Warn(msg, normalizeFields(fields)...)
}

func (s *slogLogger) Error(msg string, fields ...any) {
	s.logger.Error(msg, normalizeFields(fields)...)
}

func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{logger: s.logger.With(normalizeFields(fields)...)}
}

func (s *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.logger.Enabled(ctx, slog.Level(level))
}

// normalizeFields rewrites a leading bare error into an ErrAttr pair so
// that callers can pass errors positionally.
func normalizeFields(fields []any) []any {
	if len(fields) == 0 {
		return fields
	}
	if err, ok := fields[0].(error); ok {
		out := make([]any, 0, len(fields)+1)
		out = append(out, ErrAttr(err))
		out = append(out, fields[1:]...)
		return out
	}
	return fields
}
