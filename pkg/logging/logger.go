// Package logging provides structured logging for go-drift. It wraps
// zerolog to give every package the same call shape, attaches correlation
// and session IDs carried in a context, and masks sensitive fields.
package logging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger with context aware helpers.
type Logger struct {
	zl zerolog.Logger
}

// NewLogger creates a Logger writing JSON lines to stdout. The level is
// read from DRIFT_LOG_LEVEL (DEBUG, INFO, WARN, ERROR); default INFO.
func NewLogger() *Logger {
	return NewLoggerWithWriter(os.Stdout, getLogLevelFromEnv())
}

// NewLoggerWithWriter creates a JSON Logger on w at the given level.
func NewLoggerWithWriter(w io.Writer, level zerolog.Level) *Logger {
	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// NewConsoleLogger creates a human readable Logger on w, for interactive
// runs where JSON would be noise.
func NewConsoleLogger(w io.Writer, level zerolog.Level) *Logger {
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}
	return &Logger{zl: zerolog.New(cw).Level(level).With().Timestamp().Logger()}
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

// Zerolog exposes the underlying logger for libraries that take one.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}

// With returns a child Logger that adds the given key/value pairs to
// every entry.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{zl: l.zl.With().Fields(sanitizeFields(args)).Logger()}
}

// Info logs an informational message with context.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, l.zl.Info(), msg, args)
}

// Warn logs a warning message with context.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, l.zl.Warn(), msg, args)
}

// Error logs an error message with context and proper error formatting.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	ev := l.zl.Error()
	if err != nil {
		ev = ev.Err(err)
	}
	l.emit(ctx, ev, msg, args)
}

// Debug logs a debug message with context.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, l.zl.Debug(), msg, args)
}

func (l *Logger) emit(ctx context.Context, ev *zerolog.Event, msg string, args []any) {
	if ev == nil {
		return
	}
	if len(args) > 0 {
		ev = ev.Fields(sanitizeFields(args))
	}
	if ctx != nil {
		if id := GetCorrelationID(ctx); id != "" {
			ev = ev.Str("correlation_id", id)
		}
		if id := GetSessionID(ctx); id != "" {
			ev = ev.Str("session_id", id)
		}
	}
	ev.Msg(msg)
}

// correlationIDKey is the context key for correlation IDs
type correlationIDKey struct{}

// sessionIDKey is the context key for the run's session ID
type sessionIDKey struct{}

// WithCorrelationID adds a correlation ID to the context.
// If no correlation ID is provided, a new one will be generated.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	if correlationID == "" {
		correlationID = GenerateCorrelationID()
	}
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

// GetCorrelationID extracts the correlation ID from the context.
// Returns empty string if no correlation ID is present.
func GetCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// WithSessionID tags the context with the ID of one game run. An empty
// ID generates a fresh one.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if sessionID == "" {
		sessionID = GenerateCorrelationID()
	}
	return context.WithValue(ctx, sessionIDKey{}, sessionID)
}

// GetSessionID extracts the session ID from the context.
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateCorrelationID creates a new random correlation ID.
func GenerateCorrelationID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// ParseLevel maps DEBUG, INFO, WARN/WARNING and ERROR (any case) to a
// zerolog level. Anything else yields INFO.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// getLogLevelFromEnv determines the log level from environment variables.
func getLogLevelFromEnv() zerolog.Level {
	return ParseLevel(os.Getenv("DRIFT_LOG_LEVEL"))
}

// Keys containing any of these are masked.
var sensitiveKeys = []string{
	"password", "passwd", "pwd",
	"token", "auth", "authorization",
	"secret", "apikey", "api_key", "private",
	"cookie",
}

func isSensitive(key string) bool {
	key = strings.ToLower(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(key, sensitive) {
			return true
		}
	}
	return false
}

// sanitizeFields turns alternating key/value arguments into a field map,
// masking sensitive values. A dangling key is logged with a nil value.
func sanitizeFields(args []any) map[string]any {
	fields := make(map[string]any, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		var value any
		if i+1 < len(args) {
			value = args[i+1]
		}
		if isSensitive(key) {
			value = "[REDACTED]"
		}
		fields[key] = value
	}
	return fields
}

// WrapError wraps an error with additional context information.
// This preserves the original error while adding descriptive context.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
