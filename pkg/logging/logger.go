// Package logging provides structured logging for go-ballpit.
// It wraps Go's slog package so every component logs with the same
// handler, level and session tagging.
package logging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
)

// Environment variables read by NewLogger
const (
	EnvLogLevel  = "BALLPIT_LOG_LEVEL"
	EnvLogFormat = "BALLPIT_LOG_FORMAT"
)

// Logger wraps slog.Logger with context-aware helpers
type Logger struct {
	*slog.Logger
}

// Options controls handler construction
type Options struct {
	Level slog.Level
	// Format is "json" (default) or "text"
	Format string
}

// NewLogger creates a Logger writing to stdout, configured from the
// BALLPIT_LOG_LEVEL and BALLPIT_LOG_FORMAT environment variables.
func NewLogger() *Logger {
	return New(os.Stdout, OptionsFromEnv())
}

// New creates a Logger writing to w
func New(w io.Writer, opts Options) *Logger {
	handlerOpts := &slog.HandlerOptions{
		Level:       opts.Level,
		ReplaceAttr: roundFloats,
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		handler = slog.NewTextHandler(w, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(w, handlerOpts)
	}
	return &Logger{slog.New(handler)}
}

// Discard returns a Logger that drops everything. Used by tests and by
// components constructed without a logger.
func Discard() *Logger {
	return New(io.Discard, Options{Level: slog.LevelError + 1})
}

// OptionsFromEnv reads handler options from the environment
func OptionsFromEnv() Options {
	return Options{
		Level:  ParseLevel(os.Getenv(EnvLogLevel)),
		Format: os.Getenv(EnvLogFormat),
	}
}

// LogWithContext logs a message, adding the session ID from ctx if present
func (l *Logger) LogWithContext(ctx context.Context, level slog.Level, msg string, args ...any) {
	if sessionID := GetSessionID(ctx); sessionID != "" {
		args = append(args, "session_id", sessionID)
	}
	l.Log(ctx, level, msg, args...)
}

// Info logs an informational message with context.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs a warning message with context.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelWarn, msg, args...)
}

// Error logs an error message with context and the error text.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.LogWithContext(ctx, slog.LevelError, msg, args...)
}

// Debug logs a debug message with context.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelDebug, msg, args...)
}

type sessionIDKey struct{}

// WithSessionID tags ctx with a session ID. An empty id generates one.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if sessionID == "" {
		sessionID = GenerateSessionID()
	}
	return context.WithValue(ctx, sessionIDKey{}, sessionID)
}

// GetSessionID extracts the session ID from ctx, or "" if none
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateSessionID creates a random 16 hex character ID
func GenerateSessionID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// ParseLevel maps DEBUG, INFO, WARN(ING) and ERROR to slog levels.
// Anything else is INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// roundFloats trims float attributes to four decimals so per-tick
// positions stay readable. Non-finite values are logged as strings.
func roundFloats(groups []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindFloat64 {
		return a
	}
	f := a.Value.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return slog.String(a.Key, fmt.Sprint(f))
	}
	return slog.Float64(a.Key, math.Round(f*1e4)/1e4)
}

// WrapError wraps an error with additional context information.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
