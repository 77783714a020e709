// Package logger provides module-scoped structured logging on top of log/slog.
//
// Components receive a Logger and derive their own scope with Module:
//
//	log := logger.NewConsoleLogger(os.Stderr, logger.LogLevelInfo)
//	quizLog := log.Module("quiz")
//	quizLog.Info("session started", logger.String("session_id", id))
//
// Tests use Discard or a logger writing to a bytes.Buffer.
package logger

import (
	"log/slog"
	"strings"
	"time"
)

// LogLevel names a log level as it appears in configuration.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Logger is the logging interface injected into components.
type Logger interface {
	Module(name string) Logger
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

// Field is a single structured key/value pair.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an integer field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a boolean field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Duration creates a duration field.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

// Error creates a field for err under the key "error".
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Any creates a field holding an arbitrary value.
func Any(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// ParseLevel converts a configured level name to a LogLevel, defaulting to
// info for unknown names.
func ParseLevel(s string) LogLevel {
	switch LogLevel(strings.ToLower(strings.TrimSpace(s))) {
	case LogLevelDebug:
		return LogLevelDebug
	case LogLevelWarn, "warning":
		return LogLevelWarn
	case LogLevelError:
		return LogLevelError
	}
	return LogLevelInfo
}

func parseSlogLevel(level LogLevel) slog.Level {
	switch ParseLevel(string(level)) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	}
	return slog.LevelInfo
}
