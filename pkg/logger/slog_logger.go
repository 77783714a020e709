package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
)

// SlogLogger implements Logger using a slog.Handler.
type SlogLogger struct {
	handler slog.Handler
	level   slog.Level
	module  string
	fields  []Field
}

// NewSlogLogger creates a logger with JSON output.
func NewSlogLogger(w io.Writer, level LogLevel) *SlogLogger {
	if w == nil {
		w = os.Stderr
	}
	lvl := parseSlogLevel(level)
	return &SlogLogger{
		handler: slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}),
		level:   lvl,
	}
}

// NewConsoleLogger creates a logger with human-readable key=value output.
func NewConsoleLogger(w io.Writer, level LogLevel) *SlogLogger {
	if w == nil {
		w = os.Stderr
	}
	lvl := parseSlogLevel(level)
	return &SlogLogger{
		handler: slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}),
		level:   lvl,
	}
}

// Discard returns a logger that drops everything.
func Discard() *SlogLogger {
	return NewSlogLogger(io.Discard, LogLevelError)
}

// Module returns a logger scoped to a sub-module, e.g. "pairs.watch".
func (l *SlogLogger) Module(name string) Logger {
	moduleName := name
	if l.module != "" {
		moduleName = l.module + "." + name
	}
	return &SlogLogger{
		handler: l.handler,
		level:   l.level,
		module:  moduleName,
		fields:  l.fields,
	}
}

// With returns a logger that adds fields to every record.
func (l *SlogLogger) With(fields ...Field) Logger {
	return &SlogLogger{
		handler: l.handler,
		level:   l.level,
		module:  l.module,
		fields:  slices.Concat(l.fields, fields),
	}
}

// Debug logs at debug level.
func (l *SlogLogger) Debug(msg string, fields ...Field) {
	l.log(slog.LevelDebug, msg, fields)
}

// Info logs at info level.
func (l *SlogLogger) Info(msg string, fields ...Field) {
	l.log(slog.LevelInfo, msg, fields)
}

// Warn logs at warn level.
func (l *SlogLogger) Warn(msg string, fields ...Field) {
	l.log(slog.LevelWarn, msg, fields)
}

// Error logs at error level.
func (l *SlogLogger) Error(msg string, fields ...Field) {
	l.log(slog.LevelError, msg, fields)
}

func (l *SlogLogger) log(level slog.Level, msg string, fields []Field) {
	if l == nil || level < l.level {
		return
	}
	attrs := make([]slog.Attr, 0, len(l.fields)+len(fields)+1)
	if l.module != "" {
		attrs = append(attrs, slog.String("module", l.module))
	}
	for _, f := range l.fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	slog.New(l.handler).LogAttrs(context.Background(), level, msg, attrs...)
}
