// Package log provides structured logging for MLPrimer, built on zerolog.
//
// The package exposes a small Logger with leveled methods taking alternating
// key/value fields, plus the standard attribute keys in attributes.go so that
// estimators report training progress in a uniform shape. Library warnings
// raised through pkg/errors.Warn are routed into the default logger.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mlprimer/mlprimer/pkg/errors"
)

// Logger is a thin wrapper around a zerolog.Logger that accepts alternating
// key/value fields on every call.
type Logger struct {
	zl zerolog.Logger
}

var (
	mu            sync.RWMutex
	defaultLogger = New(os.Stderr, zerolog.InfoLevel)
)

func init() {
	errors.SetZerologWarnFunc(func(w error) {
		l := GetLogger()
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			l.zl.Warn().Object("warning", m).Msg(w.Error())
			return
		}
		l.zl.Warn().AnErr("warning", w).Msg(w.Error())
	})
}

// New creates a Logger writing JSON lines to w at the given level.
func New(w io.Writer, level zerolog.Level) *Logger {
	zl := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// GetLogger returns the process-wide default logger.
func GetLogger() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// GetLoggerWithName returns the default logger scoped to a component name.
func GetLoggerWithName(name string) *Logger {
	return GetLogger().With(ComponentKey, name)
}

// SetDefault replaces the process-wide default logger.
func SetDefault(l *Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = l
}

// SetLevel sets the minimum level of the default logger.
func SetLevel(level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = &Logger{zl: defaultLogger.zl.Level(level)}
}

// Debug logs a debug-level message with alternating key/value fields.
func (l *Logger) Debug(msg string, fields ...any) {
	applyFields(l.zl.Debug(), fields).Msg(msg)
}

// Info logs an info-level message with alternating key/value fields.
func (l *Logger) Info(msg string, fields ...any) {
	applyFields(l.zl.Info(), fields).Msg(msg)
}

// Warn logs a warning-level message with alternating key/value fields.
func (l *Logger) Warn(msg string, fields ...any) {
	applyFields(l.zl.Warn(), fields).Msg(msg)
}

// Error logs an error-level message with alternating key/value fields.
func (l *Logger) Error(msg string, fields ...any) {
	applyFields(l.zl.Error(), fields).Msg(msg)
}

// With returns a new Logger with the given fields attached to every message.
func (l *Logger) With(fields ...any) *Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &Logger{zl: ctx.Logger()}
}

func applyFields(e *zerolog.Event, fields []any) *zerolog.Event {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch v := fields[i+1].(type) {
		case zerolog.LogObjectMarshaler:
			e = e.Object(key, v)
		case error:
			e = e.AnErr(key, v)
		case string:
			e = e.Str(key, v)
		case int:
			e = e.Int(key, v)
		case int64:
			e = e.Int64(key, v)
		case float64:
			e = e.Float64(key, v)
		case bool:
			e = e.Bool(key, v)
		case []float64:
			e = e.Floats64(key, v)
		default:
			e = e.Interface(key, v)
		}
	}
	return e
}
