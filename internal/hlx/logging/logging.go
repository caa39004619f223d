// Package logging provides the structured logger used across hlx.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
)

// Fields are structured key/value pairs attached to a log entry.
type Fields map[string]any

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel parses debug, info, warn (or warning) and error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("invalid log level %q", s)
}

type Format int

const (
	FormatText Format = iota
	FormatJSON
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatText, fmt.Errorf("invalid log format %q", s)
}

type Config struct {
	Level  Level
	Format Format
	Output io.Writer
	Name   string
}

// Logger is safe for concurrent use. Derived loggers share the handler.
type Logger struct {
	sl    *slog.Logger
	level *slog.LevelVar
}

// New creates a logger from cfg. A nil Output means stderr.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	lv := new(slog.LevelVar)
	lv.Set(cfg.Level.slog())

	opts := &slog.HandlerOptions{Level: lv}
	var h slog.Handler
	if cfg.Format == FormatJSON {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}
	sl := slog.New(h)
	if cfg.Name != "" {
		sl = sl.With("logger", cfg.Name)
	}
	return &Logger{sl: sl, level: lv}
}

// Discard returns a logger that drops every entry.
func Discard() *Logger {
	return New(Config{Output: io.Discard, Level: LevelError})
}

func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{sl: l.sl.With(key, value), level: l.level}
}

func (l *Logger) WithFields(fields Fields) *Logger {
	return &Logger{sl: l.sl.With(fields.attrs()...), level: l.level}
}

func (l *Logger) SetLevel(level Level) {
	l.level.Set(level.slog())
}

func (l *Logger) IsLevelEnabled(level Level) bool {
	return l.sl.Enabled(context.Background(), level.slog())
}

func (l *Logger) Debug(msg string, fields ...Fields) { l.log(LevelDebug, msg, fields) }
func (l *Logger) Info(msg string, fields ...Fields)  { l.log(LevelInfo, msg, fields) }
func (l *Logger) Warn(msg string, fields ...Fields)  { l.log(LevelWarn, msg, fields) }
func (l *Logger) Error(msg string, fields ...Fields) { l.log(LevelError, msg, fields) }

// ErrorWithErr logs msg at error level with err under the "error" key.
func (l *Logger) ErrorWithErr(msg string, err error, fields ...Fields) {
	l.log(LevelError, msg, append(fields, Fields{"error": err.Error()}))
}

func (l *Logger) log(level Level, msg string, fields []Fields) {
	if !l.IsLevelEnabled(level) {
		return
	}
	var attrs []any
	for _, f := range fields {
		attrs = append(attrs, f.attrs()...)
	}
	l.sl.Log(context.Background(), level.slog(), msg, attrs...)
}

// attrs returns the fields as alternating key/values in key order, so output
// is stable across runs.
func (f Fields) attrs() []any {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		out = append(out, k, f[k])
	}
	return out
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New(Config{Level: LevelInfo, Name: "hlx"})
)

func GetDefault() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}
