// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package logging provides the structured logger shared by the generator and CLI.
//
// Loggers are thin wrappers over charmbracelet/log. Messages take alternating
// key/value pairs:
//
//	logging.Info("fragment written", "algorithm", "PageRank", "path", dst)
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Level is a logging severity.
type Level = log.Level

const (
	LevelDebug = log.DebugLevel
	LevelInfo  = log.InfoLevel
	LevelWarn  = log.WarnLevel
	LevelError = log.ErrorLevel
)

// Config controls logger construction.
type Config struct {
	Level  Level
	Output io.Writer // defaults to os.Stderr
	JSON   bool
	// Timestamps adds a time field to every line.
	Timestamps bool
}

// DefaultConfig returns an info-level text logger on stderr.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Output: os.Stderr,
	}
}

// ParseLevel maps a level name (debug, info, warn, error) to a Level.
func ParseLevel(s string) (Level, error) {
	return log.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
}

// Logger is a structured logger.
type Logger struct {
	*log.Logger
}

// New creates a logger from cfg.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	formatter := log.TextFormatter
	if cfg.JSON {
		formatter = log.JSONFormatter
	}

	return &Logger{
		Logger: log.NewWithOptions(out, log.Options{
			Level:           cfg.Level,
			ReportTimestamp: cfg.Timestamps,
			Formatter:       formatter,
		}),
	}
}

// WithComponent returns a child logger tagged with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{Logger: l.Logger.With("component", name)}
}

// WithFields returns a child logger carrying the given key/value pairs.
func (l *Logger) WithFields(keyvals ...any) *Logger {
	return &Logger{Logger: l.Logger.With(keyvals...)}
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New(DefaultConfig())
)

// Default returns the process-wide logger.
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(l *Logger) {
	if l == nil {
		return
	}
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

// WithComponent returns a component logger derived from the default logger.
func WithComponent(name string) *Logger {
	return Default().WithComponent(name)
}

func Debug(msg string, keyvals ...any) { Default().Debug(msg, keyvals...) }
func Info(msg string, keyvals ...any)  { Default().Info(msg, keyvals...) }
func Warn(msg string, keyvals ...any)  { Default().Warn(msg, keyvals...) }
func Error(msg string, keyvals ...any) { Default().Error(msg, keyvals...) }
