// Package logger wraps zap configuration for the application.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Logger carries the configured zap logger.
type Logger struct {
	// Log is the underlying zap logger; it is a no-op until Init is called.
	Log *zap.Logger
}

// New returns a Logger with a no-op zap logger so callers can log safely
// before Init runs.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init builds a production zap logger at the given level ("Debug", "Info",
// "Warn", "Error") and replaces the no-op logger.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	log, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	l.Log = log
	return nil
}
