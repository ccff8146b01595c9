// ============================================================================
// safestr - Safe String Toolkit
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating structured zerolog loggers
// Author:      Mike Stoffels
// Created:     2025-08-04
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Output formats
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name, attached to every entry
	ServiceName string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format: "json" or "console" (default: json)
	Format string

	// Output writer (default: os.Stderr, so command output stays clean)
	Output io.Writer

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      FormatJSON,
	}
}

// NewLogger creates a new zerolog logger from the configuration
func NewLogger(cfg LoggerConfig) zerolog.Logger {
	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}

	if cfg.Format == FormatConsole {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = zerolog.MultiLevelWriter(writers...)
	}

	return zerolog.New(output).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Logger()
}

// NewSimpleLogger creates a JSON logger at info level
func NewSimpleLogger(serviceName string) zerolog.Logger {
	return NewLogger(DefaultLoggerConfig(serviceName))
}

// Nop returns a logger that discards everything
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// parseLevel converts a string level to zerolog.Level, defaulting to info
func parseLevel(level string) zerolog.Level {
	l, err := ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l.zerolog()
}
