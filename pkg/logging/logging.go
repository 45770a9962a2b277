// =============================================================================
// HTML Table to CSV Converter - Logging Module
// =============================================================================
//
// Structured diagnostics logging built on zerolog. Diagnostics go to stderr
// through a console writer; product output (the [OK]/[MERGED] lines and the
// discrepancy report) is printed to stdout by the callers and never routed
// through this package.
//
// Level precedence (highest to lowest):
//   1. -v/--verbose flag (debug)
//   2. -q/--quiet flag (error)
//   3. LOG_LEVEL environment variable (a .env file is honored)
//   4. Default (info)
//
// =============================================================================

// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// defaultLogger is the global logger instance.
var defaultLogger zerolog.Logger

func init() {
	defaultLogger = newConsoleLogger(zerolog.InfoLevel)
}

// Setup resolves the log level from the flags and the environment and
// installs the global logger. Call once, before any work starts.
func Setup(verbose, quiet bool) {
	// A .env file may carry LOG_LEVEL; ignore absence.
	_ = godotenv.Load()

	level := resolveLevel(verbose, quiet)
	zerolog.SetGlobalLevel(level)
	defaultLogger = newConsoleLogger(level)
}

// resolveLevel applies the documented precedence rules.
func resolveLevel(verbose, quiet bool) zerolog.Level {
	if verbose {
		return zerolog.DebugLevel
	}
	if quiet {
		return zerolog.ErrorLevel
	}
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		level, err := zerolog.ParseLevel(levelStr)
		if err == nil {
			return level
		}
	}
	return zerolog.InfoLevel
}

// newConsoleLogger builds a human-readable stderr logger.
func newConsoleLogger(level zerolog.Level) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// New creates a logger writing to w at the current global level. Used by
// tests to capture output.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// Debug starts a new debug level log event.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts a new info level log event.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a new warning level log event.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts a new error level log event.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// Err creates a new error log event with the given error.
func Err(err error) *zerolog.Event {
	return defaultLogger.Err(err)
}
