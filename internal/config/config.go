// Package config handles application configuration and setup
package config

import (
	"os"

	"github.com/retroenv/fixasm/internal/diagnostics"
	"github.com/retroenv/fixasm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateSink creates the diagnostics sink. Diagnostics are always logged,
// the user is prompted for acknowledgement only in an interactive session
// that did not disable prompting.
func CreateSink(logger *log.Logger, opts options.Program) diagnostics.Sink {
	sink := diagnostics.Multi{diagnostics.NewLogSink(logger)}
	if opts.NoPrompt || opts.Quiet || !diagnostics.Interactive(os.Stdin) {
		return sink
	}
	return append(sink, diagnostics.NewPrompt(os.Stderr, os.Stdin))
}
