// SPDX-License-Identifier: MPL-2.0

// Package logging builds the structured logger shared by the CLI and the
// generation engine.
package logging

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// Prefix is prepended to every log line.
const Prefix = "shimgen"

// New returns a logger writing to w at info level, or debug level when verbose.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
		Level:  level,
	})
}

// Install makes logger the handler behind package-level slog calls.
func Install(logger *log.Logger) {
	slog.SetDefault(slog.New(logger))
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// OrDiscard returns logger, or a discarding logger when logger is nil.
func OrDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}
