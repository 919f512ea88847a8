package main

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates the CLI logger with timestamp formatting.
// --quiet raises the level to errors only; --verbose lowers it to debug.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, flags commonFlags) *log.Logger {
	level := log.InfoLevel
	switch {
	case flags.quiet:
		level = log.ErrorLevel
	case flags.verbose:
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}
