package deckgen

import (
	"log/slog"

	"github.com/ukaji3/deckgen-go/internal/logx"
)

// SetLogger configures the logger for deckgen and all its sub-packages.
// By default, deckgen produces no log output.
//
// Pass nil to restore the silent default. Options.Logger overrides the
// logger for the records of a single Generate call.
//
// Log levels used by deckgen:
//   - [slog.LevelDebug]: layout decisions, icon lookups, template details
//   - [slog.LevelInfo]: a deck was written
//   - [slog.LevelWarn]: fallbacks (missing template, non-numeric workbook cells)
func SetLogger(l *slog.Logger) {
	logx.SetLogger(l)
}

// Logger returns the current package logger.
func Logger() *slog.Logger {
	return logx.Logger()
}
