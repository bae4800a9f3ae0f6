// Package deckgen turns a JSON slide description into a pptx deck.
package deckgen

import (
	"log/slog"

	"github.com/ukaji3/deckgen-go/internal/logx"
	"github.com/ukaji3/deckgen-go/pkg/deckgen/icons"
)

// Options configures a Generate run.
type Options struct {
	// Config holds theme and icon settings.
	Config Config
	// TemplatePath is an optional pptx whose masters and slide size are
	// reused. A missing file falls back to a blank deck.
	TemplatePath string
	// PlanPath, when set, receives the layout decisions as JSON.
	PlanPath string
	// Icons resolves icon ids. If nil, an HTTP resolver is built from
	// Config.Icons.
	Icons icons.Resolver
	// Logger overrides the package logger for this run's own records.
	Logger *slog.Logger
}

// DefaultOptions returns options with the default configuration.
func DefaultOptions() Options {
	return Options{
		Config: DefaultConfig(),
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logx.Logger()
}

func (o Options) resolver() icons.Resolver {
	if o.Icons != nil {
		return o.Icons
	}
	c := o.Config.Icons
	return icons.NewHTTPResolver(icons.Config{
		BaseURL:       c.BaseURL,
		DefaultPrefix: c.DefaultPrefix,
		Color:         c.Color,
		Timeout:       c.Timeout,
		SizePx:        c.SizePx,
	})
}
