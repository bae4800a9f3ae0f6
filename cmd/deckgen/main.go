// Package main provides the CLI entry point for deckgen.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/ukaji3/deckgen-go/pkg/deckgen"
	"github.com/ukaji3/deckgen-go/pkg/deckgen/icons"
)

var (
	configPath string
	planPath   string
	noIcons    bool
	verbose    bool
	logFormat  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "deckgen <input.json> <output.pptx> [template.pptx]",
		Short: "Generate PowerPoint decks from JSON slide descriptions",
		Long: `deckgen turns a JSON array of slide descriptions into a pptx deck.
Charts are fitted to their slide by density: crowded columns become bars,
long single-series bar charts are split in two, and labels, legends and
fonts are scaled to the number of points.`,
		Args:         cobra.RangeArgs(2, 3),
		RunE:         run,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML config file (theme colors, icon service)")
	rootCmd.Flags().StringVar(&planPath, "plan", "", "Write the layout plan as JSON to this path")
	rootCmd.Flags().BoolVar(&noIcons, "no-icons", false, "Do not fetch icons")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log layout decisions")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "text", "Log format: text, json")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd.ErrOrStderr(), logFormat, verbose)
	if err != nil {
		return err
	}
	deckgen.SetLogger(logger)
	gg.SetLogger(logger)

	opts := deckgen.DefaultOptions()
	if configPath != "" {
		cfg, err := deckgen.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		opts.Config = cfg
	}
	if len(args) == 3 {
		opts.TemplatePath = args[2]
	}
	opts.PlanPath = planPath
	if noIcons {
		opts.Icons = icons.Disabled{}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := deckgen.Generate(ctx, args[0], args[1], opts); err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	return nil
}

func newLogger(w io.Writer, format string, verbose bool) (*slog.Logger, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}

	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, hopts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, hopts)), nil
	default:
		return nil, fmt.Errorf("invalid log format: %s (must be text or json)", format)
	}
}
