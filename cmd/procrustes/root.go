package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/go-procrustes/internal/config"
	"github.com/example/go-procrustes/internal/edit"
	"github.com/example/go-procrustes/internal/pipeline"
	"github.com/example/go-procrustes/internal/text"
	"github.com/example/go-procrustes/internal/zipper"
)

var (
	cfgFile   string
	activeCfg config.Config
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "procrustes",
		Short: "Re-tokenize annotated text to match a forced tokenization",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			activeCfg = loaded
			setupLogger(loaded.LogLevel)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newProjectCmd())
	cmd.AddCommand(newDistanceCmd())
	cmd.AddCommand(newTreeCmd())
	cmd.AddCommand(newBenchCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := config.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func requireConfig() (config.Config, error) {
	if activeCfg.Runtime.Processes < 1 {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return activeCfg, nil
}

// projectorOptions resolves the named cost function, segmenter and zipper.
// Traces go to trace when verbose output is on.
func projectorOptions(cfg config.Config, trace io.Writer) ([]pipeline.Option, error) {
	cost, err := edit.LookupCost(cfg.Alignment.CostFunction, cfg.Alignment.SpacePenalty)
	if err != nil {
		return nil, err
	}
	seg, err := text.LookupSegmenter(cfg.Projection.Segmenter)
	if err != nil {
		return nil, err
	}
	zip, err := zipper.Lookup(cfg.Projection.Zipper)
	if err != nil {
		return nil, err
	}

	opts := []pipeline.Option{
		pipeline.WithCost(cost),
		pipeline.WithSegmenter(seg),
		pipeline.WithZipper(zip),
		pipeline.WithFlip(cfg.Projection.Flip),
		pipeline.WithLogger(slog.Default()),
	}
	if cfg.Runtime.Verbose {
		opts = append(opts, pipeline.WithTrace(pipeline.NewTracer(trace)))
	}
	return opts, nil
}
