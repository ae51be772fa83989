package main

import (
	"fmt"
	"io"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/example/go-procrustes/internal/config"
	"github.com/example/go-procrustes/internal/pipeline"
	"github.com/example/go-procrustes/internal/repr"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project SOURCE TARGET",
		Short: "Project annotations onto the tokenization of the target text",
		Long: `Re-tokenize every annotated record in SOURCE so that its characters spell
out the matching line of TARGET, keeping the annotation attached.

SOURCE and TARGET are both files or both directories. Directories are
matched by file name and need --output naming an output directory.
SOURCE may be "-" to read records from standard input.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			mode, err := repr.ParseMode(cfg.Projection.Mode)
			if err != nil {
				return err
			}
			opts, err := projectorOptions(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			source, target := args[0], args[1]
			if source == pipeline.Stdin && isTerminal(cmd.InOrStdin()) {
				return fmt.Errorf("refusing to read records from a terminal, pipe them in or name a file: %w", config.ErrInvalid)
			}

			jobs, err := pipeline.PlanJobs(source, target, cfg.Output)
			if err != nil {
				return err
			}

			p := pipeline.NewProjector(mode, opts...)
			return p.Run(cmd.Context(), jobs, cfg.Runtime.Processes, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	return cmd
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
