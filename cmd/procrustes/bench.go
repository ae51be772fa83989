package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/example/go-procrustes/internal/bench"
	"github.com/example/go-procrustes/internal/config"
	"github.com/example/go-procrustes/internal/edit"
	"github.com/example/go-procrustes/internal/repr"
	"github.com/example/go-procrustes/internal/text"
	"github.com/example/go-procrustes/internal/zipper"
)

func newBenchCmd() *cobra.Command {
	var (
		runs          int
		format        string
		costFunctions []string
	)

	cmd := &cobra.Command{
		Use:   "bench SOURCE TARGET",
		Short: "Benchmark alignment time per cost function",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be 'table' or 'json'")
			}

			cases, err := loadCases(cfg, args[0], args[1])
			if err != nil {
				return err
			}

			results := make([]bench.Result, 0, len(costFunctions))
			for _, name := range costFunctions {
				cost, err := edit.LookupCost(name, cfg.Alignment.SpacePenalty)
				if err != nil {
					return err
				}
				res, err := bench.Run(cmd.Context(), name, cost, cases, runs)
				if err != nil {
					return err
				}
				results = append(results, res)
			}

			switch format {
			case "json":
				return bench.FormatJSON(results, cmd.OutOrStdout())
			default:
				bench.FormatTable(results, cmd.OutOrStdout())
			}
			return nil
		},
	}

	defaultCosts := slices.DeleteFunc(edit.CostNames(), func(name string) bool { return name == edit.CostDebug })
	cmd.Flags().IntVar(&runs, "runs", 5, "Number of passes over the records per cost function")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")
	cmd.Flags().StringSliceVar(&costFunctions, "cost-functions", defaultCosts, "Cost functions to time")

	return cmd
}

// loadCases pairs the records of source with the lines of target the same
// way projection does and returns their character sequences.
func loadCases(cfg config.Config, source, target string) ([]bench.Case, error) {
	mode, err := repr.ParseMode(cfg.Projection.Mode)
	if err != nil {
		return nil, err
	}
	zip, err := zipper.Lookup(cfg.Projection.Zipper)
	if err != nil {
		return nil, err
	}

	src, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	tgt, err := os.Open(target)
	if err != nil {
		return nil, err
	}
	defer tgt.Close()

	records, err := zip(src, tgt)
	if err != nil {
		return nil, err
	}

	cases := make([]bench.Case, 0, len(records))
	for i, rec := range records {
		r, err := repr.New(mode, rec.Source, repr.Options{Flip: cfg.Projection.Flip})
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		cases = append(cases, bench.Case{
			Source: r.Characters(),
			Target: []rune(text.CollapseSpace(rec.Target)),
		})
	}
	return cases, nil
}
