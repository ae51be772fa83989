package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/go-procrustes/internal/edit"
)

func newDistanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distance SOURCE_TEXT TARGET_TEXT",
		Short: "Print the alignment cost and character pairs of two strings",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			cost, err := edit.LookupCost(cfg.Alignment.CostFunction, cfg.Alignment.SpacePenalty)
			if err != nil {
				return err
			}

			source, target := []rune(args[0]), []rune(args[1])
			res, err := edit.Align(source, target, cost)
			if err != nil {
				return err
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			fmt.Fprintf(w, "cost\t%g\n", res.Cost)
			for _, p := range res.Pairs {
				fmt.Fprintf(w, "%d-%d\t%c\t%c\n", p.Source, p.Target, source[p.Source], target[p.Target])
			}
			return w.Flush()
		},
	}

	return cmd
}
