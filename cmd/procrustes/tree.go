package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/go-procrustes/internal/tree"
)

func newTreeCmd() *cobra.Command {
	var (
		removeEmpty bool
		removeUnit  bool
		binarize    string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Draw bracketed trees read from standard input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if binarize != "" && binarize != "left" && binarize != "right" {
				return fmt.Errorf("--binarize must be 'left' or 'right'")
			}
			if format != "pretty" && format != "bracket" {
				return fmt.Errorf("--format must be 'pretty' or 'bracket'")
			}

			sc := bufio.NewScanner(cmd.InOrStdin())
			sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
			w := bufio.NewWriter(cmd.OutOrStdout())

			for n := 1; sc.Scan(); n++ {
				t, err := tree.Parse(sc.Text())
				if err != nil {
					return fmt.Errorf("line %d: %w", n, err)
				}
				if removeEmpty {
					t.RemoveEmpty()
				}
				if removeUnit {
					t.RemoveUnit()
				}
				switch binarize {
				case "left":
					t.BinarizeLeft()
				case "right":
					t.BinarizeRight()
				}
				if t.Root == tree.None {
					continue
				}

				if format == "bracket" {
					fmt.Fprintln(w, t.String())
					continue
				}
				fmt.Fprintln(w, t.Pretty())
				fmt.Fprintln(w)
			}
			if err := sc.Err(); err != nil {
				return fmt.Errorf("read trees: %w", err)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&removeEmpty, "remove-empty", false, "Delete "+tree.EmptyLabel+" leaves and the branches they empty")
	cmd.Flags().BoolVar(&removeUnit, "remove-unit", false, "Fuse unary chains into single labels")
	cmd.Flags().StringVar(&binarize, "binarize", "", "Binarize wide nodes: left|right")
	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|bracket")

	return cmd
}
