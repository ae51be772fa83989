// Package bench provides timing primitives for the procrustes bench command.
package bench

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/example/go-procrustes/internal/edit"
)

// ---------------------------------------------------------------------------
// Cases and runs
// ---------------------------------------------------------------------------

// Case is one character sequence pair to align.
type Case struct {
	Source []rune
	Target []rune
}

// RunResult holds the timing of one pass over all cases.
type RunResult struct {
	Index    int
	Cold     bool // true for the first run
	Duration time.Duration
	Cost     float64 // summed alignment cost over all cases
}

// Result holds every run of one cost function and their statistics.
type Result struct {
	CostFunction string
	Runs         []RunResult
	Stats        Stats
}

// Run aligns every case runs times under cost and times each pass.
func Run(ctx context.Context, name string, cost edit.Cost[rune], cases []Case, runs int) (Result, error) {
	if runs < 1 {
		return Result{}, fmt.Errorf("runs must be at least 1, got %d", runs)
	}

	res := Result{CostFunction: name, Runs: make([]RunResult, 0, runs)}
	for i := range runs {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		var total float64
		start := time.Now()
		for j, c := range cases {
			r, err := edit.Align(c.Source, c.Target, cost)
			if err != nil {
				return Result{}, fmt.Errorf("%s: case %d: %w", name, j+1, err)
			}
			total += r.Cost
		}
		res.Runs = append(res.Runs, RunResult{
			Index:    i,
			Cold:     i == 0,
			Duration: time.Since(start),
			Cost:     total,
		})
	}

	durations := make([]time.Duration, len(res.Runs))
	for i, r := range res.Runs {
		durations[i] = r.Duration
	}
	res.Stats = ComputeStats(durations)
	return res, nil
}

// ---------------------------------------------------------------------------
// Stats
// ---------------------------------------------------------------------------

// Stats holds aggregate timing statistics across all runs.
type Stats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// ComputeStats calculates min, max and mean over a slice of durations.
// An empty slice yields zero Stats.
func ComputeStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}
	mn, mx := durations[0], durations[0]
	var sum time.Duration
	for _, d := range durations {
		if d < mn {
			mn = d
		}
		if d > mx {
			mx = d
		}
		sum += d
	}
	return Stats{
		Min:  mn,
		Max:  mx,
		Mean: sum / time.Duration(len(durations)),
	}
}

// ---------------------------------------------------------------------------
// Output formatters
// ---------------------------------------------------------------------------

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

// FormatTable writes a human-readable table of bench results to w, one block
// per cost function.
func FormatTable(results []Result, w io.Writer) {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%-24s  %-5s  %-5s  %10s  %12s\n", "Cost function", "Run", "Cold", "MS", "Cost")
	fmt.Fprintln(sb, strings.Repeat("-", 63))

	for _, res := range results {
		for _, r := range res.Runs {
			cold := ""
			if r.Cold {
				cold = "yes"
			}
			fmt.Fprintf(sb, "%-24s  %-5d  %-5s  %10.3f  %12.2f\n",
				res.CostFunction,
				r.Index+1,
				cold,
				ms(r.Duration),
				r.Cost,
			)
		}
		fmt.Fprintf(sb, "%-24s  %-5s  %-5s  %10.3f  %12s  (min)\n", "", "", "", ms(res.Stats.Min), "")
		fmt.Fprintf(sb, "%-24s  %-5s  %-5s  %10.3f  %12s  (mean)\n", "", "", "", ms(res.Stats.Mean), "")
		fmt.Fprintf(sb, "%-24s  %-5s  %-5s  %10.3f  %12s  (max)\n", "", "", "", ms(res.Stats.Max), "")
		fmt.Fprintln(sb, strings.Repeat("-", 63))
	}

	fmt.Fprint(w, sb.String())
}

// jsonReport is the top-level JSON structure emitted by FormatJSON.
type jsonReport struct {
	Results []jsonResult `json:"results"`
}

type jsonResult struct {
	CostFunction string    `json:"cost_function"`
	Runs         []jsonRun `json:"runs"`
	Stats        jsonStats `json:"stats"`
}

type jsonRun struct {
	Index      int     `json:"index"`
	Cold       bool    `json:"cold"`
	DurationMS float64 `json:"duration_ms"`
	Cost       float64 `json:"cost"`
}

type jsonStats struct {
	MinMS  float64 `json:"min_ms"`
	MeanMS float64 `json:"mean_ms"`
	MaxMS  float64 `json:"max_ms"`
}

// FormatJSON writes a JSON report of bench results to w.
func FormatJSON(results []Result, w io.Writer) error {
	jr := jsonReport{Results: make([]jsonResult, len(results))}
	for i, res := range results {
		out := jsonResult{
			CostFunction: res.CostFunction,
			Runs:         make([]jsonRun, len(res.Runs)),
			Stats: jsonStats{
				MinMS:  ms(res.Stats.Min),
				MeanMS: ms(res.Stats.Mean),
				MaxMS:  ms(res.Stats.Max),
			},
		}
		for j, r := range res.Runs {
			out.Runs[j] = jsonRun{
				Index:      r.Index,
				Cold:       r.Cold,
				DurationMS: ms(r.Duration),
				Cost:       r.Cost,
			}
		}
		jr.Results[i] = out
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jr)
}
