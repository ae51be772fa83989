package bench_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/example/go-procrustes/internal/bench"
	"github.com/example/go-procrustes/internal/edit"
)

// ---------------------------------------------------------------------------
// Aggregation
// ---------------------------------------------------------------------------

func TestStats_MinMaxMean(t *testing.T) {
	durations := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		300 * time.Millisecond,
	}
	s := bench.ComputeStats(durations)

	if s.Min != 100*time.Millisecond {
		t.Errorf("want min=100ms, got %v", s.Min)
	}

	if s.Max != 300*time.Millisecond {
		t.Errorf("want max=300ms, got %v", s.Max)
	}

	if s.Mean != 200*time.Millisecond {
		t.Errorf("want mean=200ms, got %v", s.Mean)
	}
}

func TestStats_SingleRun(t *testing.T) {
	s := bench.ComputeStats([]time.Duration{150 * time.Millisecond})
	if s.Min != s.Max || s.Min != s.Mean {
		t.Errorf("single run: min/max/mean should all be equal, got min=%v max=%v mean=%v", s.Min, s.Max, s.Mean)
	}
}

func TestStats_Empty(t *testing.T) {
	if s := bench.ComputeStats(nil); s != (bench.Stats{}) {
		t.Errorf("want zero stats, got %+v", s)
	}
}

// ---------------------------------------------------------------------------
// Runs
// ---------------------------------------------------------------------------

func testCases() []bench.Case {
	return []bench.Case{
		{Source: []rune("abcd"), Target: []rune("ab cd")},
		{Source: []rune("colour"), Target: []rune("color")},
	}
}

func TestRun(t *testing.T) {
	res, err := bench.Run(context.Background(), edit.CostLevenshtein, edit.Levenshtein[rune](), testCases(), 3)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.CostFunction != edit.CostLevenshtein {
		t.Errorf("CostFunction = %q", res.CostFunction)
	}

	if len(res.Runs) != 3 {
		t.Fatalf("want 3 runs, got %d", len(res.Runs))
	}

	for i, r := range res.Runs {
		if r.Index != i || r.Cold != (i == 0) {
			t.Errorf("run %d: Index=%d Cold=%v", i, r.Index, r.Cold)
		}
		// one insertion plus one deletion
		if r.Cost != 2 {
			t.Errorf("run %d: Cost = %v; want 2", i, r.Cost)
		}
	}

	if res.Stats.Min > res.Stats.Mean || res.Stats.Mean > res.Stats.Max {
		t.Errorf("stats out of order: %+v", res.Stats)
	}
}

func TestRun_InvalidRuns(t *testing.T) {
	if _, err := bench.Run(context.Background(), "lcs", edit.LCS[rune](), testCases(), 0); err == nil {
		t.Error("want error for zero runs")
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := bench.Run(ctx, "lcs", edit.LCS[rune](), testCases(), 2)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

func TestRun_NoPath(t *testing.T) {
	never := func(a, b rune, op edit.Operation) float64 {
		if op == edit.Substitute && a == b {
			return 0
		}
		return math.Inf(1)
	}

	_, err := bench.Run(context.Background(), "never", never, testCases(), 1)
	if !errors.Is(err, edit.ErrNoPath) {
		t.Errorf("want ErrNoPath, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Output formatting
// ---------------------------------------------------------------------------

func sampleResults() []bench.Result {
	runs := []bench.RunResult{
		{Index: 0, Cold: true, Duration: 800 * time.Microsecond, Cost: 2},
		{Index: 1, Cold: false, Duration: 500 * time.Microsecond, Cost: 2},
	}
	return []bench.Result{{
		CostFunction: edit.CostProcrustes,
		Runs:         runs,
		Stats:        bench.ComputeStats([]time.Duration{800 * time.Microsecond, 500 * time.Microsecond}),
	}}
}

func TestFormatTable_ContainsHeaders(t *testing.T) {
	var buf strings.Builder
	bench.FormatTable(sampleResults(), &buf)
	out := buf.String()

	for _, want := range []string{"cost function", "run", "cold", "ms", edit.CostProcrustes, "(mean)", "0.800"} {
		if !strings.Contains(strings.ToLower(out), want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatJSON_IsValidJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := bench.FormatJSON(sampleResults(), &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	var out struct {
		Results []struct {
			CostFunction string `json:"cost_function"`
			Runs         []struct {
				DurationMS float64 `json:"duration_ms"`
			} `json:"runs"`
			Stats struct {
				MinMS float64 `json:"min_ms"`
			} `json:"stats"`
		} `json:"results"`
	}

	err := json.Unmarshal(buf.Bytes(), &out)
	if err != nil {
		t.Fatalf("FormatJSON produced invalid JSON: %v\n%s", err, buf.String())
	}

	if len(out.Results) != 1 || out.Results[0].CostFunction != edit.CostProcrustes {
		t.Fatalf("unexpected report: %s", buf.String())
	}

	if got := out.Results[0].Stats.MinMS; got != 0.5 {
		t.Errorf("min_ms = %v; want 0.5", got)
	}
}
