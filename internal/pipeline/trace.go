package pipeline

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/example/go-procrustes/internal/edit"
)

// Tracer writes per-record alignment diagnostics. Blocks from concurrent
// workers never interleave.
type Tracer struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

// NewTracer returns a Tracer writing to w. The character diff is colored
// when w is a terminal.
func NewTracer(w io.Writer) *Tracer {
	color := false
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Tracer{w: w, color: color}
}

// Record writes the trace of one record: its rendering, its characters, the
// forced line, every aligned character pair and a character diff.
func (t *Tracer) Record(rendered string, chars []rune, forced string, pairs edit.Alignment) {
	target := []rune(forced)

	var sb strings.Builder
	fmt.Fprintln(&sb, rendered)
	fmt.Fprintln(&sb, string(chars))
	fmt.Fprintln(&sb, forced)
	for _, p := range pairs {
		fmt.Fprintf(&sb, "[%c]-[%c]\n", chars[p.Source], target[p.Target])
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(chars), forced, false)
	if t.color {
		sb.WriteString(dmp.DiffPrettyText(diffs))
	} else {
		sb.WriteString(plainDiff(diffs))
	}
	sb.WriteString("\n\n")

	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = io.WriteString(t.w, sb.String())
}

// plainDiff marks deletions as [-x-] and insertions as {+x+}.
func plainDiff(diffs []diffmatchpatch.Diff) string {
	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			sb.WriteString("{+" + d.Text + "+}")
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}
