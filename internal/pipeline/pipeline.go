// Package pipeline drives re-tokenization: it pairs records with forced
// lines, aligns and projects each record, verifies the result and writes it
// out, one file pair per worker.
package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/example/go-procrustes/internal/edit"
	"github.com/example/go-procrustes/internal/repr"
	"github.com/example/go-procrustes/internal/text"
	"github.com/example/go-procrustes/internal/zipper"
)

// ErrVerification is returned when a projected record does not spell out
// the forced line exactly.
var ErrVerification = errors.New("projected characters differ from forced line")

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	repr   repr.Options
	cost   edit.Cost[rune]
	zip    zipper.Zipper
	trace  *Tracer
	logger *slog.Logger
}

func defaultOptions() options {
	return options{
		cost:   edit.Procrustes(edit.DefaultSpacePenalty),
		zip:    zipper.Line,
		logger: slog.Default(),
	}
}

// Option configures a Projector.
type Option func(*options)

// WithFlip re-tokenizes the second field of word-alignment records.
func WithFlip(flip bool) Option {
	return func(o *options) { o.repr.Flip = flip }
}

// WithSegmenter lays XML output out one segment per line.
func WithSegmenter(s text.Segmenter) Option {
	return func(o *options) { o.repr.Segmenter = s }
}

// WithCost sets the character cost model used for alignment.
func WithCost(c edit.Cost[rune]) Option {
	return func(o *options) { o.cost = c }
}

// WithZipper sets how source and target inputs are paired into records.
func WithZipper(z zipper.Zipper) Option {
	return func(o *options) { o.zip = z }
}

// WithTrace writes a diagnostic block for every record to t.
func WithTrace(t *Tracer) Option {
	return func(o *options) { o.trace = t }
}

// WithLogger sets the logger for progress and failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ---------------------------------------------------------------------------
// Projector
// ---------------------------------------------------------------------------

// Projector re-tokenizes records of one mode. It is safe for concurrent use;
// every record gets its own representation.
type Projector struct {
	mode repr.Mode
	opts options
	log  *slog.Logger
}

// NewProjector returns a Projector for records of the given mode.
func NewProjector(mode repr.Mode, optFns ...Option) *Projector {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Projector{mode: mode, opts: opts, log: opts.logger}
}

// ProjectRecord re-tokenizes one annotated line to the forced line and
// returns the rendered result. Whitespace in forced is collapsed first.
func (p *Projector) ProjectRecord(source, forced string) (string, error) {
	r, err := repr.New(p.mode, source, p.opts.repr)
	if err != nil {
		return "", err
	}
	forced = text.CollapseSpace(forced)

	chars := r.Characters()
	res, err := edit.Align(chars, []rune(forced), p.opts.cost)
	if err != nil {
		return "", err
	}
	if p.opts.trace != nil {
		p.opts.trace.Record(r.String(), chars, forced, res.Pairs)
	}

	if err := r.Project(forced, res.Pairs); err != nil {
		return "", err
	}
	if got := string(r.Characters()); got != forced {
		return "", fmt.Errorf("%w: %q != %q", ErrVerification, got, forced)
	}
	return r.String(), nil
}

// ProjectStream pairs source and target into records and writes one
// projected record per line to out, in input order. It stops at the first
// failing record.
func (p *Projector) ProjectStream(ctx context.Context, source, target io.Reader, out io.Writer) error {
	records, err := p.opts.zip(source, target)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(out)
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := p.ProjectRecord(rec.Source, rec.Target)
		if err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write record %d: %w", i+1, err)
		}
	}
	p.log.DebugContext(ctx, "stream projected", slog.Int("records", len(records)))
	return w.Flush()
}
