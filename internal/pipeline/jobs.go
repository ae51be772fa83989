package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/example/go-procrustes/internal/config"
)

// Stdin names the standard input as a source.
const Stdin = "-"

// Job is one source/target file pair. An empty Output means standard output.
type Job struct {
	Source string
	Target string
	Output string
}

// PlanJobs turns the command-line paths into file pairs. Two files make one
// job. Two directories make one job per source file that has a target file of
// the same name, written under output with that name.
func PlanJobs(source, target, output string) ([]Job, error) {
	tgt, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	if source == Stdin {
		if tgt.IsDir() {
			return nil, fmt.Errorf("standard input source needs a target file, %s is a directory: %w", target, config.ErrInvalid)
		}
		return []Job{{Source: Stdin, Target: target, Output: output}}, nil
	}

	src, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}

	switch {
	case !src.IsDir() && !tgt.IsDir():
		return []Job{{Source: source, Target: target, Output: output}}, nil
	case src.IsDir() && tgt.IsDir():
		return planDirectories(source, target, output)
	default:
		return nil, fmt.Errorf("source %s and target %s must both be files or both be directories: %w",
			source, target, config.ErrInvalid)
	}
}

func planDirectories(source, target, output string) ([]Job, error) {
	if output == "" {
		return nil, fmt.Errorf("directory inputs need an output directory: %w", config.ErrInvalid)
	}
	if info, err := os.Stat(output); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("output %s is not a directory: %w", output, config.ErrInvalid)
	}

	entries, err := os.ReadDir(source)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}

	var jobs []Job
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		tgt := filepath.Join(target, e.Name())
		if info, err := os.Stat(tgt); err != nil || !info.Mode().IsRegular() {
			slog.Warn("no target file for source", slog.String("source", filepath.Join(source, e.Name())))
			continue
		}
		jobs = append(jobs, Job{
			Source: filepath.Join(source, e.Name()),
			Target: tgt,
			Output: filepath.Join(output, e.Name()),
		})
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no file in %s has a counterpart in %s: %w", source, target, config.ErrInvalid)
	}
	return jobs, nil
}

// Run projects every job with at most processes jobs in flight. A failing
// job does not stop the others; all failures are returned joined.
func (p *Projector) Run(ctx context.Context, jobs []Job, processes int, stdin io.Reader, stdout io.Writer) error {
	if processes < 1 {
		return fmt.Errorf("processes must be positive, got %d: %w", processes, config.ErrInvalid)
	}

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(processes)
	for _, job := range jobs {
		g.Go(func() error {
			start := time.Now()
			if err := p.runJob(ctx, job, stdin, stdout); err != nil {
				p.log.ErrorContext(ctx, "pair failed",
					slog.String("source", job.Source),
					slog.String("target", job.Target),
					slog.String("error", err.Error()),
				)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", job.Source, err))
				mu.Unlock()
				return nil
			}
			p.log.InfoContext(ctx, "pair complete",
				slog.String("source", job.Source),
				slog.String("output", job.Output),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

func (p *Projector) runJob(ctx context.Context, job Job, stdin io.Reader, stdout io.Writer) error {
	source := stdin
	if job.Source != Stdin {
		f, err := os.Open(job.Source)
		if err != nil {
			return err
		}
		defer f.Close()
		source = f
	}

	target, err := os.Open(job.Target)
	if err != nil {
		return err
	}
	defer target.Close()

	if job.Output == "" {
		return p.ProjectStream(ctx, source, target, stdout)
	}
	return writeAtomic(job.Output, func(w io.Writer) error {
		return p.ProjectStream(ctx, source, target, w)
	})
}

// writeAtomic writes path through a temporary file in the same directory, so
// a failed write leaves no partial output behind.
func writeAtomic(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := write(tmp); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
