package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/readorder"
	"github.com/tsawler/readorder/format"
	"github.com/tsawler/readorder/internal/journal"
	"github.com/tsawler/readorder/internal/logging"
	"github.com/tsawler/readorder/internal/output"
)

// Options configures a Runner.
type Options struct {
	// Workers bounds concurrent files; values below 1 mean 1
	Workers int

	// Resume skips files whose journaled content hash is unchanged
	Resume bool

	// Output receives the run's results when non-nil
	Output *output.Writer

	// Journal records processed files when non-nil
	Journal *journal.Store

	// Logger receives progress and per-file errors; nil discards them
	Logger *slog.Logger
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Path     string
	Name     string
	Hash     string
	Result   *readorder.Result
	Skipped  bool
	Err      error
	Duration time.Duration
}

// Summary is the outcome of a Run.
type Summary struct {
	RunID     string
	Dir       string
	Files     []FileResult
	Processed int
	Skipped   int
	Failed    int
}

// Errors returns the per-file errors, joined, or nil when every file succeeded.
func (s *Summary) Errors() error {
	var errs []error
	for _, f := range s.Files {
		if f.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Name, f.Err))
		}
	}
	return errors.Join(errs...)
}

// Runner processes directories with a configured Processor.
type Runner struct {
	proc   *readorder.Processor
	opts   Options
	logger *slog.Logger
}

// New creates a Runner. A nil proc uses readorder.New().
func New(proc *readorder.Processor, opts Options) *Runner {
	if proc == nil {
		proc = readorder.New()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Runner{
		proc:   proc,
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "batch"),
	}
}

// ListFiles returns the supported files directly inside dir, sorted by name.
// Hidden files and subdirectories are ignored.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !format.IsSupported(name) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

// Run processes every supported file in dir. Per-file failures are reported
// in the Summary; the returned error is non-nil only when the batch itself
// could not run or ctx was cancelled.
func (r *Runner) Run(ctx context.Context, dir string) (*Summary, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return nil, err
	}
	return r.RunFiles(ctx, dir, files)
}

// RunFiles processes files as one run attributed to dir.
func (r *Runner) RunFiles(ctx context.Context, dir string, files []string) (*Summary, error) {
	summary := &Summary{Dir: dir, Files: make([]FileResult, len(files))}

	var run journal.Run
	if r.opts.Journal != nil {
		started, err := r.opts.Journal.StartRun(ctx, dir)
		if err != nil {
			return nil, fmt.Errorf("start journal run: %w", err)
		}
		run = started
		summary.RunID = run.ID
	}

	logger := r.logger
	if summary.RunID != "" {
		logger = logger.With(slog.String(logging.FieldRunID, summary.RunID))
	}
	logger.Info("batch started", slog.String("dir", dir), slog.Int("files", len(files)), slog.Int("workers", r.opts.Workers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i, path := range files {
		g.Go(func() error {
			summary.Files[i] = r.processFile(gctx, logger, run.ID, path)
			return nil
		})
	}
	_ = g.Wait()

	items := make([]output.Item, 0, len(files))
	for _, f := range summary.Files {
		switch {
		case f.Err != nil:
			summary.Failed++
		case f.Skipped:
			summary.Skipped++
		default:
			summary.Processed++
			items = append(items, output.Item{Name: f.Name, Result: f.Result})
		}
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	if r.opts.Output != nil {
		if err := r.opts.Output.AppendRun(items); err != nil {
			return summary, fmt.Errorf("write output: %w", err)
		}
		logger.Info("output appended", slog.String("path", r.opts.Output.TextPath()))
	}

	if r.opts.Journal != nil {
		run.Processed, run.Skipped, run.Failed = summary.Processed, summary.Skipped, summary.Failed
		if err := r.opts.Journal.FinishRun(ctx, run); err != nil {
			return summary, fmt.Errorf("finish journal run: %w", err)
		}
	}

	logger.Info("batch finished",
		slog.Int("processed", summary.Processed),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed),
	)
	return summary, nil
}

func (r *Runner) processFile(ctx context.Context, logger *slog.Logger, runID, path string) FileResult {
	start := time.Now()
	name := filepath.Base(path)
	fr := FileResult{Path: path, Name: name}
	fileLogger := logger.With(slog.String(logging.FieldFile, name))

	if err := ctx.Err(); err != nil {
		fr.Err = err
		return fr
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fr.Err = fmt.Errorf("read file: %w", err)
		fileLogger.Error("file failed", logging.Error(fr.Err))
		return fr
	}
	fr.Hash = journal.HashContent(data)

	if r.opts.Resume && r.opts.Journal != nil {
		current, err := r.opts.Journal.IsCurrent(ctx, path, fr.Hash)
		if err != nil {
			fileLogger.Warn("journal lookup failed; reprocessing", logging.Error(err))
		} else if current {
			fr.Skipped = true
			fileLogger.Debug("unchanged since last run; skipped")
			return fr
		}
	}

	res, err := r.proc.ProcessBytes(ctx, name, data)
	fr.Duration = time.Since(start)
	if err != nil {
		fr.Err = err
		fileLogger.Error("file failed", logging.Error(err))
		return fr
	}
	fr.Result = res

	for _, w := range res.Warnings {
		fileLogger.Warn("pipeline warning", slog.String("kind", string(w.Kind)), slog.String("detail", w.Message))
	}
	fileLogger.Info("file processed",
		slog.String(logging.FieldDirection, res.Direction.String()),
		slog.String("confidence", res.DirectionConfidence.String()),
		slog.Int(logging.FieldClusters, res.ClusterCount()),
		slog.String(logging.FieldMethod, string(res.ProcessingMethod)),
		slog.Duration("elapsed", fr.Duration),
	)

	if r.opts.Journal != nil {
		entry := journal.Entry{
			Path:        path,
			RunID:       runID,
			ContentHash: fr.Hash,
			Direction:   res.Direction.String(),
			Confidence:  res.DirectionConfidence.String(),
			Method:      string(res.ProcessingMethod),
			Clusters:    res.ClusterCount(),
			FullText:    res.FullText,
		}
		if err := r.opts.Journal.Record(ctx, entry); err != nil {
			fileLogger.Warn("journal record failed", logging.Error(err))
		}
	}
	return fr
}
