package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"

	"github.com/idelchi/dirpulse/internal/config"
	"github.com/idelchi/dirpulse/internal/dirpulse"
	"github.com/idelchi/dirpulse/internal/walk"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// Options configures a single scan.
type Options struct {
	// Path is the directory to analyze.
	Path string
	// TopN is the number of largest files to track.
	TopN int
	// Hidden includes entries whose name starts with a dot.
	Hidden bool
	// Follow follows symbolic links.
	Follow bool
	// Excludes contains regex patterns to exclude.
	Excludes []string
	// Depth is the maximum traversal depth (0=unlimited).
	Depth int
	// Walker selects the traversal backend, see config.Walkers.
	Walker string
	// Fs overrides the filesystem walked by the afero backend.
	Fs afero.Fs
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
	// Now is the reference time for age classification. Zero means time.Now().
	Now time.Time
}

// Report is the outcome of a scan.
type Report struct {
	// Root is the scanned directory.
	Root string `json:"root" yaml:"root"`
	// Summary holds the aggregated statistics.
	Summary *dirpulse.Summary `json:"summary" yaml:"summary"`
	// Skipped is the number of entries whose metadata could not be read.
	Skipped uint64 `json:"skipped" yaml:"skipped"`
	// Errors is the number of entries the traversal could not resolve.
	Errors int64 `json:"errors" yaml:"errors"`
	// Elapsed is the total time taken for the scan.
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
	// Partial is set when the scan was cancelled before completion.
	Partial bool `json:"partial" yaml:"partial"`
}

// counters are read by the progress reporter while the walk updates them.
type counters struct {
	files atomic.Int64
	bytes atomic.Int64
	errs  atomic.Int64
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
func startProgressReporter(ctx context.Context, c *counters, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.files.Load(), c.bytes.Load())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// source builds the traversal backend selected by opt.
func source(opt Options, fsys afero.Fs, filter walk.Filter, log *slog.Logger) (walk.Source, error) {
	switch opt.Walker {
	case "", config.WalkerFast:
		return walk.Fast{Follow: opt.Follow, Filter: filter, Logger: log}, nil
	case config.WalkerAfero:
		return walk.Afero{Fs: fsys, Follow: opt.Follow, Filter: filter, Logger: log}, nil
	default:
		return nil, fmt.Errorf("%w %q", config.ErrInvalidWalker, opt.Walker)
	}
}

// cachedEntry reads the metadata of the wrapped entry at most once, so the
// progress counters can reuse what the aggregator read.
type cachedEntry struct {
	dirpulse.Entry

	read bool
	meta dirpulse.Metadata
	err  error
}

func (e *cachedEntry) Metadata() (dirpulse.Metadata, error) {
	if !e.read {
		e.meta, e.err = e.Entry.Metadata()
		e.read = true
	}

	return e.meta, e.err
}

// Run scans opt.Path and returns the aggregated report.
//
// Entries the traversal cannot resolve are counted in Report.Errors; entries
// whose metadata cannot be read are counted in Report.Skipped. Neither stops
// the scan. Progress updates are sent to progressHook if provided.
//
// If ctx is cancelled the walk stops and the report over the entries processed
// so far is returned together with the context error.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Report, error) {
	log := opt.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	if opt.Path == "" {
		opt.Path = "."
	}

	opt.Path = filepath.Clean(opt.Path)

	var fsys afero.Fs = afero.NewOsFs()
	if opt.Walker == config.WalkerAfero && opt.Fs != nil {
		fsys = opt.Fs
	}

	// validate path exists and is accessible
	if statInfo, err := fsys.Stat(opt.Path); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opt.Path, err)
	} else if !statInfo.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", opt.Path)
	}

	excludes, err := walk.CompilePatterns(opt.Excludes)
	if err != nil {
		return nil, err
	}

	filter := walk.Filter{Hidden: opt.Hidden, Depth: opt.Depth, Excludes: excludes}

	src, err := source(opt, fsys, filter, log)
	if err != nil {
		return nil, err
	}

	log.Debug("starting scan",
		"path", opt.Path, "walker", opt.Walker, "top", opt.TopN,
		"hidden", opt.Hidden, "follow", opt.Follow, "depth", opt.Depth, "excludes", opt.Excludes)

	now := opt.Now
	if now.IsZero() {
		now = time.Now()
	}

	start := time.Now()
	agg := dirpulse.NewAggregator(opt.TopN, now, log)

	var count counters

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, &count, progressHook, opt.ProgressInterval)

	var misuse error

	walkErr := src.Walk(ctx, opt.Path, func(e dirpulse.Entry) {
		if misuse != nil {
			return
		}

		cached := &cachedEntry{Entry: e}

		if err := agg.Process(cached); err != nil {
			misuse = err

			return
		}

		if meta, err := cached.Metadata(); err == nil && meta.Kind() == dirpulse.KindFile {
			count.files.Add(1)
			count.bytes.Add(int64(meta.Size())) //nolint:gosec // Sizes fit in int64
		}
	}, func(path string, err error) {
		count.errs.Add(1)
		log.Debug("error accessing path", "path", path, "error", err)
	})

	if misuse != nil {
		return nil, misuse
	}

	partial := walkErr != nil && (errors.Is(walkErr, context.Canceled) || errors.Is(walkErr, context.DeadlineExceeded))
	if walkErr != nil && !partial {
		return nil, walkErr
	}

	summary, err := agg.Finalize()
	if partial && errors.Is(err, dirpulse.ErrNotStarted) {
		return nil, walkErr
	}

	if err != nil {
		return nil, err
	}

	report := &Report{
		Root:    filepath.ToSlash(opt.Path),
		Summary: summary,
		Skipped: agg.Skipped(),
		Errors:  count.errs.Load(),
		Elapsed: time.Since(start),
		Partial: partial,
	}

	if partial {
		return report, walkErr
	}

	return report, nil
}
