package walk

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/charlievieth/fastwalk"

	"github.com/idelchi/dirpulse/internal/dirpulse"
)

// Fast walks the operating system filesystem using fastwalk.
type Fast struct {
	// Follow follows symbolic links; metadata then describes the link target.
	Follow bool
	// Filter selects the visited entries.
	Filter Filter
	// Logger receives debug output about filtered entries. Nil discards it.
	Logger *slog.Logger
}

// Walk traverses root with a single fastwalk worker. Callbacks are guarded by
// a mutex since fastwalk invokes them from its own goroutines.
//
//nolint:varnamelen // d is standard for DirEntry
func (s Fast) Walk(ctx context.Context, root string, visit func(dirpulse.Entry), fail func(string, error)) error {
	log := orDiscard(s.Logger)

	conf := &fastwalk.Config{
		Follow:     s.Follow,
		NumWorkers: 1, // no parallel traversal
		Sort:       fastwalk.SortLexical,
	}

	var mu sync.Mutex

	return fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			mu.Lock()
			defer mu.Unlock()

			fail(path, err)

			return nil
		}

		// Check cancellation periodically
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rel, depth := Rel(path, root)

		if skip, reason := s.Filter.Skip(path, rel, depth); skip {
			// SkipDir on a regular file would skip its remaining siblings
			if d.IsDir() || d.Type()&fs.ModeSymlink != 0 {
				log.Debug("skipping directory", "path", filepath.ToSlash(path), "reason", reason)

				return filepath.SkipDir
			}

			log.Debug("skipping file", "path", filepath.ToSlash(path), "reason", reason)

			return nil
		}

		mu.Lock()
		defer mu.Unlock()

		visit(entry{
			name:  d.Name(),
			path:  path,
			depth: depth,
			stat:  s.statFunc(path, d),
		})

		return nil
	})
}

// statFunc returns the metadata reader for d, resolving symbolic links when
// following them.
func (s Fast) statFunc(path string, d fs.DirEntry) func() (fs.FileInfo, error) {
	if !s.Follow || d.Type()&fs.ModeSymlink == 0 {
		return d.Info
	}

	if fd, ok := d.(fastwalk.DirEntry); ok {
		return fd.Stat
	}

	return func() (fs.FileInfo, error) { return os.Stat(path) }
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return logger
}
