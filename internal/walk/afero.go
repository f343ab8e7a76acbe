package walk

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/idelchi/dirpulse/internal/dirpulse"
)

// Afero walks an afero filesystem in lexical order.
type Afero struct {
	// Fs is the filesystem to walk.
	Fs afero.Fs
	// Follow resolves the metadata of symbolic links. Symlinked directories
	// are counted but not descended into.
	Follow bool
	// Filter selects the visited entries.
	Filter Filter
	// Logger receives debug output about filtered entries. Nil discards it.
	Logger *slog.Logger
}

// Walk traverses root on s.Fs.
func (s Afero) Walk(ctx context.Context, root string, visit func(dirpulse.Entry), fail func(string, error)) error {
	log := orDiscard(s.Logger)

	return afero.Walk(s.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			fail(path, err)

			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rel, depth := Rel(path, root)

		if skip, reason := s.Filter.Skip(path, rel, depth); skip {
			log.Debug("skipping entry", "path", filepath.ToSlash(path), "reason", reason)

			// SkipDir on a file would abort the whole walk
			if info.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		stat := func() (fs.FileInfo, error) { return info, nil }
		if s.Follow && info.Mode()&os.ModeSymlink != 0 {
			stat = func() (fs.FileInfo, error) { return s.Fs.Stat(path) }
		}

		visit(entry{
			name:  info.Name(),
			path:  path,
			depth: depth,
			stat:  stat,
		})

		return nil
	})
}
