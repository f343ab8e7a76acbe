package walk

import (
	"context"
	"io/fs"
	"time"

	"github.com/idelchi/dirpulse/internal/dirpulse"
)

// Source yields the entries of a directory tree.
type Source interface {
	// Walk calls visit once per entry below and including root, sequentially.
	// Entries that cannot be resolved by the traversal are reported to fail
	// and never reach visit.
	Walk(ctx context.Context, root string, visit func(dirpulse.Entry), fail func(path string, err error)) error
}

// entry adapts a walked path to dirpulse.Entry. Metadata is read lazily
// through stat.
type entry struct {
	name  string
	path  string
	depth int
	stat  func() (fs.FileInfo, error)
}

func (e entry) Name() string { return e.name }
func (e entry) Path() string { return e.path }
func (e entry) Depth() int   { return e.depth }

func (e entry) Metadata() (dirpulse.Metadata, error) {
	info, err := e.stat()
	if err != nil {
		return nil, err
	}

	return infoMeta{info: info}, nil
}

// infoMeta adapts fs.FileInfo to dirpulse.Metadata.
type infoMeta struct {
	info fs.FileInfo
}

func (m infoMeta) Kind() dirpulse.Kind {
	switch {
	case m.info.IsDir():
		return dirpulse.KindDir
	case m.info.Mode().IsRegular():
		return dirpulse.KindFile
	default:
		return dirpulse.KindOther
	}
}

func (m infoMeta) Size() uint64 {
	return uint64(max(m.info.Size(), 0)) //nolint:gosec // Clamped to non-negative
}

// Modified treats the zero time as unreadable.
func (m infoMeta) Modified() (time.Time, error) {
	mod := m.info.ModTime()
	if mod.IsZero() {
		return time.Time{}, dirpulse.ErrNoModTime
	}

	return mod, nil
}
