package dirpulse

import (
	"errors"
	"time"
)

// ErrNoModTime is returned by Metadata.Modified when the modification time of
// an entry cannot be determined.
var ErrNoModTime = errors.New("modification time not available")

// Kind discriminates the entries yielded by a traversal.
type Kind int

const (
	// KindOther is any entry that is neither a directory nor a regular file.
	KindOther Kind = iota
	// KindDir is a directory.
	KindDir
	// KindFile is a regular file.
	KindFile
)

// Metadata exposes the attributes of an entry once they have been read.
type Metadata interface {
	// Kind reports whether the entry is a directory, a regular file or something else.
	Kind() Kind
	// Size is the size in bytes.
	Size() uint64
	// Modified returns the modification time, or an error if it cannot be read.
	Modified() (time.Time, error)
}

// Entry is a single node yielded by a traversal source.
type Entry interface {
	// Name is the base name of the entry.
	Name() string
	// Path is the full path of the entry.
	Path() string
	// Depth is the depth relative to the walk root, which has depth 0.
	Depth() int
	// Metadata reads the attributes of the entry. It may fail, e.g. on permission errors.
	Metadata() (Metadata, error)
}
