package dirpulse_test

import (
	"errors"
	"time"

	"github.com/idelchi/dirpulse/internal/dirpulse"
)

var errPermission = errors.New("permission denied")

// fakeMeta is an in-memory Metadata.
type fakeMeta struct {
	kind     dirpulse.Kind
	size     uint64
	modified time.Time
	modErr   error
}

func (m fakeMeta) Kind() dirpulse.Kind { return m.kind }
func (m fakeMeta) Size() uint64        { return m.size }

func (m fakeMeta) Modified() (time.Time, error) {
	if m.modErr != nil {
		return time.Time{}, m.modErr
	}

	return m.modified, nil
}

// fakeEntry is an in-memory Entry.
type fakeEntry struct {
	name    string
	path    string
	depth   int
	meta    fakeMeta
	metaErr error
}

func (e fakeEntry) Name() string { return e.name }
func (e fakeEntry) Path() string { return e.path }
func (e fakeEntry) Depth() int   { return e.depth }

func (e fakeEntry) Metadata() (dirpulse.Metadata, error) {
	if e.metaErr != nil {
		return nil, e.metaErr
	}

	return e.meta, nil
}

func dir(path string, depth int) fakeEntry {
	return fakeEntry{name: path, path: path, depth: depth, meta: fakeMeta{kind: dirpulse.KindDir}}
}

func file(name string, size uint64, modified time.Time) fakeEntry {
	return fakeEntry{
		name:  name,
		path:  "root/" + name,
		depth: 1,
		meta:  fakeMeta{kind: dirpulse.KindFile, size: size, modified: modified},
	}
}
