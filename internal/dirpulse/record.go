package dirpulse

import (
	"strings"
	"time"
)

// FileRecord describes a single file observed during a walk. It is never
// modified after creation.
type FileRecord struct {
	// Name is the base name of the file.
	Name string `json:"name" yaml:"name"`
	// Path is the full path of the file.
	Path string `json:"path" yaml:"path"`
	// Size is the size in bytes.
	Size uint64 `json:"size" yaml:"size"`
	// Ext is the extension without the leading dot, empty if the file has none.
	Ext string `json:"ext,omitempty" yaml:"ext,omitempty"`
	// Modified is the modification time, zero if it could not be read.
	Modified time.Time `json:"modified" yaml:"modified"`
}

// HasModTime reports whether the modification time of the file was readable.
func (r FileRecord) HasModTime() bool {
	return !r.Modified.IsZero()
}

// Extension returns the extension of a file name: the text after the last dot,
// case preserved. Names without a dot, names whose only dot is the leading one
// (".bashrc") and names ending in a dot have no extension. A trailing dot
// deliberately yields "" rather than an empty extension, so "notes." is not
// counted under an empty key in the extension histogram.
func Extension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return ""
	}

	return name[idx+1:]
}
