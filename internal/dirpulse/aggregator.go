package dirpulse

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Sentinel errors reported when the Aggregator is used out of order.
var (
	// ErrMisuse is wrapped by every error caused by calling the Aggregator out of order.
	ErrMisuse = errors.New("aggregator misuse")
	// ErrNotStarted is returned by Finalize when no entry was processed.
	ErrNotStarted = fmt.Errorf("%w: finalize called before any entry was processed", ErrMisuse)
	// ErrFinalized is returned when the Aggregator is used after Finalize.
	ErrFinalized = fmt.Errorf("%w: aggregator already finalized", ErrMisuse)
)

// Summary is the result of one aggregation run.
type Summary struct {
	// TotalSize is the cumulative size of all files in bytes.
	TotalSize uint64 `json:"total_size" yaml:"total_size"`
	// FileCount is the number of regular files.
	FileCount uint64 `json:"file_count" yaml:"file_count"`
	// DirCount is the number of directories, excluding the walk root.
	DirCount uint64 `json:"dir_count" yaml:"dir_count"`
	// Extensions maps file extensions to their statistics.
	Extensions ExtensionHistogram `json:"extensions" yaml:"extensions"`
	// Age holds the age bucket statistics.
	Age AgeHistogram `json:"age" yaml:"age"`
	// TopFiles contains the largest files, largest first.
	TopFiles []FileRecord `json:"top_files" yaml:"top_files"`
	// TopN is the number of top files that was tracked.
	TopN int `json:"top_n" yaml:"top_n"`
	// TopShare is the percentage of TotalSize taken by TopFiles.
	TopShare float64 `json:"top_share" yaml:"top_share"`
}

type state int

const (
	stateInitialized state = iota
	stateAccumulating
	stateFinalized
)

// Aggregator folds a stream of entries into a Summary. It is not safe for
// concurrent use; entries must be processed one at a time.
type Aggregator struct {
	log   *slog.Logger
	now   time.Time
	state state

	totalSize uint64
	fileCount uint64
	dirCount  uint64
	skipped   uint64

	exts ExtensionHistogram
	ages AgeHistogram
	top  *TopK
}

// NewAggregator creates an Aggregator tracking the topN largest files.
// Ages are classified relative to now. A nil logger discards diagnostics.
func NewAggregator(topN int, now time.Time, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Aggregator{
		log:  logger,
		now:  now,
		exts: make(ExtensionHistogram),
		top:  NewTopK(topN),
	}
}

// Skipped returns the number of entries skipped because their metadata could not be read.
func (a *Aggregator) Skipped() uint64 {
	return a.skipped
}

// Process accounts for a single entry. Entries whose metadata cannot be read
// are logged and skipped. The only error returned is ErrFinalized.
func (a *Aggregator) Process(entry Entry) error {
	if a.state == stateFinalized {
		return ErrFinalized
	}

	a.state = stateAccumulating

	meta, err := entry.Metadata()
	if err != nil {
		a.skipped++
		a.log.Warn("skipping entry, metadata not readable", "path", entry.Path(), "error", err)

		return nil
	}

	switch meta.Kind() {
	case KindDir:
		if entry.Depth() > 0 {
			a.dirCount++
		}
	case KindFile:
		a.addFile(entry, meta)
	case KindOther:
	}

	return nil
}

// addFile updates every statistic for a regular file.
func (a *Aggregator) addFile(entry Entry, meta Metadata) {
	size := meta.Size()
	ext := Extension(entry.Name())

	a.fileCount++
	a.totalSize += size
	a.exts.Record(ext, size)

	modified, err := meta.Modified()
	if err != nil {
		a.log.Warn("no modification time, skipping age accounting", "path", entry.Path(), "error", err)

		modified = time.Time{}
	} else {
		a.ages.Record(Classify(a.now, modified), size)
	}

	a.top.Offer(FileRecord{
		Name:     entry.Name(),
		Path:     entry.Path(),
		Size:     size,
		Ext:      ext,
		Modified: modified,
	})
}

// Finalize produces the Summary. It must be called exactly once, after at
// least one entry was processed.
func (a *Aggregator) Finalize() (*Summary, error) {
	switch a.state {
	case stateInitialized:
		return nil, ErrNotStarted
	case stateFinalized:
		return nil, ErrFinalized
	case stateAccumulating:
	}

	a.state = stateFinalized

	topFiles := a.top.DrainSorted()

	var topBytes uint64
	for _, f := range topFiles {
		topBytes += f.Size
	}

	share := 0.0
	if a.totalSize > 0 {
		share = float64(topBytes) / float64(a.totalSize) * 100
	}

	return &Summary{
		TotalSize:  a.totalSize,
		FileCount:  a.fileCount,
		DirCount:   a.dirCount,
		Extensions: a.exts,
		Age:        a.ages,
		TopFiles:   topFiles,
		TopN:       a.top.Cap(),
		TopShare:   share,
	}, nil
}
