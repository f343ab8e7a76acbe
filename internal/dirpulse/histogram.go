package dirpulse

// BucketStats accumulates the number and cumulative size of files.
type BucketStats struct {
	// Count is the number of files.
	Count uint64 `json:"count" yaml:"count"`
	// Size is the cumulative size in bytes.
	Size uint64 `json:"size" yaml:"size"`
}

// Add records one file of the given size.
func (b *BucketStats) Add(size uint64) {
	b.Count++
	b.Size += size
}

// AgeHistogram holds one bucket per age category.
type AgeHistogram struct {
	Fresh BucketStats `json:"fresh" yaml:"fresh"`
	Aging BucketStats `json:"aging" yaml:"aging"`
	Stale BucketStats `json:"stale" yaml:"stale"`
}

// Bucket returns the stats slot for the given age category.
func (h *AgeHistogram) Bucket(b AgeBucket) *BucketStats {
	switch b {
	case Aging:
		return &h.Aging
	case Stale:
		return &h.Stale
	default:
		return &h.Fresh
	}
}

// Record adds one file of the given size to the bucket b.
func (h *AgeHistogram) Record(b AgeBucket, size uint64) {
	h.Bucket(b).Add(size)
}

// ExtensionHistogram maps an extension (case preserved, no leading dot) to
// the stats of the files carrying it.
type ExtensionHistogram map[string]BucketStats

// ExtensionEntry is a single row of an ExtensionHistogram.
type ExtensionEntry struct {
	Ext   string
	Count uint64
	Size  uint64
}

// Record adds one file with extension ext. An empty extension is ignored.
func (h ExtensionHistogram) Record(ext string, size uint64) {
	if ext == "" {
		return
	}

	stat := h[ext]
	stat.Add(size)
	h[ext] = stat
}

// Entries returns all rows of the histogram in no particular order.
func (h ExtensionHistogram) Entries() []ExtensionEntry {
	entries := make([]ExtensionEntry, 0, len(h))
	for ext, stat := range h {
		entries = append(entries, ExtensionEntry{Ext: ext, Count: stat.Count, Size: stat.Size})
	}

	return entries
}
