package dirpulse

import (
	"container/heap"
	"slices"
)

// ranked is a record together with its arrival order.
type ranked struct {
	record FileRecord
	seq    uint64
}

// minHeap orders records by ascending size. Among equal sizes the most recent
// arrival sits on top, so it is the first to be evicted.
type minHeap []ranked

func (h minHeap) Len() int { return len(h) }

func (h minHeap) Less(i, j int) bool {
	if h[i].record.Size != h[j].record.Size {
		return h[i].record.Size < h[j].record.Size
	}

	return h[i].seq > h[j].seq
}

func (h minHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *minHeap) Push(x any) { *h = append(*h, x.(ranked)) } //nolint:forcetypeassert // Only ranked is pushed

func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}

// TopK keeps the k largest records offered to it, using O(k) memory and
// O(log k) work per offer.
type TopK struct {
	k    int
	seq  uint64
	heap minHeap
}

// NewTopK creates a selector holding at most k records. A non-positive k
// yields a selector that discards every offer.
func NewTopK(k int) *TopK {
	k = max(k, 0)

	return &TopK{
		k:    k,
		heap: make(minHeap, 0, min(k, 1024)),
	}
}

// Cap returns the maximum number of records the selector holds.
func (t *TopK) Cap() int { return t.k }

// Len returns the number of records currently held.
func (t *TopK) Len() int { return len(t.heap) }

// Offer considers a record for inclusion. Below capacity it is always kept;
// at capacity it replaces the current minimum only if it is strictly larger.
func (t *TopK) Offer(record FileRecord) {
	if t.k == 0 {
		return
	}

	t.seq++
	item := ranked{record: record, seq: t.seq}

	if len(t.heap) < t.k {
		heap.Push(&t.heap, item)

		return
	}

	if record.Size <= t.heap[0].record.Size {
		return
	}

	t.heap[0] = item
	heap.Fix(&t.heap, 0)
}

// DrainSorted empties the selector and returns its records by descending
// size. Records of equal size keep their arrival order.
func (t *TopK) DrainSorted() []FileRecord {
	items := t.heap
	t.heap = nil

	slices.SortFunc(items, func(a, b ranked) int {
		switch {
		case a.record.Size > b.record.Size:
			return -1
		case a.record.Size < b.record.Size:
			return 1
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		default:
			return 0
		}
	})

	records := make([]FileRecord, len(items))
	for i, item := range items {
		records[i] = item.record
	}

	return records
}
