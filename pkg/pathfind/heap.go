package pathfind

import (
	"container/heap"
	"math"

	"github.com/vanderheijden86/pathlab/pkg/grid"
)

// KeyFunc extracts the ordering key of a heap item. NaN keys sort last.
type KeyFunc[T any] func(T) float64

type heapEntry[T any] struct {
	item T
	key  float64
}

type heapEntries[T any] []heapEntry[T]

func (h heapEntries[T]) Len() int           { return len(h) }
func (h heapEntries[T]) Less(i, j int) bool { return h[i].key < h[j].key }
func (h heapEntries[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *heapEntries[T]) Push(x any) {
	*h = append(*h, x.(heapEntry[T]))
}

func (h *heapEntries[T]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = heapEntry[T]{}
	*h = old[:n-1]
	return item
}

// Heap is an array-backed binary min-heap.
//
// The key is captured when an item is inserted. Re-inserting an item whose
// key has since dropped leaves the older entry behind; callers skip those
// stale entries when they are extracted.
type Heap[T comparable] struct {
	entries heapEntries[T]
	key     KeyFunc[T]
}

// NewHeap returns an empty heap ordered by key.
func NewHeap[T comparable](key KeyFunc[T]) *Heap[T] {
	return &Heap[T]{key: key}
}

// NewDistanceHeap orders nodes by accumulated distance.
func NewDistanceHeap() *Heap[*grid.Node] {
	return NewHeap(func(n *grid.Node) float64 { return n.Distance })
}

// NewScoreHeap orders nodes by their A* score.
func NewScoreHeap() *Heap[*grid.Node] {
	return NewHeap(func(n *grid.Node) float64 { return n.F })
}

// Insert adds item. The zero value (nil for pointers) is ignored.
func (h *Heap[T]) Insert(item T) {
	var zero T
	if item == zero {
		return
	}
	k := h.key(item)
	if math.IsNaN(k) {
		k = math.Inf(1)
	}
	heap.Push(&h.entries, heapEntry[T]{item: item, key: k})
}

// ExtractMin removes and returns the item with the smallest key. ok is false
// when the heap is empty.
func (h *Heap[T]) ExtractMin() (item T, ok bool) {
	if len(h.entries) == 0 {
		return item, false
	}
	e := heap.Pop(&h.entries).(heapEntry[T])
	return e.item, true
}

// IsEmpty reports whether the heap holds no entries.
func (h *Heap[T]) IsEmpty() bool {
	return len(h.entries) == 0
}

// Len returns the number of entries, stale ones included.
func (h *Heap[T]) Len() int {
	return len(h.entries)
}
