// Package queue provides the binary heaps used as work-lists by tree queries.
package queue

// Item is a heap element. Distance is the priority; Seq breaks ties between
// equal distances so that heap order is fully deterministic.
type Item[V any] struct {
	Value    V
	Distance float64
	Seq      uint64
}

// PriorityQueue is a value-based binary heap of Items.
//
// A min-heap pops the smallest (Distance, Seq) first. A max-heap pops the
// largest (Distance, Seq) first, which makes it a bounded "worst kept"
// collection for k-best selection.
type PriorityQueue[V any] struct {
	isMaxHeap bool
	items     []Item[V]
}

// NewMin initializes a new priority queue with minimum priority.
func NewMin[V any](capacity int) *PriorityQueue[V] {
	return &PriorityQueue[V]{
		isMaxHeap: false,
		items:     make([]Item[V], 0, capacity),
	}
}

// NewMax initializes a new priority queue with maximum priority.
func NewMax[V any](capacity int) *PriorityQueue[V] {
	return &PriorityQueue[V]{
		isMaxHeap: true,
		items:     make([]Item[V], 0, capacity),
	}
}

// Len returns the number of elements in the priority queue.
func (pq *PriorityQueue[V]) Len() int { return len(pq.items) }

// TopItem returns the top element of the heap.
func (pq *PriorityQueue[V]) TopItem() (Item[V], bool) {
	if len(pq.items) == 0 {
		return Item[V]{}, false
	}
	return pq.items[0], true
}

// PushItem inserts an item while maintaining the heap invariant.
func (pq *PriorityQueue[V]) PushItem(item Item[V]) {
	pq.items = append(pq.items, item)
	pq.siftUp(len(pq.items) - 1)
}

// PopItem removes and returns the top element while maintaining the heap invariant.
func (pq *PriorityQueue[V]) PopItem() (Item[V], bool) {
	n := len(pq.items)
	if n == 0 {
		return Item[V]{}, false
	}
	root := pq.items[0]
	last := pq.items[n-1]
	pq.items[n-1] = Item[V]{} // release the value for GC
	pq.items = pq.items[:n-1]
	if n-1 > 0 {
		pq.items[0] = last
		pq.siftDown(0)
	}
	return root, true
}

// PushBounded pushes item into a max-heap holding at most limit items. When
// the heap is full the item replaces the current top only if it sorts before
// it. It reports whether the item was kept.
func (pq *PriorityQueue[V]) PushBounded(item Item[V], limit int) bool {
	if limit <= 0 {
		return false
	}
	if len(pq.items) < limit {
		pq.PushItem(item)
		return true
	}
	if !pq.before(item, pq.items[0]) {
		return false
	}
	pq.items[0] = item
	pq.siftDown(0)
	return true
}

// Reset clears the priority queue for reuse.
func (pq *PriorityQueue[V]) Reset() {
	clear(pq.items)
	pq.items = pq.items[:0]
}

// before reports whether a has a smaller (Distance, Seq) key than b,
// independently of the heap direction.
func (pq *PriorityQueue[V]) before(a, b Item[V]) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Seq < b.Seq
}

func (pq *PriorityQueue[V]) less(i, j int) bool {
	if pq.isMaxHeap {
		return pq.before(pq.items[j], pq.items[i])
	}
	return pq.before(pq.items[i], pq.items[j])
}

func (pq *PriorityQueue[V]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !pq.less(i, p) {
			return
		}
		pq.items[i], pq.items[p] = pq.items[p], pq.items[i]
		i = p
	}
}

func (pq *PriorityQueue[V]) siftDown(i int) {
	n := len(pq.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && pq.less(r, l) {
			best = r
		}
		if !pq.less(best, i) {
			return
		}
		pq.items[i], pq.items[best] = pq.items[best], pq.items[i]
		i = best
	}
}
