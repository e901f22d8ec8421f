package mtree

import (
	"iter"
	"math"
	"time"

	"github.com/hupe1980/mtree/distance"
	"github.com/hupe1980/mtree/split"
)

// epsilon is the relative slack applied to bounds derived through the
// triangle inequality. It only ever widens the set of visited entries; the
// final membership tests are exact.
const epsilon = 1e-9

// within reports whether d <= limit up to rounding error.
func within(d, limit float64) bool {
	return d <= limit+epsilon*(1+math.Abs(limit))
}

// Tree is an M-tree over objects of type T.
//
// Object identity is Go equality: two equal values are the same object.
type Tree[T comparable] struct {
	root    *node[T]
	size    int
	height  int
	nextSeq uint64

	maxCap int
	minCap int

	dist    distance.Func[T]
	policy  split.Policy[T]
	logger  *Logger
	metrics MetricsCollector
}

// New creates an empty tree over the metric fn.
//
// policy controls node splits; a zero Policy (or a Policy with a nil half)
// falls back to split.Default for the missing parts.
func New[T comparable](fn distance.Func[T], policy split.Policy[T], optFns ...Option) (*Tree[T], error) {
	if fn == nil {
		return nil, ErrNilDistanceFunc
	}

	opts := defaultOptions()
	for _, optFn := range optFns {
		optFn(&opts)
	}

	if err := validateCapacity(opts.maxNodeCapacity, opts.minNodeCapacity); err != nil {
		return nil, err
	}

	return &Tree[T]{
		maxCap:  opts.maxNodeCapacity,
		minCap:  opts.minNodeCapacity,
		dist:    fn,
		policy:  policy.WithDefaults(),
		logger:  opts.logger,
		metrics: opts.metricsCollector,
	}, nil
}

// Add inserts obj. Adding an object that is already stored is a no-op; the
// return value reports whether obj was added.
func (t *Tree[T]) Add(obj T) bool {
	start := time.Now()
	dc := distance.NewCache(t.dist)

	added := t.add(obj, dc)

	t.recordDistances(dc)
	t.metrics.RecordAdd(time.Since(start), added)
	t.logger.LogAdd(added, t.size)
	return added
}

// Remove deletes obj and reports whether it was stored.
func (t *Tree[T]) Remove(obj T) bool {
	start := time.Now()
	dc := distance.NewCache(t.dist)

	removed := t.root != nil && t.remove(t.root, obj, dc)
	if removed {
		t.size--
		t.shrinkRoot()
	}

	t.recordDistances(dc)
	t.metrics.RecordRemove(time.Since(start), removed)
	t.logger.LogRemove(removed, t.size)
	return removed
}

// Contains reports whether obj is stored.
func (t *Tree[T]) Contains(obj T) bool {
	if t.root == nil {
		return false
	}
	dc := distance.NewCache(t.dist)
	found := t.contains(t.root, obj, dc)
	t.recordDistances(dc)
	return found
}

// Distance exposes the tree's metric.
func (t *Tree[T]) Distance(a, b T) float64 {
	return t.dist(a, b)
}

// Len returns the number of stored objects.
func (t *Tree[T]) Len() int {
	return t.size
}

// Height returns the number of node levels; 0 for an empty tree.
func (t *Tree[T]) Height() int {
	return t.height
}

// All returns every stored object in tree order.
func (t *Tree[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if t.root == nil {
			return
		}
		stack := []*node[T]{t.root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, e := range n.entries {
				if e.isLeaf() {
					if !yield(e.object) {
						return
					}
					continue
				}
				stack = append(stack, e.subtree)
			}
		}
	}
}

// contains runs an exact search for obj below n.
func (t *Tree[T]) contains(n *node[T], obj T, dc *distance.Cache[T]) bool {
	for _, e := range n.entries {
		if n.leaf {
			if e.object == obj {
				return true
			}
			continue
		}
		if within(dc.Distance(obj, e.object), e.radius) && t.contains(e.subtree, obj, dc) {
			return true
		}
	}
	return false
}

// distanceToParent returns d(obj, parent pivot), or 0 for the root level.
func distanceToParent[T comparable](obj T, parent *entry[T], dc *distance.Cache[T]) float64 {
	if parent == nil {
		return 0
	}
	return dc.Distance(obj, parent.object)
}

func (t *Tree[T]) recordDistances(dc *distance.Cache[T]) {
	s := dc.Stats()
	t.metrics.RecordDistances(s.Computed, s.Hits)
}
