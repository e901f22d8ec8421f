package mtree

import (
	"iter"
	"math"
	"time"

	"github.com/hupe1980/mtree/distance"
	"github.com/hupe1980/mtree/internal/queue"
)

// Result is a query hit: a stored object and its distance to the query.
type Result[T any] struct {
	Object   T
	Distance float64
}

// RangeQuery yields every stored object within radius of q (inclusive), in
// non-decreasing distance order. A negative or NaN radius yields nothing.
//
// The tree is searched when iteration starts. Mutating the tree while
// iterating is undefined behavior.
func (t *Tree[T]) RangeQuery(q T, radius float64) iter.Seq[Result[T]] {
	return func(yield func(Result[T]) bool) {
		start := time.Now()
		dc := distance.NewCache(t.dist)
		emitted := 0
		defer func() { t.finishQuery(QueryKindRange, emitted, start, dc) }()

		if t.root == nil || !(radius >= 0) {
			return
		}

		type frame struct {
			n         *node[T]
			dq        float64
			hasParent bool
		}

		matches := queue.NewMin[T](16)
		stack := []frame{{n: t.root}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			for _, e := range f.n.entries {
				if f.hasParent && !within(math.Abs(f.dq-e.dParent)-e.radius, radius) {
					continue
				}
				d := dc.Distance(e.object, q)
				if e.isLeaf() {
					if d <= radius {
						matches.PushItem(queue.Item[T]{Value: e.object, Distance: d, Seq: e.seq})
					}
					continue
				}
				if within(d-e.radius, radius) {
					stack = append(stack, frame{n: e.subtree, dq: d, hasParent: true})
				}
			}
		}

		for {
			m, ok := matches.PopItem()
			if !ok {
				return
			}
			emitted++
			if !yield(Result[T]{Object: m.Value, Distance: m.Distance}) {
				return
			}
		}
	}
}

// LimitQuery yields the k stored objects closest to q in non-decreasing
// distance order. Fewer are yielded when the tree holds fewer than k
// objects; k <= 0 yields nothing.
func (t *Tree[T]) LimitQuery(q T, k int) iter.Seq[Result[T]] {
	return t.nearest(QueryKindLimit, q, math.Inf(1), k)
}

// Nearest yields at most k stored objects within radius of q, closest first.
// It is the combined form of RangeQuery and LimitQuery: Nearest(q, r, k)
// yields the first k results of RangeQuery(q, r), and Nearest(q, +Inf, k)
// equals LimitQuery(q, k).
//
// Results are produced incrementally: a result is yielded as soon as no
// unexplored part of the tree can hold anything closer, so stopping early
// saves distance computations.
func (t *Tree[T]) Nearest(q T, radius float64, k int) iter.Seq[Result[T]] {
	return t.nearest(QueryKindNearest, q, radius, k)
}

func (t *Tree[T]) nearest(kind string, q T, radius float64, k int) iter.Seq[Result[T]] {
	return func(yield func(Result[T]) bool) {
		start := time.Now()
		dc := distance.NewCache(t.dist)
		emitted := 0
		defer func() { t.finishQuery(kind, emitted, start, dc) }()

		if t.root == nil || k <= 0 || !(radius >= 0) {
			return
		}

		type pending struct {
			n         *node[T]
			dq        float64
			hasParent bool
		}

		// subtrees is keyed by the lower bound max(0, d - radius) of the
		// distance from q to anything stored below; Seq keeps FIFO order.
		subtrees := queue.NewMin[pending](16)
		candidates := queue.NewMin[T](k)
		// best keeps the k closest distances seen so far; its top is the
		// k-th best, which bounds every remaining result.
		best := queue.NewMax[struct{}](k)
		threshold := func() float64 {
			if best.Len() < k {
				return radius
			}
			top, _ := best.TopItem()
			return min(radius, top.Distance)
		}

		var pushed uint64
		subtrees.PushItem(queue.Item[pending]{Value: pending{n: t.root}})

		for {
			// Emit every candidate that no pending subtree can beat or tie.
			for {
				c, ok := candidates.TopItem()
				if !ok {
					break
				}
				if s, ok := subtrees.TopItem(); ok && within(s.Distance, c.Distance) {
					break
				}
				candidates.PopItem()
				emitted++
				if !yield(Result[T]{Object: c.Value, Distance: c.Distance}) || emitted == k {
					return
				}
			}

			s, ok := subtrees.PopItem()
			if !ok {
				return
			}
			if !within(s.Distance, threshold()) {
				// Bounds only grow from here on.
				subtrees.Reset()
				continue
			}

			for _, e := range s.Value.n.entries {
				limit := threshold()
				if s.Value.hasParent && !within(math.Abs(s.Value.dq-e.dParent)-e.radius, limit) {
					continue
				}
				d := dc.Distance(e.object, q)
				if e.isLeaf() {
					if d <= limit {
						candidates.PushItem(queue.Item[T]{Value: e.object, Distance: d, Seq: e.seq})
						best.PushBounded(queue.Item[struct{}]{Distance: d, Seq: e.seq}, k)
					}
					continue
				}
				if lb := max(0, d-e.radius); within(lb, limit) {
					pushed++
					subtrees.PushItem(queue.Item[pending]{
						Value:    pending{n: e.subtree, dq: d, hasParent: true},
						Distance: lb,
						Seq:      pushed,
					})
				}
			}
		}
	}
}

func (t *Tree[T]) finishQuery(kind string, results int, start time.Time, dc *distance.Cache[T]) {
	s := dc.Stats()
	t.metrics.RecordQuery(kind, results, time.Since(start))
	t.metrics.RecordDistances(s.Computed, s.Hits)
	t.logger.LogQuery(kind, results, s.Computed, s.Hits)
}
