package mtree

import (
	"fmt"

	"github.com/hupe1980/mtree/distance"
)

// insertResult tells the caller how a child changed during insertion: either
// in place, or replaced by two routing entries after a split.
type insertResult[T comparable] struct {
	split  bool
	e1, e2 *entry[T]
}

func (t *Tree[T]) add(obj T, dc *distance.Cache[T]) bool {
	if t.root == nil {
		t.root = newLeaf[T](t.maxCap + 1)
		t.root.add(t.newLeafEntry(obj, 0))
		t.size, t.height = 1, 1
		return true
	}

	if t.contains(t.root, obj, dc) {
		return false
	}

	if res := t.insert(t.root, obj, nil, dc); res.split {
		root := newInternal[T](t.maxCap + 1)
		res.e1.dParent, res.e2.dParent = 0, 0
		root.add(res.e1)
		root.add(res.e2)
		t.root = root
		t.height++
		t.logger.LogRootChange(t.height, true)
	}

	t.size++
	return true
}

func (t *Tree[T]) newLeafEntry(obj T, dParent float64) *entry[T] {
	t.nextSeq++
	return &entry[T]{object: obj, dParent: dParent, seq: t.nextSeq}
}

// insert places obj below n. parent is the routing entry owning n, nil for
// the root.
func (t *Tree[T]) insert(n *node[T], obj T, parent *entry[T], dc *distance.Cache[T]) insertResult[T] {
	if n.leaf {
		n.add(t.newLeafEntry(obj, distanceToParent(obj, parent, dc)))
	} else {
		i := chooseSubtree(n, obj, dc)
		e := n.entries[i]
		if d := dc.Distance(obj, e.object); d > e.radius {
			e.radius = d
		}
		if res := t.insert(e.subtree, obj, e, dc); res.split {
			res.e1.dParent = distanceToParent(res.e1.object, parent, dc)
			res.e2.dParent = distanceToParent(res.e2.object, parent, dc)
			n.replaceAt(i, res.e1, res.e2)
		}
	}

	if len(n.entries) > t.maxCap {
		return t.split(n, dc)
	}
	return insertResult[T]{}
}

// chooseSubtree prefers the closest routing entry that already covers obj.
// If none does, it picks the entry whose radius would grow the least.
func chooseSubtree[T comparable](n *node[T], obj T, dc *distance.Cache[T]) int {
	best, bestD, covered := -1, 0.0, false
	for i, e := range n.entries {
		d := dc.Distance(obj, e.object)
		if d <= e.radius {
			if !covered || d < bestD {
				best, bestD, covered = i, d, true
			}
			continue
		}
		if covered {
			continue
		}
		if growth := d - e.radius; best < 0 || growth < bestD {
			best, bestD = i, growth
		}
	}
	return best
}

// split divides an overflowing node into two nodes and returns the routing
// entries for them. dParent of the returned entries is left for the caller.
func (t *Tree[T]) split(n *node[T], dc *distance.Cache[T]) insertResult[T] {
	objects := n.objects()
	p1, p2, set1, set2 := t.policy.Split(objects, dc.Distance)
	if len(set1)+len(set2) != len(objects) || len(set1) == 0 || len(set2) == 0 {
		panic(fmt.Errorf("%w: %d objects into sets of %d and %d", ErrInvalidSplit, len(objects), len(set1), len(set2)))
	}

	set1, set2 = t.fillMinimum(set1, set2, p1, p2, dc)
	set2, set1 = t.fillMinimum(set2, set1, p2, p1, dc)

	// Equal objects only occur among routing entries (a pivot reused at
	// several levels); any matching entry is interchangeable.
	byObject := make(map[T][]*entry[T], len(n.entries))
	for _, e := range n.entries {
		byObject[e.object] = append(byObject[e.object], e)
	}
	take := func(o T) *entry[T] {
		es := byObject[o]
		if len(es) == 0 {
			panic(fmt.Errorf("%w: object not in the overflowing node", ErrInvalidSplit))
		}
		byObject[o] = es[:len(es)-1]
		return es[len(es)-1]
	}

	n1 := t.buildNode(n.leaf, set1, p1, take, dc)
	n2 := t.buildNode(n.leaf, set2, p2, take, dc)

	e1 := &entry[T]{object: p1, subtree: n1, radius: n1.coveringRadius()}
	e2 := &entry[T]{object: p2, subtree: n2, radius: n2.coveringRadius()}

	t.metrics.RecordSplit(n.leaf)
	t.logger.LogSplit(n.leaf, len(n1.entries), len(n2.entries), e1.radius, e2.radius)

	return insertResult[T]{split: true, e1: e1, e2: e2}
}

// fillMinimum tops up small to the minimum capacity by moving the members of
// large closest to small's pivot. large's own pivot never moves.
func (t *Tree[T]) fillMinimum(small, large []T, smallPivot, largePivot T, dc *distance.Cache[T]) ([]T, []T) {
	for len(small) < t.minCap {
		best, bestD := -1, 0.0
		for i, o := range large {
			if o == largePivot {
				continue
			}
			if d := dc.Distance(o, smallPivot); best < 0 || d < bestD {
				best, bestD = i, d
			}
		}
		if best < 0 {
			break
		}
		small = append(small, large[best])
		large = append(large[:best], large[best+1:]...)
	}
	return small, large
}

func (t *Tree[T]) buildNode(leaf bool, set []T, pivot T, take func(T) *entry[T], dc *distance.Cache[T]) *node[T] {
	var n *node[T]
	if leaf {
		n = newLeaf[T](t.maxCap + 1)
	} else {
		n = newInternal[T](t.maxCap + 1)
	}
	for _, o := range set {
		e := take(o)
		e.dParent = dc.Distance(o, pivot)
		n.add(e)
	}
	return n
}
