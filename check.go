package mtree

import (
	"errors"
	"fmt"
)

var errCorrupt = errors.New("mtree: structural invariant violated")

// check walks the whole tree and verifies every structural invariant. It is
// used by tests after each mutation and costs O(n * height) distances.
func (t *Tree[T]) check() error {
	if t.root == nil {
		if t.size != 0 || t.height != 0 {
			return fmt.Errorf("%w: empty root with size %d and height %d", errCorrupt, t.size, t.height)
		}
		return nil
	}

	c := checker[T]{t: t, seen: make(map[T]struct{}, t.size), leafDepth: -1}
	if _, err := c.walk(t.root, nil, 1); err != nil {
		return err
	}
	if len(c.seen) != t.size {
		return fmt.Errorf("%w: size %d but %d stored objects", errCorrupt, t.size, len(c.seen))
	}
	if c.leafDepth != t.height {
		return fmt.Errorf("%w: height %d but leaves at depth %d", errCorrupt, t.height, c.leafDepth)
	}
	return nil
}

type checker[T comparable] struct {
	t         *Tree[T]
	seen      map[T]struct{}
	leafDepth int
}

// walk verifies n and returns every object stored below it.
func (c *checker[T]) walk(n *node[T], parent *entry[T], depth int) ([]T, error) {
	t := c.t
	count := len(n.entries)
	switch {
	case count > t.maxCap:
		return nil, fmt.Errorf("%w: node at depth %d holds %d entries, max %d", errCorrupt, depth, count, t.maxCap)
	case n != t.root && count < t.minCap:
		return nil, fmt.Errorf("%w: node at depth %d holds %d entries, min %d", errCorrupt, depth, count, t.minCap)
	case n == t.root && !n.leaf && count < 2:
		return nil, fmt.Errorf("%w: internal root holds %d entries", errCorrupt, count)
	case count == 0:
		return nil, fmt.Errorf("%w: empty node at depth %d", errCorrupt, depth)
	}

	if n.leaf {
		if c.leafDepth < 0 {
			c.leafDepth = depth
		} else if c.leafDepth != depth {
			return nil, fmt.Errorf("%w: leaves at depths %d and %d", errCorrupt, c.leafDepth, depth)
		}
	}

	var objects []T
	for _, e := range n.entries {
		if e.isLeaf() != n.leaf {
			return nil, fmt.Errorf("%w: mixed entry kinds at depth %d", errCorrupt, depth)
		}

		if parent == nil {
			if e.dParent != 0 {
				return nil, fmt.Errorf("%w: root entry %v has parent distance %g", errCorrupt, e.object, e.dParent)
			}
		} else if d1, d2 := t.dist(e.object, parent.object), t.dist(parent.object, e.object); e.dParent != d1 && e.dParent != d2 {
			return nil, fmt.Errorf("%w: entry %v caches parent distance %g, actual %g", errCorrupt, e.object, e.dParent, d1)
		}

		if n.leaf {
			if e.radius != 0 {
				return nil, fmt.Errorf("%w: leaf entry %v has radius %g", errCorrupt, e.object, e.radius)
			}
			if _, dup := c.seen[e.object]; dup {
				return nil, fmt.Errorf("%w: %v stored twice", errCorrupt, e.object)
			}
			c.seen[e.object] = struct{}{}
			objects = append(objects, e.object)
			continue
		}

		below, err := c.walk(e.subtree, e, depth+1)
		if err != nil {
			return nil, err
		}
		for _, o := range below {
			if d := t.dist(e.object, o); !within(d, e.radius) {
				return nil, fmt.Errorf("%w: %v at distance %g escapes radius %g of %v", errCorrupt, o, d, e.radius, e.object)
			}
		}
		objects = append(objects, below...)
	}
	return objects, nil
}
