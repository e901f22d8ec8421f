package mtree

import "github.com/hupe1980/mtree/distance"

// remove deletes obj from the subtree rooted at n. Underflowing children are
// repaired on the way back up; n itself is left for its parent to check.
func (t *Tree[T]) remove(n *node[T], obj T, dc *distance.Cache[T]) bool {
	if n.leaf {
		for i, e := range n.entries {
			if e.object == obj {
				n.removeAt(i)
				return true
			}
		}
		return false
	}

	for i, e := range n.entries {
		if !within(dc.Distance(obj, e.object), e.radius) {
			continue
		}
		if !t.remove(e.subtree, obj, dc) {
			continue
		}
		if len(e.subtree.entries) < t.minCap {
			t.repair(n, i, dc)
		}
		return true
	}
	return false
}

// repair fixes the underflowing child of n.entries[i]. An empty child is
// dropped. Otherwise the child borrows the entry closest to its pivot from a
// sibling that can spare one, or, when no sibling can, is merged into the
// sibling with the closest pivot.
func (t *Tree[T]) repair(n *node[T], i int, dc *distance.Cache[T]) {
	e := n.entries[i]
	child := e.subtree

	if len(child.entries) == 0 {
		n.removeAt(i)
		t.metrics.RecordUnderflow(RepairDrop)
		t.logger.LogUnderflow(RepairDrop, 0)
		return
	}

	lender, lent, lentD := -1, -1, 0.0
	for j, s := range n.entries {
		if j == i || len(s.subtree.entries) <= t.minCap {
			continue
		}
		k, d := s.subtree.closest(e.object, dc.Distance)
		if lender < 0 || d < lentD {
			lender, lent, lentD = j, k, d
		}
	}
	if lender >= 0 {
		s := n.entries[lender]
		moved := s.subtree.removeAt(lent)
		moved.dParent = lentD
		child.add(moved)
		e.radius = max(e.radius, moved.dParent+moved.radius)
		s.radius = min(s.radius, s.subtree.coveringRadius())
		t.metrics.RecordUnderflow(RepairBorrow)
		t.logger.LogUnderflow(RepairBorrow, 1)
		return
	}

	target, targetD := -1, 0.0
	for j, s := range n.entries {
		if j == i {
			continue
		}
		if d := dc.Distance(e.object, s.object); target < 0 || d < targetD {
			target, targetD = j, d
		}
	}
	if target < 0 {
		// Only the root can hold a single routing entry; shrinkRoot handles it.
		return
	}

	s := n.entries[target]
	for _, m := range child.entries {
		m.dParent = dc.Distance(m.object, s.object)
		s.subtree.add(m)
		s.radius = max(s.radius, m.dParent+m.radius)
	}
	moved := len(child.entries)
	n.removeAt(i)
	t.metrics.RecordUnderflow(RepairMerge)
	t.logger.LogUnderflow(RepairMerge, moved)
}

// shrinkRoot removes levels that no longer branch: an internal root with a
// single entry is replaced by its child, and an empty root empties the tree.
func (t *Tree[T]) shrinkRoot() {
	for t.root != nil {
		switch {
		case len(t.root.entries) == 0:
			t.root = nil
			t.height = 0
		case !t.root.leaf && len(t.root.entries) == 1:
			t.root = t.root.entries[0].subtree
			for _, e := range t.root.entries {
				e.dParent = 0
			}
			t.height--
			t.logger.LogRootChange(t.height, false)
		default:
			return
		}
	}
}
