package mtree

// entry is a member of a node.
//
// A routing entry (subtree != nil) anchors a subtree at its pivot: every
// object stored below it lies within radius of object. A leaf entry
// (subtree == nil) holds a stored object and has radius 0.
//
// dParent caches the distance from object to the pivot of the routing entry
// that owns the enclosing node. It is 0 for entries of the root node.
type entry[T comparable] struct {
	object  T
	dParent float64
	radius  float64
	subtree *node[T]
	seq     uint64
}

func (e *entry[T]) isLeaf() bool { return e.subtree == nil }

// node is either a leaf (leaf entries only) or an internal node (routing
// entries only). A node exclusively owns its entries and their subtrees.
type node[T comparable] struct {
	leaf    bool
	entries []*entry[T]
}

func newLeaf[T comparable](capacity int) *node[T] {
	return &node[T]{leaf: true, entries: make([]*entry[T], 0, capacity)}
}

func newInternal[T comparable](capacity int) *node[T] {
	return &node[T]{entries: make([]*entry[T], 0, capacity)}
}

func (n *node[T]) add(e *entry[T]) {
	n.entries = append(n.entries, e)
}

// removeAt removes the entry at index i without preserving order.
func (n *node[T]) removeAt(i int) *entry[T] {
	e := n.entries[i]
	last := len(n.entries) - 1
	n.entries[i] = n.entries[last]
	n.entries[last] = nil
	n.entries = n.entries[:last]
	return e
}

// replaceAt swaps the entry at index i for e1 and appends e2.
func (n *node[T]) replaceAt(i int, e1, e2 *entry[T]) {
	n.entries[i] = e1
	n.entries = append(n.entries, e2)
}

// coveringRadius is the smallest radius around the routing object that is
// guaranteed to cover every entry of n, given each entry's dParent.
func (n *node[T]) coveringRadius() float64 {
	var r float64
	for _, e := range n.entries {
		r = max(r, e.dParent+e.radius)
	}
	return r
}

// closest returns the index of the entry whose object is nearest to target.
func (n *node[T]) closest(target T, dist func(a, b T) float64) (int, float64) {
	best, bestD := -1, 0.0
	for i, e := range n.entries {
		d := dist(e.object, target)
		if best < 0 || d < bestD {
			best, bestD = i, d
		}
	}
	return best, bestD
}

// objects returns the entries' objects in entry order.
func (n *node[T]) objects() []T {
	out := make([]T, len(n.entries))
	for i, e := range n.entries {
		out[i] = e.object
	}
	return out
}
