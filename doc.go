// Package mtree provides an exact, in-memory metric-space index (M-tree).
//
// An M-tree stores arbitrary comparable objects and answers similarity
// queries using nothing but a distance function that satisfies the metric
// axioms. No coordinates or vector space are assumed, so the same tree
// indexes strings under edit distance, fingerprints under Hamming distance or
// vectors under Euclidean distance.
//
// # Quick Start
//
//	t, err := mtree.New(distance.Levenshtein, split.Policy[string]{})
//	if err != nil {
//	    panic(err)
//	}
//	t.Add("kitten")
//	t.Add("sitting")
//	t.Add("mitten")
//
//	for r := range t.RangeQuery("bitten", 1) {
//	    fmt.Println(r.Object, r.Distance)
//	}
//
//	for r := range t.LimitQuery("knitting", 2) {
//	    fmt.Println(r.Object, r.Distance)
//	}
//
// # Structure
//
// The tree is height-balanced. Internal nodes hold routing entries, each
// anchored at a pivot object with a covering radius that bounds the distance
// from the pivot to every object below it. Leaves hold the stored objects.
// Every entry caches its distance to the pivot of its enclosing routing
// entry, which lets queries discard entries through the triangle inequality
// without evaluating the metric.
//
// Node splits are delegated to a split.Policy (promotion + partition).
// Removals repair underflowing nodes by borrowing from or merging into a
// sibling.
//
// # Queries
//
// Queries return lazy, distance-ordered iter.Seq sequences. Each iteration is
// an independent execution; stopping the loop abandons the query. Objects at
// equal distance are ordered by insertion (earlier Add first), which also
// decides ties at the cutoff of a limit query.
//
// # Concurrency
//
// A Tree is not safe for concurrent use. Guard it with a sync.RWMutex when
// needed: queries may share a read lock, but a query's sequence must be fully
// consumed inside the critical section.
package mtree
