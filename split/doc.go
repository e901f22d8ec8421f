// Package split provides the promotion and partition policies used when a
// tree node overflows.
//
// A split takes the members of an overflowing node, promotes two of them to
// pivots and partitions all members between the two pivots. Any promotion
// that returns two members of the input yields a correct tree; the choice
// only affects how well the resulting covering radii prune queries.
//
//	policy := split.Policy[string]{
//	    Promote:   split.MaxDistancePromotion[string](),
//	    Partition: split.BalancedPartition[string](),
//	}
package split
