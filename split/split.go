package split

import (
	"math/rand/v2"

	"github.com/hupe1980/mtree/distance"
)

// PromotionFunc selects two pivots from the members of an overflowing node.
// Both pivots must be members of objects.
type PromotionFunc[T any] func(objects []T, dist distance.Func[T]) (T, T)

// PartitionFunc assigns every member of objects to one of two pivots. The
// pivots seed their own sets; the sets are disjoint and their union is
// objects.
type PartitionFunc[T any] func(objects []T, p1, p2 T, dist distance.Func[T]) ([]T, []T)

// Policy pairs a promotion with a partition.
type Policy[T any] struct {
	Promote   PromotionFunc[T]
	Partition PartitionFunc[T]
}

// Default returns random promotion with balanced partition.
func Default[T any]() Policy[T] {
	return Policy[T]{
		Promote:   RandomPromotion[T](nil),
		Partition: BalancedPartition[T](),
	}
}

// WithDefaults fills a nil half of p with the default policy's.
func (p Policy[T]) WithDefaults() Policy[T] {
	if p.Promote == nil {
		p.Promote = RandomPromotion[T](nil)
	}
	if p.Partition == nil {
		p.Partition = BalancedPartition[T]()
	}
	return p
}

// Split runs the promotion and then the partition.
func (p Policy[T]) Split(objects []T, dist distance.Func[T]) (p1, p2 T, set1, set2 []T) {
	p1, p2 = p.Promote(objects, dist)
	set1, set2 = p.Partition(objects, p1, p2, dist)
	return p1, p2, set1, set2
}

// RandomPromotion picks two distinct members uniformly at random. A nil r
// uses the global source.
func RandomPromotion[T any](r *rand.Rand) PromotionFunc[T] {
	intN := rand.IntN
	if r != nil {
		intN = r.IntN
	}
	return func(objects []T, _ distance.Func[T]) (T, T) {
		if len(objects) < 2 {
			return objects[0], objects[0]
		}
		i := intN(len(objects))
		j := intN(len(objects) - 1)
		if j >= i {
			j++
		}
		return objects[i], objects[j]
	}
}

// MinMaxPromotion promotes the smallest and the largest member under cmp.
// It is deterministic, which makes tree shapes reproducible in tests.
func MinMaxPromotion[T any](cmp func(a, b T) int) PromotionFunc[T] {
	return func(objects []T, _ distance.Func[T]) (T, T) {
		lo, hi := 0, 0
		for i := 1; i < len(objects); i++ {
			if cmp(objects[i], objects[lo]) < 0 {
				lo = i
			}
			if cmp(objects[i], objects[hi]) > 0 {
				hi = i
			}
		}
		if lo == hi && len(objects) > 1 {
			// all members compare equal
			hi = (lo + 1) % len(objects)
		}
		return objects[lo], objects[hi]
	}
}

// MaxDistancePromotion promotes the pair of members farthest apart. It costs
// n(n-1)/2 distance computations per split.
func MaxDistancePromotion[T any]() PromotionFunc[T] {
	return func(objects []T, dist distance.Func[T]) (T, T) {
		if len(objects) < 2 {
			return objects[0], objects[0]
		}
		bi, bj, best := 0, 1, -1.0
		for i := 0; i < len(objects); i++ {
			for j := i + 1; j < len(objects); j++ {
				if d := dist(objects[i], objects[j]); d > best {
					bi, bj, best = i, j, d
				}
			}
		}
		return objects[bi], objects[bj]
	}
}

// HyperplanePartition assigns each member to its closer pivot, preferring
// the first pivot on ties.
func HyperplanePartition[T any]() PartitionFunc[T] {
	return func(objects []T, p1, p2 T, dist distance.Func[T]) ([]T, []T) {
		set1, set2, _, _ := hyperplane(objects, p1, p2, dist)
		return set1, set2
	}
}

// BalancedPartition starts from the hyperplane assignment and then moves the
// member of the larger set that lies farthest from its pivot to the smaller
// set, until the sizes differ by at most one. Pivots never move.
func BalancedPartition[T any]() PartitionFunc[T] {
	return func(objects []T, p1, p2 T, dist distance.Func[T]) ([]T, []T) {
		set1, set2, d1, d2 := hyperplane(objects, p1, p2, dist)
		for len(set1)-len(set2) > 1 {
			set1, d1, set2, d2 = moveFarthest(set1, d1, set2, d2, p2, dist)
		}
		for len(set2)-len(set1) > 1 {
			set2, d2, set1, d1 = moveFarthest(set2, d2, set1, d1, p1, dist)
		}
		return set1, set2
	}
}

// hyperplane returns both sets together with each member's distance to its
// own pivot. Index 0 of each set is the pivot.
func hyperplane[T any](objects []T, p1, p2 T, dist distance.Func[T]) (set1, set2 []T, d1, d2 []float64) {
	set1 = append(make([]T, 0, len(objects)), p1)
	set2 = append(make([]T, 0, len(objects)), p2)
	d1 = append(make([]float64, 0, len(objects)), 0)
	d2 = append(make([]float64, 0, len(objects)), 0)

	// Pivots are matched by position so that equal-valued members are still
	// counted exactly once.
	seeded1, seeded2 := false, false
	for _, o := range objects {
		if !seeded1 && equal(o, p1, dist) {
			seeded1 = true
			continue
		}
		if !seeded2 && equal(o, p2, dist) {
			seeded2 = true
			continue
		}
		a, b := dist(o, p1), dist(o, p2)
		if a <= b {
			set1 = append(set1, o)
			d1 = append(d1, a)
		} else {
			set2 = append(set2, o)
			d2 = append(d2, b)
		}
	}
	return set1, set2, d1, d2
}

// moveFarthest moves the non-pivot member of from with the largest distance
// to its pivot into to, recomputing its distance against toPivot.
func moveFarthest[T any](from []T, fromD []float64, to []T, toD []float64, toPivot T, dist distance.Func[T]) ([]T, []float64, []T, []float64) {
	far := 1
	for i := 2; i < len(from); i++ {
		if fromD[i] > fromD[far] {
			far = i
		}
	}
	o := from[far]
	last := len(from) - 1
	from[far], fromD[far] = from[last], fromD[last]
	from, fromD = from[:last], fromD[:last]
	return from, fromD, append(to, o), append(toD, dist(o, toPivot))
}

// equal reports whether a is the pivot b. Only distance zero is available
// for an unconstrained T; a metric maps exactly the identical objects to 0.
func equal[T any](a, b T, dist distance.Func[T]) bool {
	return dist(a, b) == 0
}
