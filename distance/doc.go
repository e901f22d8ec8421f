// Package distance provides metric functions and a memoizing wrapper for them.
//
// A metric must satisfy the metric axioms: non-negativity, symmetry, the
// triangle inequality and d(a, b) == 0 iff a == b. The tree relies on the
// triangle inequality for pruning, so a function that violates it yields
// incomplete query answers.
//
// # Supported Metrics
//
//   - Euclidean, Manhattan, Chebyshev: over []float64
//   - EuclideanFloat32: over []float32
//   - CosineFloat32: cosine distance over []float32 (not a true metric)
//   - Levenshtein: edit distance over strings
//   - Hamming: bit distance over uint64 fingerprints
//
// # Usage
//
//	var euclid distance.Func[[]float64] = distance.Euclidean
//
//	cache := distance.NewCache(func(a, b string) float64 {
//	    return distance.Levenshtein(a, b)
//	})
//	d := cache.Distance("kitten", "sitting") // 3, memoized for ("sitting", "kitten") too
package distance
