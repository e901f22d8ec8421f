package distance

import (
	"math"
	"math/bits"

	"github.com/viant/vec/search"
)

// Func is a metric over values of type T. It must return a non-negative,
// symmetric value that satisfies the triangle inequality.
type Func[T any] func(a, b T) float64

// Euclidean returns the L2 distance between two vectors of equal length.
func Euclidean(a, b []float64) float64 {
	mustSameLength(len(a), len(b))
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Manhattan returns the L1 distance between two vectors of equal length.
func Manhattan(a, b []float64) float64 {
	mustSameLength(len(a), len(b))
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

// Chebyshev returns the L∞ distance between two vectors of equal length.
func Chebyshev(a, b []float64) float64 {
	mustSameLength(len(a), len(b))
	var maxDiff float64
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff
}

// EuclideanFloat32 returns the L2 distance between two float32 vectors.
// Uses the unrolled kernels of github.com/viant/vec.
func EuclideanFloat32(a, b []float32) float64 {
	mustSameLength(len(a), len(b))
	return float64(search.Float32s(a).EuclideanDistance(b))
}

// CosineFloat32 returns 1 - cosine similarity of two float32 vectors.
//
// Cosine distance violates the triangle inequality, so an index built on it
// may miss results. Normalize vectors and use EuclideanFloat32 when exact
// answers are required.
func CosineFloat32(a, b []float32) float64 {
	mustSameLength(len(a), len(b))
	va := search.Float32s(a)
	vb := search.Float32s(b)
	ma, mb := va.Magnitude(), vb.Magnitude()
	if ma == 0 || mb == 0 {
		if ma == mb {
			return 0
		}
		return 1
	}
	d := float64(va.CosineDistance(b))
	if d < 0 {
		// rounding on near-identical vectors
		return 0
	}
	return d
}

// Levenshtein returns the edit distance between two strings, counted in runes.
func Levenshtein(a, b string) float64 {
	if a == b {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return float64(prev[len(rb)])
}

// Hamming returns the number of differing bits of two 64-bit fingerprints.
func Hamming(a, b uint64) float64 {
	return float64(bits.OnesCount64(a ^ b))
}

func mustSameLength(a, b int) {
	if a != b {
		panic(&DimensionMismatchError{Left: a, Right: b})
	}
}
