package testutil

import (
	"cmp"
	"math/rand"
	"slices"
	"sync"
)

// Match is a reference answer: an object and its distance to the query.
type Match[T any] struct {
	Object   T
	Distance float64
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Shuffle pseudo-randomizes the order of elements, see rand.Shuffle.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(n, swap)
}

// UniformVectors generates random vectors with values in range [0, 1).
// Uses a single backing array for efficiency.
func (r *RNG) UniformVectors(num int, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	vectors := make([][]float64, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.Float64()
		}
		vectors[i] = vec
	}

	return vectors
}

// UniformVectors32 is UniformVectors for float32 kernels.
func (r *RNG) UniformVectors32(num int, dimensions int) [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float32, num*dimensions)
	vectors := make([][]float32, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.rand.Float32()
		}
		vectors[i] = vec
	}

	return vectors
}

// GridVectors generates vectors with integer coordinates in [0, side).
// Small grids produce many equal distances, which exercises tie handling.
func (r *RNG) GridVectors(num, dimensions, side int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dimensions)
	vectors := make([][]float64, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = float64(r.rand.Intn(side))
		}
		vectors[i] = vec
	}

	return vectors
}

// ClusteredVectors generates vectors scattered around random centroids in
// [0, 1)^dim with uniform noise of the given spread.
func (r *RNG) ClusteredVectors(num, dim, clusters int, spread float64) [][]float64 {
	centroids := r.UniformVectors(clusters, dim)

	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	vectors := make([][]float64, num)

	for i := range num {
		centroid := centroids[i%clusters]
		vec := data[i*dim : (i+1)*dim]
		for j := range dim {
			vec[j] = centroid[j] + (r.rand.Float64()*2-1)*spread
		}
		vectors[i] = vec
	}

	return vectors
}

// Words generates random lowercase strings with lengths in [minLen, maxLen].
func (r *RNG) Words(num, minLen, maxLen int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	words := make([]string, num)
	buf := make([]byte, maxLen)
	for i := range num {
		n := minLen + r.rand.Intn(maxLen-minLen+1)
		for j := range n {
			buf[j] = byte('a' + r.rand.Intn(26))
		}
		words[i] = string(buf[:n])
	}
	return words
}

// ExactRange returns every object within radius of q by linear scan, sorted
// by distance. Ties keep the order of objects, so passing objects in
// insertion order reproduces the tree's tie policy.
func ExactRange[T any](objects []T, q T, radius float64, dist func(a, b T) float64) []Match[T] {
	var out []Match[T]
	for _, o := range objects {
		if d := dist(o, q); d <= radius {
			out = append(out, Match[T]{Object: o, Distance: d})
		}
	}
	slices.SortStableFunc(out, func(a, b Match[T]) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return out
}

// ExactLimit returns the k objects closest to q by linear scan, with the
// same ordering as ExactRange.
func ExactLimit[T any](objects []T, q T, k int, dist func(a, b T) float64) []Match[T] {
	if k <= 0 {
		return nil
	}
	out := make([]Match[T], len(objects))
	for i, o := range objects {
		out[i] = Match[T]{Object: o, Distance: dist(o, q)}
	}
	slices.SortStableFunc(out, func(a, b Match[T]) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return out[:min(k, len(out))]
}

// ExactNearest combines ExactRange and ExactLimit.
func ExactNearest[T any](objects []T, q T, radius float64, k int, dist func(a, b T) float64) []Match[T] {
	if k <= 0 {
		return nil
	}
	out := ExactRange(objects, q, radius, dist)
	return out[:min(k, len(out))]
}
