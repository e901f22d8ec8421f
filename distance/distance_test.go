package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{0, 0}, []float64{3, 4}, 5},
		{"Identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"Mixed", []float64{1, -1}, []float64{-1, 1}, math.Sqrt(8)},
		{"Empty", []float64{}, []float64{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Euclidean(tt.a, tt.b), 1e-12)
			assert.Equal(t, Euclidean(tt.a, tt.b), Euclidean(tt.b, tt.a))
		})
	}
}

func TestManhattanAndChebyshev(t *testing.T) {
	a := []float64{1, 5, -2}
	b := []float64{4, 1, -2}

	assert.Equal(t, 7.0, Manhattan(a, b))
	assert.Equal(t, 4.0, Chebyshev(a, b))
	assert.Equal(t, 0.0, Manhattan(a, a))
	assert.Equal(t, 0.0, Chebyshev(b, b))
}

func TestEuclideanFloat32(t *testing.T) {
	a := []float32{0, 0, 0, 0, 0}
	b := []float32{3, 4, 0, 0, 0}

	assert.InDelta(t, 5.0, EuclideanFloat32(a, b), 1e-5)
	assert.InDelta(t, 0.0, EuclideanFloat32(b, b), 1e-6)
}

func TestCosineFloat32(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float64
	}{
		{"Orthogonal", []float32{1, 0}, []float32{0, 1}, 1},
		{"Same", []float32{1, 2}, []float32{2, 4}, 0},
		{"Opposite", []float32{1, 0}, []float32{-1, 0}, 2},
		{"BothZero", []float32{0, 0}, []float32{0, 0}, 0},
		{"OneZero", []float32{0, 0}, []float32{1, 0}, 1},
		{"Unnormalized", []float32{3, 4}, []float32{4, 3}, 0.04},
		{"ThreeDimensions", []float32{1, 2, 3}, []float32{4, 5, 6}, 0.025368},
		{"Unrolled", []float32{1, 0, 0, 0, 0, 0, 0, 0, 1}, []float32{0, 0, 0, 0, 0, 0, 0, 0, 1}, 1 - 1/math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CosineFloat32(tt.a, tt.b), 1e-5)
			assert.InDelta(t, CosineFloat32(tt.a, tt.b), CosineFloat32(tt.b, tt.a), 1e-6)
		})
	}

	assert.Panics(t, func() { CosineFloat32([]float32{1, 2}, []float32{1, 2, 3}) })
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
	}{
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"abc", "", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
		{"héllo", "hello", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestHamming(t *testing.T) {
	assert.Equal(t, 0.0, Hamming(0xFF, 0xFF))
	assert.Equal(t, 8.0, Hamming(0xFF, 0x00))
	assert.Equal(t, 64.0, Hamming(0, math.MaxUint64))
}

func TestDimensionMismatch(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(*DimensionMismatchError)
		require.True(t, ok)
		assert.Equal(t, 2, err.Left)
		assert.Equal(t, 3, err.Right)
		assert.Contains(t, err.Error(), "dimension mismatch")
	}()
	Euclidean([]float64{1, 2}, []float64{1, 2, 3})
}
