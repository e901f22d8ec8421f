package scenario

import (
	"cmp"
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/hupe1980/mtree/distance"
)

// Point is an immutable integer coordinate vector. It is a string so that it
// is comparable and can key trees and caches directly.
type Point string

// NewPoint encodes coords as a Point.
func NewPoint(coords ...int64) Point {
	buf := make([]byte, 8*len(coords))
	for i, c := range coords {
		binary.BigEndian.PutUint64(buf[8*i:], uint64(c))
	}
	return Point(buf)
}

// Dim returns the number of coordinates.
func (p Point) Dim() int { return len(p) / 8 }

// At returns coordinate i.
func (p Point) At(i int) int64 {
	return int64(binary.BigEndian.Uint64([]byte(p[8*i : 8*i+8])))
}

// Coords decodes every coordinate.
func (p Point) Coords() []int64 {
	out := make([]int64, p.Dim())
	for i := range out {
		out[i] = p.At(i)
	}
	return out
}

func (p Point) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i := range p.Dim() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(p.At(i), 10))
	}
	b.WriteByte('}')
	return b.String()
}

// Compare orders points lexicographically by coordinate.
func Compare(a, b Point) int {
	for i := range min(a.Dim(), b.Dim()) {
		if c := cmp.Compare(a.At(i), b.At(i)); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.Dim(), b.Dim())
}

// Distance is the Euclidean metric over points of equal dimension. It panics
// with *distance.DimensionMismatchError otherwise.
func Distance(a, b Point) float64 {
	if a.Dim() != b.Dim() {
		panic(&distance.DimensionMismatchError{Left: a.Dim(), Right: b.Dim()})
	}
	var sum float64
	for i := range a.Dim() {
		d := float64(a.At(i) - b.At(i))
		sum += d * d
	}
	return math.Sqrt(sum)
}
