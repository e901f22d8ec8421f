package scenario

import (
	"testing"

	"github.com/hupe1980/mtree/distance"
	"github.com/stretchr/testify/assert"
)

func TestPoint(t *testing.T) {
	p := NewPoint(3, -4, 1<<40)

	assert.Equal(t, 3, p.Dim())
	assert.Equal(t, int64(-4), p.At(1))
	assert.Equal(t, []int64{3, -4, 1 << 40}, p.Coords())
	assert.Equal(t, "{3,-4,1099511627776}", p.String())
	assert.Equal(t, NewPoint(3, -4, 1<<40), p)
	assert.Equal(t, "{}", NewPoint().String())
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b Point
		want int
	}{
		{NewPoint(1, 2), NewPoint(1, 2), 0},
		{NewPoint(-1, 9), NewPoint(0, 0), -1},
		{NewPoint(2, 0), NewPoint(1, 100), 1},
		{NewPoint(1, -5), NewPoint(1, -4), -1},
		{NewPoint(1), NewPoint(1, 0), -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Compare(tt.a, tt.b), "%v vs %v", tt.a, tt.b)
	}
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 5.0, Distance(NewPoint(0, 0), NewPoint(3, 4)))
	assert.Equal(t, 5.0, Distance(NewPoint(-3, 0), NewPoint(0, -4)))
	assert.Equal(t, 0.0, Distance(NewPoint(7, 7, 7), NewPoint(7, 7, 7)))

	assert.PanicsWithError(t, (&distance.DimensionMismatchError{Left: 1, Right: 2}).Error(), func() {
		Distance(NewPoint(1), NewPoint(1, 2))
	})
}
