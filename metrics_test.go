package mtree_test

import (
	"slices"
	"testing"

	"github.com/hupe1980/mtree"
	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	metrics := &mtree.BasicMetricsCollector{}
	tree := newTree(t, 2, -1, mtree.WithMetricsCollector(metrics))

	mustAdd(t, tree, point{1, 1}, point{2, 2}, point{3, 3}, point{10, 10})
	tree.Add(point{2, 2})
	tree.Remove(point{2, 2})
	tree.Remove(point{7, 7})
	slices.Collect(tree.RangeQuery(point{0, 0}, 3))
	slices.Collect(tree.Nearest(point{0, 0}, 3, 1))

	stats := metrics.GetStats()
	assert.Equal(t, int64(4), stats.AddCount)
	assert.Equal(t, int64(1), stats.DuplicateCount)
	assert.Equal(t, int64(1), stats.RemoveCount)
	assert.Equal(t, int64(1), stats.AbsentCount)
	assert.Equal(t, int64(2), stats.QueryCount)
	assert.Equal(t, int64(2), stats.QueryResults)
	assert.Greater(t, stats.LeafSplits, int64(0))
	assert.Greater(t, stats.DistancesComputed, int64(0))
}

func TestNilMetricsCollector(t *testing.T) {
	tree := newTree(t, 2, -1, mtree.WithMetricsCollector(nil))
	mustAdd(t, tree, point{1, 1}, point{2, 2}, point{3, 3})
	assert.Equal(t, 3, tree.Len())
}
