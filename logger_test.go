package mtree_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/hupe1980/mtree"
	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := mtree.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})).WithTree("points")

	tree := newTree(t, 2, -1, mtree.WithLogger(logger))
	mustAdd(t, tree, point{1, 1}, point{2, 2}, point{3, 3})
	tree.Add(point{1, 1})
	tree.Remove(point{3, 3})
	for range tree.LimitQuery(point{0, 0}, 1) {
	}

	out := buf.String()
	assert.Contains(t, out, `"tree":"points"`)
	assert.Contains(t, out, `"msg":"add completed"`)
	assert.Contains(t, out, `"msg":"add skipped duplicate"`)
	assert.Contains(t, out, `"msg":"node split"`)
	assert.Contains(t, out, `"msg":"root split"`)
	assert.Contains(t, out, `"msg":"remove completed"`)
	assert.Contains(t, out, `"kind":"limit"`)
}

func TestNoopLogger(t *testing.T) {
	tree := newTree(t, 2, -1, mtree.WithLogger(nil))
	mustAdd(t, tree, point{1, 1}, point{2, 2}, point{3, 3})
	assert.False(t, mtree.NoopLogger().Enabled(t.Context(), slog.LevelError))
}
