package mtree_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hupe1980/mtree"
	"github.com/hupe1980/mtree/scenario"
	"github.com/stretchr/testify/require"
)

// TestFixtures replays the recorded scenarios with the consistency checker
// run after every mutation.
func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("scenario", "testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		fx, err := scenario.Load(path)
		require.NoError(t, err)

		t.Run(fx.Name, func(t *testing.T) {
			opts := scenario.DefaultOptions()
			opts.AfterAction = func(_ int, tree *mtree.Tree[scenario.Point]) error {
				return tree.Check()
			}
			_, err := scenario.Replay(context.Background(), fx, opts)
			require.NoError(t, err)
		})
	}
}

func TestRemoveNonExisting(t *testing.T) {
	opts := scenario.DefaultOptions()
	tree, err := mtree.New(scenario.Distance, opts.Policy, mtree.WithNodeCapacity(opts.MaxCapacity, opts.MinCapacity))
	require.NoError(t, err)

	absent := scenario.NewPoint(99, 77)
	require.False(t, tree.Remove(absent))
	for _, c := range [][2]int64{{4, 44}, {95, 43}, {76, 21}, {64, 53}, {47, 3}, {26, 11}} {
		require.True(t, tree.Add(scenario.NewPoint(c[0], c[1])))
		require.NoError(t, tree.Check())
		require.False(t, tree.Remove(absent))
		require.NoError(t, tree.Check())
	}
}
