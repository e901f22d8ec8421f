package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/mtree/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtureGlob = filepath.Join("..", "..", "scenario", "testdata", "*.yaml")

func TestRun(t *testing.T) {
	metricsFile := filepath.Join(t.TempDir(), "mtree.prom")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-env-file", "",
		"-parallelism", "2",
		"-generate", "2",
		"-generate-actions", "50",
		"-metrics-file", metricsFile,
		"-log-format", "json",
		fixtureGlob,
	}, &stdout, &stderr)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "f01")
	assert.Contains(t, out, "generated-000")
	assert.Contains(t, out, "generated-001")
	assert.Contains(t, stderr.String(), `"msg":"all fixtures passed"`)

	metrics, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "mtree_queries_total")
	assert.Contains(t, string(metrics), "mtree_adds_total")
}

func TestRunPolicies(t *testing.T) {
	for _, args := range [][]string{
		{"-promotion", scenario.PromotionRandom, "-partition", scenario.PartitionHyperplane, "-max-capacity", "5"},
		{"-promotion", scenario.PromotionMaxDistance, "-max-capacity", "4", "-min-capacity", "2"},
	} {
		var stdout, stderr bytes.Buffer
		args = append([]string{"-env-file", "", "-log-level", "error"}, args...)
		require.NoError(t, run(context.Background(), append(args, fixtureGlob), &stdout, &stderr), "%v", args)
	}
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"-env-file", ""}, &stdout, &stderr)
	assert.ErrorIs(t, err, ErrNoFixtures)

	err = run(context.Background(), []string{"-env-file", "", "-max-capacity", "1", fixtureGlob}, &stdout, &stderr)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	err = run(context.Background(), []string{"-env-file", "", "nothing-*.yaml"}, &stdout, &stderr)
	assert.ErrorContains(t, err, "matches no files")

	err = run(context.Background(), []string{"-no-such-flag"}, &stdout, &stderr)
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("dimensions: 1\nactions:\n  - {cmd: R, data: [1], query: [0]}\n"), 0o600))
	err = run(context.Background(), []string{"-env-file", "", bad}, &stdout, &stderr)
	assert.ErrorIs(t, err, scenario.ErrRemoveFailed)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	err := run(ctx, []string{"-env-file", "", fixtureGlob}, &stdout, &stderr)
	assert.ErrorIs(t, err, context.Canceled)
}
