// Package testutil provides testing utilities for mtree.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random vectors and for computing exact
// reference answers by linear scan.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	vecs := rng.UniformVectors(1000, 8)   // uniform [0, 1)
//	grid := rng.GridVectors(1000, 2, 10)  // integer coordinates in [0, 10)
//
// # Exact Search (Ground Truth)
//
//	want := testutil.ExactLimit(objects, query, k, distance.Euclidean)
//	got := slices.Collect(tree.LimitQuery(query, k))
package testutil
