package mtree_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/mtree"
	"github.com/hupe1980/mtree/distance"
	"github.com/hupe1980/mtree/split"
)

// Example demonstrates indexing words under edit distance.
func Example() {
	tree, err := mtree.New(distance.Levenshtein, split.Policy[string]{})
	if err != nil {
		log.Fatal(err)
	}

	for _, w := range []string{"kitten", "sitting", "mitten", "knitting", "bitter"} {
		tree.Add(w)
	}

	for r := range tree.RangeQuery("bitten", 1) {
		fmt.Println(r.Object, r.Distance)
	}
	// Output:
	// kitten 1
	// mitten 1
	// bitter 1
}

// Example_limitQuery demonstrates k-nearest-neighbor search over points.
func Example_limitQuery() {
	euclidean := func(a, b [2]float64) float64 { return distance.Euclidean(a[:], b[:]) }

	tree, err := mtree.New(euclidean, split.Policy[[2]float64]{}, mtree.WithNodeCapacity(4, -1))
	if err != nil {
		log.Fatal(err)
	}

	for _, p := range [][2]float64{{1, 1}, {2, 2}, {3, 3}, {10, 10}} {
		tree.Add(p)
	}
	tree.Remove([2]float64{2, 2})

	for r := range tree.LimitQuery([2]float64{0, 0}, 2) {
		fmt.Printf("%v %.3f\n", r.Object, r.Distance)
	}
	// Output:
	// [1 1] 1.414
	// [3 3] 4.243
}

// Example_nearest demonstrates the combined radius and count bound.
func Example_nearest() {
	tree, err := mtree.New(distance.Hamming, split.Policy[uint64]{})
	if err != nil {
		log.Fatal(err)
	}

	for _, fp := range []uint64{0b0000, 0b0001, 0b0011, 0b0111, 0b1111} {
		tree.Add(fp)
	}

	for r := range tree.Nearest(0b0000, 2, 10) {
		fmt.Printf("%04b %v\n", r.Object, r.Distance)
	}
	// Output:
	// 0000 0
	// 0001 1
	// 0011 2
}

// Example_stats demonstrates inspecting the tree shape.
func Example_stats() {
	tree, err := mtree.New(distance.Hamming, split.Policy[uint64]{}, mtree.WithNodeCapacity(4, 2))
	if err != nil {
		log.Fatal(err)
	}
	for i := range uint64(10) {
		tree.Add(i)
	}

	s := tree.Stats()
	fmt.Println(s.Size, s.Levels[len(s.Levels)-1].Entries)
	// Output: 10 10
}
