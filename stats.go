package mtree

import (
	"fmt"
	"strings"
)

// LevelStats describes one level of the tree, 0 being the root.
type LevelStats struct {
	Nodes      int
	Entries    int
	AvgFill    float64
	MaxRadius  float64
	MeanRadius float64
}

// Stats is a structural snapshot of a Tree.
type Stats struct {
	Size            int
	Height          int
	MinNodeCapacity int
	MaxNodeCapacity int
	Nodes           int
	LeafNodes       int
	Levels          []LevelStats
}

// Stats walks the tree and summarizes its shape. It computes no distances.
func (t *Tree[T]) Stats() Stats {
	s := Stats{
		Size:            t.size,
		Height:          t.height,
		MinNodeCapacity: t.minCap,
		MaxNodeCapacity: t.maxCap,
		Levels:          make([]LevelStats, t.height),
	}
	if t.root == nil {
		return s
	}

	level := []*node[T]{t.root}
	for depth := 0; len(level) > 0 && depth < len(s.Levels); depth++ {
		ls := &s.Levels[depth]
		var next []*node[T]
		var radiusSum float64
		for _, n := range level {
			ls.Nodes++
			ls.Entries += len(n.entries)
			for _, e := range n.entries {
				if e.isLeaf() {
					continue
				}
				radiusSum += e.radius
				ls.MaxRadius = max(ls.MaxRadius, e.radius)
				next = append(next, e.subtree)
			}
		}
		ls.AvgFill = float64(ls.Entries) / float64(ls.Nodes*t.maxCap)
		if len(next) > 0 {
			ls.MeanRadius = radiusSum / float64(len(next))
		}
		s.Nodes += ls.Nodes
		level = next
	}
	if len(s.Levels) > 0 {
		s.LeafNodes = s.Levels[len(s.Levels)-1].Nodes
	}
	return s
}

// String renders the snapshot as a small report.
func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Objects = %d\n", s.Size)
	fmt.Fprintf(&b, "Height = %d\n", s.Height)
	fmt.Fprintf(&b, "Node capacity = [%d, %d]\n", s.MinNodeCapacity, s.MaxNodeCapacity)
	fmt.Fprintf(&b, "Nodes = %d (%d leaves)\n", s.Nodes, s.LeafNodes)
	for depth, ls := range s.Levels {
		fmt.Fprintf(&b, "Level %d:\n", depth)
		fmt.Fprintf(&b, "\tNodes: %d\n", ls.Nodes)
		fmt.Fprintf(&b, "\tEntries: %d\n", ls.Entries)
		fmt.Fprintf(&b, "\tAverage fill: %.2f\n", ls.AvgFill)
		if depth < len(s.Levels)-1 {
			fmt.Fprintf(&b, "\tMean radius: %g\n", ls.MeanRadius)
			fmt.Fprintf(&b, "\tMax radius: %g\n", ls.MaxRadius)
		}
	}
	return b.String()
}
