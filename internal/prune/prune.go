// Package prune reduces a citation graph to its densely connected core.
//
// Every operation returns a new graph and leaves its input untouched.
// Degrees are taken on the directed graph (in + out); connectivity ignores
// edge direction.
package prune

import (
	"cmp"
	"slices"

	"github.com/matsen/citecore/internal/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// FixpointThreshold is the degree at or below which Fixpoint removes nodes.
const FixpointThreshold = 1

// LowDegree returns g without every node whose degree in g is at most threshold.
func LowDegree(g *graph.Graph, threshold int) *graph.Graph {
	return g.Subgraph(func(id string) bool {
		return g.Degree(id) > threshold
	})
}

// Isolates returns g without its degree-zero nodes.
func Isolates(g *graph.Graph) *graph.Graph {
	return g.Subgraph(func(id string) bool {
		return g.Degree(id) > 0
	})
}

// Components returns the weakly connected components of g. Components are
// ordered by their earliest node and list their nodes in graph order.
func Components(g *graph.Graph) [][]string {
	ids := g.Nodes()
	index := make(map[string]int64, len(ids))
	u := simple.NewUndirectedGraph()
	for i, id := range ids {
		index[id] = int64(i)
		u.AddNode(simple.Node(i))
	}
	for _, e := range g.Edges() {
		if e.IsSelfLoop() {
			continue // no effect on connectivity
		}
		from, to := simple.Node(index[e.SourceID]), simple.Node(index[e.TargetID])
		u.SetEdge(u.NewEdge(from, to))
	}

	var positions [][]int64
	for _, cc := range topo.ConnectedComponents(u) {
		pos := make([]int64, len(cc))
		for i, n := range cc {
			pos[i] = n.ID()
		}
		slices.Sort(pos)
		positions = append(positions, pos)
	}
	slices.SortFunc(positions, func(a, b []int64) int {
		return cmp.Compare(a[0], b[0])
	})

	components := make([][]string, len(positions))
	for i, pos := range positions {
		members := make([]string, len(pos))
		for j, p := range pos {
			members[j] = ids[p]
		}
		components[i] = members
	}
	return components
}

// ComponentSizes returns the size of each component of components.
func ComponentSizes(components [][]string) []int {
	sizes := make([]int, len(components))
	for i, c := range components {
		sizes[i] = len(c)
	}
	return sizes
}

// LargestComponent returns the subgraph induced by the largest weakly
// connected component of g. Ties go to the component holding the earliest
// node. An empty graph yields an empty graph.
func LargestComponent(g *graph.Graph) *graph.Graph {
	return largestOf(g, Components(g))
}

func largestOf(g *graph.Graph, components [][]string) *graph.Graph {
	var best []string
	for _, c := range components {
		if len(c) > len(best) {
			best = c
		}
	}

	keep := make(map[string]bool, len(best))
	for _, id := range best {
		keep[id] = true
	}
	return g.Subgraph(func(id string) bool { return keep[id] })
}

// Fixpoint repeats LowDegree(g, FixpointThreshold) until a pass leaves the
// node count unchanged, and returns that pass's graph. It terminates within
// NumNodes()+1 passes.
func Fixpoint(g *graph.Graph) *graph.Graph {
	out, _ := fixpoint(g, nil)
	return out
}
