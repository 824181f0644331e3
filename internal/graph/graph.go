// Package graph holds the directed citation graph and the rules for building
// it from paper records.
package graph

import (
	"github.com/matsen/citecore/internal/edge"
	"github.com/matsen/citecore/internal/reference"
)

// Graph is a directed citation graph. An edge (u, v) means "u cites v".
// Nodes iterate in insertion order, edges have set semantics and
// self-loops are allowed.
type Graph struct {
	order      []string
	nodes      map[string]*node
	numEdges   int
	citedByKey string
}

type node struct {
	attrs  reference.Attributes
	out    []string
	in     []string
	outSet map[string]bool
}

// New creates an empty graph whose weights are read from the cited_by attribute.
func New() *Graph {
	return newWithKey(reference.CitedByField)
}

func newWithKey(citedByKey string) *Graph {
	return &Graph{
		nodes:      make(map[string]*node),
		citedByKey: citedByKey,
	}
}

// AddNode adds id, replacing the attributes of an existing node entirely.
// An existing node keeps its position and its edges.
func (g *Graph) AddNode(id string, attrs reference.Attributes) {
	if n, ok := g.nodes[id]; ok {
		n.attrs = attrs
		return
	}
	g.insert(id).attrs = attrs
}

// AddEdge adds the citation citer -> cited, creating bare endpoint nodes
// as needed. Adding an existing edge is a no-op.
func (g *Graph) AddEdge(citer, cited string) {
	u := g.ensure(citer)
	v := g.ensure(cited)
	if u.outSet[cited] {
		return
	}
	u.outSet[cited] = true
	u.out = append(u.out, cited)
	v.in = append(v.in, citer)
	g.numEdges++
}

func (g *Graph) ensure(id string) *node {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	return g.insert(id)
}

func (g *Graph) insert(id string) *node {
	n := &node{outSet: make(map[string]bool)}
	g.nodes[id] = n
	g.order = append(g.order, id)
	return n
}

// HasNode reports whether id is a node of g.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// HasEdge reports whether citer cites cited in g.
func (g *Graph) HasEdge(citer, cited string) bool {
	n, ok := g.nodes[citer]
	return ok && n.outSet[cited]
}

// Nodes returns the node ids in iteration order.
func (g *Graph) Nodes() []string {
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	return ids
}

// Attributes returns a copy of the attributes carried by id.
func (g *Graph) Attributes(id string) (reference.Attributes, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return reference.Attributes{}, false
	}
	return n.attrs.Clone(), true
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int { return len(g.order) }

// NumEdges returns the number of distinct edges.
func (g *Graph) NumEdges() int { return g.numEdges }

// IsEmpty reports whether g has no nodes.
func (g *Graph) IsEmpty() bool { return len(g.order) == 0 }

// Degree returns the in-degree plus the out-degree of id.
// A self-loop counts twice. Unknown ids have degree 0.
func (g *Graph) Degree(id string) int {
	n, ok := g.nodes[id]
	if !ok {
		return 0
	}
	return len(n.in) + len(n.out)
}

// Successors returns the papers cited by id, in insertion order.
func (g *Graph) Successors(id string) []string {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return append([]string(nil), n.out...)
}

// Predecessors returns the papers citing id, in insertion order.
func (g *Graph) Predecessors(id string) []string {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return append([]string(nil), n.in...)
}

// Edges returns every edge, grouped by citer in node order.
func (g *Graph) Edges() []edge.Edge {
	edges := make([]edge.Edge, 0, g.numEdges)
	for _, id := range g.order {
		for _, cited := range g.nodes[id].out {
			edges = append(edges, edge.New(id, cited))
		}
	}
	return edges
}

// CitedByKey returns the attribute name weights are computed from.
func (g *Graph) CitedByKey() string { return g.citedByKey }

// Subgraph returns a new graph induced by the nodes for which keep returns
// true. Node order, attributes and edge directions are preserved; g is not
// modified.
func (g *Graph) Subgraph(keep func(id string) bool) *Graph {
	sub := newWithKey(g.citedByKey)
	for _, id := range g.order {
		if keep(id) {
			sub.insert(id).attrs = g.nodes[id].attrs
		}
	}
	for _, id := range sub.order {
		for _, cited := range g.nodes[id].out {
			if sub.HasNode(cited) {
				sub.AddEdge(id, cited)
			}
		}
	}
	return sub
}

// Clone returns an independent copy of g.
func (g *Graph) Clone() *Graph {
	return g.Subgraph(func(string) bool { return true })
}
