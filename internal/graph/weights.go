package graph

import "github.com/matsen/citecore/internal/reference"

// MinWeight is the weight of a node without citations.
const MinWeight = 0.5

// NodeWeight returns max(MinWeight, number of citers) when attrs holds a
// citer list under key, and MinWeight otherwise.
func NodeWeight(attrs reference.Attributes, key string) float64 {
	v, ok := attrs.Get(key)
	if !ok || v.Kind() != reference.KindList {
		return MinWeight
	}
	return max(MinWeight, float64(len(v.Items())))
}

// Weights returns one weight per node, in node order.
func Weights(g *Graph) []float64 {
	weights := make([]float64, 0, g.NumNodes())
	for _, id := range g.order {
		weights = append(weights, NodeWeight(g.nodes[id].attrs, g.citedByKey))
	}
	return weights
}
