package viz

import (
	"math"

	"github.com/matsen/citecore/internal/graph"
	"github.com/matsen/citecore/internal/reference"
)

// Node diameters in pixels. A node of weight graph.MinWeight is drawn at
// MinNodeSize; the area grows linearly with the weight.
const (
	MinNodeSize = 12.0
	MaxNodeSize = 90.0
)

// TitleField is the attribute shown as a node's tooltip title when present.
const TitleField = "title"

// FromGraph converts g into visualization data. Nodes keep the graph's
// order and are sized by graph.Weights. labels maps node ids to display
// names; ids without a label are shown as is.
func FromGraph(g *graph.Graph, labels map[string]string) *GraphData {
	ids := g.Nodes()
	weights := graph.Weights(g)

	data := &GraphData{
		Nodes: make([]Node, 0, len(ids)),
		Edges: make([]Edge, 0, g.NumEdges()),
	}

	for i, id := range ids {
		label := labels[id]
		if label == "" {
			label = id
		}
		n := Node{
			ID:     id,
			Label:  label,
			Size:   nodeSize(weights[i]),
			Weight: weights[i],
			Degree: g.Degree(id),
		}
		if attrs, ok := g.Attributes(id); ok {
			if v, ok := attrs.Get(TitleField); ok && v.Kind() == reference.KindString {
				n.Title = v.Str()
			}
		}
		data.Nodes = append(data.Nodes, n)
	}

	for _, e := range g.Edges() {
		data.Edges = append(data.Edges, Edge{Source: e.SourceID, Target: e.TargetID})
	}

	return data
}

func nodeSize(weight float64) float64 {
	size := MinNodeSize * math.Sqrt(weight/graph.MinWeight)
	return math.Min(size, MaxNodeSize)
}
