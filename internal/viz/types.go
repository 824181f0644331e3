// Package viz renders citation graphs as interactive HTML pages.
package viz

// GraphData contains all data needed to render the visualization.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node represents a paper in the graph.
type Node struct {
	ID string `json:"id"`

	// Display
	Label string  `json:"label"`
	Size  float64 `json:"size"` // Diameter in pixels

	// Tooltip fields
	Title  string  `json:"title,omitempty"`
	Weight float64 `json:"weight"`
	Degree int     `json:"degree"`
}

// Edge is a citation from Source to Target.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}
