// Package edge defines the directed citation edge between two papers.
package edge

// Edge is a citation: SourceID cites TargetID.
type Edge struct {
	SourceID string `json:"source_id"` // Citing paper
	TargetID string `json:"target_id"` // Cited paper
}

// New returns the edge for "citer cites cited".
func New(citer, cited string) Edge {
	return Edge{SourceID: citer, TargetID: cited}
}

// IsSelfLoop reports whether the paper cites itself.
func (e Edge) IsSelfLoop() bool {
	return e.SourceID == e.TargetID
}

// DanglingInfo describes a citation whose citer is not a paper of the collection.
type DanglingInfo struct {
	SourceID string `json:"source_id"`
	TargetID string `json:"target_id"`
}

// DetectDangling finds edges whose source is not in the known ID set.
// Returns the dangling edges and the edges whose source is known.
func DetectDangling(edges []Edge, knownIDs map[string]bool) (dangling []DanglingInfo, known []Edge) {
	for _, e := range edges {
		if knownIDs[e.SourceID] {
			known = append(known, e)
			continue
		}
		dangling = append(dangling, DanglingInfo{SourceID: e.SourceID, TargetID: e.TargetID})
	}
	return dangling, known
}

// FindDuplicateEdges finds edges that appear more than once in the list.
// Returns a map of edge to count for edges that appear more than once.
func FindDuplicateEdges(edges []Edge) map[Edge]int {
	counts := make(map[Edge]int)
	for _, e := range edges {
		counts[e]++
	}

	duplicates := make(map[Edge]int)
	for e, count := range counts {
		if count > 1 {
			duplicates[e] = count
		}
	}
	return duplicates
}
