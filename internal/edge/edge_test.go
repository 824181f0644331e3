package edge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdge_IsSelfLoop(t *testing.T) {
	assert.True(t, New("a", "a").IsSelfLoop())
	assert.False(t, New("a", "b").IsSelfLoop())
}

func TestDetectDangling(t *testing.T) {
	known := map[string]bool{"Smith2024": true, "Jones2023": true}

	tests := []struct {
		name         string
		edges        []Edge
		wantDangling []DanglingInfo
		wantKnown    []Edge
	}{
		{
			name:  "all citers known",
			edges: []Edge{New("Smith2024", "Jones2023")},
			wantKnown: []Edge{
				New("Smith2024", "Jones2023"),
			},
		},
		{
			name:  "citer outside collection",
			edges: []Edge{New("Outside2020", "Jones2023")},
			wantDangling: []DanglingInfo{
				{SourceID: "Outside2020", TargetID: "Jones2023"},
			},
		},
		{
			name: "mixed",
			edges: []Edge{
				New("Smith2024", "Jones2023"),
				New("Outside2020", "Smith2024"),
			},
			wantDangling: []DanglingInfo{{SourceID: "Outside2020", TargetID: "Smith2024"}},
			wantKnown:    []Edge{New("Smith2024", "Jones2023")},
		},
		{
			name: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dangling, valid := DetectDangling(tt.edges, known)
			assert.Equal(t, tt.wantDangling, dangling)
			assert.Equal(t, tt.wantKnown, valid)
		})
	}
}

func TestFindDuplicateEdges(t *testing.T) {
	edges := []Edge{
		New("a", "b"),
		New("a", "b"),
		New("b", "a"),
		New("c", "b"),
		New("c", "b"),
		New("c", "b"),
	}

	got := FindDuplicateEdges(edges)
	assert.Equal(t, map[Edge]int{New("a", "b"): 2, New("c", "b"): 3}, got)
}
