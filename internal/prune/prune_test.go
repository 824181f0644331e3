package prune

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/matsen/citecore/internal/graph"
	"github.com/matsen/citecore/internal/reference"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fromEdges builds a graph from (citer, cited) pairs after adding isolated nodes.
func fromEdges(isolated []string, pairs ...[2]string) *graph.Graph {
	g := graph.New()
	for _, id := range isolated {
		g.AddNode(id, reference.Attributes{})
	}
	for _, p := range pairs {
		g.AddEdge(p[0], p[1])
	}
	return g
}

// chain is the A <- B <- C plus isolated D scenario.
func chain() *graph.Graph {
	records := []reference.Record{
		reference.NewRecord("A", "B"),
		reference.NewRecord("B", "C"),
		reference.NewRecord("C"),
		reference.NewRecord("D"),
	}
	g, _ := graph.Build(records, graph.Options{})
	return g
}

// randomGraph returns a reproducible sparse graph.
func randomGraph(seed int64, n, m int) *graph.Graph {
	r := rand.New(rand.NewSource(seed))
	g := graph.New()
	for i := 0; i < n; i++ {
		g.AddNode(fmt.Sprintf("p%d", i), reference.Attributes{})
	}
	for i := 0; i < m; i++ {
		g.AddEdge(fmt.Sprintf("p%d", r.Intn(n)), fmt.Sprintf("p%d", r.Intn(n)))
	}
	return g
}

func TestChainScenario(t *testing.T) {
	g := chain()
	require.Equal(t, 4, g.NumNodes())
	require.Equal(t, 2, g.NumEdges())

	noIsolates := Isolates(g)
	assert.Equal(t, []string{"A", "B", "C"}, noIsolates.Nodes())

	core := LargestComponent(noIsolates)
	assert.Equal(t, []string{"A", "B", "C"}, core.Nodes())

	firstPass := LowDegree(core, 1)
	assert.Equal(t, []string{"B"}, firstPass.Nodes())
	assert.Equal(t, 0, firstPass.Degree("B"))

	final := Fixpoint(core)
	assert.True(t, final.IsEmpty())
	assert.True(t, Fixpoint(final).IsEmpty())
}

func TestLowDegree(t *testing.T) {
	// Triangle A-B-C with a pendant D hanging off A.
	g := fromEdges(nil,
		[2]string{"B", "A"}, [2]string{"C", "B"}, [2]string{"A", "C"}, [2]string{"D", "A"})

	tests := []struct {
		threshold int
		want      []string
	}{
		{threshold: -1, want: []string{"B", "A", "C", "D"}},
		{threshold: 0, want: []string{"B", "A", "C", "D"}},
		{threshold: 1, want: []string{"B", "A", "C"}},
		{threshold: 2, want: []string{"A"}},
		{threshold: 3, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("threshold %d", tt.threshold), func(t *testing.T) {
			got := LowDegree(g, tt.threshold)
			assert.Equal(t, tt.want, got.Nodes())
		})
	}
}

func TestLowDegree_UsesDegreeInInput(t *testing.T) {
	// B loses its neighbour A but is judged on its degree in the input.
	g := fromEdges(nil, [2]string{"A", "B"}, [2]string{"C", "B"}, [2]string{"C", "D"}, [2]string{"D", "C"})
	got := LowDegree(g, 1)
	assert.Equal(t, []string{"B", "C", "D"}, got.Nodes())
}

func TestLowDegree_Properties(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		g := randomGraph(seed, 40, 50)
		for threshold := 0; threshold <= 3; threshold++ {
			out := LowDegree(g, threshold)
			assert.LessOrEqual(t, out.NumNodes(), g.NumNodes())
			for _, id := range out.Nodes() {
				assert.Greater(t, g.Degree(id), threshold, "seed %d node %s", seed, id)
			}
		}
	}
}

func TestLowDegree_DoesNotMutateInput(t *testing.T) {
	g := chain()
	_ = LowDegree(g, 1)
	assert.Equal(t, 4, g.NumNodes())
	assert.Equal(t, 2, g.NumEdges())
}

func TestIsolates(t *testing.T) {
	g := fromEdges([]string{"X", "Y"}, [2]string{"A", "A"}, [2]string{"B", "C"})
	got := Isolates(g)
	assert.Equal(t, []string{"A", "B", "C"}, got.Nodes())
	assert.True(t, got.HasEdge("A", "A"))
}

func TestComponents(t *testing.T) {
	g := fromEdges([]string{"Z"},
		[2]string{"B", "A"}, [2]string{"C", "D"}, [2]string{"E", "C"}, [2]string{"A", "F"})

	got := Components(g)
	assert.Equal(t, [][]string{
		{"Z"},
		{"B", "A", "F"},
		{"C", "D", "E"},
	}, got)
	assert.Equal(t, []int{1, 3, 3}, ComponentSizes(got))
}

func TestLargestComponent(t *testing.T) {
	g := fromEdges(nil,
		[2]string{"A", "B"},
		[2]string{"C", "D"}, [2]string{"E", "D"}, [2]string{"D", "F"})

	got := LargestComponent(g)
	assert.Equal(t, []string{"C", "D", "E", "F"}, got.Nodes())
	assert.True(t, got.HasEdge("C", "D"))
	assert.False(t, got.HasEdge("D", "C"))
}

func TestLargestComponent_TieGoesToEarliestNode(t *testing.T) {
	g := fromEdges([]string{"Q"}, [2]string{"X", "Y"}, [2]string{"A", "B"})
	got := LargestComponent(g)
	assert.Equal(t, []string{"X", "Y"}, got.Nodes())
}

func TestLargestComponent_Properties(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		g := randomGraph(seed, 30, 20)
		out := LargestComponent(g)

		comps := Components(out)
		if out.IsEmpty() {
			assert.Empty(t, comps)
			continue
		}
		require.Len(t, comps, 1, "seed %d", seed)
		for _, c := range Components(g) {
			assert.GreaterOrEqual(t, out.NumNodes(), len(c))
		}
	}
}

func TestFixpoint_Idempotent(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		g := randomGraph(seed, 50, 90)
		once := Fixpoint(g)
		twice := Fixpoint(once)
		assert.Equal(t, once.Nodes(), twice.Nodes(), "seed %d", seed)
		for _, id := range once.Nodes() {
			assert.Greater(t, once.Degree(id), FixpointThreshold)
		}
	}
}

func TestFixpoint_KeepsCycle(t *testing.T) {
	// A 3-cycle survives; the tail D -> E -> A is peeled off pass by pass.
	g := fromEdges(nil,
		[2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"C", "A"},
		[2]string{"D", "E"}, [2]string{"E", "A"})

	got, trace := FixpointLogged(g, nil)
	assert.Equal(t, []string{"A", "B", "C"}, got.Nodes())
	assert.Len(t, trace, 3)
	assert.Equal(t, []int{4, 3, 3}, nodeCounts(trace))
}

func TestEmptyGraph(t *testing.T) {
	g := graph.New()

	assert.True(t, LowDegree(g, 1).IsEmpty())
	assert.True(t, Isolates(g).IsEmpty())
	assert.True(t, LargestComponent(g).IsEmpty())
	assert.Empty(t, Components(g))
	assert.True(t, Fixpoint(g).IsEmpty())

	step := Step(g, 1, nil)
	assert.True(t, step.Graph.IsEmpty())
	assert.Len(t, step.Trace, 4)
	assert.Empty(t, step.ComponentSizes)

	res := Pipeline(g, nil)
	assert.True(t, res.Graph.IsEmpty())
	assert.Equal(t, 1, res.FixpointPasses)
}

func TestStep(t *testing.T) {
	// Two components: a 4-cycle with a pendant, and a lone edge.
	g := fromEdges([]string{"Z"},
		[2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"C", "D"}, [2]string{"D", "A"},
		[2]string{"P", "A"},
		[2]string{"X", "Y"})

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	res := Step(g, 1, logger)

	assert.Equal(t, []string{"A", "B", "C", "D"}, res.Graph.Nodes())
	assert.Equal(t, []string{StageInput, StageLowDegree, StageIsolates, StageLargestComponent}, stageNames(res.Trace))
	assert.Equal(t, []int{8, 4, 4, 4}, nodeCounts(res.Trace))
	assert.Equal(t, 4, res.Trace.Final().Edges)
	assert.Equal(t, []int{4}, res.ComponentSizes)
	assert.Zero(t, res.FixpointPasses)
	assert.Contains(t, buf.String(), "stage=low-degree")
	assert.Contains(t, buf.String(), "threshold=1")
}

func TestPipeline(t *testing.T) {
	// Main component: square A-B-C-D with tail E -> A; side component X -> Y;
	// isolate Z.
	g := fromEdges([]string{"Z"},
		[2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"C", "D"}, [2]string{"D", "A"},
		[2]string{"E", "A"},
		[2]string{"X", "Y"})

	var buf bytes.Buffer
	res := Pipeline(g, slog.New(slog.NewJSONHandler(&buf, nil)))

	assert.Equal(t, []string{"A", "B", "C", "D"}, res.Graph.Nodes())
	assert.Equal(t, []int{5, 2}, res.ComponentSizes)
	assert.Equal(t, 2, res.FixpointPasses)
	assert.Equal(t, []string{
		StageInput, StageIsolates, StageLargestComponent,
		StageFixpointPass, StageFixpointPass, StageFixpoint,
	}, stageNames(res.Trace))
	assert.Equal(t, []int{8, 7, 5, 4, 4, 4}, nodeCounts(res.Trace))
	assert.Contains(t, buf.String(), `"component_sizes":[5,2]`)

	// Input untouched
	assert.Equal(t, 8, g.NumNodes())
}

func TestPipeline_ChainCollapses(t *testing.T) {
	res := Pipeline(chain(), nil)
	assert.True(t, res.Graph.IsEmpty())
	assert.Equal(t, []int{4, 3, 3, 1, 0, 0, 0}, nodeCounts(res.Trace))
}

func stageNames(trace Trace) []string {
	names := make([]string, len(trace))
	for i, s := range trace {
		names[i] = s.Name
	}
	return names
}

func nodeCounts(trace Trace) []int {
	counts := make([]int, len(trace))
	for i, s := range trace {
		counts[i] = s.Nodes
	}
	return counts
}
