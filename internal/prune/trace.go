package prune

import (
	"io"
	"log/slog"

	"github.com/matsen/citecore/internal/graph"
)

// Stage names recorded in a Trace.
const (
	StageInput            = "input"
	StageLowDegree        = "low-degree"
	StageIsolates         = "isolates"
	StageLargestComponent = "largest-component"
	StageFixpointPass     = "fixpoint-pass"
	StageFixpoint         = "fixpoint"
)

// Stage records the size of the graph after one pruning sub-step.
type Stage struct {
	Name  string `json:"stage"`
	Nodes int    `json:"nodes"`
	Edges int    `json:"edges"`
}

// Trace is the ordered list of stages a run went through.
type Trace []Stage

// Final returns the last recorded stage.
func (t Trace) Final() Stage {
	if len(t) == 0 {
		return Stage{}
	}
	return t[len(t)-1]
}

// recorder appends stages to a trace and logs each one.
type recorder struct {
	logger *slog.Logger
	trace  Trace
}

func newRecorder(logger *slog.Logger) *recorder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &recorder{logger: logger}
}

func (r *recorder) record(name string, g *graph.Graph, attrs ...any) {
	stage := Stage{Name: name, Nodes: g.NumNodes(), Edges: g.NumEdges()}
	r.trace = append(r.trace, stage)
	args := append([]any{"stage", name, "nodes", stage.Nodes, "edges", stage.Edges}, attrs...)
	r.logger.Info("pruning", args...)
}
