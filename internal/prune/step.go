package prune

import (
	"log/slog"

	"github.com/matsen/citecore/internal/graph"
)

// Step applies LowDegree(threshold), Isolates and LargestComponent once
// each, logging the node count before and after every sub-step.
func Step(g *graph.Graph, threshold int, logger *slog.Logger) *Result {
	rec := newRecorder(logger)
	rec.record(StageInput, g)

	out := LowDegree(g, threshold)
	rec.record(StageLowDegree, out, "threshold", threshold)

	out = Isolates(out)
	rec.record(StageIsolates, out)

	components := Components(out)
	out = largestOf(out, components)
	rec.record(StageLargestComponent, out, "component_sizes", ComponentSizes(components))

	return &Result{
		Graph:          out,
		Trace:          rec.trace,
		ComponentSizes: ComponentSizes(components),
	}
}

// FixpointLogged is Fixpoint with the node count of every pass logged.
func FixpointLogged(g *graph.Graph, logger *slog.Logger) (*graph.Graph, Trace) {
	return fixpoint(g, newRecorder(logger))
}

func fixpoint(g *graph.Graph, rec *recorder) (*graph.Graph, Trace) {
	if rec == nil {
		rec = newRecorder(nil)
	}

	current := g
	for pass := 1; ; pass++ {
		next := LowDegree(current, FixpointThreshold)
		rec.record(StageFixpointPass, next, "pass", pass)
		if next.NumNodes() == current.NumNodes() {
			return next, rec.trace
		}
		current = next
	}
}

// Result is the outcome of Step or Pipeline. FixpointPasses is zero for Step.
type Result struct {
	Graph          *graph.Graph
	Trace          Trace
	ComponentSizes []int
	FixpointPasses int
}

// Pipeline isolates the citation core of g: Isolates, then
// LargestComponent, then Fixpoint.
func Pipeline(g *graph.Graph, logger *slog.Logger) *Result {
	rec := newRecorder(logger)
	rec.record(StageInput, g)

	out := Isolates(g)
	rec.record(StageIsolates, out)

	components := Components(out)
	out = largestOf(out, components)
	rec.record(StageLargestComponent, out, "component_sizes", ComponentSizes(components))

	before := len(rec.trace)
	out, _ = fixpoint(out, rec)
	passes := len(rec.trace) - before
	rec.record(StageFixpoint, out, "passes", passes)

	return &Result{
		Graph:          out,
		Trace:          rec.trace,
		ComponentSizes: ComponentSizes(components),
		FixpointPasses: passes,
	}
}
