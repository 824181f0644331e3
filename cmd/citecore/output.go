package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/citecore/internal/graph"
	"github.com/matsen/citecore/internal/prune"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// reportError writes err to stderr as text with --human, or as JSON on stdout.
func reportError(err error) {
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		return
	}
	outputJSON(ErrorResponse{Error: err.Error(), Code: exitCode(err)})
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// StatusResponse is a generic response for commands that write a file.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// PruneResponse summarizes a prune or step run.
type PruneResponse struct {
	RunID          string             `json:"run_id"`
	Input          string             `json:"input"`
	Output         string             `json:"output,omitempty"`
	Viz            string             `json:"viz,omitempty"`
	Build          *graph.BuildReport `json:"build"`
	Stages         prune.Trace        `json:"stages"`
	ComponentSizes []int              `json:"component_sizes"`
	FixpointPasses int                `json:"fixpoint_passes,omitempty"`
	Nodes          int                `json:"nodes"`
	Edges          int                `json:"edges"`
}

// NodeWeight is one entry of the weights command output.
type NodeWeight struct {
	ID     string  `json:"id"`
	Weight float64 `json:"weight"`
}

// WeightsResponse is the response for the weights command.
type WeightsResponse struct {
	RunID   string             `json:"run_id"`
	Input   string             `json:"input"`
	Build   *graph.BuildReport `json:"build"`
	Weights []NodeWeight       `json:"weights"`
}

// printPruneHuman prints a run summary in human-readable format.
func printPruneHuman(resp PruneResponse) {
	fmt.Printf("Read %d records from %s\n", resp.Build.Records, resp.Input)
	printBuildWarningsHuman(resp.Build)
	fmt.Println()

	for _, s := range resp.Stages {
		fmt.Printf("  %-18s %6d nodes %6d edges\n", s.Name, s.Nodes, s.Edges)
	}
	if len(resp.ComponentSizes) > 0 {
		fmt.Printf("\nComponent sizes: %s\n", formatInts(resp.ComponentSizes))
	}
	if resp.FixpointPasses > 0 {
		fmt.Printf("Fixpoint reached after %d passes\n", resp.FixpointPasses)
	}

	fmt.Printf("\nCore: %d papers, %d citations\n", resp.Nodes, resp.Edges)
	if resp.Output != "" {
		fmt.Printf("Wrote %s\n", resp.Output)
	}
	if resp.Viz != "" {
		fmt.Printf("Wrote %s\n", resp.Viz)
	}
}

// printBuildWarningsHuman prints the data inconsistencies found while building.
func printBuildWarningsHuman(r *graph.BuildReport) {
	fmt.Printf("Graph: %d nodes, %d edges\n", r.Nodes, r.Edges)
	if len(r.DuplicateIDs) > 0 {
		fmt.Printf("Warning: %d duplicate ids (last row wins): %s\n", len(r.DuplicateIDs), truncateList(r.DuplicateIDs, 5))
	}
	if len(r.Dangling) > 0 {
		fmt.Printf("Warning: %d citations from papers outside the collection\n", len(r.Dangling))
	}
	if len(r.Skipped) > 0 {
		fmt.Printf("Skipped %d citations whose citer is not in the collection\n", len(r.Skipped))
	}
	if r.RepeatedCitations > 0 {
		fmt.Printf("Ignored %d repeated citations\n", r.RepeatedCitations)
	}
}

// truncateList joins at most n ids, noting how many were left out.
func truncateList(ids []string, n int) string {
	if len(ids) <= n {
		return strings.Join(ids, ", ")
	}
	return fmt.Sprintf("%s, ... (%d more)", strings.Join(ids[:n], ", "), len(ids)-n)
}

func formatInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
