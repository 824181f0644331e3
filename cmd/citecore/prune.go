package main

import (
	"github.com/matsen/citecore/internal/prune"
	"github.com/spf13/cobra"
)

func init() {
	addInputFlags(pruneCmd)
	addOutputFlags(pruneCmd)
	rootCmd.AddCommand(pruneCmd)
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Extract the citation core and write it as a table",
	Long: `Build the citation graph and prune it to its core:

  1. remove papers without any citation link
  2. keep the largest connected component (citation direction ignored)
  3. repeatedly remove papers with at most one citation link until the
     number of papers stops changing

The surviving papers are written to --output with all their columns.
Empty cells are written as NA.

Examples:
  citecore prune -i papers.xlsx -o core.xlsx
  citecore prune -i papers.csv -o core.csv --require-target-in-collection
  citecore prune -i papers.csv -o core.csv --viz core.html --human`,
	RunE: runPrune,
}

func runPrune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}

	runID := newRunID()
	logger := newLogger(runID)

	records, g, report, err := loadGraph(cfg, logger)
	if err != nil {
		return err
	}

	result := prune.Pipeline(g, logger)

	if err := writeResults(cfg, records, result.Graph, logger); err != nil {
		return err
	}

	resp := PruneResponse{
		RunID:          runID,
		Input:          cfg.Input,
		Output:         cfg.Output,
		Viz:            cfg.Viz,
		Build:          report,
		Stages:         result.Trace,
		ComponentSizes: result.ComponentSizes,
		FixpointPasses: result.FixpointPasses,
		Nodes:          result.Graph.NumNodes(),
		Edges:          result.Graph.NumEdges(),
	}
	if humanOutput {
		printPruneHuman(resp)
		return nil
	}
	return outputJSON(resp)
}
