package main

import (
	"fmt"

	"github.com/matsen/citecore/internal/graph"
	"github.com/spf13/cobra"
)

func init() {
	addInputFlags(weightsCmd)
	rootCmd.AddCommand(weightsCmd)
}

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Print the weight of every paper in the citation graph",
	Long: `Build the citation graph without pruning and print one weight per
paper, in graph order. A paper's weight is the number of papers citing
it, with a floor of 0.5 for papers that have no cited_by list.

Examples:
  citecore weights -i papers.csv
  citecore weights -i papers.xlsx --human`,
	RunE: runWeights,
}

func runWeights(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, false)
	if err != nil {
		return err
	}

	runID := newRunID()
	logger := newLogger(runID)

	_, g, report, err := loadGraph(cfg, logger)
	if err != nil {
		return err
	}

	ids := g.Nodes()
	weights := graph.Weights(g)
	entries := make([]NodeWeight, len(ids))
	for i, id := range ids {
		entries[i] = NodeWeight{ID: id, Weight: weights[i]}
	}

	if humanOutput {
		printBuildWarningsHuman(report)
		fmt.Println()
		for _, e := range entries {
			fmt.Printf("%8.1f  %s\n", e.Weight, e.ID)
		}
		return nil
	}
	return outputJSON(WeightsResponse{
		RunID:   runID,
		Input:   cfg.Input,
		Build:   report,
		Weights: entries,
	})
}
