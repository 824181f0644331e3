package main

import (
	"fmt"

	"github.com/matsen/citecore/internal/prune"
	"github.com/spf13/cobra"
)

var vizPruned bool

func init() {
	addInputFlags(vizCmd)
	vizCmd.Flags().StringP("viz", "o", "", "Output HTML file path (required)")
	vizCmd.Flags().String("layout", "", "Layout algorithm: force, circle, or grid (default: force)")
	vizCmd.Flags().BoolVar(&vizPruned, "pruned", false, "Draw the pruned core instead of the full graph")
	rootCmd.AddCommand(vizCmd)
}

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Generate a citation graph visualization",
	Long: `Generate an interactive HTML visualization of the citation graph.

Papers are drawn as red circles sized by their weight (number of citers).
Citations are drawn as plain lines. Citers listed in cited_by_short_name
are labelled with their short name.

Examples:
  citecore viz -i papers.csv -o graph.html
  citecore viz -i papers.csv -o core.html --pruned --layout circle`,
	RunE: runViz,
}

func runViz(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, false)
	if err != nil {
		return err
	}
	if cfg.Viz == "" {
		return configError(fmt.Errorf("--viz output path is required"))
	}

	runID := newRunID()
	logger := newLogger(runID)

	records, g, _, err := loadGraph(cfg, logger)
	if err != nil {
		return err
	}
	if vizPruned {
		g = prune.Pipeline(g, logger).Graph
	}

	if err := writeViz(cfg.Viz, cfg.Layout, records, g); err != nil {
		return err
	}
	logger.Info("wrote visualization", "path", cfg.Viz, "nodes", g.NumNodes())

	if humanOutput {
		fmt.Printf("Wrote %s (%d papers, %d citations)\n", cfg.Viz, g.NumNodes(), g.NumEdges())
		return nil
	}
	return outputJSON(StatusResponse{Status: "written", Path: cfg.Viz})
}
