package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/matsen/citecore/internal/config"
	"github.com/matsen/citecore/internal/export"
	"github.com/matsen/citecore/internal/graph"
	"github.com/matsen/citecore/internal/reference"
	"github.com/matsen/citecore/internal/storage"
	"github.com/matsen/citecore/internal/viz"
	"github.com/spf13/cobra"
)

// addInputFlags registers the flags of commands that read the papers table.
func addInputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("input", "i", "", "Papers table (.csv, .tsv, .xlsx, .jsonl)")
	f.String("sheet", "", "XLSX worksheet (default: first sheet)")
	f.String("id-column", "", "Paper id column (default: uuid)")
	f.String("cited-by-column", "", "Citer list column (default: cited_by)")
	f.StringSlice("list-columns", nil, "Columns holding list literals (default: cited_by,cited_by_short_name)")
	f.Bool("require-target-in-collection", false, "Drop citations whose citer is not part of the collection")
	f.String("membership", "", "Collection test for citers: any-cell or known-id (default: any-cell)")
}

// addOutputFlags registers the flags of commands that write the pruned graph.
func addOutputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("output", "o", "", "Output table (.csv, .tsv, .xlsx, .jsonl)")
	f.String("viz", "", "Also write an HTML visualization to this path")
	f.String("layout", "", "Visualization layout: force, circle, or grid (default: force)")
}

// loadConfig layers flags, environment and config file, then validates.
func loadConfig(cmd *cobra.Command, requireOutput bool) (*config.Config, error) {
	v, err := config.NewViper(cfgFile)
	if err != nil {
		return nil, configError(err)
	}
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, configError(err)
	}
	cfg, err := config.FromViper(v)
	if err != nil {
		return nil, configError(err)
	}
	if err := cfg.Validate(requireOutput); err != nil {
		return nil, configError(err)
	}
	return cfg, nil
}

// loadGraph reads the papers table and builds the citation graph.
func loadGraph(cfg *config.Config, logger *slog.Logger) ([]reference.Record, *graph.Graph, *graph.BuildReport, error) {
	records, err := storage.ReadRecords(cfg.Input, cfg.ReadOptions(), cfg.Schema())
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedFormat) {
			return nil, nil, nil, configError(err)
		}
		return nil, nil, nil, dataError(fmt.Errorf("reading papers: %w", err))
	}
	logger.Info("read papers", "path", cfg.Input, "records", len(records))

	opts := cfg.BuildOptions()
	g, report := graph.Build(records, opts)
	logger.Info("built graph",
		"nodes", report.Nodes,
		"edges", report.Edges,
		"require_target_in_collection", opts.RequireTargetInCollection,
		"membership", opts.Membership.String())
	logBuildReport(logger, report)

	return records, g, report, nil
}

func logBuildReport(logger *slog.Logger, r *graph.BuildReport) {
	if len(r.DuplicateIDs) > 0 {
		logger.Warn("duplicate paper ids, last row wins", "count", len(r.DuplicateIDs), "ids", r.DuplicateIDs)
	}
	if len(r.Dangling) > 0 {
		logger.Warn("citations from papers outside the collection", "count", len(r.Dangling))
		for _, d := range r.Dangling {
			logger.Debug("dangling citation", "citer", d.SourceID, "cited", d.TargetID)
		}
	}
	if len(r.Skipped) > 0 {
		logger.Info("skipped citations failing the membership test", "count", len(r.Skipped))
	}
	if r.RepeatedCitations > 0 {
		logger.Info("ignored repeated citations", "count", r.RepeatedCitations)
	}
}

// writeResults writes the pruned graph and, when configured, its visualization.
func writeResults(cfg *config.Config, records []reference.Record, g *graph.Graph, logger *slog.Logger) error {
	if cfg.Output != "" {
		table := export.ToRows(g, cfg.IDColumn)
		if err := storage.WriteTable(cfg.Output, table); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		logger.Info("wrote papers", "path", cfg.Output, "rows", len(table.Rows), "columns", len(table.Columns))
	}

	if cfg.Viz != "" {
		if err := writeViz(cfg.Viz, cfg.Layout, records, g); err != nil {
			return err
		}
		logger.Info("wrote visualization", "path", cfg.Viz, "layout", cfg.Layout)
	}
	return nil
}

func writeViz(path, layout string, records []reference.Record, g *graph.Graph) error {
	opts := viz.DefaultOptions()
	if layout != "" {
		opts.Layout = layout
	}

	html, err := viz.GenerateHTML(viz.FromGraph(g, graph.CiterLabels(records)), opts)
	if err != nil {
		return fmt.Errorf("generating HTML: %w", err)
	}

	err = storage.WriteAtomic(path, func(w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	})
	if err != nil {
		return fmt.Errorf("writing visualization: %w", err)
	}
	return nil
}
