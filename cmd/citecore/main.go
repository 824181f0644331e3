// Package main provides the citecore CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	// cfgFile overrides the global config file
	cfgFile string
	// verbose enables debug logging
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors is set, so every error is reported here.
		reportError(err)
		os.Exit(exitCode(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "citecore",
	Short: "Extract the citation core of a paper collection",
	Long: `citecore builds a directed citation graph from a table of papers and
prunes it down to its most densely interconnected core.

Each row of the input is a paper with a unique id and a cited_by list of
the papers citing it. Pruning removes isolated papers, keeps the largest
connected component, then repeatedly removes papers with at most one
citation link until nothing changes. The surviving papers are written
back as a table.

Configuration hierarchy (highest to lowest priority):
  1. CLI flags
  2. Environment variables (CITECORE_*, also read from .env)
  3. Config file (~/.config/citecore/config.yml or --config)
  4. Defaults

All commands output JSON by default; use --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if humanOutput {
			fmt.Printf("citecore %s\n", Version)
			return
		}
		outputJSON(map[string]string{"version": Version})
	},
}

func init() {
	// A missing .env file is fine
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.config/citecore/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details")
	rootCmd.Version = Version
	rootCmd.AddCommand(versionCmd)
}

// newLogger returns the diagnostics logger for one run. Records go to
// stderr as JSON, or as text with --human, and carry the run id.
func newLogger(runID string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if humanOutput {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler).With("run_id", runID)
}

// newRunID returns a fresh identifier for correlating one run's logs.
func newRunID() string {
	return uuid.NewString()
}
