// Package config handles run configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/citecore/internal/graph"
	"github.com/matsen/citecore/internal/reference"
	"github.com/matsen/citecore/internal/storage"
	"github.com/matsen/citecore/internal/viz"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of one run. It is passed explicitly to every
// command and validated before any input is read.
type Config struct {
	// Files
	Input  string `json:"input" yaml:"input" mapstructure:"input"`                        // Papers table (.csv, .tsv, .xlsx, .jsonl)
	Output string `json:"output" yaml:"output" mapstructure:"output"`                     // Pruned table; format by extension
	Sheet  string `json:"sheet,omitempty" yaml:"sheet,omitempty" mapstructure:"sheet"`    // XLSX worksheet, default first
	Viz    string `json:"viz,omitempty" yaml:"viz,omitempty" mapstructure:"viz"`          // Optional HTML visualization path
	Layout string `json:"layout,omitempty" yaml:"layout,omitempty" mapstructure:"layout"` // Visualization layout: force, circle, grid

	// Columns
	IDColumn      string   `json:"id_column" yaml:"id_column" mapstructure:"id_column"`
	CitedByColumn string   `json:"cited_by_column" yaml:"cited_by_column" mapstructure:"cited_by_column"`
	ListColumns   []string `json:"list_columns" yaml:"list_columns" mapstructure:"list_columns"`

	// Graph construction
	RequireTargetInCollection bool   `json:"require_target_in_collection" yaml:"require_target_in_collection" mapstructure:"require_target_in_collection"`
	Membership                string `json:"membership" yaml:"membership" mapstructure:"membership"` // any-cell or known-id
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "citecore"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// EnvPrefix prefixes environment overrides, e.g. CITECORE_INPUT.
	EnvPrefix = "CITECORE"
)

// Validation errors.
var (
	ErrInputRequired     = errors.New("input path is required")
	ErrInputNotFound     = errors.New("input file does not exist")
	ErrOutputRequired    = errors.New("output path is required")
	ErrOutputDirNotFound = errors.New("output directory does not exist")
	ErrInvalidMembership = errors.New("invalid membership")
	ErrInvalidLayout     = errors.New("invalid layout")
)

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	schema := storage.DefaultSchema()
	return &Config{
		Layout:        "force",
		IDColumn:      schema.IDColumn,
		CitedByColumn: schema.CitedByColumn,
		ListColumns:   schema.ListColumns,
		Membership:    graph.MembershipAnyCellName,
	}
}

// GlobalConfigPath returns the path to the default config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/citecore/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// Validate checks the configuration before a run. requireOutput is false
// for commands that only report.
func (c *Config) Validate(requireOutput bool) error {
	c.Input = ExpandPath(c.Input)
	c.Output = ExpandPath(c.Output)
	c.Viz = ExpandPath(c.Viz)

	if c.Input == "" {
		return ErrInputRequired
	}
	info, err := os.Stat(c.Input)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInputNotFound, c.Input)
	}
	if info.IsDir() {
		return fmt.Errorf("input is a directory: %s", c.Input)
	}
	if _, err := storage.DetectFormat(c.Input); err != nil {
		return fmt.Errorf("input: %w", err)
	}

	if requireOutput && c.Output == "" {
		return ErrOutputRequired
	}
	if c.Output != "" {
		if err := validateOutputPath(c.Output); err != nil {
			return fmt.Errorf("output: %w", err)
		}
		if _, err := storage.DetectFormat(c.Output); err != nil {
			return fmt.Errorf("output: %w", err)
		}
	}
	if c.Viz != "" {
		if err := validateOutputPath(c.Viz); err != nil {
			return fmt.Errorf("viz: %w", err)
		}
	}

	if _, err := graph.ParseMembership(c.Membership); err != nil {
		return fmt.Errorf("%w: %q (valid: %v)", ErrInvalidMembership, c.Membership, graph.ValidMemberships)
	}
	if err := viz.ValidateLayout(c.Layout); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if c.IDColumn == "" || c.CitedByColumn == "" {
		return errors.New("id_column and cited_by_column must not be empty")
	}
	return nil
}

func validateOutputPath(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrOutputDirNotFound, dir)
	}
	return nil
}

// Schema returns the column schema for reading the input.
func (c *Config) Schema() storage.Schema {
	return storage.Schema{
		IDColumn:      c.IDColumn,
		CitedByColumn: c.CitedByColumn,
		ListColumns:   c.ListColumns,
	}
}

// ReadOptions returns the options for reading the input table.
func (c *Config) ReadOptions() storage.ReadOptions {
	return storage.ReadOptions{Sheet: c.Sheet}
}

// BuildOptions returns the graph construction options.
// Call Validate first; an invalid membership falls back to any-cell.
func (c *Config) BuildOptions() graph.Options {
	membership, _ := graph.ParseMembership(c.Membership)
	idKey := c.IDColumn
	if idKey == "" {
		idKey = reference.IDField
	}
	return graph.Options{
		RequireTargetInCollection: c.RequireTargetInCollection,
		Membership:                membership,
		IDKey:                     idKey,
		CitedByKey:                c.CitedByColumn,
	}
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
