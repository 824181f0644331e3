package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matsen/citecore/internal/graph"
	"github.com/matsen/citecore/internal/storage"
)

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "papers.csv")
	if err := os.WriteFile(path, []byte("uuid,cited_by\nA,[]\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.IDColumn != "uuid" {
		t.Errorf("IDColumn = %q, want %q", cfg.IDColumn, "uuid")
	}
	if cfg.CitedByColumn != "cited_by" {
		t.Errorf("CitedByColumn = %q, want %q", cfg.CitedByColumn, "cited_by")
	}
	if cfg.Membership != graph.MembershipAnyCellName {
		t.Errorf("Membership = %q, want %q", cfg.Membership, graph.MembershipAnyCellName)
	}
	if cfg.RequireTargetInCollection {
		t.Error("RequireTargetInCollection should default to false")
	}
	if !reflect.DeepEqual(cfg.Schema(), storage.DefaultSchema()) {
		t.Errorf("Schema() = %+v, want %+v", cfg.Schema(), storage.DefaultSchema())
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)

	tests := []struct {
		name          string
		modify        func(*Config)
		requireOutput bool
		wantErr       error
	}{
		{
			name:          "valid with output",
			modify:        func(c *Config) { c.Output = filepath.Join(dir, "out.csv") },
			requireOutput: true,
		},
		{
			name:          "output optional",
			modify:        func(c *Config) {},
			requireOutput: false,
		},
		{
			name:    "missing input",
			modify:  func(c *Config) { c.Input = "" },
			wantErr: ErrInputRequired,
		},
		{
			name:    "nonexistent input",
			modify:  func(c *Config) { c.Input = filepath.Join(dir, "nope.csv") },
			wantErr: ErrInputNotFound,
		},
		{
			name:          "missing output",
			modify:        func(c *Config) {},
			requireOutput: true,
			wantErr:       ErrOutputRequired,
		},
		{
			name:    "output directory missing",
			modify:  func(c *Config) { c.Output = filepath.Join(dir, "missing", "out.csv") },
			wantErr: ErrOutputDirNotFound,
		},
		{
			name:    "unsupported output format",
			modify:  func(c *Config) { c.Output = filepath.Join(dir, "out.parquet") },
			wantErr: storage.ErrUnsupportedFormat,
		},
		{
			name:    "invalid membership",
			modify:  func(c *Config) { c.Membership = "fuzzy" },
			wantErr: ErrInvalidMembership,
		},
		{
			name:    "invalid layout",
			modify:  func(c *Config) { c.Layout = "spiral" },
			wantErr: ErrInvalidLayout,
		},
		{
			name:    "viz directory missing",
			modify:  func(c *Config) { c.Viz = filepath.Join(dir, "missing", "graph.html") },
			wantErr: ErrOutputDirNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Input = input
			tt.modify(cfg)

			err := cfg.Validate(tt.requireOutput)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuildOptions(t *testing.T) {
	cfg := Default()
	cfg.RequireTargetInCollection = true
	cfg.Membership = graph.MembershipKnownIDName
	cfg.IDColumn = "doi"
	cfg.CitedByColumn = "citers"

	opts := cfg.BuildOptions()
	if !opts.RequireTargetInCollection {
		t.Error("RequireTargetInCollection not carried over")
	}
	if opts.Membership != graph.MembershipKnownID {
		t.Errorf("Membership = %v, want %v", opts.Membership, graph.MembershipKnownID)
	}
	if opts.IDKey != "doi" || opts.CitedByKey != "citers" {
		t.Errorf("keys = (%q, %q), want (doi, citers)", opts.IDKey, opts.CitedByKey)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yml")

	cfg := Default()
	cfg.Input = "papers.xlsx"
	cfg.Sheet = "Papers"
	cfg.RequireTargetInCollection = true
	cfg.ListColumns = []string{"cited_by", "keywords"}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	v, err := NewViper(path)
	if err != nil {
		t.Fatalf("NewViper() error = %v", err)
	}
	got, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper() error = %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestNewViper_ExplicitFileMissing(t *testing.T) {
	if _, err := NewViper(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("NewViper() should fail for a missing explicit config file")
	}
}

func TestNewViper_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := Default()
	cfg.Input = "from-file.csv"
	if err := cfg.Save(GlobalConfigPath()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	t.Setenv("CITECORE_INPUT", "from-env.csv")
	t.Setenv("CITECORE_MEMBERSHIP", graph.MembershipKnownIDName)

	v, err := NewViper("")
	if err != nil {
		t.Fatalf("NewViper() error = %v", err)
	}
	got, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper() error = %v", err)
	}
	if got.Input != "from-env.csv" {
		t.Errorf("Input = %q, want %q", got.Input, "from-env.csv")
	}
	if got.Membership != graph.MembershipKnownIDName {
		t.Errorf("Membership = %q, want %q", got.Membership, graph.MembershipKnownIDName)
	}
}

func TestNewViper_NoGlobalFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	v, err := NewViper("")
	if err != nil {
		t.Fatalf("NewViper() error = %v", err)
	}
	got, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper() error = %v", err)
	}
	if !reflect.DeepEqual(got, Default()) {
		t.Errorf("FromViper() = %+v, want defaults %+v", got, Default())
	}
}

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	want := filepath.Join("/custom/config", GlobalConfigDir, GlobalConfigFile)
	if got := GlobalConfigPath(); got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"/abs/path.csv", "/abs/path.csv"},
		{"rel/path.csv", "rel/path.csv"},
		{"~/papers.csv", filepath.Join(home, "papers.csv")},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.input); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
