package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/matsen/citecore/internal/config"
	"github.com/matsen/citecore/internal/reference"
	"github.com/matsen/citecore/internal/storage"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("boom"), ExitError},
		{"missing input", fmt.Errorf("validate: %w", config.ErrInputRequired), ExitConfigError},
		{"invalid membership", config.ErrInvalidMembership, ExitConfigError},
		{"unsupported format", fmt.Errorf("output: %w", storage.ErrUnsupportedFormat), ExitConfigError},
		{"missing column", fmt.Errorf("papers.csv: %w", storage.ErrMissingColumn), ExitDataError},
		{"malformed list", fmt.Errorf("row 3: %w", reference.ErrMalformedList), ExitDataError},
		{"tagged config", configError(errors.New("bad yaml")), ExitConfigError},
		{"tagged data", dataError(errors.New("bad csv")), ExitDataError},
		{"tag wins over sentinel", dataError(config.ErrInputRequired), ExitDataError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	err := dataError(fmt.Errorf("reading papers: %w", reference.ErrMalformedList))
	if !errors.Is(err, reference.ErrMalformedList) {
		t.Error("tagged error should unwrap to its cause")
	}
	if err.Error() != "reading papers: "+reference.ErrMalformedList.Error() {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestTruncateList(t *testing.T) {
	tests := []struct {
		ids  []string
		n    int
		want string
	}{
		{nil, 3, ""},
		{[]string{"a", "b"}, 3, "a, b"},
		{[]string{"a", "b", "c", "d"}, 2, "a, b, ... (2 more)"},
	}
	for _, tt := range tests {
		if got := truncateList(tt.ids, tt.n); got != tt.want {
			t.Errorf("truncateList(%v, %d) = %q, want %q", tt.ids, tt.n, got, tt.want)
		}
	}
}
