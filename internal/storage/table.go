// Package storage reads and writes flat tables of paper rows in CSV, XLSX
// and JSONL formats.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies a table file format.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatTSV   Format = "tsv"
	FormatXLSX  Format = "xlsx"
	FormatJSONL Format = "jsonl"
)

// ErrUnsupportedFormat is returned for file extensions with no table codec.
var ErrUnsupportedFormat = errors.New("unsupported table format")

// Table is a header plus rows of cell text. Rows may be shorter than the
// header; missing trailing cells read as "".
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of column, or -1.
func (t *Table) ColumnIndex(column string) int {
	for j, c := range t.Columns {
		if c == column {
			return j
		}
	}
	return -1
}

// DetectFormat infers the table format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	default:
		return "", fmt.Errorf("%w: %q (use .csv, .tsv, .xlsx or .jsonl)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadOptions configures ReadTable.
type ReadOptions struct {
	Sheet string // XLSX worksheet; defaults to the first sheet
}

// ReadTable reads a table from path, choosing the codec by extension.
func ReadTable(path string, opts ReadOptions) (*Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatXLSX:
		return readXLSX(path, opts.Sheet)
	case FormatJSONL:
		return readJSONL(path)
	case FormatTSV:
		return readDelimited(path, '\t')
	default:
		return readDelimited(path, ',')
	}
}

// WriteTable writes t to path, choosing the codec by extension. The file is
// written to a temporary sibling and renamed into place, so a failed write
// leaves no file at path.
func WriteTable(path string, t *Table) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	return WriteAtomic(path, func(w io.Writer) error {
		switch format {
		case FormatXLSX:
			return writeXLSX(w, t)
		case FormatJSONL:
			return writeJSONL(w, t)
		case FormatTSV:
			return writeDelimited(w, t, '\t')
		default:
			return writeDelimited(w, t, ',')
		}
	})
}

// WriteAtomic calls write with a temporary file next to path and renames
// it to path once write succeeds. On failure the temporary file is removed.
func WriteAtomic(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".citecore-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := write(tmp); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}
