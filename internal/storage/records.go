package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matsen/citecore/internal/reference"
)

// ErrMissingColumn is returned when a required column is absent from the header.
var ErrMissingColumn = errors.New("missing required column")

// Schema names the columns that carry meaning for graph construction.
type Schema struct {
	IDColumn      string   // Unique paper id
	CitedByColumn string   // Citer ids, a list literal
	ListColumns   []string // Columns parsed as list literals (CitedByColumn is always one)
}

// DefaultSchema returns the schema of the papers table.
func DefaultSchema() Schema {
	return Schema{
		IDColumn:      reference.IDField,
		CitedByColumn: reference.CitedByField,
		ListColumns:   []string{reference.CitedByField, reference.CitedByShortNameField},
	}
}

// Records converts table rows into records. The id column becomes the
// record id and is not kept as an attribute. List columns are parsed as
// list literals; a blank list cell reads as null. Other cells are typed
// with reference.ParseCell.
func Records(t *Table, schema Schema) ([]reference.Record, error) {
	idCol := t.ColumnIndex(schema.IDColumn)
	if idCol < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, schema.IDColumn)
	}
	citedByCol := t.ColumnIndex(schema.CitedByColumn)
	if citedByCol < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, schema.CitedByColumn)
	}

	isList := make(map[int]bool, len(schema.ListColumns)+1)
	isList[citedByCol] = true
	for _, c := range schema.ListColumns {
		if j := t.ColumnIndex(c); j >= 0 {
			isList[j] = true
		}
	}

	records := make([]reference.Record, 0, len(t.Rows))
	for i, row := range t.Rows {
		rec := reference.Record{ID: cellAt(row, idCol)}

		for j, col := range t.Columns {
			if j == idCol {
				continue
			}
			text := cellAt(row, j)
			if !isList[j] {
				rec.Attributes.Set(col, reference.ParseCell(text))
				continue
			}

			v, err := parseListCell(text)
			if err != nil {
				// Row numbers count the header as row 1, like a spreadsheet.
				return nil, fmt.Errorf("row %d, column %q: %w", i+2, col, err)
			}
			rec.Attributes.Set(col, v)
			if j == citedByCol {
				rec.CitingIDs = append([]string(nil), v.Items()...)
			}
		}

		records = append(records, rec)
	}
	return records, nil
}

func parseListCell(text string) (reference.Value, error) {
	if reference.ParseCell(text).Kind() == reference.KindNull {
		return reference.Null(), nil
	}
	items, err := reference.ParseList(strings.TrimSpace(text))
	if err != nil {
		return reference.Value{}, err
	}
	return reference.List(items), nil
}

func cellAt(row []string, j int) string {
	if j < len(row) {
		return row[j]
	}
	return ""
}

// ReadRecords reads the table at path and converts it with schema.
func ReadRecords(path string, opts ReadOptions, schema Schema) ([]reference.Record, error) {
	t, err := ReadTable(path, opts)
	if err != nil {
		return nil, err
	}
	if len(t.Columns) == 0 {
		return nil, nil // empty file, empty collection
	}
	records, err := Records(t, schema)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
