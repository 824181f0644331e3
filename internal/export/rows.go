// Package export flattens a citation graph back into table rows.
package export

import (
	"github.com/matsen/citecore/internal/graph"
	"github.com/matsen/citecore/internal/reference"
	"github.com/matsen/citecore/internal/storage"
)

// MissingValue is written for absent, null, empty-string and empty-list cells.
const MissingValue = "NA"

// ToRows returns one row per node, in node order. The first column is
// idColumn (reference.IDField when empty), followed by every attribute key
// in first-seen order across nodes.
func ToRows(g *graph.Graph, idColumn string) *storage.Table {
	if idColumn == "" {
		idColumn = reference.IDField
	}

	ids := g.Nodes()
	columns := []string{idColumn}
	position := map[string]int{idColumn: 0}
	nodeAttrs := make([]reference.Attributes, len(ids))

	for i, id := range ids {
		attrs, _ := g.Attributes(id)
		nodeAttrs[i] = attrs
		for _, k := range attrs.Keys() {
			if _, ok := position[k]; !ok {
				position[k] = len(columns)
				columns = append(columns, k)
			}
		}
	}

	t := &storage.Table{Columns: columns, Rows: make([][]string, 0, len(ids))}
	for i, id := range ids {
		row := make([]string, len(columns))
		for j := range row {
			row[j] = MissingValue
		}
		row[0] = id

		attrs := nodeAttrs[i]
		for _, k := range attrs.Keys() {
			v, _ := attrs.Get(k)
			row[position[k]] = cellText(v)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func cellText(v reference.Value) string {
	if v.IsEmpty() {
		return MissingValue
	}
	return v.Text()
}
