package graph

import "github.com/matsen/citecore/internal/reference"

// CiterLabels maps citer ids to the display names listed alongside them in
// the cited_by_short_name column. Citers are paired with names by position;
// when a citer appears in several records the last name wins.
func CiterLabels(records []reference.Record) map[string]string {
	labels := make(map[string]string)
	for _, rec := range records {
		v, ok := rec.Attributes.Get(reference.CitedByShortNameField)
		if !ok || v.Kind() != reference.KindList {
			continue
		}
		names := v.Items()
		for i, citer := range rec.CitingIDs {
			if i >= len(names) {
				break
			}
			labels[citer] = names[i]
		}
	}
	return labels
}
