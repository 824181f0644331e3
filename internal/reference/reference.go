// Package reference defines the core domain types for paper records read from a table.
package reference

// Well-known column names of the papers table.
const (
	IDField               = "uuid"                // Unique paper identifier
	CitedByField          = "cited_by"            // Ids of the papers citing this one
	CitedByShortNameField = "cited_by_short_name" // Display names matching CitedByField
)

// Record represents one paper row.
type Record struct {
	// Identity
	ID string // Expected unique across a collection; not enforced

	// Every non-id column of the row
	Attributes Attributes

	// Relationships: ids of the papers that cite this one, in source order.
	// May reference ids that are not part of the collection.
	CitingIDs []string
}

// NewRecord creates a record with an empty attribute set.
func NewRecord(id string, citingIDs ...string) Record {
	return Record{ID: id, CitingIDs: citingIDs}
}
