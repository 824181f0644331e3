package graph

import (
	"fmt"
	"sort"

	"github.com/matsen/citecore/internal/edge"
	"github.com/matsen/citecore/internal/reference"
)

// Membership selects how RequireTargetInCollection decides that a citer
// belongs to the collection.
type Membership int

const (
	// MembershipAnyCell accepts a citer equal to any id or string cell of
	// the record table.
	MembershipAnyCell Membership = iota
	// MembershipKnownID accepts a citer only if it is the id of a record.
	MembershipKnownID
)

// Membership names accepted by ParseMembership.
const (
	MembershipAnyCellName = "any-cell"
	MembershipKnownIDName = "known-id"
)

// ValidMemberships lists the accepted membership names.
var ValidMemberships = []string{MembershipAnyCellName, MembershipKnownIDName}

// ParseMembership converts a membership name to a Membership.
// The empty string selects MembershipAnyCell.
func ParseMembership(name string) (Membership, error) {
	switch name {
	case "", MembershipAnyCellName:
		return MembershipAnyCell, nil
	case MembershipKnownIDName:
		return MembershipKnownID, nil
	default:
		return 0, fmt.Errorf("invalid membership %q (valid: %v)", name, ValidMemberships)
	}
}

func (m Membership) String() string {
	if m == MembershipKnownID {
		return MembershipKnownIDName
	}
	return MembershipAnyCellName
}

// Options configures Build.
type Options struct {
	// RequireTargetInCollection drops citations whose citer fails the
	// Membership test instead of creating a bare node for it.
	RequireTargetInCollection bool
	Membership                Membership

	// IDKey is the id column, never carried as a node attribute.
	// Defaults to reference.IDField.
	IDKey string

	// CitedByKey is the attribute holding the citer list.
	// Defaults to reference.CitedByField.
	CitedByKey string
}

// BuildReport lists the data inconsistencies found while building.
type BuildReport struct {
	Records           int                 `json:"records"`
	Nodes             int                 `json:"nodes"`
	Edges             int                 `json:"edges"`
	DuplicateIDs      []string            `json:"duplicate_ids,omitempty"`
	Dangling          []edge.DanglingInfo `json:"dangling,omitempty"`
	Skipped           []edge.Edge         `json:"skipped,omitempty"`
	RepeatedCitations int                 `json:"repeated_citations,omitempty"`
}

// Build converts records into a citation graph. Every record becomes a node
// carrying its attributes; every citer in CitingIDs adds the edge
// citer -> record. Duplicate ids are last-write-wins.
func Build(records []reference.Record, opts Options) (*Graph, *BuildReport) {
	key := opts.CitedByKey
	if key == "" {
		key = reference.CitedByField
	}
	idKey := opts.IDKey
	if idKey == "" {
		idKey = reference.IDField
	}

	g := newWithKey(key)
	report := &BuildReport{Records: len(records)}

	knownIDs := make(map[string]bool, len(records))
	for _, rec := range records {
		knownIDs[rec.ID] = true
	}

	var member func(string) bool
	if opts.RequireTargetInCollection {
		member = membershipTest(records, knownIDs, opts.Membership)
	}

	seen := make(map[string]bool, len(records))
	var added []edge.Edge
	for _, rec := range records {
		if seen[rec.ID] {
			report.DuplicateIDs = append(report.DuplicateIDs, rec.ID)
		}
		seen[rec.ID] = true

		g.AddNode(rec.ID, nodeAttributes(rec, idKey, key))

		for _, citer := range rec.CitingIDs {
			e := edge.New(citer, rec.ID)
			if member != nil && !member(citer) {
				report.Skipped = append(report.Skipped, e)
				continue
			}
			g.AddEdge(citer, rec.ID)
			added = append(added, e)
		}
	}

	report.Dangling, _ = edge.DetectDangling(added, knownIDs)
	for _, count := range edge.FindDuplicateEdges(added) {
		report.RepeatedCitations += count - 1
	}
	sort.Strings(report.DuplicateIDs)
	report.Nodes = g.NumNodes()
	report.Edges = g.NumEdges()

	return g, report
}

// nodeAttributes returns the attributes a record's node carries. A record
// whose attributes lack the citer list gets CitingIDs attached under key.
func nodeAttributes(rec reference.Record, idKey, key string) reference.Attributes {
	attrs := rec.Attributes.Clone()
	attrs.Delete(idKey)
	if !attrs.Has(key) && rec.CitingIDs != nil {
		attrs.Set(key, reference.List(rec.CitingIDs))
	}
	return attrs
}

func membershipTest(records []reference.Record, knownIDs map[string]bool, m Membership) func(string) bool {
	if m == MembershipKnownID {
		return func(id string) bool { return knownIDs[id] }
	}

	cells := make(map[string]bool, len(knownIDs))
	for id := range knownIDs {
		cells[id] = true
	}
	for _, rec := range records {
		for _, k := range rec.Attributes.Keys() {
			if v, _ := rec.Attributes.Get(k); v.Kind() == reference.KindString {
				cells[v.Str()] = true
			}
		}
	}
	return func(id string) bool { return cells[id] }
}
