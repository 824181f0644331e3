package reference

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindList:
		return "list"
	default:
		return "null"
	}
}

// Value is a single attribute cell. It is one of null, string, number or
// list of strings. The zero Value is null.
type Value struct {
	kind Kind
	text string // string contents, or the source text of a number
	num  float64
	list []string
}

// missingTokens are cell texts read as missing values, matching what
// spreadsheet tooling writes for empty cells.
var missingTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"n/a":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"None": true,
	"#N/A": true,
}

// Null returns the null Value.
func Null() Value { return Value{} }

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, text: s} }

// Number returns a number Value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f, text: strconv.FormatFloat(f, 'f', -1, 64)}
}

// List returns a list Value holding a copy of items.
func List(items []string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{kind: KindList, list: cp}
}

// ParseCell types raw cell text. Missing-value tokens become null, finite
// numbers become numbers (keeping their source text), anything else is
// stored as an opaque string.
func ParseCell(text string) Value {
	trimmed := strings.TrimSpace(text)
	if missingTokens[trimmed] {
		return Null()
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return Value{kind: KindNumber, num: f, text: trimmed}
	}
	return String(text)
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string contents, or "" if v is not a string.
func (v Value) Str() string {
	if v.kind != KindString {
		return ""
	}
	return v.text
}

// Num returns the numeric value, or 0 if v is not a number.
func (v Value) Num() float64 { return v.num }

// Items returns the list items, or nil if v is not a list.
// The returned slice must not be modified.
func (v Value) Items() []string { return v.list }

// IsEmpty reports whether v is null, an empty string or an empty list.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.text == ""
	case KindList:
		return len(v.list) == 0
	}
	return false
}

// Text renders v as cell text. Lists are rendered as list literals.
func (v Value) Text() string {
	switch v.kind {
	case KindString, KindNumber:
		return v.text
	case KindList:
		return FormatList(v.list)
	}
	return ""
}

// Equal reports whether v and o hold the same variant and contents.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.text == o.text
	case KindNumber:
		return v.num == o.num
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
	}
	return true
}
