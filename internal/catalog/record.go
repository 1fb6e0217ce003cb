package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TagSeparator joins the feature tags inside a record's Features field.
const TagSeparator = "~"

// Record represents one supply record loaded from the catalog file.
// Features holds the full ~-joined tag list until NormalizeFeatures
// truncates it to the first tag.
type Record struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
	Features string  `json:"features"`
}

// FieldNames returns the catalog column names in file order.
func FieldNames() []string {
	return []string{"id", "name", "brand", "price", "features"}
}

// Capitalize uppercases the first rune and leaves the remainder unchanged.
// User input for search and checkout goes through this transform before
// matching, which makes matching effectively case-sensitive past the first
// character. That asymmetry is the compatibility contract, not an oversight.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// FirstTag returns the leading segment of a ~-joined tag list.
func FirstTag(features string) string {
	first, _, _ := strings.Cut(features, TagSeparator)
	return first
}

// Tags splits the Features field into its individual tags.
func (r *Record) Tags() []string {
	return strings.Split(r.Features, TagSeparator)
}

// Clone returns a copy of the record. Operations with destructive in-place
// semantics (sorting normalization, price revision) mutate the originals;
// callers that still need the full tag list work on clones.
func (r *Record) Clone() *Record {
	c := *r
	return &c
}

// CloneAll deep-copies a record sequence, preserving order.
func CloneAll(records []*Record) []*Record {
	out := make([]*Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
