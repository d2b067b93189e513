package members

import (
	"strings"

	"golang.org/x/text/cases"
)

// Matcher reports whether a record matches a search term.
//
// Matching is a case-insensitive substring test against the concatenation of
// all field values. There is no tokenization and no per-field matching, so a
// term may span the boundary between two fields.
type Matcher struct {
	folded string
	caser  cases.Caser
}

// NewMatcher folds term once so that matching many records stays cheap.
func NewMatcher(term string) Matcher {
	caser := cases.Fold()
	return Matcher{folded: caser.String(term), caser: caser}
}

// Empty reports whether the matcher accepts every record.
func (m Matcher) Empty() bool {
	return m.folded == ""
}

// Match reports whether r contains the term.
func (m Matcher) Match(r Record) bool {
	if m.Empty() {
		return true
	}
	return strings.Contains(m.caser.String(r.searchText()), m.folded)
}

// Filter returns the records of src that match term, in their original order.
// An empty term returns a copy of src.
func Filter(src []Record, term string) []Record {
	m := NewMatcher(term)
	out := make([]Record, 0, len(src))
	for _, r := range src {
		if m.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
