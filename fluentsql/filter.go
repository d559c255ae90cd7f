package fluentsql

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/arthur-debert/fluentsql/internal/matching"
	"github.com/arthur-debert/fluentsql/types"
)

// Condition maps a field name to the pattern its value must match.
//
// The value is either a *regexp.Regexp, used as is, or a literal that is
// stringified and compiled as a pattern source. Literals are NOT escaped:
// Condition{"name": "a.c"} matches "abc". Use regexp.QuoteMeta for exact text.
//
// A condition is meant to hold a single field. When it holds several, only the
// first in lexicographic order is used and the rest are ignored.
type Condition map[string]interface{}

// Match returns a single-field condition
func Match(field string, pattern interface{}) Condition {
	return Condition{field: pattern}
}

// first returns the field and value the condition applies to
func (c Condition) first() (string, interface{}, bool) {
	if len(c) == 0 {
		return "", nil, false
	}
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0], c[keys[0]], true
}

// predicate is a compiled filter: the field's text must contain a match of pattern
type predicate struct {
	field   string
	pattern *regexp.Regexp
}

// newPredicate uses a *regexp.Regexp as is. Any other value, including a nil
// *regexp.Regexp, is compiled from its text, so nil patterns match "null".
func newPredicate(field string, value interface{}) (predicate, error) {
	if re, ok := value.(*regexp.Regexp); ok && re != nil {
		return predicate{field: field, pattern: re}, nil
	}

	source := types.Text(value)
	re, err := matching.Compile(source)
	if err != nil {
		return predicate{}, fmt.Errorf("where %q: %w", field, err)
	}
	return predicate{field: field, pattern: re}, nil
}

// matches tests the pattern anywhere in the field's text. Absent fields are
// tested as "undefined".
func (p predicate) matches(record types.Record) bool {
	text, _ := fieldString(record, p.field)
	return p.pattern.MatchString(text)
}

// matchesFilters checks if a record matches all the filters
func matchesFilters(record types.Record, filters []predicate) bool {
	for _, p := range filters {
		if !p.matches(record) {
			return false
		}
	}
	return true
}
