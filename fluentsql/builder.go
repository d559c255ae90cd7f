// Package fluentsql provides a fluent, SQL-like query builder over in-memory
// collections of records.
//
// A Builder is bound to a collection with For, configured through chained
// calls, and evaluated with Build:
//
//	results, err := fluentsql.For(people).
//		Where(fluentsql.Match("category", "Developer")).
//		Where(fluentsql.Match("name", regexp.MustCompile("^M"))).
//		Select("name", "category").
//		OrderBy("name").
//		Limit(10).
//		Build()
//
// Where calls accumulate and must all match. Select, OrderBy and Limit replace
// their previous value. Build never modifies the bound collection or the query
// state, so a builder can be evaluated, changed and evaluated again.
//
// A Builder is not safe for concurrent use.
package fluentsql

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/fluentsql/types"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/text/language"
)

// DefaultLocale is the collation locale used by OrderBy unless WithLocale is given
var DefaultLocale = language.English

// Builder accumulates a query and evaluates it against its collection
type Builder struct {
	collection []types.Record

	selected []string
	filters  []predicate
	orderBy  string
	limit    int

	locale language.Tag
	errs   *multierror.Error
}

// Option configures a Builder at construction
type Option func(*Builder)

// WithLocale sets the locale whose collation rules OrderBy follows
func WithLocale(tag language.Tag) Option {
	return func(b *Builder) {
		b.locale = tag
	}
}

// For creates a builder bound to collection, with no filters, no selection,
// no ordering and no limit
func For(collection []types.Record, opts ...Option) *Builder {
	b := &Builder{
		collection: collection,
		locale:     DefaultLocale,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Limit caps the number of results. Zero or a negative value means no limit.
func (b *Builder) Limit(max int) *Builder {
	b.limit = max
	return b
}

// Select restricts the fields kept in each result. No fields means all fields.
func (b *Builder) Select(fields ...string) *Builder {
	b.selected = append([]string(nil), fields...)
	return b
}

// Where adds a filter. Every filter must match for a record to be kept.
//
// A condition whose pattern does not compile does not stop the chain; the
// error is reported by Build.
func (b *Builder) Where(cond Condition) *Builder {
	field, value, ok := cond.first()
	if !ok {
		return b
	}

	p, err := newPredicate(field, value)
	if err != nil {
		b.errs = multierror.Append(b.errs, err)
		return b
	}

	b.filters = append(b.filters, p)
	return b
}

// OrderBy sorts results ascending by field. An empty field disables ordering.
func (b *Builder) OrderBy(field string) *Builder {
	b.orderBy = field
	return b
}

// Clone returns an independent builder with a copy of the query state, bound
// to the same collection
func (b *Builder) Clone() *Builder {
	c := &Builder{
		collection: b.collection,
		selected:   append([]string(nil), b.selected...),
		filters:    append([]predicate(nil), b.filters...),
		orderBy:    b.orderBy,
		limit:      b.limit,
		locale:     b.locale,
	}
	if b.errs != nil {
		c.errs = &multierror.Error{Errors: append([]error(nil), b.errs.Errors...)}
	}
	return c
}

// Build evaluates the query and returns a new slice of shaped records.
//
// Records are visited in collection order. Each one that matches every filter
// is projected and appended; once the limit is reached no further records are
// visited. The results are then ordered if OrderBy was set.
//
// The only error is a Where condition that failed to compile, in which case
// no results are returned.
func (b *Builder) Build() ([]types.Record, error) {
	if err := b.errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	results := make([]types.Record, 0, b.capacity())
	selected := b.selectedSet()

	for _, record := range b.collection {
		if !matchesFilters(record, b.filters) {
			continue
		}

		results = append(results, project(record, selected))

		if b.limitReached(results) {
			break
		}
	}

	if b.orderBy != "" {
		sortRecords(results, b.orderBy, b.locale)
	}

	return results, nil
}

// String renders the query state in a SQL-like form for logs and debugging
func (b *Builder) String() string {
	var sb strings.Builder

	sb.WriteString("SELECT ")
	if len(b.selected) == 0 {
		sb.WriteString("*")
	} else {
		sb.WriteString(strings.Join(b.selected, ", "))
	}

	for i, p := range b.filters {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		fmt.Fprintf(&sb, "%s ~ /%s/", p.field, p.pattern.String())
	}

	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
	}

	if b.limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", b.limit)
	}

	return sb.String()
}

func (b *Builder) capacity() int {
	if b.limit > 0 && b.limit < len(b.collection) {
		return b.limit
	}
	return len(b.collection)
}

func (b *Builder) limitReached(results []types.Record) bool {
	return b.limit > 0 && len(results) == b.limit
}

func (b *Builder) selectedSet() map[string]struct{} {
	if len(b.selected) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(b.selected))
	for _, field := range b.selected {
		set[field] = struct{}{}
	}
	return set
}

// project copies the record, keeping only selected fields when there is a
// selection. Field order follows the record, not the selection.
func project(record types.Record, selected map[string]struct{}) types.Record {
	if selected == nil {
		return record.Clone()
	}

	out := make(types.Record, 0, len(selected))
	for _, f := range record {
		if _, ok := selected[f.Key]; ok {
			out = append(out, f)
		}
	}
	return out
}
