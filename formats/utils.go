package formats

import "github.com/arthur-debert/fluentsql/types"

// columns returns the union of record keys in first-seen order
func columns(records []types.Record) []string {
	var cols []string
	seen := make(map[string]bool)
	for _, r := range records {
		for _, key := range r.Keys() {
			if !seen[key] {
				seen[key] = true
				cols = append(cols, key)
			}
		}
	}
	return cols
}

// cells returns the record's values for cols as types.Text renders them, so
// a cell shows the text filters match against. Missing fields are empty.
func cells(record types.Record, cols []string) []string {
	out := make([]string, len(cols))
	for i, col := range cols {
		if value, ok := record.Get(col); ok {
			out[i] = types.Text(value)
		}
	}
	return out
}
