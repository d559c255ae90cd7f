package testutil

import (
	"testing"

	"github.com/arthur-debert/fluentsql/types"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// AssertRecordCount checks that the slice contains the expected number of records
func AssertRecordCount(t testing.TB, records []types.Record, expected int, context ...string) {
	t.Helper()
	if len(records) != expected {
		ctx := ""
		if len(context) > 0 {
			ctx = " " + context[0]
		}
		t.Errorf("expected %d records%s, got %d", expected, ctx, len(records))
	}
}

// AssertRecords compares records field by field, including field order
func AssertRecords(t testing.TB, want, got []types.Record) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

// AssertFieldValues checks the values of field across records, in order.
// Records without the field contribute nil.
func AssertFieldValues(t testing.TB, records []types.Record, field string, want ...interface{}) {
	t.Helper()
	got := FieldValues(records, field)
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("%s values mismatch (-want +got):\n%s", field, diff)
	}
}

// AssertOnlyFields verifies that no record holds a field outside fields
func AssertOnlyFields(t testing.TB, records []types.Record, fields ...string) {
	t.Helper()
	allowed := make(map[string]bool, len(fields))
	for _, f := range fields {
		allowed[f] = true
	}
	for i, r := range records {
		for _, key := range r.Keys() {
			if !allowed[key] {
				t.Errorf("record %d has unexpected field %q", i, key)
			}
		}
	}
}

// FieldValues extracts the values of field across records
func FieldValues(records []types.Record, field string) []interface{} {
	values := make([]interface{}, len(records))
	for i, r := range records {
		values[i], _ = r.Get(field)
	}
	return values
}
