package fluentsql

import (
	"testing"

	"github.com/arthur-debert/fluentsql/types"
	"golang.org/x/text/language"
)

func names(records []types.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i], _ = fieldString(r, "name")
	}
	return out
}

func TestSortRecordsLocale(t *testing.T) {
	tests := []struct {
		name   string
		locale language.Tag
		want   []string
	}{
		// English sorts ä with a; Swedish places it after z
		{name: "english", locale: language.English, want: []string{"äpple", "banan", "zebra"}},
		{name: "swedish", locale: language.Swedish, want: []string{"banan", "zebra", "äpple"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []types.Record{
				types.R("name", "zebra"),
				types.R("name", "äpple"),
				types.R("name", "banan"),
			}

			sortRecords(records, "name", tt.locale)

			got := names(records)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("sorted names = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSortRecordsIgnoresCaseFirst(t *testing.T) {
	records := []types.Record{
		types.R("name", "Banana"),
		types.R("name", "apple"),
		types.R("name", "Cherry"),
	}

	sortRecords(records, "name", language.English)

	got := names(records)
	want := []string{"apple", "Banana", "Cherry"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted names = %v, want %v", got, want)
		}
	}
}

func TestSortRecordsStableForTies(t *testing.T) {
	records := []types.Record{
		types.R("id", 1, "group", "b"),
		types.R("id", 2, "group", "a"),
		types.R("id", 3, "group", "b"),
		types.R("id", 4, "group", "a"),
	}

	sortRecords(records, "group", language.English)

	var ids []interface{}
	for _, r := range records {
		v, _ := r.Get("id")
		ids = append(ids, v)
	}
	want := []interface{}{2, 4, 1, 3}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids = %v, want %v", ids, want)
		}
	}
}

func TestWithLocale(t *testing.T) {
	collection := []types.Record{
		types.R("name", "äpple"),
		types.R("name", "zebra"),
	}

	got, err := For(collection, WithLocale(language.Swedish)).OrderBy("name").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if n := names(got); n[0] != "zebra" || n[1] != "äpple" {
		t.Errorf("sorted names = %v, want [zebra äpple]", n)
	}
}
