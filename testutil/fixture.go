// Package testutil provides fixture collections and assertion helpers for tests.
//
// Fixtures are decoded fresh on every call, so a test may modify what it gets
// without affecting other tests.
package testutil

import (
	"bytes"
	_ "embed"
	"testing"

	"github.com/arthur-debert/fluentsql/types"
)

//go:embed testdata/people.json
var peopleJSON []byte

// PeopleData provides typed access to the people fixture
type PeopleData struct {
	// Records holds every fixture record in file order
	Records []types.Record

	Francisco types.Record // id 0 - Developer
	Maria     types.Record // id 1 - Developer
	Joao      types.Record // id 2 - Manager, inactive
	Ana       types.Record // id 3 - Designer, only record with an email
	Erica     types.Record // id 4 - Developer, accented name
	Bruno     types.Record // id 5 - "Senior Developer", lowercase name, fractional age
	Carla     types.Record // id 6 - Manager, no age field
	DevOpsBot types.Record // id 7 - dot in name, null active

	// ByName indexes the records by their name field
	ByName map[string]types.Record
}

// LoadPeople decodes the people fixture
func LoadPeople(t testing.TB) *PeopleData {
	t.Helper()

	records, err := types.DecodeJSON(bytes.NewReader(peopleJSON))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	if len(records) != 8 {
		t.Fatalf("expected 8 fixture records, got %d", len(records))
	}

	people := &PeopleData{
		Records: records,
		ByName:  make(map[string]types.Record, len(records)),
	}
	for _, r := range records {
		if name, ok := r.Get("name"); ok {
			people.ByName[name.(string)] = r
		}
	}

	people.Francisco = records[0]
	people.Maria = records[1]
	people.Joao = records[2]
	people.Ana = records[3]
	people.Erica = records[4]
	people.Bruno = records[5]
	people.Carla = records[6]
	people.DevOpsBot = records[7]

	return people
}

// Team returns the three-record collection used by the end-to-end scenarios
func Team() []types.Record {
	return []types.Record{
		types.R("id", 0, "name", "Francisco", "category", "Developer"),
		types.R("id", 1, "name", "Maria", "category", "Developer"),
		types.R("id", 2, "name", "Joao", "category", "Manager"),
	}
}
