package types

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestRecordJSONKeepsOrder(t *testing.T) {
	r := R("name", "Maria", "id", int64(1), "active", true, "score", 9.5, "manager", nil)

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"name":"Maria","id":1,"active":true,"score":9.5,"manager":null}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var back Record
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(r, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordJSONNonFiniteFloats(t *testing.T) {
	records, err := DecodeYAML(strings.NewReader("- score: .nan\n  max: .inf\n  min: -.inf\n  ratio: 0.5\n"))
	if err != nil {
		t.Fatalf("DecodeYAML() error = %v", err)
	}
	if v, _ := records[0].Get("score"); !math.IsNaN(v.(float64)) {
		t.Fatalf("score = %v, want NaN", v)
	}

	data, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `[{"score":"NaN","max":"Infinity","min":"-Infinity","ratio":0.5}]`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestRecordUnmarshalJSONRejectsNonObject(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`["a"]`), &r); err == nil {
		t.Error("expected error for JSON array")
	}
}

func TestRecordYAMLKeepsOrder(t *testing.T) {
	r := R("zeta", "last-alphabetically", "alpha", int64(2), "flag", false)

	data, err := yaml.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := "zeta: last-alphabetically\nalpha: 2\nflag: false\n"
	if string(data) != want {
		t.Errorf("Marshal() = %q, want %q", data, want)
	}

	var back Record
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(r, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeCollections(t *testing.T) {
	want := []Record{
		R("id", int64(0), "name", "Francisco"),
		R("id", int64(1), "name", "Maria"),
	}

	tests := []struct {
		name   string
		decode func(string) ([]Record, error)
		input  string
		want   []Record
	}{
		{
			name:   "json",
			decode: func(s string) ([]Record, error) { return DecodeJSON(strings.NewReader(s)) },
			input:  `[{"id":0,"name":"Francisco"},{"id":1,"name":"Maria"}]`,
			want:   want,
		},
		{
			name:   "yaml",
			decode: func(s string) ([]Record, error) { return DecodeYAML(strings.NewReader(s)) },
			input:  "- id: 0\n  name: Francisco\n- id: 1\n  name: Maria\n",
			want:   want,
		},
		{
			name:   "empty json",
			decode: func(s string) ([]Record, error) { return DecodeJSON(strings.NewReader(s)) },
			input:  "",
			want:   []Record{},
		},
		{
			name:   "empty yaml",
			decode: func(s string) ([]Record, error) { return DecodeYAML(strings.NewReader(s)) },
			input:  "",
			want:   []Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.decode(tt.input)
			if err != nil {
				t.Fatalf("decode error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("decode mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeJSONInvalid(t *testing.T) {
	if _, err := DecodeJSON(strings.NewReader(`{"not":"an array"}`)); err == nil {
		t.Error("expected error for top-level object")
	}
}
