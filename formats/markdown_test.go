package formats

import (
	"strings"
	"testing"

	"github.com/arthur-debert/fluentsql/types"
)

func TestMarkdownRender(t *testing.T) {
	tests := []struct {
		name    string
		records []types.Record
		want    string
	}{
		{
			name: "simple table",
			records: []types.Record{
				types.R("name", "Maria", "category", "Developer"),
			},
			want: "| name | category |\n| --- | --- |\n| Maria | Developer |\n",
		},
		{
			name: "missing cell",
			records: []types.Record{
				types.R("name", "Ana", "email", "ana@example.com"),
				types.R("name", "Carla"),
			},
			want: "| name | email |\n| --- | --- |\n| Ana | ana@example.com |\n| Carla |  |\n",
		},
		{
			name: "pipes escaped",
			records: []types.Record{
				types.R("pattern", "a|b"),
			},
			want: "| pattern |\n| --- |\n| a\\|b |\n",
		},
		{
			name:    "no records",
			records: []types.Record{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			if err := Markdown.Render(&out, tt.records); err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("Render() = %q, want %q", out.String(), tt.want)
			}
		})
	}
}
