package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/fluentsql/types"
	"github.com/gofrs/flock"
	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	want := []types.Record{
		types.R("id", int64(0), "name", "Francisco", "category", "Developer"),
		types.R("id", int64(1), "name", "Maria", "category", "Developer"),
	}

	tests := []struct {
		name    string
		file    string
		content string
		want    []types.Record
	}{
		{
			name:    "json",
			file:    "people.json",
			content: `[{"id":0,"name":"Francisco","category":"Developer"},{"id":1,"name":"Maria","category":"Developer"}]`,
			want:    want,
		},
		{
			name:    "yaml",
			file:    "people.yaml",
			content: "- id: 0\n  name: Francisco\n  category: Developer\n- id: 1\n  name: Maria\n  category: Developer\n",
			want:    want,
		},
		{
			name:    "yml extension",
			file:    "people.yml",
			content: "- id: 0\n  name: Francisco\n  category: Developer\n- id: 1\n  name: Maria\n  category: Developer\n",
			want:    want,
		},
		{
			name:    "unknown extension read as json",
			file:    "people.data",
			content: `[{"id":0,"name":"Francisco","category":"Developer"},{"id":1,"name":"Maria","category":"Developer"}]`,
			want:    want,
		},
		{
			name:    "empty file",
			file:    "empty.json",
			content: "",
			want:    []types.Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)

			got, err := Load(context.Background(), path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := Load(context.Background(), path)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadInvalidContent(t *testing.T) {
	path := writeFile(t, "broken.json", `{"not": "a list"}`)

	_, err := Load(context.Background(), path)
	if err == nil {
		t.Fatal("expected error for a top-level object")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name the file", err)
	}
}

func TestLoadLeavesDirectoryUnchanged(t *testing.T) {
	path := writeFile(t, "people.json", `[{"name":"Maria"}]`)
	dir := filepath.Dir(path)

	if _, err := Load(context.Background(), path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := Load(context.Background(), filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load() error = %v, want os.ErrNotExist", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to list directory: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if diff := cmp.Diff([]string{"people.json"}, names); diff != "" {
		t.Errorf("directory changed (-want +got):\n%s", diff)
	}
}

func TestLoadReadOnlyDirectory(t *testing.T) {
	path := writeFile(t, "people.json", `[{"name":"Maria"}]`)
	dir := filepath.Dir(path)

	if err := os.Chmod(dir, 0555); err != nil {
		t.Fatalf("failed to make directory read-only: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0755) })

	got, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Load() returned %d records, want 1", len(got))
	}
}

func TestLoadWaitsForWriter(t *testing.T) {
	path := writeFile(t, "people.json", `[]`)

	writer := flock.New(path + ".lock")
	if err := writer.Lock(); err != nil {
		t.Fatalf("failed to take writer lock: %v", err)
	}
	defer func() { _ = writer.Unlock() }()

	previous := LockTimeout
	LockTimeout = 250 * time.Millisecond
	defer func() { LockTimeout = previous }()

	_, err := Load(context.Background(), path)
	if !errors.Is(err, ErrLockTimeout) {
		t.Errorf("Load() error = %v, want ErrLockTimeout", err)
	}
}

func TestLoadAllowsConcurrentReaders(t *testing.T) {
	path := writeFile(t, "people.json", `[{"name":"Maria"}]`)

	reader := flock.New(path + ".lock")
	if err := reader.RLock(); err != nil {
		t.Fatalf("failed to take reader lock: %v", err)
	}
	defer func() { _ = reader.Unlock() }()

	got, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("Load() returned %d records, want 1", len(got))
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		input   string
		wantLen int
		wantErr error
	}{
		{name: "json", format: "json", input: `[{"a":1}]`, wantLen: 1},
		{name: "default is json", format: "", input: `[{"a":1},{"a":2}]`, wantLen: 2},
		{name: "yaml", format: "yaml", input: "- a: 1\n", wantLen: 1},
		{name: "yml alias", format: "YML", input: "- a: 1\n", wantLen: 1},
		{name: "unknown", format: "csv", input: "a\n1\n", wantErr: ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.input), tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Decode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("Decode() returned %d records, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]string{
		"people.json": FormatJSON,
		"people.YAML": FormatYAML,
		"people.yml":  FormatYAML,
		"people":      FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFor(path); got != want {
			t.Errorf("FormatFor(%q) = %q, want %q", path, got, want)
		}
	}
}
