// Package formats renders query results for output.
//
// Formats are kept in a registry so the CLI can look them up by name. The
// built-in formats (json, yaml, table, markdown) register themselves at init.
package formats

import (
	"fmt"
	"io"
	"sort"

	"github.com/arthur-debert/fluentsql/types"
)

// RecordFormat defines how a list of records is written out
type RecordFormat struct {
	// Name is the format identifier (alphanumeric, dashes, underscores, lowercase)
	Name string

	// Render writes the records to w
	Render func(w io.Writer, records []types.Record) error
}

// registry holds all available record formats
var registry = make(map[string]*RecordFormat)

// Register adds a new record format to the registry
func Register(format *RecordFormat) error {
	// Validate format name (alphanumeric, dashes, underscores, lowercase)
	if !isValidFormatName(format.Name) {
		return fmt.Errorf("invalid format name %q: must be lowercase alphanumeric with dashes and underscores only", format.Name)
	}

	if format.Render == nil {
		return fmt.Errorf("format %q has no renderer", format.Name)
	}

	// Check if format already exists
	if _, exists := registry[format.Name]; exists {
		return fmt.Errorf("format %q already registered", format.Name)
	}

	registry[format.Name] = format
	return nil
}

// Get returns a record format by name
func Get(name string) (*RecordFormat, error) {
	format, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("unknown format %q (available: %v)", name, List())
	}
	return format, nil
}

// List returns all registered format names, sorted
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// mustRegister is used by the built-in formats at init
func mustRegister(format *RecordFormat) {
	if err := Register(format); err != nil {
		panic(fmt.Sprintf("failed to register %s format: %v", format.Name, err))
	}
}

// isValidFormatName checks if a format name is valid
func isValidFormatName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}
