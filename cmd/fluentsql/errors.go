package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/fluentsql/fluentsql"
	"github.com/arthur-debert/fluentsql/internal/source"
)

// CLIError represents a user-facing error with context and suggestions
type CLIError struct {
	Operation   string // what was being attempted
	Cause       string // main reason for failure
	Details     string // technical details
	Suggestions []string
	Underlying  error
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var msg strings.Builder

	if e.Operation != "" {
		msg.WriteString(fmt.Sprintf("Failed to %s", e.Operation))
	} else {
		msg.WriteString("Operation failed")
	}

	if e.Cause != "" {
		msg.WriteString(fmt.Sprintf(": %s", e.Cause))
	}

	if e.Details != "" {
		msg.WriteString(fmt.Sprintf(" (%s)", e.Details))
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return msg.String()
}

// Unwrap returns the underlying error for error chain compatibility
func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// NewValidationError creates an error for an invalid flag value
func NewValidationError(operation, field, value string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("invalid %s: %q", field, value),
		Suggestions: suggestions,
	}
}

// NewConfigError creates an error for configuration issues
func NewConfigError(operation, issue string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("configuration error: %s", issue),
		Suggestions: suggestions,
	}
}

// NewSourceError creates an error for a collection that could not be loaded
func NewSourceError(operation, path string, underlying error) *CLIError {
	cause := "could not read collection"
	var suggestions []string

	switch {
	case errors.Is(underlying, os.ErrNotExist):
		cause = fmt.Sprintf("collection file %q not found", path)
		suggestions = append(suggestions, "Check the file path", "Use - to read from stdin")
	case errors.Is(underlying, os.ErrPermission):
		cause = "insufficient permissions to read collection"
		suggestions = append(suggestions, CommonSuggestions.CheckPerms)
	case errors.Is(underlying, source.ErrLockTimeout):
		cause = "collection is currently locked by another process"
		suggestions = append(suggestions, "Retry once the writer has finished")
	case errors.Is(underlying, source.ErrUnknownFormat):
		cause = "unknown input format"
		suggestions = append(suggestions, "Use --input-format json or --input-format yaml")
	default:
		suggestions = append(suggestions, "Check that the input is an array of objects")
	}

	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Details:     underlying.Error(),
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// NewFilterError creates an error for --where flags that cannot be used
func NewFilterError(operation, filter, issue string, underlying error) *CLIError {
	return &CLIError{
		Operation: operation,
		Cause:     fmt.Sprintf("invalid filter %q: %s", filter, issue),
		Suggestions: []string{
			"Use format: --where field=pattern",
			"Patterns are regular expressions; escape metacharacters to match them literally",
			"Repeat --where to require several conditions",
		},
		Underlying: underlying,
	}
}

// WrapQueryError converts a Build error into a CLIError
func WrapQueryError(operation string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fluentsql.ErrInvalidPattern) {
		return &CLIError{
			Operation:   operation,
			Cause:       "invalid where pattern",
			Details:     strings.TrimSpace(err.Error()),
			Suggestions: []string{"Patterns use RE2 syntax, see https://github.com/google/re2/wiki/Syntax"},
			Underlying:  err,
		}
	}

	return &CLIError{Operation: operation, Cause: err.Error(), Underlying: err}
}

// Common suggestions
var CommonSuggestions = struct {
	CheckConfig string
	CheckFlags  string
	CheckPerms  string
	RunHelp     string
}{
	CheckConfig: "Check your configuration file or environment variables",
	CheckFlags:  "Check command line flags and their values",
	CheckPerms:  "Check file permissions and directory access",
	RunHelp:     "Run command with --help for usage information",
}
