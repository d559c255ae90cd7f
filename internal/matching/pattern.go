// Package matching compiles the patterns used by where-filters.
//
// Compiled patterns are cached process-wide, so building many queries with the
// same literal conditions compiles each source only once.
package matching

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
)

// ErrInvalidPattern is returned when a pattern source does not compile
var ErrInvalidPattern = errors.New("invalid pattern")

// CachedCompiler compiles patterns once and reuses them afterwards.
// It is safe for concurrent use.
type CachedCompiler struct {
	mu       sync.RWMutex
	patterns map[string]*regexp.Regexp
}

// NewCachedCompiler creates an empty pattern cache
func NewCachedCompiler() *CachedCompiler {
	return &CachedCompiler{
		patterns: make(map[string]*regexp.Regexp),
	}
}

// Compile returns the cached pattern for source, compiling it on first use
func (c *CachedCompiler) Compile(source string) (*regexp.Regexp, error) {
	c.mu.RLock()
	if compiled, ok := c.patterns[source]; ok {
		c.mu.RUnlock()
		return compiled, nil
	}
	c.mu.RUnlock()

	compiled, err := regexp.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, source, err)
	}

	c.mu.Lock()
	c.patterns[source] = compiled
	c.mu.Unlock()

	return compiled, nil
}

// Len returns the number of cached patterns
func (c *CachedCompiler) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.patterns)
}

var defaultCompiler = NewCachedCompiler()

// Compile compiles source through the shared process-wide cache
func Compile(source string) (*regexp.Regexp, error) {
	return defaultCompiler.Compile(source)
}
