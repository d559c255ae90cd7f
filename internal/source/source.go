// Package source loads collections from JSON or YAML files.
//
// Loading never writes to disk. When "<path>.lock" exists, a shared lock is
// held on it while the file is read, so a writer that takes the exclusive lock
// on the same path is never observed halfway through a write. Without a lock
// file the collection is read directly and no lock file is created.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/fluentsql/types"
	"github.com/gofrs/flock"
)

// Supported input formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	// ErrLockTimeout is returned when the shared lock could not be acquired in time
	ErrLockTimeout = errors.New("could not acquire file lock")

	// ErrUnknownFormat is returned for input formats other than json and yaml
	ErrUnknownFormat = errors.New("unknown input format")
)

// LockTimeout bounds how long Load waits for the shared lock
var LockTimeout = 3 * time.Second

const lockRetryInterval = 100 * time.Millisecond

// Load reads the collection stored at path. The format follows the file
// extension: .yaml and .yml are YAML, anything else is JSON.
// An empty file is an empty collection.
func Load(ctx context.Context, path string) ([]types.Record, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read collection: %w", err)
	}

	lockPath := path + ".lock"
	if _, err := os.Stat(lockPath); err == nil {
		unlock, err := sharedLock(ctx, lockPath)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection: %w", err)
	}

	records, err := Decode(bytes.NewReader(data), FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// sharedLock takes a shared lock on an existing lock file, waiting at most
// LockTimeout for a writer to release it
func sharedLock(ctx context.Context, lockPath string) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, LockTimeout)
	defer cancel()

	fileLock := flock.New(lockPath)
	locked, err := fileLock.TryRLockContext(ctx, lockRetryInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, lockPath)
		}
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLockTimeout, lockPath)
	}
	return func() { _ = fileLock.Unlock() }, nil
}

// Decode reads a collection in the given format from r
func Decode(r io.Reader, format string) ([]types.Record, error) {
	switch strings.ToLower(format) {
	case FormatJSON, "":
		return types.DecodeJSON(r)
	case FormatYAML, "yml":
		return types.DecodeYAML(r)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// FormatFor returns the input format implied by a file name
func FormatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}
