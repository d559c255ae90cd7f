package fluentsql

import "github.com/arthur-debert/fluentsql/internal/matching"

// ErrInvalidPattern is wrapped by the error Build returns when a Where
// condition could not be compiled into a pattern
var ErrInvalidPattern = matching.ErrInvalidPattern
