// Package host is the boundary to the runtime that performs file I/O on the
// panel's behalf.
package host

import (
	"context"
	"fmt"
	"strings"
)

// Executor performs the file operations the persistence layer needs.
// ReadFile reports found=false, not an error, when there is no data yet.
type Executor interface {
	ResolveDataDirectory(ctx context.Context) (string, error)
	ReadFile(ctx context.Context, path string) (content string, found bool, err error)
	WriteFile(ctx context.Context, path, content string) error
	CopyFile(ctx context.Context, src, dst string) error
}

// Error is a host-side failure with a human-readable reason. CallID matches
// the bridge log lines of the failed call.
type Error struct {
	Op     string `json:"op"`
	Path   string `json:"path,omitempty"`
	Reason string `json:"reason"`
	CallID string `json:"callId,omitempty"`
	Err    error  `json:"-"`
}

// Error formats host failures for logs and UI.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Path == "" {
		return fmt.Sprintf("host %s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("host %s %s: %s", e.Op, e.Path, e.Reason)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

const resultSuccess = "success"

// IsAbsent reports whether a raw bridge result means "no data": empty,
// "null", "undefined" or an empty object literal.
func IsAbsent(result string) bool {
	switch strings.TrimSpace(result) {
	case "", "null", "undefined", "{}":
		return true
	default:
		return false
	}
}
