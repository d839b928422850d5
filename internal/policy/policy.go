// Package policy holds the security boundary for workspace resolution.
// The boundary is an explicit value passed into root resolution, never
// read from the process environment inside the engine.
package policy

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideBoundary is returned when a requested root escapes the
// permitted directory.
var ErrOutsideBoundary = errors.New("path is outside the permitted boundary")

// Policy restricts which workspace roots may be audited.
type Policy struct {
	// Boundary is the directory all resolved roots must live under.
	Boundary string
}

// Default returns a policy bounded by the user's home directory.
func Default() (Policy, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Policy{}, fmt.Errorf("resolving home directory: %w", err)
	}
	return Policy{Boundary: home}, nil
}

// ResolveRoot resolves path to an absolute workspace root and enforces
// the boundary. The root must exist, be a directory, and lie within the
// boundary; violations are fatal before any provider runs.
func (p Policy) ResolveRoot(path string) (string, error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	abs = filepath.Clean(abs)

	if p.Boundary != "" && !within(abs, filepath.Clean(p.Boundary)) {
		return "", fmt.Errorf("%s: %w", abs, ErrOutsideBoundary)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("workspace root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("workspace root %s is not a directory", abs)
	}
	return abs, nil
}

// within reports whether path is boundary or a descendant of it.
func within(path, boundary string) bool {
	if path == boundary {
		return true
	}
	return strings.HasPrefix(path, boundary+string(filepath.Separator))
}
