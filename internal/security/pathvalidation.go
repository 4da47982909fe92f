// Package security holds the path checks applied before chart artifacts
// are written to disk.
package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

const maxFilenameLen = 128

// ValidatePathWithinDirectory reports an error when filePath, once
// cleaned, does not sit inside dir. The check is lexical so it works the
// same for the in-memory filesystem used in tests.
func ValidatePathWithinDirectory(filePath, dir string) error {
	absPath, err := filepath.Abs(filepath.Clean(filePath))
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	absDir, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return fmt.Errorf("resolve directory: %w", err)
	}

	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return fmt.Errorf("path is outside %s: %w", dir, err)
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path traversal detected: %s escapes %s", filePath, dir)
	}
	return nil
}

// SanitizeFilename maps an arbitrary artifact or run name to a safe base
// name: ASCII letters, digits, dot, underscore and dash survive, runs of
// anything else become one underscore. Empty results become "unknown".
func SanitizeFilename(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if b.Len() >= maxFilenameLen {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "unknown"
	}
	return out
}

// JoinWithin sanitizes name and joins it onto dir, rejecting results that
// would land outside dir.
func JoinWithin(dir, name string) (string, error) {
	p := filepath.Join(dir, SanitizeFilename(name))
	if err := ValidatePathWithinDirectory(p, dir); err != nil {
		return "", err
	}
	return p, nil
}
