package domain

import (
	"path/filepath"
	"unique"
)

// PathKey is an interned, case-insensitive identity for a file path.
// Paths are cleaned before folding, so "a/./B.proj" and "A/b.proj" share a key.
type PathKey struct {
	h unique.Handle[string]
}

// NewPathKey creates the key for path.
func NewPathKey(path string) PathKey {
	return PathKey{h: unique.Make(foldCase(filepath.Clean(path)))}
}

// String returns the folded path. It is meant for diagnostics, not for file access.
func (k PathKey) String() string {
	var zero unique.Handle[string]
	if k.h == zero {
		return ""
	}
	return k.h.Value()
}

// SamePath reports whether a and b denote the same path, ignoring case.
func SamePath(a, b string) bool {
	return NewPathKey(a) == NewPathKey(b)
}
