package repo

import (
	"path/filepath"
	"strings"
)

// Paths inside a repository are stored relative to the repository root.
// Plans may have been written on a different operating system, so stored
// paths can use either separator. All comparisons are case-insensitive and
// separator-insensitive over the component sequence.

// Normalize converts path to forward slashes.
func Normalize(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), "\\", "/")
}

// Base returns the last component of path. The extraction is purely lexical.
func Base(path string) string {
	normalized := Normalize(path)
	if i := strings.LastIndex(normalized, "/"); i >= 0 {
		return normalized[i+1:]
	}
	return normalized
}

// Components splits path into its components.
func Components(path string) []string {
	return strings.Split(Normalize(path), "/")
}

// Equal reports whether two relative paths refer to the same file.
func Equal(a, b string) bool {
	return strings.EqualFold(Normalize(a), Normalize(b))
}

// Fold returns the form of path used as a map key, so that lookups are
// case-insensitive.
func Fold(path string) string {
	return strings.ToLower(Normalize(path))
}

// FromSlash converts a stored relative path to the host separator so it can
// be joined with a repository root.
func FromSlash(path string) string {
	return filepath.FromSlash(Normalize(path))
}
