package repo

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/codesync/codesync/pkg/errors"
)

// Mocked out for unit testing.
var fs = afero.NewOsFs()

// DefaultExcludedDirs are the directory names that are never enumerated.
// They hold build output and editor state rather than code.
var DefaultExcludedDirs = []string{"obj", "bin", ".vs", ".vscode", ".git"}

// Enumerate walks root and returns the relative paths of every file under
// it, skipping any directory whose name matches excludedDirs. Name matching
// is case-insensitive. Entries that can't be read are skipped rather than
// failing the walk, so a single unreadable directory doesn't abort an
// analysis.
//
// The order of the returned paths is unspecified, but deterministic for a
// given tree.
func Enumerate(root string, excludedDirs []string) ([]string, error) {
	isDir, err := afero.DirExists(fs, root)
	if err != nil {
		return nil, errors.WithContext(err, "stat root")
	}
	if !isDir {
		return nil, errors.FileNotFound{Path: root}
	}

	excluded := map[string]bool{}
	for _, name := range excludedDirs {
		excluded[strings.ToLower(name)] = true
	}

	var paths []string
	err = afero.Walk(fs, root, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			if fi != nil && fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if fi.IsDir() {
			if path != root && excluded[strings.ToLower(fi.Name())] {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		paths = append(paths, Normalize(rel))
		return nil
	})
	if err != nil {
		return nil, errors.WithContext(err, "walk")
	}
	return paths, nil
}
