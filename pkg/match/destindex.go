package match

import (
	"github.com/codesync/codesync/pkg/repo"
)

// A DestEntry holds the destination paths that share a basename. It has
// exactly two shapes: a Single candidate, or a Multi of two or more
// candidates in insertion order. Consumers switch on the shape.
type DestEntry interface {
	// Candidates returns the candidate paths in order.
	Candidates() []string
}

// Single is a destination entry with exactly one candidate.
type Single string

// Candidates returns the candidate paths in order.
func (e Single) Candidates() []string {
	return []string{string(e)}
}

// Multi is a destination entry with two or more candidates. It may shrink as
// candidates are consumed.
type Multi []string

// Candidates returns the candidate paths in order.
func (e Multi) Candidates() []string {
	return e
}

// DestIndex maps a bare filename to the destination paths carrying that
// name. Lookups are case-insensitive.
type DestIndex struct {
	entries map[string]DestEntry

	// order holds the folded keys in first-insertion order so that
	// enumerating the residual index is deterministic.
	order []string

	// count is the total number of candidate paths across all entries, not
	// the number of keys.
	count int
}

// NewDestIndex returns an empty index.
func NewDestIndex() *DestIndex {
	return &DestIndex{entries: map[string]DestEntry{}}
}

// BuildDestIndex indexes every path under its basename.
func BuildDestIndex(paths []string) *DestIndex {
	idx := NewDestIndex()
	for _, path := range paths {
		idx.Add(path)
	}
	return idx
}

// Add inserts path under its basename, escalating Single to Multi when the
// name is already taken.
func (idx *DestIndex) Add(path string) {
	key := repo.Fold(repo.Base(path))
	switch entry := idx.entries[key].(type) {
	case nil:
		idx.entries[key] = Single(path)
		idx.order = append(idx.order, key)
	case Single:
		idx.entries[key] = Multi{string(entry), path}
	case Multi:
		idx.entries[key] = append(entry, path)
	}
	idx.count++
}

// Lookup returns the entry for the given filename.
func (idx *DestIndex) Lookup(name string) (DestEntry, bool) {
	entry, ok := idx.entries[repo.Fold(name)]
	return entry, ok
}

// Remove drops the whole entry for the given filename, along with all of its
// candidates.
func (idx *DestIndex) Remove(name string) {
	key := repo.Fold(name)
	entry, ok := idx.entries[key]
	if !ok {
		return
	}
	idx.count -= len(entry.Candidates())
	delete(idx.entries, key)
}

// RemovePath drops a single candidate from the entry for the given filename.
// A Multi left with one candidate collapses to a Single, and an entry left
// with no candidates is dropped entirely.
func (idx *DestIndex) RemovePath(name, path string) {
	key := repo.Fold(name)
	switch entry := idx.entries[key].(type) {
	case Single:
		if repo.Equal(string(entry), path) {
			delete(idx.entries, key)
			idx.count--
		}
	case Multi:
		for i, candidate := range entry {
			if !repo.Equal(candidate, path) {
				continue
			}
			remaining := append(append(Multi{}, entry[:i]...), entry[i+1:]...)
			switch len(remaining) {
			case 0:
				delete(idx.entries, key)
			case 1:
				idx.entries[key] = Single(remaining[0])
			default:
				idx.entries[key] = remaining
			}
			idx.count--
			return
		}
	}
}

// Count returns the total number of candidate paths in the index.
func (idx *DestIndex) Count() int {
	return idx.count
}

// Remaining returns every candidate path left in the index, in insertion
// order.
func (idx *DestIndex) Remaining() []string {
	var paths []string
	for _, key := range idx.order {
		entry, ok := idx.entries[key]
		if !ok {
			continue
		}
		paths = append(paths, entry.Candidates()...)
	}
	return paths
}
