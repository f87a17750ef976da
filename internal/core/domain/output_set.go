package domain

import (
	"iter"
	"slices"
	"strings"
)

// OutputFile is one entry of an OutputFileSet.
type OutputFile struct {
	// Path is the absolute path of the file as first inserted.
	Path string
	// Rel is the path relative to the consuming output directory.
	Rel string
}

// OutputFileSet maps absolute file paths to output-relative paths.
// Keys are case-insensitive and the first insertion for a key wins.
type OutputFileSet struct {
	files map[PathKey]OutputFile
}

// NewOutputFileSet creates an empty set.
func NewOutputFileSet() *OutputFileSet {
	return &OutputFileSet{files: make(map[PathKey]OutputFile)}
}

// Add inserts path with its relative name. It reports whether the set changed;
// adding a path that is already present, in any case, is a no-op.
func (s *OutputFileSet) Add(path, rel string) bool {
	key := NewPathKey(path)
	if _, ok := s.files[key]; ok {
		return false
	}
	s.files[key] = OutputFile{Path: path, Rel: rel}
	return true
}

// Merge adds every entry of other, keeping existing entries on collision.
func (s *OutputFileSet) Merge(other *OutputFileSet) {
	if other == nil {
		return
	}
	for _, f := range other.files {
		s.Add(f.Path, f.Rel)
	}
}

// Contains reports whether path is in the set, ignoring case.
func (s *OutputFileSet) Contains(path string) bool {
	_, ok := s.files[NewPathKey(path)]
	return ok
}

// Get returns the entry for path.
func (s *OutputFileSet) Get(path string) (OutputFile, bool) {
	f, ok := s.files[NewPathKey(path)]
	return f, ok
}

// Len returns the number of files in the set.
func (s *OutputFileSet) Len() int {
	return len(s.files)
}

// All yields the entries sorted by relative path, then by absolute path.
func (s *OutputFileSet) All() iter.Seq[OutputFile] {
	entries := make([]OutputFile, 0, len(s.files))
	for _, f := range s.files {
		entries = append(entries, f)
	}
	slices.SortFunc(entries, func(a, b OutputFile) int {
		if c := strings.Compare(a.Rel, b.Rel); c != 0 {
			return c
		}
		return strings.Compare(a.Path, b.Path)
	})
	return slices.Values(entries)
}
