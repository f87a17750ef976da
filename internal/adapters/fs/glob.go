package fs

import (
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/zerr"
)

// Glob returns the files in dir whose names match pattern, ignoring case.
// Matching is done per name with filepath.Match, so the pattern never spans directories.
func (f *FileSystem) Glob(dir, pattern string) ([]string, error) {
	folded := strings.ToLower(pattern)
	if _, err := filepath.Match(folded, ""); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid file pattern"), "pattern", pattern)
	}

	names, err := f.ListFiles(dir)
	if err != nil {
		return nil, err
	}

	unique := make(map[string]bool)
	for _, name := range names {
		if ok, _ := filepath.Match(folded, strings.ToLower(name)); ok {
			unique[filepath.Join(dir, name)] = true
		}
	}

	result := make([]string, 0, len(unique))
	for path := range unique {
		result = append(result, path)
	}
	sort.Strings(result)
	return result, nil
}
