package ports

import "time"

// FileSystem defines the file queries the resolution engine needs.
//
//go:generate mockgen -destination=mocks/filesystem_mock.go -package=mocks -source=filesystem.go
type FileSystem interface {
	// Exists reports whether a regular file exists at path.
	Exists(path string) bool

	// ModTime returns the last-modified time of the file at path.
	// The boolean is false when the file does not exist.
	ModTime(path string) (time.Time, bool)

	// ListFiles returns the names of the regular files in dir.
	// A missing directory yields an empty list.
	ListFiles(dir string) ([]string, error)

	// Glob returns the absolute paths of files in dir whose names match pattern,
	// ignoring case. The result is sorted.
	Glob(dir, pattern string) ([]string, error)
}
