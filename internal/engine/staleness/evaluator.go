// Package staleness decides whether a build output must be rebuilt.
package staleness

import (
	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/core/ports"
)

// Input is anything with a timestamp for a configuration, typically a reference.
type Input interface {
	Timestamp(key domain.ConfigurationKey) (domain.Timestamp, error)
}

// Evaluator compares input timestamps against a target file.
type Evaluator struct {
	fs ports.FileSystem
}

// New creates an Evaluator.
func New(fs ports.FileSystem) *Evaluator {
	return &Evaluator{fs: fs}
}

// IsStale reports whether target is missing or any input is strictly newer than it.
// Inputs whose file is missing carry the infinite timestamp and always force a rebuild.
func (e *Evaluator) IsStale(target string, inputs []Input, key domain.ConfigurationKey) (bool, error) {
	mt, ok := e.fs.ModTime(target)
	if !ok {
		return true, nil
	}
	built := domain.At(mt)

	for _, in := range inputs {
		ts, err := in.Timestamp(key)
		if err != nil {
			return false, err
		}
		if ts.After(built) {
			return true, nil
		}
	}
	return false, nil
}

// FileTimestamp returns the timestamp of path, or the infinite timestamp when it does not exist.
func FileTimestamp(fs ports.FileSystem, path string) domain.Timestamp {
	if mt, ok := fs.ModTime(path); ok {
		return domain.At(mt)
	}
	return domain.Infinite()
}

// File is an Input backed by a single file, independent of configuration.
type File struct {
	FS   ports.FileSystem
	Path string
}

// Timestamp implements Input.
func (f File) Timestamp(domain.ConfigurationKey) (domain.Timestamp, error) {
	return FileTimestamp(f.FS, f.Path), nil
}
