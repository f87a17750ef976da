// Package registry answers shared registry membership from a precomputed
// index, either in process or from an isolated child process.
package registry

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/refgraph/internal/adapters/fs"
	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/core/ports"
	"go.trai.ch/zerr"
)

// SnapshotVersion is the format version written by Index.Save.
const SnapshotVersion = 1

// Index maps case-folded file names of registry members to their content fingerprints.
type Index struct {
	Root    string
	members map[string][]uint64
}

// snapshotFile is the on-disk form of an Index.
type snapshotFile struct {
	Version int                 `json:"version"`
	Root    string              `json:"root"`
	Members map[string][]string `json:"members"`
}

// NewIndex creates an empty index.
func NewIndex(root string) *Index {
	return &Index{Root: root, members: make(map[string][]uint64)}
}

// BuildIndex fingerprints every module under dir.
func BuildIndex(walker *fs.Walker, hasher ports.Hasher, dir string) (*Index, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid registry directory"), "dir", dir)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, zerr.With(zerr.Wrap(domain.ErrRegistryUnavailable, "registry directory does not exist"), "dir", abs)
	}

	idx := NewIndex(abs)
	for path := range walker.WalkFiles(abs, domain.BinaryExts) {
		h, err := hasher.HashFile(path)
		if err != nil {
			return nil, err
		}
		idx.Add(filepath.Base(path), h)
	}
	return idx, nil
}

// Add records a member. Adding the same fingerprint twice has no effect.
func (x *Index) Add(name string, fingerprint uint64) {
	key := strings.ToLower(name)
	if !slices.Contains(x.members[key], fingerprint) {
		x.members[key] = append(x.members[key], fingerprint)
	}
}

// Len returns the number of distinct member names.
func (x *Index) Len() int {
	return len(x.members)
}

// Match reports whether a file named name with the given fingerprint is a member.
func (x *Index) Match(name string, fingerprint uint64) bool {
	return slices.Contains(x.members[strings.ToLower(name)], fingerprint)
}

// Knows reports whether any member is named name, ignoring case.
func (x *Index) Knows(name string) bool {
	_, ok := x.members[strings.ToLower(name)]
	return ok
}

// Save writes the index to path as JSON.
func (x *Index) Save(path string) error {
	file := snapshotFile{
		Version: SnapshotVersion,
		Root:    x.Root,
		Members: make(map[string][]string, len(x.members)),
	}
	for name, fps := range x.members {
		hex := make([]string, 0, len(fps))
		for _, fp := range fps {
			hex = append(hex, strconv.FormatUint(fp, 16))
		}
		slices.Sort(hex)
		file.Members[name] = hex
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal registry snapshot")
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory for registry snapshot"), "path", path)
	}
	//nolint:gosec // Path is provided by the caller
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write registry snapshot"), "path", path)
	}
	return nil
}

// LoadSnapshot reads an index written by Save.
func LoadSnapshot(path string) (*Index, error) {
	//nolint:gosec // Path comes from the workspace file or the command line
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, zerr.With(zerr.Wrap(domain.ErrRegistryUnavailable, "registry snapshot does not exist"), "path", path)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read registry snapshot"), "path", path)
	}

	var file snapshotFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrRegistryUnavailable, err), "failed to unmarshal registry snapshot"), "path", path)
	}
	if file.Version != SnapshotVersion {
		err := zerr.Wrap(domain.ErrRegistryUnavailable, "unsupported registry snapshot version")
		return nil, zerr.With(zerr.With(err, "version", file.Version), "path", path)
	}

	idx := NewIndex(file.Root)
	for name, fps := range file.Members {
		for _, hex := range fps {
			fp, err := strconv.ParseUint(hex, 16, 64)
			if err != nil {
				err = zerr.Wrap(errors.Join(domain.ErrRegistryUnavailable, err), "invalid fingerprint in registry snapshot")
				return nil, zerr.With(zerr.With(err, "member", name), "path", path)
			}
			idx.Add(name, fp)
		}
	}
	return idx, nil
}
