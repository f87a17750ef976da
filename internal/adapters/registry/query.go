package registry

import (
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/core/ports"
	"go.trai.ch/zerr"
)

// IndexQuery answers membership in process from an Index.
type IndexQuery struct {
	index  *Index
	hasher ports.Hasher
}

var _ ports.RegistryQuery = (*IndexQuery)(nil)

// NewIndexQuery creates a query over index.
func NewIndexQuery(index *Index, hasher ports.Hasher) *IndexQuery {
	return &IndexQuery{index: index, hasher: hasher}
}

// IsProvidedByRegistry reports whether the file at path has the name and content
// of a registry member. Names unknown to the index are answered without reading the file.
func (q *IndexQuery) IsProvidedByRegistry(path string) (bool, error) {
	name := filepath.Base(path)
	if !q.index.Knows(name) {
		return false, nil
	}

	fp, err := q.hasher.HashFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(errors.Join(domain.ErrRegistryQueryFailed, err), "failed to fingerprint file"), "path", path)
	}
	return q.index.Match(name, fp), nil
}

// Close is a no-op.
func (q *IndexQuery) Close() error {
	return nil
}
