package ports

import (
	"context"

	"go.trai.ch/refgraph/internal/core/domain"
)

// RegistryQuery answers whether a file is provided by the shared registry.
// Implementations are expected to be slow and to keep the candidate file
// out of the caller's process.
//
//go:generate mockgen -source=registry.go -destination=mocks/mock_registry.go -package=mocks
type RegistryQuery interface {
	// IsProvidedByRegistry reports whether the file at path is a registry member.
	IsProvidedByRegistry(path string) (bool, error)

	// Close releases the query facility. It is called once, at session end.
	Close() error
}

// RegistryProvider opens a RegistryQuery for a session.
type RegistryProvider interface {
	// Open acquires the query facility described by settings.
	Open(ctx context.Context, settings domain.RegistrySettings) (RegistryQuery, error)
}
