package ports

// Hasher defines the interface for fingerprinting files.
//
//go:generate mockgen -destination=mocks/hasher_mock.go -package=mocks -source=hasher.go
type Hasher interface {
	// HashFile returns a content fingerprint of the file at path.
	HashFile(path string) (uint64, error)
}
