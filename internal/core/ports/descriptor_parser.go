package ports

import "go.trai.ch/refgraph/internal/core/domain"

// DescriptorParser turns a project descriptor file into a structured document.
//
//go:generate mockgen -source=descriptor_parser.go -destination=mocks/mock_descriptor_parser.go -package=mocks
type DescriptorParser interface {
	// Parse reads the descriptor at path. The returned document's Path is absolute
	// and its project paths are resolved against the descriptor's directory.
	Parse(path string) (*domain.ProjectDocument, error)
}
