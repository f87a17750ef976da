package domain

import "github.com/google/uuid"

// ReferenceKind distinguishes the three reference variants.
type ReferenceKind string

const (
	// KindComponent is a dependency on a prebuilt binary.
	KindComponent ReferenceKind = "component"
	// KindProject is a dependency on another buildable project.
	KindProject ReferenceKind = "project"
	// KindWrapped is a dependency on a wrapped external library.
	KindWrapped ReferenceKind = "wrapped"
)

// ReferenceDecl is a declared dependency entry as read from a project descriptor.
type ReferenceDecl struct {
	Kind ReferenceKind
	Name string
	// HintPath is an explicit location, possibly containing macros.
	HintPath string
	// FolderKey selects a sub-path under one of the framework roots.
	FolderKey string
	// CopyLocal is nil when the descriptor does not say.
	CopyLocal *bool
	// Project is the referenced descriptor path, for project references.
	Project string
	// Identity is the declared identity of the referenced project, if any.
	Identity uuid.UUID
}

// ConfigurationDecl is a declared build configuration.
type ConfigurationDecl struct {
	Name            string
	Platform        string
	OutputDir       string
	IntermediateDir string
	TargetName      string
}

// Key returns the configuration key of the declaration.
func (c ConfigurationDecl) Key() ConfigurationKey {
	return NewConfigurationKey(c.Name, c.Platform)
}

// ProjectDocument is the structured form of a project descriptor.
type ProjectDocument struct {
	// Path is the absolute path of the descriptor file.
	Path string
	// Identity is the project's stable identity token.
	Identity uuid.UUID
	Name     string
	// AssemblyName is the default target name.
	AssemblyName   string
	TargetExt      string
	RootNamespace  string
	Properties     map[string]string
	Configurations []ConfigurationDecl
	References     []ReferenceDecl
}

// SolutionDocument is the solution scope shared by every project of a workspace.
type SolutionDocument struct {
	Name       string
	Path       string
	Properties map[string]string
}
