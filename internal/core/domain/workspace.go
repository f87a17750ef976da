package domain

// RegistryMode selects how registry membership is answered.
type RegistryMode string

const (
	// RegistryNone treats no file as registry-provided.
	RegistryNone RegistryMode = "none"
	// RegistrySnapshot answers from a precomputed snapshot file, in process.
	RegistrySnapshot RegistryMode = "snapshot"
	// RegistryProcess answers from an isolated child process.
	RegistryProcess RegistryMode = "process"
)

// RegistrySettings configures the registry query facility of a session.
type RegistrySettings struct {
	Mode RegistryMode
	// Dir is the registry directory indexed by the child process.
	Dir string
	// Snapshot is the path of a snapshot file.
	Snapshot string
}

// Workspace holds the settings shared by every project under one workspace file.
type Workspace struct {
	// Root is the directory holding the workspace file, or the start directory without one.
	Root string
	// Solution is nil when no workspace file was found.
	Solution             *SolutionDocument
	Framework            Framework
	Registry             RegistrySettings
	DefaultConfiguration ConfigurationKey
}
