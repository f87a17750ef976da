package domain

import "go.trai.ch/zerr"

var (
	// ErrUnresolvedReference is returned when a component reference is not found in any search location.
	ErrUnresolvedReference = zerr.New("unresolved reference")

	// ErrCircularReference is returned when a project is loaded while it is already being loaded.
	ErrCircularReference = zerr.New("circular project reference")

	// ErrUnsupportedMacro is returned when no scope defines a macro.
	ErrUnsupportedMacro = zerr.New("unsupported macro")

	// ErrUnimplementedMacro is returned for macros that are recognized but not implemented.
	ErrUnimplementedMacro = zerr.New("macro not implemented")

	// ErrMissingProjectOutput is returned when a referenced project has no output file to aggregate.
	ErrMissingProjectOutput = zerr.New("referenced project has no output")

	// ErrModuleInspectionFailed is returned when a module's dependency list cannot be read.
	ErrModuleInspectionFailed = zerr.New("module inspection failed")

	// ErrCycleDetected is returned when the project graph contains a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrMissingDependency is returned when a graph vertex depends on a project that is not in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrProjectAlreadyExists is returned when the same project is added to a graph twice.
	ErrProjectAlreadyExists = zerr.New("project already exists")

	// ErrNoConfigurations is returned when a project declares no build configuration.
	ErrNoConfigurations = zerr.New("project declares no configurations")

	// ErrDescriptorNotFound is returned when a project descriptor does not exist.
	ErrDescriptorNotFound = zerr.New("project descriptor not found")

	// ErrDescriptorInvalid is returned when a project descriptor fails validation.
	ErrDescriptorInvalid = zerr.New("invalid project descriptor")

	// ErrUnsupportedDescriptor is returned when no parser handles a descriptor's file extension.
	ErrUnsupportedDescriptor = zerr.New("unsupported descriptor format")

	// ErrWorkspaceInvalid is returned when the workspace file fails validation.
	ErrWorkspaceInvalid = zerr.New("invalid workspace file")

	// ErrRegistryUnavailable is returned when the registry query facility cannot be started.
	ErrRegistryUnavailable = zerr.New("registry query unavailable")

	// ErrRegistryQueryFailed is returned when a single registry membership query fails.
	ErrRegistryQueryFailed = zerr.New("registry query failed")

	// ErrSessionClosed is returned when a closed session is used.
	ErrSessionClosed = zerr.New("session closed")

	// ErrTargetStale is returned by the stale command when the target needs a rebuild.
	ErrTargetStale = zerr.New("target is stale")
)
