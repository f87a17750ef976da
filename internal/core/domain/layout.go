package domain

const (
	// WorkFileName is the name of the workspace configuration file.
	WorkFileName = "refgraph.work.yaml"

	// YAMLDescriptorExt is the extension of YAML project descriptors.
	YAMLDescriptorExt = ".proj.yaml"

	// HCLDescriptorExt is the extension of HCL project descriptors.
	HCLDescriptorExt = ".proj.hcl"

	// DefaultTargetExt is used when a project does not declare a target extension.
	DefaultTargetExt = ".dll"

	// WrapperPrefix prefixes generated wrapper artifacts for wrapped libraries.
	WrapperPrefix = "Interop."

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DescriptorPatterns match project descriptor file names.
var DescriptorPatterns = []string{"*" + YAMLDescriptorExt, "*.proj.yml", "*" + HCLDescriptorExt}

// BinaryExts are the extensions of loadable modules.
var BinaryExts = []string{".dll", ".exe", ".so"}

// SidecarExts are the extensions of files that travel with a module sharing its base name:
// binaries, debug symbols, serialized metadata and documentation.
var SidecarExts = []string{
	".dll", ".exe", ".so",
	".pdb", ".mdb", ".dbg",
	".config", ".manifest", ".json",
	".xml",
}
