package domain

import (
	"path/filepath"
	"strings"
)

// RootScope names one of the fixed roots a folder key can be anchored to.
type RootScope string

const (
	// ScopeMachine is the machine-wide folder root.
	ScopeMachine RootScope = "machine"
	// ScopeUser is the per-user folder root.
	ScopeUser RootScope = "user"
)

// SearchFolder is a named external library folder probed for component references.
type SearchFolder struct {
	Name string
	Path string
}

// Framework describes the active target framework.
type Framework struct {
	// Name is informational, e.g. "net48".
	Name string
	// SystemDir holds the framework's own components. Components found there
	// are never copied.
	SystemDir string
	// Roots anchors folder keys, per scope.
	Roots map[RootScope]string
	// SearchFolders are probed in order after the system directory.
	SearchFolders []SearchFolder
}

// IsSystemDir reports whether dir is the framework's system component directory.
func (f Framework) IsSystemDir(dir string) bool {
	if f.SystemDir == "" || dir == "" {
		return false
	}
	return SamePath(dir, f.SystemDir)
}

// FolderKeyPath maps a folder key of the form "scope:sub/path" to a directory.
// A key without a scope prefix is anchored to the machine root. It returns
// false when the scope is unknown or has no configured root.
func (f Framework) FolderKeyPath(folderKey string) (string, bool) {
	if folderKey == "" {
		return "", false
	}
	scope, sub, found := strings.Cut(folderKey, ":")
	if !found {
		scope, sub = string(ScopeMachine), folderKey
	}
	root, ok := f.Roots[RootScope(strings.ToLower(scope))]
	if !ok || root == "" {
		return "", false
	}
	return filepath.Join(root, filepath.FromSlash(sub)), true
}
