package macro

import (
	"path/filepath"
	"strings"

	"go.trai.ch/refgraph/internal/core/domain"
)

// Values is a Scope backed by a map with lower-cased keys.
type Values map[string]string

// Lookup implements Scope.
func (v Values) Lookup(name string) (string, bool, error) {
	value, ok := v[strings.ToLower(name)]
	return value, ok, nil
}

func (v Values) set(name, value string) {
	v[strings.ToLower(name)] = value
}

// merge adds every entry of props that v does not define yet.
func (v Values) merge(props map[string]string) {
	for k, val := range props {
		if _, ok := v[strings.ToLower(k)]; !ok {
			v.set(k, val)
		}
	}
}

// ConfigValues are the inputs of the configuration scope.
type ConfigValues struct {
	Key        domain.ConfigurationKey
	OutDir     string
	IntDir     string
	TargetName string
	TargetExt  string
}

// ConfigScope returns the configuration-scope macros. Directory and target
// macros are present only when OutDir is known.
func ConfigScope(c ConfigValues) Values {
	v := Values{}
	v.set("ConfigurationName", c.Key.Name())
	v.set("Configuration", c.Key.Name())
	v.set("PlatformName", c.Key.Platform())
	v.set("Platform", c.Key.Platform())
	if c.OutDir == "" {
		return v
	}

	fileName := c.TargetName + c.TargetExt
	v.set("OutDir", dirValue(c.OutDir))
	v.set("TargetDir", dirValue(c.OutDir))
	v.set("TargetName", c.TargetName)
	v.set("TargetExt", c.TargetExt)
	v.set("TargetFileName", fileName)
	v.set("TargetPath", filepath.Join(c.OutDir, fileName))
	if c.IntDir != "" {
		v.set("IntDir", dirValue(c.IntDir))
	}
	return v
}

// ProjectScope returns the project-scope macros followed by the project's own properties.
func ProjectScope(doc *domain.ProjectDocument) Values {
	v := Values{}
	fileName := filepath.Base(doc.Path)
	v.set("ProjectName", doc.Name)
	v.set("ProjectDir", dirValue(filepath.Dir(doc.Path)))
	v.set("ProjectPath", doc.Path)
	v.set("ProjectFileName", fileName)
	v.set("ProjectExt", descriptorExt(fileName))
	v.set("RootNamespace", doc.RootNamespace)
	v.merge(doc.Properties)
	return v
}

// SolutionScope returns the solution-scope macros. It returns nil, and so
// ends the chain, when there is no solution.
func SolutionScope(sol *domain.SolutionDocument) Scope {
	if sol == nil {
		return nil
	}
	v := Values{}
	fileName := filepath.Base(sol.Path)
	v.set("SolutionName", sol.Name)
	v.set("SolutionDir", dirValue(filepath.Dir(sol.Path)))
	v.set("SolutionPath", sol.Path)
	v.set("SolutionFileName", fileName)
	v.set("SolutionExt", descriptorExt(fileName))
	v.merge(sol.Properties)
	return v
}

// dirValue returns dir with a trailing separator.
func dirValue(dir string) string {
	if strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir
	}
	return dir + string(filepath.Separator)
}

// descriptorExt returns the extension of a descriptor file name, keeping
// compound extensions such as ".proj.yaml" whole.
func descriptorExt(fileName string) string {
	if i := strings.Index(fileName, "."); i > 0 {
		return fileName[i:]
	}
	return filepath.Ext(fileName)
}
