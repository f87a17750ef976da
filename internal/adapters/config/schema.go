package config

// Workfile represents the structure of the refgraph.work.yaml configuration file.
type Workfile struct {
	Version       string            `yaml:"version"`
	Solution      string            `yaml:"solution"`
	Configuration string            `yaml:"configuration"`
	Properties    map[string]string `yaml:"properties"`
	Framework     FrameworkDTO      `yaml:"framework"`
	Registry      RegistryDTO       `yaml:"registry"`
}

// FrameworkDTO describes the target framework's component locations.
type FrameworkDTO struct {
	Name          string            `yaml:"name"`
	SystemDir     string            `yaml:"systemDir"`
	Roots         map[string]string `yaml:"roots" validate:"dive,keys,oneof=machine user,endkeys,required"`
	SearchFolders []SearchFolderDTO `yaml:"searchFolders" validate:"dive"`
}

// SearchFolderDTO is one named external library folder.
type SearchFolderDTO struct {
	Name string `yaml:"name" validate:"required"`
	Path string `yaml:"path" validate:"required"`
}

// RegistryDTO selects how shared registry membership is answered.
type RegistryDTO struct {
	Mode     string `yaml:"mode" validate:"omitempty,oneof=none snapshot process"`
	Dir      string `yaml:"dir"`
	Snapshot string `yaml:"snapshot" validate:"required_if=Mode snapshot"`
}

// ProjectFile represents a project descriptor, whatever its syntax.
type ProjectFile struct {
	Version        string             `yaml:"version"`
	Name           string             `yaml:"name" validate:"required"`
	ID             string             `yaml:"id" validate:"omitempty,uuid"`
	AssemblyName   string             `yaml:"assemblyName"`
	TargetExt      string             `yaml:"targetExt" validate:"omitempty,startswith=."`
	RootNamespace  string             `yaml:"rootNamespace"`
	Properties     map[string]string  `yaml:"properties"`
	Configurations []ConfigurationDTO `yaml:"configurations" validate:"dive"`
	References     []ReferenceDTO     `yaml:"references" validate:"dive"`
}

// ConfigurationDTO represents a build configuration declaration.
type ConfigurationDTO struct {
	Name            string `yaml:"name" validate:"required"`
	Platform        string `yaml:"platform"`
	OutputDir       string `yaml:"outputDir"`
	IntermediateDir string `yaml:"intermediateDir"`
	TargetName      string `yaml:"targetName"`
}

// ReferenceDTO represents a declared reference.
type ReferenceDTO struct {
	Kind      string `yaml:"kind" validate:"omitempty,oneof=component project wrapped"`
	Name      string `yaml:"name" validate:"required"`
	HintPath  string `yaml:"hintPath"`
	FolderKey string `yaml:"folderKey"`
	CopyLocal *bool  `yaml:"copyLocal"`
	Project   string `yaml:"project" validate:"required_if=Kind project"`
	ID        string `yaml:"id" validate:"omitempty,uuid"`
}

// hclFile is the root of an HCL project descriptor:
//
//	project "App" {
//	  configuration "Debug" { output_dir = "bin/debug" }
//	  reference "component" "Vendor" { hint_path = "../lib/Vendor.dll" }
//	}
type hclFile struct {
	Project hclProject `hcl:"project,block"`
}

type hclProject struct {
	Name           string             `hcl:"name,label"`
	ID             string             `hcl:"id,optional"`
	AssemblyName   string             `hcl:"assembly_name,optional"`
	TargetExt      string             `hcl:"target_ext,optional"`
	RootNamespace  string             `hcl:"root_namespace,optional"`
	Properties     map[string]string  `hcl:"properties,optional"`
	Configurations []hclConfiguration `hcl:"configuration,block"`
	References     []hclReference     `hcl:"reference,block"`
}

type hclConfiguration struct {
	Name            string `hcl:"name,label"`
	Platform        string `hcl:"platform,optional"`
	OutputDir       string `hcl:"output_dir,optional"`
	IntermediateDir string `hcl:"intermediate_dir,optional"`
	TargetName      string `hcl:"target_name,optional"`
}

type hclReference struct {
	Kind      string `hcl:"kind,label"`
	Name      string `hcl:"name,label"`
	HintPath  string `hcl:"hint_path,optional"`
	FolderKey string `hcl:"folder_key,optional"`
	CopyLocal *bool  `hcl:"copy_local,optional"`
	Project   string `hcl:"project,optional"`
	ID        string `hcl:"id,optional"`
}

func (p hclProject) toProjectFile() *ProjectFile {
	pf := &ProjectFile{
		Name:          p.Name,
		ID:            p.ID,
		AssemblyName:  p.AssemblyName,
		TargetExt:     p.TargetExt,
		RootNamespace: p.RootNamespace,
		Properties:    p.Properties,
	}
	for _, c := range p.Configurations {
		pf.Configurations = append(pf.Configurations, ConfigurationDTO(c))
	}
	for _, r := range p.References {
		pf.References = append(pf.References, ReferenceDTO(r))
	}
	return pf
}
