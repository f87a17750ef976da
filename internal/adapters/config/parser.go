// Package config reads project descriptors and the workspace file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// identityNamespace derives identities for descriptors that do not declare one.
var identityNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://go.trai.ch/refgraph/project"))

// Parser implements ports.DescriptorParser for YAML and HCL descriptors.
type Parser struct {
	validate *validator.Validate
}

var _ ports.DescriptorParser = (*Parser)(nil)

// NewParser creates a Parser.
func NewParser() *Parser {
	return &Parser{validate: validator.New()}
}

// Parse reads the descriptor at path, choosing the syntax by file extension.
func (p *Parser) Parse(path string) (*domain.ProjectDocument, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid descriptor path"), "path", path)
	}

	// #nosec G304 -- descriptor paths come from the command line or other descriptors
	data, err := os.ReadFile(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, zerr.With(zerr.Wrap(domain.ErrDescriptorNotFound, "cannot read project"), "path", abs)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read project descriptor"), "path", abs)
	}

	var pf *ProjectFile
	switch lower := strings.ToLower(abs); {
	case strings.HasSuffix(lower, domain.YAMLDescriptorExt), strings.HasSuffix(lower, ".proj.yml"):
		pf, err = decodeYAML(data)
	case strings.HasSuffix(lower, domain.HCLDescriptorExt):
		pf, err = decodeHCL(abs, data)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedDescriptor, "cannot parse project"), "path", abs)
	}
	if err != nil {
		return nil, zerr.With(err, "path", abs)
	}

	if err := p.validateStruct(pf); err != nil {
		return nil, zerr.With(err, "path", abs)
	}
	doc, err := toDocument(abs, pf)
	if err != nil {
		return nil, zerr.With(err, "path", abs)
	}
	return doc, nil
}

func decodeYAML(data []byte) (*ProjectFile, error) {
	var pf ProjectFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrDescriptorInvalid, err), "failed to parse YAML descriptor")
	}
	return &pf, nil
}

// decodeHCL decodes an HCL descriptor. Expressions may use project_dir,
// project_file and the process environment as env.NAME.
func decodeHCL(path string, data []byte) (*ProjectFile, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, zerr.Wrap(errors.Join(domain.ErrDescriptorInvalid, diags), "failed to parse HCL descriptor")
	}

	var root hclFile
	if diags := gohcl.DecodeBody(file.Body, evalContext(path), &root); diags.HasErrors() {
		return nil, zerr.Wrap(errors.Join(domain.ErrDescriptorInvalid, diags), "failed to decode HCL descriptor")
	}
	return root.Project.toProjectFile(), nil
}

func evalContext(path string) *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && hclIdentifier(k) {
			env[k] = cty.StringVal(v)
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"project_dir":  cty.StringVal(filepath.ToSlash(filepath.Dir(path))),
			"project_file": cty.StringVal(filepath.Base(path)),
			"env":          cty.ObjectVal(env),
		},
	}
}

func hclIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r == '-' || r >= '0' && r <= '9'):
		default:
			return false
		}
	}
	return true
}

func (p *Parser) validateStruct(pf *ProjectFile) error {
	err := p.validate.Struct(pf)
	if err == nil {
		return nil
	}
	out := zerr.Wrap(domain.ErrDescriptorInvalid, "descriptor failed validation")
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		out = zerr.With(out, "field", fieldErrs[0].Namespace())
		out = zerr.With(out, "rule", fieldErrs[0].Tag())
	}
	return out
}

// toDocument converts a validated descriptor. Project paths are resolved
// against the descriptor's directory.
func toDocument(path string, pf *ProjectFile) (*domain.ProjectDocument, error) {
	id, err := identity(path, pf.ID)
	if err != nil {
		return nil, err
	}
	doc := &domain.ProjectDocument{
		Path:          path,
		Identity:      id,
		Name:          pf.Name,
		AssemblyName:  pf.AssemblyName,
		TargetExt:     pf.TargetExt,
		RootNamespace: pf.RootNamespace,
		Properties:    pf.Properties,
	}

	for _, c := range pf.Configurations {
		doc.Configurations = append(doc.Configurations, domain.ConfigurationDecl{
			Name:            c.Name,
			Platform:        c.Platform,
			OutputDir:       c.OutputDir,
			IntermediateDir: c.IntermediateDir,
			TargetName:      c.TargetName,
		})
	}

	dir := filepath.Dir(path)
	for _, r := range pf.References {
		decl := domain.ReferenceDecl{
			Kind:      domain.ReferenceKind(strings.ToLower(r.Kind)),
			Name:      r.Name,
			HintPath:  r.HintPath,
			FolderKey: r.FolderKey,
			CopyLocal: r.CopyLocal,
		}
		if decl.Kind == "" {
			decl.Kind = domain.KindComponent
		}
		if r.Project != "" {
			decl.Project = resolvePath(dir, r.Project)
		}
		if r.ID != "" {
			// Validated as a UUID already.
			decl.Identity = uuid.MustParse(r.ID)
		}
		doc.References = append(doc.References, decl)
	}
	return doc, nil
}

// identity returns the declared identity, or one derived from the
// case-folded descriptor path so it is stable across sessions.
func identity(path, declared string) (uuid.UUID, error) {
	if declared == "" {
		return uuid.NewSHA1(identityNamespace, []byte(domain.NewPathKey(path).String())), nil
	}
	id, err := uuid.Parse(declared)
	if err != nil {
		return uuid.Nil, zerr.With(zerr.Wrap(domain.ErrDescriptorInvalid, "invalid project id"), "id", declared)
	}
	return id, nil
}

func resolvePath(base, p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(base, p))
}
