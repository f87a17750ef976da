package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.WorkspaceLoader using a YAML file.
type Loader struct {
	Logger   ports.Logger
	validate *validator.Validate
}

var _ ports.WorkspaceLoader = (*Loader)(nil)

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, validate: validator.New()}
}

// Load finds the workspace file at or above startDir and loads it. Without
// one it returns a workspace rooted at startDir with no registry.
func (l *Loader) Load(startDir string) (*domain.Workspace, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid start directory"), "dir", startDir)
	}

	workfilePath, ok := findWorkfile(abs)
	if !ok {
		l.Logger.Debug("no " + domain.WorkFileName + " found above " + abs + ", using defaults")
		return &domain.Workspace{
			Root:     abs,
			Registry: domain.RegistrySettings{Mode: domain.RegistryNone},
		}, nil
	}
	return l.loadWorkfile(workfilePath)
}

func findWorkfile(dir string) (string, bool) {
	current := dir
	for {
		candidate := filepath.Join(current, domain.WorkFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached root
			return "", false
		}
		current = parent
	}
}

func (l *Loader) loadWorkfile(path string) (*domain.Workspace, error) {
	var wf Workfile
	if err := readAndUnmarshalYAML(path, &wf); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if err := l.validate.Struct(&wf); err != nil {
		out := zerr.Wrap(domain.ErrWorkspaceInvalid, "workspace file failed validation")
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			out = zerr.With(out, "field", fieldErrs[0].Namespace())
			out = zerr.With(out, "rule", fieldErrs[0].Tag())
		}
		return nil, zerr.With(out, "path", path)
	}

	root := filepath.Dir(path)
	ws := &domain.Workspace{
		Root: root,
		Solution: &domain.SolutionDocument{
			Name:       firstNonEmpty(wf.Solution, filepath.Base(root)),
			Path:       path,
			Properties: wf.Properties,
		},
		Framework: domain.Framework{
			Name:      wf.Framework.Name,
			SystemDir: resolveOptional(root, wf.Framework.SystemDir),
		},
		DefaultConfiguration: domain.ParseConfigurationKey(wf.Configuration),
	}

	if len(wf.Framework.Roots) > 0 {
		ws.Framework.Roots = make(map[domain.RootScope]string, len(wf.Framework.Roots))
		for scope, dir := range wf.Framework.Roots {
			ws.Framework.Roots[domain.RootScope(strings.ToLower(scope))] = resolvePath(root, dir)
		}
	}
	for _, f := range wf.Framework.SearchFolders {
		ws.Framework.SearchFolders = append(ws.Framework.SearchFolders, domain.SearchFolder{
			Name: f.Name,
			Path: resolvePath(root, f.Path),
		})
	}

	registry, err := registrySettings(root, wf.Registry)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	ws.Registry = registry
	return ws, nil
}

func registrySettings(root string, dto RegistryDTO) (domain.RegistrySettings, error) {
	s := domain.RegistrySettings{
		Mode:     domain.RegistryMode(firstNonEmpty(dto.Mode, string(domain.RegistryNone))),
		Dir:      resolveOptional(root, dto.Dir),
		Snapshot: resolveOptional(root, dto.Snapshot),
	}
	if s.Mode == domain.RegistryProcess && s.Dir == "" && s.Snapshot == "" {
		return s, zerr.Wrap(domain.ErrWorkspaceInvalid, "registry mode process needs a dir or a snapshot")
	}
	return s, nil
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by walking up from the start directory
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to read workspace file")
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(errors.Join(domain.ErrWorkspaceInvalid, parseErr), "failed to parse workspace file")
	}

	return nil
}

func resolveOptional(base, p string) string {
	if p == "" {
		return ""
	}
	return resolvePath(base, p)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
