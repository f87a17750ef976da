package config_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/refgraph/internal/adapters/config"
	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestLoader_Load_WalksUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	root := t.TempDir()
	createFile(t, root, domain.WorkFileName, `
version: "1"
solution: Acme
configuration: Release|x64
properties:
  Company: Acme
framework:
  name: net48
  systemDir: framework/v4
  roots:
    machine: /opt/libs
    user: home/libs
  searchFolders:
    - name: vendor
      path: vendor
    - name: shared
      path: /srv/shared
registry:
  mode: snapshot
  snapshot: registry.json
`)
	createFile(t, root, "src/App/App.proj.yaml", "name: App\n")

	ws, err := loader.Load(filepath.Join(root, "src", "App"))
	require.NoError(t, err)

	assert.Equal(t, root, ws.Root)
	require.NotNil(t, ws.Solution)
	assert.Equal(t, "Acme", ws.Solution.Name)
	assert.Equal(t, filepath.Join(root, domain.WorkFileName), ws.Solution.Path)
	assert.Equal(t, "Acme", ws.Solution.Properties["Company"])

	assert.Equal(t, "net48", ws.Framework.Name)
	assert.Equal(t, filepath.Join(root, "framework", "v4"), ws.Framework.SystemDir)
	assert.Equal(t, filepath.Clean("/opt/libs"), ws.Framework.Roots[domain.ScopeMachine])
	assert.Equal(t, filepath.Join(root, "home", "libs"), ws.Framework.Roots[domain.ScopeUser])
	assert.Equal(t, []domain.SearchFolder{
		{Name: "vendor", Path: filepath.Join(root, "vendor")},
		{Name: "shared", Path: filepath.Clean("/srv/shared")},
	}, ws.Framework.SearchFolders)

	assert.Equal(t, domain.RegistrySnapshot, ws.Registry.Mode)
	assert.Equal(t, filepath.Join(root, "registry.json"), ws.Registry.Snapshot)
	assert.True(t, ws.DefaultConfiguration.Equal(domain.NewConfigurationKey("Release", "x64")))
}

func TestLoader_Load_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any())

	dir := t.TempDir()
	ws, err := config.NewLoader(log).Load(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, ws.Root)
	assert.Nil(t, ws.Solution)
	assert.Equal(t, domain.RegistryNone, ws.Registry.Mode)
	assert.True(t, ws.DefaultConfiguration.IsZero())
}

func TestLoader_Load_SolutionNameDefaultsToDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := filepath.Join(t.TempDir(), "acme")
	createFile(t, root, domain.WorkFileName, "version: \"1\"\n")

	ws, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(root)
	require.NoError(t, err)
	assert.Equal(t, "acme", ws.Solution.Name)
	assert.Equal(t, domain.RegistryNone, ws.Registry.Mode)
}

func TestLoader_Load_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown registry mode", content: "registry:\n  mode: remote\n"},
		{name: "snapshot mode without file", content: "registry:\n  mode: snapshot\n"},
		{name: "process mode without source", content: "registry:\n  mode: process\n"},
		{name: "unknown root scope", content: "framework:\n  roots:\n    global: /x\n"},
		{name: "search folder without path", content: "framework:\n  searchFolders:\n    - name: vendor\n"},
		{name: "malformed yaml", content: "registry: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			root := t.TempDir()
			createFile(t, root, domain.WorkFileName, tt.content)

			_, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(root)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrWorkspaceInvalid), "got %v", err)
		})
	}
}
