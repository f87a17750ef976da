package registry_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/refgraph/internal/adapters/fs"
	"go.trai.ch/refgraph/internal/adapters/registry"
	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const childEnv = "REFGRAPH_TEST_REGISTRY_CHILD"

// TestMain doubles as the registry child when started by a ProcessQuery.
func TestMain(m *testing.M) {
	if os.Getenv(childEnv) == "1" {
		os.Exit(serveChild(os.Args[1:]))
	}
	os.Exit(m.Run())
}

func serveChild(args []string) int {
	var settings domain.RegistrySettings
	for i := 0; i+1 < len(args); i++ {
		switch args[i] {
		case "--dir":
			settings.Dir = args[i+1]
		case "--snapshot":
			settings.Snapshot = args[i+1]
		}
	}
	p := registry.NewProvider(fs.NewWalker(), fs.NewHasher(), nil)
	idx, err := p.OpenIndex(settings)
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		return 2
	}
	_, _ = os.Stderr.WriteString("serving\n")
	q := registry.NewIndexQuery(idx, fs.NewHasher())
	if err := registry.Serve(context.Background(), os.Stdin, os.Stdout, q); err != nil {
		return 1
	}
	return 0
}

func write(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

// fixture lays out a registry holding two modules and returns its directory.
func fixture(t *testing.T) (root, registryDir string) {
	t.Helper()
	root = t.TempDir()
	registryDir = filepath.Join(root, "gac")
	write(t, filepath.Join(registryDir, "v4", "System.Data.dll"), "system data v4")
	write(t, filepath.Join(registryDir, "v2", "System.Data.dll"), "system data v2")
	write(t, filepath.Join(registryDir, "Shared.Core.dll"), "shared core")
	write(t, filepath.Join(registryDir, "readme.txt"), "not a module")
	return root, registryDir
}

func TestBuildIndex(t *testing.T) {
	root, dir := fixture(t)
	idx, err := registry.BuildIndex(fs.NewWalker(), fs.NewHasher(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, idx.Len())
	assert.True(t, idx.Knows("system.data.DLL"))
	assert.False(t, idx.Knows("readme.txt"))

	q := registry.NewIndexQuery(idx, fs.NewHasher())

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"System.Data.dll", "system data v2", true},
		{"SYSTEM.DATA.DLL", "system data v4", true},
		{"System.Data.dll", "patched locally", false},
		{"Private.dll", "shared core", false},
	}
	for i, tt := range tests {
		path := write(t, filepath.Join(root, "bin", string(rune('a'+i)), tt.name), tt.content)
		got, err := q.IsProvidedByRegistry(path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s with %q", tt.name, tt.content)
	}

	got, err := q.IsProvidedByRegistry(filepath.Join(root, "missing", "Shared.Core.dll"))
	require.NoError(t, err)
	assert.False(t, got)
	assert.NoError(t, q.Close())
}

func TestBuildIndex_MissingDirectory(t *testing.T) {
	_, err := registry.BuildIndex(fs.NewWalker(), fs.NewHasher(), filepath.Join(t.TempDir(), "nope"))
	require.ErrorIs(t, err, domain.ErrRegistryUnavailable)
}

func TestSnapshot_SaveAndLoad(t *testing.T) {
	_, dir := fixture(t)
	idx, err := registry.BuildIndex(fs.NewWalker(), fs.NewHasher(), dir)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cache", "registry.json")
	require.NoError(t, idx.Save(path))

	loaded, err := registry.LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, idx.Root, loaded.Root)
	assert.Equal(t, idx.Len(), loaded.Len())

	h, err := fs.NewHasher().HashFile(filepath.Join(dir, "Shared.Core.dll"))
	require.NoError(t, err)
	assert.True(t, loaded.Match("shared.core.dll", h))
}

func TestLoadSnapshot_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"garbage", "{not json"},
		{"version", `{"version": 9, "members": {}}`},
		{"fingerprint", `{"version": 1, "members": {"a.dll": ["xyz"]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := write(t, filepath.Join(dir, tt.name+".json"), tt.content)
			_, err := registry.LoadSnapshot(path)
			require.ErrorIs(t, err, domain.ErrRegistryUnavailable)
		})
	}

	t.Run("missing", func(t *testing.T) {
		_, err := registry.LoadSnapshot(filepath.Join(dir, "absent.json"))
		require.ErrorIs(t, err, domain.ErrRegistryUnavailable)
	})
}

func TestServe(t *testing.T) {
	ctrl := gomock.NewController(t)
	query := mocks.NewMockRegistryQuery(ctrl)
	query.EXPECT().IsProvidedByRegistry("/gac/A.dll").Return(true, nil)
	query.EXPECT().IsProvidedByRegistry("/bin/B.dll").Return(false, nil)
	query.EXPECT().IsProvidedByRegistry("/bin/C.dll").Return(false, domain.ErrRegistryQueryFailed)

	in := strings.NewReader("/gac/A.dll\n\n/bin/B.dll\r\n/bin/C.dll\n")
	var out bytes.Buffer
	require.NoError(t, registry.Serve(context.Background(), in, &out, query))

	assert.Equal(t, "1\nerror empty path\n0\nerror registry query failed\n", out.String())
}

func TestServe_RepliesToEveryLine(t *testing.T) {
	ctrl := gomock.NewController(t)
	query := mocks.NewMockRegistryQuery(ctrl)
	query.EXPECT().IsProvidedByRegistry(" /gac/A.dll ").Return(false, nil)

	in := strings.NewReader(" /gac/A.dll \n   \n")
	var out bytes.Buffer
	require.NoError(t, registry.Serve(context.Background(), in, &out, query))

	assert.Equal(t, "0\nerror empty path\n", out.String())
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	query := mocks.NewMockRegistryQuery(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := registry.Serve(ctx, strings.NewReader("/gac/A.dll\n"), &out, query)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestProvider_Open(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	p := registry.NewProvider(fs.NewWalker(), fs.NewHasher(), logger)

	t.Run("none", func(t *testing.T) {
		q, err := p.Open(context.Background(), domain.RegistrySettings{Mode: domain.RegistryNone})
		require.NoError(t, err)
		assert.Nil(t, q)
	})

	t.Run("snapshot", func(t *testing.T) {
		root, dir := fixture(t)
		idx, err := registry.BuildIndex(fs.NewWalker(), fs.NewHasher(), dir)
		require.NoError(t, err)
		snap := filepath.Join(root, "registry.json")
		require.NoError(t, idx.Save(snap))

		q, err := p.Open(context.Background(), domain.RegistrySettings{Mode: domain.RegistrySnapshot, Snapshot: snap})
		require.NoError(t, err)
		got, err := q.IsProvidedByRegistry(write(t, filepath.Join(root, "bin", "Shared.Core.dll"), "shared core"))
		require.NoError(t, err)
		assert.True(t, got)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := p.Open(context.Background(), domain.RegistrySettings{Mode: "daemon"})
		require.ErrorIs(t, err, domain.ErrRegistryUnavailable)
	})

	t.Run("process without source", func(t *testing.T) {
		_, err := p.Open(context.Background(), domain.RegistrySettings{Mode: domain.RegistryProcess})
		require.ErrorIs(t, err, domain.ErrRegistryUnavailable)
	})
}

func TestProcessQuery(t *testing.T) {
	root, dir := fixture(t)

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug("registry: serving").Times(1)

	p := registry.NewProvider(fs.NewWalker(), fs.NewHasher(), logger)
	p.Executable = os.Args[0]
	p.Env = append(os.Environ(), childEnv+"=1")

	q, err := p.Open(context.Background(), domain.RegistrySettings{Mode: domain.RegistryProcess, Dir: dir})
	require.NoError(t, err)

	member := write(t, filepath.Join(root, "bin", "System.Data.dll"), "system data v4")
	private := write(t, filepath.Join(root, "bin", "App.dll"), "app")

	got, err := q.IsProvidedByRegistry(member)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = q.IsProvidedByRegistry(private)
	require.NoError(t, err)
	assert.False(t, got)

	_, err = q.IsProvidedByRegistry("bad\npath")
	require.ErrorIs(t, err, domain.ErrRegistryQueryFailed)

	// A whitespace-only request still gets its own reply, so the next query stays in step.
	got, err = q.IsProvidedByRegistry("   ")
	require.NoError(t, err)
	assert.False(t, got)
	got, err = q.IsProvidedByRegistry(member)
	require.NoError(t, err)
	assert.True(t, got)

	require.NoError(t, q.Close())
	require.NoError(t, q.Close())

	_, err = q.IsProvidedByRegistry(member)
	require.ErrorIs(t, err, domain.ErrRegistryQueryFailed)
}

func TestProcessQuery_ChildFailsToStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()

	p := registry.NewProvider(fs.NewWalker(), fs.NewHasher(), logger)
	p.Executable = os.Args[0]
	p.Env = append(os.Environ(), childEnv+"=1")

	q, err := p.Open(context.Background(), domain.RegistrySettings{
		Mode: domain.RegistryProcess,
		Dir:  filepath.Join(t.TempDir(), "missing"),
	})
	require.NoError(t, err)

	_, err = q.IsProvidedByRegistry("/bin/App.dll")
	require.ErrorIs(t, err, domain.ErrRegistryQueryFailed)

	err = q.Close()
	require.Error(t, err)
}
