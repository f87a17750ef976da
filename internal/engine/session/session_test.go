package session_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/refgraph/internal/adapters/fs"
	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/core/ports/mocks"
	"go.trai.ch/refgraph/internal/engine/session"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

var debug = domain.NewConfigurationKey("Debug", "")

func TestSession_CloseReleasesRegistryOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	query := mocks.NewMockRegistryQuery(ctrl)
	provider := mocks.NewMockRegistryProvider(ctrl)

	ws := &domain.Workspace{Registry: domain.RegistrySettings{Mode: domain.RegistryProcess, Dir: "/registry"}}
	provider.EXPECT().Open(gomock.Any(), ws.Registry).Return(query, nil)
	query.EXPECT().Close().Return(nil).Times(1)

	s, err := session.Open(context.Background(), session.Options{
		Workspace: ws,
		Parser:    mocks.NewMockDescriptorParser(ctrl),
		FS:        fs.NewFileSystem(),
		Registry:  provider,
		Logger:    mocks.NewMockLogger(ctrl),
	})
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.Load("/ws/App.proj.yaml")
	assert.True(t, errors.Is(err, domain.ErrSessionClosed))
}

func TestSession_RunClosesOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	query := mocks.NewMockRegistryQuery(ctrl)
	provider := mocks.NewMockRegistryProvider(ctrl)
	provider.EXPECT().Open(gomock.Any(), gomock.Any()).Return(query, nil)
	query.EXPECT().Close().Return(nil).Times(1)

	boom := zerr.New("boom")
	err := session.Run(context.Background(), session.Options{
		FS:       fs.NewFileSystem(),
		Registry: provider,
	}, func(*session.Session) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestSession_RunClosesOnPanic(t *testing.T) {
	ctrl := gomock.NewController(t)
	query := mocks.NewMockRegistryQuery(ctrl)
	provider := mocks.NewMockRegistryProvider(ctrl)
	provider.EXPECT().Open(gomock.Any(), gomock.Any()).Return(query, nil)
	query.EXPECT().Close().Return(nil).Times(1)

	assert.Panics(t, func() {
		_ = session.Run(context.Background(), session.Options{
			FS:       fs.NewFileSystem(),
			Registry: provider,
		}, func(*session.Session) error {
			panic("abort")
		})
	})
}

func TestSession_OpenFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockRegistryProvider(ctrl)
	provider.EXPECT().Open(gomock.Any(), gomock.Any()).Return(nil, domain.ErrRegistryUnavailable)

	_, err := session.Open(context.Background(), session.Options{Registry: provider})
	assert.True(t, errors.Is(err, domain.ErrRegistryUnavailable))
}

func TestSession_RegistryMembershipIsMemoized(t *testing.T) {
	ctrl := gomock.NewController(t)
	query := mocks.NewMockRegistryQuery(ctrl)
	provider := mocks.NewMockRegistryProvider(ctrl)
	provider.EXPECT().Open(gomock.Any(), gomock.Any()).Return(query, nil)
	query.EXPECT().IsProvidedByRegistry("/registry/Shared.dll").Return(true, nil).Times(1)
	query.EXPECT().Close().Return(nil)

	err := session.Run(context.Background(), session.Options{
		FS:       fs.NewFileSystem(),
		Registry: provider,
	}, func(s *session.Session) error {
		assert.True(t, s.IsProvidedByRegistry("/registry/Shared.dll"))
		assert.True(t, s.IsProvidedByRegistry("/REGISTRY/shared.DLL"))
		return nil
	})
	require.NoError(t, err)
}

func TestSession_IsStale(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		setup  func(t *testing.T, descriptor, lib, output string)
		expect bool
	}{
		{
			name:   "missing output",
			setup:  func(*testing.T, string, string, string) {},
			expect: true,
		},
		{
			name: "output newer than every input",
			setup: func(t *testing.T, _, _, output string) {
				touch(t, output, t0.Add(time.Hour))
			},
			expect: false,
		},
		{
			name: "reference newer than output",
			setup: func(t *testing.T, _, lib, output string) {
				touch(t, output, t0.Add(time.Hour))
				touch(t, lib, t0.Add(2*time.Hour))
			},
			expect: true,
		},
		{
			name: "descriptor newer than output",
			setup: func(t *testing.T, descriptor, _, output string) {
				touch(t, output, t0.Add(time.Hour))
				touch(t, descriptor, t0.Add(2*time.Hour))
			},
			expect: true,
		},
		{
			name: "missing reference forces rebuild regardless of output age",
			setup: func(t *testing.T, _, lib, output string) {
				touch(t, output, t0.Add(100*time.Hour))
				require.NoError(t, os.Remove(lib))
			},
			expect: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			descriptor := filepath.Join(root, "App", "App.proj.yaml")
			lib := filepath.Join(root, "lib", "Foo.dll")
			output := filepath.Join(root, "App", "bin", "Debug", "App.dll")
			touch(t, descriptor, t0)
			touch(t, lib, t0)
			tt.setup(t, descriptor, lib, output)

			ctrl := gomock.NewController(t)
			parser := mocks.NewMockDescriptorParser(ctrl)
			parser.EXPECT().Parse(descriptor).Return(&domain.ProjectDocument{
				Path:           descriptor,
				Name:           "App",
				Configurations: []domain.ConfigurationDecl{{Name: "Debug"}},
				References: []domain.ReferenceDecl{
					{Kind: domain.KindComponent, Name: "Foo", HintPath: lib},
				},
			}, nil)

			err := session.Run(context.Background(), session.Options{
				Parser: parser,
				FS:     fs.NewFileSystem(),
				Logger: mocks.NewMockLogger(ctrl),
			}, func(s *session.Session) error {
				n, err := s.Load(descriptor)
				require.NoError(t, err)
				stale, err := s.IsStale(n, debug)
				require.NoError(t, err)
				assert.Equal(t, tt.expect, stale)
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func touch(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte("x"), domain.PrivateFilePerm))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}
