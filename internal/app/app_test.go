package app_test

import (
	"bytes"
	"context"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/refgraph/internal/adapters/config"
	"go.trai.ch/refgraph/internal/adapters/fs"
	"go.trai.ch/refgraph/internal/adapters/metrics"
	"go.trai.ch/refgraph/internal/adapters/registry"
	"go.trai.ch/refgraph/internal/app"
	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/refgraph/internal/core/ports"
	"go.trai.ch/refgraph/internal/core/ports/mocks"
	"go.trai.ch/refgraph/internal/engine/planner"
	"go.uber.org/mock/gomock"
)

// workspace lays out App -> Lib -> vendor/Vendor.dll with Release as the workspace default.
type workspace struct {
	root string
}

func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	w := &workspace{root: t.TempDir()}
	w.write(t, domain.WorkFileName, "solution: Demo\nconfiguration: Release\n")
	w.write(t, "vendor/Vendor.dll", "vendor")
	w.write(t, "Lib/Lib.proj.yaml", `
name: Lib
configurations:
  - name: Debug
  - name: Release
references:
  - name: Vendor
    hintPath: ../vendor/Vendor.dll
`)
	w.write(t, "App/App.proj.yaml", `
name: App
configurations:
  - name: Debug
  - name: Release
    platform: x64
references:
  - kind: project
    name: Lib
    project: ../Lib/Lib.proj.yaml
`)
	return w
}

func (w *workspace) path(rel string) string {
	return filepath.Join(w.root, filepath.FromSlash(rel))
}

func (w *workspace) write(t *testing.T, rel, content string) string {
	t.Helper()
	p := w.path(rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), domain.DirPerm))
	require.NoError(t, os.WriteFile(p, []byte(content), domain.PrivateFilePerm))
	return p
}

// build writes rel and dates it after every descriptor.
func (w *workspace) build(t *testing.T, rel string) {
	t.Helper()
	p := w.write(t, rel, "MZ")
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(p, future, future))
}

func newApp(t *testing.T, watcher ports.Watcher) (*app.App, *metrics.Metrics) {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	insp := mocks.NewMockModuleInspector(ctrl)
	insp.EXPECT().Dependencies(gomock.Any()).Return(nil, nil).AnyTimes()

	m := metrics.New()
	a := app.New(
		config.NewLoader(log),
		config.NewParser(),
		fs.NewFileSystem(),
		insp,
		registry.NewProvider(fs.NewWalker(), fs.NewHasher(), log),
		watcher,
		log,
		m,
		planner.New(log),
	)
	return a, m
}

func rels(files []domain.OutputFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Rel)
	}
	return out
}

func TestApp_Resolve(t *testing.T) {
	w := newWorkspace(t)
	a, _ := newApp(t, nil)

	res, err := a.Resolve(context.Background(), w.path("App/App.proj.yaml"), app.Options{})
	require.NoError(t, err)

	assert.Equal(t, "App", res.Project)
	assert.Equal(t, "Release|x64", res.Configuration.String(), "the workspace default matches by name")
	require.Len(t, res.References, 1)
	assert.Equal(t, "Lib", res.References[0].Name)
	assert.Equal(t, domain.KindProject, res.References[0].Kind)
	assert.Equal(t, w.path("Lib/bin/Release/Lib.dll"), res.References[0].Path)
	assert.True(t, res.References[0].CopyLocal)
}

func TestApp_Outputs(t *testing.T) {
	w := newWorkspace(t)
	w.build(t, "Lib/bin/Release/Lib.dll")
	w.build(t, "Lib/bin/Release/Lib.pdb")
	a, _ := newApp(t, nil)

	res, err := a.Outputs(context.Background(), w.path("App/App.proj.yaml"), app.Options{})
	require.NoError(t, err)

	assert.Equal(t, w.path("App/bin/Release/App.dll"), res.Output)
	assert.Equal(t, []string{"App.dll", "Lib.dll", "Lib.pdb", "Vendor.dll"}, rels(res.Files))
}

func TestApp_Outputs_ReferencedProjectNotBuilt(t *testing.T) {
	w := newWorkspace(t)
	a, _ := newApp(t, nil)

	_, err := a.Outputs(context.Background(), w.path("App/App.proj.yaml"), app.Options{})
	require.ErrorIs(t, err, domain.ErrMissingProjectOutput)
}

func TestApp_Stale(t *testing.T) {
	w := newWorkspace(t)
	a, _ := newApp(t, nil)
	lib := w.path("Lib/Lib.proj.yaml")

	res, err := a.Stale(context.Background(), lib, app.Options{})
	require.NoError(t, err)
	assert.True(t, res.Stale)

	w.build(t, "Lib/bin/Release/Lib.dll")
	res, err = a.Stale(context.Background(), lib, app.Options{})
	require.NoError(t, err)
	assert.False(t, res.Stale)

	res, err = a.Stale(context.Background(), lib, app.Options{Configuration: "Debug"})
	require.NoError(t, err)
	assert.True(t, res.Stale, "Debug has its own output")
	assert.Equal(t, w.path("Lib/bin/Debug/Lib.dll"), res.Output)
}

func TestApp_Plan(t *testing.T) {
	w := newWorkspace(t)
	w.build(t, "Lib/bin/Debug/Lib.dll")
	a, _ := newApp(t, nil)

	plan, err := a.Plan(context.Background(), w.path("App"), app.Options{Configuration: "Debug"})
	require.NoError(t, err)

	require.Len(t, plan.Projects, 2)
	assert.Equal(t, "Lib", plan.Projects[0].Name)
	assert.Equal(t, domain.StatusUpToDate, plan.Projects[0].Status)
	assert.Equal(t, "App", plan.Projects[1].Name)
	assert.Equal(t, domain.StatusStale, plan.Projects[1].Status)
	assert.True(t, plan.Projects[1].CopyFiles.Contains(w.path("vendor/Vendor.dll")))
}

func TestApp_Plan_PlatformOverride(t *testing.T) {
	w := newWorkspace(t)
	a, _ := newApp(t, nil)

	plan, err := a.Plan(context.Background(), w.path("App/App.proj.yaml"), app.Options{Configuration: "Release", Platform: "x64"})
	require.NoError(t, err)
	assert.Equal(t, "Release|x64", plan.Projects[1].Configuration.String())
}

func TestApp_Graph(t *testing.T) {
	w := newWorkspace(t)
	a, _ := newApp(t, nil)

	vertices, err := a.Graph(context.Background(), w.path("App/App.proj.yaml"), app.Options{})
	require.NoError(t, err)
	require.Len(t, vertices, 2)
	assert.Equal(t, "Lib", vertices[0].Name)
	assert.Equal(t, "App", vertices[1].Name)
	assert.Equal(t, []domain.PathKey{vertices[0].Key}, vertices[1].Dependencies)
}

func TestApp_DescriptorDirectory(t *testing.T) {
	w := newWorkspace(t)
	a, _ := newApp(t, nil)

	t.Run("empty", func(t *testing.T) {
		require.NoError(t, os.MkdirAll(w.path("Empty"), domain.DirPerm))
		_, err := a.Graph(context.Background(), w.path("Empty"), app.Options{})
		require.ErrorIs(t, err, domain.ErrDescriptorNotFound)
	})

	t.Run("ambiguous", func(t *testing.T) {
		w.write(t, "Lib/Lib.Tests.proj.hcl", "project \"Lib.Tests\" {}\n")
		_, err := a.Graph(context.Background(), w.path("Lib"), app.Options{})
		require.ErrorIs(t, err, domain.ErrDescriptorNotFound)
	})
}

func TestApp_MetricsFile(t *testing.T) {
	w := newWorkspace(t)
	a, _ := newApp(t, nil)
	out := filepath.Join(t.TempDir(), "refgraph.prom")

	_, err := a.Plan(context.Background(), w.path("App/App.proj.yaml"), app.Options{MetricsFile: out})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `refgraph_project_loads_total{result="miss"} 2`)
	assert.Contains(t, string(data), `refgraph_references_resolved_total`)
}

func TestApp_SnapshotAndServeRegistry(t *testing.T) {
	w := newWorkspace(t)
	a, _ := newApp(t, nil)
	snapshot := filepath.Join(t.TempDir(), "registry.json")

	n, err := a.SnapshotRegistry(context.Background(), w.path("vendor"), snapshot)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	in := strings.NewReader(w.path("vendor/Vendor.dll") + "\n" + w.path("App/App.proj.yaml") + "\n")
	var out bytes.Buffer
	err = a.ServeRegistry(context.Background(), domain.RegistrySettings{Snapshot: snapshot}, in, &out)
	require.NoError(t, err)
	assert.Equal(t, "1\n0\n", out.String())
}

func TestApp_TracesOperations(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = tp.Shutdown(context.Background())
	})

	w := newWorkspace(t)
	a, _ := newApp(t, nil)

	_, err := a.Resolve(context.Background(), w.path("Lib/Lib.proj.yaml"), app.Options{})
	require.NoError(t, err)
	_, err = a.Resolve(context.Background(), w.path("Missing/Missing.proj.yaml"), app.Options{})
	require.ErrorIs(t, err, domain.ErrDescriptorNotFound)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "resolve", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
}

func TestApp_Watch(t *testing.T) {
	w := newWorkspace(t)
	ctrl := gomock.NewController(t)
	watcher := mocks.NewMockWatcher(ctrl)

	events := make(chan ports.WatchEvent)
	watcher.EXPECT().Start(gomock.Any(), w.root).Return(nil)
	watcher.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(yield func(ports.WatchEvent) bool) {
		for ev := range events {
			if !yield(ev) {
				return
			}
		}
	}))
	watcher.EXPECT().Stop().DoAndReturn(func() error {
		close(events)
		return nil
	})

	a, _ := newApp(t, watcher)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	plans := make(chan *domain.BuildPlan, 4)
	done := make(chan error, 1)
	go func() {
		done <- a.Watch(ctx, w.path("App/App.proj.yaml"), app.Options{}, func(p *domain.BuildPlan, err error) {
			assert.NoError(t, err)
			plans <- p
		})
	}()

	next := func() *domain.BuildPlan {
		select {
		case p := <-plans:
			return p
		case <-time.After(5 * time.Second):
			t.Fatal("no plan delivered")
			return nil
		}
	}

	first := next()
	assert.Equal(t, domain.StatusStale, first.Projects[0].Status)

	w.build(t, "Lib/bin/Release/Lib.dll")
	events <- ports.WatchEvent{Path: w.path("Lib/bin/Release/Lib.dll"), Operation: ports.OpCreate}

	second := next()
	assert.Equal(t, domain.StatusUpToDate, second.Projects[0].Status)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
