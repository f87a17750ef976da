package app

import (
	"context"
	"path/filepath"
	"strconv"

	"go.trai.ch/refgraph/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/refgraph/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Watch plans the project at path, then plans it again after every burst of
// changes under the workspace root, until ctx is done. Every result is passed to onPlan.
func (a *App) Watch(ctx context.Context, path string, opts Options, onPlan func(*domain.BuildPlan, error)) error {
	root, err := a.descriptorPath(path)
	if err != nil {
		return err
	}
	start := opts.Workspace
	if start == "" {
		start = filepath.Dir(root)
	}
	ws, err := a.workspaces.Load(start)
	if err != nil {
		return zerr.Wrap(err, "failed to load workspace")
	}

	if err := a.watcher.Start(ctx, ws.Root); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start watcher"), "path", ws.Root)
	}
	a.logger.Info("watching " + ws.Root)

	ignored := domain.PathKey{}
	if opts.MetricsFile != "" {
		if abs, err := filepath.Abs(opts.MetricsFile); err == nil {
			ignored = domain.NewPathKey(abs)
		}
	}

	trigger := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		a.logger.Debug(strconv.Itoa(len(paths)) + " changed files")
		select {
		case trigger <- struct{}{}:
		default:
		}
	})

	g := new(errgroup.Group)
	g.Go(func() error {
		for ev := range a.watcher.Events() {
			if domain.NewPathKey(ev.Path) == ignored {
				continue
			}
			debouncer.Add(ev.Path)
		}
		return nil
	})

	onPlan(a.Plan(ctx, root, opts))
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-trigger:
			onPlan(a.Plan(ctx, root, opts))
		}
	}

	debouncer.Stop()
	stopErr := a.watcher.Stop()
	if err := g.Wait(); err != nil {
		return err
	}
	if stopErr != nil {
		return zerr.Wrap(stopErr, "failed to stop watcher")
	}
	return nil
}
