// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/refgraph/internal/adapters/config"
	_ "go.trai.ch/refgraph/internal/adapters/fs"
	_ "go.trai.ch/refgraph/internal/adapters/inspector"
	_ "go.trai.ch/refgraph/internal/adapters/logger"
	_ "go.trai.ch/refgraph/internal/adapters/metrics"
	_ "go.trai.ch/refgraph/internal/adapters/registry"
	_ "go.trai.ch/refgraph/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/refgraph/internal/app"
	_ "go.trai.ch/refgraph/internal/engine/planner"
)
