package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/refgraph/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger) *Components {
	return &Components{
		App:    app,
		Logger: logger,
	}
}

// NewApp resolves the application graph registered by the wiring package.
func NewApp(ctx context.Context) (*Components, error) {
	components, _, err := graft.ExecuteFor[*Components](ctx)
	if err != nil {
		return nil, err
	}
	return components, nil
}

type configurableLogger interface {
	SetVerbose(enable bool)
	SetJSON(enable bool)
}

// ConfigureLogging applies the verbosity and format flags when the logger supports them.
func (c *Components) ConfigureLogging(verbose, jsonLogs bool) {
	if l, ok := c.Logger.(configurableLogger); ok {
		l.SetJSON(jsonLogs)
		l.SetVerbose(verbose)
	}
}
