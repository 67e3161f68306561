package main

import (
	"fmt"

	"go.uber.org/dig"

	"github.com/rios0rios0/gitflow-hooks/internal"
)

// buildAppContext resolves the controller graph.
func buildAppContext() (*internal.AppInternal, error) {
	container := dig.New()
	if err := internal.RegisterProviders(container); err != nil {
		return nil, fmt.Errorf("failed to register providers: %w", err)
	}

	var app *internal.AppInternal
	err := container.Invoke(func(resolved *internal.AppInternal) {
		app = resolved
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build application: %w", dig.RootCause(err))
	}
	return app, nil
}
