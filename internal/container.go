package internal

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/commands"
	"github.com/rios0rios0/gitflow-hooks/internal/infrastructure/controllers"
	"github.com/rios0rios0/gitflow-hooks/internal/infrastructure/repositories"
)

// RegisterProviders wires repositories, hook commands, controllers and the
// AppInternal that exposes them, in dependency order.
func RegisterProviders(container *dig.Container) error {
	layers := []func(*dig.Container) error{
		repositories.RegisterProviders,
		commands.RegisterProviders,
		controllers.RegisterProviders,
	}
	for _, register := range layers {
		if err := register(container); err != nil {
			return err
		}
	}
	return container.Provide(NewAppInternal)
}
