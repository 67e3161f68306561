package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
)

// RegisterProviders registers the CLI controllers and the slice AppInternal
// builds subcommands from.
func RegisterProviders(container *dig.Container) error {
	providers := []any{
		NewRunController,
		NewClassifyController,
		NewCommandsController,
		NewCheckMergeController,
		NewControllers,
	}
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return err
		}
	}
	return nil
}

// NewControllers lists the controllers in the order their subcommands appear.
func NewControllers(
	runController *RunController,
	classifyController *ClassifyController,
	commandsController *CommandsController,
	checkMergeController *CheckMergeController,
) *[]entities.Controller {
	return &[]entities.Controller{
		runController,
		classifyController,
		commandsController,
		checkMergeController,
	}
}
