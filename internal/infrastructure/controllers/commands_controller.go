package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/commands"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
)

// CommandsController handles the "commands" subcommand.
type CommandsController struct {
	command commands.ListCommands
}

// NewCommandsController creates a new CommandsController.
func NewCommandsController(command commands.ListCommands) *CommandsController {
	return &CommandsController{command: command}
}

func (it *CommandsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "commands <hook>",
		Short: "Print the ordered commands a hook would run",
		Long: `Parse .githooks/commands.conf and print, in execution order, the
commands configured for a hook. Malformed lines are reported as warnings.`,
		Args: cobra.ExactArgs(1),
	}
}

func (it *CommandsController) Execute(cmd *cobra.Command, args []string) error {
	specs, err := it.command.Execute(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if specs == nil {
		specs = []entities.CommandSpec{}
	}
	return writeYAML(cmd, specs)
}
