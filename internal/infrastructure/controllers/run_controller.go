package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/commands"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
)

// RunController handles the "run" subcommand every hook script calls.
type RunController struct {
	command commands.Hook
}

// NewRunController creates a new RunController.
func NewRunController(command commands.Hook) *RunController {
	return &RunController{command: command}
}

// GetBind returns the Cobra command metadata for the run controller.
func (it *RunController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "run <hook> [hook-args...]",
		Short: "Run the Git-Flow checks and configured commands of a git hook",
		Long: `Run the Git-Flow validations that belong to a git hook, then the
commands configured for it in .githooks/commands.conf.

Install it by calling it from each hook script, for example .git/hooks/pre-commit:

  #!/bin/sh
  exec gitflow-hooks run pre-commit "$@"

Set BYPASS_HOOKS=1 to skip everything once.`,
		Args: cobra.MinimumNArgs(1),
	}
}

// Execute runs the hook. Rule violations are printed with their remediation.
func (it *RunController) Execute(cmd *cobra.Command, args []string) error {
	err := it.command.Execute(cmd.Context(), commands.HookRequest{
		HookName: args[0],
		Args:     args[1:],
	})
	if failure, ok := entities.AsValidationFailure(err); ok {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), failure.Report())
	}
	return err
}
