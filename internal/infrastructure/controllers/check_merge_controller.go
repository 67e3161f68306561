package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/commands"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
)

// CheckMergeController handles the "check-merge" subcommand.
type CheckMergeController struct {
	command commands.CheckMerge
}

// NewCheckMergeController creates a new CheckMergeController.
func NewCheckMergeController(command commands.CheckMerge) *CheckMergeController {
	return &CheckMergeController{command: command}
}

func (it *CheckMergeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "check-merge [revision]",
		Short: "Check whether a commit is a Git-Flow compliant merge into the current branch",
		Args:  cobra.MaximumNArgs(1),
	}
}

// Execute prints the verdict and fails on violations.
func (it *CheckMergeController) Execute(cmd *cobra.Command, args []string) error {
	revision := ""
	if len(args) == 1 {
		revision = args[0]
	}
	report, err := it.command.Execute(cmd.Context(), revision)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s: %s\n", report.SHA, report.Verdict)
	if report.SourceBranch != "" {
		_, _ = fmt.Fprintf(out, "  %s -> %s\n", report.SourceBranch, report.TargetBranch)
	}
	if failure, ok := entities.AsValidationFailure(report.Failure()); ok {
		_, _ = fmt.Fprint(cmd.ErrOrStderr(), failure.Report())
		return failure
	}
	return nil
}
