package controllers

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/commands"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
)

// ClassifyController handles the "classify" subcommand.
type ClassifyController struct {
	command commands.DescribeBranch
}

// NewClassifyController creates a new ClassifyController.
func NewClassifyController(command commands.DescribeBranch) *ClassifyController {
	return &ClassifyController{command: command}
}

func (it *ClassifyController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "classify <branch>...",
		Short: "Show the Git-Flow type and rules of branch names",
		Args:  cobra.MinimumNArgs(1),
	}
}

func (it *ClassifyController) Execute(cmd *cobra.Command, args []string) error {
	descriptions := make([]commands.BranchDescription, 0, len(args))
	for _, name := range args {
		descriptions = append(descriptions, it.command.Execute(name))
	}
	return writeYAML(cmd, descriptions)
}

func writeYAML(cmd *cobra.Command, value any) error {
	encoder := yaml.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent(2)
	if err := encoder.Encode(value); err != nil {
		return err
	}
	return encoder.Close()
}
