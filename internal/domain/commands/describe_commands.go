package commands

import (
	"context"
	"fmt"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/repositories"
)

// ListCommands is the interface for the commands subcommand.
type ListCommands interface {
	Execute(ctx context.Context, hookName string) ([]entities.CommandSpec, error)
}

// ListCommandsCommand returns the ordered work list a hook would run.
type ListCommandsCommand struct {
	settings repositories.SettingsRepository
	config   repositories.CommandConfigRepository
}

// NewListCommandsCommand creates a new ListCommandsCommand.
func NewListCommandsCommand(
	settings repositories.SettingsRepository,
	config repositories.CommandConfigRepository,
) *ListCommandsCommand {
	return &ListCommandsCommand{settings: settings, config: config}
}

// Execute loads the settings for hookName and parses its commands.
func (it *ListCommandsCommand) Execute(ctx context.Context, hookName string) ([]entities.CommandSpec, error) {
	if !entities.IsKnownHook(hookName) {
		return nil, fmt.Errorf("unknown hook %q, expected one of %v", hookName, entities.KnownHooks())
	}
	settings, err := it.settings.Load(ctx, hookName)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return it.config.Load(ctx, settings.CommandsFile, hookName)
}

// DescribeBranch is the interface for the classify subcommand.
type DescribeBranch interface {
	Execute(name string) BranchDescription
}

// BranchDescription is the Git-Flow view of one branch name.
type BranchDescription struct {
	Name         string   `yaml:"name"`
	Type         string   `yaml:"type"`
	Ticket       string   `yaml:"ticket,omitempty"`
	RequiredBase string   `yaml:"requiredBase,omitempty"`
	MergeTargets []string `yaml:"mergeTargets"`
	Origin       string   `yaml:"originPolicy"`
}

// DescribeBranchCommand classifies names without touching the repository.
type DescribeBranchCommand struct{}

// NewDescribeBranchCommand creates a new DescribeBranchCommand.
func NewDescribeBranchCommand() *DescribeBranchCommand {
	return &DescribeBranchCommand{}
}

func (it *DescribeBranchCommand) Execute(name string) BranchDescription {
	branchType := entities.Classify(name)
	description := BranchDescription{
		Name:         name,
		Type:         branchType.String(),
		Ticket:       entities.TicketID(name),
		MergeTargets: []string{},
		Origin:       entities.CanOriginateBranches(branchType).String(),
	}
	if base, ok := entities.RequiredBase(branchType); ok {
		description.RequiredBase = base.String()
	}
	for _, target := range entities.AllowedMergeTargets(branchType) {
		description.MergeTargets = append(description.MergeTargets, target.String())
	}
	return description
}
