package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers the hook use cases and binds the interfaces the
// controllers and HookCommand depend on.
func RegisterProviders(container *dig.Container) error {
	providers := []any{
		NewMergeInspector,
		NewCommandExecutor,
		NewRemediator,
		NewBranchCommand,
		NewCommitMessageCommand,
		NewCheckoutCommand,
		NewPushCommand,
		NewCheckMergeCommand,
		NewHookCommand,
		NewListCommandsCommand,
		NewDescribeBranchCommand,
		func(impl *CommandExecutor) Executor { return impl },
		func(impl *CheckMergeCommand) CheckMerge { return impl },
		func(impl *HookCommand) Hook { return impl },
		func(impl *ListCommandsCommand) ListCommands { return impl },
		func(impl *DescribeBranchCommand) DescribeBranch { return impl },
	}
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return err
		}
	}
	return nil
}
