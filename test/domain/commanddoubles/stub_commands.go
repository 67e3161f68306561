//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/commands"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
)

// StubHookCommand is a stub implementation of commands.Hook.
type StubHookCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastRequest      commands.HookRequest
}

var _ commands.Hook = (*StubHookCommand)(nil)

func (s *StubHookCommand) Execute(_ context.Context, request commands.HookRequest) error {
	s.ExecuteCallCount++
	s.LastRequest = request
	return s.ExecuteErr
}

// StubCheckMergeCommand is a stub implementation of commands.CheckMerge.
type StubCheckMergeCommand struct {
	Report       commands.MergeReport
	ExecuteErr   error
	LastRevision string
}

var _ commands.CheckMerge = (*StubCheckMergeCommand)(nil)

func (s *StubCheckMergeCommand) Execute(_ context.Context, revision string) (commands.MergeReport, error) {
	s.LastRevision = revision
	return s.Report, s.ExecuteErr
}

// StubListCommandsCommand is a stub implementation of commands.ListCommands.
type StubListCommandsCommand struct {
	Specs      []entities.CommandSpec
	ExecuteErr error
	LastHook   string
}

var _ commands.ListCommands = (*StubListCommandsCommand)(nil)

func (s *StubListCommandsCommand) Execute(_ context.Context, hookName string) ([]entities.CommandSpec, error) {
	s.LastHook = hookName
	return s.Specs, s.ExecuteErr
}

// SpyExecutor is a spy implementation of commands.Executor.
type SpyExecutor struct {
	Results  []entities.ExecutionResult
	Calls    int
	LastOpts commands.ExecutionOptions
	LastList []entities.CommandSpec
}

var _ commands.Executor = (*SpyExecutor)(nil)

func (s *SpyExecutor) Run(
	_ context.Context,
	specs []entities.CommandSpec,
	opts commands.ExecutionOptions,
) []entities.ExecutionResult {
	s.Calls++
	s.LastList = specs
	s.LastOpts = opts
	return s.Results
}
