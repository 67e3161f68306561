//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/commands"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
	"github.com/rios0rios0/gitflow-hooks/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/gitflow-hooks/test/infrastructure/repositorydoubles"
)

func TestDescribeBranchCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should describe a feature branch", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewDescribeBranchCommand()

		// when
		description := cmd.Execute("feat-PROJ-1-login")

		// then
		assert.Equal(t, commands.BranchDescription{
			Name:         "feat-PROJ-1-login",
			Type:         "feature",
			Ticket:       "PROJ-1",
			RequiredBase: "develop",
			MergeTargets: []string{"develop"},
			Origin:       "unusual",
		}, description)
	})

	t.Run("should describe a root branch without base or targets", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewDescribeBranchCommand()

		// when
		description := cmd.Execute("main")

		// then
		assert.Equal(t, "main", description.Type)
		assert.Empty(t, description.RequiredBase)
		assert.NotNil(t, description.MergeTargets)
		assert.Empty(t, description.MergeTargets)
		assert.Equal(t, "allowed", description.Origin)
	})

	t.Run("should describe a release branch as a blocked origin", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewDescribeBranchCommand()

		// when
		description := cmd.Execute("release-1.2.0")

		// then
		assert.Equal(t, "blocked", description.Origin)
		assert.Equal(t, []string{"main", "develop"}, description.MergeTargets)
		assert.Empty(t, description.Ticket)
	})
}

func TestListCommandsCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should load the work list from the configured commands file", func(t *testing.T) {
		t.Parallel()

		// given
		settings := &doubles.StubSettingsRepository{
			Settings: entities.Settings{CommandsFile: "/repo/.githooks/commands.conf"},
		}
		config := &doubles.StubCommandConfigRepository{
			Specs: []entities.CommandSpec{
				entitybuilders.NewCommandSpecBuilder().WithHook(entities.HookPrePush).WithCommand("make test").
					BuildCommandSpec(),
				entitybuilders.NewCommandSpecBuilder().WithCommand("make lint").BuildCommandSpec(),
			},
		}
		cmd := commands.NewListCommandsCommand(settings, config)

		// when
		specs, err := cmd.Execute(context.Background(), entities.HookPrePush)

		// then
		require.NoError(t, err)
		require.Len(t, specs, 1)
		assert.Equal(t, "make test", specs[0].Command)
		assert.Equal(t, []string{"/repo/.githooks/commands.conf#pre-push"}, config.LoadCalls)
	})

	t.Run("should reject an unknown hook", func(t *testing.T) {
		t.Parallel()

		// given
		config := &doubles.StubCommandConfigRepository{}
		cmd := commands.NewListCommandsCommand(&doubles.StubSettingsRepository{}, config)

		// when
		_, err := cmd.Execute(context.Background(), "pre-merge")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pre-merge")
		assert.Empty(t, config.LoadCalls)
	})

	t.Run("should fail when settings cannot be loaded", func(t *testing.T) {
		t.Parallel()

		// given
		settings := &doubles.StubSettingsRepository{Err: errors.New("not a git repository")}
		cmd := commands.NewListCommandsCommand(settings, &doubles.StubCommandConfigRepository{})

		// when
		_, err := cmd.Execute(context.Background(), entities.HookPreCommit)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a git repository")
	})
}
