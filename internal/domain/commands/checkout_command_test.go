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
	doubles "github.com/rios0rios0/gitflow-hooks/test/infrastructure/repositorydoubles"
)

func TestCheckoutCommandExecute(t *testing.T) {
	t.Parallel()

	creation := []string{"abc123", "abc123", "1"}

	// created returns a stub on a branch whose reflog shows only its creation.
	created := func(branch, previous string) *doubles.StubGitRepository {
		git := doubles.NewStubGitRepository(branch)
		git.Previous = previous
		git.Created[branch] = true
		return git
	}

	t.Run("should record the base of a branch created from develop", func(t *testing.T) {
		t.Parallel()

		// given
		git := created("feat-PROJ-1-login", "develop")
		cmd := commands.NewCheckoutCommand(git)

		// when
		err := cmd.Execute(context.Background(), creation)

		// then
		require.NoError(t, err)
		assert.Equal(t, []doubles.ConfigCall{{Key: "branch.feat-PROJ-1-login.base", Value: "develop"}},
			git.SetConfigCalls)
	})

	t.Run("should reject a branch created from a release branch", func(t *testing.T) {
		t.Parallel()

		// given
		git := created("feat-PROJ-1-login", "release-1.2.0")
		cmd := commands.NewCheckoutCommand(git)

		// when
		err := cmd.Execute(context.Background(), creation)

		// then
		require.ErrorIs(t, err, entities.ErrHookFailed)
		assert.Empty(t, git.SetConfigCalls)
	})

	t.Run("should reject a hotfix created from develop", func(t *testing.T) {
		t.Parallel()

		// given
		git := created("hotfix-OPS-1", "develop")
		cmd := commands.NewCheckoutCommand(git)

		// when
		err := cmd.Execute(context.Background(), creation)

		// then
		require.ErrorIs(t, err, entities.ErrHookFailed)
		assert.Empty(t, git.SetConfigCalls)
	})

	t.Run("should record an unusual origin with a warning", func(t *testing.T) {
		t.Parallel()

		// given
		git := created("feat-PROJ-2", "feat-PROJ-1")
		cmd := commands.NewCheckoutCommand(git)

		// when
		err := cmd.Execute(context.Background(), creation)

		// then
		require.NoError(t, err)
		assert.Equal(t, "feat-PROJ-1", git.Config["branch.feat-PROJ-2.base"])
	})

	t.Run("should ignore file checkouts, switches to existing branches and short argument lists", func(t *testing.T) {
		t.Parallel()

		argLists := [][]string{
			{"abc123", "abc123", "0"},
			{"abc123", "def456", "1"},
			{"abc123"},
			nil,
		}
		for _, args := range argLists {
			// given
			git := created("feat-PROJ-1", "release-1.0.0")
			cmd := commands.NewCheckoutCommand(git)

			// when
			err := cmd.Execute(context.Background(), args)

			// then
			require.NoError(t, err, args)
			assert.Empty(t, git.SetConfigCalls, args)
		}
	})

	t.Run("should ignore a switch to an existing branch at the same commit", func(t *testing.T) {
		t.Parallel()

		// given
		git := doubles.NewStubGitRepository("feat-PROJ-1")
		git.Previous = "release-1.2.0"
		cmd := commands.NewCheckoutCommand(git)

		// when
		err := cmd.Execute(context.Background(), creation)

		// then
		require.NoError(t, err)
		assert.Empty(t, git.SetConfigCalls)
	})

	t.Run("should never treat a switch to a protected branch as a creation", func(t *testing.T) {
		t.Parallel()

		for _, branch := range []string{"develop", "main"} {
			// given
			git := created(branch, "release-1.2.0")
			cmd := commands.NewCheckoutCommand(git)

			// when
			err := cmd.Execute(context.Background(), creation)

			// then
			require.NoError(t, err, branch)
			assert.Empty(t, git.SetConfigCalls, branch)
		}
	})

	t.Run("should not block when the branch reflog cannot be read", func(t *testing.T) {
		t.Parallel()

		// given
		git := created("feat-PROJ-1", "release-1.2.0")
		git.CreatedErr = errors.New("permission denied")
		cmd := commands.NewCheckoutCommand(git)

		// when
		err := cmd.Execute(context.Background(), creation)

		// then
		require.NoError(t, err)
		assert.Empty(t, git.SetConfigCalls)
	})

	t.Run("should skip branches whose base is already recorded", func(t *testing.T) {
		t.Parallel()

		// given
		git := created("feat-PROJ-1", "release-1.0.0")
		git.Config["branch.feat-PROJ-1.base"] = "develop"
		cmd := commands.NewCheckoutCommand(git)

		// when
		err := cmd.Execute(context.Background(), creation)

		// then
		require.NoError(t, err)
		assert.Empty(t, git.SetConfigCalls)
	})

	t.Run("should not block when the previous branch is unknown or unreadable", func(t *testing.T) {
		t.Parallel()

		// given
		unreadable := created("feat-PROJ-1", "")
		unreadable.PreviousErr = errors.New("no reflog")
		empty := created("feat-PROJ-1", "")

		// when
		unreadableErr := commands.NewCheckoutCommand(unreadable).Execute(context.Background(), creation)
		emptyErr := commands.NewCheckoutCommand(empty).Execute(context.Background(), creation)

		// then
		assert.NoError(t, unreadableErr)
		assert.NoError(t, emptyErr)
		assert.Empty(t, unreadable.SetConfigCalls)
		assert.Empty(t, empty.SetConfigCalls)
	})

	t.Run("should not block when recording the base fails", func(t *testing.T) {
		t.Parallel()

		// given
		git := created("feat-PROJ-1", "develop")
		git.SetConfigErr = errors.New("read-only config")
		cmd := commands.NewCheckoutCommand(git)

		// when
		err := cmd.Execute(context.Background(), creation)

		// then
		require.NoError(t, err)
		assert.Len(t, git.SetConfigCalls, 1)
	})
}
