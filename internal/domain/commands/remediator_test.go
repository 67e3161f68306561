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

func TestRemediatorExecute(t *testing.T) {
	t.Parallel()

	t.Run("should stage only files the fix commands modified", func(t *testing.T) {
		t.Parallel()

		// given
		git := doubles.NewStubGitRepository("feat-PROJ-1")
		git.ModifiedSequence = [][]string{{"notes.md"}, {"notes.md", "main.go", "a.go"}}
		remediator := commands.NewRemediator(git)
		before := remediator.Snapshot(context.Background())

		// when
		report, err := remediator.Execute(context.Background(), &entities.Settings{AutoAddAfterFix: true}, before)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"a.go", "main.go"}, report.Modified)
		assert.Equal(t, []string{"a.go", "main.go"}, report.Staged)
		assert.Equal(t, []string{"a.go", "main.go"}, git.StagedPaths)
	})

	t.Run("should only report modified files when auto-add is off", func(t *testing.T) {
		t.Parallel()

		// given
		git := doubles.NewStubGitRepository("feat-PROJ-1")
		git.ModifiedSequence = [][]string{{}, {"main.go"}}
		remediator := commands.NewRemediator(git)
		before := remediator.Snapshot(context.Background())

		// when
		report, err := remediator.Execute(context.Background(), &entities.Settings{}, before)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"main.go"}, report.Modified)
		assert.Empty(t, report.Staged)
		assert.Empty(t, git.StagedPaths)
	})

	t.Run("should keep going when a file cannot be staged", func(t *testing.T) {
		t.Parallel()

		// given
		git := doubles.NewStubGitRepository("feat-PROJ-1")
		git.ModifiedSequence = [][]string{{}, {"main.go"}}
		git.StageErr = errors.New("index locked")
		remediator := commands.NewRemediator(git)

		// when
		report, err := remediator.Execute(context.Background(), &entities.Settings{AutoAddAfterFix: true},
			remediator.Snapshot(context.Background()))

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"main.go"}, report.Modified)
		assert.Empty(t, report.Staged)
	})

	t.Run("should fail when the working tree cannot be listed", func(t *testing.T) {
		t.Parallel()

		// given
		git := doubles.NewStubGitRepository("feat-PROJ-1")
		git.ModifiedErr = errors.New("broken index")
		remediator := commands.NewRemediator(git)

		// when
		snapshot := remediator.Snapshot(context.Background())
		_, err := remediator.Execute(context.Background(), &entities.Settings{AutoAddAfterFix: true}, snapshot)

		// then
		assert.Empty(t, snapshot)
		assert.Error(t, err)
	})
}
