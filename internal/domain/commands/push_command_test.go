//go:build unit

package commands_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/commands"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
	doubles "github.com/rios0rios0/gitflow-hooks/test/infrastructure/repositorydoubles"
)

// pushGraph has main at m0 and develop at d1 (one commit ahead of main).
// The current branch gets `commits` linear commits on top of base.
func pushGraph(branch, base string, commits int) *doubles.StubGitRepository {
	git := doubles.NewStubGitRepository(branch).
		WithCommit("m0", "chore: PROJ-0 init").
		WithCommit("d1", "feat: PROJ-0 start", "m0").
		WithBranch("main", "m0").
		WithBranch("develop", "d1")

	parent := "d1"
	if base == "main" {
		parent = "m0"
	}
	for i := 1; i <= commits; i++ {
		sha := fmt.Sprintf("c%d", i)
		git.WithCommit(sha, fmt.Sprintf("feat: PROJ-1 step %d", i), parent)
		parent = sha
	}
	git.WithBranch(branch, parent)
	return git
}

func newPushCommand(git *doubles.StubGitRepository) *commands.PushCommand {
	return commands.NewPushCommand(git, commands.NewMergeInspector(git))
}

func TestPushCommandShortLived(t *testing.T) {
	t.Parallel()

	settings := &entities.Settings{MaxCommits: 5}

	t.Run("should accept a small feature branch based on develop", func(t *testing.T) {
		t.Parallel()

		// given
		git := pushGraph("feat-PROJ-1", "develop", 3)

		// when
		err := newPushCommand(git).Execute(context.Background(), settings)

		// then
		assert.NoError(t, err)
	})

	t.Run("should reject a feature branch with too many commits", func(t *testing.T) {
		t.Parallel()

		// given
		git := pushGraph("feat-PROJ-1", "develop", 6)

		// when
		err := newPushCommand(git).Execute(context.Background(), settings)

		// then
		failure, ok := entities.AsValidationFailure(err)
		require.True(t, ok, "expected a validation failure, got %v", err)
		assert.Equal(t, "6 commits ahead of develop", failure.Actual)
		assert.Contains(t, failure.Remediation, "git rebase -i develop")
	})

	t.Run("should exempt release branches from the commit limit", func(t *testing.T) {
		t.Parallel()

		// given
		git := pushGraph("release-1.2.0", "develop", 12)

		// when
		err := newPushCommand(git).Execute(context.Background(), settings)

		// then
		assert.NoError(t, err)
	})

	t.Run("should disable the commit limit when it is zero", func(t *testing.T) {
		t.Parallel()

		// given
		git := pushGraph("feat-PROJ-1", "develop", 9)

		// when
		err := newPushCommand(git).Execute(context.Background(), &entities.Settings{})

		// then
		assert.NoError(t, err)
	})

	t.Run("should reject a hotfix branched from develop", func(t *testing.T) {
		t.Parallel()

		// given
		git := pushGraph("hotfix-OPS-1", "develop", 1)

		// when
		err := newPushCommand(git).Execute(context.Background(), settings)

		// then
		failure, ok := entities.AsValidationFailure(err)
		require.True(t, ok, "expected a validation failure, got %v", err)
		assert.Equal(t, "hotfix branches must be based on main", failure.Rule)
		assert.Contains(t, failure.Remediation, "git rebase --onto main develop hotfix-OPS-1")
	})

	t.Run("should accept a hotfix branched from main", func(t *testing.T) {
		t.Parallel()

		// given
		git := pushGraph("hotfix-OPS-1", "main", 1)

		// when
		err := newPushCommand(git).Execute(context.Background(), settings)

		// then
		assert.NoError(t, err)
	})

	t.Run("should prefer the recorded base over detection", func(t *testing.T) {
		t.Parallel()

		// given
		git := pushGraph("feat-PROJ-1", "develop", 2)
		git.Config["branch.feat-PROJ-1.base"] = "main"

		// when
		err := newPushCommand(git).Execute(context.Background(), settings)

		// then
		failure, ok := entities.AsValidationFailure(err)
		require.True(t, ok, "expected a validation failure, got %v", err)
		assert.Equal(t, "feature branches must be based on develop", failure.Rule)
	})

	t.Run("should fall back to remote-tracking candidates", func(t *testing.T) {
		t.Parallel()

		// given
		git := doubles.NewStubGitRepository("feat-PROJ-1").
			WithCommit("d1", "chore: PROJ-0 init").
			WithCommit("c1", "feat: PROJ-1 x", "d1").
			WithRef("origin/develop", "d1").
			WithBranch("feat-PROJ-1", "c1")

		// when
		err := newPushCommand(git).Execute(context.Background(), settings)

		// then
		assert.NoError(t, err)
	})

	t.Run("should reject a foxtrot merge on a feature branch", func(t *testing.T) {
		t.Parallel()

		// given
		git := pushGraph("feat-PROJ-1", "develop", 1).
			WithCommit("d2", "feat: PROJ-9 other", "d1").
			WithBranch("develop", "d2").
			WithCommit("x1", "Merge branch 'develop' into feat-PROJ-1", "c1", "d2").
			WithBranch("feat-PROJ-1", "x1")

		// when
		err := newPushCommand(git).Execute(context.Background(), settings)

		// then
		failure, ok := entities.AsValidationFailure(err)
		require.True(t, ok, "expected a validation failure, got %v", err)
		assert.Contains(t, failure.Rule, "foxtrot")
		assert.Contains(t, failure.Actual, "x1")
	})

	t.Run("should skip unknown and detached branches", func(t *testing.T) {
		t.Parallel()

		for _, branch := range []string{"experiment", ""} {
			// given
			git := doubles.NewStubGitRepository(branch)

			// when
			err := newPushCommand(git).Execute(context.Background(), settings)

			// then
			assert.NoError(t, err, branch)
		}
	})
}

func TestPushCommandProtected(t *testing.T) {
	t.Parallel()

	settings := &entities.Settings{MaxCommits: 5}

	graph := func(branch, mergeMessage string) *doubles.StubGitRepository {
		return doubles.NewStubGitRepository(branch).
			WithCommit("b1", "chore: PROJ-0 init").
			WithCommit("s1", "feat: PROJ-1 work", "b1").
			WithCommit("mg", mergeMessage, "b1", "s1").
			WithRef("origin/"+branch, "b1").
			WithBranch(branch, "mg")
	}

	t.Run("should accept a feature merged into develop", func(t *testing.T) {
		t.Parallel()

		// given
		git := graph("develop", "Merge branch 'feat-PROJ-1' into develop")

		// when
		err := newPushCommand(git).Execute(context.Background(), settings)

		// then
		assert.NoError(t, err)
	})

	t.Run("should reject a feature merged into main", func(t *testing.T) {
		t.Parallel()

		// given
		git := graph("main", "Merge pull request #4 from alice/feat-PROJ-1")

		// when
		err := newPushCommand(git).Execute(context.Background(), settings)

		// then
		failure, ok := entities.AsValidationFailure(err)
		require.True(t, ok, "expected a validation failure, got %v", err)
		assert.Equal(t, "feature branches cannot be merged into main", failure.Rule)
		assert.Contains(t, failure.Remediation, "git reset --hard origin/main")
	})

	t.Run("should only warn about merges with unrecognised messages", func(t *testing.T) {
		t.Parallel()

		// given
		git := graph("main", "Merged the work")

		// when
		err := newPushCommand(git).Execute(context.Background(), settings)

		// then
		assert.NoError(t, err)
	})

	t.Run("should skip history checks on a first push", func(t *testing.T) {
		t.Parallel()

		// given
		git := doubles.NewStubGitRepository("develop").
			WithCommit("b1", "chore: PROJ-0 init").
			WithBranch("develop", "b1")

		// when
		err := newPushCommand(git).Execute(context.Background(), settings)

		// then
		assert.NoError(t, err)
	})
}
