//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/commands"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
	doubles "github.com/rios0rios0/gitflow-hooks/test/infrastructure/repositorydoubles"
)

// mergeGraph builds:
//
//	d1 - d2 ------------ m1   (develop, merge of feat-PROJ-1)
//	       \            /
//	        f1 ------- f2     (feat-PROJ-1)
//	d1 - l1 - x1              (local work; x1 merges d2 with l1 as first parent)
func mergeGraph(branch string) *doubles.StubGitRepository {
	return doubles.NewStubGitRepository(branch).
		WithCommit("d1", "chore: PROJ-0 init").
		WithCommit("d2", "feat: PROJ-0 more", "d1").
		WithCommit("f1", "feat: PROJ-1 start", "d2").
		WithCommit("f2", "feat: PROJ-1 finish", "f1").
		WithCommit("m1", "Merge branch 'feat-PROJ-1' into develop", "d2", "f2").
		WithCommit("l1", "fix: PROJ-2 local", "d1").
		WithCommit("x1", "Merge branch 'develop' of origin into develop", "l1", "d2").
		WithCommit("u1", "Merged some things", "d2", "f2").
		WithRef("origin/develop", "d2")
}

func TestMergeInspectorVerdict(t *testing.T) {
	t.Parallel()

	t.Run("should accept a feature merged into develop", func(t *testing.T) {
		t.Parallel()

		// given
		inspector := commands.NewMergeInspector(mergeGraph("develop"))

		// when
		verdict, source, err := inspector.Verdict(context.Background(), "develop", "m1")

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.MergeCompliant, verdict)
		assert.Equal(t, "feat-PROJ-1", source)
		assert.True(t, inspector.IsGitFlowMerge(context.Background(), "develop", "m1"))
	})

	t.Run("should flag a feature merged into main", func(t *testing.T) {
		t.Parallel()

		// given
		inspector := commands.NewMergeInspector(mergeGraph("main"))

		// when
		verdict, source, err := inspector.Verdict(context.Background(), "main", "m1")

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.MergeViolation, verdict)
		assert.Equal(t, "feat-PROJ-1", source)
		assert.False(t, inspector.IsGitFlowMerge(context.Background(), "main", "m1"))
	})

	t.Run("should classify single-parent commits as not a merge", func(t *testing.T) {
		t.Parallel()

		// given
		inspector := commands.NewMergeInspector(mergeGraph("develop"))

		// when
		verdict, _, err := inspector.Verdict(context.Background(), "develop", "f2")

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.MergeNotMerge, verdict)
	})

	t.Run("should leave merges with unrecognised messages undetermined", func(t *testing.T) {
		t.Parallel()

		// given
		inspector := commands.NewMergeInspector(mergeGraph("develop"))

		// when
		verdict, source, err := inspector.Verdict(context.Background(), "develop", "u1")

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.MergeUndetermined, verdict)
		assert.Empty(t, source)
		assert.False(t, inspector.IsGitFlowMerge(context.Background(), "develop", "u1"))
	})

	t.Run("should return an error for an unknown commit", func(t *testing.T) {
		t.Parallel()

		// given
		inspector := commands.NewMergeInspector(mergeGraph("develop"))

		// when
		_, _, err := inspector.Verdict(context.Background(), "develop", "nope")

		// then
		assert.Error(t, err)
	})
}

func TestMergeInspectorFoxtrot(t *testing.T) {
	t.Parallel()

	t.Run("should detect a merge whose first parent is not an ancestor of the base", func(t *testing.T) {
		t.Parallel()

		// given
		inspector := commands.NewMergeInspector(mergeGraph("develop"))

		// when
		found, sha, err := inspector.HasFoxtrotMerge(context.Background(), "origin/develop", "x1")

		// then
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "x1", sha)
	})

	t.Run("should accept a merge that continues the base line", func(t *testing.T) {
		t.Parallel()

		// given
		inspector := commands.NewMergeInspector(mergeGraph("develop"))

		// when
		found, sha, err := inspector.HasFoxtrotMerge(context.Background(), "origin/develop", "m1")

		// then
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, sha)
	})

	t.Run("should flag a merge whose first parent is new work on top of the base", func(t *testing.T) {
		t.Parallel()

		// given
		git := doubles.NewStubGitRepository("develop").
			WithCommit("d1", "chore: PROJ-0 init").
			WithCommit("f1", "feat: PROJ-1 work", "d1").
			WithCommit("g1", "feat: PROJ-2 work", "d1").
			WithCommit("mx", "Merge branch 'feat-PROJ-2'", "f1", "g1")
		inspector := commands.NewMergeInspector(git)

		// when
		found, sha, err := inspector.HasFoxtrotMerge(context.Background(), "d1", "mx")

		// then
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "mx", sha)
	})

	t.Run("should inspect merges reached only through a second parent", func(t *testing.T) {
		t.Parallel()

		// given
		git := doubles.NewStubGitRepository("develop").
			WithCommit("d1", "chore: PROJ-0 init").
			WithCommit("f1", "feat: PROJ-1 work", "d1").
			WithCommit("g1", "feat: PROJ-2 work", "d1").
			WithCommit("s1", "Merge branch 'feat-PROJ-1' into feat-PROJ-2", "g1", "f1").
			WithCommit("t1", "Merge branch 'feat-PROJ-2' into develop", "d1", "s1")
		inspector := commands.NewMergeInspector(git)

		// when
		found, sha, err := inspector.HasFoxtrotMerge(context.Background(), "d1", "t1")

		// then
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "s1", sha)
	})

	t.Run("should accept linear history and an up-to-date head", func(t *testing.T) {
		t.Parallel()

		// given
		inspector := commands.NewMergeInspector(mergeGraph("develop"))

		// when
		linear, _, linearErr := inspector.HasFoxtrotMerge(context.Background(), "d2", "f2")
		same, _, sameErr := inspector.HasFoxtrotMerge(context.Background(), "d2", "d2")

		// then
		require.NoError(t, linearErr)
		require.NoError(t, sameErr)
		assert.False(t, linear)
		assert.False(t, same)
	})

	t.Run("should fail when the base cannot be resolved", func(t *testing.T) {
		t.Parallel()

		// given
		inspector := commands.NewMergeInspector(mergeGraph("develop"))

		// when
		_, _, err := inspector.HasFoxtrotMerge(context.Background(), "origin/main", "m1")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "origin/main")
	})
}

func TestMergeInspectorMergesOnFirstParentChain(t *testing.T) {
	t.Parallel()

	t.Run("should list only merges not yet in the base", func(t *testing.T) {
		t.Parallel()

		// given
		git := mergeGraph("develop").
			WithCommit("d3", "chore: PROJ-3 after", "m1")
		inspector := commands.NewMergeInspector(git)

		// when
		merges, err := inspector.MergesOnFirstParentChain(context.Background(), "d1", "d3")

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"m1"}, merges)
	})

	t.Run("should list nothing when head is contained in base", func(t *testing.T) {
		t.Parallel()

		// given
		inspector := commands.NewMergeInspector(mergeGraph("develop"))

		// when
		merges, err := inspector.MergesOnFirstParentChain(context.Background(), "m1", "d2")

		// then
		require.NoError(t, err)
		assert.Empty(t, merges)
	})
}
