//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
)

func TestParseCommitMessage(t *testing.T) {
	t.Parallel()

	t.Run("should parse type, scope, ticket and description", func(t *testing.T) {
		t.Parallel()

		// when
		msg := entities.ParseCommitMessage("feat(api)!: PROJ-123 add the login endpoint\n\nbody")

		// then
		assert.Equal(t, entities.MessageConventional, msg.Kind)
		assert.Equal(t, "feat", msg.Type)
		assert.Equal(t, "api", msg.Scope)
		assert.True(t, msg.Breaking)
		assert.Equal(t, "PROJ-123", msg.TicketID)
		assert.Equal(t, "add the login endpoint", msg.Description)
	})

	t.Run("should take the ticket from the scope", func(t *testing.T) {
		t.Parallel()

		// when
		msg := entities.ParseCommitMessage("fix(PROJ-9): handle nil")

		// then
		assert.Equal(t, entities.MessageConventional, msg.Kind)
		assert.Equal(t, "PROJ-9", msg.TicketID)
	})

	t.Run("should classify merges and reverts", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, entities.MessageMerge, entities.ParseCommitMessage("Merge branch 'x'").Kind)
		assert.Equal(t, entities.MessageRevert, entities.ParseCommitMessage(`Revert "feat: X-1 y"`).Kind)
	})

	t.Run("should reject unknown types and bare tickets", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, entities.MessageInvalid, entities.ParseCommitMessage("wip: PROJ-1 stuff").Kind)
		assert.Equal(t, entities.MessageInvalid, entities.ParseCommitMessage("feat: PROJ-1").Kind)
		assert.Equal(t, entities.MessageInvalid, entities.ParseCommitMessage("feat:PROJ-1 x").Kind)
	})
}

func TestCleanCommitMessage(t *testing.T) {
	t.Parallel()

	t.Run("should drop comments, the verbose diff and surrounding blank lines", func(t *testing.T) {
		t.Parallel()

		// given
		raw := "\nfeat: PROJ-1 add x\n\n# Please enter the commit message\n" +
			"# ------------------------ >8 ------------------------\ndiff --git a b\n"

		// when
		cleaned := entities.CleanCommitMessage(raw)

		// then
		assert.Equal(t, "feat: PROJ-1 add x", cleaned)
	})
}

func TestValidateCommitMessage(t *testing.T) {
	t.Parallel()

	verbs := entities.DefaultReleaseVerbs()

	valid := []struct {
		name    string
		message string
		branch  string
	}{
		{"ticketed conventional on feature", "feat: PROJ-123 add x", "feat-PROJ-123-x"},
		{"ticketed conventional on release", "feat: PROJ-123 add x", "release-1.2.0"},
		{"descriptive prose on release", "just a note", "release-1.2.0"},
		{"unticketed conventional on release", "release: prepare 1.2.0", "release-1.2.0"},
		{"whitelisted verb on release", "Bump", "release-1.2.0"},
		{"lowercase whitelisted verb on release", "bump version", "release-1.2.0"},
		{"merge on develop", "Merge branch 'feat-PROJ-1' into develop", "develop"},
		{"revert on feature", `Revert "feat: PROJ-1 add x"`, "feat-PROJ-1"},
		{"anything on unknown", "wip", "my-experiment"},
		{"ticket in scope on hotfix", "fix(OPS-1): patch it", "hotfix-OPS-1"},
	}
	for _, tc := range valid {
		t.Run("should accept "+tc.name, func(t *testing.T) {
			t.Parallel()

			// when
			err := entities.ValidateCommitMessage(tc.message, entities.Classify(tc.branch), verbs)

			// then
			assert.NoError(t, err)
		})
	}

	invalid := []struct {
		name    string
		message string
		branch  string
	}{
		{"prose on feature", "just a note", "feat-PROJ-123-x"},
		{"unticketed conventional on feature", "feat: add x", "feat-PROJ-123-x"},
		{"unticketed conventional on develop", "chore: tidy", "develop"},
		{"two words on release", "tidy things", "release-1.2.0"},
		{"empty on unknown", "# only a comment\n", "my-experiment"},
		{"empty on feature", "", "feat-PROJ-1"},
	}
	for _, tc := range invalid {
		t.Run("should reject "+tc.name, func(t *testing.T) {
			t.Parallel()

			// when
			err := entities.ValidateCommitMessage(tc.message, entities.Classify(tc.branch), verbs)

			// then
			failure, ok := entities.AsValidationFailure(err)
			require.True(t, ok, "expected a validation failure, got %v", err)
			assert.NotEmpty(t, failure.Remediation)
		})
	}

	t.Run("should honour a custom verb whitelist", func(t *testing.T) {
		t.Parallel()

		// given
		custom := []string{"Ship"}

		// when
		shipErr := entities.ValidateCommitMessage("Ship", entities.BranchRelease, custom)
		bumpErr := entities.ValidateCommitMessage("Bump", entities.BranchRelease, custom)

		// then
		assert.NoError(t, shipErr)
		assert.Error(t, bumpErr)
	})
}

func TestCommitTypeFor(t *testing.T) {
	t.Parallel()

	t.Run("should suggest a type per short-lived branch", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "feat", entities.CommitTypeFor(entities.BranchFeature))
		assert.Equal(t, "fix", entities.CommitTypeFor(entities.BranchBugfix))
		assert.Equal(t, "fix", entities.CommitTypeFor(entities.BranchHotfix))
		assert.Equal(t, "chore", entities.CommitTypeFor(entities.BranchSupport))
		assert.Equal(t, "release", entities.CommitTypeFor(entities.BranchRelease))
		assert.Empty(t, entities.CommitTypeFor(entities.BranchDevelop))
	})
}
