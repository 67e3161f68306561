//go:build unit

package entities_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
)

func TestValidationFailure(t *testing.T) {
	t.Parallel()

	t.Run("should render actual and expected values in the error", func(t *testing.T) {
		t.Parallel()

		// given
		failure := entities.NewValidationFailure("too many commits", "7", "at most 5", "git rebase -i develop")

		// when
		msg := failure.Error()

		// then
		assert.Equal(t, "too many commits (actual: 7, expected: at most 5)", msg)
	})

	t.Run("should render a report with remediation steps", func(t *testing.T) {
		t.Parallel()

		// given
		failure := entities.NewValidationFailure("rule", "a", "b", "step one", "step two")

		// when
		report := failure.Report()

		// then
		assert.Contains(t, report, "Rule violated: rule\n")
		assert.Contains(t, report, "actual:   a\n")
		assert.Contains(t, report, "expected: b\n")
		assert.Contains(t, report, "How to fix:\n  step one\n  step two\n")
	})

	t.Run("should match ErrHookFailed through wrapping", func(t *testing.T) {
		t.Parallel()

		// given
		err := fmt.Errorf("pre-push: %w", entities.NewValidationFailure("rule", "", ""))

		// when
		failure, ok := entities.AsValidationFailure(err)

		// then
		assert.True(t, errors.Is(err, entities.ErrHookFailed))
		require.True(t, ok)
		assert.Equal(t, "rule", failure.Error())
	})

	t.Run("should not extract a failure from an unrelated error", func(t *testing.T) {
		t.Parallel()

		// when
		_, ok := entities.AsValidationFailure(errors.New("boom"))

		// then
		assert.False(t, ok)
	})
}
