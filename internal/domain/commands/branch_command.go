package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/repositories"
)

// BranchCommand guards commits against the protected-branch rule.
type BranchCommand struct {
	git repositories.GitRepository
}

// NewBranchCommand creates a new BranchCommand.
func NewBranchCommand(git repositories.GitRepository) *BranchCommand {
	return &BranchCommand{git: git}
}

// Execute validates the branch a commit is about to land on. Direct commits
// on main or develop are rejected unless a merge is being concluded or
// ALLOW_DIRECT_PROTECTED is set. Unknown names only produce a warning.
func (it *BranchCommand) Execute(ctx context.Context, settings *entities.Settings) error {
	branch, err := it.git.CurrentBranch(ctx)
	if err != nil {
		return fmt.Errorf("failed to read current branch: %w", err)
	}
	if branch == "" {
		logger.Debug("Detached HEAD, skipping branch validation")
		return nil
	}

	branchType := entities.Classify(branch)
	logger.Debugf("Branch %q classified as %s", branch, branchType)

	if branchType == entities.BranchUnknown {
		warnUnknownBranch(branch)
		return nil
	}
	if !branchType.IsProtected() {
		return nil
	}

	if it.git.MergeInProgress(ctx) {
		logger.Debugf("Merge in progress on %s, allowing commit", branch)
		return nil
	}
	if settings.AllowDirectProtected {
		logger.Warnf("ALLOW_DIRECT_PROTECTED=1: allowing direct commit on %s", branch)
		return nil
	}

	return entities.NewValidationFailure(
		"direct commits to protected branches are not allowed",
		"committing on "+branch,
		"a feat-, bugfix-, support-, release- or hotfix- branch",
		"git stash",
		"git checkout -b feat-PROJ-123-short-description",
		"git stash pop",
		"or override once with: ALLOW_DIRECT_PROTECTED=1 git commit ...",
	)
}

func warnUnknownBranch(branch string) {
	logger.Warnf("Branch %q does not follow Git-Flow naming; Git-Flow rules are not enforced on it", branch)
	for _, t := range entities.AllBranchTypes() {
		if hint := t.NamingHint(); hint != "" && t.IsShortLived() {
			logger.Warnf("  %-8s %s", t, hint)
		}
	}
}
