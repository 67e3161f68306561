package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/repositories"
)

// branchCheckoutFlag is the third post-checkout argument for branch checkouts.
const branchCheckoutFlag = "1"

// CheckoutCommand checks freshly created branches against the origin policy
// and base requirement, and records their base in git config.
type CheckoutCommand struct {
	git repositories.GitRepository
}

// NewCheckoutCommand creates a new CheckoutCommand.
func NewCheckoutCommand(git repositories.GitRepository) *CheckoutCommand {
	return &CheckoutCommand{git: git}
}

// Execute handles post-checkout arguments: <previous-head> <new-head> <flag>.
func (it *CheckoutCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 3 {
		logger.Debugf("post-checkout called with %d argument(s), nothing to check", len(args))
		return nil
	}
	previousHead, newHead, flag := args[0], args[1], args[2]
	if flag != branchCheckoutFlag || previousHead != newHead {
		return nil
	}

	branch, err := it.git.CurrentBranch(ctx)
	if err != nil {
		return fmt.Errorf("failed to read current branch: %w", err)
	}
	if branch == "" || entities.Classify(branch).IsProtected() {
		return nil
	}
	created, err := it.git.BranchJustCreated(ctx, branch)
	if err != nil {
		logger.Debugf("Could not read the reflog of %s: %v", branch, err)
		return nil
	}
	if !created {
		logger.Debugf("%s already existed, nothing to check", branch)
		return nil
	}
	baseKey := baseConfigKey(branch)
	if _, recorded := it.git.ConfigValue(ctx, baseKey); recorded {
		return nil
	}

	origin, err := it.git.PreviousBranch(ctx)
	if err != nil {
		logger.Debugf("Could not determine the previous branch: %v", err)
		return nil
	}
	if origin == "" || origin == branch {
		return nil
	}

	warning, err := entities.ValidateBranchCreation(origin, branch)
	if err != nil {
		return err
	}
	if warning != "" {
		logger.Warn(warning)
	}

	if setErr := it.git.SetConfigValue(ctx, baseKey, origin); setErr != nil {
		logger.Warnf("Failed to record base branch for %s: %v", branch, setErr)
		return nil
	}
	logger.Infof("Recorded %s = %s", baseKey, origin)
	return nil
}

func baseConfigKey(branch string) string {
	return "branch." + branch + ".base"
}
