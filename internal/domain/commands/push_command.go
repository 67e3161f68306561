package commands

import (
	"context"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/repositories"
)

// baseCandidates are tried, in order, when a branch has no recorded base.
//
//nolint:gochecknoglobals // immutable candidate list
var baseCandidates = []string{"main", "master", "develop", "development"}

// PushCommand validates the branch being pushed.
type PushCommand struct {
	git       repositories.GitRepository
	inspector *MergeInspector
}

// NewPushCommand creates a new PushCommand.
func NewPushCommand(git repositories.GitRepository, inspector *MergeInspector) *PushCommand {
	return &PushCommand{git: git, inspector: inspector}
}

// Execute runs the pre-push checks for the current branch.
func (it *PushCommand) Execute(ctx context.Context, settings *entities.Settings) error {
	branch, err := it.git.CurrentBranch(ctx)
	if err != nil {
		return fmt.Errorf("failed to read current branch: %w", err)
	}
	if branch == "" {
		logger.Debug("Detached HEAD, skipping push validation")
		return nil
	}

	branchType := entities.Classify(branch)
	switch {
	case branchType == entities.BranchUnknown:
		warnUnknownBranch(branch)
		return nil
	case branchType.IsProtected():
		return it.validateProtected(ctx, branch)
	default:
		return it.validateShortLived(ctx, settings, branch, branchType)
	}
}

func (it *PushCommand) validateShortLived(
	ctx context.Context,
	settings *entities.Settings,
	branch string,
	branchType entities.BranchType,
) error {
	base, err := it.resolveBase(ctx, branch, branchType)
	if err != nil {
		return err
	}
	if base == "" {
		logger.Warnf("No base branch found for %s, skipping base checks", branch)
		return nil
	}
	logger.Debugf("Base of %s is %s", branch, base)

	if required, ok := entities.RequiredBase(branchType); ok {
		baseType := entities.Classify(stripRemote(base))
		if baseType != entities.BranchUnknown && baseType != required {
			return entities.NewValidationFailure(
				fmt.Sprintf("%s branches must be based on %s", branchType, required),
				fmt.Sprintf("%s is based on %s", branch, base),
				required.String(),
				fmt.Sprintf("git rebase --onto %s %s %s", required.NamingHint(), base, branch),
			)
		}
	}

	if branchType != entities.BranchRelease && settings.MaxCommits > 0 {
		ahead, aheadErr := it.git.CommitsAhead(ctx, base, branch)
		if aheadErr != nil {
			return fmt.Errorf("failed to count commits ahead of %s: %w", base, aheadErr)
		}
		if ahead > settings.MaxCommits {
			return entities.NewValidationFailure(
				"short-lived branches must stay small",
				fmt.Sprintf("%d commits ahead of %s", ahead, base),
				fmt.Sprintf("at most %d commits (hooks.maxCommits)", settings.MaxCommits),
				fmt.Sprintf("git rebase -i %s", base),
				fmt.Sprintf("git config hooks.maxCommits %d", ahead),
			)
		}
	}

	return it.checkFoxtrot(ctx, base, branch)
}

func (it *PushCommand) validateProtected(ctx context.Context, branch string) error {
	remote := "origin/" + branch
	if _, err := it.git.ResolveRevision(ctx, remote); err != nil {
		logger.Debugf("%s does not exist yet, skipping history checks", remote)
		return nil
	}

	if err := it.checkFoxtrot(ctx, remote, branch); err != nil {
		return err
	}

	merges, err := it.inspector.MergesOnFirstParentChain(ctx, remote, branch)
	if err != nil {
		return fmt.Errorf("failed to list merges on %s: %w", branch, err)
	}
	for _, sha := range merges {
		verdict, source, verdictErr := it.inspector.Verdict(ctx, branch, sha)
		if verdictErr != nil {
			return fmt.Errorf("failed to inspect merge %s: %w", shortSHA(sha), verdictErr)
		}
		switch verdict {
		case entities.MergeViolation:
			return mergeViolation(source, branch, sha)
		case entities.MergeUndetermined:
			logger.Warnf("Could not determine the source branch of merge %s", shortSHA(sha))
		case entities.MergeNotMerge, entities.MergeCompliant:
		}
	}
	return nil
}

func (it *PushCommand) checkFoxtrot(ctx context.Context, base, head string) error {
	found, sha, err := it.inspector.HasFoxtrotMerge(ctx, base, head)
	if err != nil {
		return fmt.Errorf("failed to check %s..%s for foxtrot merges: %w", base, head, err)
	}
	if !found {
		return nil
	}
	return entities.NewValidationFailure(
		"foxtrot merges rewrite the first-parent history of the target branch",
		fmt.Sprintf("merge %s has a first parent outside %s", shortSHA(sha), base),
		"the first parent of every merge continues "+base,
		fmt.Sprintf("git fetch && git rebase %s", base),
		"or pull with: git pull --rebase",
	)
}

// resolveBase returns the recorded base override or the closest candidate,
// the one head is the fewest commits ahead of. Ties go to the required base.
func (it *PushCommand) resolveBase(
	ctx context.Context,
	branch string,
	branchType entities.BranchType,
) (string, error) {
	if base, ok := it.git.ConfigValue(ctx, baseConfigKey(branch)); ok && base != "" {
		return base, nil
	}

	required, _ := entities.RequiredBase(branchType)
	best, bestAhead := "", -1
	for _, candidate := range it.existingCandidates(ctx) {
		ahead, err := it.git.CommitsAhead(ctx, candidate, branch)
		if err != nil {
			return "", fmt.Errorf("failed to count commits ahead of %s: %w", candidate, err)
		}
		better := bestAhead < 0 || ahead < bestAhead ||
			(ahead == bestAhead && entities.Classify(stripRemote(candidate)) == required)
		if better {
			best, bestAhead = candidate, ahead
		}
	}
	return best, nil
}

func (it *PushCommand) existingCandidates(ctx context.Context) []string {
	var found []string
	for _, name := range baseCandidates {
		if it.git.BranchExists(ctx, name) {
			found = append(found, name)
			continue
		}
		if _, err := it.git.ResolveRevision(ctx, "origin/"+name); err == nil {
			found = append(found, "origin/"+name)
		}
	}
	return found
}

func mergeViolation(source, target, sha string) error {
	sourceType := entities.Classify(source)
	return entities.NewValidationFailure(
		fmt.Sprintf("%s branches cannot be merged into %s", sourceType, entities.Classify(target)),
		fmt.Sprintf("merge %s brings %s into %s", shortSHA(sha), source, target),
		fmt.Sprintf("%s merges into %v", sourceType, entities.AllowedMergeTargets(sourceType)),
		"git reset --hard origin/"+target,
		fmt.Sprintf("merge %s into one of %v instead", source, entities.AllowedMergeTargets(sourceType)),
	)
}

func stripRemote(ref string) string {
	return strings.TrimPrefix(ref, "origin/")
}

func shortSHA(sha string) string {
	const short = 8
	if len(sha) > short {
		return sha[:short]
	}
	return sha
}
