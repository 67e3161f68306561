package commands

import (
	"context"
	"fmt"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/repositories"
)

// MergeInspector answers merge questions about commits in the repository.
type MergeInspector struct {
	git repositories.GitRepository
}

// NewMergeInspector creates a new MergeInspector.
func NewMergeInspector(git repositories.GitRepository) *MergeInspector {
	return &MergeInspector{git: git}
}

// IsMergeCommit reports whether the commit has two or more parents.
func (it *MergeInspector) IsMergeCommit(ctx context.Context, sha string) (bool, error) {
	parents, err := it.git.ParentHashes(ctx, sha)
	if err != nil {
		return false, err
	}
	return len(parents) >= 2, nil
}

// SourceBranch extracts the merged branch from the commit message.
func (it *MergeInspector) SourceBranch(ctx context.Context, sha string) (string, bool, error) {
	message, err := it.git.CommitMessage(ctx, sha)
	if err != nil {
		return "", false, err
	}
	source, ok := entities.ExtractSourceBranch(message)
	return source, ok, nil
}

// Verdict classifies the commit as a merge into targetBranch. It also returns
// the recovered source branch, "" when undetermined.
func (it *MergeInspector) Verdict(
	ctx context.Context,
	targetBranch, sha string,
) (entities.MergeVerdict, string, error) {
	isMerge, err := it.IsMergeCommit(ctx, sha)
	if err != nil {
		return entities.MergeUndetermined, "", err
	}
	if !isMerge {
		return entities.MergeNotMerge, "", nil
	}

	source, ok, err := it.SourceBranch(ctx, sha)
	if err != nil {
		return entities.MergeUndetermined, "", err
	}
	if !ok {
		return entities.MergeUndetermined, "", nil
	}

	if entities.IsMergeAllowed(entities.Classify(source), entities.Classify(targetBranch)) {
		return entities.MergeCompliant, source, nil
	}
	return entities.MergeViolation, source, nil
}

// IsGitFlowMerge is true only for merge commits whose source branch could be
// recovered and may be merged into targetBranch.
func (it *MergeInspector) IsGitFlowMerge(ctx context.Context, targetBranch, sha string) bool {
	verdict, _, err := it.Verdict(ctx, targetBranch, sha)
	return err == nil && verdict == entities.MergeCompliant
}

// HasFoxtrotMerge inspects every merge commit in base..head, second-parent
// history included, and flags the first one whose first parent is not an
// ancestor of base: that merge brought history in sideways instead of
// continuing base's line. It returns the offending merge SHA.
func (it *MergeInspector) HasFoxtrotMerge(ctx context.Context, base, head string) (bool, string, error) {
	baseSHA, headSHA, err := it.resolvePair(ctx, base, head)
	if err != nil {
		return false, "", err
	}

	var foxtrot string
	walkErr := it.walkRange(ctx, baseSHA, headSHA, func(sha string, parents []string) (bool, error) {
		if len(parents) < 2 {
			return true, nil
		}
		onBase, ancErr := it.git.IsAncestor(ctx, parents[0], baseSHA)
		if ancErr != nil {
			return false, ancErr
		}
		if !onBase {
			foxtrot = sha
			return false, nil
		}
		return true, nil
	})
	if walkErr != nil {
		return false, "", walkErr
	}
	return foxtrot != "", foxtrot, nil
}

// MergesOnFirstParentChain lists, newest first, the merge commits on head's
// first-parent chain that are not yet part of base.
func (it *MergeInspector) MergesOnFirstParentChain(ctx context.Context, base, head string) ([]string, error) {
	baseSHA, headSHA, err := it.resolvePair(ctx, base, head)
	if err != nil {
		return nil, err
	}

	var merges []string
	walkErr := it.walkFirstParents(ctx, baseSHA, headSHA, func(sha string, parents []string) (bool, error) {
		if len(parents) >= 2 {
			merges = append(merges, sha)
		}
		return true, nil
	})
	return merges, walkErr
}

// walkFirstParents visits head and its first parents until it reaches a
// commit already contained in base, a root commit, or visit returns false.
func (it *MergeInspector) walkFirstParents(
	ctx context.Context,
	baseSHA, headSHA string,
	visit func(sha string, parents []string) (bool, error),
) error {
	for current := headSHA; current != ""; {
		if err := ctx.Err(); err != nil {
			return err
		}
		if current == baseSHA {
			return nil
		}
		contained, err := it.git.IsAncestor(ctx, current, baseSHA)
		if err != nil {
			return err
		}
		if contained {
			return nil
		}

		parents, err := it.git.ParentHashes(ctx, current)
		if err != nil {
			return err
		}
		proceed, err := visit(current, parents)
		if err != nil || !proceed {
			return err
		}
		if len(parents) == 0 {
			return nil
		}
		current = parents[0]
	}
	return nil
}

// walkRange visits every commit reachable from head that base does not
// contain, breadth first with parents in order, until visit returns false.
func (it *MergeInspector) walkRange(
	ctx context.Context,
	baseSHA, headSHA string,
	visit func(sha string, parents []string) (bool, error),
) error {
	seen := map[string]struct{}{headSHA: {}}
	queue := []string{headSHA}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		current := queue[0]
		queue = queue[1:]

		contained, err := it.git.IsAncestor(ctx, current, baseSHA)
		if err != nil {
			return err
		}
		if contained {
			continue
		}

		parents, err := it.git.ParentHashes(ctx, current)
		if err != nil {
			return err
		}
		proceed, err := visit(current, parents)
		if err != nil || !proceed {
			return err
		}
		for _, parent := range parents {
			if _, ok := seen[parent]; !ok {
				seen[parent] = struct{}{}
				queue = append(queue, parent)
			}
		}
	}
	return nil
}

func (it *MergeInspector) resolvePair(ctx context.Context, base, head string) (string, string, error) {
	baseSHA, err := it.git.ResolveRevision(ctx, base)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve base %q: %w", base, err)
	}
	headSHA, err := it.git.ResolveRevision(ctx, head)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve head %q: %w", head, err)
	}
	return baseSHA, headSHA, nil
}
