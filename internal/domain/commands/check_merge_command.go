package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/repositories"
)

// CheckMerge is the interface for the check-merge command.
type CheckMerge interface {
	Execute(ctx context.Context, revision string) (MergeReport, error)
}

// MergeReport is the verdict of one commit against the current branch.
type MergeReport struct {
	SHA          string                `yaml:"sha"`
	TargetBranch string                `yaml:"target"`
	SourceBranch string                `yaml:"source,omitempty"`
	Verdict      entities.MergeVerdict `yaml:"-"`
}

// Failure converts a violating report into a ValidationFailure.
func (r MergeReport) Failure() error {
	if r.Verdict != entities.MergeViolation {
		return nil
	}
	return mergeViolation(r.SourceBranch, r.TargetBranch, r.SHA)
}

// CheckMergeCommand inspects a single commit.
type CheckMergeCommand struct {
	git       repositories.GitRepository
	inspector *MergeInspector
}

// NewCheckMergeCommand creates a new CheckMergeCommand.
func NewCheckMergeCommand(git repositories.GitRepository, inspector *MergeInspector) *CheckMergeCommand {
	return &CheckMergeCommand{git: git, inspector: inspector}
}

// Execute classifies revision (HEAD when empty) as a merge into the current branch.
func (it *CheckMergeCommand) Execute(ctx context.Context, revision string) (MergeReport, error) {
	if revision == "" {
		revision = "HEAD"
	}
	sha, err := it.git.ResolveRevision(ctx, revision)
	if err != nil {
		return MergeReport{}, fmt.Errorf("failed to resolve %q: %w", revision, err)
	}
	branch, err := it.git.CurrentBranch(ctx)
	if err != nil {
		return MergeReport{}, fmt.Errorf("failed to read current branch: %w", err)
	}

	verdict, source, err := it.inspector.Verdict(ctx, branch, sha)
	if err != nil {
		return MergeReport{}, fmt.Errorf("failed to inspect %s: %w", shortSHA(sha), err)
	}
	return MergeReport{SHA: sha, TargetBranch: branch, SourceBranch: source, Verdict: verdict}, nil
}

// reportMerge logs a post-commit merge verdict. Nothing blocks; the commit
// already exists.
func reportMerge(report MergeReport) {
	switch report.Verdict {
	case entities.MergeViolation:
		if failure, ok := entities.AsValidationFailure(report.Failure()); ok {
			logger.Error(failure.Report())
		}
	case entities.MergeUndetermined:
		logger.Warnf("Merge %s: could not determine the source branch from its message", shortSHA(report.SHA))
	case entities.MergeCompliant:
		logger.Infof("Merge %s of %s into %s is Git-Flow compliant",
			shortSHA(report.SHA), report.SourceBranch, report.TargetBranch)
	case entities.MergeNotMerge:
	}
}
