package commands

import (
	"context"
	"fmt"
	"slices"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/repositories"
)

// WorkingTreeSnapshot is the set of files with unstaged changes before the
// commands ran.
type WorkingTreeSnapshot map[string]struct{}

// RemediationReport lists what the auto-fix pass found and did.
type RemediationReport struct {
	Modified []string
	Staged   []string
}

// Remediator re-stages files that fix commands rewrote.
type Remediator struct {
	git repositories.GitRepository
}

// NewRemediator creates a new Remediator.
func NewRemediator(git repositories.GitRepository) *Remediator {
	return &Remediator{git: git}
}

// Snapshot records the currently modified files so that changes the user
// already had in the working tree are never staged on their behalf.
func (it *Remediator) Snapshot(ctx context.Context) WorkingTreeSnapshot {
	snapshot := WorkingTreeSnapshot{}
	files, err := it.git.ModifiedFiles(ctx)
	if err != nil {
		logger.Warnf("Failed to snapshot working tree: %v", err)
		return snapshot
	}
	for _, file := range files {
		snapshot[file] = struct{}{}
	}
	return snapshot
}

// Execute makes one best-effort pass: files modified since the snapshot are
// staged when auto-add is enabled, otherwise they are reported.
func (it *Remediator) Execute(
	ctx context.Context,
	settings *entities.Settings,
	before WorkingTreeSnapshot,
) (RemediationReport, error) {
	var report RemediationReport

	files, err := it.git.ModifiedFiles(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to list modified files: %w", err)
	}
	for _, file := range files {
		if _, existed := before[file]; !existed {
			report.Modified = append(report.Modified, file)
		}
	}
	slices.Sort(report.Modified)
	if len(report.Modified) == 0 {
		return report, nil
	}

	if !settings.AutoAddAfterFix {
		logger.Warnf("%d file(s) were modified by fix commands and are not staged:", len(report.Modified))
		for _, file := range report.Modified {
			logger.Warnf("  %s", file)
		}
		logger.Warn("Stage them with 'git add <file>' or enable auto-staging: git config hooks.autoAddAfterFix true")
		return report, nil
	}

	for _, file := range report.Modified {
		if stageErr := it.git.StageFile(ctx, file); stageErr != nil {
			logger.Errorf("Failed to re-stage %s: %v", file, stageErr)
			continue
		}
		logger.Infof("Re-staged %s", file)
		report.Staged = append(report.Staged, file)
	}
	return report, nil
}
