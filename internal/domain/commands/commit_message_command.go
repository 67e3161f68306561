package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/repositories"
)

// CommitMessageCommand validates and pre-fills commit messages.
type CommitMessageCommand struct {
	git repositories.GitRepository
}

// NewCommitMessageCommand creates a new CommitMessageCommand.
func NewCommitMessageCommand(git repositories.GitRepository) *CommitMessageCommand {
	return &CommitMessageCommand{git: git}
}

// Validate checks the message stored in messageFile against the current branch.
func (it *CommitMessageCommand) Validate(
	ctx context.Context,
	settings *entities.Settings,
	messageFile string,
) error {
	raw, err := os.ReadFile(messageFile)
	if err != nil {
		return fmt.Errorf("failed to read commit message file %q: %w", messageFile, err)
	}

	branch, err := it.git.CurrentBranch(ctx)
	if err != nil {
		return fmt.Errorf("failed to read current branch: %w", err)
	}
	branchType := entities.Classify(branch)

	if validateErr := entities.ValidateCommitMessage(string(raw), branchType, settings.ReleaseVerbs); validateErr != nil {
		return validateErr
	}

	msg := entities.ParseCommitMessage(string(raw))
	if branchType == entities.BranchUnknown && msg.Kind == entities.MessageInvalid {
		logger.Warnf("Commit message %q is not conventional (<type>: <TICKET> <description>)", msg.Subject)
	}
	logger.Debugf("Commit message accepted as %s on %s branch", msg.Kind, branchType)
	return nil
}

// Prepare pre-fills an empty editor message with the type and ticket derived
// from the branch name. Messages given with -m, merges, squashes and amends
// are left alone.
func (it *CommitMessageCommand) Prepare(ctx context.Context, messageFile, source string) error {
	if source != "" {
		return nil
	}

	raw, err := os.ReadFile(messageFile)
	if err != nil {
		return fmt.Errorf("failed to read commit message file %q: %w", messageFile, err)
	}
	if entities.CleanCommitMessage(string(raw)) != "" {
		return nil
	}

	branch, err := it.git.CurrentBranch(ctx)
	if err != nil {
		return fmt.Errorf("failed to read current branch: %w", err)
	}
	prefix := messagePrefix(branch)
	if prefix == "" {
		return nil
	}

	content := string(raw)
	if first, rest, found := strings.Cut(content, "\n"); found && strings.TrimSpace(first) == "" {
		content = prefix + "\n" + rest
	} else {
		content = prefix + "\n" + content
	}

	//nolint:gosec // the message file is owned by git and already world-readable
	if writeErr := os.WriteFile(messageFile, []byte(content), 0o644); writeErr != nil {
		return fmt.Errorf("failed to write commit message file %q: %w", messageFile, writeErr)
	}
	logger.Debugf("Pre-filled commit message with %q", prefix)
	return nil
}

// messagePrefix builds "<type>: <TICKET> " for ticketed branches and
// "release: " for release branches.
func messagePrefix(branch string) string {
	commitType := entities.CommitTypeFor(entities.Classify(branch))
	if commitType == "" {
		return ""
	}
	if ticket := entities.TicketID(branch); ticket != "" {
		return fmt.Sprintf("%s: %s ", commitType, ticket)
	}
	return commitType + ": "
}
