package repositories

import "context"

// GitRepository is the read/write view of the working repository that the
// hook engines need. Revisions are full hex SHAs or anything git can resolve.
type GitRepository interface {
	// RootDir returns the absolute path of the working tree.
	RootDir(ctx context.Context) (string, error)

	// GitDir returns the absolute path of the .git directory.
	GitDir(ctx context.Context) (string, error)

	// CurrentBranch returns the short name HEAD points at, or "" when detached.
	CurrentBranch(ctx context.Context) (string, error)

	// PreviousBranch returns the branch checked out before the last checkout.
	PreviousBranch(ctx context.Context) (string, error)

	// BranchJustCreated reports whether the local branch's reflog holds
	// nothing but its creation entry.
	BranchJustCreated(ctx context.Context, name string) (bool, error)

	// ResolveRevision resolves a revision to a full SHA.
	ResolveRevision(ctx context.Context, rev string) (string, error)

	// BranchExists reports whether a local branch exists.
	BranchExists(ctx context.Context, name string) bool

	// ParentHashes returns the parents of a commit in order.
	ParentHashes(ctx context.Context, sha string) ([]string, error)

	// CommitMessage returns the full message of a commit.
	CommitMessage(ctx context.Context, sha string) (string, error)

	// IsAncestor reports whether ancestor is reachable from descendant.
	// A commit is its own ancestor.
	IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error)

	// CommitsAhead counts the commits in base..head.
	CommitsAhead(ctx context.Context, base, head string) (int, error)

	// MergeInProgress reports whether MERGE_HEAD exists.
	MergeInProgress(ctx context.Context) bool

	// StagedFiles lists paths staged as added, copied, modified or renamed.
	StagedFiles(ctx context.Context) ([]string, error)

	// ModifiedFiles lists paths with unstaged working-tree modifications.
	ModifiedFiles(ctx context.Context) ([]string, error)

	// StageFile adds a path to the index.
	StageFile(ctx context.Context, path string) error

	// ConfigValue reads a dotted git config key such as "hooks.maxCommits"
	// or "branch.feat-X-1.base".
	ConfigValue(ctx context.Context, key string) (string, bool)

	// SetConfigValue writes a dotted git config key to the repository config.
	SetConfigValue(ctx context.Context, key, value string) error
}
