package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/repositories"
)

// ErrNoGitDir is returned when the repository storage is not on disk.
var ErrNoGitDir = errors.New("repository has no on-disk git directory")

// Repository implements repositories.GitRepository on top of go-git.
// The repository is opened on first use, so constructing it outside a
// working tree is harmless.
type Repository struct {
	path string

	once sync.Once
	repo *git.Repository
	err  error
}

var _ repositories.GitRepository = (*Repository)(nil)

// NewRepository creates a Repository for the working tree containing the
// current directory.
func NewRepository() *Repository {
	return NewRepositoryAt(".")
}

// NewRepositoryAt creates a Repository for the working tree containing path.
func NewRepositoryAt(path string) *Repository {
	return &Repository{path: path}
}

func (it *Repository) open() (*git.Repository, error) {
	it.once.Do(func() {
		it.repo, it.err = git.PlainOpenWithOptions(it.path, &git.PlainOpenOptions{
			DetectDotGit:          true,
			EnableDotGitCommonDir: true,
		})
		if it.err != nil {
			it.err = fmt.Errorf("failed to open git repository at %q: %w", it.path, it.err)
		}
	})
	return it.repo, it.err
}

func (it *Repository) worktree() (*git.Worktree, error) {
	repo, err := it.open()
	if err != nil {
		return nil, err
	}
	return repo.Worktree()
}

func (it *Repository) RootDir(_ context.Context) (string, error) {
	wt, err := it.worktree()
	if err != nil {
		return "", err
	}
	return wt.Filesystem.Root(), nil
}

func (it *Repository) GitDir(_ context.Context) (string, error) {
	repo, err := it.open()
	if err != nil {
		return "", err
	}
	storage, ok := repo.Storer.(*filesystem.Storage)
	if !ok {
		return "", ErrNoGitDir
	}
	return storage.Filesystem().Root(), nil
}

// CurrentBranch reads HEAD without resolving it, so an unborn branch still
// reports its name.
func (it *Repository) CurrentBranch(_ context.Context) (string, error) {
	repo, err := it.open()
	if err != nil {
		return "", err
	}
	head, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if head.Type() != plumbing.SymbolicReference || !head.Target().IsBranch() {
		return "", nil
	}
	return head.Target().Short(), nil
}

func (it *Repository) PreviousBranch(ctx context.Context) (string, error) {
	gitDir, err := it.GitDir(ctx)
	if err != nil {
		return "", err
	}
	return previousBranchFromReflog(filepath.Join(gitDir, "logs", "HEAD"))
}

func (it *Repository) BranchJustCreated(ctx context.Context, name string) (bool, error) {
	gitDir, err := it.GitDir(ctx)
	if err != nil {
		return false, err
	}
	return createdOnlyInReflog(filepath.Join(gitDir, "logs", "refs", "heads", filepath.FromSlash(name)))
}

func (it *Repository) ResolveRevision(_ context.Context, rev string) (string, error) {
	repo, err := it.open()
	if err != nil {
		return "", err
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", rev, err)
	}
	return hash.String(), nil
}

func (it *Repository) BranchExists(_ context.Context, name string) bool {
	repo, err := it.open()
	if err != nil {
		return false
	}
	_, err = repo.Reference(plumbing.NewBranchReferenceName(name), true)
	return err == nil
}

func (it *Repository) ParentHashes(ctx context.Context, sha string) ([]string, error) {
	commit, err := it.commit(ctx, sha)
	if err != nil {
		return nil, err
	}
	parents := make([]string, 0, len(commit.ParentHashes))
	for _, hash := range commit.ParentHashes {
		parents = append(parents, hash.String())
	}
	return parents, nil
}

func (it *Repository) CommitMessage(ctx context.Context, sha string) (string, error) {
	commit, err := it.commit(ctx, sha)
	if err != nil {
		return "", err
	}
	return commit.Message, nil
}

func (it *Repository) IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	older, err := it.commit(ctx, ancestor)
	if err != nil {
		return false, err
	}
	newer, err := it.commit(ctx, descendant)
	if err != nil {
		return false, err
	}
	return older.IsAncestor(newer)
}

// CommitsAhead counts commits reachable from head that base cannot reach.
func (it *Repository) CommitsAhead(ctx context.Context, base, head string) (int, error) {
	baseCommit, err := it.commit(ctx, base)
	if err != nil {
		return 0, err
	}
	headCommit, err := it.commit(ctx, head)
	if err != nil {
		return 0, err
	}

	contained := map[plumbing.Hash]bool{}
	err = object.NewCommitPreorderIter(baseCommit, nil, nil).ForEach(func(c *object.Commit) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		contained[c.Hash] = true
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to walk %s: %w", base, err)
	}

	count := 0
	err = object.NewCommitPreorderIter(headCommit, contained, nil).ForEach(func(*object.Commit) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		count++
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return 0, fmt.Errorf("failed to walk %s..%s: %w", base, head, err)
	}
	return count, nil
}

func (it *Repository) MergeInProgress(ctx context.Context) bool {
	gitDir, err := it.GitDir(ctx)
	if err != nil {
		return false
	}
	_, err = os.Stat(filepath.Join(gitDir, "MERGE_HEAD"))
	return err == nil
}

func (it *Repository) StagedFiles(_ context.Context) ([]string, error) {
	return it.filesWhere(func(status *git.FileStatus) bool {
		switch status.Staging {
		case git.Added, git.Modified, git.Renamed, git.Copied:
			return true
		default:
			return false
		}
	})
}

func (it *Repository) ModifiedFiles(_ context.Context) ([]string, error) {
	return it.filesWhere(func(status *git.FileStatus) bool {
		return status.Worktree == git.Modified
	})
}

func (it *Repository) StageFile(_ context.Context, path string) error {
	wt, err := it.worktree()
	if err != nil {
		return err
	}
	if _, err = wt.Add(path); err != nil {
		return fmt.Errorf("failed to stage %q: %w", path, err)
	}
	return nil
}

func (it *Repository) filesWhere(match func(*git.FileStatus) bool) ([]string, error) {
	wt, err := it.worktree()
	if err != nil {
		return nil, err
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read worktree status: %w", err)
	}
	var files []string
	for path, fileStatus := range status {
		if match(fileStatus) {
			files = append(files, path)
		}
	}
	slices.Sort(files)
	return files, nil
}

func (it *Repository) commit(ctx context.Context, rev string) (*object.Commit, error) {
	sha, err := it.ResolveRevision(ctx, rev)
	if err != nil {
		return nil, err
	}
	commit, err := it.repo.CommitObject(plumbing.NewHash(sha))
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", sha, err)
	}
	return commit, nil
}
