//go:build integration || unit || test

// Package gitfixture builds real repositories with go-git for tests.
package gitfixture

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// Repo is a throwaway repository in t.TempDir() whose initial branch is main.
type Repo struct {
	t        testing.TB
	Dir      string
	Repo     *git.Repository
	Worktree *git.Worktree
	counter  int
	clock    time.Time
}

// New initializes an empty repository.
func New(t testing.TB) *Repo {
	t.Helper()
	dir := t.TempDir()
	//nolint:exhaustruct // only the default branch matters here
	repo, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName("main")},
	})
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &Repo{
		t:        t,
		Dir:      dir,
		Repo:     repo,
		Worktree: wt,
		clock:    time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// WriteFile writes a file into the working tree without staging it.
func (r *Repo) WriteFile(path, content string) {
	r.t.Helper()
	require.NoError(r.t, util.WriteFile(r.Worktree.Filesystem, path, []byte(content), 0o644))
}

// Stage adds a path to the index.
func (r *Repo) Stage(path string) {
	r.t.Helper()
	_, err := r.Worktree.Add(path)
	require.NoError(r.t, err)
}

// Commit writes and stages a fresh file, then commits it on HEAD. It returns
// the new commit SHA.
func (r *Repo) Commit(message string) string {
	r.t.Helper()
	return r.CommitWithParents(message)
}

// CommitWithParents commits with explicit parents, which is how merge
// commits are produced. Without parents HEAD is used.
func (r *Repo) CommitWithParents(message string, parents ...string) string {
	r.t.Helper()
	r.counter++
	path := fmt.Sprintf("file-%03d.txt", r.counter)
	r.WriteFile(path, message+"\n")
	r.Stage(path)

	hashes := make([]plumbing.Hash, 0, len(parents))
	for _, parent := range parents {
		hashes = append(hashes, plumbing.NewHash(parent))
	}
	r.clock = r.clock.Add(time.Minute)
	//nolint:exhaustruct // author and parents are all a test commit needs
	hash, err := r.Worktree.Commit(message, &git.CommitOptions{
		Author:  &object.Signature{Name: "Test", Email: "test@example.com", When: r.clock},
		Parents: hashes,
	})
	require.NoError(r.t, err)
	return hash.String()
}

// Head returns the SHA HEAD resolves to.
func (r *Repo) Head() string {
	r.t.Helper()
	ref, err := r.Repo.Head()
	require.NoError(r.t, err)
	return ref.Hash().String()
}

// Branch creates a local branch at sha without checking it out.
func (r *Repo) Branch(name, sha string) {
	r.t.Helper()
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), plumbing.NewHash(sha))
	require.NoError(r.t, r.Repo.Storer.SetReference(ref))
}

// RemoteBranch creates refs/remotes/origin/<name> at sha.
func (r *Repo) RemoteBranch(name, sha string) {
	r.t.Helper()
	ref := plumbing.NewHashReference(plumbing.NewRemoteReferenceName("origin", name), plumbing.NewHash(sha))
	require.NoError(r.t, r.Repo.Storer.SetReference(ref))
}

// Checkout switches to an existing local branch.
func (r *Repo) Checkout(name string) {
	r.t.Helper()
	//nolint:exhaustruct // branch checkout only
	require.NoError(r.t, r.Worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	}))
}

// CheckoutNew creates a branch at HEAD and switches to it.
func (r *Repo) CheckoutNew(name string) {
	r.t.Helper()
	//nolint:exhaustruct // branch creation only
	require.NoError(r.t, r.Worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
	}))
}
