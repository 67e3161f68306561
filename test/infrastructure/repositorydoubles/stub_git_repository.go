//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"sync"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/repositories"
)

// StubCommit is one node of the in-memory commit graph.
type StubCommit struct {
	Parents []string
	Message string
}

// ConfigCall records a single SetConfigValue invocation.
type ConfigCall struct {
	Key   string
	Value string
}

// StubGitRepository implements repositories.GitRepository over an in-memory
// commit graph. Revisions resolve through Refs first, then as commit SHAs.
type StubGitRepository struct {
	mu sync.Mutex

	// --- paths ---
	Root string
	Dir  string

	// --- HEAD ---
	Branch      string
	BranchErr   error
	Previous    string
	PreviousErr error

	// --- BranchJustCreated ---
	Created    map[string]bool
	CreatedErr error

	// --- graph ---
	Refs          map[string]string
	Commits       map[string]StubCommit
	LocalBranches map[string]bool

	// --- state ---
	Merging bool

	// --- StagedFiles ---
	Staged      []string
	StagedErr   error
	StagedCalls int

	// --- ModifiedFiles: each call returns the next entry, the last one repeats ---
	ModifiedSequence [][]string
	ModifiedErr      error
	modifiedCalls    int

	// --- StageFile ---
	StageErr    error
	StagedPaths []string

	// --- config ---
	Config         map[string]string
	SetConfigErr   error
	SetConfigCalls []ConfigCall
}

var _ repositories.GitRepository = (*StubGitRepository)(nil)

// NewStubGitRepository creates an empty stub on the given branch.
func NewStubGitRepository(branch string) *StubGitRepository {
	return &StubGitRepository{
		Root:          "/repo",
		Dir:           "/repo/.git",
		Branch:        branch,
		Refs:          map[string]string{},
		Commits:       map[string]StubCommit{},
		LocalBranches: map[string]bool{},
		Created:       map[string]bool{},
		Config:        map[string]string{},
	}
}

// WithCommit adds a commit to the graph.
func (s *StubGitRepository) WithCommit(sha, message string, parents ...string) *StubGitRepository {
	s.Commits[sha] = StubCommit{Parents: parents, Message: message}
	return s
}

// WithBranch points a local branch (and HEAD, when it is the current branch) at sha.
func (s *StubGitRepository) WithBranch(name, sha string) *StubGitRepository {
	s.Refs[name] = sha
	s.LocalBranches[name] = true
	if name == s.Branch {
		s.Refs["HEAD"] = sha
	}
	return s
}

// WithRef points a non-branch revision such as "origin/develop" at sha.
func (s *StubGitRepository) WithRef(name, sha string) *StubGitRepository {
	s.Refs[name] = sha
	return s
}

func (s *StubGitRepository) RootDir(_ context.Context) (string, error) { return s.Root, nil }
func (s *StubGitRepository) GitDir(_ context.Context) (string, error)  { return s.Dir, nil }

func (s *StubGitRepository) CurrentBranch(_ context.Context) (string, error) {
	return s.Branch, s.BranchErr
}

func (s *StubGitRepository) PreviousBranch(_ context.Context) (string, error) {
	return s.Previous, s.PreviousErr
}

func (s *StubGitRepository) BranchJustCreated(_ context.Context, name string) (bool, error) {
	return s.Created[name], s.CreatedErr
}

func (s *StubGitRepository) ResolveRevision(_ context.Context, rev string) (string, error) {
	if sha, ok := s.Refs[rev]; ok {
		return sha, nil
	}
	if _, ok := s.Commits[rev]; ok {
		return rev, nil
	}
	return "", fmt.Errorf("unknown revision %q", rev)
}

func (s *StubGitRepository) BranchExists(_ context.Context, name string) bool {
	return s.LocalBranches[name]
}

func (s *StubGitRepository) ParentHashes(ctx context.Context, sha string) ([]string, error) {
	commit, err := s.commit(ctx, sha)
	if err != nil {
		return nil, err
	}
	return commit.Parents, nil
}

func (s *StubGitRepository) CommitMessage(ctx context.Context, sha string) (string, error) {
	commit, err := s.commit(ctx, sha)
	if err != nil {
		return "", err
	}
	return commit.Message, nil
}

func (s *StubGitRepository) IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	older, err := s.ResolveRevision(ctx, ancestor)
	if err != nil {
		return false, err
	}
	newer, err := s.ResolveRevision(ctx, descendant)
	if err != nil {
		return false, err
	}
	_, found := s.reachable(newer)[older]
	return found, nil
}

func (s *StubGitRepository) CommitsAhead(ctx context.Context, base, head string) (int, error) {
	baseSHA, err := s.ResolveRevision(ctx, base)
	if err != nil {
		return 0, err
	}
	headSHA, err := s.ResolveRevision(ctx, head)
	if err != nil {
		return 0, err
	}
	contained := s.reachable(baseSHA)
	count := 0
	for sha := range s.reachable(headSHA) {
		if _, ok := contained[sha]; !ok {
			count++
		}
	}
	return count, nil
}

func (s *StubGitRepository) MergeInProgress(_ context.Context) bool { return s.Merging }

func (s *StubGitRepository) StagedFiles(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.StagedCalls++
	return s.Staged, s.StagedErr
}

func (s *StubGitRepository) ModifiedFiles(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ModifiedErr != nil {
		return nil, s.ModifiedErr
	}
	if len(s.ModifiedSequence) == 0 {
		return nil, nil
	}
	idx := min(s.modifiedCalls, len(s.ModifiedSequence)-1)
	s.modifiedCalls++
	return s.ModifiedSequence[idx], nil
}

func (s *StubGitRepository) StageFile(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.StageErr != nil {
		return s.StageErr
	}
	s.StagedPaths = append(s.StagedPaths, path)
	return nil
}

func (s *StubGitRepository) ConfigValue(_ context.Context, key string) (string, bool) {
	value, ok := s.Config[key]
	return value, ok
}

func (s *StubGitRepository) SetConfigValue(_ context.Context, key, value string) error {
	s.SetConfigCalls = append(s.SetConfigCalls, ConfigCall{Key: key, Value: value})
	if s.SetConfigErr != nil {
		return s.SetConfigErr
	}
	s.Config[key] = value
	return nil
}

func (s *StubGitRepository) commit(ctx context.Context, rev string) (StubCommit, error) {
	sha, err := s.ResolveRevision(ctx, rev)
	if err != nil {
		return StubCommit{}, err
	}
	commit, ok := s.Commits[sha]
	if !ok {
		return StubCommit{}, fmt.Errorf("unknown commit %q", sha)
	}
	return commit, nil
}

// reachable returns sha and every commit reachable from it.
func (s *StubGitRepository) reachable(sha string) map[string]struct{} {
	seen := map[string]struct{}{}
	queue := []string{sha}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if _, ok := seen[current]; ok {
			continue
		}
		seen[current] = struct{}{}
		queue = append(queue, s.Commits[current].Parents...)
	}
	return seen
}
