package audit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/repositories"
)

// Repository attaches audit hooks to a logrus logger.
type Repository struct {
	log *logger.Logger
}

var _ repositories.AuditRepository = (*Repository)(nil)

// NewRepository creates a Repository for the standard logger.
func NewRepository() *Repository {
	return NewRepositoryFor(logger.StandardLogger())
}

// NewRepositoryFor creates a Repository for the given logger.
func NewRepositoryFor(log *logger.Logger) *Repository {
	return &Repository{log: log}
}

// Attach adds an audit hook for hookName. Detaching restores the hooks that
// were installed before.
func (it *Repository) Attach(path, hookName string) (func(), error) {
	if path == "" {
		return nil, errors.New("audit log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %w", err)
	}

	hooks := logger.LevelHooks{}
	for level, list := range it.log.Hooks {
		hooks[level] = slices.Clone(list)
	}
	hooks.Add(NewHook(path, hookName))
	previous := it.log.ReplaceHooks(hooks)

	return func() {
		it.log.ReplaceHooks(previous)
	}, nil
}
