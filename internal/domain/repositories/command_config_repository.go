package repositories

import (
	"context"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
)

// CommandConfigRepository reads the declarative command list.
type CommandConfigRepository interface {
	// Load returns the ordered work list for a hook. A missing file yields an
	// empty list; malformed lines are reported and skipped.
	Load(ctx context.Context, path, hookName string) ([]entities.CommandSpec, error)
}
