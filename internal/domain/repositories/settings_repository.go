package repositories

import (
	"context"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
)

// SettingsRepository assembles the per-invocation Settings.
type SettingsRepository interface {
	Load(ctx context.Context, hookName string) (*entities.Settings, error)
}
