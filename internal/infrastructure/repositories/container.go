package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/repositories"
	"github.com/rios0rios0/gitflow-hooks/internal/infrastructure/audit"
	"github.com/rios0rios0/gitflow-hooks/internal/infrastructure/repositories/commandconf"
	"github.com/rios0rios0/gitflow-hooks/internal/infrastructure/repositories/gitrepo"
	"github.com/rios0rios0/gitflow-hooks/internal/infrastructure/repositories/settings"
	"github.com/rios0rios0/gitflow-hooks/internal/infrastructure/repositories/shell"
)

// RegisterProviders binds every domain repository interface to its
// infrastructure implementation.
func RegisterProviders(container *dig.Container) error {
	providers := []any{
		func() repositories.GitRepository { return gitrepo.NewRepository() },
		func() repositories.CommandConfigRepository { return commandconf.NewFileRepository() },
		func() repositories.CommandRunner { return shell.NewRunner() },
		func(git repositories.GitRepository) repositories.SettingsRepository {
			return settings.NewRepository(git)
		},
		func() repositories.AuditRepository { return audit.NewRepository() },
	}
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return err
		}
	}
	return nil
}
