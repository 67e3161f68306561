//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/repositories"
)

// StubCommandConfigRepository implements repositories.CommandConfigRepository.
type StubCommandConfigRepository struct {
	Specs     []entities.CommandSpec
	Err       error
	LoadCalls []string
}

var _ repositories.CommandConfigRepository = (*StubCommandConfigRepository)(nil)

func (s *StubCommandConfigRepository) Load(
	_ context.Context,
	path, hookName string,
) ([]entities.CommandSpec, error) {
	s.LoadCalls = append(s.LoadCalls, path+"#"+hookName)
	var specs []entities.CommandSpec
	for _, spec := range s.Specs {
		if spec.Hook == hookName {
			specs = append(specs, spec)
		}
	}
	return specs, s.Err
}

// StubSettingsRepository implements repositories.SettingsRepository.
type StubSettingsRepository struct {
	Settings entities.Settings
	Err      error
}

var _ repositories.SettingsRepository = (*StubSettingsRepository)(nil)

func (s *StubSettingsRepository) Load(_ context.Context, hookName string) (*entities.Settings, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	settings := s.Settings
	settings.HookName = hookName
	return &settings, nil
}

// SpyAuditRepository implements repositories.AuditRepository without files.
type SpyAuditRepository struct {
	Err           error
	AttachedHooks []string
	DetachCount   int
}

var _ repositories.AuditRepository = (*SpyAuditRepository)(nil)

func (s *SpyAuditRepository) Attach(_, hookName string) (func(), error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.AttachedHooks = append(s.AttachedHooks, hookName)
	return func() { s.DetachCount++ }, nil
}
