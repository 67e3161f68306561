package commandconf

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/repositories"
)

// FileRepository reads commands.conf from disk.
type FileRepository struct{}

var _ repositories.CommandConfigRepository = (*FileRepository)(nil)

// NewFileRepository creates a new FileRepository.
func NewFileRepository() *FileRepository {
	return &FileRepository{}
}

// Load returns the specs for hookName. Malformed lines are logged as
// warnings and skipped.
func (it *FileRepository) Load(_ context.Context, path, hookName string) ([]entities.CommandSpec, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debugf("No command config at %s", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read command config: %w", err)
	}

	specs, parseErrs := entities.ParseCommandSpecs(string(data), hookName)
	for _, parseErr := range parseErrs {
		logger.Warnf("Skipping %s", parseErr)
	}
	logger.Debugf("Loaded %d %s command(s) from %s", len(specs), hookName, path)
	return specs, nil
}
