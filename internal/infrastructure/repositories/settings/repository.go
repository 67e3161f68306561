package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/rios0rios0/gitflow-hooks/internal/domain/entities"
	"github.com/rios0rios0/gitflow-hooks/internal/domain/repositories"
)

const (
	keyConfigDir            = "configDir"
	keyMaxCommits           = "maxCommits"
	keyAutoAddAfterFix      = "autoAddAfterFix"
	keyParallelExecution    = "parallelExecution"
	keyMaxParallel          = "maxParallel"
	keyGracePeriod          = "gracePeriod"
	keyShell                = "shell"
	keyCommandsFile         = "commandsFile"
	keyLogFile              = "logFile"
	keyReleaseVerbs         = "releaseVerbs"
	keyBypass               = "bypass"
	keyAllowDirectProtected = "allowDirectProtected"
)

// envBindings maps settings keys to the environment variables that set them.
//
//nolint:gochecknoglobals // immutable binding table
var envBindings = map[string]string{
	keyConfigDir:            "GITHOOKS_CONFIG_DIR",
	keyBypass:               "BYPASS_HOOKS",
	keyAllowDirectProtected: "ALLOW_DIRECT_PROTECTED",
}

// gitConfigKeys are the settings a repository can override with git config.
//
//nolint:gochecknoglobals // immutable binding table
var gitConfigKeys = []string{
	keyMaxCommits,
	keyAutoAddAfterFix,
	keyParallelExecution,
	keyMaxParallel,
	keyCommandsFile,
	keyLogFile,
}

// Repository builds Settings from, in increasing precedence: built-in
// defaults, <configDir>/settings.yaml, "hooks.*" git config keys, and the
// environment.
type Repository struct {
	git repositories.GitRepository
}

var _ repositories.SettingsRepository = (*Repository)(nil)

// NewRepository creates a new settings Repository.
func NewRepository(git repositories.GitRepository) *Repository {
	return &Repository{git: git}
}

func (it *Repository) Load(ctx context.Context, hookName string) (*entities.Settings, error) {
	rootDir, err := it.git.RootDir(ctx)
	if err != nil {
		return nil, err
	}
	gitDir, err := it.git.GitDir(ctx)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault(keyConfigDir, entities.DefaultConfigDir)
	v.SetDefault(keyMaxCommits, entities.DefaultMaxCommits)
	v.SetDefault(keyAutoAddAfterFix, false)
	v.SetDefault(keyParallelExecution, false)
	v.SetDefault(keyMaxParallel, entities.DefaultMaxParallel)
	v.SetDefault(keyGracePeriod, entities.DefaultGracePeriod)
	v.SetDefault(keyShell, entities.DefaultShell)
	v.SetDefault(keyLogFile, filepath.Join(gitDir, entities.AuditLogFileName))
	v.SetDefault(keyReleaseVerbs, entities.DefaultReleaseVerbs())
	v.SetDefault(keyBypass, false)
	v.SetDefault(keyAllowDirectProtected, false)
	for key, env := range envBindings {
		if bindErr := v.BindEnv(key, env); bindErr != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, bindErr)
		}
	}

	configDir := resolvePath(rootDir, v.GetString(keyConfigDir))
	v.SetDefault(keyCommandsFile, filepath.Join(configDir, entities.CommandsFileName))

	if readErr := readSettingsFile(v, filepath.Join(configDir, entities.SettingsFileName)); readErr != nil {
		return nil, readErr
	}

	for _, key := range gitConfigKeys {
		if value, ok := it.git.ConfigValue(ctx, "hooks."+key); ok {
			v.Set(key, value)
		}
	}

	settings := &entities.Settings{
		HookName:             hookName,
		RootDir:              rootDir,
		GitDir:               gitDir,
		MaxCommits:           positiveInt(v, keyMaxCommits, entities.DefaultMaxCommits),
		AutoAddAfterFix:      v.GetBool(keyAutoAddAfterFix),
		ParallelExecution:    v.GetBool(keyParallelExecution),
		MaxParallel:          positiveInt(v, keyMaxParallel, entities.DefaultMaxParallel),
		GracePeriod:          v.GetDuration(keyGracePeriod),
		Shell:                v.GetString(keyShell),
		CommandsFile:         resolvePath(rootDir, v.GetString(keyCommandsFile)),
		LogFile:              resolvePath(rootDir, v.GetString(keyLogFile)),
		ReleaseVerbs:         v.GetStringSlice(keyReleaseVerbs),
		Bypass:               v.GetBool(keyBypass),
		AllowDirectProtected: v.GetBool(keyAllowDirectProtected),
	}
	if settings.GracePeriod <= 0 {
		settings.GracePeriod = entities.DefaultGracePeriod
	}
	if len(settings.ReleaseVerbs) == 0 {
		settings.ReleaseVerbs = entities.DefaultReleaseVerbs()
	}
	return settings, nil
}

func readSettingsFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	logger.Debugf("Loaded settings from %s", path)
	return nil
}

// positiveInt falls back to def for zero, negative or unparsable values.
func positiveInt(v *viper.Viper, key string, def int) int {
	value := v.GetInt(key)
	if value <= 0 {
		logger.Warnf("Ignoring %s=%q, using %d", key, v.GetString(key), def)
		return def
	}
	return value
}

func resolvePath(rootDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(rootDir, path)
}
