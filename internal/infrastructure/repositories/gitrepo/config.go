package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	format "github.com/go-git/go-git/v5/plumbing/format/config"
)

// ErrInvalidConfigKey is returned for keys without a section and option.
var ErrInvalidConfigKey = errors.New("invalid git config key")

// configKey is a dotted key split the way git splits it: the subsection is
// everything between the first and the last dot, so branch names with dots
// survive.
type configKey struct {
	section    string
	subsection string
	option     string
}

func parseConfigKey(key string) (configKey, error) {
	first := strings.Index(key, ".")
	last := strings.LastIndex(key, ".")
	if first <= 0 || last == len(key)-1 {
		return configKey{}, fmt.Errorf("%w: %q", ErrInvalidConfigKey, key)
	}
	parsed := configKey{section: key[:first], option: key[last+1:]}
	if first != last {
		parsed.subsection = key[first+1 : last]
	}
	return parsed, nil
}

// ConfigValue reads a key from the repository's local config.
func (it *Repository) ConfigValue(_ context.Context, key string) (string, bool) {
	parsed, err := parseConfigKey(key)
	if err != nil {
		return "", false
	}
	repo, err := it.open()
	if err != nil {
		return "", false
	}
	cfg, err := repo.Config()
	if err != nil || cfg.Raw == nil || !cfg.Raw.HasSection(parsed.section) {
		return "", false
	}
	return lookup(cfg.Raw, parsed)
}

// SetConfigValue writes a key into <gitdir>/config. The file is decoded and
// re-encoded with go-git's raw config format rather than through
// Repository.SetConfig, which rewrites branch sections and drops keys it
// does not model, such as branch.<name>.base.
func (it *Repository) SetConfigValue(ctx context.Context, key, value string) error {
	parsed, err := parseConfigKey(key)
	if err != nil {
		return err
	}
	gitDir, err := it.GitDir(ctx)
	if err != nil {
		return err
	}
	path := filepath.Join(gitDir, "config")

	raw := format.New()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if decodeErr := format.NewDecoder(bytes.NewReader(data)).Decode(raw); decodeErr != nil {
			return fmt.Errorf("failed to parse %s: %w", path, decodeErr)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	section := raw.Section(parsed.section)
	if parsed.subsection == "" {
		section.SetOption(parsed.option, value)
	} else {
		section.Subsection(parsed.subsection).SetOption(parsed.option, value)
	}

	var buf bytes.Buffer
	if encodeErr := format.NewEncoder(&buf).Encode(raw); encodeErr != nil {
		return fmt.Errorf("failed to encode %s: %w", path, encodeErr)
	}
	//nolint:gosec // git config files are 0644 by default
	if writeErr := os.WriteFile(path, buf.Bytes(), 0o644); writeErr != nil {
		return fmt.Errorf("failed to write %s: %w", path, writeErr)
	}
	return nil
}

func lookup(raw *format.Config, key configKey) (string, bool) {
	section := raw.Section(key.section)
	if key.subsection == "" {
		if !section.HasOption(key.option) {
			return "", false
		}
		return section.Option(key.option), true
	}
	if !section.HasSubsection(key.subsection) {
		return "", false
	}
	subsection := section.Subsection(key.subsection)
	if !subsection.HasOption(key.option) {
		return "", false
	}
	return subsection.Option(key.option), true
}
