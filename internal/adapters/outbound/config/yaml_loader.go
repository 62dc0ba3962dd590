package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/cpmkit/cpmkit/internal/domain"
)

const fileName = ".cpmkit.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .cpmkit.yaml from the
// solution root.
type YAMLLoader struct {
	fs afero.Fs
}

func New(fs afero.Fs) *YAMLLoader {
	return &YAMLLoader{fs: fs}
}

// Load reads .cpmkit.yaml from root. A missing file means default behavior;
// a malformed or invalid file is a setup error and aborts the run before any
// project file is touched.
func (l *YAMLLoader) Load(root string) (domain.ProjectConfig, error) {
	path := filepath.Join(root, fileName)
	exists, err := afero.Exists(l.fs, path)
	if err == nil && !exists {
		return domain.DefaultConfig(), nil
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return domain.ProjectConfig{}, err
	}

	cfg := domain.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	// Timeouts left unset fall back to the defaults.
	defaults := domain.DefaultConfig()
	if cfg.Build.RestoreTimeout == 0 {
		cfg.Build.RestoreTimeout = defaults.Build.RestoreTimeout
	}
	if cfg.Build.BuildTimeout == 0 {
		cfg.Build.BuildTimeout = defaults.Build.BuildTimeout
	}
	return cfg, nil
}
