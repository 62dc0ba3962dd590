package domain

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds tool configuration loaded from .cpmkit.yaml.
// Everything has a usable default; an absent file means default behavior.
type ProjectConfig struct {
	// ExcludeDirs are directory names skipped during discovery, merged
	// with the built-in skip list (bin, obj, packages, .git, ...).
	ExcludeDirs []string `yaml:"exclude_dirs"  json:"exclude_dirs,omitempty"`
	// Categories replaces the built-in categorization table when set.
	// Order matters: the first matching prefix wins.
	Categories []Category `yaml:"categories"    json:"categories,omitempty"`
	// Build tunes the external dotnet invocation used by validation.
	Build BuildConfig `yaml:"build"         json:"build,omitempty"`
}

// BuildConfig bounds the restore and build steps of build validation.
type BuildConfig struct {
	RestoreTimeout time.Duration `yaml:"restore_timeout" json:"restore_timeout,omitempty"`
	BuildTimeout   time.Duration `yaml:"build_timeout"   json:"build_timeout,omitempty"`
}

// UnmarshalYAML accepts Go duration strings ("5m", "90s") for the timeouts.
func (b *BuildConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		RestoreTimeout string `yaml:"restore_timeout"`
		BuildTimeout   string `yaml:"build_timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.RestoreTimeout != "" {
		d, err := time.ParseDuration(raw.RestoreTimeout)
		if err != nil {
			return fmt.Errorf("restore_timeout: %w", err)
		}
		b.RestoreTimeout = d
	}
	if raw.BuildTimeout != "" {
		d, err := time.ParseDuration(raw.BuildTimeout)
		if err != nil {
			return fmt.Errorf("build_timeout: %w", err)
		}
		b.BuildTimeout = d
	}
	return nil
}

// DefaultConfig returns the built-in behavior: default skip dirs, default
// categorization table, five/ten minute build bounds.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		Build: BuildConfig{
			RestoreTimeout: 5 * time.Minute,
			BuildTimeout:   10 * time.Minute,
		},
	}
}

// Validate catches config mistakes before any file is touched.
func (c ProjectConfig) Validate() error {
	for i, cat := range c.Categories {
		if cat.Label == "" {
			return fmt.Errorf("categories[%d]: label must not be empty", i)
		}
		if len(cat.Prefixes) == 0 {
			return fmt.Errorf("categories[%d] (%s): at least one prefix required", i, cat.Label)
		}
	}
	if c.Build.RestoreTimeout < 0 || c.Build.BuildTimeout < 0 {
		return fmt.Errorf("build timeouts must not be negative")
	}
	return nil
}
