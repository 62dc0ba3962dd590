package domain_test

import (
	"testing"
	"time"

	"github.com/cpmkit/cpmkit/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 5*time.Minute, cfg.Build.RestoreTimeout)
	assert.Equal(t, 10*time.Minute, cfg.Build.BuildTimeout)
	assert.Empty(t, cfg.Categories, "empty table means built-in categories")
}

func TestConfigValidate_RejectsEmptyLabel(t *testing.T) {
	cfg := domain.ProjectConfig{
		Categories: []domain.Category{{Prefixes: []string{"X."}}},
	}
	assert.ErrorContains(t, cfg.Validate(), "label must not be empty")
}

func TestConfigValidate_RejectsPrefixlessCategory(t *testing.T) {
	cfg := domain.ProjectConfig{
		Categories: []domain.Category{{Label: "Web"}},
	}
	assert.ErrorContains(t, cfg.Validate(), "at least one prefix")
}

func TestConfigValidate_RejectsNegativeTimeouts(t *testing.T) {
	cfg := domain.ProjectConfig{
		Build: domain.BuildConfig{BuildTimeout: -time.Second},
	}
	assert.ErrorContains(t, cfg.Validate(), "must not be negative")
}
