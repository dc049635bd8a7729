package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rulesynth/internal/config"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "rulesynth.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadAppliesDefaultsAndOverrides(t *testing.T) {
	path := writeTemp(t, `
seed = 7
language = "boolean"
iter_limit = 5
constants = { boolean = ["true", "false"] }
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, "boolean", cfg.Language)
	assert.Equal(t, 5, cfg.IterLimit)
	assert.Equal(t, config.ValidatorFuzz, cfg.Validator)
	assert.Equal(t, []string{"true", "false"}, cfg.Constants["boolean"])
}

func TestLoadRejectsInvalidValidator(t *testing.T) {
	path := writeTemp(t, `validator = "magic"`)
	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validator must be")
}

func TestValidateAggregatesMultipleErrors(t *testing.T) {
	cfg := config.Default()
	cfg.IterLimit = 0
	cfg.NodeLimit = 0
	cfg.Variables = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iter_limit")
	assert.Contains(t, err.Error(), "node_limit")
	assert.Contains(t, err.Error(), "variables")
}

func TestDefaultRulesetPathExpandsHome(t *testing.T) {
	cfg := config.Default()
	path, err := cfg.DefaultRulesetPath()
	require.NoError(t, err)
	assert.NotContains(t, path, "~")
}
