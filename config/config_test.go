package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fzft/go-probeset/hashset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "probeset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, hashset.DefaultOptions().InitialCapacity, cfg.Set.InitialCapacity)
	assert.Equal(t, "/home/tester/.probeset_history", cfg.Shell.HistoryFile)
	assert.Equal(t, "probeset", cfg.Shell.Prompt)
	assert.NoError(t, cfg.Options().Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
set:
  initial_capacity: 64
  min_capacity: 8
  max_load_factor: 0.5
  min_load_factor: 0.125
shell:
  history_file: /dev/null
  prompt: demo
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Set.InitialCapacity)
	assert.Equal(t, 8, cfg.Set.MinCapacity)
	assert.Equal(t, 0.5, cfg.Set.MaxLoadFactor)
	assert.Equal(t, 0.125, cfg.Set.MinLoadFactor)
	assert.Equal(t, 2, cfg.Set.GrowthFactor, "unset fields keep their defaults")
	assert.Equal(t, "/dev/null", cfg.Shell.HistoryFile)
	assert.Equal(t, "demo", cfg.Shell.Prompt)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_PROBESET_CAP", "128")
	path := writeConfig(t, "set:\n  initial_capacity: ${TEST_PROBESET_CAP}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.Set.InitialCapacity)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "set:\n  initial_capacity: 64\n")
	t.Setenv(EnvInitialCapacity, "32")
	t.Setenv(EnvMaxLoad, "0.9")
	t.Setenv(EnvHistFile, "/tmp/hist")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Set.InitialCapacity)
	assert.Equal(t, 0.9, cfg.Set.MaxLoadFactor)
	assert.Equal(t, "/tmp/hist", cfg.Shell.HistoryFile)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "set: [not, a, map]\n"))
	assert.ErrorContains(t, err, "failed to unmarshal config")

	_, err = Load(writeConfig(t, "set:\n  initial_capacity: 12\n"))
	assert.ErrorIs(t, err, hashset.ErrInvalidOptions)

	t.Setenv(EnvGrowthFactor, "two")
	_, err = Load("")
	assert.ErrorContains(t, err, EnvGrowthFactor)
}

func TestLoadEnvFiles(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	assert.Error(t, LoadEnvFiles())

	require.NoError(t, os.WriteFile(".env", []byte("TEST_PROBESET_DOTENV=yes\n"), 0o644))
	t.Setenv("TEST_PROBESET_DOTENV", "")
	os.Unsetenv("TEST_PROBESET_DOTENV")
	require.NoError(t, LoadEnvFiles())
	assert.Equal(t, "yes", os.Getenv("TEST_PROBESET_DOTENV"))
}

func TestInitialCapacityOverride(t *testing.T) {
	path := writeConfig(t, "set:\n  initial_capacity: 64\n")
	t.Setenv(EnvInitialCapacity, "32")

	cfg, err := Load(path, WithInitialCapacity(128))
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.Set.InitialCapacity, "the flag wins over file and environment")
	assert.Equal(t, 16, cfg.Set.MinCapacity)

	cfg, err = Load(path, WithInitialCapacity(0))
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Set.InitialCapacity, "zero leaves the loaded value alone")

	// min capacity is not lowered to fit; validation rejects the mismatch
	_, err = Load("", WithInitialCapacity(8))
	assert.ErrorIs(t, err, hashset.ErrInvalidOptions)
	_, err = Load("", WithInitialCapacity(24))
	assert.ErrorIs(t, err, hashset.ErrInvalidOptions)
}
