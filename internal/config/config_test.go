package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.ScheduleIntervalSeconds)
	assert.Equal(t, "BEST", cfg.MigrationPolicy)
}

func TestLoad_NonexistentFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Population, cfg.Population)
}

func TestLoad_ParsesYAMLOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
population_size: 40
island_count: 2
migration_policy: TOURNAMENT
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Population)
	assert.Equal(t, 2, cfg.Islands)
	assert.Equal(t, "TOURNAMENT", cfg.MigrationPolicy)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, 300, cfg.ScheduleIntervalSeconds)
}

func TestLoad_EnvOverridesWinOverFileAndDefaults(t *testing.T) {
	t.Setenv("DSN", "postgres://example/test")
	t.Setenv("SCHEDULE_INTERVAL_SECONDS", "45")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schedule_interval_seconds: 120\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://example/test", cfg.DatabaseDSN)
	assert.Equal(t, 45, cfg.ScheduleIntervalSeconds)
}

func TestEngineConfig_ValidTranslation(t *testing.T) {
	cfg := Default()
	cfg.Population = 40
	cfg.Islands = 4

	engine, err := cfg.EngineConfig()
	require.NoError(t, err)
	assert.Equal(t, 40, engine.PopulationSize)
	assert.Equal(t, 4, engine.IslandCount)
}

func TestEngineConfig_RejectsUnknownPolicy(t *testing.T) {
	cfg := Default()
	cfg.MigrationPolicy = "NOT_A_POLICY"

	_, err := cfg.EngineConfig()
	assert.Error(t, err)
}

func TestEngineConfig_RejectsUnknownTopology(t *testing.T) {
	cfg := Default()
	cfg.MigrationTopology = "NOT_A_TOPOLOGY"

	_, err := cfg.EngineConfig()
	assert.Error(t, err)
}
