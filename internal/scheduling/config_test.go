package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, 100, cfg.PopulationSize)
	assert.Equal(t, 200, cfg.GenerationCount)
	assert.Equal(t, 4, cfg.IslandCount)
	assert.Equal(t, 0.8, cfg.CrossoverRate)
	assert.Equal(t, 0.2, cfg.MutationRate)
	assert.Equal(t, 2, cfg.ElitismCount)
	assert.Equal(t, 10, cfg.MigrationInterval)
	assert.Equal(t, 0.1, cfg.MigrationRate)
	assert.Equal(t, MigrationBest, cfg.MigrationPolicy)
	assert.Equal(t, TopologyRing, cfg.MigrationTopology)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig_Overrides(t *testing.T) {
	cfg := NewConfig(
		WithPopulationSize(50),
		WithIslandCount(5),
		WithMigrationPolicy(MigrationTournament),
		WithMigrationTopology(TopologyStar),
	)
	assert.Equal(t, 50, cfg.PopulationSize)
	assert.Equal(t, 5, cfg.IslandCount)
	assert.Equal(t, MigrationTournament, cfg.MigrationPolicy)
	assert.Equal(t, TopologyStar, cfg.MigrationTopology)
}

func TestConfig_PopulationPerIsland(t *testing.T) {
	cfg := NewConfig(WithPopulationSize(101), WithIslandCount(4))
	assert.Equal(t, 25, cfg.PopulationPerIsland())
}

func TestConfig_ValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero islands", NewConfig(WithIslandCount(0))},
		{"empty island population", NewConfig(WithPopulationSize(1), WithIslandCount(4))},
		{"elitism too high", NewConfig(WithPopulationSize(8), WithIslandCount(4), WithElitismCount(2))},
		{"negative generations", NewConfig(WithGenerationCount(-1))},
		{"crossover rate out of range", NewConfig(WithCrossoverRate(1.5))},
		{"mutation rate negative", NewConfig(WithMutationRate(-0.1))},
		{"zero migration interval", NewConfig(WithMigrationInterval(0))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}
