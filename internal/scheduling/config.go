package scheduling

import "fmt"

// MigrationPolicy selects which individuals leave an island during
// migration.
type MigrationPolicy int

const (
	MigrationBest MigrationPolicy = iota
	MigrationRandom
	MigrationTournament
	MigrationRouletteWheel
)

// MigrationTopology selects the static graph connecting islands.
type MigrationTopology int

const (
	TopologyRing MigrationTopology = iota
	TopologyFullyConnected
	TopologyStar
	TopologyMesh
)

// Config holds the Archipelago's tunable parameters. Use NewConfig for
// spec defaults and the With* helpers (functional options) to override
// individual fields.
type Config struct {
	PopulationSize     int
	GenerationCount    int
	IslandCount        int
	CrossoverRate      float64
	MutationRate       float64
	ElitismCount       int
	MigrationInterval  int
	MigrationRate      float64
	MigrationPolicy    MigrationPolicy
	MigrationTopology  MigrationTopology
}

// NewConfig returns the §6 defaults: population 100, generations 200,
// islands 4, crossover 0.8, mutation 0.2, elitism 2, migration interval
// 10, migration rate 0.1, BEST policy, RING topology.
func NewConfig(options ...func(*Config)) Config {
	cfg := Config{
		PopulationSize:    100,
		GenerationCount:   200,
		IslandCount:       4,
		CrossoverRate:     0.8,
		MutationRate:      0.2,
		ElitismCount:      2,
		MigrationInterval: 10,
		MigrationRate:     0.1,
		MigrationPolicy:   MigrationBest,
		MigrationTopology: TopologyRing,
	}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

func WithPopulationSize(n int) func(*Config)       { return func(c *Config) { c.PopulationSize = n } }
func WithGenerationCount(n int) func(*Config)       { return func(c *Config) { c.GenerationCount = n } }
func WithIslandCount(n int) func(*Config)           { return func(c *Config) { c.IslandCount = n } }
func WithCrossoverRate(r float64) func(*Config)     { return func(c *Config) { c.CrossoverRate = r } }
func WithMutationRate(r float64) func(*Config)      { return func(c *Config) { c.MutationRate = r } }
func WithElitismCount(n int) func(*Config)          { return func(c *Config) { c.ElitismCount = n } }
func WithMigrationInterval(n int) func(*Config)     { return func(c *Config) { c.MigrationInterval = n } }
func WithMigrationRate(r float64) func(*Config)     { return func(c *Config) { c.MigrationRate = r } }
func WithMigrationPolicy(p MigrationPolicy) func(*Config) {
	return func(c *Config) { c.MigrationPolicy = p }
}
func WithMigrationTopology(t MigrationTopology) func(*Config) {
	return func(c *Config) { c.MigrationTopology = t }
}

// PopulationPerIsland returns floor(PopulationSize / IslandCount).
func (c Config) PopulationPerIsland() int {
	return c.PopulationSize / c.IslandCount
}

// Validate rejects configuration that violates arithmetic bounds. This is
// the only class of error the engine treats as fatal (§7); everything
// else normalizes through repair or is the Service's decision to skip.
func (c Config) Validate() error {
	if c.IslandCount <= 0 {
		return fmt.Errorf("island_count must be > 0, got %d", c.IslandCount)
	}
	if c.PopulationPerIsland() <= 0 {
		return fmt.Errorf("population_size %d spread over %d islands yields an empty island", c.PopulationSize, c.IslandCount)
	}
	if c.ElitismCount >= c.PopulationPerIsland() {
		return fmt.Errorf("elitism_count (%d) must be < population per island (%d)", c.ElitismCount, c.PopulationPerIsland())
	}
	if c.GenerationCount < 0 {
		return fmt.Errorf("generation_count must be >= 0, got %d", c.GenerationCount)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("crossover_rate must be in [0,1], got %f", c.CrossoverRate)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("mutation_rate must be in [0,1], got %f", c.MutationRate)
	}
	if c.MigrationInterval <= 0 {
		return fmt.Errorf("migration_interval must be > 0, got %d", c.MigrationInterval)
	}
	return nil
}
