// Package config loads the Scheduler Service's configuration from a YAML
// file with environment-variable overrides, applying the §6 defaults
// before either is consulted.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/rtdplus/testfloor-scheduler/internal/scheduling"
)

// Config is the full set of values the binary needs beyond the engine's
// own Config: the Gateway DSN, the round interval, and the ambient
// logging/metrics surface.
type Config struct {
	DatabaseDSN            string `yaml:"database_dsn"`
	ScheduleIntervalSeconds int    `yaml:"schedule_interval_seconds"`
	MetricsAddr            string `yaml:"metrics_addr"`
	LogLevel               string `yaml:"log_level"`

	Population        int     `yaml:"population_size"`
	Generations       int     `yaml:"generation_count"`
	Islands           int     `yaml:"island_count"`
	CrossoverRate     float64 `yaml:"crossover_rate"`
	MutationRate      float64 `yaml:"mutation_rate"`
	Elitism           int     `yaml:"elitism_count"`
	MigrationInterval int     `yaml:"migration_interval"`
	MigrationRate     float64 `yaml:"migration_rate"`
	MigrationPolicy   string  `yaml:"migration_policy"`
	MigrationTopology string  `yaml:"migration_topology"`
}

// Default returns the §6 defaults.
func Default() Config {
	return Config{
		ScheduleIntervalSeconds: 300,
		MetricsAddr:             "",
		LogLevel:                "info",
		Population:              100,
		Generations:             200,
		Islands:                 4,
		CrossoverRate:           0.8,
		MutationRate:            0.2,
		Elitism:                 2,
		MigrationInterval:       10,
		MigrationRate:           0.1,
		MigrationPolicy:         "BEST",
		MigrationTopology:       "RING",
	}
}

// Load reads path (if non-empty and present) over the defaults, then
// applies environment-variable overrides. A missing path is not an
// error: the binary can run on defaults plus env vars alone.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("SCHEDULE_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ScheduleIntervalSeconds = n
		}
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// EngineConfig translates this Config's GA fields into a
// scheduling.Config, validating enum strings along the way.
func (c Config) EngineConfig() (scheduling.Config, error) {
	policy, err := parseMigrationPolicy(c.MigrationPolicy)
	if err != nil {
		return scheduling.Config{}, err
	}
	topology, err := parseMigrationTopology(c.MigrationTopology)
	if err != nil {
		return scheduling.Config{}, err
	}

	cfg := scheduling.NewConfig(
		scheduling.WithPopulationSize(c.Population),
		scheduling.WithGenerationCount(c.Generations),
		scheduling.WithIslandCount(c.Islands),
		scheduling.WithCrossoverRate(c.CrossoverRate),
		scheduling.WithMutationRate(c.MutationRate),
		scheduling.WithElitismCount(c.Elitism),
		scheduling.WithMigrationInterval(c.MigrationInterval),
		scheduling.WithMigrationRate(c.MigrationRate),
		scheduling.WithMigrationPolicy(policy),
		scheduling.WithMigrationTopology(topology),
	)
	return cfg, cfg.Validate()
}

func parseMigrationPolicy(s string) (scheduling.MigrationPolicy, error) {
	switch s {
	case "BEST", "":
		return scheduling.MigrationBest, nil
	case "RANDOM":
		return scheduling.MigrationRandom, nil
	case "TOURNAMENT":
		return scheduling.MigrationTournament, nil
	case "ROULETTE_WHEEL":
		return scheduling.MigrationRouletteWheel, nil
	default:
		return 0, fmt.Errorf("config: unknown migration_policy %q", s)
	}
}

func parseMigrationTopology(s string) (scheduling.MigrationTopology, error) {
	switch s {
	case "RING", "":
		return scheduling.TopologyRing, nil
	case "FULLY_CONNECTED":
		return scheduling.TopologyFullyConnected, nil
	case "STAR":
		return scheduling.TopologyStar, nil
	case "MESH":
		return scheduling.TopologyMesh, nil
	default:
		return 0, fmt.Errorf("config: unknown migration_topology %q", s)
	}
}
