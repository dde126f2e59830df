// Command scheduler runs the test-floor dispatch scheduler: an
// island-model genetic algorithm that repeatedly reads the current lot
// and equipment state from a Datastore Gateway and writes back a
// dispatch schedule.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rtdplus/testfloor-scheduler/internal/config"
	"github.com/rtdplus/testfloor-scheduler/internal/gateway"
	"github.com/rtdplus/testfloor-scheduler/internal/metrics"
	"github.com/rtdplus/testfloor-scheduler/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath   string
		once         bool
		memory       bool
		seed         int64
		intervalFlag int
	)

	cmd := &cobra.Command{
		Use:   "scheduler [interval-seconds]",
		Short: "Run the test-floor dispatch scheduling service",
		Long: "Run the test-floor dispatch scheduling service.\n\n" +
			"The interval between rounds may be given positionally (for " +
			"compatibility with the original CLI contract) or via --interval; " +
			"an explicit --interval takes precedence over the positional " +
			"argument, which in turn takes precedence over the config file.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			interval, err := resolveInterval(cmd, args, intervalFlag)
			if err != nil {
				return err
			}
			return run(cmd.Context(), configPath, once, memory, seed, interval)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().BoolVar(&once, "once", false, "run a single round and exit instead of looping")
	cmd.Flags().BoolVar(&memory, "memory", false, "use an in-memory gateway seeded with a small demo problem instead of the database")
	cmd.Flags().Int64Var(&seed, "seed", 1, "base RNG seed for the archipelago")
	cmd.Flags().IntVar(&intervalFlag, "interval", 0, "seconds between rounds (default: config file value, or 300)")

	return cmd
}

// resolveInterval implements the §6 precedence: an explicit --interval
// wins, then the positional argument, then 0 (meaning "leave the config
// value alone").
func resolveInterval(cmd *cobra.Command, args []string, intervalFlag int) (int, error) {
	if cmd.Flags().Changed("interval") {
		if intervalFlag <= 0 {
			return 0, fmt.Errorf("--interval must be a positive number of seconds, got %d", intervalFlag)
		}
		return intervalFlag, nil
	}
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("interval-seconds must be a positive integer, got %q", args[0])
		}
		return n, nil
	}
	return 0, nil
}

func run(ctx context.Context, configPath string, once, memory bool, seed int64, intervalOverride int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if intervalOverride > 0 {
		cfg.ScheduleIntervalSeconds = intervalOverride
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := log.Logger

	engineCfg, err := cfg.EngineConfig()
	if err != nil {
		return fmt.Errorf("build engine config: %w", err)
	}

	gw, closeGW, err := buildGateway(ctx, cfg, memory)
	if err != nil {
		return fmt.Errorf("build gateway: %w", err)
	}
	if closeGW != nil {
		defer closeGW()
	}

	met := metrics.New()
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, met, logger)
	}

	svc := service.New(gw, engineCfg, time.Duration(cfg.ScheduleIntervalSeconds)*time.Second, seed, logger, met)

	if once {
		_, err := svc.RunOnce(ctx)
		return err
	}

	runCtx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info().Msg("scheduler service starting")
	err = svc.Run(runCtx)
	logger.Info().Msg("scheduler service stopped")
	return err
}

func buildGateway(ctx context.Context, cfg config.Config, memory bool) (gateway.Gateway, func(), error) {
	if memory || cfg.DatabaseDSN == "" {
		lots := []string{"LOT-1", "LOT-2", "LOT-3", "LOT-4"}
		machines := []string{"EQ-1", "EQ-2"}
		times := [][]float64{
			{12, 15},
			{9, 11},
			{14, 0},
			{0, 8},
		}
		return gateway.NewMemoryGateway(lots, machines, times), nil, nil
	}

	sg, err := gateway.OpenSQLGateway(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	return sg, func() { _ = sg.Close() }, nil
}

func serveMetrics(addr string, met *metrics.Metrics, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", met.Handler())
	logger.Info().Str("addr", addr).Msg("metrics server listening")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("metrics server stopped")
	}
}
