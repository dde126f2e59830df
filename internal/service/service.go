// Package service implements the Scheduler Service control loop: pull
// the current problem from a Gateway, run an Archipelago for the
// configured number of generations,
// persist the resulting dispatch records, and repeat on an interval
// until asked to stop.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rtdplus/testfloor-scheduler/internal/gateway"
	"github.com/rtdplus/testfloor-scheduler/internal/metrics"
	"github.com/rtdplus/testfloor-scheduler/internal/scheduling"
)

// shutdownPollInterval is the granularity at which Run checks ctx
// cancellation while waiting between rounds.
const shutdownPollInterval = time.Second

// Service drives repeated scheduling rounds against a Gateway.
type Service struct {
	gw       gateway.Gateway
	engine   scheduling.Config
	interval time.Duration
	seed     int64

	log zerolog.Logger
	met *metrics.Metrics
}

// New constructs a Service. Each round seeds its Archipelago with seed
// plus the wall-clock time in nanoseconds at the start of evolution, so
// successive rounds don't repeat identical random draws; a round's
// random draws are therefore not reproducible from seed alone.
func New(gw gateway.Gateway, engine scheduling.Config, interval time.Duration, seed int64, log zerolog.Logger, met *metrics.Metrics) *Service {
	return &Service{gw: gw, engine: engine, interval: interval, seed: seed, log: log, met: met}
}

// RunOnce executes exactly one scheduling round and returns the best
// schedule found, or an error if the round could not be completed.
func (s *Service) RunOnce(ctx context.Context) (scheduling.Schedule, error) {
	roundID := uuid.New().String()
	log := s.log.With().Str("round_id", roundID).Logger()
	start := time.Now()

	lots, err := s.gw.ListLots(ctx)
	if err != nil {
		s.met.RoundFailures.Inc()
		return scheduling.Schedule{}, err
	}
	machines, err := s.gw.ListMachines(ctx)
	if err != nil {
		s.met.RoundFailures.Inc()
		return scheduling.Schedule{}, err
	}
	times, err := s.gw.ProcessTimeMatrix(ctx, lots, machines)
	if err != nil {
		s.met.RoundFailures.Inc()
		return scheduling.Schedule{}, err
	}

	problem := &scheduling.Problem{Lots: lots, Machines: machines, ProcessTimes: times}
	if err := problem.Validate(); err != nil {
		log.Error().Err(err).Msg("round aborted: invalid problem")
		s.met.RoundFailures.Inc()
		return scheduling.Schedule{}, err
	}

	arch := scheduling.NewArchipelago(problem, s.engine)
	roundSeed := s.seed + int64(time.Now().UnixNano())
	arch.Initialize(roundSeed)
	arch.Evolve(s.engine.GenerationCount)
	s.met.GenerationTotal.Add(float64(s.engine.GenerationCount))

	if dropped := arch.DroppedGeneCount(); dropped > 0 {
		log.Warn().
			Err(arch.LastInconsistency()).
			Int64("dropped_genes", dropped).
			Msg("evaluator dropped invalid genes this round")
		s.met.InternalInconsistencies.Add(float64(dropped))
	}

	_, best := arch.BestSolution()

	records := make([]gateway.DispatchRecord, 0, len(best.Assignments))
	now := float64(time.Now().Unix())
	for _, a := range best.Assignments {
		if a.ProcessingTime <= 0 {
			continue
		}
		records = append(records, gateway.DispatchRecord{
			MachineID:   a.MachineID,
			LotID:       a.LotID,
			ReleaseTime: now,
			StartTime:   a.StartTime,
			EndTime:     a.EndTime,
		})
	}

	if err := s.gw.SaveDispatchRecords(ctx, records); err != nil {
		log.Error().Err(err).Msg("round aborted: failed to save dispatch records")
		s.met.RoundFailures.Inc()
		return scheduling.Schedule{}, err
	}

	elapsed := time.Since(start)
	s.met.RoundsTotal.Inc()
	s.met.BestFitness.Set(arch.BestFitness())
	s.met.RoundMakespan.Set(best.Makespan)
	s.met.RoundMeanFlow.Set(best.MeanFlowTime)
	s.met.RoundDuration.Observe(elapsed.Seconds())
	s.met.DispatchWrites.Add(float64(len(records)))

	log.Info().
		Float64("makespan", best.Makespan).
		Float64("mean_flow_time", best.MeanFlowTime).
		Int("dispatch_records", len(records)).
		Float64("elapsed_seconds", elapsed.Seconds()).
		Msg("round complete")

	return best, nil
}

// Run loops RunOnce on the configured interval until ctx is cancelled,
// polling for cancellation every shutdownPollInterval while waiting
// between rounds so shutdown never blocks on a full interval.
func (s *Service) Run(ctx context.Context) error {
	for {
		if _, err := s.RunOnce(ctx); err != nil {
			s.log.Error().Err(err).Msg("round failed")
		}

		deadline := time.Now().Add(s.interval)
		for time.Now().Before(deadline) {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(shutdownPollInterval):
			}
		}

		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}
