package relay

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/openlis/lis/internal/domain/measurement"
)

// maxBackoffFactor caps the interval multiplier applied after
// consecutive fully-failed sweep cycles.
const maxBackoffFactor = 8

// Sweeper periodically re-publishes batches whose rows are still
// sent=false, guaranteeing eventual delivery across crashes and broker
// outages. Publishing is level-triggered: a failed batch simply stays
// unsent for the next cycle.
type Sweeper struct {
	staging  measurement.StagingRepository
	pub      measurement.Publisher
	interval time.Duration
	log      zerolog.Logger
}

func NewSweeper(staging measurement.StagingRepository, pub measurement.Publisher, interval time.Duration, log zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		staging:  staging,
		pub:      pub,
		interval: interval,
		log:      log.With().Str("component", "sweeper").Logger(),
	}
}

// Run sweeps until ctx is cancelled. Cancellation is checked at the top
// of each cycle, never mid-batch. Cycles where nothing succeeds back
// off the interval exponentially, capped at maxBackoffFactor.
func (s *Sweeper) Run(ctx context.Context) error {
	failures := 0
	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		sent, failed, err := s.SweepOnce(ctx)
		switch {
		case err != nil:
			failures++
			s.log.Error().Err(err).Msg("sweep cycle failed")
		case failed > 0 && sent == 0:
			failures++
			s.log.Warn().Int("failed", failed).Msg("no batch delivered this cycle")
		default:
			failures = 0
		}

		factor := 1
		for i := 0; i < failures && factor < maxBackoffFactor; i++ {
			factor *= 2
		}
		timer.Reset(s.interval * time.Duration(factor))
	}
}

// SweepOnce re-publishes every unsent batch and marks the delivered
// ones sent. It returns how many batches were delivered and how many
// failed; per-batch failures are logged, not returned.
func (s *Sweeper) SweepOnce(ctx context.Context) (sent, failed int, err error) {
	batches, err := s.staging.UnsentBatches(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("load unsent batches: %w", err)
	}

	for i := range batches {
		b := &batches[i]
		if err := s.pub.Publish(ctx, b); err != nil {
			failed++
			s.log.Warn().Err(err).Str("test_order_id", b.TestOrderID.String()).
				Msg("republish failed, batch stays unsent")
			continue
		}
		if err := s.staging.MarkSent(ctx, b.TestOrderID); err != nil {
			failed++
			s.log.Error().Err(err).Str("test_order_id", b.TestOrderID.String()).
				Msg("failed to mark batch sent after republish")
			continue
		}
		sent++
	}

	if sent > 0 || failed > 0 {
		s.log.Info().Int("sent", sent).Int("failed", failed).Msg("sweep cycle complete")
	}
	return sent, failed, nil
}
