package relay

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/openlis/lis/internal/domain/measurement"
	"github.com/openlis/lis/internal/platform/broker"
)

// Consumer is a consumer-group subscriber on the result stream. Each
// message is deduplicated into the backup store, the accepted rows are
// forwarded downstream, and only then is the entry acknowledged, so a
// crash before the backup commit redelivers the message.
type Consumer struct {
	broker     Broker
	backup     measurement.BackupRepository
	stream     string
	group      string
	name       string
	downstream string
	readBlock  time.Duration
	log        zerolog.Logger
}

func NewConsumer(b Broker, backup measurement.BackupRepository, stream, group, name, downstream string, log zerolog.Logger) *Consumer {
	return &Consumer{
		broker:     b,
		backup:     backup,
		stream:     stream,
		group:      group,
		name:       name,
		downstream: downstream,
		readBlock:  5 * time.Second,
		log:        log.With().Str("component", "consumer").Str("consumer", name).Logger(),
	}
}

// Run consumes until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) error {
	if err := c.broker.EnsureGroup(ctx, c.stream, c.group); err != nil {
		return fmt.Errorf("ensure consumer group: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msgs, err := c.broker.Read(ctx, c.stream, c.group, c.name, 10, c.readBlock)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error().Err(err).Msg("stream read failed")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second):
			}
			continue
		}

		for _, msg := range msgs {
			c.handle(ctx, msg)
		}
	}
}

// handle processes one stream entry. Poison messages (undecodable
// payloads) are acked and dropped to a log; storage failures leave the
// entry unacked for redelivery.
func (c *Consumer) handle(ctx context.Context, msg broker.Message) {
	log := c.log.With().Str("entry_id", msg.ID).Logger()

	data, err := msg.Data()
	if err != nil {
		log.Error().Err(err).Msg("dropping entry without payload")
		c.ack(ctx, msg.ID)
		return
	}
	batch, err := decodeBatch(data)
	if err != nil {
		log.Error().Err(err).Msg("dropping undecodable batch")
		c.ack(ctx, msg.ID)
		return
	}

	accepted, err := c.backUp(ctx, batch)
	if err != nil {
		log.Error().Err(err).Str("test_order_id", batch.TestOrderID.String()).
			Msg("backup insert failed, leaving entry for redelivery")
		return
	}

	if len(accepted.Measurements) > 0 && c.downstream != "" {
		if _, err := c.broker.Publish(ctx, c.downstream, encodeBatch(accepted)); err != nil {
			// Forwarding is best-effort; the backup row is the
			// durable record.
			log.Warn().Err(err).Msg("downstream forward failed")
		}
	}

	c.ack(ctx, msg.ID)
	log.Debug().Str("test_order_id", batch.TestOrderID.String()).
		Int("received", len(batch.Measurements)).
		Int("accepted", len(accepted.Measurements)).
		Msg("batch consumed")
}

// backUp inserts the batch rows not already present. The existence
// pre-check only avoids constraint churn; the unique constraint behind
// InsertIgnoreDuplicates is the real idempotency guarantee.
func (c *Consumer) backUp(ctx context.Context, batch *measurement.Batch) (*measurement.Batch, error) {
	codes := make([]string, 0, len(batch.Measurements))
	for _, m := range batch.Measurements {
		codes = append(codes, m.TestCode)
	}

	existing, err := c.backup.ExistingCodes(ctx, batch.TestOrderID, codes)
	if err != nil {
		return nil, fmt.Errorf("check existing codes: %w", err)
	}

	accepted := &measurement.Batch{
		TestOrderID: batch.TestOrderID,
		Instrument:  batch.Instrument,
		PerformedAt: batch.PerformedAt,
	}
	for _, m := range batch.Measurements {
		if !existing[m.TestCode] {
			accepted.Measurements = append(accepted.Measurements, m)
		}
	}
	if len(accepted.Measurements) == 0 {
		return accepted, nil
	}

	if _, err := c.backup.InsertIgnoreDuplicates(ctx, accepted.Measurements); err != nil {
		return nil, fmt.Errorf("insert backup rows: %w", err)
	}
	return accepted, nil
}

func (c *Consumer) ack(ctx context.Context, id string) {
	if err := c.broker.Ack(ctx, c.stream, c.group, id); err != nil {
		c.log.Error().Err(err).Str("entry_id", id).Msg("ack failed")
	}
}
