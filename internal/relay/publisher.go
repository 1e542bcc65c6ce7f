// Package relay moves measurement batches through the broker: the
// publisher and sweeper push staged batches out, the consumer takes
// them back in, deduplicates them into the backup store, and forwards
// the accepted rows downstream.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/openlis/lis/internal/domain/measurement"
	"github.com/openlis/lis/internal/platform/broker"
)

// Broker is the slice of the stream client the relay needs. The Redis
// implementation is the default; tests swap in an in-memory fake.
type Broker interface {
	Publish(ctx context.Context, stream string, v interface{}) (string, error)
	Read(ctx context.Context, stream, group, consumer string, count int64, block time.Duration) ([]broker.Message, error)
	Ack(ctx context.Context, stream, group string, ids ...string) error
	EnsureGroup(ctx context.Context, stream, group string) error
}

type redisBroker struct{ client *redis.Client }

// NewRedisBroker adapts a Redis client to the relay's Broker interface.
func NewRedisBroker(client *redis.Client) Broker {
	return &redisBroker{client: client}
}

func (b *redisBroker) Publish(ctx context.Context, stream string, v interface{}) (string, error) {
	return broker.PublishJSON(ctx, b.client, stream, v)
}

func (b *redisBroker) Read(ctx context.Context, stream, group, consumer string, count int64, block time.Duration) ([]broker.Message, error) {
	return broker.ReadGroup(ctx, b.client, stream, group, consumer, count, block)
}

func (b *redisBroker) Ack(ctx context.Context, stream, group string, ids ...string) error {
	return broker.Ack(ctx, b.client, stream, group, ids...)
}

func (b *redisBroker) EnsureGroup(ctx context.Context, stream, group string) error {
	return broker.EnsureGroup(ctx, b.client, stream, group)
}

// wireBatch is the broker message body. Redelivery of an identical body
// must be a no-op for consumers.
type wireBatch struct {
	TestOrderID   uuid.UUID         `json:"testOrderId"`
	Instrument    string            `json:"instrument"`
	PerformedDate time.Time         `json:"performedDate"`
	Results       []wireMeasurement `json:"results"`
}

type wireMeasurement struct {
	TestCode       string   `json:"testCode"`
	Parameter      string   `json:"parameter"`
	ValueNumeric   *float64 `json:"valueNumeric,omitempty"`
	ValueText      *string  `json:"valueText,omitempty"`
	Unit           string   `json:"unit"`
	ReferenceRange string   `json:"referenceRange"`
	Status         string   `json:"status"`
}

func encodeBatch(b *measurement.Batch) wireBatch {
	w := wireBatch{
		TestOrderID:   b.TestOrderID,
		Instrument:    b.Instrument,
		PerformedDate: b.PerformedAt.UTC(),
	}
	for _, m := range b.Measurements {
		w.Results = append(w.Results, wireMeasurement{
			TestCode:       m.TestCode,
			Parameter:      m.Parameter,
			ValueNumeric:   m.ValueNumeric,
			ValueText:      m.ValueText,
			Unit:           m.Unit,
			ReferenceRange: m.ReferenceRange,
			Status:         m.Status,
		})
	}
	return w
}

func decodeBatch(data []byte) (*measurement.Batch, error) {
	var w wireBatch
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode batch payload: %w", err)
	}
	if w.TestOrderID == uuid.Nil {
		return nil, fmt.Errorf("batch payload has no testOrderId")
	}

	b := &measurement.Batch{
		TestOrderID: w.TestOrderID,
		Instrument:  w.Instrument,
		PerformedAt: w.PerformedDate,
	}
	for _, r := range w.Results {
		b.Measurements = append(b.Measurements, measurement.RawMeasurement{
			TestOrderID:    w.TestOrderID,
			TestCode:       r.TestCode,
			Parameter:      r.Parameter,
			ValueNumeric:   r.ValueNumeric,
			ValueText:      r.ValueText,
			Unit:           r.Unit,
			ReferenceRange: r.ReferenceRange,
			Instrument:     w.Instrument,
			PerformedAt:    w.PerformedDate,
			Status:         r.Status,
		})
	}
	return b, nil
}

// Publisher writes measurement batches to the result stream.
type Publisher struct {
	broker Broker
	stream string
	log    zerolog.Logger
}

func NewPublisher(b Broker, stream string, log zerolog.Logger) *Publisher {
	return &Publisher{
		broker: b,
		stream: stream,
		log:    log.With().Str("component", "publisher").Logger(),
	}
}

// Publish sends the batch as one stream entry.
func (p *Publisher) Publish(ctx context.Context, batch *measurement.Batch) error {
	id, err := p.broker.Publish(ctx, p.stream, encodeBatch(batch))
	if err != nil {
		return fmt.Errorf("publish batch for order %s: %w", batch.TestOrderID, err)
	}
	p.log.Debug().Str("test_order_id", batch.TestOrderID.String()).
		Str("entry_id", id).Int("results", len(batch.Measurements)).
		Msg("batch published")
	return nil
}
