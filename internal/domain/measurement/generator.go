package measurement

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/openlis/lis/internal/domain/catalog"
	"github.com/openlis/lis/internal/platform/db"
)

var (
	// ErrUnknownTestType is returned when the catalog has no parameter
	// set for the requested test type.
	ErrUnknownTestType = errors.New("unknown test type")
	// ErrBatchNotFound is returned by GetBatch when no measurements
	// exist for the order.
	ErrBatchNotFound = errors.New("no measurements for test order")
)

// Publisher delivers a generated batch to the broker. Implementations
// must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, batch *Batch) error
}

// Generator produces synthetic measurements for a test order. Rows are
// staged with sent=false in one transaction before any publish is
// attempted, so delivery can always be retried from storage.
type Generator struct {
	pool    *pgxpool.Pool
	staging StagingRepository
	catalog catalog.Source
	pub     Publisher
	log     zerolog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(pool *pgxpool.Pool, staging StagingRepository, cat catalog.Source, pub Publisher, rng *rand.Rand, log zerolog.Logger) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		pool:    pool,
		staging: staging,
		catalog: cat,
		pub:     pub,
		rng:     rng,
		log:     log.With().Str("component", "generator").Logger(),
	}
}

// GenerateAndSend samples one value per catalog parameter for the test
// type, persists the batch transactionally, then publishes best-effort.
// A publish failure is logged and left to the sweeper; the returned
// batch is valid either way.
func (g *Generator) GenerateAndSend(ctx context.Context, testOrderID uuid.UUID, testType, instrumentName string) (*Batch, error) {
	testType = strings.TrimSpace(testType)
	if testType == "" {
		return nil, fmt.Errorf("test type is required")
	}

	def, ok := g.catalog.Lookup(testType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTestType, testType)
	}

	batch := &Batch{
		TestOrderID: testOrderID,
		Instrument:  instrumentName,
		PerformedAt: time.Now().UTC(),
	}
	for _, p := range def.Parameters {
		v := g.sample(p.Min, p.Max)
		batch.Measurements = append(batch.Measurements, RawMeasurement{
			ID:             uuid.New(),
			TestOrderID:    testOrderID,
			TestCode:       p.Code,
			Parameter:      p.Name,
			ValueNumeric:   &v,
			Unit:           p.Unit,
			ReferenceRange: p.ReferenceRange,
			Instrument:     instrumentName,
			PerformedAt:    batch.PerformedAt,
			Status:         StatusFinal,
		})
	}

	if err := g.inTx(ctx, func(ctx context.Context) error {
		return g.staging.InsertBatch(ctx, batch)
	}); err != nil {
		return nil, fmt.Errorf("stage batch for order %s: %w", testOrderID, err)
	}

	if g.pub != nil {
		if err := g.pub.Publish(ctx, batch); err != nil {
			g.log.Warn().Err(err).Str("test_order_id", testOrderID.String()).
				Msg("publish failed, leaving batch for sweeper")
		} else if err := g.staging.MarkSent(ctx, testOrderID); err != nil {
			g.log.Error().Err(err).Str("test_order_id", testOrderID.String()).
				Msg("failed to mark batch sent")
		}
	}

	return batch, nil
}

// GetBatch reconstructs a previously generated batch from staging.
func (g *Generator) GetBatch(ctx context.Context, testOrderID uuid.UUID) (*Batch, error) {
	ms, err := g.staging.GetBatch(ctx, testOrderID)
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, ErrBatchNotFound
	}
	return &Batch{
		TestOrderID:  testOrderID,
		Instrument:   ms[0].Instrument,
		PerformedAt:  ms[0].PerformedAt,
		Measurements: ms,
	}, nil
}

// sample draws uniformly from [min, max], rounded to two decimals.
// Catalog bounds carry at most two decimals, so rounding stays inside
// the inclusive range.
func (g *Generator) sample(min, max float64) float64 {
	g.mu.Lock()
	f := g.rng.Float64()
	g.mu.Unlock()
	v := min + f*(max-min)
	return math.Round(v*100) / 100
}

func (g *Generator) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if g.pool == nil {
		return fn(ctx)
	}
	return db.RunInTx(ctx, g.pool, fn)
}
