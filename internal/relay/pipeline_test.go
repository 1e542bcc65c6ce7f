package relay

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openlis/lis/internal/domain/catalog"
	"github.com/openlis/lis/internal/domain/measurement"
)

// Generation through redelivered consumption: a CBC batch is produced,
// published, delivered three times, and still lands in the backup store
// exactly once per test code.
func TestPipelineGenerateToBackup(t *testing.T) {
	fb := newFakeBroker()
	staging := newFakeStaging()
	backup := newFakeBackup()
	pub := NewPublisher(fb, "lis:results", zerolog.Nop())
	gen := measurement.NewGenerator(nil, staging, catalog.Default(), pub,
		rand.New(rand.NewSource(99)), zerolog.Nop())

	orderID := uuid.New()
	batch, err := gen.GenerateAndSend(context.Background(), orderID, "CBC", "Sysmex XN-1000")
	if err != nil {
		t.Fatalf("GenerateAndSend: %v", err)
	}
	if len(batch.Measurements) != 8 {
		t.Fatalf("expected 8 CBC measurements, got %d", len(batch.Measurements))
	}
	def, _ := catalog.Default().Lookup("CBC")
	bounds := make(map[string][2]float64)
	for _, p := range def.Parameters {
		bounds[p.Code] = [2]float64{p.Min, p.Max}
	}
	for _, m := range batch.Measurements {
		b := bounds[m.TestCode]
		if m.ValueNumeric == nil || *m.ValueNumeric < b[0] || *m.ValueNumeric > b[1] {
			t.Errorf("%s: value %v outside [%v, %v]", m.TestCode, m.ValueNumeric, b[0], b[1])
		}
	}
	if !staging.marked[orderID] {
		t.Fatal("batch not marked sent after publish")
	}

	entries := fb.streams["lis:results"]
	if len(entries) != 1 {
		t.Fatalf("expected 1 stream entry, got %d", len(entries))
	}

	c := NewConsumer(fb, backup, "lis:results", "result-backup", "c1", "", zerolog.Nop())
	for i := 0; i < 3; i++ {
		c.handle(context.Background(), entries[0])
	}

	rows, err := backup.GetBatch(context.Background(), orderID)
	if err != nil {
		t.Fatalf("GetBatch: %v", err)
	}
	if len(rows) != 8 {
		t.Fatalf("expected 8 backup rows after triple delivery, got %d", len(rows))
	}
}

// A publish outage at generation time is healed by the sweep once the
// broker is reachable again.
func TestPipelineSweepHealsFailedPublish(t *testing.T) {
	fb := newFakeBroker()
	fb.publishErr = errors.New("broker down")
	staging := newFakeStaging()
	pub := NewPublisher(fb, "lis:results", zerolog.Nop())
	gen := measurement.NewGenerator(nil, staging, catalog.Default(), pub,
		rand.New(rand.NewSource(1)), zerolog.Nop())

	orderID := uuid.New()
	if _, err := gen.GenerateAndSend(context.Background(), orderID, "BMP", "Cobas c501"); err != nil {
		t.Fatalf("GenerateAndSend: %v", err)
	}
	if staging.marked[orderID] {
		t.Fatal("batch must stay unsent while the broker is down")
	}

	fb.publishErr = nil
	sw := NewSweeper(staging, pub, time.Minute, zerolog.Nop())
	sent, _, err := sw.SweepOnce(context.Background())
	if err != nil || sent != 1 {
		t.Fatalf("sweep sent=%d err=%v, want 1/nil", sent, err)
	}
	if !staging.marked[orderID] {
		t.Fatal("batch not marked sent after the sweep delivered it")
	}
}
