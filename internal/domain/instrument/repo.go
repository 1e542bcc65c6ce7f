package instrument

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, in *Instrument) error
	GetByID(ctx context.Context, id uuid.UUID) (*Instrument, error)
	List(ctx context.Context, limit, offset int) ([]*Instrument, int, error)
	// ListAvailableByTest returns available instruments supporting the test
	// type, ordered by load ascending then name.
	ListAvailableByTest(ctx context.Context, testType string) ([]*Instrument, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateLoad(ctx context.Context, id uuid.UUID, load int) error
}
