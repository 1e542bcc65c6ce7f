package order

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, o *TestOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*TestOrder, error)
}
