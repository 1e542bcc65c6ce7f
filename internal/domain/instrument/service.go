package instrument

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrNoInstrument is returned when no available instrument supports the
// requested test type. Callers surface it as a client error rather than
// retrying.
var ErrNoInstrument = errors.New("no available instrument supports the requested test type")

var validStatuses = map[string]bool{
	StatusPending: true, StatusBusy: true, StatusOffline: true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Assign selects an instrument for the test type: it must support the
// type and be available. Among candidates the lowest load wins, with
// name as a deterministic tie-break (the repository orders accordingly).
func (s *Service) Assign(ctx context.Context, testType string) (*Instrument, error) {
	testType = strings.TrimSpace(testType)
	if testType == "" {
		return nil, fmt.Errorf("test type is required")
	}

	candidates, err := s.repo.ListAvailableByTest(ctx, testType)
	if err != nil {
		return nil, fmt.Errorf("list instruments for %s: %w", testType, err)
	}
	if len(candidates) == 0 {
		return nil, ErrNoInstrument
	}
	return candidates[0], nil
}

func (s *Service) Create(ctx context.Context, in *Instrument) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if len(in.SupportedTests) == 0 {
		return fmt.Errorf("supported_tests must not be empty")
	}
	if in.Status == "" {
		in.Status = StatusPending
	}
	if !validStatuses[in.Status] {
		return fmt.Errorf("invalid status: %s", in.Status)
	}
	if in.Load < 0 {
		return fmt.Errorf("load must not be negative")
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Instrument, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Instrument, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("invalid status: %s", status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
