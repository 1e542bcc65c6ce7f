// Package rpc exposes the pipeline's orchestration surface over gRPC.
package rpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang/protobuf/ptypes/wrappers"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/openlis/lis/internal/domain/instrument"
	"github.com/openlis/lis/internal/domain/measurement"
	"github.com/openlis/lis/internal/domain/order"
	"github.com/openlis/lis/internal/rpc/lisv1"
)

// callTimeout bounds each RPC so a stalled dependency cannot hold the
// caller indefinitely.
const callTimeout = 30 * time.Second

// Server implements lisv1.OrderResultServiceServer.
type Server struct {
	lisv1.UnimplementedOrderResultServiceServer

	instruments *instrument.Service
	generator   *measurement.Generator
	orders      order.Repository
	log         zerolog.Logger
}

func NewServer(instruments *instrument.Service, generator *measurement.Generator, orders order.Repository, log zerolog.Logger) *Server {
	return &Server{
		instruments: instruments,
		generator:   generator,
		orders:      orders,
		log:         log.With().Str("component", "rpc").Logger(),
	}
}

func (s *Server) ProcessTestOrder(ctx context.Context, req *lisv1.ProcessTestOrderRequest) (*lisv1.TestOrderResults, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	orderID, err := uuid.Parse(req.GetTestOrderId())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "test_order_id must be a valid UUID")
	}
	testType := strings.TrimSpace(req.GetTestType())
	if testType == "" {
		return nil, status.Error(codes.InvalidArgument, "test_type is required")
	}

	if _, err := s.orders.GetByID(ctx, orderID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, status.Errorf(codes.NotFound, "test order %s not found", orderID)
		}
		return nil, status.Errorf(codes.Internal, "load test order: %v", err)
	}

	return s.generate(ctx, orderID, testType)
}

func (s *Server) CreateAndSendTestOrder(ctx context.Context, req *lisv1.CreateAndSendTestOrderRequest) (*lisv1.TestOrderResults, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	orderID, err := uuid.Parse(req.GetTestOrderId())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "test_order_id must be a valid UUID")
	}
	testType := strings.TrimSpace(req.GetTestType())
	if testType == "" {
		return nil, status.Error(codes.InvalidArgument, "test_type is required")
	}

	o := &order.TestOrder{ID: orderID, TestType: testType, Status: "Pending"}
	if pid := strings.TrimSpace(req.GetPatientId()); pid != "" {
		patientID, err := uuid.Parse(pid)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, "patient_id must be a valid UUID")
		}
		o.PatientID = patientID
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, status.Errorf(codes.Internal, "create test order: %v", err)
	}

	return s.generate(ctx, orderID, testType)
}

func (s *Server) GetTestOrderResults(ctx context.Context, req *lisv1.GetTestOrderResultsRequest) (*lisv1.TestOrderResults, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	orderID, err := uuid.Parse(req.GetTestOrderId())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "test_order_id must be a valid UUID")
	}

	batch, err := s.generator.GetBatch(ctx, orderID)
	if err != nil {
		if errors.Is(err, measurement.ErrBatchNotFound) {
			return nil, status.Errorf(codes.NotFound, "no results for test order %s", orderID)
		}
		return nil, status.Errorf(codes.Internal, "load batch: %v", err)
	}
	return toResults(batch), nil
}

func (s *Server) generate(ctx context.Context, orderID uuid.UUID, testType string) (*lisv1.TestOrderResults, error) {
	inst, err := s.instruments.Assign(ctx, testType)
	if err != nil {
		if errors.Is(err, instrument.ErrNoInstrument) {
			return nil, status.Errorf(codes.NotFound, "no available instrument supports %s", testType)
		}
		return nil, status.Errorf(codes.Internal, "assign instrument: %v", err)
	}

	batch, err := s.generator.GenerateAndSend(ctx, orderID, testType, inst.Name)
	if err != nil {
		if errors.Is(err, measurement.ErrUnknownTestType) {
			return nil, status.Errorf(codes.InvalidArgument, "unknown test type %s", testType)
		}
		return nil, status.Errorf(codes.Internal, "generate batch: %v", err)
	}

	s.log.Info().Str("test_order_id", orderID.String()).Str("test_type", testType).
		Str("instrument", inst.Name).Int("results", len(batch.Measurements)).
		Msg("batch generated")
	return toResults(batch), nil
}

func toResults(batch *measurement.Batch) *lisv1.TestOrderResults {
	out := &lisv1.TestOrderResults{
		TestOrderId:   batch.TestOrderID.String(),
		Instrument:    batch.Instrument,
		PerformedDate: batch.PerformedAt.UTC().Format(time.RFC3339),
	}
	for _, m := range batch.Measurements {
		item := &lisv1.TestResultItem{
			TestCode:       m.TestCode,
			Parameter:      m.Parameter,
			Unit:           m.Unit,
			ReferenceRange: m.ReferenceRange,
			Status:         m.Status,
		}
		if m.ValueNumeric != nil {
			item.ValueNumeric = &wrappers.DoubleValue{Value: *m.ValueNumeric}
		}
		if m.ValueText != nil {
			item.ValueText = &wrappers.StringValue{Value: *m.ValueText}
		}
		out.Results = append(out.Results, item)
	}
	return out
}
