package domain

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type loggingPlannerService struct {
	logger *slog.Logger
	next   PlannerService
}

func NewLoggingPlannerService(logger *slog.Logger, next PlannerService) PlannerService {
	if logger == nil || next == nil {
		return next
	}

	return &loggingPlannerService{
		logger: logger,
		next:   next,
	}
}

func (s *loggingPlannerService) Allocate(ctx context.Context, input AllocateInput) (AllocationResult, error) {
	result, err := s.next.Allocate(ctx, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "allocation failed", "label", input.Label, "rows", len(input.Rows), "err", err.Error())
		return AllocationResult{}, err
	}

	s.logger.InfoContext(ctx, "subnet allocated",
		"id", result.Reservation.ID.String(),
		"network", result.Reservation.Network.String(),
		"mask", result.Reservation.Mask,
		"assigned_to", result.Reservation.AssignedTo,
		"rows", len(result.Rows),
	)
	return result, nil
}

func (s *loggingPlannerService) Preview(rows []DeviceRow) []PreviewRow {
	return s.next.Preview(rows)
}

func (s *loggingPlannerService) DeriveEquipment(rows []DeviceRow, cfg EquipmentConfig) []EquipmentItem {
	return s.next.DeriveEquipment(rows, cfg)
}

func (s *loggingPlannerService) ListReservations(ctx context.Context) ([]Reservation, error) {
	reservations, err := s.next.ListReservations(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "list reservations failed", "err", err.Error())
	}
	return reservations, err
}

func (s *loggingPlannerService) GetReservation(ctx context.Context, id uuid.UUID) (Reservation, error) {
	reservation, err := s.next.GetReservation(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "get reservation failed", "id", id.String(), "err", err.Error())
	}
	return reservation, err
}
