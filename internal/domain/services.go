package domain

import (
	"context"

	"github.com/google/uuid"
)

type PlannerService interface {
	Allocate(ctx context.Context, input AllocateInput) (AllocationResult, error)
	Preview(rows []DeviceRow) []PreviewRow
	DeriveEquipment(rows []DeviceRow, cfg EquipmentConfig) []EquipmentItem
	ListReservations(ctx context.Context) ([]Reservation, error)
	GetReservation(ctx context.Context, id uuid.UUID) (Reservation, error)
}
