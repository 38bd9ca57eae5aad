package domain

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/google/uuid"

	"github.com/mkrawiec/netplanner/internal/ipcalc"
)

const (
	DefaultProbeLimit    = 512
	DefaultBufferPercent = 20

	allocateAttempts = 3
)

var DefaultBaseNetwork = netip.AddrFrom4([4]byte{10, 96, 0, 0})

// PlannerSettings tunes the allocator. Zero values fall back to the
// defaults in NewPlannerService.
type PlannerSettings struct {
	BaseNetwork   netip.Addr
	ProbeLimit    int
	BufferPercent int
}

type plannerService struct {
	store    ReservationStore
	settings PlannerSettings
}

func NewPlannerService(store ReservationStore, settings PlannerSettings) PlannerService {
	if !settings.BaseNetwork.IsValid() {
		settings.BaseNetwork = DefaultBaseNetwork
	}
	if settings.ProbeLimit <= 0 {
		settings.ProbeLimit = DefaultProbeLimit
	}
	if settings.BufferPercent < 0 {
		settings.BufferPercent = DefaultBufferPercent
	}
	return &plannerService{store: store, settings: settings}
}

// Allocate reserves a subnet sized for the batch and hands out sequential
// addresses. The reservation is committed to the store before any address
// leaves this method; a version conflict on commit triggers a fresh
// snapshot and a new search, bounded by allocateAttempts.
func (s *plannerService) Allocate(ctx context.Context, input AllocateInput) (AllocationResult, error) {
	if len(input.Rows) == 0 {
		return AllocationResult{}, fmt.Errorf("%w: no rows", ErrInvalidInput)
	}

	sorted := SortRows(input.Rows)
	units := staticUnits(sorted)
	if units == 0 {
		return AllocationResult{}, fmt.Errorf("%w: no statically addressed devices", ErrInvalidInput)
	}

	// The buffer must leave room for the gateway on top of the units.
	minHosts := units + ceilDiv(units*s.settings.BufferPercent, 100)
	if minHosts <= units {
		minHosts = units + 1
	}

	for attempt := 1; attempt <= allocateAttempts; attempt++ {
		set, err := s.store.Snapshot(ctx)
		if err != nil {
			return AllocationResult{}, err
		}

		network, mask, err := findAvailableRange(s.settings.BaseNetwork, minHosts, set.Reservations, s.settings.ProbeLimit)
		if err != nil {
			return AllocationResult{}, err
		}

		reservation, err := newReservation(network, mask, input.Label)
		if err != nil {
			return AllocationResult{}, err
		}

		err = s.store.Append(ctx, set.Version, reservation)
		if errors.Is(err, ErrStoreConflict) {
			continue
		}
		if err != nil {
			return AllocationResult{}, err
		}

		return AllocationResult{
			Reservation: reservation,
			Rows:        assignAddresses(sorted, reservation),
		}, nil
	}

	return AllocationResult{}, fmt.Errorf("%w: registry moved %d times", ErrStoreConflict, allocateAttempts)
}

func (s *plannerService) Preview(rows []DeviceRow) []PreviewRow {
	return Preview(rows)
}

func (s *plannerService) DeriveEquipment(rows []DeviceRow, cfg EquipmentConfig) []EquipmentItem {
	return DeriveEquipment(rows, cfg)
}

func (s *plannerService) ListReservations(ctx context.Context) ([]Reservation, error) {
	set, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return set.Reservations, nil
}

func (s *plannerService) GetReservation(ctx context.Context, id uuid.UUID) (Reservation, error) {
	set, err := s.store.Snapshot(ctx)
	if err != nil {
		return Reservation{}, err
	}
	for _, r := range set.Reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return Reservation{}, ErrNotFound
}

func staticUnits(rows []DeviceRow) int {
	total := 0
	for _, row := range rows {
		if Included(row) {
			total += rowQuantity(row)
		}
	}
	return total
}

func newReservation(network netip.Addr, mask int, label string) (Reservation, error) {
	num, err := ipcalc.Uint32(network)
	if err != nil {
		return Reservation{}, err
	}
	hosts := ipcalc.HostCount(mask)
	if hosts < 1 {
		return Reservation{}, fmt.Errorf("%w: no usable hosts in /%d", ErrInvalidInput, mask)
	}

	return Reservation{
		ID:          uuid.New(),
		Network:     network,
		Mask:        mask,
		FirstUsable: ipcalc.FromUint32(num + 1),
		LastUsable:  ipcalc.FromUint32(num + uint32(hosts)),
		AssignedTo:  label,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// assignAddresses expands sorted rows into per-unit assignments. The
// gateway is the subnet's first usable host and doubles as the NTP source;
// devices start right after it. Rows without an object name are structural
// filler from the source sheet and are dropped.
func assignAddresses(sorted []DeviceRow, reservation Reservation) []AssignedRow {
	networkNum, err := ipcalc.Uint32(reservation.Network)
	if err != nil {
		return nil
	}
	gateway := ipcalc.FromUint32(networkNum + 1)

	next := networkNum + 2
	out := make([]AssignedRow, 0, len(sorted))
	for _, row := range sorted {
		if row.Object == "" {
			continue
		}
		quantity := rowQuantity(row)
		for unit := 0; unit < quantity; unit++ {
			assigned := AssignedRow{
				Object:   row.Object,
				Category: row.Category,
				Device:   row.Device,
			}
			if Included(row) {
				assigned.Static = true
				assigned.Address = ipcalc.FromUint32(next)
				assigned.Mask = reservation.Mask
				assigned.Gateway = gateway
				assigned.NTP = gateway
				next++
			}
			out = append(out, assigned)
		}
	}
	return out
}
