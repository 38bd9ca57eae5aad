package http

import (
	"net/netip"
	"strings"
	"time"

	"github.com/mkrawiec/netplanner/internal/domain"
	"github.com/mkrawiec/netplanner/internal/ipcalc"
)

// DeviceRowRequest is one sheet row as clients send it. Class tokens are the
// raw sheet values; anything unrecognized counts as no addressing.
type DeviceRowRequest struct {
	Object   string `json:"object" example:"SK-01"`
	Category string `json:"category" example:"KAT A"`
	Device   string `json:"device" example:"Kamera ANPR U-1532"`
	Quantity int    `json:"quantity" example:"2"`
	Class    string `json:"class" example:"lanz"`
}

// AllocateRequest is the payload accepted when allocating a subnet.
type AllocateRequest struct {
	Label string             `json:"label" example:"etap-2 SK-01..SK-14"`
	Rows  []DeviceRowRequest `json:"rows" validate:"required"`
}

// ClassifyRequest is the payload for a dry-run classification.
type ClassifyRequest struct {
	Rows []DeviceRowRequest `json:"rows" validate:"required"`
}

// EquipmentRequest is the payload for deriving the equipment bill.
type EquipmentRequest struct {
	Rows            []DeviceRowRequest `json:"rows" validate:"required"`
	LPREnabled      bool               `json:"lpr_enabled" example:"true"`
	RedLightEnabled bool               `json:"red_light_enabled" example:"false"`
}

// ErrorResponse is a simple envelope for error messages.
type ErrorResponse struct {
	Error string `json:"error" example:"address pool exhausted"`
}

// ReservationResponse is the client view of a registry entry.
type ReservationResponse struct {
	ID         string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Network    string    `json:"network" example:"10.96.0.0"`
	Mask       int       `json:"mask" example:"29"`
	CIDR       string    `json:"cidr" example:"10.96.0.0/29"`
	RangeStart string    `json:"range_start" example:"10.96.0.1"`
	RangeEnd   string    `json:"range_end" example:"10.96.0.6"`
	AssignedTo string    `json:"assigned_to" example:"etap-2 SK-01..SK-14"`
	CreatedAt  time.Time `json:"created_at" example:"2025-04-10T15:04:05Z"`
}

// AssignedRowResponse is one physical unit with its address. The mask is
// rendered in dotted form; dynamically addressed units carry the dynamic
// marker in every address column.
type AssignedRowResponse struct {
	Object   string `json:"object" example:"SK-01"`
	Category string `json:"category,omitempty" example:"KAT A"`
	Device   string `json:"device,omitempty" example:"Kamera ANPR U-1532"`
	Address  string `json:"address" example:"10.96.0.2"`
	Mask     string `json:"mask" example:"255.255.255.248"`
	Gateway  string `json:"gateway" example:"10.96.0.1"`
	NTP      string `json:"ntp" example:"10.96.0.1"`
}

type AllocationResponse struct {
	Reservation ReservationResponse   `json:"reservation"`
	Rows        []AssignedRowResponse `json:"rows"`
}

// ClassifiedRowResponse echoes a row in allocation order with its parsed
// class and whether it takes a static address.
type ClassifiedRowResponse struct {
	Object   string `json:"object" example:"SK-01"`
	Category string `json:"category,omitempty" example:"KAT A"`
	Device   string `json:"device,omitempty" example:"Kamera ANPR U-1532"`
	Quantity int    `json:"quantity" example:"2"`
	Class    string `json:"class" example:"lanz"`
	Included bool   `json:"included" example:"true"`
}

type EquipmentItemResponse struct {
	Name        string `json:"name" example:"Recording server"`
	Class       string `json:"class" example:"Klasa-0"`
	Kind        string `json:"kind" example:"server"`
	Quantity    int    `json:"quantity" example:"2"`
	Description string `json:"description,omitempty" example:"Handles up to 12 camera sets each"`
}

func (r AllocateRequest) toInput() domain.AllocateInput {
	return domain.AllocateInput{
		Label: r.Label,
		Rows:  toDeviceRows(r.Rows),
	}
}

func (r EquipmentRequest) toConfig() domain.EquipmentConfig {
	return domain.EquipmentConfig{
		LPREnabled:      r.LPREnabled,
		RedLightEnabled: r.RedLightEnabled,
	}
}

func toDeviceRows(rows []DeviceRowRequest) []domain.DeviceRow {
	out := make([]domain.DeviceRow, 0, len(rows))
	for _, row := range rows {
		quantity := row.Quantity
		if quantity < 1 {
			quantity = 1
		}
		out = append(out, domain.DeviceRow{
			Object:   strings.TrimSpace(row.Object),
			Category: row.Category,
			Device:   row.Device,
			Quantity: quantity,
			Class:    domain.ParseAddressClass(row.Class),
		})
	}
	return out
}

func reservationToResponse(r domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:         r.ID.String(),
		Network:    r.Network.String(),
		Mask:       r.Mask,
		CIDR:       netip.PrefixFrom(r.Network, r.Mask).String(),
		RangeStart: r.FirstUsable.String(),
		RangeEnd:   r.LastUsable.String(),
		AssignedTo: r.AssignedTo,
		CreatedAt:  r.CreatedAt,
	}
}

func reservationsToResponse(reservations []domain.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, reservationToResponse(r))
	}
	return out
}

func allocationToResponse(result domain.AllocationResult) AllocationResponse {
	rows := make([]AssignedRowResponse, 0, len(result.Rows))
	for _, row := range result.Rows {
		rows = append(rows, assignedRowToResponse(row))
	}
	return AllocationResponse{
		Reservation: reservationToResponse(result.Reservation),
		Rows:        rows,
	}
}

func assignedRowToResponse(row domain.AssignedRow) AssignedRowResponse {
	out := AssignedRowResponse{
		Object:   row.Object,
		Category: row.Category,
		Device:   row.Device,
		Address:  domain.DynamicAddress,
		Mask:     domain.DynamicAddress,
		Gateway:  domain.DynamicAddress,
		NTP:      domain.DynamicAddress,
	}
	if row.Static {
		// Allocator masks are always in the 0-32 range.
		mask, _ := ipcalc.DottedMask(row.Mask)
		out.Address = row.Address.String()
		out.Mask = mask
		out.Gateway = row.Gateway.String()
		out.NTP = row.NTP.String()
	}
	return out
}

func previewToResponse(rows []domain.PreviewRow) []ClassifiedRowResponse {
	out := make([]ClassifiedRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, ClassifiedRowResponse{
			Object:   row.Object,
			Category: row.Category,
			Device:   row.Device,
			Quantity: row.Quantity,
			Class:    row.Class.String(),
			Included: row.Included,
		})
	}
	return out
}

func equipmentToResponse(items []domain.EquipmentItem) []EquipmentItemResponse {
	out := make([]EquipmentItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, EquipmentItemResponse{
			Name:        item.Name,
			Class:       item.Class,
			Kind:        item.Kind.String(),
			Quantity:    item.Quantity,
			Description: item.Description,
		})
	}
	return out
}
