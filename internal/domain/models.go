package domain

import (
	"net/netip"
	"time"

	"github.com/google/uuid"
)

// AddressClass is the addressing mode of a device row, parsed once from the
// raw class token. Unrecognized tokens fall back to ClassNone.
type AddressClass int

const (
	ClassNone AddressClass = iota
	ClassLAN
	ClassLANZ
	ClassDynamic
)

func (c AddressClass) String() string {
	switch c {
	case ClassLAN:
		return "lan"
	case ClassLANZ:
		return "lanz"
	case ClassDynamic:
		return "lanz1"
	default:
		return "brak"
	}
}

// DeviceKind tags a device name with its model family so downstream stages
// branch on the tag instead of re-matching substrings.
type DeviceKind int

const (
	DeviceOther DeviceKind = iota
	DeviceANPR
	DeviceContext
)

type DeviceRow struct {
	Object   string
	Category string
	Device   string
	Quantity int
	Class    AddressClass
}

type PreviewRow struct {
	DeviceRow
	Included bool
}

type Reservation struct {
	ID          uuid.UUID
	Network     netip.Addr
	Mask        int
	FirstUsable netip.Addr
	LastUsable  netip.Addr
	AssignedTo  string
	CreatedAt   time.Time
}

type ReservationSet struct {
	Version      int64
	Reservations []Reservation
}

// AssignedRow is one physical unit of a device row. Non-static units carry
// zero address fields; transports render DynamicAddress for them.
type AssignedRow struct {
	Object   string
	Category string
	Device   string
	Static   bool
	Address  netip.Addr
	Mask     int
	Gateway  netip.Addr
	NTP      netip.Addr
}

// DynamicAddress is the address column marker for units that configure
// themselves over DHCP.
const DynamicAddress = "dynamic"

type EquipmentKind int

const (
	EquipmentServer EquipmentKind = iota
	EquipmentLicense
	EquipmentRecorder
)

func (k EquipmentKind) String() string {
	switch k {
	case EquipmentServer:
		return "server"
	case EquipmentRecorder:
		return "recorder"
	default:
		return "license"
	}
}

type EquipmentItem struct {
	Name        string
	Class       string
	Kind        EquipmentKind
	Quantity    int
	Description string
}

// EquipmentConfig carries the two feature flags consumed by the equipment
// deriver. Address allocation ignores both.
type EquipmentConfig struct {
	LPREnabled      bool
	RedLightEnabled bool
}

type AllocationResult struct {
	Reservation Reservation
	Rows        []AssignedRow
}
