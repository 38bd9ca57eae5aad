package domain

import "strings"

const (
	deviceMarkerANPR    = "U-1532"
	deviceMarkerContext = "U-1625"

	categoryCameraA = "KAT A"
	categoryCameraB = "KAT B"
)

func ParseAddressClass(raw string) AddressClass {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "lan":
		return ClassLAN
	case "lanz":
		return ClassLANZ
	case "lanz1":
		return ClassDynamic
	default:
		return ClassNone
	}
}

func ClassifyDevice(name string) DeviceKind {
	switch {
	case strings.Contains(name, deviceMarkerANPR):
		return DeviceANPR
	case strings.Contains(name, deviceMarkerContext):
		return DeviceContext
	default:
		return DeviceOther
	}
}

func IsCameraCategory(category string) bool {
	c := strings.TrimSpace(category)
	return strings.EqualFold(c, categoryCameraA) || strings.EqualFold(c, categoryCameraB)
}

// Included reports whether a row receives a static address during
// allocation: it must name an object and not be marked for dynamic
// addressing.
func Included(row DeviceRow) bool {
	return row.Object != "" && row.Class != ClassDynamic
}

// SortRows orders rows for address assignment: unclassified rows first,
// then lan, then lanz grouped by object in first-appearance order (ANPR
// units ahead of context units ahead of the rest within each group), and
// dynamically addressed rows last. The order decides which device gets
// which address, so it must be stable.
func SortRows(rows []DeviceRow) []DeviceRow {
	var none, lan, dynamic []DeviceRow
	groups := make(map[string][]DeviceRow)
	var groupOrder []string

	for _, row := range rows {
		switch row.Class {
		case ClassLAN:
			lan = append(lan, row)
		case ClassLANZ:
			if _, seen := groups[row.Object]; !seen {
				groupOrder = append(groupOrder, row.Object)
			}
			groups[row.Object] = append(groups[row.Object], row)
		case ClassDynamic:
			dynamic = append(dynamic, row)
		default:
			none = append(none, row)
		}
	}

	out := make([]DeviceRow, 0, len(rows))
	out = append(out, none...)
	out = append(out, lan...)
	for _, object := range groupOrder {
		group := groups[object]
		for _, kind := range []DeviceKind{DeviceANPR, DeviceContext, DeviceOther} {
			for _, row := range group {
				if ClassifyDevice(row.Device) == kind {
					out = append(out, row)
				}
			}
		}
	}
	out = append(out, dynamic...)

	return out
}

// Preview sorts rows and annotates each with its inclusion flag without
// touching the reservation store.
func Preview(rows []DeviceRow) []PreviewRow {
	sorted := SortRows(rows)
	out := make([]PreviewRow, 0, len(sorted))
	for _, row := range sorted {
		out = append(out, PreviewRow{DeviceRow: row, Included: Included(row)})
	}
	return out
}

// rowQuantity treats a missing or nonsensical quantity as a single unit.
func rowQuantity(row DeviceRow) int {
	if row.Quantity < 1 {
		return 1
	}
	return row.Quantity
}
