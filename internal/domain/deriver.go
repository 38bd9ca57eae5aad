package domain

import "fmt"

const (
	equipmentClass = "Klasa-0"

	ssvLicenseFloor       = 8
	setsPerServerDefault  = 12
	setsPerServerRedLight = 4
	setsPerRecorder       = 16
	recorderDiskTB        = 16
)

// DeriveEquipment computes the secondary equipment bill from aggregate
// device counts. The whole feature sits behind the LPR flag; rows marked
// for dynamic addressing never count.
func DeriveEquipment(rows []DeviceRow, cfg EquipmentConfig) []EquipmentItem {
	if !cfg.LPREnabled {
		return nil
	}

	var cameraSets, allCameras, anprCameras int
	for _, row := range rows {
		if row.Class == ClassDynamic {
			continue
		}
		quantity := rowQuantity(row)
		kind := ClassifyDevice(row.Device)
		camera := IsCameraCategory(row.Category)
		if kind == DeviceANPR || kind == DeviceContext {
			cameraSets += quantity
		}
		if camera {
			allCameras += quantity
		}
		if kind == DeviceANPR && camera {
			anprCameras += quantity
		}
	}

	setsPerServer := setsPerServerDefault
	vcaLicenses := 0
	if cfg.RedLightEnabled {
		setsPerServer = setsPerServerRedLight
		vcaLicenses = anprCameras
	}
	ssvLicenses := allCameras
	if ssvLicenses < ssvLicenseFloor {
		ssvLicenses = ssvLicenseFloor
	}

	var items []EquipmentItem
	if cameraSets > 0 {
		items = append(items, EquipmentItem{
			Name:        "Recording server",
			Class:       equipmentClass,
			Kind:        EquipmentServer,
			Quantity:    ceilDiv(cameraSets, setsPerServer),
			Description: fmt.Sprintf("Handles up to %d camera sets each", setsPerServer),
		})
	}
	if ssvLicenses > 0 {
		items = append(items, EquipmentItem{
			Name:        "SSV license",
			Class:       equipmentClass,
			Kind:        EquipmentLicense,
			Quantity:    ssvLicenses,
			Description: "Per-camera system license",
		})
	}
	if vcaLicenses > 0 {
		items = append(items, EquipmentItem{
			Name:        "VCA license",
			Class:       equipmentClass,
			Kind:        EquipmentLicense,
			Quantity:    vcaLicenses,
			Description: "Video analytics license for enforcement cameras",
		})
	}
	if cameraSets > 0 {
		items = append(items, EquipmentItem{
			Name:        "Network recorder",
			Class:       equipmentClass,
			Kind:        EquipmentRecorder,
			Quantity:    ceilDiv(cameraSets, setsPerRecorder),
			Description: fmt.Sprintf("%d TB disk tier", recorderDiskTB),
		})
	}

	return items
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
