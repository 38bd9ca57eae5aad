package domain

import "testing"

func TestDeriveEquipmentGatedByLPRFlag(t *testing.T) {
	rows := []DeviceRow{
		{Object: "SK-01", Category: "KAT A", Device: "Kamera U-1532", Quantity: 4},
	}

	items := DeriveEquipment(rows, EquipmentConfig{LPREnabled: false, RedLightEnabled: true})
	if len(items) != 0 {
		t.Fatalf("expected no items when lpr is disabled, got %d", len(items))
	}
}

func TestDeriveEquipmentWorkedExample(t *testing.T) {
	var rows []DeviceRow
	for i := 0; i < 5; i++ {
		rows = append(rows, DeviceRow{Object: "SK-01", Category: "KAT A", Device: "Kamera U-1532", Quantity: 1})
	}
	for i := 0; i < 5; i++ {
		rows = append(rows, DeviceRow{Object: "SK-02", Category: "KAT B", Device: "Kamera poglądowa", Quantity: 1})
	}

	items := DeriveEquipment(rows, EquipmentConfig{LPREnabled: true})
	if len(items) != 3 {
		t.Fatalf("expected server, ssv and recorder items, got %d", len(items))
	}

	server := items[0]
	if server.Kind != EquipmentServer || server.Quantity != 1 {
		t.Fatalf("expected 1 server for 5 sets at 12 per server, got %+v", server)
	}

	ssv := items[1]
	if ssv.Kind != EquipmentLicense || ssv.Name != "SSV license" || ssv.Quantity != 10 {
		t.Fatalf("expected 10 ssv licenses, got %+v", ssv)
	}

	recorder := items[2]
	if recorder.Kind != EquipmentRecorder || recorder.Quantity != 1 {
		t.Fatalf("expected 1 recorder for 5 sets, got %+v", recorder)
	}

	for _, item := range items {
		if item.Class != "Klasa-0" {
			t.Fatalf("expected Klasa-0 class on every item, got %+v", item)
		}
	}
}

func TestDeriveEquipmentAppliesSSVFloor(t *testing.T) {
	rows := []DeviceRow{
		{Object: "SK-01", Category: "KAT A", Device: "Kamera U-1532", Quantity: 2},
	}

	items := DeriveEquipment(rows, EquipmentConfig{LPREnabled: true})
	ssv := findItem(t, items, "SSV license")
	if ssv.Quantity != 8 {
		t.Fatalf("expected floor of 8 ssv licenses, got %d", ssv.Quantity)
	}
}

func TestDeriveEquipmentRedLightThresholds(t *testing.T) {
	rows := []DeviceRow{
		{Object: "SK-01", Category: "KAT A", Device: "Kamera U-1532", Quantity: 9},
		{Object: "SK-01", Category: "KAT B", Device: "Kamera U-1625", Quantity: 3},
	}

	items := DeriveEquipment(rows, EquipmentConfig{LPREnabled: true, RedLightEnabled: true})

	server := findItem(t, items, "Recording server")
	if server.Quantity != 3 {
		t.Fatalf("expected ceil(12/4) = 3 servers, got %d", server.Quantity)
	}

	ssv := findItem(t, items, "SSV license")
	if ssv.Quantity != 12 {
		t.Fatalf("expected 12 ssv licenses, got %d", ssv.Quantity)
	}

	vca := findItem(t, items, "VCA license")
	if vca.Quantity != 9 {
		t.Fatalf("expected vca licenses for the 9 enforcement cameras, got %d", vca.Quantity)
	}
}

func TestDeriveEquipmentOmitsVCAWithoutRedLight(t *testing.T) {
	rows := []DeviceRow{
		{Object: "SK-01", Category: "KAT A", Device: "Kamera U-1532", Quantity: 9},
	}

	items := DeriveEquipment(rows, EquipmentConfig{LPREnabled: true})
	for _, item := range items {
		if item.Name == "VCA license" {
			t.Fatalf("expected no vca item without red light, got %+v", item)
		}
	}
}

func TestDeriveEquipmentExcludesDynamicRows(t *testing.T) {
	rows := []DeviceRow{
		{Object: "SK-01", Category: "KAT A", Device: "Kamera U-1532", Quantity: 4, Class: ClassDynamic},
	}

	items := DeriveEquipment(rows, EquipmentConfig{LPREnabled: true})
	for _, item := range items {
		if item.Kind == EquipmentServer || item.Kind == EquipmentRecorder {
			t.Fatalf("expected no set-derived items from dynamic rows, got %+v", item)
		}
	}
	ssv := findItem(t, items, "SSV license")
	if ssv.Quantity != 8 {
		t.Fatalf("expected bare floor when all rows are dynamic, got %d", ssv.Quantity)
	}
}

func TestDeriveEquipmentWeightsByQuantity(t *testing.T) {
	rows := []DeviceRow{
		{Object: "SK-01", Category: "KAT A", Device: "Kamera U-1532", Quantity: 13},
	}

	items := DeriveEquipment(rows, EquipmentConfig{LPREnabled: true})

	server := findItem(t, items, "Recording server")
	if server.Quantity != 2 {
		t.Fatalf("expected ceil(13/12) = 2 servers, got %d", server.Quantity)
	}
	ssv := findItem(t, items, "SSV license")
	if ssv.Quantity != 13 {
		t.Fatalf("expected 13 ssv licenses, got %d", ssv.Quantity)
	}
}

func TestDeriveEquipmentNoSetsYieldsOnlySSV(t *testing.T) {
	rows := []DeviceRow{
		{Object: "SK-01", Category: "KAT A", Device: "Kamera poglądowa", Quantity: 3},
	}

	items := DeriveEquipment(rows, EquipmentConfig{LPREnabled: true})
	if len(items) != 1 {
		t.Fatalf("expected only the ssv item, got %d items", len(items))
	}
	if items[0].Name != "SSV license" || items[0].Quantity != 8 {
		t.Fatalf("unexpected item: %+v", items[0])
	}
}

func findItem(t *testing.T, items []EquipmentItem, name string) EquipmentItem {
	t.Helper()

	for _, item := range items {
		if item.Name == name {
			return item
		}
	}
	t.Fatalf("item %q not found in %+v", name, items)
	return EquipmentItem{}
}
