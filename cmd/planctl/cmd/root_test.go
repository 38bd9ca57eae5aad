package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSheet(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "devices.csv")
	csv := "Obiekt;Kategoria;Urzadzenie;Ilosc;Klasa\n" +
		"SK-01;KAT A;Kamera U-1532;2;lanz\n" +
		"SK-01;KAT B;Kamera U-1625;1;lanz1\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("write sheet: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAllocateCommandWritesAssignments(t *testing.T) {
	dir := t.TempDir()
	sheetPath := writeSheet(t, dir)
	registry := filepath.Join(dir, "registry.json")

	out, err := runCommand(t, "allocate", "--registry", registry, "--label", "etap-2", sheetPath)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if !strings.Contains(out, "reserved 10.96.0.0/29") {
		t.Fatalf("expected reservation banner, got %q", out)
	}
	if !strings.Contains(out, "10.96.0.2") {
		t.Fatalf("expected first device address, got %q", out)
	}
	if !strings.Contains(out, "255.255.255.248") {
		t.Fatalf("expected the mask in dotted form, got %q", out)
	}
	if !strings.Contains(out, "dynamic;dynamic;dynamic") {
		t.Fatalf("expected dynamic markers on the dynamic row, got %q", out)
	}

	if _, err := os.Stat(registry); err != nil {
		t.Fatalf("expected registry file to be written: %v", err)
	}
}

func TestAllocateCommandFailsWithoutStaticRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "devices.csv")
	csv := "object;category;device;quantity;class\nSK-01;;Kamera U-1625;2;lanz1\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("write sheet: %v", err)
	}

	_, err := runCommand(t, "allocate", "--registry", filepath.Join(dir, "registry.json"), path)
	if err == nil {
		t.Fatal("expected allocation to fail")
	}
}

func TestPreviewCommandShowsAddressingModes(t *testing.T) {
	dir := t.TempDir()
	sheetPath := writeSheet(t, dir)

	out, err := runCommand(t, "preview", "--registry", filepath.Join(dir, "registry.json"), sheetPath)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.Contains(out, "ADDRESSING") {
		t.Fatalf("expected table header, got %q", out)
	}
	if !strings.Contains(out, "static") || !strings.Contains(out, "dynamic") {
		t.Fatalf("expected both addressing modes, got %q", out)
	}
}

func TestEquipmentCommandWritesBill(t *testing.T) {
	dir := t.TempDir()
	sheetPath := writeSheet(t, dir)
	billPath := filepath.Join(dir, "bill.csv")

	_, err := runCommand(t, "equipment", "--registry", filepath.Join(dir, "registry.json"), "--lpr", "--red-light", "-o", billPath, sheetPath)
	if err != nil {
		t.Fatalf("equipment: %v", err)
	}

	bill, err := os.ReadFile(billPath)
	if err != nil {
		t.Fatalf("read bill: %v", err)
	}
	if !strings.Contains(string(bill), "name;class;quantity;description") {
		t.Fatalf("expected bill header, got %q", bill)
	}
	if !strings.Contains(string(bill), "Recording server") {
		t.Fatalf("expected a recording server line, got %q", bill)
	}
}

func TestReservationsCommandListsRegistry(t *testing.T) {
	dir := t.TempDir()
	sheetPath := writeSheet(t, dir)
	registry := filepath.Join(dir, "registry.json")

	if _, err := runCommand(t, "allocate", "--registry", registry, "--label", "etap-2", sheetPath); err != nil {
		t.Fatalf("allocate: %v", err)
	}

	out, err := runCommand(t, "reservations", "--registry", registry)
	if err != nil {
		t.Fatalf("reservations: %v", err)
	}
	if !strings.Contains(out, "10.96.0.0/29") || !strings.Contains(out, "etap-2") {
		t.Fatalf("expected reservation listing, got %q", out)
	}
}
