package store

import (
	"context"
	"errors"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mkrawiec/netplanner/internal/domain"
)

func testReservation(t *testing.T, network string, mask int) domain.Reservation {
	t.Helper()
	addr, err := netip.ParseAddr(network)
	if err != nil {
		t.Fatalf("ParseAddr(%q): %v", network, err)
	}
	return domain.Reservation{
		ID:          uuid.New(),
		Network:     addr,
		Mask:        mask,
		FirstUsable: addr.Next(),
		LastUsable:  addr.Next().Next(),
		AssignedTo:  "batch",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestFileStoreMissingFileIsEmptyRegistry(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "registry.json"))

	set, err := s.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("expected no error for a missing file, got %v", err)
	}
	if set.Version != 0 || len(set.Reservations) != 0 {
		t.Errorf("expected empty registry at version 0, got version %d with %d reservations", set.Version, len(set.Reservations))
	}
}

func TestFileStoreEmptyFileIsEmptyRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	if err := os.WriteFile(path, []byte("  \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(path)

	set, err := s.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("expected no error for an empty file, got %v", err)
	}
	if set.Version != 0 || len(set.Reservations) != 0 {
		t.Errorf("expected empty registry, got version %d with %d reservations", set.Version, len(set.Reservations))
	}
}

func TestFileStoreAppendRoundTrip(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "registry.json"))
	ctx := context.Background()

	first := testReservation(t, "10.96.0.0", 29)
	second := testReservation(t, "10.96.0.8", 29)
	if err := s.Append(ctx, 0, first); err != nil {
		t.Fatalf("first append: %v", err)
	}
	if err := s.Append(ctx, 1, second); err != nil {
		t.Fatalf("second append: %v", err)
	}

	set, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if set.Version != 2 {
		t.Errorf("expected version 2, got %d", set.Version)
	}
	if len(set.Reservations) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(set.Reservations))
	}

	got := set.Reservations[0]
	if got.ID != first.ID {
		t.Errorf("expected id %s, got %s", first.ID, got.ID)
	}
	if got.Network != first.Network || got.Mask != first.Mask {
		t.Errorf("expected %s/%d, got %s/%d", first.Network, first.Mask, got.Network, got.Mask)
	}
	if got.FirstUsable != first.FirstUsable || got.LastUsable != first.LastUsable {
		t.Errorf("expected range %s-%s, got %s-%s", first.FirstUsable, first.LastUsable, got.FirstUsable, got.LastUsable)
	}
	if got.AssignedTo != first.AssignedTo {
		t.Errorf("expected assigned_to %q, got %q", first.AssignedTo, got.AssignedTo)
	}
	if !got.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("expected created_at %v, got %v", first.CreatedAt, got.CreatedAt)
	}
}

func TestFileStoreStaleVersionConflicts(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "registry.json"))
	ctx := context.Background()

	if err := s.Append(ctx, 0, testReservation(t, "10.96.0.0", 29)); err != nil {
		t.Fatalf("first append: %v", err)
	}

	err := s.Append(ctx, 0, testReservation(t, "10.96.0.8", 29))
	if !errors.Is(err, domain.ErrStoreConflict) {
		t.Errorf("expected ErrStoreConflict on a stale version, got %v", err)
	}

	set, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(set.Reservations) != 1 {
		t.Errorf("expected the conflicting append to be discarded, got %d reservations", len(set.Reservations))
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	cases := map[string]string{
		"truncated json": `{"version": 1, "reservations": [{"network":`,
		"bad network":    `{"version": 1, "reservations": [{"network": "300.0.0.1", "mask": 29}]}`,
		"bad mask":       `{"version": 1, "reservations": [{"network": "10.96.0.0", "mask": 48}]}`,
		"wrong shape":    `"just a string"`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "registry.json")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
			s := NewFileStore(path)

			_, err := s.Snapshot(context.Background())
			if !errors.Is(err, domain.ErrRegistryCorrupt) {
				t.Errorf("expected ErrRegistryCorrupt, got %v", err)
			}
			if err := s.Ping(context.Background()); !errors.Is(err, domain.ErrRegistryCorrupt) {
				t.Errorf("expected Ping to report ErrRegistryCorrupt, got %v", err)
			}
		})
	}
}

func TestFileStoreLegacyArrayFormat(t *testing.T) {
	legacy := `[
  {"network": "10.96.0.0", "mask": 28, "range_start": "10.96.0.1", "range_end": "10.96.0.14", "assigned_to": "SK-01"},
  {"network": "10.96.0.16", "mask": 29, "range_start": "10.96.0.17", "range_end": "10.96.0.22", "assigned_to": "SK-02"}
]`
	path := filepath.Join(t.TempDir(), "registry.json")
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(path)
	ctx := context.Background()

	set, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if set.Version != 0 {
		t.Errorf("expected legacy file to load as version 0, got %d", set.Version)
	}
	if len(set.Reservations) != 2 {
		t.Fatalf("expected 2 reservations, got %d", len(set.Reservations))
	}
	if set.Reservations[0].Network != netip.MustParseAddr("10.96.0.0") || set.Reservations[0].Mask != 28 {
		t.Errorf("unexpected first reservation %s/%d", set.Reservations[0].Network, set.Reservations[0].Mask)
	}
	if set.Reservations[1].AssignedTo != "SK-02" {
		t.Errorf("expected assigned_to SK-02, got %q", set.Reservations[1].AssignedTo)
	}

	// Synthesized ids must survive a reload so lookups keep working.
	again, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("second snapshot: %v", err)
	}
	if again.Reservations[0].ID != set.Reservations[0].ID {
		t.Errorf("expected stable ids across loads, got %s then %s", set.Reservations[0].ID, again.Reservations[0].ID)
	}

	// The next append upgrades the file to envelope form.
	if err := s.Append(ctx, 0, testReservation(t, "10.96.0.32", 29)); err != nil {
		t.Fatalf("append: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		t.Errorf("expected envelope format after append, got %s", data)
	}
	upgraded, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot after upgrade: %v", err)
	}
	if upgraded.Version != 1 || len(upgraded.Reservations) != 3 {
		t.Errorf("expected version 1 with 3 reservations, got version %d with %d", upgraded.Version, len(upgraded.Reservations))
	}
}

func TestFileStoreLegacyRecordWithoutRangeDerivesBounds(t *testing.T) {
	legacy := `[{"network": "10.96.0.0", "mask": 29, "assigned_to": "SK-01"}]`
	path := filepath.Join(t.TempDir(), "registry.json")
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := NewFileStore(path).Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	r := set.Reservations[0]
	if r.FirstUsable != netip.MustParseAddr("10.96.0.1") {
		t.Errorf("expected derived range_start 10.96.0.1, got %s", r.FirstUsable)
	}
	if r.LastUsable != netip.MustParseAddr("10.96.0.6") {
		t.Errorf("expected derived range_end 10.96.0.6, got %s", r.LastUsable)
	}
}

func TestFileStoreLeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "registry.json"))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.Append(ctx, int64(i), testReservation(t, "10.96.0.0", 29)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "registry.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only registry.json in %s, got %v", dir, names)
	}
}

func TestFileStorePing(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "registry.json"))
	ctx := context.Background()

	if err := s.Ping(ctx); err != nil {
		t.Errorf("expected a missing registry to be ready, got %v", err)
	}

	if err := s.Append(ctx, 0, testReservation(t, "10.96.0.0", 29)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Ping(ctx); err != nil {
		t.Errorf("expected a valid registry to be ready, got %v", err)
	}
}
