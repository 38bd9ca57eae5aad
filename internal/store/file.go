package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mkrawiec/netplanner/internal/domain"
	"github.com/mkrawiec/netplanner/internal/ipcalc"
)

// FileStore keeps the reservation registry in a single JSON file. Writes go
// through a temp file, fsync and rename so a crash never leaves a partial
// registry behind. A missing file is an empty registry; a present but
// unparsable one fails loudly with ErrRegistryCorrupt.
type FileStore struct {
	path string

	mu sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

type registryFile struct {
	Version      int64               `json:"version"`
	Reservations []reservationRecord `json:"reservations"`
}

type reservationRecord struct {
	ID         string    `json:"id,omitempty"`
	Network    string    `json:"network"`
	Mask       int       `json:"mask"`
	RangeStart string    `json:"range_start"`
	RangeEnd   string    `json:"range_end"`
	AssignedTo string    `json:"assigned_to"`
	CreatedAt  time.Time `json:"created_at,omitzero"`
}

func (s *FileStore) Snapshot(_ context.Context) (domain.ReservationSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) Append(_ context.Context, version int64, r domain.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, err := s.load()
	if err != nil {
		return err
	}
	if set.Version != version {
		return fmt.Errorf("%w: registry moved from version %d to %d", domain.ErrStoreConflict, version, set.Version)
	}

	records := make([]reservationRecord, 0, len(set.Reservations)+1)
	for _, existing := range set.Reservations {
		records = append(records, toRecord(existing))
	}
	records = append(records, toRecord(r))

	data, err := json.MarshalIndent(registryFile{Version: version + 1, Reservations: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	return writeAtomic(s.path, data)
}

func (s *FileStore) Ping(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.load()
	return err
}

func (s *FileStore) load() (domain.ReservationSet, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.ReservationSet{}, nil
	}
	if err != nil {
		return domain.ReservationSet{}, fmt.Errorf("read registry %s: %w", s.path, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return domain.ReservationSet{}, nil
	}

	// The original registry format was a bare array of records; it loads
	// as version 0 and is rewritten in envelope form on the next append.
	if trimmed[0] == '[' {
		var records []reservationRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return domain.ReservationSet{}, fmt.Errorf("%w: %s: %v", domain.ErrRegistryCorrupt, s.path, err)
		}
		reservations, err := fromRecords(records)
		if err != nil {
			return domain.ReservationSet{}, fmt.Errorf("%w: %s: %v", domain.ErrRegistryCorrupt, s.path, err)
		}
		return domain.ReservationSet{Version: 0, Reservations: reservations}, nil
	}

	var file registryFile
	if err := json.Unmarshal(trimmed, &file); err != nil {
		return domain.ReservationSet{}, fmt.Errorf("%w: %s: %v", domain.ErrRegistryCorrupt, s.path, err)
	}
	reservations, err := fromRecords(file.Reservations)
	if err != nil {
		return domain.ReservationSet{}, fmt.Errorf("%w: %s: %v", domain.ErrRegistryCorrupt, s.path, err)
	}
	return domain.ReservationSet{Version: file.Version, Reservations: reservations}, nil
}

func toRecord(r domain.Reservation) reservationRecord {
	return reservationRecord{
		ID:         r.ID.String(),
		Network:    r.Network.String(),
		Mask:       r.Mask,
		RangeStart: r.FirstUsable.String(),
		RangeEnd:   r.LastUsable.String(),
		AssignedTo: r.AssignedTo,
		CreatedAt:  r.CreatedAt,
	}
}

func fromRecords(records []reservationRecord) ([]domain.Reservation, error) {
	out := make([]domain.Reservation, 0, len(records))
	for i, record := range records {
		reservation, err := fromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %v", i, err)
		}
		out = append(out, reservation)
	}
	return out, nil
}

func fromRecord(record reservationRecord) (domain.Reservation, error) {
	network, err := netip.ParseAddr(record.Network)
	if err != nil || !network.Is4() {
		return domain.Reservation{}, fmt.Errorf("bad network %q", record.Network)
	}
	if record.Mask < 0 || record.Mask > 32 {
		return domain.Reservation{}, fmt.Errorf("bad mask %d", record.Mask)
	}

	id, err := recordID(record)
	if err != nil {
		return domain.Reservation{}, err
	}

	first, last, err := recordBounds(record, network)
	if err != nil {
		return domain.Reservation{}, err
	}

	return domain.Reservation{
		ID:          id,
		Network:     network,
		Mask:        record.Mask,
		FirstUsable: first,
		LastUsable:  last,
		AssignedTo:  record.AssignedTo,
		CreatedAt:   record.CreatedAt,
	}, nil
}

// recordID parses the stored id. Legacy records carry none; they get a
// name-based UUID derived from the range so lookups stay stable across
// loads until the file is rewritten.
func recordID(record reservationRecord) (uuid.UUID, error) {
	if record.ID == "" {
		name := fmt.Sprintf("netplanner:%s/%d", record.Network, record.Mask)
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)), nil
	}
	id, err := uuid.Parse(record.ID)
	if err != nil {
		return uuid.UUID{}, fmt.Errorf("bad id %q", record.ID)
	}
	return id, nil
}

func recordBounds(record reservationRecord, network netip.Addr) (netip.Addr, netip.Addr, error) {
	if record.RangeStart == "" && record.RangeEnd == "" {
		num, err := ipcalc.Uint32(network)
		if err != nil {
			return netip.Addr{}, netip.Addr{}, err
		}
		hosts := ipcalc.HostCount(record.Mask)
		if hosts < 1 {
			return network, network, nil
		}
		return ipcalc.FromUint32(num + 1), ipcalc.FromUint32(num + uint32(hosts)), nil
	}

	first, err := netip.ParseAddr(record.RangeStart)
	if err != nil || !first.Is4() {
		return netip.Addr{}, netip.Addr{}, fmt.Errorf("bad range_start %q", record.RangeStart)
	}
	last, err := netip.ParseAddr(record.RangeEnd)
	if err != nil || !last.Is4() {
		return netip.Addr{}, netip.Addr{}, fmt.Errorf("bad range_end %q", record.RangeEnd)
	}
	return first, last, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp registry: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp registry: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp registry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp registry: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace registry: %w", err)
	}

	// Persist the rename itself.
	d, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("open registry dir: %w", err)
	}
	defer d.Close()
	if err := d.Sync(); err != nil {
		return fmt.Errorf("sync registry dir: %w", err)
	}
	return nil
}
