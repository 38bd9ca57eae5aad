package store

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkrawiec/netplanner/internal/domain"
)

// registryLockID serializes appends across every writer of the reservations
// table. The value is arbitrary but all instances must share it.
const registryLockID int64 = 0x52455356

const (
	selectVersionQuery = `SELECT version FROM registry_version`

	listReservationsQuery = `
SELECT id, network, mask, range_start, range_end, assigned_to, created_at
FROM reservations
ORDER BY seq`

	insertReservationQuery = `
INSERT INTO reservations (id, network, mask, range_start, range_end, assigned_to, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	bumpVersionQuery = `UPDATE registry_version SET version = version + 1`
)

// PostgresStore keeps the reservation registry in Postgres. Appends run in a
// transaction under an advisory lock, so the version check and the insert are
// atomic even with several instances sharing one database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Snapshot(ctx context.Context) (domain.ReservationSet, error) {
	var version int64
	if err := s.pool.QueryRow(ctx, selectVersionQuery).Scan(&version); err != nil && !isNoRows(err) {
		return domain.ReservationSet{}, fmt.Errorf("read registry version: %w", err)
	}

	rows, err := s.pool.Query(ctx, listReservationsQuery)
	if err != nil {
		return domain.ReservationSet{}, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return domain.ReservationSet{}, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return domain.ReservationSet{}, fmt.Errorf("list reservations: %w", err)
	}

	return domain.ReservationSet{Version: version, Reservations: reservations}, nil
}

func (s *PostgresStore) Append(ctx context.Context, version int64, r domain.Reservation) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, registryLockID); err != nil {
		return fmt.Errorf("lock registry: %w", err)
	}

	var current int64
	if err := tx.QueryRow(ctx, selectVersionQuery).Scan(&current); err != nil {
		return fmt.Errorf("read registry version: %w", err)
	}
	if current != version {
		return fmt.Errorf("%w: registry moved from version %d to %d", domain.ErrStoreConflict, version, current)
	}

	_, err = tx.Exec(ctx, insertReservationQuery,
		toPgUUID(r.ID), r.Network, r.Mask, r.FirstUsable, r.LastUsable, r.AssignedTo, r.CreatedAt,
	)
	if err != nil {
		if isUniqueBlockViolation(err) {
			return fmt.Errorf("%w: block %s/%d already reserved", domain.ErrStoreConflict, r.Network, r.Mask)
		}
		return fmt.Errorf("insert reservation: %w", err)
	}

	if _, err := tx.Exec(ctx, bumpVersionQuery); err != nil {
		return fmt.Errorf("bump registry version: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}

	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func scanReservation(rows pgx.Rows) (domain.Reservation, error) {
	var (
		id         pgtype.UUID
		network    netip.Addr
		mask       int
		first      netip.Addr
		last       netip.Addr
		assignedTo string
		createdAt  time.Time
	)
	if err := rows.Scan(&id, &network, &mask, &first, &last, &assignedTo, &createdAt); err != nil {
		return domain.Reservation{}, err
	}

	return domain.Reservation{
		ID:          uuid.UUID(id.Bytes),
		Network:     network,
		Mask:        mask,
		FirstUsable: first,
		LastUsable:  last,
		AssignedTo:  assignedTo,
		CreatedAt:   createdAt,
	}, nil
}

func toPgUUID(id uuid.UUID) pgtype.UUID {
	var out pgtype.UUID
	copy(out.Bytes[:], id[:])
	out.Valid = true

	return out
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func isUniqueBlockViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.ConstraintName == "unique_block"
}
