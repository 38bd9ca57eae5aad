package domain

import "context"

// ReservationStore is the durable registry of assigned ranges. Snapshot
// returns the full set plus a version token; Append commits a reservation
// only if the version still matches, failing with ErrStoreConflict when a
// concurrent writer moved it.
type ReservationStore interface {
	Snapshot(ctx context.Context) (ReservationSet, error)
	Append(ctx context.Context, version int64, r Reservation) error
	Ping(ctx context.Context) error
}
