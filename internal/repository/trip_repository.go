package repository // repository for trip persistence

import (
	"context"
	"database/sql"

	"github.com/iliyamo/bus-seat-reservation/internal/model"
)

// TripRepo encapsulates database operations for trips.  A trip carries
// its own seat configuration snapshot whose availability flags are the
// single source of truth for that departure; the version column guards
// concurrent snapshot updates.
type TripRepo struct {
	db *sql.DB
}

// NewTripRepo constructs a TripRepo given a DB handle.
func NewTripRepo(db *sql.DB) *TripRepo {
	return &TripRepo{db: db}
}

// DB exposes the underlying handle for transaction control.
func (r *TripRepo) DB() *sql.DB { return r.db }

// Create inserts a trip with its initial seat snapshot and re-reads the
// record to populate defaults.
func (r *TripRepo) Create(ctx context.Context, t *model.Trip) error {
	const qInsert = `INSERT INTO trips (bus_id, owner_id, origin, destination, departs_at, status, seat_config)
	                 VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, t.BusID, t.OwnerID, t.Origin, t.Destination, t.DepartsAt, t.Status, t.SeatConfig)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)

	const qSelect = `SELECT id, bus_id, owner_id, origin, destination, departs_at, status, seat_config, version, created_at, updated_at
	                 FROM trips WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, t.ID).
		Scan(&t.ID, &t.BusID, &t.OwnerID, &t.Origin, &t.Destination, &t.DepartsAt, &t.Status, &t.SeatConfig, &t.Version, &t.CreatedAt, &t.UpdatedAt)
}

// GetByID retrieves a trip by its ID.  Returns ErrTripNotFound when no
// row exists.
func (r *TripRepo) GetByID(ctx context.Context, id uint64) (*model.Trip, error) {
	const q = `SELECT id, bus_id, owner_id, origin, destination, departs_at, status, seat_config, version, created_at, updated_at
	           FROM trips WHERE id = ?`
	var t model.Trip
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&t.ID, &t.BusID, &t.OwnerID, &t.Origin, &t.Destination, &t.DepartsAt, &t.Status, &t.SeatConfig, &t.Version, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrTripNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByIDTx is the transactional variant of GetByID with a row lock, so
// the seat snapshot read inside a booking transaction cannot change
// before the matching update commits.
func (r *TripRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Trip, error) {
	const q = `SELECT id, bus_id, owner_id, origin, destination, departs_at, status, seat_config, version, created_at, updated_at
	           FROM trips WHERE id = ? FOR UPDATE`
	var t model.Trip
	err := tx.QueryRowContext(ctx, q, id).
		Scan(&t.ID, &t.BusID, &t.OwnerID, &t.Origin, &t.Destination, &t.DepartsAt, &t.Status, &t.SeatConfig, &t.Version, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrTripNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListOpen returns trips currently open for sale, soonest departure
// first.
func (r *TripRepo) ListOpen(ctx context.Context) ([]model.Trip, error) {
	const q = `SELECT id, bus_id, owner_id, origin, destination, departs_at, status, seat_config, version, created_at, updated_at
	           FROM trips WHERE status = 'OPEN' ORDER BY departs_at ASC`
	return r.list(ctx, q)
}

// ListByOwner returns every trip of the given owner, newest first.
func (r *TripRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Trip, error) {
	const q = `SELECT id, bus_id, owner_id, origin, destination, departs_at, status, seat_config, version, created_at, updated_at
	           FROM trips WHERE owner_id = ? ORDER BY id DESC`
	return r.list(ctx, q, ownerID)
}

func (r *TripRepo) list(ctx context.Context, query string, args ...any) ([]model.Trip, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	trips := make([]model.Trip, 0)
	for rows.Next() {
		var t model.Trip
		if err := rows.Scan(&t.ID, &t.BusID, &t.OwnerID, &t.Origin, &t.Destination, &t.DepartsAt, &t.Status, &t.SeatConfig, &t.Version, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// UpdateSeatConfigTx replaces the seat snapshot inside a transaction,
// guarded by the optimistic version check.  Returns ErrConflict when the
// snapshot changed since it was read.
func (r *TripRepo) UpdateSeatConfigTx(ctx context.Context, tx *sql.Tx, id uint64, seatConfig string, version uint32) error {
	const q = `UPDATE trips SET seat_config = ?, version = version + 1 WHERE id = ? AND version = ?`
	res, err := tx.ExecContext(ctx, q, seatConfig, id, version)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// Close marks a trip as closed for sale.
func (r *TripRepo) Close(ctx context.Context, id, ownerID uint64) error {
	const q = `UPDATE trips SET status = 'CLOSED' WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrTripNotFound
	}
	return nil
}
