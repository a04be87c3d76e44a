package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/iliyamo/bus-seat-reservation/internal/model"
	"github.com/iliyamo/bus-seat-reservation/internal/seatmap"
)

// BusRepo provides methods to create and retrieve buses.  The seat
// layout travels as a JSON document in the seat_config column; the
// repository marshals seatmap persisted maps in and out of that column
// but leaves interpretation of the document to the seatmap package.
type BusRepo struct {
	db *sql.DB
}

// NewBusRepo constructs a BusRepo with the given DB handle.
func NewBusRepo(db *sql.DB) *BusRepo {
	return &BusRepo{db: db}
}

// DB exposes the underlying handle so handlers can open transactions
// spanning multiple repositories.
func (r *BusRepo) DB() *sql.DB { return r.db }

// Create inserts a new bus.  SeatConfig must already contain the
// serialized configuration.  After insert the record is re-read so
// timestamps and defaults are populated.
func (r *BusRepo) Create(ctx context.Context, b *model.Bus) error {
	const qInsert = `INSERT INTO buses (owner_id, name, plate_number, seat_config, total_seats)
	                 VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, b.OwnerID, b.Name, b.PlateNumber, b.SeatConfig, b.TotalSeats)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	const qSelect = `SELECT id, owner_id, name, plate_number, seat_config, total_seats, is_active, created_at, updated_at
	                 FROM buses WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, b.ID).
		Scan(&b.ID, &b.OwnerID, &b.Name, &b.PlateNumber, &b.SeatConfig, &b.TotalSeats, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
}

// GetByIDAndOwner retrieves a bus only when it belongs to the given
// owner.  Returns ErrBusNotFound when no row matches.
func (r *BusRepo) GetByIDAndOwner(ctx context.Context, id, ownerID uint64) (*model.Bus, error) {
	const q = `SELECT id, owner_id, name, plate_number, seat_config, total_seats, is_active, created_at, updated_at
	           FROM buses WHERE id = ? AND owner_id = ?`
	var b model.Bus
	err := r.db.QueryRowContext(ctx, q, id, ownerID).
		Scan(&b.ID, &b.OwnerID, &b.Name, &b.PlateNumber, &b.SeatConfig, &b.TotalSeats, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrBusNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByID retrieves a bus regardless of owner.  Used by public layout
// endpoints.
func (r *BusRepo) GetByID(ctx context.Context, id uint64) (*model.Bus, error) {
	const q = `SELECT id, owner_id, name, plate_number, seat_config, total_seats, is_active, created_at, updated_at
	           FROM buses WHERE id = ?`
	var b model.Bus
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&b.ID, &b.OwnerID, &b.Name, &b.PlateNumber, &b.SeatConfig, &b.TotalSeats, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrBusNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByOwner returns every bus belonging to an owner, newest first.
func (r *BusRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Bus, error) {
	const q = `SELECT id, owner_id, name, plate_number, seat_config, total_seats, is_active, created_at, updated_at
	           FROM buses WHERE owner_id = ? ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	buses := make([]model.Bus, 0)
	for rows.Next() {
		var b model.Bus
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Name, &b.PlateNumber, &b.SeatConfig, &b.TotalSeats, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		buses = append(buses, b)
	}
	return buses, rows.Err()
}

// UpdateSeatConfig replaces the stored layout document and its derived
// seat count.  Ownership must have been verified by the caller.
func (r *BusRepo) UpdateSeatConfig(ctx context.Context, id uint64, seatConfig string, totalSeats int) error {
	const q = `UPDATE buses SET seat_config = ?, total_seats = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, seatConfig, totalSeats, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrBusNotFound
	}
	return nil
}

// Deactivate soft-deletes a bus by clearing its is_active flag.
func (r *BusRepo) Deactivate(ctx context.Context, id, ownerID uint64) error {
	const q = `UPDATE buses SET is_active = 0 WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrBusNotFound
	}
	return nil
}

// MarshalSeatConfig serializes a seatmap configuration into the JSON
// document stored in seat_config.
func MarshalSeatConfig(cfg *seatmap.Config) (string, error) {
	raw, err := json.Marshal(cfg.ToMap())
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// UnmarshalSeatConfig parses a stored seat_config document back into a
// seatmap configuration.  Errors surface unchanged so callers can decide
// whether to degrade (treat as "no seat map") or fail the request.
func UnmarshalSeatConfig(doc string) (*seatmap.Config, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(doc), &data); err != nil {
		return nil, err
	}
	return seatmap.ConfigFromMap(data)
}
