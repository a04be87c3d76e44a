package repository // repository for booking persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/bus-seat-reservation/internal/model"
)

// BookingRepo encapsulates database operations for bookings and their
// per-seat rows.  Creation happens inside the booking transaction so the
// seat snapshot update and the booking rows commit atomically.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo given a DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// CreateTx inserts a booking record inside the given transaction.  On
// success the booking's ID is populated.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, trip_id, status, total_amount_cents) VALUES (?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.UserID, b.TripID, b.Status, b.TotalAmountCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// CreateSeatsBulkTx inserts the booking's seat rows in one statement.
func (r *BookingRepo) CreateSeatsBulkTx(ctx context.Context, tx *sql.Tx, seats []model.BookingSeat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO booking_seats (booking_id, seat_number, price_cents) VALUES `
	args := make([]interface{}, 0, len(seats)*3)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, s.BookingID, s.SeatNumber, s.PriceCents)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// BookingDetail is the flattened row returned for listings: the booking
// plus its seat identifiers and trip route fields.
type BookingDetail struct {
	Booking     model.Booking `json:"booking"`
	Origin      string        `json:"origin"`
	Destination string        `json:"destination"`
	DepartsAt   time.Time     `json:"departs_at"`
	SeatNumbers []string      `json:"seat_numbers"`
}

// ListByUser returns the user's bookings with trip route information and
// claimed seat identifiers, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.user_id, b.trip_id, b.status, b.total_amount_cents, b.created_at,
	                  t.origin, t.destination, t.departs_at
	           FROM bookings b JOIN trips t ON t.id = b.trip_id
	           WHERE b.user_id = ? ORDER BY b.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.Booking.ID, &d.Booking.UserID, &d.Booking.TripID, &d.Booking.Status,
			&d.Booking.TotalAmountCents, &d.Booking.CreatedAt, &d.Origin, &d.Destination, &d.DepartsAt); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range details {
		seats, err := r.seatNumbers(ctx, details[i].Booking.ID)
		if err != nil {
			return nil, err
		}
		details[i].SeatNumbers = seats
	}
	return details, nil
}

func (r *BookingRepo) seatNumbers(ctx context.Context, bookingID uint64) ([]string, error) {
	const q = `SELECT seat_number FROM booking_seats WHERE booking_id = ? ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	numbers := make([]string, 0)
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		numbers = append(numbers, n)
	}
	return numbers, rows.Err()
}
