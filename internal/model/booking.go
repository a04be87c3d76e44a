package model

import "time"

// Booking represents a confirmed purchase of one or more seats on a
// trip.  The claimed seat identifiers and their prices live in the
// `booking_seats` table, one row per seat.
//
// Fields:
//  ID               – primary key identifier.
//  UserID           – customer who made the booking.
//  TripID           – trip the seats belong to.
//  Status           – booking status (CONFIRMED, CANCELLED).
//  TotalAmountCents – sum of the per-seat prices.
//  CreatedAt        – timestamp when the booking was made.
type Booking struct {
	ID               uint64    // bookings.id
	UserID           uint64    // bookings.user_id
	TripID           uint64    // bookings.trip_id
	Status           string    // bookings.status
	TotalAmountCents int       // bookings.total_amount_cents
	CreatedAt        time.Time // bookings.created_at
}

// BookingSeat links a booking to a single seat identifier within the
// trip's seat configuration, capturing the price paid for that seat.
//
// Fields:
//  ID         – primary key identifier.
//  BookingID  – owning booking.
//  SeatNumber – human-facing seat identifier (e.g. "3A").
//  PriceCents – price paid for this seat.
type BookingSeat struct {
	ID         uint64 // booking_seats.id
	BookingID  uint64 // booking_seats.booking_id
	SeatNumber string // booking_seats.seat_number
	PriceCents int    // booking_seats.price_cents
}
