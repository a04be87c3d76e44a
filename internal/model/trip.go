package model

import "time"

// Trip represents one scheduled departure of a bus.  When a trip is
// opened for sale the bus seat configuration is snapshotted into the
// trip's own `seat_config` column; bookings flip availability flags
// inside that snapshot, never inside the bus template.  Version guards
// concurrent snapshot updates with optimistic locking.
//
// Fields:
//  ID          – primary key identifier.
//  BusID       – bus operating this trip.
//  OwnerID     – user ID of the operating owner.
//  Origin      – departure city or terminal.
//  Destination – arrival city or terminal.
//  DepartsAt   – scheduled departure time.
//  Status      – trip lifecycle status (OPEN, CLOSED).
//  SeatConfig  – seatmap snapshot with per-seat availability (JSON).
//  Version     – optimistic locking counter for snapshot updates.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Trip struct {
	ID          uint64    // trips.id
	BusID       uint64    // trips.bus_id
	OwnerID     uint64    // trips.owner_id
	Origin      string    // trips.origin
	Destination string    // trips.destination
	DepartsAt   time.Time // trips.departs_at
	Status      string    // trips.status
	SeatConfig  string    // trips.seat_config (JSON)
	Version     uint32    // trips.version
	CreatedAt   time.Time // trips.created_at
	UpdatedAt   time.Time // trips.updated_at
}
