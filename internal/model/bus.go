package model

import "time"

// Bus represents a vehicle owned by an operator.  The seat layout is
// described by a seatmap configuration stored as a JSON document in the
// `seat_config` column; the engine in internal/seatmap turns that
// document into a concrete seat grid on demand.  TotalSeats is a
// denormalized copy of the generated seat count used for listings and
// drift checks.
//
// Fields:
//  ID          – primary key identifier.
//  OwnerID     – user ID of the operating owner.
//  Name        – display name of the bus (unique per owner).
//  PlateNumber – registration plate of the vehicle.
//  SeatConfig  – persisted seatmap configuration (JSON document).
//  TotalSeats  – seat count derived from the configuration.
//  IsActive    – whether the bus is in service.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Bus struct {
	ID          uint64    // buses.id
	OwnerID     uint64    // buses.owner_id
	Name        string    // buses.name
	PlateNumber string    // buses.plate_number
	SeatConfig  string    // buses.seat_config (JSON)
	TotalSeats  int       // buses.total_seats
	IsActive    bool      // buses.is_active
	CreatedAt   time.Time // buses.created_at
	UpdatedAt   time.Time // buses.updated_at
}
