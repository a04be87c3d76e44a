// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a customer's seat booking is
// successfully committed. It contains enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.
type BookingConfirmedEvent struct {
	BookingID        uint64   `json:"booking_id"`
	UserID           uint64   `json:"user_id"`
	TripID           uint64   `json:"trip_id"`
	BusID            uint64   `json:"bus_id"`
	BusName          string   `json:"bus_name"`
	Origin           string   `json:"origin"`
	Destination      string   `json:"destination"`
	DepartsAt        string   `json:"departs_at"`
	SeatNumbers      []string `json:"seats"`
	TotalAmountCents int      `json:"total_amount_cents"`
	ConfirmedAt      string   `json:"confirmed_at"`
}
