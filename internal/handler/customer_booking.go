package handler // handler package contains customer booking handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/iliyamo/bus-seat-reservation/internal/model"
	"github.com/iliyamo/bus-seat-reservation/internal/queue"
	"github.com/iliyamo/bus-seat-reservation/internal/repository"
	"github.com/iliyamo/bus-seat-reservation/internal/seatmap"
	queue_publisher "github.com/iliyamo/bus-seat-reservation/internal/service"
	"github.com/labstack/echo/v4"
)

// Booking failures distinguished for status codes: an unknown seat is
// the caller's mistake, a taken seat is a race lost to another booking.
var (
	errSeatUnknown = errors.New("unknown seat")
	errSeatTaken   = errors.New("seat already taken")
)

// CustomerHandler bundles the repositories needed to book seats and
// list a customer's bookings.
type CustomerHandler struct {
	TripRepo    *repository.TripRepo
	BookingRepo *repository.BookingRepo
	BusRepo     *repository.BusRepo
}

// NewCustomerHandler constructs a CustomerHandler and panics if any
// repository is nil.
func NewCustomerHandler(tripRepo *repository.TripRepo, bookingRepo *repository.BookingRepo, busRepo *repository.BusRepo) *CustomerHandler {
	if tripRepo == nil || bookingRepo == nil || busRepo == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{TripRepo: tripRepo, BookingRepo: bookingRepo, BusRepo: busRepo}
}

// BookSeats handles POST /v1/bookings. The trip's seat snapshot is read
// under a row lock, the requested seats are flipped to unavailable, and
// the snapshot update is guarded by the trip version, so two customers
// cannot claim the same seat.
func (h *CustomerHandler) BookSeats(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		TripID uint64   `json:"trip_id"`
		Seats  []string `json:"seats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.TripID == 0 || len(body.Seats) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "trip_id and at least one seat are required"})
	}
	requested := make([]string, 0, len(body.Seats))
	seen := make(map[string]struct{}, len(body.Seats))
	for _, n := range body.Seats {
		n = strings.ToUpper(strings.TrimSpace(n))
		if n == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat numbers must not be empty"})
		}
		if _, dup := seen[n]; dup {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("seat %s requested twice", n)})
		}
		seen[n] = struct{}{}
		requested = append(requested, n)
	}

	ctx := c.Request().Context()
	tx, err := h.TripRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	defer func() { _ = tx.Rollback() }()

	trip, err := h.TripRepo.GetByIDTx(ctx, tx, body.TripID)
	if err != nil {
		if err == repository.ErrTripNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if trip.Status != "OPEN" {
		return c.JSON(http.StatusConflict, echo.Map{"error": "trip is closed for sale"})
	}
	cfg, err := repository.UnmarshalSeatConfig(trip.SeatConfig)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stored seat snapshot is unreadable"})
	}
	claimed, totalCents, err := claimSeats(cfg, requested)
	if err != nil {
		if errors.Is(err, errSeatUnknown) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	snapshot, err := repository.MarshalSeatConfig(claimed)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not serialize seat snapshot"})
	}
	if err := h.TripRepo.UpdateSeatConfigTx(ctx, tx, trip.ID, snapshot, trip.Version); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat map changed, retry the booking"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	booking := &model.Booking{
		UserID:           userID,
		TripID:           trip.ID,
		Status:           "CONFIRMED",
		TotalAmountCents: totalCents,
	}
	if err := h.BookingRepo.CreateTx(ctx, tx, booking); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking"})
	}
	seatRows := make([]model.BookingSeat, 0, len(requested))
	for _, n := range requested {
		pos, _ := claimed.FindSeat(n)
		seatRows = append(seatRows, model.BookingSeat{
			BookingID:  booking.ID,
			SeatNumber: n,
			PriceCents: pos.PriceCents,
		})
	}
	if err := h.BookingRepo.CreateSeatsBulkTx(ctx, tx, seatRows); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create booking seats"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	// Publish after commit, off the request path. A broker outage never
	// fails a confirmed booking.
	event := queue.BookingConfirmedEvent{
		BookingID:        booking.ID,
		UserID:           userID,
		TripID:           trip.ID,
		BusID:            trip.BusID,
		Origin:           trip.Origin,
		Destination:      trip.Destination,
		DepartsAt:        trip.DepartsAt.UTC().Format(time.RFC3339),
		SeatNumbers:      requested,
		TotalAmountCents: totalCents,
		ConfirmedAt:      time.Now().UTC().Format(time.RFC3339),
	}
	if bus, err := h.BusRepo.GetByID(ctx, trip.BusID); err == nil {
		event.BusName = bus.Name
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingConfirmed(pubCtx, event)
	}()

	return c.JSON(http.StatusCreated, echo.Map{
		"booking_id":         booking.ID,
		"trip_id":            trip.ID,
		"seats":              requested,
		"total_amount_cents": totalCents,
		"status":             booking.Status,
	})
}

// claimSeats flips the requested seat numbers to unavailable and
// returns the rebuilt configuration plus the booking total. Decks are
// values: the claimed configuration is a fresh one, the input is left
// untouched.
func claimSeats(cfg *seatmap.Config, numbers []string) (*seatmap.Config, int, error) {
	pending := make(map[string]struct{}, len(numbers))
	for _, n := range numbers {
		pending[n] = struct{}{}
	}
	total := 0
	flip := func(d *seatmap.Deck) (*seatmap.Deck, error) {
		if d == nil {
			return nil, nil
		}
		src := d.Seats()
		seats := make([]seatmap.Position, len(src))
		copy(seats, src)
		changed := false
		for i := range seats {
			if _, ok := pending[seats[i].SeatNumber]; !ok {
				continue
			}
			if !seats[i].IsAvailable {
				return nil, fmt.Errorf("%w: %s", errSeatTaken, seats[i].SeatNumber)
			}
			total += seats[i].PriceCents
			seats[i] = seats[i].WithAvailability(false)
			delete(pending, seats[i].SeatNumber)
			changed = true
		}
		if !changed {
			return d, nil
		}
		return d.WithSeats(seats), nil
	}
	lower, err := flip(cfg.Lower)
	if err != nil {
		return nil, 0, err
	}
	upper, err := flip(cfg.Upper)
	if err != nil {
		return nil, 0, err
	}
	for n := range pending {
		return nil, 0, fmt.Errorf("%w: %s", errSeatUnknown, n)
	}
	claimed, err := seatmap.NewConfig(cfg.DeckType, lower, upper)
	if err != nil {
		return nil, 0, err
	}
	return claimed, total, nil
}

// MyBookings handles GET /v1/bookings and returns the caller's bookings
// with route and seat details, newest first.
func (h *CustomerHandler) MyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.BookingRepo.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items := make([]echo.Map, 0, len(details))
	for _, d := range details {
		items = append(items, echo.Map{
			"id":                 d.Booking.ID,
			"trip_id":            d.Booking.TripID,
			"status":             d.Booking.Status,
			"total_amount_cents": d.Booking.TotalAmountCents,
			"origin":             d.Origin,
			"destination":        d.Destination,
			"departs_at":         d.DepartsAt,
			"seats":              d.SeatNumbers,
			"created_at":         d.Booking.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(items), "items": items})
}
