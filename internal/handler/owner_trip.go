package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/iliyamo/bus-seat-reservation/internal/model"
	"github.com/iliyamo/bus-seat-reservation/internal/repository"
	"github.com/labstack/echo/v4"
)

// OpenTrip handles POST /v1/trips. It snapshots the bus seat
// configuration into the new trip so later layout edits on the bus do
// not affect departures already on sale.
func (h *OwnerHandler) OpenTrip(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		BusID       uint64 `json:"bus_id"`
		Origin      string `json:"origin"`
		Destination string `json:"destination"`
		DepartsAt   string `json:"departs_at"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.BusID == 0 || body.Origin == "" || body.Destination == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bus_id, origin and destination are required"})
	}
	departsAt, err := time.Parse(time.RFC3339, body.DepartsAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "departs_at must be RFC3339"})
	}
	if departsAt.Before(time.Now()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "departs_at must be in the future"})
	}
	bus, err := h.BusRepo.GetByIDAndOwner(c.Request().Context(), body.BusID, ownerID)
	if err != nil {
		if err == repository.ErrBusNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bus not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !bus.IsActive {
		return c.JSON(http.StatusConflict, echo.Map{"error": "bus is deactivated"})
	}
	// Round-trip the stored layout so the snapshot starts from a document
	// the engine accepts; a bus with a broken document cannot go on sale.
	cfg, err := repository.UnmarshalSeatConfig(bus.SeatConfig)
	if err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "bus has no valid seat layout"})
	}
	snapshot, err := repository.MarshalSeatConfig(cfg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not snapshot seat layout"})
	}
	trip := &model.Trip{
		BusID:       bus.ID,
		OwnerID:     ownerID,
		Origin:      body.Origin,
		Destination: body.Destination,
		DepartsAt:   departsAt,
		Status:      "OPEN",
		SeatConfig:  snapshot,
	}
	if err := h.TripRepo.Create(c.Request().Context(), trip); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create trip"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"trip":            tripResponse(trip),
		"available_seats": len(cfg.AvailableSeats()),
	})
}

// ListOwnerTrips handles GET /v1/trips and returns the owner's trips,
// newest first.
func (h *OwnerHandler) ListOwnerTrips(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	trips, err := h.TripRepo.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items := make([]echo.Map, 0, len(trips))
	for i := range trips {
		items = append(items, tripResponse(&trips[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(items), "items": items})
}

// CloseTrip handles POST /v1/trips/:id/close and takes the trip off
// sale. Existing bookings are untouched.
func (h *OwnerHandler) CloseTrip(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.TripRepo.Close(c.Request().Context(), id, ownerID); err != nil {
		if err == repository.ErrTripNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": "CLOSED"})
}

func tripResponse(t *model.Trip) echo.Map {
	return echo.Map{
		"id":          t.ID,
		"bus_id":      t.BusID,
		"origin":      t.Origin,
		"destination": t.Destination,
		"departs_at":  t.DepartsAt,
		"status":      t.Status,
		"created_at":  t.CreatedAt,
	}
}
