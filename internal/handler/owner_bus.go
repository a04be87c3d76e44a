package handler // handler package contains owner-specific bus handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/iliyamo/bus-seat-reservation/internal/model"
	"github.com/iliyamo/bus-seat-reservation/internal/repository"
	"github.com/iliyamo/bus-seat-reservation/internal/seatmap"
	"github.com/labstack/echo/v4"
)

// OwnerHandler bundles repositories for owners to manage their fleet.
type OwnerHandler struct {
	BusRepo  *repository.BusRepo
	TripRepo *repository.TripRepo
}

// NewOwnerHandler constructs a new OwnerHandler and panics if any
// dependency is nil.
func NewOwnerHandler(busRepo *repository.BusRepo, tripRepo *repository.TripRepo) *OwnerHandler {
	if busRepo == nil || tripRepo == nil {
		panic("nil repository passed to NewOwnerHandler")
	}
	return &OwnerHandler{BusRepo: busRepo, TripRepo: tripRepo}
}

// seatmapErrorResponse translates engine construction errors into HTTP
// responses. Layout mistakes are the caller's fault; anything else is
// unexpected.
func seatmapErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, seatmap.ErrInvalidLayoutFormat),
		errors.Is(err, seatmap.ErrInconsistentDeckConfig),
		errors.Is(err, seatmap.ErrMissingRequiredField),
		errors.Is(err, seatmap.ErrMalformedSeatData):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not build seat layout"})
}

// CreateBus handles POST /v1/buses. The request carries the bus identity
// plus the flat seat-layout form fields collected by the admin UI; the
// seatmap engine expands those fields into the full configuration that
// is persisted on the bus.
func (h *OwnerHandler) CreateBus(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Name        string            `json:"name"`
		PlateNumber string            `json:"plate_number"`
		Layout      map[string]string `json:"layout"`
		TotalSeats  *int              `json:"total_seats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.PlateNumber) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and plate_number are required"})
	}
	if body.Layout == nil {
		body.Layout = map[string]string{}
	}
	cfg, err := seatmap.ConfigFromForm(body.Layout)
	if err != nil {
		return seatmapErrorResponse(c, err)
	}
	// The form may carry a denormalized seat total; reject drift early
	// instead of persisting a layout that disagrees with it.
	if body.TotalSeats != nil && !cfg.ValidateTotalSeats(*body.TotalSeats) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":     "total_seats does not match the generated layout",
			"generated": cfg.TotalSeats(),
		})
	}
	doc, err := repository.MarshalSeatConfig(cfg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not serialize seat layout"})
	}
	bus := &model.Bus{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(body.Name),
		PlateNumber: strings.TrimSpace(body.PlateNumber),
		SeatConfig:  doc,
		TotalSeats:  cfg.TotalSeats(),
	}
	if err := h.BusRepo.Create(c.Request().Context(), bus); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create bus"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"bus":    busResponse(bus),
		"layout": layoutSummary(cfg),
	})
}

// ListBuses handles GET /v1/buses and returns the owner's fleet.
func (h *OwnerHandler) ListBuses(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	buses, err := h.BusRepo.ListByOwner(c.Request().Context(), ownerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items := make([]echo.Map, 0, len(buses))
	for i := range buses {
		items = append(items, busResponse(&buses[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(items), "items": items})
}

// GetBus handles GET /v1/buses/:id for the owning user. The stored
// layout is echoed back both as the editable form fields and as a
// summary.
func (h *OwnerHandler) GetBus(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	bus, err := h.BusRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID)
	if err != nil {
		if err == repository.ErrBusNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bus not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	cfg, err := repository.UnmarshalSeatConfig(bus.SeatConfig)
	if err != nil {
		// A stored document that no longer parses means no seat map is
		// available; the bus identity is still returned.
		return c.JSON(http.StatusOK, echo.Map{"bus": busResponse(bus), "layout": nil})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"bus":    busResponse(bus),
		"form":   cfg.ToForm(),
		"layout": layoutSummary(cfg),
	})
}

// UpdateBusLayout handles PUT /v1/buses/:id/layout. The layout is
// replaced wholesale: a configuration is a value, so any change builds
// a new one from the submitted form fields.
func (h *OwnerHandler) UpdateBusLayout(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.BusRepo.GetByIDAndOwner(c.Request().Context(), id, ownerID); err != nil {
		if err == repository.ErrBusNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bus not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var body struct {
		Layout map[string]string `json:"layout"`
	}
	if err := c.Bind(&body); err != nil || body.Layout == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "layout is required"})
	}
	cfg, err := seatmap.ConfigFromForm(body.Layout)
	if err != nil {
		return seatmapErrorResponse(c, err)
	}
	doc, err := repository.MarshalSeatConfig(cfg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not serialize seat layout"})
	}
	if err := h.BusRepo.UpdateSeatConfig(c.Request().Context(), id, doc, cfg.TotalSeats()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update layout"})
	}
	return c.JSON(http.StatusOK, echo.Map{"layout": layoutSummary(cfg)})
}

// DeleteBus handles DELETE /v1/buses/:id and deactivates the bus.
func (h *OwnerHandler) DeleteBus(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.BusRepo.Deactivate(c.Request().Context(), id, ownerID); err != nil {
		if err == repository.ErrBusNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bus not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.NoContent(http.StatusNoContent)
}

func busResponse(b *model.Bus) echo.Map {
	return echo.Map{
		"id":           b.ID,
		"name":         b.Name,
		"plate_number": b.PlateNumber,
		"total_seats":  b.TotalSeats,
		"is_active":    b.IsActive,
		"created_at":   b.CreatedAt,
		"updated_at":   b.UpdatedAt,
	}
}

// layoutSummary condenses a configuration for list/detail responses:
// per-deck scalars plus bus-wide totals and the price range.
func layoutSummary(cfg *seatmap.Config) echo.Map {
	decks := []echo.Map{deckSummary("lower", cfg.Lower)}
	if cfg.Upper != nil {
		decks = append(decks, deckSummary("upper", cfg.Upper))
	}
	return echo.Map{
		"deck_type":       string(cfg.DeckType),
		"double_deck":     cfg.IsDoubleDeck(),
		"decks":           decks,
		"total_seats":     cfg.TotalSeats(),
		"base_price":      cfg.BasePriceCents(),
		"max_price":       cfg.MaxPriceCents(),
		"prices_in_cents": cfg.AllPricesCents(),
	}
}

func deckSummary(name string, d *seatmap.Deck) echo.Map {
	return echo.Map{
		"name":          name,
		"seat_type":     string(d.SeatType),
		"sleeper":       d.IsSleeper(),
		"total_rows":    d.TotalRows,
		"total_columns": d.TotalColumns,
		"column_layout": d.ColumnLayoutDisplay(),
		"total_seats":   d.TotalSeats(),
		"price_cents":   d.PriceCents,
	}
}
