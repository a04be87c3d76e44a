package handler // handler package contains public browse handlers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/iliyamo/bus-seat-reservation/internal/repository"
	"github.com/iliyamo/bus-seat-reservation/internal/seatmap"
	"github.com/labstack/echo/v4"
)

// Seat-filter validation errors surfaced as 400 responses.
var (
	errBadDeckFilter      = errors.New("deck must be lower or upper")
	errBadRowFilter       = errors.New("row must be a positive integer")
	errBadColumnFilter    = errors.New("column must be a positive integer")
	errBadAvailableFilter = errors.New("available must be true or false")
)

// PublicHandler serves the unauthenticated browse endpoints: bus
// layouts, seat lists and open trips.
type PublicHandler struct {
	BusRepo  *repository.BusRepo
	TripRepo *repository.TripRepo
	Currency string
}

// NewPublicHandler constructs a PublicHandler and panics if any
// repository is nil.
func NewPublicHandler(busRepo *repository.BusRepo, tripRepo *repository.TripRepo, currency string) *PublicHandler {
	if busRepo == nil || tripRepo == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	if currency == "" {
		currency = "USD"
	}
	return &PublicHandler{BusRepo: busRepo, TripRepo: tripRepo, Currency: currency}
}

// GetBusLayout handles GET /v1/buses/:id/layout and returns a grouped
// view of the bus seat map: per deck, per row, with a pretty string per
// row for display.
func (h *PublicHandler) GetBusLayout(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	bus, err := h.BusRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrBusNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bus not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !bus.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "bus not found"})
	}
	cfg, err := repository.UnmarshalSeatConfig(bus.SeatConfig)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stored seat layout is unreadable"})
	}
	decks := []echo.Map{deckLayout("lower", cfg.Lower)}
	if cfg.Upper != nil {
		decks = append(decks, deckLayout("upper", cfg.Upper))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"bus_id":      bus.ID,
		"name":        bus.Name,
		"deck_type":   string(cfg.DeckType),
		"total_seats": cfg.TotalSeats(),
		"decks":       decks,
	})
}

// deckLayout groups one deck's seats per row and builds a pretty string
// like "1: 1A, 1B | 1C, 1D" per row, splitting at the aisle.
func deckLayout(name string, d *seatmap.Deck) echo.Map {
	left, _, err := seatmap.ParseColumnLayout(d.ColumnLayout)
	if err != nil {
		left = d.TotalColumns
	}
	type rowOut struct {
		Row     int      `json:"row"`
		Label   string   `json:"row_label"`
		Numbers []string `json:"numbers"`
	}
	rowsOut := make([]rowOut, 0, d.TotalRows)
	pretty := make([]string, 0, d.TotalRows)
	for row := 1; row <= d.TotalRows; row++ {
		seats := d.SeatsInRow(row)
		sort.Slice(seats, func(i, j int) bool { return seats[i].Column < seats[j].Column })
		numbers := make([]string, 0, len(seats))
		var b strings.Builder
		label := ""
		for i, s := range seats {
			if label == "" {
				label = s.RowLabel
				b.WriteString(label)
				b.WriteString(": ")
			}
			if i > 0 {
				if seats[i-1].Column <= left && s.Column > left {
					b.WriteString(" | ")
				} else {
					b.WriteString(", ")
				}
			}
			b.WriteString(s.SeatNumber)
			numbers = append(numbers, s.SeatNumber)
		}
		rowsOut = append(rowsOut, rowOut{Row: row, Label: label, Numbers: numbers})
		pretty = append(pretty, b.String())
	}
	return echo.Map{
		"deck":          name,
		"seat_type":     string(d.SeatType),
		"sleeper":       d.IsSleeper(),
		"column_layout": d.ColumnLayoutDisplay(),
		"rows":          rowsOut,
		"pretty":        pretty,
	}
}

// GetBusSeats handles GET /v1/buses/:id/seats and returns a flat list
// of seat positions, optionally filtered by deck, row, column and
// availability.
func (h *PublicHandler) GetBusSeats(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	bus, err := h.BusRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrBusNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bus not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !bus.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "bus not found"})
	}
	cfg, err := repository.UnmarshalSeatConfig(bus.SeatConfig)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stored seat layout is unreadable"})
	}
	seats, err := h.filteredSeats(c, cfg)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"bus_id": bus.ID,
		"count":  len(seats),
		"items":  seats,
	})
}

// GetTripSeats handles GET /v1/trips/:id/seats. Availability comes from
// the trip's own snapshot, so seats claimed by earlier bookings show as
// taken.
func (h *PublicHandler) GetTripSeats(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	trip, err := h.TripRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrTripNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "trip not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	cfg, err := repository.UnmarshalSeatConfig(trip.SeatConfig)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stored seat snapshot is unreadable"})
	}
	seats, err := h.filteredSeats(c, cfg)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"trip_id":         trip.ID,
		"status":          trip.Status,
		"departs_at":      trip.DepartsAt,
		"total_seats":     cfg.TotalSeats(),
		"available_seats": len(cfg.AvailableSeats()),
		"count":           len(seats),
		"items":           seats,
	})
}

// ListOpenTrips handles GET /v1/trips/open and returns trips on sale,
// soonest first, with their remaining availability.
func (h *PublicHandler) ListOpenTrips(c echo.Context) error {
	trips, err := h.TripRepo.ListOpen(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items := make([]echo.Map, 0, len(trips))
	for i := range trips {
		t := &trips[i]
		item := tripResponse(t)
		if cfg, err := repository.UnmarshalSeatConfig(t.SeatConfig); err == nil {
			item["total_seats"] = cfg.TotalSeats()
			item["available_seats"] = len(cfg.AvailableSeats())
			item["base_price"] = cfg.BasePriceCents()
		}
		items = append(items, item)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(items), "items": items})
}

// filteredSeats flattens a configuration to response rows, applying the
// deck / row / column / available query filters.
func (h *PublicHandler) filteredSeats(c echo.Context, cfg *seatmap.Config) ([]echo.Map, error) {
	deckFilter := strings.ToLower(strings.TrimSpace(c.QueryParam("deck")))
	switch deckFilter {
	case "", "lower", "upper":
	default:
		return nil, errBadDeckFilter
	}
	rowFilter := 0
	if v := c.QueryParam("row"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, errBadRowFilter
		}
		rowFilter = n
	}
	colFilter := 0
	if v := c.QueryParam("column"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, errBadColumnFilter
		}
		colFilter = n
	}
	availFilter := ""
	if v := strings.ToLower(strings.TrimSpace(c.QueryParam("available"))); v != "" {
		switch v {
		case "true", "1":
			availFilter = "true"
		case "false", "0":
			availFilter = "false"
		default:
			return nil, errBadAvailableFilter
		}
	}

	type deckSeats struct {
		name  string
		seats []seatmap.Position
	}
	sources := make([]deckSeats, 0, 2)
	if deckFilter == "" || deckFilter == "lower" {
		sources = append(sources, deckSeats{"lower", cfg.SeatsInDeck("lower")})
	}
	if (deckFilter == "" || deckFilter == "upper") && cfg.Upper != nil {
		sources = append(sources, deckSeats{"upper", cfg.SeatsInDeck("upper")})
	}
	items := make([]echo.Map, 0, cfg.TotalSeats())
	for _, src := range sources {
		for _, s := range src.seats {
			if rowFilter > 0 && !s.IsInRow(rowFilter) {
				continue
			}
			if colFilter > 0 && !s.IsInColumn(colFilter) {
				continue
			}
			if availFilter == "true" && !s.IsAvailable {
				continue
			}
			if availFilter == "false" && s.IsAvailable {
				continue
			}
			items = append(items, echo.Map{
				"deck":         src.name,
				"seat_number":  s.SeatNumber,
				"row":          s.Row,
				"column":       s.Column,
				"row_label":    s.RowLabel,
				"column_label": s.ColumnLabel,
				"is_available": s.IsAvailable,
				"price_cents":  s.PriceCents,
				"price":        s.FormattedPrice(h.Currency),
			})
		}
	}
	return items, nil
}
