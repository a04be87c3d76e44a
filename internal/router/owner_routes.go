package router // router defines how HTTP routes are registered for the API

import (
	"github.com/iliyamo/bus-seat-reservation/internal/handler"    // owner handlers
	"github.com/iliyamo/bus-seat-reservation/internal/middleware" // JWT + role middlewares
	"github.com/labstack/echo/v4"
)

// RegisterOwner registers OWNER-scoped endpoints under /v1.
// All routes require a valid JWT and OWNER role.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER"),
	)

	// ---- Buses ----
	g.POST("/buses", o.CreateBus)
	g.GET("/buses", o.ListBuses)
	g.GET("/buses/:id", o.GetBus)
	g.PUT("/buses/:id/layout", o.UpdateBusLayout)
	g.DELETE("/buses/:id", o.DeleteBus)

	// ---- Trips ----
	g.POST("/trips", o.OpenTrip)
	g.GET("/trips", o.ListOwnerTrips)
	g.POST("/trips/:id/close", o.CloseTrip)
}
