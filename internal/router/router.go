package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/bus-seat-reservation/internal/handler"
	"github.com/iliyamo/bus-seat-reservation/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check
// used by load balancers and monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes and the authenticated
// /v1/me endpoint.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	// Both roles may ask who they are.
	auth := e.Group("/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER", "CUSTOMER"),
	)
	auth.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints: bus
// layouts, seat lists and open trips.  The optional middleware slice
// carries the response cache and the rate limiter so guest traffic is
// both cheap and bounded.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)
	// Grouped seat map of a bus: decks, rows and pretty strings so
	// guests can preview the coach before picking a trip.
	g.GET("/buses/:id/layout", p.GetBusLayout)
	// Flat seat list of a bus with ?deck=, ?row=, ?column= and
	// ?available= filters.
	g.GET("/buses/:id/seats", p.GetBusSeats)
	// Trips currently on sale, soonest departure first.
	g.GET("/trips/open", p.ListOpenTrips)
	// Per-trip seat availability derived from the trip snapshot.
	g.GET("/trips/:id/seats", p.GetTripSeats)
}
