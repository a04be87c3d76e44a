// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios, e.g.
// ErrConflict signals that an operation cannot proceed due to
// conflicting state (a seat snapshot claimed by a concurrent request).
package repository

import "errors"

// ErrConflict is returned when an update cannot be performed because
// of conflicting state, such as a trip snapshot that changed under an
// optimistic version check. Handlers should translate this into an
// HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrBusNotFound is returned when a bus lookup yields no rows.
var ErrBusNotFound = errors.New("bus not found")

// ErrTripNotFound is returned when a trip lookup yields no rows.
var ErrTripNotFound = errors.New("trip not found")
