// Package seatmap generates and queries bus seat layouts.  A compact
// configuration (deck count, row/column counts, labeling scheme, column
// split, per-deck price) is expanded into a concrete, addressable grid of
// seats.  The package is pure: it performs no I/O, keeps no shared state
// and is deterministic for identical inputs.
package seatmap

import "errors"

// ErrInconsistentDeckConfig is returned when the deck type flag and the
// presence of an upper deck disagree (a "2" deck type without an upper
// deck, or a "1" deck type with one). Construction fails; the mismatch
// is never silently corrected.
var ErrInconsistentDeckConfig = errors.New("inconsistent deck configuration")

// ErrMissingRequiredField is returned when a required key is absent from
// a persisted configuration map.
var ErrMissingRequiredField = errors.New("missing required field")

// ErrMalformedSeatData is returned when a persisted seat entry lacks its
// minimal identifying fields (seat_number, row, column).
var ErrMalformedSeatData = errors.New("malformed seat data")

// ErrInvalidLayoutFormat is returned when a column layout string cannot
// be parsed into two integers separated by a colon.
var ErrInvalidLayoutFormat = errors.New("invalid column layout format")
