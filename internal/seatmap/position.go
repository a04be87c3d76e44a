package seatmap

import (
	"fmt"
	"strconv"
)

// Position is a single seat in a deck. SeatNumber is the human facing
// identifier and is unique within its deck; Row and Column are 1-based
// grid coordinates. A Position is never mutated after construction -
// a changed-availability seat is a new value, not an in-place edit.
type Position struct {
	SeatNumber  string
	Row         int
	Column      int
	RowLabel    string
	ColumnLabel string
	IsAvailable bool
	PriceCents  int
}

// PositionFromMap rebuilds a Position from a persisted seat entry. The
// entry must carry seat_number, row and column; is_available defaults to
// true and price_in_cents to 0 when absent. Numeric values may arrive as
// float64 (encoding/json), int or a numeric string.
func PositionFromMap(data map[string]any) (Position, error) {
	num, ok := stringValue(data["seat_number"])
	if !ok || num == "" {
		return Position{}, fmt.Errorf("%w: seat_number", ErrMalformedSeatData)
	}
	row, ok := intValue(data["row"])
	if !ok {
		return Position{}, fmt.Errorf("%w: row", ErrMalformedSeatData)
	}
	col, ok := intValue(data["column"])
	if !ok {
		return Position{}, fmt.Errorf("%w: column", ErrMalformedSeatData)
	}
	p := Position{
		SeatNumber:  num,
		Row:         row,
		Column:      col,
		IsAvailable: true,
	}
	if v, ok := stringValue(data["row_label"]); ok {
		p.RowLabel = v
	}
	if v, ok := stringValue(data["column_label"]); ok {
		p.ColumnLabel = v
	}
	if v, ok := boolValue(data["is_available"]); ok {
		p.IsAvailable = v
	}
	if v, ok := intValue(data["price_in_cents"]); ok {
		p.PriceCents = v
	}
	return p, nil
}

// ToMap returns the flat persisted representation of the seat. It is the
// exact inverse of PositionFromMap.
func (p Position) ToMap() map[string]any {
	return map[string]any{
		"seat_number":    p.SeatNumber,
		"row":            p.Row,
		"column":         p.Column,
		"row_label":      p.RowLabel,
		"column_label":   p.ColumnLabel,
		"is_available":   p.IsAvailable,
		"price_in_cents": p.PriceCents,
	}
}

// IsInRow reports whether the seat sits in the given 1-based row.
func (p Position) IsInRow(n int) bool { return p.Row == n }

// IsInColumn reports whether the seat sits in the given 1-based column.
func (p Position) IsInColumn(n int) bool { return p.Column == n }

// WithAvailability returns a copy of the seat with the availability flag
// set. The receiver is left untouched; booking flows use this to derive
// updated snapshots.
func (p Position) WithAvailability(available bool) Position {
	p.IsAvailable = available
	return p
}

// FormattedPrice renders the seat price as a currency string with two
// decimal places, e.g. "USD 25.00".
func (p Position) FormattedPrice(currency string) string {
	return fmt.Sprintf("%s %.2f", currency, float64(p.PriceCents)/100)
}

// intValue coerces a decoded map value into an int. JSON decoding yields
// float64 for every number, so that case matters most; ints and numeric
// strings are accepted as well.
func intValue(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case uint64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n, true
		}
	}
	return 0, false
}

func stringValue(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	return "", false
}

func boolValue(v any) (bool, bool) {
	if b, ok := v.(bool); ok {
		return b, true
	}
	return false, false
}
