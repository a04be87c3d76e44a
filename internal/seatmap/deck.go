package seatmap

import (
	"fmt"
	"strconv"
	"strings"
)

// LabelScheme selects how rows or columns are labeled.
type LabelScheme string

const (
	LabelAlpha   LabelScheme = "alpha"
	LabelNumeric LabelScheme = "numeric"
)

// SeatType distinguishes ordinary seats from sleeper berths. The values
// mirror the form enum ("1" seat, "2" sleeper).
type SeatType string

const (
	SeatTypeSeat    SeatType = "1"
	SeatTypeSleeper SeatType = "2"
)

// maxAlphaLabels bounds the alphabetic label space. Rows or columns past
// the 26th reuse the last letter instead of erroring; the validated form
// range never reaches this in practice.
const maxAlphaLabels = 26

// Deck holds the layout parameters of one physical deck plus a lazily
// generated, cached seat grid. The grid is a pure function of the layout
// fields, so the cache never goes stale. Decks reconstructed from
// persisted data keep the stored seats (including availability flags)
// instead of regenerating them.
type Deck struct {
	SeatType     SeatType
	TotalColumns int
	ColumnLabel  LabelScheme
	ColumnLayout string
	TotalRows    int
	RowLabel     LabelScheme
	PriceCents   int

	seats []Position
}

// NewDeck builds a deck from its layout scalars. The column layout must
// parse as "L:R"; everything else is clamped rather than rejected since
// the values originate from a constrained input form upstream.
func NewDeck(seatType SeatType, totalColumns int, columnLabel LabelScheme, columnLayout string, totalRows int, rowLabel LabelScheme, priceCents int) (*Deck, error) {
	if _, _, err := ParseColumnLayout(columnLayout); err != nil {
		return nil, err
	}
	return &Deck{
		SeatType:     seatType,
		TotalColumns: totalColumns,
		ColumnLabel:  columnLabel,
		ColumnLayout: columnLayout,
		TotalRows:    totalRows,
		RowLabel:     rowLabel,
		PriceCents:   priceCents,
	}, nil
}

// DeckFromMap rebuilds a deck from its persisted representation. When a
// "seats" array is present the stored seats are kept as-is; otherwise
// the grid is regenerated on first access.
func DeckFromMap(data map[string]any) (*Deck, error) {
	d := &Deck{
		SeatType:    SeatTypeSeat,
		ColumnLabel: LabelAlpha,
		RowLabel:    LabelNumeric,
	}
	if v, ok := stringValue(data["seat_type"]); ok {
		d.SeatType = SeatType(v)
	}
	if v, ok := intValue(data["total_columns"]); ok {
		d.TotalColumns = v
	}
	if v, ok := stringValue(data["column_label"]); ok {
		d.ColumnLabel = LabelScheme(v)
	}
	if v, ok := stringValue(data["column_layout"]); ok {
		d.ColumnLayout = v
	}
	if v, ok := intValue(data["total_rows"]); ok {
		d.TotalRows = v
	}
	if v, ok := stringValue(data["row_label"]); ok {
		d.RowLabel = LabelScheme(v)
	}
	if v, ok := intValue(data["price_per_seat_in_cents"]); ok {
		d.PriceCents = v
	}
	if _, _, err := ParseColumnLayout(d.ColumnLayout); err != nil {
		return nil, err
	}
	if raw, ok := data["seats"].([]any); ok {
		seats := make([]Position, 0, len(raw))
		for _, entry := range raw {
			m, ok := entry.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: seat entry is not an object", ErrMalformedSeatData)
			}
			p, err := PositionFromMap(m)
			if err != nil {
				return nil, err
			}
			seats = append(seats, p)
		}
		d.seats = seats
	}
	return d, nil
}

// ToMap returns the persisted representation of the deck, including the
// nested seat array. Serializing forces generation when the grid has not
// been built yet.
func (d *Deck) ToMap() map[string]any {
	seats := d.Seats()
	rawSeats := make([]any, 0, len(seats))
	for _, s := range seats {
		rawSeats = append(rawSeats, s.ToMap())
	}
	return map[string]any{
		"seat_type":               string(d.SeatType),
		"total_columns":           d.TotalColumns,
		"column_label":            string(d.ColumnLabel),
		"column_layout":           d.ColumnLayout,
		"total_rows":              d.TotalRows,
		"row_label":               string(d.RowLabel),
		"price_per_seat_in_cents": d.PriceCents,
		"seats":                   rawSeats,
	}
}

// WithSeats returns a copy of the deck carrying the given seat slice in
// place of the cached one. Booking flows use it to derive a new snapshot
// after availability changes; the receiver is not modified.
func (d *Deck) WithSeats(seats []Position) *Deck {
	copied := *d
	copied.seats = append([]Position(nil), seats...)
	return &copied
}

// Seats returns the deck's seat grid, generating and caching it on first
// access. Seats come back in row-major order, left block before right
// block; callers rendering layouts rely on that order being stable.
func (d *Deck) Seats() []Position {
	if d.seats == nil {
		d.seats = d.generate()
	}
	return d.seats
}

// generate expands the layout scalars into the concrete grid. Column
// layout "L:R" places seats in columns 1..L and then L+1..L+R; the gap
// between the two blocks is the aisle, for which no seat is emitted.
// Any block column beyond TotalColumns is skipped. The seat identifier
// concatenates row and column labels: the numeric side of the row scheme
// goes first ("3A" for numeric rows, "A3" for alpha rows).
func (d *Deck) generate() []Position {
	left, right, err := ParseColumnLayout(d.ColumnLayout)
	if err != nil {
		// Construction paths validate the layout, so this is unreachable
		// for decks built through NewDeck or DeckFromMap.
		return []Position{}
	}
	seats := make([]Position, 0, d.TotalRows*(left+right))
	for row := 1; row <= d.TotalRows; row++ {
		rowLbl := label(d.RowLabel, row)
		for col := 1; col <= left; col++ {
			if s, ok := d.seatAt(row, col, rowLbl); ok {
				seats = append(seats, s)
			}
		}
		for col := left + 1; col <= left+right; col++ {
			if s, ok := d.seatAt(row, col, rowLbl); ok {
				seats = append(seats, s)
			}
		}
	}
	return seats
}

func (d *Deck) seatAt(row, col int, rowLbl string) (Position, bool) {
	if col > d.TotalColumns {
		return Position{}, false
	}
	colLbl := label(d.ColumnLabel, col)
	number := colLbl + rowLbl
	if d.RowLabel == LabelNumeric {
		number = rowLbl + colLbl
	}
	return Position{
		SeatNumber:  number,
		Row:         row,
		Column:      col,
		RowLabel:    rowLbl,
		ColumnLabel: colLbl,
		IsAvailable: true,
		PriceCents:  d.PriceCents,
	}, true
}

// TotalSeats counts every seat in the deck.
func (d *Deck) TotalSeats() int { return len(d.Seats()) }

// AvailableSeats returns the seats still open for booking.
func (d *Deck) AvailableSeats() []Position {
	out := make([]Position, 0, len(d.Seats()))
	for _, s := range d.Seats() {
		if s.IsAvailable {
			out = append(out, s)
		}
	}
	return out
}

// SeatsInRow returns the seats of the given 1-based row.
func (d *Deck) SeatsInRow(row int) []Position {
	out := make([]Position, 0, d.TotalColumns)
	for _, s := range d.Seats() {
		if s.IsInRow(row) {
			out = append(out, s)
		}
	}
	return out
}

// FindSeat looks up a seat by its identifier. The second return value is
// false when no seat matches.
func (d *Deck) FindSeat(number string) (Position, bool) {
	for _, s := range d.Seats() {
		if s.SeatNumber == number {
			return s, true
		}
	}
	return Position{}, false
}

// IsSleeper reports whether the deck carries sleeper berths.
func (d *Deck) IsSleeper() bool { return d.SeatType == SeatTypeSleeper }

// ColumnLayoutDisplay renders the column split for humans, e.g.
// "2:2 (Left: 2, Right: 2)".
func (d *Deck) ColumnLayoutDisplay() string {
	left, right, err := ParseColumnLayout(d.ColumnLayout)
	if err != nil {
		return d.ColumnLayout
	}
	return fmt.Sprintf("%d:%d (Left: %d, Right: %d)", left, right, left, right)
}

// ParseColumnLayout splits an "L:R" column layout into its left and
// right column counts. Anything that is not exactly two integers around
// a single colon fails with ErrInvalidLayoutFormat.
func ParseColumnLayout(layout string) (left, right int, err error) {
	parts := strings.Split(layout, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidLayoutFormat, layout)
	}
	left, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidLayoutFormat, layout)
	}
	right, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidLayoutFormat, layout)
	}
	return left, right, nil
}

// label produces the text for a 1-based row or column index under the
// given scheme. Alphabetic labels are clamped to the 26 letter space:
// index 27 and beyond reuse "Z" rather than extending to "AA".
func label(scheme LabelScheme, index int) string {
	if scheme == LabelAlpha {
		if index > maxAlphaLabels {
			index = maxAlphaLabels
		}
		if index < 1 {
			index = 1
		}
		return string(rune('A' + index - 1))
	}
	return strconv.Itoa(index)
}
