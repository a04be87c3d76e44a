package seatmap

import (
	"errors"
	"testing"
)

func mustDeck(t *testing.T, seatType SeatType, cols int, colLabel LabelScheme, layout string, rows int, rowLabel LabelScheme, price int) *Deck {
	t.Helper()
	d, err := NewDeck(seatType, cols, colLabel, layout, rows, rowLabel, price)
	if err != nil {
		t.Fatalf("NewDeck failed: %v", err)
	}
	return d
}

func TestDeckGeneration(t *testing.T) {
	t.Parallel()

	t.Run("2:2 layout over 5 rows yields 20 seats", func(t *testing.T) {
		d := mustDeck(t, SeatTypeSeat, 4, LabelAlpha, "2:2", 5, LabelNumeric, 2500)
		seats := d.Seats()
		if len(seats) != 20 {
			t.Fatalf("expected 20 seats, got %d", len(seats))
		}
		for row := 1; row <= 5; row++ {
			if got := len(d.SeatsInRow(row)); got != 4 {
				t.Fatalf("expected 4 seats in row %d, got %d", row, got)
			}
		}
		// Row-major, left block then right block.
		want := []string{"1A", "1B", "1C", "1D"}
		for i, num := range want {
			if seats[i].SeatNumber != num {
				t.Fatalf("expected seat %d to be %q, got %q", i, num, seats[i].SeatNumber)
			}
		}
		last := seats[len(seats)-1]
		if last.SeatNumber != "5D" || last.Row != 5 || last.Column != 4 {
			t.Fatalf("unexpected last seat %+v", last)
		}
	})

	t.Run("every generated seat is available and priced", func(t *testing.T) {
		d := mustDeck(t, SeatTypeSeat, 4, LabelAlpha, "2:2", 5, LabelNumeric, 1500)
		for _, s := range d.Seats() {
			if !s.IsAvailable {
				t.Fatalf("seat %s generated unavailable", s.SeatNumber)
			}
			if s.PriceCents != 1500 {
				t.Fatalf("seat %s has price %d, want 1500", s.SeatNumber, s.PriceCents)
			}
		}
	})

	t.Run("numeric rows put the row label first", func(t *testing.T) {
		d := mustDeck(t, SeatTypeSeat, 4, LabelAlpha, "2:2", 5, LabelNumeric, 0)
		s, ok := d.FindSeat("3A")
		if !ok {
			t.Fatalf("expected to find seat 3A")
		}
		if s.Row != 3 || s.ColumnLabel != "A" {
			t.Fatalf("unexpected seat %+v", s)
		}
	})

	t.Run("alpha rows put the column label first", func(t *testing.T) {
		d := mustDeck(t, SeatTypeSeat, 4, LabelNumeric, "2:2", 5, LabelAlpha, 0)
		s, ok := d.FindSeat("2C")
		if !ok {
			t.Fatalf("expected to find seat 2C")
		}
		if s.RowLabel != "C" || s.ColumnLabel != "2" {
			t.Fatalf("unexpected seat %+v", s)
		}
	})

	t.Run("layout columns beyond total_columns are skipped", func(t *testing.T) {
		d := mustDeck(t, SeatTypeSeat, 3, LabelAlpha, "2:2", 2, LabelNumeric, 0)
		if got := d.TotalSeats(); got != 6 {
			t.Fatalf("expected 6 seats (3 per row), got %d", got)
		}
		if _, ok := d.FindSeat("1D"); ok {
			t.Fatalf("column 4 exceeds total_columns and must produce no seat")
		}
	})

	t.Run("alpha labels clamp at 26 without erroring", func(t *testing.T) {
		d := mustDeck(t, SeatTypeSeat, 2, LabelNumeric, "1:1", 30, LabelAlpha, 0)
		labels := map[string]bool{}
		for _, s := range d.Seats() {
			labels[s.RowLabel] = true
		}
		if len(labels) > 26 {
			t.Fatalf("expected at most 26 distinct row labels, got %d", len(labels))
		}
		// Rows 26..30 all reuse the last letter.
		for _, s := range d.SeatsInRow(30) {
			if s.RowLabel != "Z" {
				t.Fatalf("expected row 30 to reuse label Z, got %q", s.RowLabel)
			}
		}
	})

	t.Run("generation is deterministic", func(t *testing.T) {
		a := mustDeck(t, SeatTypeSeat, 4, LabelAlpha, "2:2", 5, LabelNumeric, 1000)
		b := mustDeck(t, SeatTypeSeat, 4, LabelAlpha, "2:2", 5, LabelNumeric, 1000)
		as, bs := a.Seats(), b.Seats()
		if len(as) != len(bs) {
			t.Fatalf("seat counts differ: %d vs %d", len(as), len(bs))
		}
		for i := range as {
			if as[i] != bs[i] {
				t.Fatalf("seat %d differs: %+v vs %+v", i, as[i], bs[i])
			}
		}
	})
}

func TestParseColumnLayout(t *testing.T) {
	t.Parallel()

	left, right, err := ParseColumnLayout("2:3")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if left != 2 || right != 3 {
		t.Fatalf("expected 2:3, got %d:%d", left, right)
	}

	for _, bad := range []string{"", "2", "2:2:2", "a:2", "2:b"} {
		if _, _, err := ParseColumnLayout(bad); !errors.Is(err, ErrInvalidLayoutFormat) {
			t.Fatalf("expected ErrInvalidLayoutFormat for %q, got %v", bad, err)
		}
	}

	if _, err := NewDeck(SeatTypeSeat, 4, LabelAlpha, "2-2", 5, LabelNumeric, 0); !errors.Is(err, ErrInvalidLayoutFormat) {
		t.Fatalf("expected NewDeck to reject malformed layout, got %v", err)
	}
}

func TestDeckQueries(t *testing.T) {
	t.Parallel()

	t.Run("available seats excludes booked ones", func(t *testing.T) {
		d := mustDeck(t, SeatTypeSeat, 4, LabelAlpha, "2:2", 2, LabelNumeric, 0)
		seats := append([]Position(nil), d.Seats()...)
		seats[0] = seats[0].WithAvailability(false)
		booked := d.WithSeats(seats)
		if got := len(booked.AvailableSeats()); got != 7 {
			t.Fatalf("expected 7 available seats, got %d", got)
		}
		if got := len(d.AvailableSeats()); got != 8 {
			t.Fatalf("original deck changed: expected 8 available, got %d", got)
		}
	})

	t.Run("find seat misses return not found", func(t *testing.T) {
		d := mustDeck(t, SeatTypeSeat, 4, LabelAlpha, "2:2", 5, LabelNumeric, 0)
		if _, ok := d.FindSeat("9Z"); ok {
			t.Fatalf("expected 9Z to be absent")
		}
	})

	t.Run("sleeper predicate", func(t *testing.T) {
		seat := mustDeck(t, SeatTypeSeat, 4, LabelAlpha, "2:2", 5, LabelNumeric, 0)
		sleeper := mustDeck(t, SeatTypeSleeper, 4, LabelAlpha, "2:2", 5, LabelNumeric, 0)
		if seat.IsSleeper() || !sleeper.IsSleeper() {
			t.Fatalf("IsSleeper misbehaved")
		}
	})

	t.Run("column layout display", func(t *testing.T) {
		d := mustDeck(t, SeatTypeSeat, 4, LabelAlpha, "2:2", 5, LabelNumeric, 0)
		if got := d.ColumnLayoutDisplay(); got != "2:2 (Left: 2, Right: 2)" {
			t.Fatalf("unexpected display %q", got)
		}
	})
}

func TestDeckFromMap(t *testing.T) {
	t.Parallel()

	t.Run("keeps stored seats instead of regenerating", func(t *testing.T) {
		d, err := DeckFromMap(map[string]any{
			"seat_type":               "1",
			"total_columns":           float64(4),
			"column_label":            "alpha",
			"column_layout":           "2:2",
			"total_rows":              float64(5),
			"row_label":               "numeric",
			"price_per_seat_in_cents": float64(2500),
			"seats": []any{
				map[string]any{"seat_number": "1A", "row": float64(1), "column": float64(1), "is_available": false, "price_in_cents": float64(2500)},
			},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := d.TotalSeats(); got != 1 {
			t.Fatalf("expected the single stored seat, got %d", got)
		}
		if len(d.AvailableSeats()) != 0 {
			t.Fatalf("stored availability flag was lost")
		}
	})

	t.Run("propagates malformed seat entries", func(t *testing.T) {
		_, err := DeckFromMap(map[string]any{
			"column_layout": "2:2",
			"seats":         []any{map[string]any{"row": 1, "column": 1}},
		})
		if !errors.Is(err, ErrMalformedSeatData) {
			t.Fatalf("expected ErrMalformedSeatData, got %v", err)
		}
	})

	t.Run("round trips through ToMap", func(t *testing.T) {
		orig := mustDeck(t, SeatTypeSleeper, 4, LabelAlpha, "2:2", 5, LabelNumeric, 3000)
		back, err := DeckFromMap(orig.ToMap())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if back.SeatType != orig.SeatType || back.TotalColumns != orig.TotalColumns ||
			back.ColumnLayout != orig.ColumnLayout || back.TotalRows != orig.TotalRows ||
			back.PriceCents != orig.PriceCents {
			t.Fatalf("scalar fields changed: %+v vs %+v", back, orig)
		}
		os, bs := orig.Seats(), back.Seats()
		if len(os) != len(bs) {
			t.Fatalf("seat counts differ: %d vs %d", len(os), len(bs))
		}
		for i := range os {
			if os[i] != bs[i] {
				t.Fatalf("seat %d differs: %+v vs %+v", i, os[i], bs[i])
			}
		}
	})
}
