package seatmap

import (
	"errors"
	"testing"
)

func TestPositionFromMap(t *testing.T) {
	t.Parallel()

	t.Run("rebuilds a full seat entry", func(t *testing.T) {
		p, err := PositionFromMap(map[string]any{
			"seat_number":    "3A",
			"row":            3,
			"column":         1,
			"row_label":      "3",
			"column_label":   "A",
			"is_available":   false,
			"price_in_cents": 2500,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.SeatNumber != "3A" || p.Row != 3 || p.Column != 1 {
			t.Fatalf("unexpected position %+v", p)
		}
		if p.IsAvailable {
			t.Fatalf("expected seat to be unavailable")
		}
		if p.PriceCents != 2500 {
			t.Fatalf("expected price 2500, got %d", p.PriceCents)
		}
	})

	t.Run("defaults availability and price when absent", func(t *testing.T) {
		p, err := PositionFromMap(map[string]any{
			"seat_number": "1B",
			"row":         1,
			"column":      2,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !p.IsAvailable {
			t.Fatalf("expected availability to default to true")
		}
		if p.PriceCents != 0 {
			t.Fatalf("expected price to default to 0, got %d", p.PriceCents)
		}
	})

	t.Run("accepts json float64 coordinates", func(t *testing.T) {
		p, err := PositionFromMap(map[string]any{
			"seat_number":    "2C",
			"row":            float64(2),
			"column":         float64(3),
			"price_in_cents": float64(1500),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if p.Row != 2 || p.Column != 3 || p.PriceCents != 1500 {
			t.Fatalf("unexpected position %+v", p)
		}
	})

	t.Run("fails when identifying fields are missing", func(t *testing.T) {
		cases := []map[string]any{
			{"row": 1, "column": 1},
			{"seat_number": "1A", "column": 1},
			{"seat_number": "1A", "row": 1},
		}
		for _, data := range cases {
			if _, err := PositionFromMap(data); !errors.Is(err, ErrMalformedSeatData) {
				t.Fatalf("expected ErrMalformedSeatData for %v, got %v", data, err)
			}
		}
	})
}

func TestPositionRoundTrip(t *testing.T) {
	t.Parallel()

	orig := Position{
		SeatNumber:  "5D",
		Row:         5,
		Column:      4,
		RowLabel:    "5",
		ColumnLabel: "D",
		IsAvailable: false,
		PriceCents:  3000,
	}
	back, err := PositionFromMap(orig.ToMap())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if back != orig {
		t.Fatalf("round trip changed the seat: %+v != %+v", back, orig)
	}
}

func TestPositionPredicates(t *testing.T) {
	t.Parallel()

	p := Position{SeatNumber: "2B", Row: 2, Column: 2}
	if !p.IsInRow(2) || p.IsInRow(3) {
		t.Fatalf("IsInRow misbehaved for %+v", p)
	}
	if !p.IsInColumn(2) || p.IsInColumn(1) {
		t.Fatalf("IsInColumn misbehaved for %+v", p)
	}
}

func TestPositionWithAvailability(t *testing.T) {
	t.Parallel()

	p := Position{SeatNumber: "1A", Row: 1, Column: 1, IsAvailable: true}
	booked := p.WithAvailability(false)
	if booked.IsAvailable {
		t.Fatalf("expected copy to be unavailable")
	}
	if !p.IsAvailable {
		t.Fatalf("expected original seat to stay untouched")
	}
}

func TestFormattedPrice(t *testing.T) {
	t.Parallel()

	p := Position{PriceCents: 2550}
	if got := p.FormattedPrice("USD"); got != "USD 25.50" {
		t.Fatalf("expected \"USD 25.50\", got %q", got)
	}
	free := Position{}
	if got := free.FormattedPrice("EUR"); got != "EUR 0.00" {
		t.Fatalf("expected \"EUR 0.00\", got %q", got)
	}
}
