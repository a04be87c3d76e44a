package seatmap

import (
	"encoding/json"
	"errors"
	"testing"
)

func singleDeckConfig(t *testing.T, price int) *Config {
	t.Helper()
	lower := mustDeck(t, SeatTypeSeat, 4, LabelAlpha, "2:2", 5, LabelNumeric, price)
	c, err := NewConfig(DeckTypeSingle, lower, nil)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	return c
}

func doubleDeckConfig(t *testing.T, lowerPrice, upperPrice int) *Config {
	t.Helper()
	lower := mustDeck(t, SeatTypeSeat, 4, LabelAlpha, "2:2", 5, LabelNumeric, lowerPrice)
	upper := mustDeck(t, SeatTypeSleeper, 4, LabelAlpha, "2:2", 5, LabelAlpha, upperPrice)
	c, err := NewConfig(DeckTypeDouble, lower, upper)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	return c
}

func TestConfigValidation(t *testing.T) {
	t.Parallel()

	lower := mustDeck(t, SeatTypeSeat, 4, LabelAlpha, "2:2", 5, LabelNumeric, 0)
	upper := mustDeck(t, SeatTypeSeat, 4, LabelAlpha, "2:2", 5, LabelNumeric, 0)

	t.Run("double deck type without upper deck fails", func(t *testing.T) {
		if _, err := NewConfig(DeckTypeDouble, lower, nil); !errors.Is(err, ErrInconsistentDeckConfig) {
			t.Fatalf("expected ErrInconsistentDeckConfig, got %v", err)
		}
	})

	t.Run("single deck type with upper deck fails", func(t *testing.T) {
		if _, err := NewConfig(DeckTypeSingle, lower, upper); !errors.Is(err, ErrInconsistentDeckConfig) {
			t.Fatalf("expected ErrInconsistentDeckConfig, got %v", err)
		}
	})

	t.Run("missing lower deck fails", func(t *testing.T) {
		if _, err := NewConfig(DeckTypeSingle, nil, nil); !errors.Is(err, ErrMissingRequiredField) {
			t.Fatalf("expected ErrMissingRequiredField, got %v", err)
		}
	})
}

func TestConfigFromMap(t *testing.T) {
	t.Parallel()

	t.Run("requires deck_type and lower_deck", func(t *testing.T) {
		if _, err := ConfigFromMap(map[string]any{"lower_deck": map[string]any{"column_layout": "2:2"}}); !errors.Is(err, ErrMissingRequiredField) {
			t.Fatalf("expected ErrMissingRequiredField for deck_type, got %v", err)
		}
		if _, err := ConfigFromMap(map[string]any{"deck_type": "1"}); !errors.Is(err, ErrMissingRequiredField) {
			t.Fatalf("expected ErrMissingRequiredField for lower_deck, got %v", err)
		}
	})

	t.Run("enforces the deck invariant", func(t *testing.T) {
		_, err := ConfigFromMap(map[string]any{
			"deck_type":  "2",
			"lower_deck": map[string]any{"column_layout": "2:2"},
		})
		if !errors.Is(err, ErrInconsistentDeckConfig) {
			t.Fatalf("expected ErrInconsistentDeckConfig, got %v", err)
		}
	})
}

func TestConfigPersistedRoundTrip(t *testing.T) {
	t.Parallel()

	orig := doubleDeckConfig(t, 1500, 3000)
	raw, err := json.Marshal(orig.ToMap())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	back, err := ConfigFromMap(data)
	if err != nil {
		t.Fatalf("ConfigFromMap failed: %v", err)
	}
	if back.DeckType != orig.DeckType {
		t.Fatalf("deck type changed: %q vs %q", back.DeckType, orig.DeckType)
	}
	os, bs := orig.AllSeats(), back.AllSeats()
	if len(os) != len(bs) {
		t.Fatalf("seat counts differ: %d vs %d", len(os), len(bs))
	}
	for i := range os {
		if os[i] != bs[i] {
			t.Fatalf("seat %d differs: %+v vs %+v", i, os[i], bs[i])
		}
	}
}

func TestConfigFormRoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("end to end form scenario", func(t *testing.T) {
		c, err := ConfigFromForm(map[string]string{
			"deck":           "1",
			"seat_type":      "1",
			"total_columns":  "4",
			"column_label":   "alpha",
			"column_layout":  "2:2",
			"total_rows":     "5",
			"row_label":      "numeric",
			"price_per_seat": "25",
		})
		if err != nil {
			t.Fatalf("ConfigFromForm failed: %v", err)
		}
		if got := c.TotalSeats(); got != 20 {
			t.Fatalf("expected 20 seats, got %d", got)
		}
		for _, s := range c.AllSeats() {
			if s.PriceCents != 2500 {
				t.Fatalf("seat %s priced %d, want 2500", s.SeatNumber, s.PriceCents)
			}
		}
		if _, ok := c.FindSeat("1A"); !ok {
			t.Fatalf("expected seat 1A")
		}
		if _, ok := c.FindSeat("5D"); !ok {
			t.Fatalf("expected seat 5D")
		}
	})

	t.Run("defaults apply when fields are absent", func(t *testing.T) {
		c, err := ConfigFromForm(map[string]string{})
		if err != nil {
			t.Fatalf("ConfigFromForm failed: %v", err)
		}
		if c.IsDoubleDeck() {
			t.Fatalf("expected single deck by default")
		}
		d := c.Lower
		if d.SeatType != SeatTypeSeat || d.TotalColumns != 4 || d.ColumnLabel != LabelAlpha ||
			d.ColumnLayout != "2:2" || d.TotalRows != 5 || d.RowLabel != LabelNumeric || d.PriceCents != 0 {
			t.Fatalf("defaults not applied: %+v", d)
		}
	})

	t.Run("form round trip preserves scalar fields", func(t *testing.T) {
		orig := doubleDeckConfig(t, 1500, 3000)
		back, err := ConfigFromForm(orig.ToForm())
		if err != nil {
			t.Fatalf("ConfigFromForm failed: %v", err)
		}
		if back.DeckType != orig.DeckType {
			t.Fatalf("deck type changed")
		}
		pairs := [][2]*Deck{{orig.Lower, back.Lower}, {orig.Upper, back.Upper}}
		for _, pair := range pairs {
			want, got := pair[0], pair[1]
			if got.SeatType != want.SeatType || got.TotalColumns != want.TotalColumns ||
				got.ColumnLabel != want.ColumnLabel || got.ColumnLayout != want.ColumnLayout ||
				got.TotalRows != want.TotalRows || got.RowLabel != want.RowLabel ||
				got.PriceCents != want.PriceCents {
				t.Fatalf("deck fields changed: %+v vs %+v", got, want)
			}
		}
	})

	t.Run("upper fields are read only for double deckers", func(t *testing.T) {
		c, err := ConfigFromForm(map[string]string{
			"deck":                 "2",
			"price_per_seat":       "15",
			"price_per_seat_upper": "30",
		})
		if err != nil {
			t.Fatalf("ConfigFromForm failed: %v", err)
		}
		if c.Lower.PriceCents != 1500 || c.Upper.PriceCents != 3000 {
			t.Fatalf("unexpected prices %d/%d", c.Lower.PriceCents, c.Upper.PriceCents)
		}
	})
}

func TestConfigAggregates(t *testing.T) {
	t.Parallel()

	t.Run("pricing across decks", func(t *testing.T) {
		c := doubleDeckConfig(t, 1500, 3000)
		if got := c.BasePriceCents(); got != 1500 {
			t.Fatalf("expected base price 1500, got %d", got)
		}
		if got := c.MaxPriceCents(); got != 3000 {
			t.Fatalf("expected max price 3000, got %d", got)
		}
		prices := c.AllPricesCents()
		if len(prices) != 2 || prices[0] != 1500 || prices[1] != 3000 {
			t.Fatalf("unexpected prices %v", prices)
		}
	})

	t.Run("single deck pricing", func(t *testing.T) {
		c := singleDeckConfig(t, 2000)
		if c.BasePriceCents() != 2000 || c.MaxPriceCents() != 2000 {
			t.Fatalf("unexpected prices %d/%d", c.BasePriceCents(), c.MaxPriceCents())
		}
		if prices := c.AllPricesCents(); len(prices) != 1 || prices[0] != 2000 {
			t.Fatalf("unexpected prices %v", prices)
		}
	})

	t.Run("seat lookup searches lower deck first", func(t *testing.T) {
		c := doubleDeckConfig(t, 1500, 3000)
		s, ok := c.FindSeat("3A")
		if !ok {
			t.Fatalf("expected to find 3A")
		}
		if s.PriceCents != 1500 {
			t.Fatalf("expected the lower deck seat, got price %d", s.PriceCents)
		}
		if _, ok := c.FindSeat("9Z"); ok {
			t.Fatalf("expected 9Z to be absent")
		}
	})

	t.Run("seats in deck", func(t *testing.T) {
		double := doubleDeckConfig(t, 1500, 3000)
		if got := len(double.SeatsInDeck("lower")); got != 20 {
			t.Fatalf("expected 20 lower seats, got %d", got)
		}
		if got := len(double.SeatsInDeck("upper")); got != 20 {
			t.Fatalf("expected 20 upper seats, got %d", got)
		}
		single := singleDeckConfig(t, 0)
		if got := len(single.SeatsInDeck("upper")); got != 0 {
			t.Fatalf("expected no upper seats, got %d", got)
		}
		if got := len(single.SeatsInDeck("middle")); got != 0 {
			t.Fatalf("expected unknown deck to be empty, got %d", got)
		}
	})

	t.Run("totals and validation", func(t *testing.T) {
		c := doubleDeckConfig(t, 1500, 3000)
		if got := c.TotalSeats(); got != 40 {
			t.Fatalf("expected 40 seats, got %d", got)
		}
		if !c.ValidateTotalSeats(40) || c.ValidateTotalSeats(39) {
			t.Fatalf("ValidateTotalSeats misbehaved")
		}
		if !c.IsDoubleDeck() {
			t.Fatalf("expected double deck")
		}
		if got := len(c.AvailableSeats()); got != 40 {
			t.Fatalf("expected all 40 seats available, got %d", got)
		}
	})
}
