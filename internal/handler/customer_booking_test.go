package handler

import (
	"errors"
	"testing"

	"github.com/iliyamo/bus-seat-reservation/internal/seatmap"
)

func testConfig(t *testing.T, price int) *seatmap.Config {
	t.Helper()
	lower, err := seatmap.NewDeck(seatmap.SeatTypeSeat, 4, seatmap.LabelAlpha, "2:2", 5, seatmap.LabelNumeric, price)
	if err != nil {
		t.Fatalf("NewDeck failed: %v", err)
	}
	cfg, err := seatmap.NewConfig(seatmap.DeckTypeSingle, lower, nil)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	return cfg
}

func testDoubleConfig(t *testing.T, lowerPrice, upperPrice int) *seatmap.Config {
	t.Helper()
	lower, err := seatmap.NewDeck(seatmap.SeatTypeSeat, 4, seatmap.LabelAlpha, "2:2", 5, seatmap.LabelNumeric, lowerPrice)
	if err != nil {
		t.Fatalf("NewDeck failed: %v", err)
	}
	upper, err := seatmap.NewDeck(seatmap.SeatTypeSleeper, 4, seatmap.LabelAlpha, "2:2", 5, seatmap.LabelAlpha, upperPrice)
	if err != nil {
		t.Fatalf("NewDeck failed: %v", err)
	}
	cfg, err := seatmap.NewConfig(seatmap.DeckTypeDouble, lower, upper)
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}
	return cfg
}

func TestClaimSeats(t *testing.T) {
	t.Parallel()

	t.Run("claims seats and sums prices", func(t *testing.T) {
		cfg := testConfig(t, 1500)
		claimed, total, err := claimSeats(cfg, []string{"1A", "3D"})
		if err != nil {
			t.Fatalf("claimSeats failed: %v", err)
		}
		if total != 3000 {
			t.Fatalf("total = %d, want 3000", total)
		}
		for _, n := range []string{"1A", "3D"} {
			pos, ok := claimed.FindSeat(n)
			if !ok {
				t.Fatalf("seat %s missing from claimed config", n)
			}
			if pos.IsAvailable {
				t.Fatalf("seat %s still available after claim", n)
			}
		}
		if got := len(claimed.AvailableSeats()); got != 18 {
			t.Fatalf("available after claim = %d, want 18", got)
		}
	})

	t.Run("input config is untouched", func(t *testing.T) {
		cfg := testConfig(t, 1000)
		if _, _, err := claimSeats(cfg, []string{"2B"}); err != nil {
			t.Fatalf("claimSeats failed: %v", err)
		}
		pos, ok := cfg.FindSeat("2B")
		if !ok || !pos.IsAvailable {
			t.Fatalf("original config mutated: %+v ok=%v", pos, ok)
		}
	})

	t.Run("claims across both decks", func(t *testing.T) {
		cfg := testDoubleConfig(t, 1000, 2000)
		// Upper ids use the alpha row scheme, so they never overlap with
		// the lower deck's numeric-row ids.
		upperSeat := cfg.SeatsInDeck("upper")[0].SeatNumber
		claimed, total, err := claimSeats(cfg, []string{"1A", upperSeat})
		if err != nil {
			t.Fatalf("claimSeats failed: %v", err)
		}
		if total != 3000 {
			t.Fatalf("total = %d, want 3000", total)
		}
		if got := len(claimed.AvailableSeats()); got != 38 {
			t.Fatalf("available after claim = %d, want 38", got)
		}
	})

	t.Run("taken seat is rejected", func(t *testing.T) {
		cfg := testConfig(t, 1000)
		claimed, _, err := claimSeats(cfg, []string{"1A"})
		if err != nil {
			t.Fatalf("first claim failed: %v", err)
		}
		if _, _, err := claimSeats(claimed, []string{"1A"}); !errors.Is(err, errSeatTaken) {
			t.Fatalf("expected errSeatTaken, got %v", err)
		}
	})

	t.Run("unknown seat is rejected", func(t *testing.T) {
		cfg := testConfig(t, 1000)
		if _, _, err := claimSeats(cfg, []string{"9Z"}); !errors.Is(err, errSeatUnknown) {
			t.Fatalf("expected errSeatUnknown, got %v", err)
		}
	})
}
