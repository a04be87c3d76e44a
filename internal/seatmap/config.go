package seatmap

import (
	"fmt"
	"math"
	"strconv"
)

// DeckType discriminates single from double deck vehicles. The literal
// strings "1" and "2" cross the serialization boundary unchanged.
type DeckType string

const (
	DeckTypeSingle DeckType = "1"
	DeckTypeDouble DeckType = "2"
)

// Form field defaults applied by ConfigFromForm when a field is absent.
// The persisted codec applies no defaults; only the form codec carries
// business defaults.
const (
	defaultSeatType     = SeatTypeSeat
	defaultTotalColumns = 4
	defaultColumnLabel  = LabelAlpha
	defaultColumnLayout = "2:2"
	defaultTotalRows    = 5
	defaultRowLabel     = LabelNumeric
)

// Config describes the whole vehicle: a mandatory lower deck and, for
// double deckers, an upper deck. The deck type flag and the presence of
// the upper deck must always agree; every construction path enforces
// that. A Config is a value - any change produces a new instance.
type Config struct {
	DeckType DeckType
	Lower    *Deck
	Upper    *Deck
}

// NewConfig assembles and validates a configuration.
func NewConfig(deckType DeckType, lower, upper *Deck) (*Config, error) {
	c := &Config{DeckType: deckType, Lower: lower, Upper: upper}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.Lower == nil {
		return fmt.Errorf("%w: lower_deck", ErrMissingRequiredField)
	}
	if c.DeckType == DeckTypeDouble && c.Upper == nil {
		return fmt.Errorf("%w: deck type %q requires an upper deck", ErrInconsistentDeckConfig, c.DeckType)
	}
	if c.DeckType != DeckTypeDouble && c.Upper != nil {
		return fmt.Errorf("%w: deck type %q does not allow an upper deck", ErrInconsistentDeckConfig, c.DeckType)
	}
	return nil
}

// ConfigFromMap rebuilds a configuration from its persisted shape:
// {deck_type, lower_deck, upper_deck?}. deck_type and lower_deck are
// required; decks are rebuilt through DeckFromMap so stored seats and
// availability flags survive the round trip.
func ConfigFromMap(data map[string]any) (*Config, error) {
	deckType, ok := stringValue(data["deck_type"])
	if !ok || deckType == "" {
		return nil, fmt.Errorf("%w: deck_type", ErrMissingRequiredField)
	}
	rawLower, ok := data["lower_deck"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: lower_deck", ErrMissingRequiredField)
	}
	lower, err := DeckFromMap(rawLower)
	if err != nil {
		return nil, err
	}
	var upper *Deck
	if rawUpper, ok := data["upper_deck"].(map[string]any); ok {
		upper, err = DeckFromMap(rawUpper)
		if err != nil {
			return nil, err
		}
	}
	return NewConfig(DeckType(deckType), lower, upper)
}

// ToMap returns the persisted shape of the configuration, the exact
// inverse of ConfigFromMap including the nested seat arrays.
func (c *Config) ToMap() map[string]any {
	out := map[string]any{
		"deck_type":  string(c.DeckType),
		"lower_deck": c.Lower.ToMap(),
	}
	if c.Upper != nil {
		out["upper_deck"] = c.Upper.ToMap()
	}
	return out
}

// ConfigFromForm builds a configuration from the flat form submission
// shape. Fields are plain strings (deck, seat_type, total_columns,
// column_label, column_layout, total_rows, row_label, price_per_seat),
// each with an "_upper" counterpart read only when deck is "2". Absent
// fields fall back to the documented defaults, and the decimal
// price_per_seat amount is converted to integer cents.
func ConfigFromForm(fields map[string]string) (*Config, error) {
	deckType := DeckType(formField(fields, "deck", string(DeckTypeSingle)))
	lower, err := deckFromForm(fields, "")
	if err != nil {
		return nil, err
	}
	var upper *Deck
	if deckType == DeckTypeDouble {
		upper, err = deckFromForm(fields, "_upper")
		if err != nil {
			return nil, err
		}
	}
	return NewConfig(deckType, lower, upper)
}

func deckFromForm(fields map[string]string, suffix string) (*Deck, error) {
	seatType := SeatType(formField(fields, "seat_type"+suffix, string(defaultSeatType)))
	columns := formInt(fields, "total_columns"+suffix, defaultTotalColumns)
	columnLabel := LabelScheme(formField(fields, "column_label"+suffix, string(defaultColumnLabel)))
	layout := formField(fields, "column_layout"+suffix, defaultColumnLayout)
	rows := formInt(fields, "total_rows"+suffix, defaultTotalRows)
	rowLabel := LabelScheme(formField(fields, "row_label"+suffix, string(defaultRowLabel)))
	price := formPriceCents(fields, "price_per_seat"+suffix)
	return NewDeck(seatType, columns, columnLabel, layout, rows, rowLabel, price)
}

// ToForm returns the flat form representation, the inverse of
// ConfigFromForm. Cents are re-expanded to a decimal currency amount.
func (c *Config) ToForm() map[string]string {
	fields := map[string]string{"deck": string(c.DeckType)}
	deckToForm(fields, c.Lower, "")
	if c.Upper != nil {
		deckToForm(fields, c.Upper, "_upper")
	}
	return fields
}

func deckToForm(fields map[string]string, d *Deck, suffix string) {
	fields["seat_type"+suffix] = string(d.SeatType)
	fields["total_columns"+suffix] = strconv.Itoa(d.TotalColumns)
	fields["column_label"+suffix] = string(d.ColumnLabel)
	fields["column_layout"+suffix] = d.ColumnLayout
	fields["total_rows"+suffix] = strconv.Itoa(d.TotalRows)
	fields["row_label"+suffix] = string(d.RowLabel)
	fields["price_per_seat"+suffix] = strconv.FormatFloat(float64(d.PriceCents)/100, 'f', -1, 64)
}

// AllSeats concatenates the lower deck seats with the upper deck seats.
func (c *Config) AllSeats() []Position {
	seats := append([]Position(nil), c.Lower.Seats()...)
	if c.Upper != nil {
		seats = append(seats, c.Upper.Seats()...)
	}
	return seats
}

// TotalSeats counts seats across both decks.
func (c *Config) TotalSeats() int {
	total := c.Lower.TotalSeats()
	if c.Upper != nil {
		total += c.Upper.TotalSeats()
	}
	return total
}

// AvailableSeats returns every seat still open for booking, lower deck
// first.
func (c *Config) AvailableSeats() []Position {
	seats := c.Lower.AvailableSeats()
	if c.Upper != nil {
		seats = append(seats, c.Upper.AvailableSeats()...)
	}
	return seats
}

// FindSeat searches the lower deck first, then the upper one. The second
// return value is false when neither deck has the seat.
func (c *Config) FindSeat(number string) (Position, bool) {
	if s, ok := c.Lower.FindSeat(number); ok {
		return s, true
	}
	if c.Upper != nil {
		return c.Upper.FindSeat(number)
	}
	return Position{}, false
}

// IsDoubleDeck reports whether the vehicle has two decks.
func (c *Config) IsDoubleDeck() bool { return c.DeckType == DeckTypeDouble }

// SeatsInDeck returns the seats of the named deck ("lower" or "upper").
// An absent upper deck or an unknown name yields an empty slice.
func (c *Config) SeatsInDeck(name string) []Position {
	switch name {
	case "lower":
		return append([]Position(nil), c.Lower.Seats()...)
	case "upper":
		if c.Upper != nil {
			return append([]Position(nil), c.Upper.Seats()...)
		}
	}
	return []Position{}
}

// BasePriceCents returns the cheapest per-seat price across decks.
func (c *Config) BasePriceCents() int {
	price := c.Lower.PriceCents
	if c.Upper != nil && c.Upper.PriceCents < price {
		price = c.Upper.PriceCents
	}
	return price
}

// MaxPriceCents returns the most expensive per-seat price across decks.
// A double decker may legitimately price its two decks differently.
func (c *Config) MaxPriceCents() int {
	price := c.Lower.PriceCents
	if c.Upper != nil && c.Upper.PriceCents > price {
		price = c.Upper.PriceCents
	}
	return price
}

// AllPricesCents lists the per-deck prices, lower deck first.
func (c *Config) AllPricesCents() []int {
	prices := []int{c.Lower.PriceCents}
	if c.Upper != nil {
		prices = append(prices, c.Upper.PriceCents)
	}
	return prices
}

// ValidateTotalSeats checks the generated seat count against an
// externally stored expected total, catching drift between the layout
// and a denormalized total-seats field.
func (c *Config) ValidateTotalSeats(expected int) bool {
	return c.TotalSeats() == expected
}

func formField(fields map[string]string, key, fallback string) string {
	if v, ok := fields[key]; ok && v != "" {
		return v
	}
	return fallback
}

func formInt(fields map[string]string, key string, fallback int) int {
	if v, ok := fields[key]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// formPriceCents parses a decimal currency amount and converts it to
// integer cents, rounding to absorb float noise ("25" -> 2500,
// "25.5" -> 2550). Missing or unparseable values default to 0.
func formPriceCents(fields map[string]string, key string) int {
	v, ok := fields[key]
	if !ok || v == "" {
		return 0
	}
	amount, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return int(math.Round(amount * 100))
}
