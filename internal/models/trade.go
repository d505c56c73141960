package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Indicator marks a trade as a buy or a sell
type Indicator string

// Trade indicator constants
const (
	IndicatorBuy  Indicator = "BUY"
	IndicatorSell Indicator = "SELL"
)

// Valid reports whether i is one of the known indicators
func (i Indicator) Valid() bool {
	return i == IndicatorBuy || i == IndicatorSell
}

// ParseIndicator converts "buy"/"sell" in any case to an Indicator
func ParseIndicator(s string) (Indicator, error) {
	i := Indicator(strings.ToUpper(strings.TrimSpace(s)))
	if !i.Valid() {
		return "", fmt.Errorf("invalid trade indicator %q: %w", s, ErrOutOfRange)
	}
	return i, nil
}

// Trade is a single executed trade. It is immutable once created.
type Trade struct {
	quantity  int
	indicator Indicator
	price     float64
	timestamp time.Time
}

// NewTradeAt creates a trade executed at ts.
// Quantity and price only need to be non-negative here.
func NewTradeAt(quantity int, indicator Indicator, price float64, ts time.Time) (Trade, error) {
	if err := checkNonNegative("quantity", float64(quantity)); err != nil {
		return Trade{}, err
	}
	if err := checkNonNegative("price", price); err != nil {
		return Trade{}, err
	}
	return newTrade(quantity, indicator, price, ts)
}

// NewTrade creates a trade executed now according to SystemClock.
// Quantity and price must be > 0.
func NewTrade(quantity int, indicator Indicator, price float64) (Trade, error) {
	return NewTradeWithClock(SystemClock, quantity, indicator, price)
}

// NewTradeWithClock is NewTrade with the timestamp read from clock
func NewTradeWithClock(clock Clock, quantity int, indicator Indicator, price float64) (Trade, error) {
	if err := checkStrictlyPositive("quantity", float64(quantity)); err != nil {
		return Trade{}, err
	}
	if err := checkStrictlyPositive("price", price); err != nil {
		return Trade{}, err
	}
	if clock == nil {
		clock = SystemClock
	}
	return newTrade(quantity, indicator, price, clock.Now())
}

func newTrade(quantity int, indicator Indicator, price float64, ts time.Time) (Trade, error) {
	if !indicator.Valid() {
		return Trade{}, fmt.Errorf("invalid trade indicator %q: %w", indicator, ErrOutOfRange)
	}
	return Trade{
		quantity:  quantity,
		indicator: indicator,
		price:     price,
		timestamp: ts,
	}, nil
}

// Quantity returns the number of shares traded
func (t Trade) Quantity() int { return t.quantity }

// Indicator returns whether the trade was a buy or a sell
func (t Trade) Indicator() Indicator { return t.indicator }

// Price returns the price per share
func (t Trade) Price() float64 { return t.price }

// Timestamp returns when the trade was executed
func (t Trade) Timestamp() time.Time { return t.timestamp }

// tradeJSON is the wire shape of a Trade
type tradeJSON struct {
	Quantity  int       `json:"quantity"`
	Indicator Indicator `json:"indicator"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// MarshalJSON implements json.Marshaler
func (t Trade) MarshalJSON() ([]byte, error) {
	return json.Marshal(tradeJSON{
		Quantity:  t.quantity,
		Indicator: t.indicator,
		Price:     t.price,
		Timestamp: t.timestamp,
	})
}
