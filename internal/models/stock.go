package models

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// StockType distinguishes common from preferred stock
type StockType string

// Stock type constants
const (
	StockTypeCommon    StockType = "COMMON"
	StockTypePreferred StockType = "PREFERRED"
)

// DefaultWindow is the trailing period used for the volume weighted stock price
const DefaultWindow = 5 * time.Minute

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the Clock interface
type ClockFunc func() time.Time

// Now implements Clock
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock
var SystemClock Clock = ClockFunc(time.Now)

// StockOption configures optional Stock behaviour
type StockOption func(*Stock)

// WithClock sets the time source used by VolumeWeightedPrice. A market
// evaluates its stocks with its own clock and does not consult this one.
func WithClock(c Clock) StockOption {
	return func(s *Stock) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithWindow overrides DefaultWindow. Non-positive durations are ignored.
func WithWindow(d time.Duration) StockOption {
	return func(s *Stock) {
		if d > 0 {
			s.window = d
		}
	}
}

// Stock represents a listed stock together with the trades executed on it.
// Only DividendYield depends on the stock type; everything else is shared.
// A Stock is safe for concurrent use.
type Stock struct {
	symbol        string
	stockType     StockType
	lastDividend  float64
	parValue      int
	fixedDividend float64
	clock         Clock
	window        time.Duration

	mu     sync.RWMutex
	trades []Trade
}

// NewCommonStock creates a common stock. lastDividend must not be negative.
func NewCommonStock(symbol string, lastDividend float64, parValue int, opts ...StockOption) (*Stock, error) {
	if err := checkNonNegative("last dividend", lastDividend); err != nil {
		return nil, err
	}

	s := &Stock{
		symbol:       symbol,
		stockType:    StockTypeCommon,
		lastDividend: lastDividend,
		parValue:     parValue,
		clock:        SystemClock,
		window:       DefaultWindow,
		trades:       []Trade{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewPreferredStock creates a preferred stock paying a fixed dividend
// expressed as a fraction of par value.
func NewPreferredStock(symbol string, lastDividend float64, parValue int, fixedDividend float64, opts ...StockOption) (*Stock, error) {
	s, err := NewCommonStock(symbol, lastDividend, parValue, opts...)
	if err != nil {
		return nil, err
	}
	if err := checkNonNegative("fixed dividend", fixedDividend); err != nil {
		return nil, err
	}

	s.stockType = StockTypePreferred
	s.fixedDividend = fixedDividend
	return s, nil
}

// Symbol returns the ticker symbol
func (s *Stock) Symbol() string { return s.symbol }

// Type returns COMMON or PREFERRED
func (s *Stock) Type() StockType { return s.stockType }

// LastDividend returns the last dividend paid per share
func (s *Stock) LastDividend() float64 { return s.lastDividend }

// ParValue returns the nominal face value of a share
func (s *Stock) ParValue() int { return s.parValue }

// FixedDividend is always 0 for common stock
func (s *Stock) FixedDividend() float64 { return s.fixedDividend }

// Window returns the trailing period used by VolumeWeightedPrice
func (s *Stock) Window() time.Duration { return s.window }

// DividendYield returns the dividend yield at the given price.
// Common stock: last dividend / price.
// Preferred stock: fixed dividend * par value / price.
func (s *Stock) DividendYield(price float64) (float64, error) {
	if err := checkStrictlyPositive("price", price); err != nil {
		return 0, err
	}

	switch s.stockType {
	case StockTypePreferred:
		return s.fixedDividend * float64(s.parValue) / price, nil
	default:
		return s.lastDividend / price, nil
	}
}

// PriceEarningsRatio returns price / last dividend, or 0 when the last
// dividend is zero.
func (s *Stock) PriceEarningsRatio(price float64) (float64, error) {
	if err := checkNonNegative("price", price); err != nil {
		return 0, err
	}

	if s.lastDividend == 0 {
		return 0, nil
	}
	return price / s.lastDividend, nil
}

// AddTrade appends a trade. Trades are kept in insertion order.
func (s *Stock) AddTrade(t Trade) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trades = append(s.trades, t)
}

// Trades returns a copy of every recorded trade in insertion order
func (s *Stock) Trades() []Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trades := make([]Trade, len(s.trades))
	copy(trades, s.trades)
	return trades
}

// TradeCount returns the number of recorded trades
func (s *Stock) TradeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.trades)
}

// TradesInWindow returns the trades executed in (now - window, now]
func (s *Stock) TradesInWindow(now time.Time) []Trade {
	start := now.Add(-s.window)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var trades []Trade
	for _, t := range s.trades {
		if t.timestamp.After(start) && !t.timestamp.After(now) {
			trades = append(trades, t)
		}
	}
	return trades
}

// VolumeWeightedPrice returns the volume weighted stock price over the
// trailing window ending at the stock clock's current time.
func (s *Stock) VolumeWeightedPrice() float64 {
	return s.VolumeWeightedPriceAt(s.clock.Now())
}

// VolumeWeightedPriceAt returns sum(price*quantity) / sum(quantity) over the
// trades in the window ending at now. It returns 0 when no trade qualifies.
func (s *Stock) VolumeWeightedPriceAt(now time.Time) float64 {
	trades := s.TradesInWindow(now)
	if len(trades) == 0 {
		return 0
	}

	notional := decimal.Zero
	volume := decimal.Zero
	for _, t := range trades {
		qty := decimal.NewFromInt(int64(t.quantity))
		notional = notional.Add(decimal.NewFromFloat(t.price).Mul(qty))
		volume = volume.Add(qty)
	}

	// zero-quantity trades are accepted with an explicit timestamp
	if volume.IsZero() {
		return 0
	}

	vwsp, _ := notional.Div(volume).Float64()
	return vwsp
}
