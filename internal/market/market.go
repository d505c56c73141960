package market

import (
	"math"
	"sync"

	"github.com/rs/zerolog"
	"github.com/trogers1052/stock-market/internal/models"
)

// Option configures a Market
type Option func(*Market)

// WithStocks pre-populates the market
func WithStocks(stocks ...*models.Stock) Option {
	return func(m *Market) {
		m.stocks = append(m.stocks, stocks...)
	}
}

// WithClock sets the time source used to evaluate every stock at one instant.
// Clocks set on individual stocks are ignored by GBCEAllShareIndex.
func WithClock(c models.Clock) Option {
	return func(m *Market) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithLogger sets the logger used for index diagnostics
func WithLogger(log zerolog.Logger) Option {
	return func(m *Market) {
		m.log = log
	}
}

// Market holds a collection of stocks and computes the GBCE All Share Index.
// Symbols are not required to be unique.
type Market struct {
	clock models.Clock
	log   zerolog.Logger

	mu     sync.RWMutex
	stocks []*models.Stock
}

// New creates a market, empty unless WithStocks is given
func New(opts ...Option) *Market {
	m := &Market{
		clock:  models.SystemClock,
		log:    zerolog.Nop(),
		stocks: []*models.Stock{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddStock appends a stock to the market
func (m *Market) AddStock(s *models.Stock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stocks = append(m.stocks, s)
}

// Stocks returns a copy of the stock collection in insertion order
func (m *Market) Stocks() []*models.Stock {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stocks := make([]*models.Stock, len(m.stocks))
	copy(stocks, m.stocks)
	return stocks
}

// Stock returns the first stock with the given symbol
func (m *Market) Stock(symbol string) (*models.Stock, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, s := range m.stocks {
		if s.Symbol() == symbol {
			return s, true
		}
	}
	return nil, false
}

// GBCEAllShareIndex returns the geometric mean of the volume weighted stock
// prices of every stock, or 0 for an empty market. A stock without trades
// in its window has a price of 0 and therefore brings the index to 0.
// Every stock is evaluated at the market clock's current time, not at the
// time of any clock given to the stock itself.
func (m *Market) GBCEAllShareIndex() float64 {
	stocks := m.Stocks()
	if len(stocks) == 0 {
		return 0
	}

	now := m.clock.Now()
	root := 1 / float64(len(stocks))

	index := 1.0
	for _, s := range stocks {
		vwsp := s.VolumeWeightedPriceAt(now)
		if vwsp == 0 {
			m.log.Debug().
				Str("symbol", s.Symbol()).
				Dur("window", s.Window()).
				Msg("no trades in window, index collapses to zero")
		}
		index *= math.Pow(vwsp, root)
	}

	m.log.Debug().
		Int("stocks", len(stocks)).
		Float64("index", index).
		Msg("computed GBCE all share index")

	return index
}
