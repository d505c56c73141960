package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidation(t *testing.T) {
	t.Run("checkNonNegative accepts zero and rejects negatives", func(t *testing.T) {
		assert.NoError(t, checkNonNegative("v", 0))
		assert.NoError(t, checkNonNegative("v", 0.5))
		assert.ErrorIs(t, checkNonNegative("v", -0.0001), ErrOutOfRange)
	})

	t.Run("checkStrictlyPositive rejects zero", func(t *testing.T) {
		assert.NoError(t, checkStrictlyPositive("v", 0.0001))
		assert.ErrorIs(t, checkStrictlyPositive("v", 0), ErrOutOfRange)
		assert.ErrorIs(t, checkStrictlyPositive("v", -1), ErrOutOfRange)
	})

	t.Run("non-finite values are rejected by both guards", func(t *testing.T) {
		for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			assert.ErrorIs(t, checkNonNegative("v", v), ErrOutOfRange)
			assert.ErrorIs(t, checkStrictlyPositive("v", v), ErrOutOfRange)
		}
	})

	t.Run("error message names the field", func(t *testing.T) {
		err := checkStrictlyPositive("price", -1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "price")
	})
}

func TestNewTrade(t *testing.T) {
	t.Run("NewTrade stamps the current time", func(t *testing.T) {
		before := time.Now()
		trade, err := NewTrade(5, IndicatorBuy, 12.5)
		require.NoError(t, err)

		assert.Equal(t, 5, trade.Quantity())
		assert.Equal(t, IndicatorBuy, trade.Indicator())
		assert.Equal(t, 12.5, trade.Price())
		assert.False(t, trade.Timestamp().Before(before))
		assert.False(t, trade.Timestamp().After(time.Now()))
	})

	t.Run("NewTrade requires strictly positive quantity and price", func(t *testing.T) {
		cases := []struct {
			name     string
			quantity int
			price    float64
		}{
			{"negative quantity", -1, 10},
			{"zero quantity", 0, 10},
			{"negative price", 1, -10},
			{"zero price", 1, 0},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := NewTrade(tc.quantity, IndicatorBuy, tc.price)
				assert.ErrorIs(t, err, ErrOutOfRange)
			})
		}
	})

	t.Run("NewTradeAt accepts zero quantity and price", func(t *testing.T) {
		ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		trade, err := NewTradeAt(0, IndicatorSell, 0, ts)
		require.NoError(t, err)
		assert.Equal(t, ts, trade.Timestamp())
		assert.Equal(t, IndicatorSell, trade.Indicator())
	})

	t.Run("NewTradeAt rejects negative quantity and price", func(t *testing.T) {
		ts := time.Now()
		_, err := NewTradeAt(-1, IndicatorBuy, 10, ts)
		assert.ErrorIs(t, err, ErrOutOfRange)

		_, err = NewTradeAt(1, IndicatorBuy, -10, ts)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("non-finite price is rejected by both constructors", func(t *testing.T) {
		for _, price := range []float64{math.NaN(), math.Inf(1)} {
			_, err := NewTrade(1, IndicatorBuy, price)
			assert.ErrorIs(t, err, ErrOutOfRange)

			_, err = NewTradeAt(1, IndicatorBuy, price, time.Now())
			assert.ErrorIs(t, err, ErrOutOfRange)
		}
	})

	t.Run("NewTradeWithClock stamps the clock time", func(t *testing.T) {
		ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		clock := ClockFunc(func() time.Time { return ts })

		trade, err := NewTradeWithClock(clock, 2, IndicatorSell, 9.5)
		require.NoError(t, err)
		assert.Equal(t, ts, trade.Timestamp())

		_, err = NewTradeWithClock(clock, 0, IndicatorSell, 9.5)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("unknown indicator is rejected", func(t *testing.T) {
		_, err := NewTrade(1, Indicator("HOLD"), 10)
		assert.ErrorIs(t, err, ErrOutOfRange)

		_, err = NewTradeAt(1, "", 10, time.Now())
		assert.ErrorIs(t, err, ErrOutOfRange)
	})
}

func TestParseIndicator(t *testing.T) {
	t.Run("parses either case", func(t *testing.T) {
		i, err := ParseIndicator("buy")
		require.NoError(t, err)
		assert.Equal(t, IndicatorBuy, i)

		i, err = ParseIndicator(" Sell ")
		require.NoError(t, err)
		assert.Equal(t, IndicatorSell, i)
	})

	t.Run("rejects anything else", func(t *testing.T) {
		_, err := ParseIndicator("short")
		assert.ErrorIs(t, err, ErrOutOfRange)
	})
}

func TestTradeMarshalJSON(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	trade, err := NewTradeAt(3, IndicatorBuy, 101.25, ts)
	require.NoError(t, err)

	data, err := json.Marshal(trade)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"quantity":3,"indicator":"BUY","price":101.25,"timestamp":"2024-03-01T10:00:00Z"}`,
		string(data))
}
