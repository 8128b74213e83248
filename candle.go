package infinity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Candle is one OHLCV record for one time bucket. Prices are exact decimals,
// volume is non-negative and may be fractional for crypto assets.
type Candle struct {
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}

// C is a convenient factory for a Candle from float values.
func C(open, high, low, close, volume float64) Candle {
	return Candle{
		Open:   decimal.NewFromFloat(open),
		High:   decimal.NewFromFloat(high),
		Low:    decimal.NewFromFloat(low),
		Close:  decimal.NewFromFloat(close),
		Volume: decimal.NewFromFloat(volume),
	}
}

// Validate checks the candle invariant: high is the highest of the four
// prices, low the lowest, and volume is not negative.
func (c Candle) Validate() error {
	if c.High.LessThan(c.Open) || c.High.LessThan(c.Close) || c.High.LessThan(c.Low) {
		return fmt.Errorf("invalid candle: high %s below another price", c.High)
	}
	if c.Low.GreaterThan(c.Open) || c.Low.GreaterThan(c.Close) {
		return fmt.Errorf("invalid candle: low %s above another price", c.Low)
	}
	if c.Volume.IsNegative() {
		return fmt.Errorf("invalid candle: negative volume %s", c.Volume)
	}
	return nil
}

// Equal reports whether both candles carry the same values.
func (c Candle) Equal(o Candle) bool {
	return c.Open.Equal(o.Open) &&
		c.High.Equal(o.High) &&
		c.Low.Equal(o.Low) &&
		c.Close.Equal(o.Close) &&
		c.Volume.Equal(o.Volume)
}

func (c Candle) String() string {
	return fmt.Sprintf("o:%s h:%s l:%s c:%s v:%s", c.Open, c.High, c.Low, c.Close, c.Volume)
}
