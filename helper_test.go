package infinity

import "github.com/Triton1605/Infinity/date"

var (
	aapl = NewAssetID("AAPL", Equity)
	goog = NewAssetID("GOOG", Equity)
	btc  = NewAssetID("BTC-USD", Crypto)
)

// day is a helper for tests to create dates from consts.
func day(s string) date.Date { return date.MustParse(s) }

// flat is a helper for tests to create a candle with all four prices at v.
func flat(v, volume float64) Candle { return C(v, v, v, v, volume) }

// must is a helper for tests to unwrap constructors that cannot fail there.
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// daily is a helper for tests to create a daily series with one candle per
// date, in any order.
func daily(id AssetID, candles map[string]Candle) *RawSeries {
	s := NewRawSeries(id, DailyResolution)
	for on, c := range candles {
		if err := s.Append(day(on), c); err != nil {
			panic(err)
		}
	}
	return s
}
