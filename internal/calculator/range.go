package calculator

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// TradingDays52w is the number of trading days in a 52-week window.
const TradingDays52w = 252

// CalculateRange scans the most recent lookback closes and returns the high and low.
// A lookback <= 0 or larger than the series scans the whole series.
func CalculateRange(closes []float64, lookback int) (high, low float64, err error) {
	if len(closes) == 0 {
		return 0, 0, errors.New("no closes provided")
	}
	start := 0
	if lookback > 0 && lookback < len(closes) {
		start = len(closes) - lookback
	}
	window := closes[start:]
	return floats.Max(window), floats.Min(window), nil
}

// RangePosition returns where price sits within [low, high] (0.0~1.0).
// Prices outside the range are clamped.
func RangePosition(price, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (price - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
