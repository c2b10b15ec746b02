package recorder

import (
	"time"

	"PriceSentinel/internal/model"
)

// BarCache stores fetched daily bars per symbol so repeated evaluations
// do not hit the remote data source.
type BarCache interface {
	// LoadBars returns the cached bars for symbol and when they were stored.
	// A missing symbol returns no bars, a zero time and no error.
	LoadBars(symbol string) ([]model.OHLCV, time.Time, error)
	// StoreBars replaces the cached bars for symbol.
	StoreBars(symbol string, bars []model.OHLCV) error
	Close() error
}
