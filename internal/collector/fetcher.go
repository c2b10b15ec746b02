package collector

import (
	"context"

	"PriceSentinel/internal/model"
)

// Fetcher defines the interface for fetching historical market data.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error)
	Name() string
}
