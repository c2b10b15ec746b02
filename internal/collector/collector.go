package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"PriceSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData []model.OHLCV
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, _ string, days int) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return generateMockBars(m.Price, days), nil
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		// Gentle oscillation around a slow uptrend keeps every close positive.
		p := basePrice * (1 + float64(i-count/2)*0.001 + 0.01*float64(i%5-2))
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector fetches historical bars and turns them into a PriceSeries.
type Collector struct {
	Fetcher  Fetcher
	Symbol   string
	Lookback int // trading days of history
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string, lookback int) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol, Lookback: lookback}
}

// Collect fetches daily bars and returns their closes in chronological order.
func (c *Collector) Collect(ctx context.Context) (*model.PriceSeries, error) {
	bars, err := c.Fetcher.FetchDailyBars(ctx, c.Symbol, c.Lookback)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}

	closes := make([]float64, 0, len(bars))
	for _, b := range bars {
		if !(b.Close > 0) {
			log.Printf("[WARN] %s: dropping bar %s with close %v", c.Symbol, b.Time.Format("2006-01-02"), b.Close)
			continue
		}
		closes = append(closes, b.Close)
	}
	if len(closes) < 2 {
		return nil, fmt.Errorf("%s: %w", c.Symbol, model.Invalid("closes", len(closes), "must contain at least 2 prices"))
	}

	return &model.PriceSeries{
		Symbol:    c.Symbol,
		Closes:    closes,
		FetchedAt: time.Now(),
	}, nil
}
