package collector

import (
	"context"
	"log"
	"time"

	"PriceSentinel/internal/model"
	"PriceSentinel/internal/recorder"
)

// CachedFetcher serves daily bars from a BarCache when the cached copy is
// younger than TTL, and refreshes the cache from the wrapped Fetcher otherwise.
type CachedFetcher struct {
	Fetcher Fetcher
	Cache   recorder.BarCache
	TTL     time.Duration
	now     func() time.Time
}

// NewCachedFetcher wraps fetcher with cache.
func NewCachedFetcher(fetcher Fetcher, cache recorder.BarCache, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{Fetcher: fetcher, Cache: cache, TTL: ttl, now: time.Now}
}

func (c *CachedFetcher) Name() string { return c.Fetcher.Name() + "+cache" }

func (c *CachedFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	bars, storedAt, err := c.Cache.LoadBars(symbol)
	if err != nil {
		log.Printf("[WARN] bar cache read for %s failed: %v", symbol, err)
	} else if len(bars) >= days && !storedAt.IsZero() && c.now().Sub(storedAt) < c.TTL {
		if days > 0 && len(bars) > days {
			bars = bars[len(bars)-days:]
		}
		return bars, nil
	}

	bars, err = c.Fetcher.FetchDailyBars(ctx, symbol, days)
	if err != nil {
		return nil, err
	}
	if err := c.Cache.StoreBars(symbol, bars); err != nil {
		log.Printf("[WARN] bar cache write for %s failed: %v", symbol, err)
	}
	return bars, nil
}
