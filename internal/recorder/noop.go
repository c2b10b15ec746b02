package recorder

import (
	"time"

	"PriceSentinel/internal/model"
)

// NoopCache is a no-op implementation used when SQLite is not configured.
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (n *NoopCache) LoadBars(_ string) ([]model.OHLCV, time.Time, error) {
	return nil, time.Time{}, nil
}
func (n *NoopCache) StoreBars(_ string, _ []model.OHLCV) error { return nil }
func (n *NoopCache) Close() error                             { return nil }
