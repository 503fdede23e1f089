package provider

import (
	"fmt"
	"time"

	"github.com/sitshu/stock-analyst/internal/cache"
	"github.com/sitshu/stock-analyst/internal/metrics"
	"github.com/sitshu/stock-analyst/internal/model"
)

// CachedFetcher shadows repeated provider calls with an expiring cache.
// Cache misses and failures fall straight through to the inner fetcher, so
// output never depends on cache state.
type CachedFetcher struct {
	inner Fetcher
	store *cache.Store
	ttl   time.Duration
}

// NewCachedFetcher wraps inner with the given store and time to live.
func NewCachedFetcher(inner Fetcher, store *cache.Store, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{inner: inner, store: store, ttl: ttl}
}

func (c *CachedFetcher) Name() string { return c.inner.Name() + "+cache" }

func (c *CachedFetcher) PriceHistory(ticker string, q HistoryQuery) ([]model.PriceBar, error) {
	key := fmt.Sprintf("prices:%s:%d:%d:%s:%s",
		ticker, q.Start.Unix(), q.End.Unix(), q.Period, q.Interval)
	var bars []model.PriceBar
	if hit, err := c.store.Get(key, &bars); err == nil && hit {
		metrics.CacheHitsTotal.Inc()
		return bars, nil
	}
	metrics.CacheMissesTotal.Inc()
	metrics.ProviderFetchesTotal.WithLabelValues("prices").Inc()
	bars, err := c.inner.PriceHistory(ticker, q)
	if err != nil {
		return nil, err
	}
	_ = c.store.Set(key, bars, c.ttl)
	return bars, nil
}

func (c *CachedFetcher) EarningsDates(ticker string, limit int) ([]model.EarningsEvent, error) {
	key := fmt.Sprintf("earnings:%s:%d", ticker, limit)
	var events []model.EarningsEvent
	if hit, err := c.store.Get(key, &events); err == nil && hit {
		metrics.CacheHitsTotal.Inc()
		return events, nil
	}
	metrics.CacheMissesTotal.Inc()
	metrics.ProviderFetchesTotal.WithLabelValues("earnings").Inc()
	events, err := c.inner.EarningsDates(ticker, limit)
	if err != nil {
		return nil, err
	}
	_ = c.store.Set(key, events, c.ttl)
	return events, nil
}

func (c *CachedFetcher) Info(ticker string) (map[string]any, error) {
	key := "info:" + ticker
	var info map[string]any
	if hit, err := c.store.Get(key, &info); err == nil && hit {
		metrics.CacheHitsTotal.Inc()
		return info, nil
	}
	metrics.CacheMissesTotal.Inc()
	metrics.ProviderFetchesTotal.WithLabelValues("info").Inc()
	info, err := c.inner.Info(ticker)
	if err != nil {
		return nil, err
	}
	_ = c.store.Set(key, info, c.ttl)
	return info, nil
}

func (c *CachedFetcher) LastClose(ticker string) (float64, error) {
	key := "lastclose:" + ticker
	var price float64
	if hit, err := c.store.Get(key, &price); err == nil && hit {
		metrics.CacheHitsTotal.Inc()
		return price, nil
	}
	metrics.CacheMissesTotal.Inc()
	metrics.ProviderFetchesTotal.WithLabelValues("lastclose").Inc()
	price, err := c.inner.LastClose(ticker)
	if err != nil {
		return 0, err
	}
	_ = c.store.Set(key, price, c.ttl)
	return price, nil
}
