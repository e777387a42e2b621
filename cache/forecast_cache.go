package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Elephante152/habitat/datasource"
	"github.com/Elephante152/habitat/models"

	"github.com/jonboulle/clockwork"
)

// CachedForecastSource wraps a ForecastSource and adds caching functionality
type CachedForecastSource struct {
	source         datasource.ForecastSource
	cache          map[string]forecastCacheEntry // key is city:units
	mutex          sync.RWMutex
	cacheDuration  time.Duration
	clock          clockwork.Clock
	cacheHitCount  int
	cacheMissCount int
}

type forecastCacheEntry struct {
	Data      []models.ForecastDay
	Timestamp time.Time
}

// NewCachedForecastSource creates a new cached wrapper around a forecast source
func NewCachedForecastSource(source datasource.ForecastSource, cacheDuration time.Duration, clock clockwork.Clock) *CachedForecastSource {
	return &CachedForecastSource{
		source:        source,
		cache:         make(map[string]forecastCacheEntry),
		cacheDuration: cacheDuration,
		clock:         clock,
	}
}

// Name returns the name of the underlying forecast source with a [Cached] suffix
func (c *CachedForecastSource) Name() string {
	return c.source.Name() + " [Cached]"
}

// FetchForecast fetches forecast days, using cache when available
func (c *CachedForecastSource) FetchForecast(ctx context.Context, city string, unit models.UnitSystem) ([]models.ForecastDay, error) {
	key := cacheKey(city, unit)

	c.mutex.RLock()
	entry, found := c.cache[key]
	c.mutex.RUnlock()

	if found && c.clock.Since(entry.Timestamp) < c.cacheDuration {
		c.mutex.Lock()
		c.cacheHitCount++
		c.mutex.Unlock()

		slog.DebugContext(ctx, "forecast cache hit",
			"key", key, "source", c.source.Name(), "age", c.clock.Since(entry.Timestamp).Round(time.Second))
		return cloneDays(entry.Data), nil
	}

	c.mutex.Lock()
	c.cacheMissCount++
	c.mutex.Unlock()

	slog.DebugContext(ctx, "forecast cache miss", "key", key, "source", c.source.Name())

	days, err := c.source.FetchForecast(ctx, city, unit)
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	c.cache[key] = forecastCacheEntry{
		Data:      cloneDays(days),
		Timestamp: c.clock.Now(),
	}
	c.mutex.Unlock()

	return days, nil
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedForecastSource) CacheStats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cacheHitCount, c.cacheMissCount
}

func cloneDays(days []models.ForecastDay) []models.ForecastDay {
	return append([]models.ForecastDay(nil), days...)
}

// Ensure CachedForecastSource implements ForecastSource
var _ datasource.ForecastSource = (*CachedForecastSource)(nil)
