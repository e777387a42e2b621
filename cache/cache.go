package cache

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Elephante152/habitat/datasource"
	"github.com/Elephante152/habitat/models"

	"github.com/jonboulle/clockwork"
)

// CachedWeatherProvider wraps a WeatherProvider and caches successful lookups
type CachedWeatherProvider struct {
	provider       datasource.WeatherProvider
	cache          map[string]cacheEntry
	mutex          sync.RWMutex
	cacheDuration  time.Duration
	clock          clockwork.Clock
	cacheHitCount  int
	cacheMissCount int
}

// cacheEntry represents a cached snapshot with its timestamp
type cacheEntry struct {
	Data      models.WeatherSnapshot
	Timestamp time.Time
}

// NewCachedWeatherProvider creates a new cached wrapper around a weather provider
func NewCachedWeatherProvider(provider datasource.WeatherProvider, cacheDuration time.Duration, clock clockwork.Clock) *CachedWeatherProvider {
	return &CachedWeatherProvider{
		provider:      provider,
		cache:         make(map[string]cacheEntry),
		cacheDuration: cacheDuration,
		clock:         clock,
	}
}

// Name returns the name of the underlying provider with a [Cached] suffix
func (c *CachedWeatherProvider) Name() string {
	return c.provider.Name() + " [Cached]"
}

// GetWeather returns a cached snapshot when one is fresh, otherwise fetches
func (c *CachedWeatherProvider) GetWeather(ctx context.Context, city string, unit models.UnitSystem) (models.WeatherSnapshot, error) {
	key := cacheKey(city, unit)

	c.mutex.RLock()
	entry, found := c.cache[key]
	c.mutex.RUnlock()

	if found && c.clock.Since(entry.Timestamp) < c.cacheDuration {
		c.mutex.Lock()
		c.cacheHitCount++
		c.mutex.Unlock()

		slog.DebugContext(ctx, "weather cache hit",
			"key", key, "provider", c.provider.Name(), "age", c.clock.Since(entry.Timestamp).Round(time.Second))
		return entry.Data, nil
	}

	c.mutex.Lock()
	c.cacheMissCount++
	c.mutex.Unlock()

	slog.DebugContext(ctx, "weather cache miss", "key", key, "provider", c.provider.Name())

	data, err := c.provider.GetWeather(ctx, city, unit)
	if err != nil {
		return models.WeatherSnapshot{}, err
	}

	c.mutex.Lock()
	c.cache[key] = cacheEntry{
		Data:      data,
		Timestamp: c.clock.Now(),
	}
	c.mutex.Unlock()

	return data, nil
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedWeatherProvider) CacheStats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cacheHitCount, c.cacheMissCount
}

func cacheKey(city string, unit models.UnitSystem) string {
	return strings.ToLower(strings.TrimSpace(city)) + ":" + string(unit)
}

// Ensure CachedWeatherProvider implements the WeatherProvider interface
var _ datasource.WeatherProvider = (*CachedWeatherProvider)(nil)
