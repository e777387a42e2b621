package datasource

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Elephante152/habitat/models"

	"golang.org/x/time/rate"
)

// RateLimitedWeatherProvider wraps a WeatherProvider with rate limiting
type RateLimitedWeatherProvider struct {
	provider WeatherProvider
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedWeatherProvider creates a new rate limited weather provider
// rps is the maximum requests per second allowed (can be fractional for less than 1 request per second)
// burst is the maximum burst size allowed
func NewRateLimitedWeatherProvider(provider WeatherProvider, rps float64, burst int) *RateLimitedWeatherProvider {
	return &RateLimitedWeatherProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

// GetWeather fetches current conditions, respecting rate limits
func (r *RateLimitedWeatherProvider) GetWeather(ctx context.Context, city string, unit models.UnitSystem) (models.WeatherSnapshot, error) {
	if err := wait(ctx, r.limiter, r.name); err != nil {
		return models.WeatherSnapshot{}, err
	}
	return r.provider.GetWeather(ctx, city, unit)
}

// Name returns the provider name
func (r *RateLimitedWeatherProvider) Name() string {
	return r.name
}

// RateLimitedForecastSource wraps a ForecastSource with rate limiting
type RateLimitedForecastSource struct {
	source  ForecastSource
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedForecastSource creates a new rate limited forecast source
func NewRateLimitedForecastSource(source ForecastSource, rps float64, burst int) *RateLimitedForecastSource {
	return &RateLimitedForecastSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// FetchForecast fetches forecast days, respecting rate limits
func (r *RateLimitedForecastSource) FetchForecast(ctx context.Context, city string, unit models.UnitSystem) ([]models.ForecastDay, error) {
	if err := wait(ctx, r.limiter, r.name); err != nil {
		return nil, err
	}
	return r.source.FetchForecast(ctx, city, unit)
}

// Name returns the source name
func (r *RateLimitedForecastSource) Name() string {
	return r.name
}

// RateLimitedProvider limits both endpoints of a Provider independently
type RateLimitedProvider struct {
	*RateLimitedWeatherProvider
	*RateLimitedForecastSource
}

// NewRateLimitedProvider wraps each endpoint of provider in its own limiter
func NewRateLimitedProvider(provider Provider, weatherRPS, forecastRPS float64, burst int) *RateLimitedProvider {
	return &RateLimitedProvider{
		RateLimitedWeatherProvider: NewRateLimitedWeatherProvider(provider, weatherRPS, burst),
		RateLimitedForecastSource:  NewRateLimitedForecastSource(provider, forecastRPS, burst),
	}
}

// Name returns the provider name
func (r *RateLimitedProvider) Name() string {
	return r.RateLimitedWeatherProvider.Name()
}

func wait(ctx context.Context, limiter *rate.Limiter, name string) error {
	if limiter.Tokens() < 1 {
		slog.DebugContext(ctx, "waiting for rate limiter", "provider", name)
	}
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return nil
}

// Verify that our rate limited types implement the required interfaces
var (
	_ WeatherProvider = (*RateLimitedWeatherProvider)(nil)
	_ ForecastSource  = (*RateLimitedForecastSource)(nil)
	_ Provider        = (*RateLimitedProvider)(nil)
)
