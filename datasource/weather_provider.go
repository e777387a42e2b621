package datasource

import (
	"context"

	"github.com/Elephante152/habitat/models"
)

// WeatherProvider is an interface for services that can fetch current weather data
type WeatherProvider interface {
	// GetWeather fetches current conditions for a city in the given unit system
	GetWeather(ctx context.Context, city string, unit models.UnitSystem) (models.WeatherSnapshot, error)

	// Name returns the provider's name
	Name() string
}

// ForecastSource is an interface for services that can fetch daily forecasts
type ForecastSource interface {
	// FetchForecast returns at most models.MaxForecastDays noon samples for a city
	FetchForecast(ctx context.Context, city string, unit models.UnitSystem) ([]models.ForecastDay, error)

	// Name returns the source's name
	Name() string
}

// Provider is implemented by sources that serve both current weather and forecasts
type Provider interface {
	WeatherProvider
	ForecastSource
}
