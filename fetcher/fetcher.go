// Package fetcher runs the current-weather and forecast lookups for a search
// and turns their outcomes into display messages.
package fetcher

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/Elephante152/habitat/datasource"
	"github.com/Elephante152/habitat/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// User-visible messages, one per failure class.
const (
	MsgCityNotFound        = "City not found. Please check the spelling or try another city."
	MsgForecastUnavailable = "The city either does not exist or is not supported."
	MsgNetwork             = "An error occurred while fetching data. Please try again later."
)

var tracer = otel.Tracer("github.com/Elephante152/habitat/fetcher")

// Result is the outcome of one search. WeatherError and ForecastError are
// tracked per call path; Message is the one shown to the user.
type Result struct {
	Weather       *models.WeatherSnapshot `json:"weather"`
	Forecast      []models.ForecastDay    `json:"forecast"`
	WeatherError  string                  `json:"weatherError,omitempty"`
	ForecastError string                  `json:"forecastError,omitempty"`
	Message       string                  `json:"message,omitempty"`
}

// Failed reports whether any path produced an error
func (r Result) Failed() bool {
	return r.Message != ""
}

// Fetcher issues both lookups for a city concurrently
type Fetcher struct {
	weather  datasource.WeatherProvider
	forecast datasource.ForecastSource
}

// New creates a Fetcher
func New(weather datasource.WeatherProvider, forecast datasource.ForecastSource) *Fetcher {
	return &Fetcher{weather: weather, forecast: forecast}
}

// Search fetches current weather and forecast for city. The returned error is
// non-nil only when ctx ends before both lookups settle; lookup failures are
// reported through the Result.
func (f *Fetcher) Search(ctx context.Context, city string, unit models.UnitSystem) (Result, error) {
	city = strings.TrimSpace(city)

	ctx, span := tracer.Start(ctx, "fetcher.search", trace.WithAttributes(
		attribute.String("city", city),
		attribute.String("units", string(unit)),
	))
	defer span.End()

	var (
		wg          sync.WaitGroup
		snapshot    models.WeatherSnapshot
		days        []models.ForecastDay
		weatherErr  error
		forecastErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		snapshot, weatherErr = f.weather.GetWeather(ctx, city, unit)
	}()
	go func() {
		defer wg.Done()
		days, forecastErr = f.forecast.FetchForecast(ctx, city, unit)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, "search superseded")
		return Result{}, err
	}

	result := Result{Forecast: []models.ForecastDay{}}

	if isTransport(weatherErr) || isTransport(forecastErr) {
		result.WeatherError = MsgNetwork
		result.ForecastError = MsgNetwork
		result.Message = MsgNetwork
		span.RecordError(firstNonNil(weatherErr, forecastErr))
		span.SetStatus(codes.Error, "transport failure")
		slog.WarnContext(ctx, "weather search failed", "city", city, "units", unit,
			"weatherErr", weatherErr, "forecastErr", forecastErr)
		return result, nil
	}

	if weatherErr != nil {
		result.WeatherError = MsgCityNotFound
		span.RecordError(weatherErr)
	} else {
		result.Weather = &snapshot
	}

	if forecastErr != nil {
		result.ForecastError = MsgForecastUnavailable
		span.RecordError(forecastErr)
	} else if days != nil {
		result.Forecast = days
	}

	// current weather outranks forecast when both fail
	switch {
	case result.WeatherError != "":
		result.Message = result.WeatherError
	case result.ForecastError != "":
		result.Message = result.ForecastError
	}

	if result.Failed() {
		span.SetStatus(codes.Error, result.Message)
		slog.InfoContext(ctx, "weather search incomplete", "city", city, "units", unit,
			"weatherErr", weatherErr, "forecastErr", forecastErr)
	} else {
		slog.InfoContext(ctx, "weather search completed", "city", city, "units", unit,
			"condition", snapshot.Condition, "forecastDays", len(result.Forecast))
	}
	span.SetAttributes(attribute.Int("forecast.days", len(result.Forecast)))

	return result, nil
}

func isTransport(err error) bool {
	return err != nil && !datasource.IsUnavailable(err)
}

func firstNonNil(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
