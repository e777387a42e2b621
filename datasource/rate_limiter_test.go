package datasource

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Elephante152/habitat/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingProvider struct {
	weatherCalls  atomic.Int32
	forecastCalls atomic.Int32
}

func (p *countingProvider) Name() string { return "Counting" }

func (p *countingProvider) GetWeather(ctx context.Context, city string, unit models.UnitSystem) (models.WeatherSnapshot, error) {
	p.weatherCalls.Add(1)
	return models.WeatherSnapshot{City: city, Unit: unit}, nil
}

func (p *countingProvider) FetchForecast(ctx context.Context, city string, unit models.UnitSystem) ([]models.ForecastDay, error) {
	p.forecastCalls.Add(1)
	return []models.ForecastDay{{Day: "Mon", Unit: unit}}, nil
}

func TestRateLimitedProvider_Name(t *testing.T) {
	p := NewRateLimitedProvider(&countingProvider{}, 1, 1, 1)
	assert.Equal(t, "Counting [Rate Limited]", p.Name())
}

func TestRateLimitedProvider_ForwardsWithinBurst(t *testing.T) {
	inner := &countingProvider{}
	p := NewRateLimitedProvider(inner, 1, 1, 2)

	for i := 0; i < 2; i++ {
		w, err := p.GetWeather(context.Background(), "Chicago", models.Metric)
		require.NoError(t, err)
		assert.Equal(t, "Chicago", w.City)

		days, err := p.FetchForecast(context.Background(), "Chicago", models.Imperial)
		require.NoError(t, err)
		assert.Len(t, days, 1)
	}

	assert.EqualValues(t, 2, inner.weatherCalls.Load())
	assert.EqualValues(t, 2, inner.forecastCalls.Load())
}

func TestRateLimitedWeatherProvider_WaitCanceled(t *testing.T) {
	inner := &countingProvider{}
	p := NewRateLimitedWeatherProvider(inner, 0.001, 1)

	_, err := p.GetWeather(context.Background(), "Houston", models.Metric)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = p.GetWeather(ctx, "Houston", models.Metric)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait canceled")
	assert.False(t, IsUnavailable(err))
	assert.EqualValues(t, 1, inner.weatherCalls.Load())
}

func TestRateLimitedForecastSource_LimitsIndependently(t *testing.T) {
	inner := &countingProvider{}
	p := NewRateLimitedProvider(inner, 0.001, 0.001, 1)

	_, err := p.GetWeather(context.Background(), "Phoenix", models.Metric)
	require.NoError(t, err)

	// the weather call must not consume the forecast budget
	_, err = p.FetchForecast(context.Background(), "Phoenix", models.Metric)
	require.NoError(t, err)
}

func TestIsUnavailable(t *testing.T) {
	statusErr := &StatusError{Provider: "OpenWeatherMap", StatusCode: 404, Body: `{"message":"city not found"}`}

	assert.True(t, IsUnavailable(statusErr))
	assert.True(t, errors.Is(statusErr, ErrLocationNotFound))
	assert.True(t, IsUnavailable(errors.Join(ErrMalformedPayload, errors.New("eof"))))
	assert.False(t, IsUnavailable(errors.New("dial tcp: connection refused")))
	assert.Contains(t, statusErr.Error(), "status 404")
}
