package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "LOG_LEVEL", "HTTP_ADDR", "OPENWEATHER_API_KEY", "OPENWEATHER_BASE_URL",
		"WEATHER_HTTP_TIMEOUT", "WEATHER_RATE_LIMIT_RPS", "WEATHER_RATE_LIMIT_BURST", "WEATHER_CACHE_TTL",
		"SESSION_IDLE_TIMEOUT", "BACKDROP_INTERVAL", "UNLOCK_DURATION",
		"OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_SERVICE_NAME",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Empty(t, cfg.OpenWeatherAPIKey, "a missing key is not a startup error")
	assert.Equal(t, "https://api.openweathermap.org/data/2.5", cfg.OpenWeatherBaseURL)
	assert.Equal(t, 10*time.Second, cfg.WeatherHTTPTimeout)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, 1.0, cfg.RateLimitRPS)
	assert.Equal(t, 5, cfg.RateLimitBurst)
	assert.Zero(t, cfg.CacheTTL)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, 5*time.Second, cfg.BackdropInterval)
	assert.Equal(t, 2*time.Second, cfg.UnlockDuration)
	assert.Empty(t, cfg.OTLPEndpoint)
	assert.Equal(t, "habitat-weather", cfg.ServiceName)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("OPENWEATHER_API_KEY", " secret ")
	t.Setenv("OPENWEATHER_BASE_URL", "http://localhost:9999/data/2.5/")
	t.Setenv("WEATHER_CACHE_TTL", "90s")
	t.Setenv("WEATHER_RATE_LIMIT_RPS", "0.5")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel-collector:4317")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.AppEnv)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, "secret", cfg.OpenWeatherAPIKey)
	assert.Equal(t, "http://localhost:9999/data/2.5", cfg.OpenWeatherBaseURL)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, 0.5, cfg.RateLimitRPS)
	assert.Equal(t, "otel-collector:4317", cfg.OTLPEndpoint)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"APP_ENV", "staging", `invalid APP_ENV "staging"`},
		{"LOG_LEVEL", "loud", `invalid LOG_LEVEL "loud"`},
		{"WEATHER_HTTP_TIMEOUT", "soon", `invalid WEATHER_HTTP_TIMEOUT "soon"`},
		{"WEATHER_RATE_LIMIT_RPS", "-1", `invalid WEATHER_RATE_LIMIT_RPS "-1"`},
		{"WEATHER_RATE_LIMIT_BURST", "0", `invalid WEATHER_RATE_LIMIT_BURST "0"`},
		{"SESSION_IDLE_TIMEOUT", "-5m", `invalid SESSION_IDLE_TIMEOUT "-5m"`},
		{"UNLOCK_DURATION", "two", `invalid UNLOCK_DURATION "two"`},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadFromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
