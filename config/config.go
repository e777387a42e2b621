package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv   string
	LogLevel slog.Level
	HTTPAddr string

	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	WeatherHTTPTimeout time.Duration
	RateLimitEnabled   bool
	RateLimitRPS       float64
	RateLimitBurst     int
	CacheTTL           time.Duration

	SessionIdleTimeout time.Duration
	BackdropInterval   time.Duration
	UnlockDuration     time.Duration

	// OTLPEndpoint is the gRPC collector address; empty disables tracing.
	OTLPEndpoint string
	ServiceName  string
}

func LoadFromEnv() (Config, error) {
	appEnv := env("APP_ENV", "dev")
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	level, err := parseLogLevel(env("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	timeout, err := envDuration("WEATHER_HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, err
	}

	rpsStr := env("WEATHER_RATE_LIMIT_RPS", "1")
	rps, err := strconv.ParseFloat(rpsStr, 64)
	if err != nil || rps <= 0 {
		return Config{}, fmt.Errorf("invalid WEATHER_RATE_LIMIT_RPS %q: must be a positive number", rpsStr)
	}

	burstStr := env("WEATHER_RATE_LIMIT_BURST", "5")
	burst, err := strconv.Atoi(burstStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid WEATHER_RATE_LIMIT_BURST %q: %w", burstStr, err)
	}
	if burst < 1 {
		return Config{}, fmt.Errorf("invalid WEATHER_RATE_LIMIT_BURST %q: must be at least 1", burstStr)
	}

	cacheTTL, err := envDuration("WEATHER_CACHE_TTL", 0)
	if err != nil {
		return Config{}, err
	}

	idle, err := envDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute)
	if err != nil {
		return Config{}, err
	}

	backdrop, err := envDuration("BACKDROP_INTERVAL", 5*time.Second)
	if err != nil {
		return Config{}, err
	}

	unlock, err := envDuration("UNLOCK_DURATION", 2*time.Second)
	if err != nil {
		return Config{}, err
	}

	return Config{
		AppEnv:             appEnv,
		LogLevel:           level,
		HTTPAddr:           env("HTTP_ADDR", ":8080"),
		OpenWeatherAPIKey:  strings.TrimSpace(os.Getenv("OPENWEATHER_API_KEY")),
		OpenWeatherBaseURL: strings.TrimRight(env("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"), "/"),
		WeatherHTTPTimeout: timeout,
		RateLimitEnabled:   true,
		RateLimitRPS:       rps,
		RateLimitBurst:     burst,
		CacheTTL:           cacheTTL,
		SessionIdleTimeout: idle,
		BackdropInterval:   backdrop,
		UnlockDuration:     unlock,
		OTLPEndpoint:       strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		ServiceName:        env("OTEL_SERVICE_NAME", "habitat-weather"),
	}, nil
}

func env(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key, raw)
	}
	return d, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}
