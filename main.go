package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Elephante152/habitat/api"
	"github.com/Elephante152/habitat/cache"
	"github.com/Elephante152/habitat/config"
	"github.com/Elephante152/habitat/datasource"
	"github.com/Elephante152/habitat/discounts"
	"github.com/Elephante152/habitat/fetcher"
	"github.com/Elephante152/habitat/listing"
	"github.com/Elephante152/habitat/logging"
	"github.com/Elephante152/habitat/providers/openweathermap"
	"github.com/Elephante152/habitat/session"
	"github.com/Elephante152/habitat/suggest"
	"github.com/Elephante152/habitat/telemetry"

	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
)

const (
	appName = "habitat"
	version = "0.1.0"
)

func main() {
	// .env is optional outside local development
	_ = godotenv.Load()

	addr := flag.String("addr", "", "Address to listen on (overrides HTTP_ADDR)")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable OpenWeatherMap rate limiting")
	flag.Parse()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}
	cfg.RateLimitEnabled = *enableRateLimiting

	logger := logging.New(cfg, version, appName)
	slog.SetDefault(logger)

	if cfg.OpenWeatherAPIKey == "" {
		logger.Warn("OPENWEATHER_API_KEY is not set; weather searches will fail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitProvider(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		logger.Error("tracing init failed", "error", err)
		os.Exit(1)
	}

	clock := clockwork.NewRealClock()

	owm := openweathermap.NewProvider(cfg.OpenWeatherAPIKey,
		openweathermap.WithBaseURL(cfg.OpenWeatherBaseURL),
		openweathermap.WithHTTPClient(&http.Client{Timeout: cfg.WeatherHTTPTimeout}),
	)

	var (
		weather  datasource.WeatherProvider = owm
		forecast datasource.ForecastSource  = owm
	)
	if cfg.RateLimitEnabled {
		limited := datasource.NewRateLimitedProvider(owm, cfg.RateLimitRPS, cfg.RateLimitRPS, cfg.RateLimitBurst)
		weather, forecast = limited, limited
		logger.Info("rate limiting enabled", "provider", owm.Name(), "rps", cfg.RateLimitRPS, "burst", cfg.RateLimitBurst)
	}
	if cfg.CacheTTL > 0 {
		weather = cache.NewCachedWeatherProvider(weather, cfg.CacheTTL, clock)
		forecast = cache.NewCachedForecastSource(forecast, cfg.CacheTTL, clock)
		logger.Info("response cache enabled", "ttl", cfg.CacheTTL)
	}

	store := session.NewStore(session.Deps{
		Searcher:         fetcher.New(weather, forecast),
		Normalizer:       suggest.NewNormalizer(suggest.StaticSource{}),
		Resolver:         discounts.NewResolver(discounts.StaticCatalog{}),
		Clock:            clock,
		BackdropInterval: cfg.BackdropInterval,
		UnlockDuration:   cfg.UnlockDuration,
	})

	server := api.NewServer(store, listing.NewIntake(logger), cfg.HTTPAddr)

	go pruneIdleSessions(ctx, clock, store, cfg.SessionIdleTimeout)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
	store.CloseAll()
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown failed", "error", err)
	}

	logger.Info("shutdown complete")
}

// pruneIdleSessions drops sessions nobody has touched within maxIdle
func pruneIdleSessions(ctx context.Context, clock clockwork.Clock, store *session.Store, maxIdle time.Duration) {
	if maxIdle <= 0 {
		return
	}

	ticker := clock.NewTicker(maxIdle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			if n := store.PruneIdle(maxIdle); n > 0 {
				slog.Info("pruned idle sessions", "count", n)
			}
		case <-ctx.Done():
			return
		}
	}
}
