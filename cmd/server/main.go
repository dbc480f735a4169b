package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/voltguard/backend/internal/config"
	"github.com/voltguard/backend/internal/db"
	"github.com/voltguard/backend/internal/geocode"
	httpapi "github.com/voltguard/backend/internal/http"
	"github.com/voltguard/backend/internal/ratelimit"
	"github.com/voltguard/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "voltguard-backend").Logger()

	ctx := context.Background()
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure schema")
	}

	var limiter ratelimit.RateLimiter
	if cfg.RedisURL != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		limiter = ratelimit.NewRedisRateLimiter(client)
		logger.Info().Msg("using redis rate limiter")
	} else {
		limiter = ratelimit.NewMemoryRateLimiter()
		logger.Info().Msg("using in-memory rate limiter")
	}

	var geocoder geocode.Geocoder
	if cfg.GeocodeEnabled {
		geocoder = &geocode.NominatimGeocoder{BaseURL: cfg.NominatimURL}
		logger.Info().Msg("gps backfill enabled")
	}

	roster := service.DefaultRoster()

	router := httpapi.Router(cfg, store, roster, geocoder, limiter, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
