package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"

	"github.com/georgemunganga/intloko-backend/internal/app"
	"github.com/georgemunganga/intloko-backend/internal/config"
	"github.com/georgemunganga/intloko-backend/internal/database"
	"github.com/georgemunganga/intloko-backend/internal/httpx"
	"github.com/georgemunganga/intloko-backend/internal/modules/auth"
	"github.com/georgemunganga/intloko-backend/internal/modules/catalog"
	"github.com/georgemunganga/intloko-backend/internal/modules/dashboard"
	"github.com/georgemunganga/intloko-backend/internal/modules/health"
	"github.com/georgemunganga/intloko-backend/internal/modules/location"
	"github.com/georgemunganga/intloko-backend/internal/modules/profile"
	"github.com/georgemunganga/intloko-backend/internal/modules/storage"
	"github.com/georgemunganga/intloko-backend/internal/modules/user"
	"github.com/georgemunganga/intloko-backend/internal/modules/vendor"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	// ── Database ────────────────────────────────────────────
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("connected to the database")

	checks := map[string]health.Check{"database": db.PingContext}

	// ── Geocoder ────────────────────────────────────────────
	var geocoder location.Geocoder
	switch cfg.Geocoder.Provider {
	case config.GeocoderNominatim:
		geocoder = location.NewNominatim(cfg.Geocoder.BaseURL, cfg.Geocoder.UserAgent, cfg.Geocoder.Timeout, logger)
	default:
		geocoder = location.NewGoogle(cfg.Geocoder.APIKey, cfg.Geocoder.BaseURL, cfg.Geocoder.Timeout, logger)
	}

	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		geocoder = location.NewCachedGeocoder(geocoder, rdb, cfg.Redis.CacheTTL, logger)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	sessions := location.NewSessions(cfg.Geocoder.Debounce, cfg.Geocoder.SessionIdle)
	resolver := location.NewResolver(geocoder, sessions, location.ResolverConfig{
		Country:        cfg.Geocoder.Country,
		MinQueryLength: cfg.Geocoder.MinQueryLength,
	}, logger)

	// ── Storage ─────────────────────────────────────────────
	storageClient := storage.NewClient(cfg.Storage.BaseURL, cfg.Storage.ServiceKey, cfg.Storage.Timeout, logger)
	uploader := storage.NewUploader(storageClient, cfg.Storage.Bucket, logger)

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo, logger)

	profileRepo := profile.NewPostgresRepository(db)
	profileService := profile.NewService(profileRepo, logger)

	authService := auth.NewService(userService, userRepo, profileService, cfg.Auth, logger)

	// ── Vendors & Catalog ───────────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo, logger)

	seedCtx, cancelSeed := context.WithTimeout(ctx, 10*time.Second)
	_, err = catalogService.SeedDefaults(seedCtx)
	cancelSeed()
	if err != nil {
		return err
	}

	vendorRepo := vendor.NewPostgresRepository(db)
	vendorService := vendor.NewService(vendorRepo, uploader, resolver, logger)

	dashboardService := dashboard.NewService(vendorService, profileService, logger)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(httpx.AccessLog(logger))
	router.Use(middleware.Recoverer)

	health.NewHandler(checks, logger).RegisterRoutes(router)
	auth.NewHandler(authService, logger).RegisterRoutes(router)

	router.Group(func(r chi.Router) {
		r.Use(auth.RequireSession(authService, logger))

		user.NewHandler(userService, logger).RegisterRoutes(r)
		profile.NewHandler(profileService, logger).RegisterRoutes(r)
		catalog.NewHandler(catalogService, logger).RegisterRoutes(r)
		location.NewHandler(resolver, logger).RegisterRoutes(r)
		vendor.NewHandler(vendorService, cfg.Server.MaxUploadBytes, logger).RegisterRoutes(r)
		dashboard.NewHandler(dashboardService, logger).RegisterRoutes(r)
	})

	// ── Start Server ────────────────────────────────────────
	logger.Info("iNtloko admin API starting", slog.String("addr", cfg.Server.Addr()))
	return app.Serve(ctx, cfg.Server, router, logger)
}
