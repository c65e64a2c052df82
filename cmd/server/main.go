package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"starforge/internal/auth"
	"starforge/internal/catalog"
	"starforge/internal/export"
	"starforge/internal/middleware"
	"starforge/internal/orbit"
	"starforge/internal/server"
	serverHandlers "starforge/internal/server/handlers"
	"starforge/internal/shared/config"
	"starforge/internal/shared/cookies"
	"starforge/internal/shared/database"
	"starforge/internal/shared/logger"
	"starforge/internal/shared/objectstore"
	"starforge/internal/shared/redis"
	"starforge/internal/system"
)

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init()

	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.GlobalConfig
	log := slog.With("component", "main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()

	if _, err := db.RunMigrations(ctx, cfg.Database.MigrationsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis", "error", err)
		}
	}()

	store, err := objectstore.Connect(ctx, cfg.Export)
	if err != nil {
		return fmt.Errorf("failed to connect to object store: %w", err)
	}

	catalogSource, err := newCatalogSource(ctx, cfg.Catalog, db)
	if err != nil {
		return fmt.Errorf("failed to set up star catalog: %w", err)
	}

	generator := system.NewGenerator(system.GeneratorConfig{
		Limits:   orbit.Limits{MaxOrbits: cfg.Generation.MaxOrbits, MaxWorlds: cfg.Generation.MaxWorlds},
		MaxStars: cfg.Generation.MaxStarsPerSystem,
	}, slog.Default())

	opts := []system.ServiceOption{system.WithCatalog(catalogSource)}
	healthChecks := []serverHandlers.Check{{Name: "database", Ping: db.PingContext}}

	if redisClient != nil {
		opts = append(opts, system.WithCache(system.NewRedisCache(redisClient.Client, slog.Default())))
		healthChecks = append(healthChecks, serverHandlers.Check{Name: "redis", Ping: redisClient.Ping})
	}
	if store != nil {
		opts = append(opts, system.WithExporter(export.NewService(store.Client, store.Bucket, slog.Default())))
		healthChecks = append(healthChecks, serverHandlers.Check{Name: "object_store", Ping: store.Ping})
	}

	systemService := system.NewService(
		generator,
		system.NewRepository(db, slog.Default()),
		system.ServiceConfig{CacheTTL: cfg.Generation.CacheTTL},
		slog.Default(),
		opts...,
	)

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiration)
	if err != nil {
		return fmt.Errorf("failed to set up token issuer: %w", err)
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)
	go rateLimiter.Run(ctx)

	cookieSettings := cookies.NewSettings(cfg.Frontend.URL, cfg.Auth.CookieSecure, cfg.Auth.CookieSameSite, cfg.Auth.TokenExpiration)
	routes := server.NewRoutes(systemService, tokens, cookieSettings, rateLimiter, healthChecks, slog.Default())
	mux := routes.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      middleware.NewCORS(cfg.Frontend)(mux),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", "port", cfg.Server.Port, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}

	log.Info("Server stopped")
	return nil
}

// newCatalogSource picks the configured catalog backend. The postgres source
// is seeded from the preset file when one is present.
func newCatalogSource(ctx context.Context, cfg config.CatalogConfig, db *database.DB) (catalog.Source, error) {
	log := slog.With("component", "main", "operation", "catalog_setup", "source", cfg.Source)

	switch cfg.Source {
	case config.CatalogSourceFile:
		return catalog.LoadFile(cfg.PresetsPath)

	case config.CatalogSourceRemote:
		return catalog.NewRemoteSource(ctx, catalog.RemoteConfig{
			BaseURL:      cfg.RemoteURL,
			TokenURL:     cfg.TokenURL,
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       cfg.Scopes,
			Timeout:      cfg.Timeout,
		}, slog.Default())

	default:
		repo := catalog.NewRepository(db, slog.Default())
		if cfg.PresetsPath == "" {
			return repo, nil
		}
		if _, err := os.Stat(cfg.PresetsPath); errors.Is(err, os.ErrNotExist) {
			log.Info("No preset file found, catalog will not be seeded", "path", cfg.PresetsPath)
			return repo, nil
		}

		presets, err := catalog.LoadFile(cfg.PresetsPath)
		if err != nil {
			return nil, err
		}
		count, err := repo.UpsertBatch(ctx, presets.Rows(), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
		log.Info("Catalog seeded from presets", "count", count)
		return repo, nil
	}
}
