// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/templates/loyalty-backend/internal/admin"
	"github.com/carterperez-dev/templates/loyalty-backend/internal/config"
	"github.com/carterperez-dev/templates/loyalty-backend/internal/core"
	"github.com/carterperez-dev/templates/loyalty-backend/internal/customer"
	"github.com/carterperez-dev/templates/loyalty-backend/internal/health"
	"github.com/carterperez-dev/templates/loyalty-backend/internal/metrics"
	"github.com/carterperez-dev/templates/loyalty-backend/internal/middleware"
	"github.com/carterperez-dev/templates/loyalty-backend/internal/server"
	"github.com/carterperez-dev/templates/loyalty-backend/migrations"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
		"store", cfg.Store.Driver,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	var db *core.Database
	var repo customer.Repository
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err = core.NewDatabase(ctx, cfg.Database)
		if err != nil {
			return err
		}
		logger.Info("database connected",
			"max_open_conns", cfg.Database.MaxOpenConns,
			"max_idle_conns", cfg.Database.MaxIdleConns,
		)

		if cfg.Database.AutoMigrate {
			if err := db.Migrate(ctx, migrations.FS); err != nil {
				return err
			}
			logger.Info("database migrations applied")
		}

		repo = customer.NewPostgresRepository(db.DB)
	default:
		repo = customer.NewMemoryRepository()
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redis.Configured() {
		logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)
	}

	customerSvc := customer.NewService(repo, customer.WithLogger(logger))

	seeds, err := loadSeeds(cfg.Store)
	if err != nil {
		return err
	}
	total, err := customerSvc.Seed(ctx, seeds)
	if err != nil {
		return err
	}
	logger.Info("customers seeded", "fixtures", len(seeds), "stored", total)

	customerHandler := customer.NewHandler(customerSvc)

	deps := []health.Dependency{{Name: "store", Checker: customerSvc}}
	if redis.Configured() {
		deps = append(deps, health.Dependency{Name: "redis", Checker: redis})
	}
	healthHandler := health.NewHandler(deps...)

	adminCfg := admin.HandlerConfig{Store: customerSvc}
	if db != nil {
		adminCfg.DBStats = db.Stats
	}
	if redis.Configured() {
		adminCfg.RedisStats = redis.PoolStats
		adminCfg.RedisPing = redis.Ping
	}
	adminHandler := admin.NewHandler(adminCfg)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.Tracing(cfg.Otel.ServiceName))
	router.Use(middleware.Logger(logger))
	if cfg.Metrics.Enabled {
		router.Use(metrics.Middleware)
	}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(redis.RawClient(), middleware.RateLimitConfig{
			Limit: middleware.Every(
				cfg.RateLimit.Window,
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			KeyFunc:    middleware.KeyByIPAndEndpoint,
			FailOpen:   true,
			BypassFunc: operationalPath(cfg.Metrics.Path),
		})
		defer limiter.Close()
		router.Use(limiter.Handler)
	}
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)
	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, metrics.Handler())
	}

	router.Route("/api", func(r chi.Router) {
		customerHandler.RegisterRoutes(r)
		adminHandler.RegisterRoutes(r)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+cfg.Server.DrainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, cfg.Server.DrainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if db != nil {
		if err := db.Close(); err != nil {
			logger.Error("database close error", "error", err)
		}
	}

	logger.Info("application stopped")
	return nil
}

// operationalPath exempts probes and scrapes from the rate limiter.
func operationalPath(metricsPath string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		switch r.URL.Path {
		case "/healthz", "/livez", "/readyz", metricsPath:
			return true
		}
		return false
	}
}

func loadSeeds(cfg config.StoreConfig) ([]customer.Customer, error) {
	if cfg.SeedPath == "" {
		return customer.DefaultCustomers(), nil
	}

	seeds, err := customer.LoadSeedFile(cfg.SeedPath)
	if err != nil {
		return nil, fmt.Errorf("load seeds from %s: %w", cfg.SeedPath, err)
	}
	return seeds, nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
