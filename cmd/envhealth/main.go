package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/paragon-dao/paragondao-org-sub001/internal/api/http"
	"github.com/paragon-dao/paragondao-org-sub001/internal/config"
	"github.com/paragon-dao/paragondao-org-sub001/internal/env"
	"github.com/paragon-dao/paragondao-org-sub001/internal/providers"
	"github.com/paragon-dao/paragondao-org-sub001/internal/scheduler"
	"github.com/paragon-dao/paragondao-org-sub001/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Saved-location store. A broken store disables persistence but never
	// blocks startup; resolution falls through to IP geolocation.
	var locStore env.LocationStore
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		log.Printf("cannot create data dir, running without persistence: %v", err)
	} else {
		sqlStore, err := store.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			log.Printf("cannot open location store, running without persistence: %v", err)
		} else {
			defer sqlStore.Close()
			locStore = sqlStore
		}
	}

	// Device position source, when the host provides one.
	var gps env.GPSSource
	if cfg.GPSLat != nil && cfg.GPSLon != nil {
		gps = providers.NewStaticGPS(*cfg.GPSLat, *cfg.GPSLon)
	}

	resolver := env.NewResolver(locStore, providers.DefaultGeoChain(httpClient), gps)

	// Ground-station provider only when a credential is present.
	var ground env.GroundStationProvider
	if cfg.WAQIToken != "" {
		ground = providers.NewWAQIStation(httpClient, cfg.WAQIToken)
	}

	service := env.NewService(
		resolver,
		providers.NewOpenMeteoWeather(httpClient),
		providers.NewOpenMeteoAir(httpClient),
		ground,
		providers.NewOpenMeteoGeocoder(httpClient),
		env.NewReportCache(cfg.CacheTTL),
	)

	// Background job keeping the cached report warm.
	sched := scheduler.New(service, cfg.RefreshInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "envhealth",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "envhealth",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
