package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/temperature-trend/internal/api/http"
	"github.com/i474232898/temperature-trend/internal/climate"
	"github.com/i474232898/temperature-trend/internal/climate/meteostat"
	"github.com/i474232898/temperature-trend/internal/config"
	"github.com/i474232898/temperature-trend/internal/scheduler"
	"github.com/i474232898/temperature-trend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound Meteostat calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	client := meteostat.NewClient(httpClient, meteostat.Options{
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		StationID: cfg.StationID,
		Backoff:   cfg.RateLimit,
	})

	// In-memory run history with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	service := climate.NewService(memStore, climate.NewFetcher(client, cfg.EndYear), climate.RunConfig{
		StationID: cfg.StationID,
		StartYear: cfg.StartYear,
		EndYear:   cfg.EndYear,
		Workers:   cfg.Workers,
		ChunkSize: cfg.ChunkSize,
	})

	// Scheduler that periodically refetches the whole range.
	sched := scheduler.New(cfg.RefreshInterval, cfg.RunTimeout, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "temperature-trend",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
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

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "temperature-trend",
		})
	})

	httpapi.RegisterRoutes(app, service)

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
