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
	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "weatherplaces/internal/api/http"
	"weatherplaces/internal/config"
	"weatherplaces/internal/geocode"
	"weatherplaces/internal/place"
	"weatherplaces/internal/poi"
	"weatherplaces/internal/resolver"
	"weatherplaces/internal/scheduler"
	"weatherplaces/internal/state"
	"weatherplaces/internal/store"
	"weatherplaces/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()
	sugar := zlog.Sugar()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.WeatherTimeout,
	}

	// Record store: redis when configured, in-memory otherwise.
	var recordStore place.Store
	if cfg.RedisAddr != "" {
		redisClient := redisv9.NewClient(&redisv9.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		recordStore = store.NewRedisStore(redisClient)
		sugar.Infow("using redis record store", "addr", cfg.RedisAddr)
	} else {
		recordStore = store.NewMemoryStore()
		sugar.Infow("using in-memory record store")
	}

	// Geocoder: Google when a key is configured, Nominatim otherwise.
	var geocoder geocode.Geocoder
	if cfg.GoogleGeocodeAPIKey != "" {
		geocoder = geocode.NewGoogleGeocoder(cfg.GoogleGeocodeAPIKey)
	} else {
		var opts []geocode.NominatimOption
		if cfg.NominatimBaseURL != "" {
			opts = append(opts, geocode.WithNominatimBaseURL(cfg.NominatimBaseURL))
		}
		geocoder = geocode.NewNominatimGeocoder(httpClient, opts...)
	}

	weatherClient := providers.NewOneCallClient(httpClient, cfg.OneCallAPIKey,
		providers.WithTimeout(cfg.WeatherTimeout))

	poiSearcher := poi.NewOverpassSearcher(cfg.OverpassEndpoint, cfg.WeatherTimeout)

	stateStore := state.New(cfg.DefaultLocationName, cfg.DefaultLatitude, cfg.DefaultLongitude)

	res := resolver.New(geocoder, weatherClient, poiSearcher, recordStore, stateStore, sugar,
		resolver.Config{
			DefaultLocationName: cfg.DefaultLocationName,
			DefaultLatitude:     cfg.DefaultLatitude,
			DefaultLongitude:    cfg.DefaultLongitude,
			POILimit:            cfg.POILimit,
		})

	// Load the default location once at startup.
	go res.ResolveDefaultIfNeeded(context.Background())

	// Periodic weather refresh for the selected location.
	sched := scheduler.New(res, cfg.RefreshInterval, sugar)
	if err := sched.Start(); err != nil {
		sugar.Fatalw("failed to start scheduler", "error", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weatherplaces",
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
			"service": "weatherplaces",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, res, stateStore)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			sugar.Errorw("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		sugar.Errorw("error during shutdown", "error", err)
	}
}
