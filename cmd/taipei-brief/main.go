package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/yclin/taipei-brief/internal/api/http"
	"github.com/yclin/taipei-brief/internal/config"
	"github.com/yclin/taipei-brief/internal/httpx"
	"github.com/yclin/taipei-brief/internal/news"
	"github.com/yclin/taipei-brief/internal/pipeline"
	"github.com/yclin/taipei-brief/internal/scheduler"
	"github.com/yclin/taipei-brief/internal/store"
	"github.com/yclin/taipei-brief/internal/telegram"
	"github.com/yclin/taipei-brief/internal/weather"
	"github.com/yclin/taipei-brief/internal/weather/providers"
)

func main() {
	mode := flag.String("mode", "preview", "preview | send | loop")
	iterations := flag.Int("iterations", 0, "in loop mode, stop after this many runs (0 = forever)")
	interval := flag.Duration("interval", 0, "in loop mode, run at this interval instead of on the hour")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client and retry policy for outbound fetch calls.
	httpCfg := httpx.ClientConfig{
		Client: &http.Client{Timeout: cfg.FetchTimeout},
		Retry: httpx.RetryConfig{
			MaxAttempts: cfg.FetchRetries,
			BaseDelay:   cfg.RetryBaseDelay,
		},
	}

	primary := providers.NewOpenMeteoProvider(httpCfg, cfg.Latitude, cfg.Longitude, cfg.Timezone)
	var fallback weather.Provider
	if cfg.FallbackEnabled() {
		fallback = providers.NewOpenWeatherProvider(httpCfg, cfg.OpenWeatherAPIKey, cfg.Latitude, cfg.Longitude)
	}
	weatherSvc := weather.NewService(primary, fallback)

	newsClient := news.NewClient(httpCfg)
	runner := pipeline.NewRunner(cfg, weatherSvc, newsClient)
	dispatcher := telegram.NewDispatcher(cfg, os.Stdout)

	switch *mode {
	case "preview":
		runAndDispatch(runner, dispatcher, telegram.ModePreview, cfg.FetchTimeout)
	case "send":
		// Fail before any network activity when credentials are missing.
		if err := cfg.RequireDelivery(); err != nil {
			log.Fatalf("cannot send: %v", err)
		}
		runAndDispatch(runner, dispatcher, telegram.ModeSend, cfg.FetchTimeout)
	case "loop":
		runLoop(cfg, runner, dispatcher, *iterations, *interval)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

// runAndDispatch is the single-shot path: one pipeline run, one dispatch,
// failures propagate to the exit status.
func runAndDispatch(runner *pipeline.Runner, dispatcher *telegram.Dispatcher, mode telegram.Mode, fetchTimeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*fetchTimeout)
	defer cancel()

	msg, _, err := runner.RunOnce(ctx)
	if err != nil {
		log.Fatalf("briefing run failed: %v", err)
	}
	if err := dispatcher.Dispatch(msg, mode); err != nil {
		log.Fatalf("dispatch failed: %v", err)
	}
}

// runLoop starts the hourly scheduler plus the status API and blocks until a
// signal arrives (or the bounded iteration count is reached).
func runLoop(cfg *config.AppConfig, runner *pipeline.Runner, dispatcher *telegram.Dispatcher, iterations int, interval time.Duration) {
	loopMode := telegram.ModeSend
	if err := cfg.RequireDelivery(); err != nil {
		log.Printf("loop: no delivery credentials (%v); falling back to preview output", err)
		loopMode = telegram.ModePreview
	}

	runs := store.NewMemoryStore(cfg.ReportHistory, 0)

	sched := scheduler.New(runner, dispatcher, runs, loopMode, scheduler.Options{
		Interval:   interval,
		Iterations: iterations,
	})
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "taipei-brief",
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
			"service": "taipei-brief",
		})
	})

	httpapi.RegisterRoutes(app, runs)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if iterations > 0 {
		sched.WaitForCompletion(ctx)
	} else {
		<-ctx.Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
