package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpapi "github.com/i474232898/pogo-weather/internal/api/http"
	"github.com/i474232898/pogo-weather/internal/config"
	"github.com/i474232898/pogo-weather/internal/logger"
	"github.com/i474232898/pogo-weather/internal/metrics"
	"github.com/i474232898/pogo-weather/internal/notify"
	"github.com/i474232898/pogo-weather/internal/scheduler"
	"github.com/i474232898/pogo-weather/internal/store"
	"github.com/i474232898/pogo-weather/internal/weather"
	"github.com/i474232898/pogo-weather/internal/weather/providers"
)

func main() {
	runOnce := flag.String("run", "", "run a single pipeline (ingest|report) and exit")
	flag.Parse()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	log := logger.New("pogo-weather", cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Forecast store selected by STORE_BACKEND.
	st, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		log.Error("failed to open store", "backend", cfg.Store.Backend, "err", err)
		os.Exit(1)
	}
	defer st.Close()

	// Shared HTTP client for outbound provider and webhook calls.
	httpClient := &http.Client{
		Timeout: cfg.AccuWeather.HTTPTimeout,
	}

	fetcher := providers.NewAccuWeatherProvider(providers.AccuWeatherParams{
		Client:  httpClient,
		APIKey:  cfg.AccuWeather.APIKey,
		BaseURL: cfg.AccuWeather.BaseURL,
	})

	var notifier weather.Notifier
	if cfg.Discord.Configured() {
		notifier = notify.NewDiscordNotifier(notify.DiscordParams{
			Client:    httpClient,
			BaseURL:   cfg.Discord.BaseURL,
			WebhookID: cfg.Discord.WebhookID,
			Token:     cfg.Discord.Token,
		})
	} else {
		log.Warn("discord webhook not configured; reports will be logged only")
		notifier = notify.NewLogNotifier(log)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	service := weather.NewService(weather.ServiceParams{
		Catalog:     weather.DefaultCatalog,
		PullHours:   cfg.PullHours(),
		Fetcher:     fetcher,
		Store:       st,
		Notifier:    notifier,
		Classifier:  weather.NewClassifier(cfg.Thresholds()),
		Username:    cfg.Discord.Username,
		Concurrency: cfg.Pipeline.Concurrency,
		Metrics:     collector,
		Logger:      log,
	})

	if *runOnce != "" {
		code := runSingle(ctx, service, *runOnce)
		_ = st.Close()
		os.Exit(code)
	}

	// Scheduler that triggers both pipelines.
	sched := scheduler.New(scheduler.Config{
		IngestCron: cfg.Pipeline.IngestCron,
		ReportCron: cfg.Pipeline.ReportCron,
	}, service, log)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "err", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "pogo-weather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// Manual pipeline runs are served synchronously.
		WriteTimeout:          3 * time.Minute,
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

	app.Use(fiberlogger.New())
	app.Use(recover.New())

	httpapi.RegisterRoutes(app, service, registry)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "err", err)
		}
	}()
	log.Info("pogo-weather started", "port", cfg.Port, "store", cfg.Store.Backend)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "err", err)
	}
}

// runSingle executes one pipeline invocation, prints its summary and returns
// the process exit code.
func runSingle(ctx context.Context, service *weather.Service, pipeline string) int {
	var summary weather.RunSummary
	switch pipeline {
	case weather.PipelineIngest:
		summary = service.RunIngestion(ctx)
	case weather.PipelineReport:
		summary = service.RunReport(ctx)
	default:
		fmt.Fprintf(os.Stderr, "unknown pipeline %q (want %s or %s)\n", pipeline, weather.PipelineIngest, weather.PipelineReport)
		return 2
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(summary)

	if summary.Status() == "failure" {
		return 1
	}
	return 0
}
