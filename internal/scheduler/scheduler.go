package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/pogo-weather/internal/weather"
)

// Runner is the part of weather.Service the scheduler drives.
type Runner interface {
	RunIngestion(ctx context.Context) weather.RunSummary
	RunReport(ctx context.Context) weather.RunSummary
}

// Config holds the cron expressions for both pipelines.
type Config struct {
	IngestCron string
	ReportCron string
	// Timeout bounds a single pipeline run.
	Timeout time.Duration
}

// Scheduler triggers the ingestion and report pipelines on cron schedules.
type Scheduler struct {
	scheduler *gocron.Scheduler
	runner    Runner
	cfg       Config
	logger    *slog.Logger
}

// New creates a new Scheduler.
func New(cfg Config, runner Runner, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	s := gocron.NewScheduler(time.UTC)
	// A slow run must not overlap the next tick of the same job.
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		runner:    runner,
		cfg:       cfg,
		logger:    logger.With("component", "scheduler"),
	}
}

// Start registers both jobs and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.cfg.IngestCron == "" && s.cfg.ReportCron == "" {
		return errors.New("scheduler: no cron expressions configured")
	}

	if s.cfg.IngestCron != "" {
		if _, err := s.scheduler.Cron(s.cfg.IngestCron).Tag(weather.PipelineIngest).Do(s.runIngest); err != nil {
			return err
		}
	}
	if s.cfg.ReportCron != "" {
		if _, err := s.scheduler.Cron(s.cfg.ReportCron).Tag(weather.PipelineReport).Do(s.runReport); err != nil {
			return err
		}
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler started", "ingest_cron", s.cfg.IngestCron, "report_cron", s.cfg.ReportCron)
	return nil
}

func (s *Scheduler) runIngest() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()
	s.logSummary(s.runner.RunIngestion(ctx))
}

func (s *Scheduler) runReport() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()
	s.logSummary(s.runner.RunReport(ctx))
}

func (s *Scheduler) logSummary(summary weather.RunSummary) {
	s.logger.Info("scheduled run finished",
		"pipeline", summary.Pipeline,
		"request_time", summary.RequestTime,
		"status", summary.Status(),
		"locations", len(summary.Results),
	)
}

// Jobs returns the number of registered jobs.
func (s *Scheduler) Jobs() int {
	return s.scheduler.Len()
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
