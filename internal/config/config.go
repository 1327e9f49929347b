package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"

	"github.com/i474232898/pogo-weather/internal/store"
	"github.com/i474232898/pogo-weather/internal/weather"
)

var validate = validator.New()

type AppConfig struct {
	AccuWeather AccuWeatherConfig
	Discord     DiscordConfig
	Pipeline    PipelineConfig
	Store       StoreConfig
	Redis       RedisConfig

	Port     string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
}

type AccuWeatherConfig struct {
	APIKey  string `envconfig:"ACCUWEATHER_API_KEY"`
	BaseURL string `envconfig:"ACCUWEATHER_BASE_URL" default:"https://dataservice.accuweather.com" validate:"required,url"`
	// Timeout for every outbound request (provider and webhook).
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s" validate:"gt=0"`
}

type DiscordConfig struct {
	WebhookID string `envconfig:"DISCORD_WEBHOOK_ID"`
	Token     string `envconfig:"DISCORD_WEBHOOK_TOKEN"`
	BaseURL   string `envconfig:"DISCORD_BASE_URL" default:"https://discord.com/api" validate:"required,url"`
	Username  string `envconfig:"DISCORD_USERNAME" default:"PogoWeather" validate:"required"`
}

// Configured reports whether both webhook credentials are present.
func (d DiscordConfig) Configured() bool {
	return d.WebhookID != "" && d.Token != ""
}

type PipelineConfig struct {
	PullHours          []string `envconfig:"FORECAST_PULL_HOURS" default:"08,16,24" validate:"min=1,dive,numeric,len=2|len=1"`
	WindSpeedThreshold float64  `envconfig:"WIND_SPEED_THRESHOLD" default:"24" validate:"gte=0"`
	WindGustThreshold  float64  `envconfig:"WIND_GUST_THRESHOLD" default:"31" validate:"gte=0"`
	IngestCron         string   `envconfig:"INGEST_CRON" default:"0 * * * *" validate:"required"`
	ReportCron         string   `envconfig:"REPORT_CRON" default:"5 * * * *" validate:"required"`
	Concurrency        int      `envconfig:"PIPELINE_CONCURRENCY" default:"4" validate:"gte=1,lte=64"`
}

type StoreConfig struct {
	Backend     string        `envconfig:"STORE_BACKEND" default:"memory" validate:"oneof=memory redis postgres sqlite"`
	PageLimit   int           `envconfig:"STORE_PAGE_LIMIT" default:"100" validate:"gte=0"`
	MaxAge      time.Duration `envconfig:"STORE_MAX_AGE" default:"48h" validate:"gte=0"`
	DatabaseDSN string        `envconfig:"DATABASE_DSN" validate:"required_if=Backend postgres"`
	SQLitePath  string        `envconfig:"SQLITE_PATH" default:"pogo-weather.db"`
}

type RedisConfig struct {
	Addr         string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"REDIS_PASSWORD"`
	DB           int           `envconfig:"REDIS_DB" default:"0" validate:"gte=0,lte=15"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"3s"`
}

// Load reads configuration from the environment (and an optional .env file)
// and validates it.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}
	return FromEnv()
}

// FromEnv is Load without the .env step.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct constraints and the cron expressions.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := cron.ParseStandard(c.Pipeline.IngestCron); err != nil {
		return fmt.Errorf("invalid INGEST_CRON %q: %w", c.Pipeline.IngestCron, err)
	}
	if _, err := cron.ParseStandard(c.Pipeline.ReportCron); err != nil {
		return fmt.Errorf("invalid REPORT_CRON %q: %w", c.Pipeline.ReportCron, err)
	}
	for h := range c.PullHours() {
		if h > "23" {
			return fmt.Errorf("invalid FORECAST_PULL_HOURS entry %q", h)
		}
	}
	if c.Discord.WebhookID != "" && c.Discord.Token == "" {
		return errors.New("DISCORD_WEBHOOK_TOKEN is required when DISCORD_WEBHOOK_ID is set")
	}
	return nil
}

// PullHours returns the normalized pull-hour set.
func (c *AppConfig) PullHours() weather.PullHours {
	return weather.NewPullHours(c.Pipeline.PullHours...)
}

// Thresholds returns the wind override thresholds.
func (c *AppConfig) Thresholds() weather.Thresholds {
	return weather.Thresholds{
		Speed: c.Pipeline.WindSpeedThreshold,
		Gust:  c.Pipeline.WindGustThreshold,
	}
}

// StoreOptions maps the store settings onto store.Options.
func (c *AppConfig) StoreOptions() store.Options {
	return store.Options{
		Backend:     strings.ToLower(c.Store.Backend),
		PageLimit:   c.Store.PageLimit,
		MaxAge:      c.Store.MaxAge,
		DatabaseDSN: c.Store.DatabaseDSN,
		SQLitePath:  c.Store.SQLitePath,
		Redis: store.RedisOptions{
			Addr:         c.Redis.Addr,
			Password:     c.Redis.Password,
			DB:           c.Redis.DB,
			DialTimeout:  c.Redis.DialTimeout,
			ReadTimeout:  c.Redis.ReadTimeout,
			WriteTimeout: c.Redis.WriteTimeout,
			TTL:          c.Store.MaxAge,
		},
	}
}
