package weather

import (
	"context"
	"time"
)

// ForecastFetcher retrieves the raw hourly forecast for a provider location ID.
type ForecastFetcher interface {
	FetchHourly(ctx context.Context, locationID string) (ProviderResponse, error)
}

// RecordWriter persists a single record. Writes are idempotent by record ID.
type RecordWriter interface {
	PutRecord(ctx context.Context, record ForecastRecord) error
}

// RecordReader looks up every record stored under a bucket key.
type RecordReader interface {
	QueryBucket(ctx context.Context, locationID, requestHour string) (QueryResult, error)
}

// Store is the contract every backing store (memory, Redis, SQL) satisfies.
type Store interface {
	RecordWriter
	RecordReader
}

// Notifier delivers a rendered forecast to the chat channel.
type Notifier interface {
	Send(ctx context.Context, username, content string) error
}

// Clock supplies the run timestamp.
type Clock interface {
	Now() time.Time
}

// IDGenerator issues unique record identifiers. Implementations must be safe
// for concurrent use.
type IDGenerator interface {
	NewID() string
}

// Metrics receives pipeline outcome counts.
type Metrics interface {
	ObserveFetch(locationID, outcome string)
	ObserveWrite(locationID, outcome string)
	ObserveReport(locationID, outcome string)
	ObserveRun(pipeline string, duration time.Duration, failed int)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

type noopMetrics struct{}

func (noopMetrics) ObserveFetch(string, string) {}
func (noopMetrics) ObserveWrite(string, string) {}
func (noopMetrics) ObserveReport(string, string) {}
func (noopMetrics) ObserveRun(string, time.Duration, int) {}
