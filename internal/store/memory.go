package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/i474232898/pogo-weather/internal/weather"
)

// bucket holds the records written under one composite key.
type bucket struct {
	records   map[string]weather.ForecastRecord
	createdAt time.Time
}

// MemoryStore is a concurrency-safe in-memory implementation of weather.Store.
type MemoryStore struct {
	mu sync.RWMutex

	// key: bucket key, value: records by id
	data map[string]*bucket

	// page limit applied to bucket reads (0 = unlimited)
	pageLimit int
	// optional max age for buckets (0 = unlimited)
	maxAge time.Duration

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
func NewMemoryStore(pageLimit int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:      make(map[string]*bucket),
		pageLimit: pageLimit,
		maxAge:    maxAge,
		now:       time.Now,
	}
}

// PutRecord stores a record under its bucket key and enforces retention.
// Writing the same id twice leaves the first copy in place.
func (s *MemoryStore) PutRecord(_ context.Context, record weather.ForecastRecord) error {
	if err := validateRecord(record); err != nil {
		return err
	}
	key := record.BucketKey()
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.data[key]
	if !ok {
		b = &bucket{records: make(map[string]weather.ForecastRecord), createdAt: now}
		s.data[key] = b
	}
	if _, exists := b.records[record.ID]; !exists {
		b.records[record.ID] = record
	}

	if s.maxAge > 0 {
		cutoff := now.Add(-s.maxAge)
		for k, other := range s.data {
			if other.createdAt.Before(cutoff) {
				delete(s.data, k)
			}
		}
	}
	return nil
}

// QueryBucket returns the records stored under the bucket key, in id order.
func (s *MemoryStore) QueryBucket(_ context.Context, locationID, requestHour string) (weather.QueryResult, error) {
	key := weather.BucketKey(locationID, requestHour)

	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.data[key]
	if !ok {
		return weather.QueryResult{}, nil
	}

	records := make([]weather.ForecastRecord, 0, len(b.records))
	for _, r := range b.records {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

	return page(records, s.pageLimit), nil
}

// Close implements io.Closer.
func (s *MemoryStore) Close() error {
	return nil
}
