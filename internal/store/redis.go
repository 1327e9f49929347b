package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/i474232898/pogo-weather/internal/weather"
)

const redisKeyPrefix = "forecast:"

// RedisOptions configures a RedisStore.
type RedisOptions struct {
	Addr         string
	Password     string
	DB           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// TTL applied to each bucket hash (0 = keep forever).
	TTL       time.Duration
	PageLimit int
}

// RedisStore keeps each bucket as a hash of record id -> JSON record.
type RedisStore struct {
	client    *redis.Client
	ttl       time.Duration
	pageLimit int
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}

	return NewRedisStoreWithClient(client, opts.TTL, opts.PageLimit), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration, pageLimit int) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, pageLimit: pageLimit}
}

func redisKey(bucketKey string) string {
	return redisKeyPrefix + bucketKey
}

// PutRecord stores the record in its bucket hash. HSETNX keeps writes
// idempotent by id.
func (s *RedisStore) PutRecord(ctx context.Context, record weather.ForecastRecord) error {
	if err := validateRecord(record); err != nil {
		return err
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", record.ID, err)
	}

	key := redisKey(record.BucketKey())
	pipe := s.client.Pipeline()
	pipe.HSetNX(ctx, key, record.ID, payload)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis write %s: %w", key, err)
	}
	return nil
}

// QueryBucket loads every record of the bucket hash.
func (s *RedisStore) QueryBucket(ctx context.Context, locationID, requestHour string) (weather.QueryResult, error) {
	key := redisKey(weather.BucketKey(locationID, requestHour))

	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return weather.QueryResult{}, fmt.Errorf("redis read %s: %w", key, err)
	}

	ids := make([]string, 0, len(fields))
	for id := range fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]weather.ForecastRecord, 0, len(ids))
	for _, id := range ids {
		var r weather.ForecastRecord
		if err := json.Unmarshal([]byte(fields[id]), &r); err != nil {
			return weather.QueryResult{}, fmt.Errorf("decode record %s in %s: %w", id, key, err)
		}
		records = append(records, r)
	}

	return page(records, s.pageLimit), nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
