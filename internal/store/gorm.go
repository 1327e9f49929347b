package store

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/i474232898/pogo-weather/internal/weather"
)

// ForecastRecordModel is the table row for a forecast record.
type ForecastRecordModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	BucketKey    string `gorm:"index;not null;size:64"`
	LocationID   string `gorm:"not null;size:32"`
	LocationName string `gorm:"size:128"`
	RequestTime  string `gorm:"not null;size:32"`
	DateTime     string `gorm:"size:32"`
	WeatherIcon  int
	IsDaylight   bool
	WindSpeed    float64
	WindGust     float64
}

func (ForecastRecordModel) TableName() string {
	return "forecast_records"
}

func recordToModel(r weather.ForecastRecord) ForecastRecordModel {
	return ForecastRecordModel{
		ID:           r.ID,
		BucketKey:    r.BucketKey(),
		LocationID:   r.LocationID,
		LocationName: r.LocationName,
		RequestTime:  r.RequestTime,
		DateTime:     r.DateTime,
		WeatherIcon:  r.WeatherIcon,
		IsDaylight:   r.IsDaylight,
		WindSpeed:    r.WindSpeed,
		WindGust:     r.WindGust,
	}
}

func modelToRecord(m ForecastRecordModel) weather.ForecastRecord {
	return weather.ForecastRecord{
		ID:           m.ID,
		LocationID:   m.LocationID,
		LocationName: m.LocationName,
		RequestTime:  m.RequestTime,
		DateTime:     m.DateTime,
		WeatherIcon:  m.WeatherIcon,
		IsDaylight:   m.IsDaylight,
		WindSpeed:    m.WindSpeed,
		WindGust:     m.WindGust,
	}
}

// GormStore implements weather.Store on a SQL database through GORM.
type GormStore struct {
	db        *gorm.DB
	pageLimit int
}

// gormConfig disables the implicit per-create transaction; every write is a
// single-row insert.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	}
}

// OpenPostgres connects to Postgres and migrates the records table.
func OpenPostgres(dsn string, pageLimit int) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewGormStore(db, pageLimit, true)
}

// OpenSQLite opens (or creates) a SQLite database and migrates it.
func OpenSQLite(path string, pageLimit int) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return NewGormStore(db, pageLimit, true)
}

// NewGormStore wraps db, optionally running AutoMigrate.
func NewGormStore(db *gorm.DB, pageLimit int, migrate bool) (*GormStore, error) {
	if migrate {
		if err := db.AutoMigrate(&ForecastRecordModel{}); err != nil {
			return nil, fmt.Errorf("migrate forecast_records: %w", err)
		}
	}
	return &GormStore{db: db, pageLimit: pageLimit}, nil
}

// PutRecord inserts the record, ignoring a duplicate id.
func (s *GormStore) PutRecord(ctx context.Context, record weather.ForecastRecord) error {
	if err := validateRecord(record); err != nil {
		return err
	}
	model := recordToModel(record)
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&model)
	if result.Error != nil {
		return fmt.Errorf("insert record %s: %w", record.ID, result.Error)
	}
	return nil
}

// QueryBucket selects the bucket's rows, reading one row past the page limit
// to detect truncation.
func (s *GormStore) QueryBucket(ctx context.Context, locationID, requestHour string) (weather.QueryResult, error) {
	key := weather.BucketKey(locationID, requestHour)

	q := s.db.WithContext(ctx).Where("bucket_key = ?", key).Order("id")
	if s.pageLimit > 0 {
		q = q.Limit(s.pageLimit + 1)
	}

	var models []ForecastRecordModel
	if err := q.Find(&models).Error; err != nil {
		return weather.QueryResult{}, fmt.Errorf("query bucket %s: %w", key, err)
	}

	records := make([]weather.ForecastRecord, 0, len(models))
	for _, m := range models {
		records = append(records, modelToRecord(m))
	}
	return page(records, s.pageLimit), nil
}

// Close closes the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
