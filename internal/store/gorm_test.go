package store

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newSQLiteStore(t *testing.T, pageLimit int) *GormStore {
	t.Helper()
	st, err := OpenSQLite(filepath.Join(t.TempDir(), "forecast.db"), pageLimit)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestGormStoreSQLite(t *testing.T) {
	exerciseStore(t, newSQLiteStore(t, 0))
}

func TestGormStoreSQLitePageLimit(t *testing.T) {
	exercisePageLimit(t, newSQLiteStore(t, 2))
}

func newMockedPostgres(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig())
	require.NoError(t, err)

	st, err := NewGormStore(db, 10, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return st, mock
}

func TestGormStorePostgresWriteFailure(t *testing.T) {
	st, mock := newMockedPostgres(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "forecast_records"`)).
		WillReturnError(errors.New("connection reset"))

	err := st.PutRecord(context.Background(), testRecord("r1", "341249", "2024-01-01T14:00:00.000Z", 15))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStorePostgresReadFailure(t *testing.T) {
	st, mock := newMockedPostgres(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "forecast_records" WHERE bucket_key = $1`)).
		WillReturnError(errors.New("timeout"))

	_, err := st.QueryBucket(context.Background(), "341249", "2024-01-01T14")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "341249-2024-01-01T14")
	assert.NoError(t, mock.ExpectationsWereMet())
}
