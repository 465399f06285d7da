// Package dbtest builds throwaway stores for service tests: an in-memory SQLite database with
// the production schema, and a postgres-dialect gorm handle backed by sqlmock for failure paths.
package dbtest

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/natashawa225/sea-catering/internal/platform/db"
	"github.com/natashawa225/sea-catering/pkg/config"
)

// NewSQLite returns a migrated in-memory database private to t.
func NewSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	log := zap.NewNop().Sugar()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), db.NewGormConfig(log, gormlogger.Silent))
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(log, gdb))
	return gdb
}

// NewSQLMock returns a postgres-dialect gorm handle whose statements are answered by mock.
func NewSQLMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), db.NewGormConfig(zap.NewNop().Sugar(), gormlogger.Silent))
	require.NoError(t, err)
	return gdb, mock
}

// NewGuard returns a store guard with a breaker threshold high enough to stay closed in tests.
func NewGuard() *db.Guard {
	cfg := &config.Config{StoreBreaker: config.BreakerConfig{FailureThreshold: 1000}}
	return db.NewGuard(cfg, zap.NewNop().Sugar())
}
