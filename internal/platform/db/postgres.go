package db

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/natashawa225/sea-catering/internal/models"
	cfgpkg "github.com/natashawa225/sea-catering/pkg/config"
	"github.com/natashawa225/sea-catering/pkg/gormlog"
)

// NewGormConfig is shared by the service and tests so timestamps are always stored in UTC.
func NewGormConfig(l *zap.SugaredLogger, level gormlogger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger:  gormlog.New(l, level),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}
}

// NewDB opens the postgres pool described by database.* and verifies it with a ping.
func NewDB(l *zap.SugaredLogger, cfg *cfgpkg.Config) (*gorm.DB, error) {
	dc := cfg.Database
	if dc.DSN == "" {
		return nil, fmt.Errorf("database.dsn is empty: %w", gorm.ErrInvalidDB)
	}
	level := gormlogger.Info
	if cfg.Env == cfgpkg.EnvProd {
		level = gormlogger.Warn
	}
	gdb, err := gorm.Open(postgres.Open(dc.DSN), NewGormConfig(l, level))
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if dc.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(dc.MaxOpenConns)
	}
	if dc.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(dc.MaxIdleConns)
	}
	if dc.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(dc.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	l.Infow("connected to postgres", "max_open_conns", dc.MaxOpenConns)
	return gdb, nil
}

var Module = fx.Options(
	fx.Provide(NewDB),
	fx.Provide(NewGuard),
	fx.Invoke(AutoMigrate),
	fx.Invoke(registerDBClose),
)

// AutoMigrate creates or updates the schema. It runs on startup and from the migrate command.
func AutoMigrate(l *zap.SugaredLogger, gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&models.Subscription{},
		&models.SubscriptionLog{},
		&models.Testimonial{},
		&models.UserRole{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	l.Infow("automigrate completed")
	return nil
}

// registerDBClose closes the pool when the app stops.
func registerDBClose(lc fx.Lifecycle, l *zap.SugaredLogger, gdb *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				l.Warnw("gorm: get sql.DB failed", "err", err)
				return nil
			}
			l.Infow("closing postgres connection pool")
			return sqlDB.Close()
		},
	})
}
