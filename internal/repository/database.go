package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dsp4life2020-woodz/trippintv/internal/dto"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxConnectAttempts = 5
	connectRetryDelay  = 2 * time.Second
)

// GormConfig turns driver errors into gorm sentinels so unique index violations can be told apart.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

func OpenPostgres(ctx context.Context, databaseURL string) (*gorm.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= maxConnectAttempts; attempt++ {
		db, err := gorm.Open(postgres.Open(databaseURL), GormConfig())
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				sqlDB.SetMaxOpenConns(10)
				sqlDB.SetMaxIdleConns(2)
				sqlDB.SetConnMaxLifetime(time.Hour)
				if dbErr = sqlDB.PingContext(ctx); dbErr == nil {
					logrus.Info("database connected")
					return db, nil
				}
				_ = sqlDB.Close()
			}
			err = dbErr
		}
		lastErr = err

		logrus.Warnf("database connection attempt %d/%d failed: %v", attempt, maxConnectAttempts, err)
		if attempt < maxConnectAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(connectRetryDelay):
			}
		}
	}
	return nil, fmt.Errorf("%w: %v", dto.ErrStoreUnavailable, lastErr)
}

func storeError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", dto.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", dto.ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: referenced row missing: %v", dto.ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %v", dto.ErrStoreUnavailable, err)
	}
}
