package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Options struct {
	Dialect      string
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// NewDatabase opens the pool for the configured dialect. MySQL covers the
// MariaDB deployments as well.
func NewDatabase(opts Options, logger *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(opts)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewGormLogger(logger),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", opts.Dialect, err)
	}

	if err := TunePool(db, opts); err != nil {
		return nil, err
	}
	return db, nil
}

func dialectorFor(opts Options) (gorm.Dialector, error) {
	switch opts.Dialect {
	case "postgres", "":
		return postgres.New(postgres.Config{
			DSN:                  opts.URL,
			PreferSimpleProtocol: true,
		}), nil
	case "mysql":
		return mysql.Open(opts.URL), nil
	default:
		return nil, fmt.Errorf("unsupported dialect %q", opts.Dialect)
	}
}

func TunePool(db *gorm.DB, opts Options) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("pool: %w", err)
	}
	maxOpen, maxIdle := opts.MaxOpenConns, opts.MaxIdleConns
	if maxOpen <= 0 {
		maxOpen = 20
	}
	if maxIdle <= 0 {
		maxIdle = 10
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
