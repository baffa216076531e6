package database

import (
	"fmt"
	"time"

	"github.com/sangkips/billbook-api/internal/config"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	applog "github.com/sangkips/billbook-api/pkg/logger"
	"github.com/sangkips/billbook-api/pkg/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a connection for the configured driver: postgres, mysql or sqlite.
func NewDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		})
	case "mysql":
		dialector = mysql.Open(cfg.MySQLDSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (use postgres, mysql or sqlite)", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(debug),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	applog.Get().WithField("driver", dialector.Name()).Info("connected to database")
	return db, nil
}

// NewSQLiteDB opens a sqlite database at dsn, e.g. "file:bills?mode=memory&cache=shared".
func NewSQLiteDB(dsn string) (*gorm.DB, error) {
	return NewDB(&config.DatabaseConfig{Driver: "sqlite", Path: dsn}, false)
}

func newGormLogger(debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return logger.New(applog.Get(), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	applog.Get().Info("running database migrations")

	err := db.AutoMigrate(
		&entity.Product{},
		&entity.Bill{},
		&entity.BillItem{},
		&entity.PendingBill{},
		&entity.PendingBillItem{},
		&entity.ManualEntry{},
		&entity.User{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	applog.Get().Info("database migrations completed")
	return nil
}

// SeedDefaultData creates the initial store-mode user when ADMIN_USERNAME and
// ADMIN_PASSWORD are set and no such user exists yet.
func SeedDefaultData(db *gorm.DB, auth *config.AuthConfig) error {
	if auth.SingleUser() || auth.AdminUsername == "" || auth.AdminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("username = ?", auth.AdminUsername).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}
	if count > 0 {
		applog.Get().WithField("username", auth.AdminUsername).Info("admin user already exists")
		return nil
	}

	hashed, err := utils.HashPassword(auth.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	if err := db.Create(&entity.User{Username: auth.AdminUsername, Password: hashed}).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	applog.Get().WithField("username", auth.AdminUsername).Info("admin user created")
	return nil
}
