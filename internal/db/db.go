package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kitchen/internal/config"
	applog "kitchen/internal/log"
	"kitchen/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Dialector picks the GORM driver for a database URL. postgres:// and
// postgresql:// URLs use the postgres driver; sqlite:// and file: URLs use
// sqlite.
func Dialector(url string) (gorm.Dialector, error) {
	trimmed := strings.TrimSpace(url)
	switch {
	case trimmed == "":
		return nil, fmt.Errorf("database URL must not be empty")
	case strings.HasPrefix(trimmed, "postgres://"), strings.HasPrefix(trimmed, "postgresql://"):
		return postgres.Open(trimmed), nil
	case strings.HasPrefix(trimmed, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(trimmed, "sqlite://")), nil
	case strings.HasPrefix(trimmed, "file:"):
		return sqlite.Open(trimmed), nil
	default:
		return nil, fmt.Errorf("unsupported database URL scheme: %q", trimmed)
	}
}

// GormConfig returns the GORM settings shared by every connection.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Warn),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: false,
		},
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Initialize opens the database named by cfg.URL and applies the pool limits.
func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.URL)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, GormConfig())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if cfg.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	return db, nil
}

// AutoMigrate creates or updates the kitchen schema, join tables included.
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database handle is nil")
	}

	return db.AutoMigrate(
		&models.Role{},
		&models.Cook{},
		&models.DishType{},
		&models.Dish{},
		&models.Ingredient{},
	)
}

// Configure opens the database and migrates the schema.
func Configure(cfg config.DatabaseConfig) (*gorm.DB, error) {
	database, err := Initialize(cfg)
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(database); err != nil {
		return nil, err
	}

	applog.Debug(context.Background(), "database schema migrated")

	return database, nil
}
