package config

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "task-tracker.com/task-tracker/pkg/models"
)

// NewDatabaseClient opens the database named by dsn and creates the tables.
// postgres:// URLs use the Postgres driver, anything else is a SQLite path.
func NewDatabaseClient(dsn string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	if isPostgres(dsn) {
		db, err := gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("db open failed: %w", err)
		}
		return db, migrate(db)
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("db open failed: %w", err)
	}

	// SQLite only allows one writer; a single connection also keeps the
	// foreign_keys pragma in effect for every statement.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return db, migrate(db)
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Task{}, &model.Comment{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
