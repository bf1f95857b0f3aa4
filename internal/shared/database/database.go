package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/config"
)

// DB wraps both GORM and the underlying sql.DB
type DB struct {
	*sql.DB
	GORM    *gorm.DB
	Dialect string // postgres or sqlite
}

// NewDB opens PostgreSQL when DATABASE_URL is set and falls back to a SQLite
// file under DATA_DIR otherwise.
func NewDB(cfg *config.Config) (*DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	if !cfg.IsProduction() {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var (
		gormDB  *gorm.DB
		dialect string
		err     error
	)
	if cfg.DatabaseURL != "" {
		dialect = "postgres"
		gormDB, err = gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	} else {
		dialect = "sqlite"
		if mkErr := os.MkdirAll(filepath.Dir(cfg.SQLitePath()), 0755); mkErr != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", mkErr)
		}
		gormDB, err = gorm.Open(sqlite.Open(cfg.SQLitePath()+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Connection pool settings
	if dialect == "postgres" {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	} else {
		// SQLite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().Str("dialect", dialect).Msg("database connected")
	return &DB{DB: sqlDB, GORM: gormDB, Dialect: dialect}, nil
}

// OpenSQLite opens a SQLite database with a silent logger. Used by tests and
// tooling with DSNs such as "file:name?mode=memory&cache=shared".
func OpenSQLite(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// AutoMigrate creates or updates tables for the given models. PostgreSQL
// deployments are expected to run cmd/migrate instead.
func (db *DB) AutoMigrate(models ...interface{}) error {
	if db.Dialect != "sqlite" {
		return nil
	}
	if err := db.GORM.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}
	return nil
}

func (db *DB) Close() error {
	log.Info().Msg("closing database connection")
	return db.DB.Close()
}
