package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/killallgit/practitioners-pod/internal/models"
	"github.com/killallgit/practitioners-pod/pkg/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const memoryPath = ":memory:"

type DB struct {
	*gorm.DB
}

// Initialize opens the SQLite database described by cfg
func Initialize(cfg config.DatabaseConfig) (*DB, error) {
	path := cfg.Path
	if path == "" {
		path = memoryPath
	}
	inMemory := path == memoryPath

	if !inMemory {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	logLevel := logger.Error
	if cfg.LogQueries {
		logLevel = logger.Info
	}

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true, // unique violations surface as gorm.ErrDuplicatedKey
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(sqlite.Open(dsn(path, cfg, inMemory)), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	if inMemory {
		// every connection to :memory: is a separate database
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(max(cfg.MaxConnections, 1))
		sqlDB.SetMaxIdleConns(max(cfg.MaxIdleConnections, 1))
		sqlDB.SetConnMaxLifetime(cfg.ConnectionMaxLifetime)
	}

	slog.Debug("database opened", "path", path, "wal", cfg.EnableWAL && !inMemory)
	return &DB{DB: db}, nil
}

// dsn appends the pragmas the sqlite3 driver understands as query parameters,
// so they apply to every pooled connection.
func dsn(path string, cfg config.DatabaseConfig, inMemory bool) string {
	var params []string
	if cfg.EnableWAL && !inMemory {
		params = append(params, "_journal_mode=WAL")
	}
	if cfg.EnableForeignKeys {
		params = append(params, "_foreign_keys=on")
	}
	params = append(params, "_busy_timeout=5000")
	return path + "?" + strings.Join(params, "&")
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is working
func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// AutoMigrate runs GORM auto migration for the provided models
func (db *DB) AutoMigrate(models ...any) error {
	if err := db.DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	slog.Info("migrated models", "count", len(models))
	return nil
}

// Migrate brings the schema up to date for every site model
func (db *DB) Migrate() error {
	return db.AutoMigrate(models.All()...)
}

// TableStatus reports whether a model's table exists
type TableStatus struct {
	Table  string
	Exists bool
}

// Status lists each site table and whether it has been created
func (db *DB) Status() ([]TableStatus, error) {
	migrator := db.DB.Migrator()
	out := make([]TableStatus, 0, len(models.All()))
	for _, m := range models.All() {
		stmt := &gorm.Statement{DB: db.DB}
		if err := stmt.Parse(m); err != nil {
			return nil, fmt.Errorf("failed to parse model: %w", err)
		}
		out = append(out, TableStatus{Table: stmt.Schema.Table, Exists: migrator.HasTable(m)})
	}
	return out, nil
}
