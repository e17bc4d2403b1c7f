// Package database opens the relational store behind the storefront.
//
// Supported drivers: sqlite (default), postgres, mysql, sqlserver. The handle
// returned by Open is passed explicitly to repositories; nothing in this
// package holds a process-wide connection.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/config"
)

// Options tunes the connection pool and query logging.
type Options struct {
	Driver        string
	DSN           string
	MaxOpenConns  int
	MaxIdleConns  int
	SlowThreshold time.Duration
}

// OptionsFromConfig reads driver, DSN and pool sizes from config.
func OptionsFromConfig() Options {
	return Options{
		Driver:        config.DatabaseDriver(),
		DSN:           config.DatabaseDSN(),
		MaxOpenConns:  config.DatabaseMaxOpenConns(),
		MaxIdleConns:  config.DatabaseMaxIdleConns(),
		SlowThreshold: config.Duration("DB_SLOW_THRESHOLD", 200*time.Millisecond),
	}
}

// Connect opens the database configured in config.
func Connect() (*gorm.DB, error) {
	return Open(OptionsFromConfig())
}

// Open opens the database, configures the pool, installs the metrics
// callbacks and verifies the connection is live.
func Open(opts Options) (*gorm.DB, error) {
	dialector, err := buildDialector(opts.Driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("database: build dialector: %w", err)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newSlogGormLogger(opts.SlowThreshold),
	})
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	if err := registerMetricsCallbacks(db); err != nil {
		return nil, fmt.Errorf("database: register callbacks: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: get sql.DB: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(2 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return db, nil
}

// Ping reports whether the store is reachable.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(sqliteDSN(dsn)), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlserver":
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres, mysql, sqlserver)", driver)
	}
}

// sqliteDSN turns on FK enforcement, which SQLite leaves off unless asked
// per connection, and makes in-memory databases shared by every pooled
// connection. Without cache=shared each connection opens its own empty
// database.
func sqliteDSN(dsn string) string {
	switch {
	case dsn == ":memory:":
		dsn = "file::memory:"
	case !strings.HasPrefix(dsn, "file:"):
		dsn = "file:" + dsn
	}

	var params []string
	inMemory := strings.HasPrefix(dsn, "file::memory:") || strings.Contains(dsn, "mode=memory")
	if inMemory && !strings.Contains(dsn, "cache=") {
		params = append(params, "cache=shared")
	}
	if !strings.Contains(dsn, "_foreign_keys") && !strings.Contains(dsn, "_fk=") {
		params = append(params, "_foreign_keys=on")
	}
	if len(params) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}
