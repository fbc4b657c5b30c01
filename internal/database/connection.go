package database

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/abojja9/sleep-better-ai/internal/config"
)

type DB struct {
	*sql.DB
	driver string
}

// NewConnection creates a new database connection using the provided config.
// The sqlite3 driver is the default and keeps the store in a single local
// file; mysql is available for deployments that already run a server.
func NewConnection(cfg *config.DBConfig) (*DB, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = "sqlite3"
	}

	db, err := sql.Open(driver, cfg.DataSource())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool. sqlite gets a single connection so writes
	// are serialized at the pool, not just inside the engine.
	maxOpen := cfg.MaxOpenConns
	if driver == "sqlite3" {
		maxOpen = 1
	}
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db, driver: driver}, nil
}

// Driver reports which sql driver the connection was opened with.
func (db *DB) Driver() string {
	return db.driver
}

// HealthCheck performs a simple health check on the database
func (db *DB) HealthCheck() error {
	return db.Ping()
}
