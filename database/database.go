package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vistoria-service/config"

	"github.com/apex/log"
	_ "github.com/go-sql-driver/mysql"
)

// Sentinel errors the handlers map to HTTP statuses.
var (
	// ErrRouteNotFound means the route id does not exist.
	ErrRouteNotFound = errors.New("rota não encontrada")

	// ErrInspectionNotFound means no finalized inspection exists for the route.
	ErrInspectionNotFound = errors.New("nenhuma vistoria concluída ou cancelada encontrada")

	// ErrStateConflict means the route's status no longer allows the requested
	// transition. Raised by the status-guarded updates, so the loser of a
	// concurrent start/finalize race gets this instead of a double commit.
	ErrStateConflict = errors.New("conflito de status da rota")
)

// Database handles all database operations
type Database struct {
	db *sql.DB
}

// NewDatabase creates a new database connection and verifies the schema.
func NewDatabase(cfg *config.Config) (*Database, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&multiStatements=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := InitSchema(db); err != nil {
		return nil, err
	}

	log.Infof("Database connected successfully to %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)

	return &Database{db: db}, nil
}

// NewWithDB wraps an existing connection. Used by tests with sqlmock.
func NewWithDB(db *sql.DB) *Database {
	return &Database{db: db}
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}
