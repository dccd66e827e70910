package database

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/marcboeker/go-duckdb"
)

// DriverName is the database/sql driver of the embedded engine
const DriverName = "duckdb"

var (
	db   *sqlx.DB
	once sync.Once
)

// Config holds engine configuration
type Config struct {
	// Path of the engine database file; empty keeps everything in memory.
	// Only views and the small zone table live there.
	Path        string
	Threads     int    // 0 keeps the engine default
	MemoryLimit string // e.g. "2GB", empty keeps the engine default
	MaxConns    int    // 0 means 1: one pipeline at a time
}

// Open opens a new engine handle
func Open(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	conn, err := sqlx.Open(DriverName, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open engine: %w", err)
	}

	maxConns := cfg.MaxConns
	if maxConns < 1 {
		maxConns = 1
	}
	conn.SetMaxOpenConns(maxConns)
	conn.SetMaxIdleConns(maxConns)

	if cfg.Threads > 0 {
		if _, err := conn.ExecContext(ctx, fmt.Sprintf("SET threads = %d", cfg.Threads)); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set engine threads: %w", err)
		}
	}
	if cfg.MemoryLimit != "" {
		stmt := fmt.Sprintf("SET memory_limit = '%s'", strings.ReplaceAll(cfg.MemoryLimit, "'", "''"))
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to set engine memory limit: %w", err)
		}
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping engine: %w", err)
	}

	return conn, nil
}

// Init initializes the process-wide engine handle
func Init(ctx context.Context, cfg Config) error {
	var err error
	once.Do(func() {
		db, err = Open(ctx, cfg)
	})
	return err
}

// GetDB returns the process-wide engine handle, nil before Init
func GetDB() *sqlx.DB {
	return db
}

// Close closes the process-wide engine handle
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// Transaction executes a function within an engine transaction
func Transaction(ctx context.Context, conn *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
