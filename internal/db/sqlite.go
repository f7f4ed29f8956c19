package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteOpts struct {
	MaxOpenConns int
	PingTimeout  time.Duration
}

// NewSQLiteConnection opens (and creates if needed) the store file.
// WAL mode keeps concurrent aggregation reads from blocking each other.
func NewSQLiteConnection(path string, opts SQLiteOpts) (*sqlx.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("empty SQLite path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	// Foreign keys stay logically declared but unenforced: an order may
	// reference a customer whose row was rejected during validation.
	dsn := path + "?_journal_mode=WAL&_synchronous=NORMAL"
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// go-sqlite3 serializes writes; one writer connection avoids SQLITE_BUSY
	// during the bulk load.
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	} else {
		db.SetMaxOpenConns(1)
	}

	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
