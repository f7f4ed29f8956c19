package db

import (
	"fmt"

	"github.com/jmehdipour/order-insights/internal/config"
	"github.com/jmoiron/sqlx"
)

// Open connects to the store selected by database.driver.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	switch cfg.Driver {
	case "", "sqlite3":
		return NewSQLiteConnection(cfg.Path, SQLiteOpts{
			MaxOpenConns: cfg.MaxOpenConns,
			PingTimeout:  cfg.PingTimeout,
		})
	case "mysql":
		return NewMySQLConnection(cfg.DSN, MySQLOpts{
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.ConnMaxIdleTime,
			PingTimeout:     cfg.PingTimeout,
		})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
