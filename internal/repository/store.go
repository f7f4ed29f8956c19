package repository

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jmehdipour/order-insights/internal/logger"
	"github.com/jmehdipour/order-insights/internal/metrics"
	"github.com/jmehdipour/order-insights/internal/model"
	"github.com/jmehdipour/order-insights/internal/util"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed schema.sql
var schemaSQL string

// LoadReport summarizes one full reload.
type LoadReport struct {
	LoadID    string `json:"load_id"`
	Customers int    `json:"customers"`
	Orders    int    `json:"orders"`
}

// Store is the persistence gateway. It owns the entity lifecycle: a reload
// wipes and repopulates both tables; rows are never updated individually.
type Store struct {
	db        *sqlx.DB
	customers CustomersRepository
	orders    OrdersRepository
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:        db,
		customers: NewCustomersRepository(db),
		orders:    NewOrdersRepository(db),
	}
}

// DB exposes the underlying handle for read-side repositories.
func (s *Store) DB() *sqlx.DB { return s.db }

// Migrate drops and recreates the schema. Statements run one at a time so
// the same embedded file works on sqlite and mysql without multiStatements.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}

// Initialize wipes the store and inserts every validated customer followed
// by every validated order, in input order, inside a single transaction.
// A duplicate natural key aborts the whole load; nothing is committed.
func (s *Store) Initialize(ctx context.Context, customers []model.Customer, orders []model.Order) (LoadReport, error) {
	report := LoadReport{LoadID: util.NewLoadID()}

	if err := s.Migrate(ctx); err != nil {
		metrics.LoadsTotal.WithLabelValues("error").Inc()
		return report, fmt.Errorf("recreate schema: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		metrics.LoadsTotal.WithLabelValues("error").Inc()
		return report, fmt.Errorf("begin load tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range customers {
		if err := s.customers.Insert(ctx, tx, c); err != nil {
			metrics.LoadsTotal.WithLabelValues("error").Inc()
			return report, fmt.Errorf("insert customer %d: %w", c.CustomerID, err)
		}
	}
	for _, o := range orders {
		if err := s.orders.Insert(ctx, tx, o); err != nil {
			metrics.LoadsTotal.WithLabelValues("error").Inc()
			return report, fmt.Errorf("insert order %d: %w", o.OrderID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		metrics.LoadsTotal.WithLabelValues("error").Inc()
		return report, fmt.Errorf("commit load tx: %w", err)
	}

	report.Customers = len(customers)
	report.Orders = len(orders)
	metrics.LoadsTotal.WithLabelValues("ok").Inc()

	logger.Log.Info("store initialized",
		zap.String("load_id", report.LoadID),
		zap.Int("customers", report.Customers),
		zap.Int("orders", report.Orders),
	)
	return report, nil
}

// IsEmpty reports whether the store holds no customers and no orders.
// A store whose tables do not exist yet counts as empty.
func (s *Store) IsEmpty(ctx context.Context) (bool, error) {
	customers, orders, err := s.Counts(ctx)
	if err != nil {
		// Missing tables mean the schema was never created.
		return true, nil
	}
	return customers == 0 && orders == 0, nil
}

// Counts returns current row counts for bootstrap logging.
func (s *Store) Counts(ctx context.Context) (int64, int64, error) {
	customers, err := s.customers.Count(ctx)
	if err != nil {
		return 0, 0, err
	}
	orders, err := s.orders.Count(ctx)
	if err != nil {
		return 0, 0, err
	}
	return customers, orders, nil
}
