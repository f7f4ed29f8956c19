package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// StatusCount is one status bucket of the order status distribution.
type StatusCount struct {
	Status string `db:"status"`
	Count  int64  `db:"cnt"`
}

// ProductStat is one per-product aggregate row.
type ProductStat struct {
	Product      string  `db:"product"`
	OrderCount   int64   `db:"order_count"`
	TotalRevenue float64 `db:"total_revenue"`
	AvgRevenue   float64 `db:"avg_revenue"`
}

// ProvinceAmount is the amount rolled up for one province.
type ProvinceAmount struct {
	Province    string  `db:"province"`
	TotalAmount float64 `db:"total_amount"`
}

// MonthRevenue is the revenue summed for one YYYY-MM bucket.
type MonthRevenue struct {
	Month   string  `db:"month"`
	Revenue float64 `db:"revenue"`
}

// StatsRepository runs the aggregation queries the engine composes from.
// Every method is a pure read and degrades to zero values over an empty store.
type StatsRepository interface {
	CountCustomers(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (float64, error)
	StatusDistribution(ctx context.Context) ([]StatusCount, error)
	ProductStats(ctx context.Context) ([]ProductStat, error)
	ProvinceTotals(ctx context.Context) ([]ProvinceAmount, error)
	MonthlyRevenue(ctx context.Context) ([]MonthRevenue, error)
	DatesOfBirth(ctx context.Context) ([]string, error)
}

type StatsRepositoryImpl struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepositoryImpl {
	return &StatsRepositoryImpl{db: db}
}

var _ StatsRepository = (*StatsRepositoryImpl)(nil)

func (r *StatsRepositoryImpl) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM customers`)
	return n, err
}

func (r *StatsRepositoryImpl) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM orders`)
	return n, err
}

func (r *StatsRepositoryImpl) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total, `SELECT COALESCE(SUM(amount), 0) FROM orders`)
	return total, err
}

func (r *StatsRepositoryImpl) StatusDistribution(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.SelectContext(ctx, &rows, `
		SELECT status, COUNT(*) AS cnt
		  FROM orders
		 GROUP BY status
	`)
	return rows, err
}

func (r *StatsRepositoryImpl) ProductStats(ctx context.Context) ([]ProductStat, error) {
	var rows []ProductStat
	err := r.db.SelectContext(ctx, &rows, `
		SELECT product,
		       COUNT(*)    AS order_count,
		       SUM(amount) AS total_revenue,
		       AVG(amount) AS avg_revenue
		  FROM orders
		 GROUP BY product
	`)
	return rows, err
}

// ProvinceTotals joins orders to customers on the natural key. Customers
// without orders contribute nothing (inner join).
func (r *StatsRepositoryImpl) ProvinceTotals(ctx context.Context) ([]ProvinceAmount, error) {
	var rows []ProvinceAmount
	err := r.db.SelectContext(ctx, &rows, `
		SELECT c.province    AS province,
		       SUM(o.amount) AS total_amount
		  FROM customers c
		  JOIN orders o ON o.customer_id = c.customer_id
		 GROUP BY c.province
	`)
	return rows, err
}

// MonthlyRevenue buckets by the YYYY-MM prefix of the stored date text;
// substr is the one date-bucketing form both wired drivers accept.
func (r *StatsRepositoryImpl) MonthlyRevenue(ctx context.Context) ([]MonthRevenue, error) {
	var rows []MonthRevenue
	err := r.db.SelectContext(ctx, &rows, `
		SELECT substr(order_date, 1, 7) AS month,
		       SUM(amount)              AS revenue
		  FROM orders
		 GROUP BY month
		 ORDER BY month ASC
	`)
	return rows, err
}

func (r *StatsRepositoryImpl) DatesOfBirth(ctx context.Context) ([]string, error) {
	var dobs []string
	err := r.db.SelectContext(ctx, &dobs, `SELECT date_of_birth FROM customers`)
	return dobs, err
}
