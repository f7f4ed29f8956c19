package repository

import (
	"context"

	"github.com/jmehdipour/order-insights/internal/model"
	"github.com/jmoiron/sqlx"
)

type OrdersRepository interface {
	Insert(ctx context.Context, tx *sqlx.Tx, o model.Order) error
	Count(ctx context.Context) (int64, error)
}

type OrdersRepositoryImpl struct {
	db *sqlx.DB
}

func NewOrdersRepository(db *sqlx.DB) *OrdersRepositoryImpl {
	return &OrdersRepositoryImpl{db: db}
}

var _ OrdersRepository = (*OrdersRepositoryImpl)(nil)

// Insert writes one order row; a duplicate order_id violates the primary key.
func (r *OrdersRepositoryImpl) Insert(ctx context.Context, tx *sqlx.Tx, o model.Order) error {
	const q = `
		INSERT INTO orders
		    (order_id, customer_id, order_date, product, quantity, amount, status)
		VALUES
		    (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := tx.ExecContext(ctx, q,
		o.OrderID, o.CustomerID, o.OrderDate.Format(model.DateLayout),
		o.Product, o.Quantity, o.Amount, o.Status,
	)
	return err
}

func (r *OrdersRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM orders`); err != nil {
		return 0, err
	}
	return n, nil
}
