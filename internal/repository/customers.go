package repository

import (
	"context"

	"github.com/jmehdipour/order-insights/internal/model"
	"github.com/jmoiron/sqlx"
)

type CustomersRepository interface {
	Insert(ctx context.Context, tx *sqlx.Tx, c model.Customer) error
	Count(ctx context.Context) (int64, error)
}

type CustomersRepositoryImpl struct {
	db *sqlx.DB
}

func NewCustomersRepository(db *sqlx.DB) *CustomersRepositoryImpl {
	return &CustomersRepositoryImpl{db: db}
}

var _ CustomersRepository = (*CustomersRepositoryImpl)(nil)

// Insert writes one customer row. The date is stored as its canonical
// YYYY-MM-DD text so substr()-based bucketing works on both drivers.
// A duplicate customer_id violates the primary key and surfaces as an error.
func (r *CustomersRepositoryImpl) Insert(ctx context.Context, tx *sqlx.Tx, c model.Customer) error {
	const q = `
		INSERT INTO customers
		    (customer_id, name, date_of_birth, province, city, email, address)
		VALUES
		    (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := tx.ExecContext(ctx, q,
		c.CustomerID, c.Name, c.DateOfBirth.Format(model.DateLayout),
		c.Province, c.City, c.Email, c.Address,
	)
	return err
}

func (r *CustomersRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM customers`); err != nil {
		return 0, err
	}
	return n, nil
}
