package model

import "time"

// Order is the DB entity persisted in the orders table. CustomerID
// references Customer.CustomerID (1:N). Status is a free-form category
// coming straight from the input file (pending/completed/cancelled/...),
// so it is not modeled as a closed enum.
type Order struct {
	OrderID    int64     `db:"order_id"`
	CustomerID int64     `db:"customer_id"`
	OrderDate  time.Time `db:"order_date"`
	Product    string    `db:"product"`
	Quantity   int       `db:"quantity"`
	Amount     float64   `db:"amount"`
	Status     string    `db:"status"`
}
