package model

import "time"

// ProvinceUnknown is the sentinel stored when a customer row carries no
// province. It is a valid key in the geographic reference table.
const ProvinceUnknown = "Unknown"

// Customer is the DB entity persisted in the customers table.
// CustomerID is the natural key; there is no surrogate id.
type Customer struct {
	CustomerID  int64     `db:"customer_id"`
	Name        string    `db:"name"`
	DateOfBirth time.Time `db:"date_of_birth"`
	Province    string    `db:"province"` // never empty, sentinel-filled
	City        string    `db:"city"`
	Email       string    `db:"email"`
	Address     string    `db:"address"`
}
