package ingest

import (
	"fmt"
	"os"

	"github.com/jmehdipour/order-insights/internal/logger"
	"github.com/jmehdipour/order-insights/internal/model"
	"go.uber.org/zap"
)

// LoadFiles runs the parse+validate pipeline over both input files.
// A missing or unreadable file is fatal; malformed rows inside a readable
// file are absorbed at row level by the parser/validator.
func LoadFiles(customersPath, ordersPath string) ([]model.Customer, []model.Order, error) {
	customers, err := loadCustomers(customersPath)
	if err != nil {
		return nil, nil, err
	}
	orders, err := loadOrders(ordersPath)
	if err != nil {
		return nil, nil, err
	}
	return customers, orders, nil
}

func loadCustomers(path string) ([]model.Customer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open customers file: %w", err)
	}
	defer f.Close()

	rows, err := ParseCustomers(f)
	if err != nil {
		return nil, fmt.Errorf("parse customers file %s: %w", path, err)
	}
	customers, rejected := ValidateCustomers(rows)

	logger.Log.Info("customers ingested",
		zap.String("file", path),
		zap.Int("accepted", len(customers)),
		zap.Int("rejected", len(rejected)),
	)
	return customers, nil
}

func loadOrders(path string) ([]model.Order, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open orders file: %w", err)
	}
	defer f.Close()

	rows, err := ParseOrders(f)
	if err != nil {
		return nil, fmt.Errorf("parse orders file %s: %w", path, err)
	}
	orders, rejected := ValidateOrders(rows)

	logger.Log.Info("orders ingested",
		zap.String("file", path),
		zap.Int("accepted", len(orders)),
		zap.Int("rejected", len(rejected)),
	)
	return orders, nil
}
