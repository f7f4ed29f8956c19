package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/jmehdipour/order-insights/internal/logger"
	"github.com/jmehdipour/order-insights/internal/metrics"
	"github.com/jmehdipour/order-insights/internal/model"
	"go.uber.org/zap"
)

// Rejection records why a parsed row was excluded from persistence.
// Malformed rows are an expected data condition, not an error path.
type Rejection struct {
	Line   int
	Reason string
}

// ValidateCustomers coerces row candidates into Customer entities. A row
// whose date of birth or customer_id fails to parse is rejected entirely;
// a missing province is normalized to the "Unknown" sentinel.
func ValidateCustomers(rows []CustomerRow) ([]model.Customer, []Rejection) {
	customers := make([]model.Customer, 0, len(rows))
	var rejected []Rejection

	for _, row := range rows {
		id, err := strconv.ParseInt(strings.TrimSpace(row.CustomerID), 10, 64)
		if err != nil {
			rejected = append(rejected, rejectRow("customer", row.Line, "invalid customer_id"))
			continue
		}
		dob, err := time.Parse(model.DateLayout, strings.TrimSpace(row.DOB))
		if err != nil {
			rejected = append(rejected, rejectRow("customer", row.Line, "invalid date_of_birth"))
			continue
		}

		province := strings.TrimSpace(row.Province)
		if province == "" {
			province = model.ProvinceUnknown
		}

		customers = append(customers, model.Customer{
			CustomerID:  id,
			Name:        row.Name,
			DateOfBirth: dob,
			Province:    province,
			City:        row.City,
			Email:       row.Email,
			Address:     row.Address,
		})
		metrics.RowsTotal.WithLabelValues("customer", "accepted").Inc()
	}
	return customers, rejected
}

// ValidateOrders coerces row candidates into Order entities. Unparseable
// order_date, ids, quantity or amount reject the row.
func ValidateOrders(rows []OrderRow) ([]model.Order, []Rejection) {
	orders := make([]model.Order, 0, len(rows))
	var rejected []Rejection

	for _, row := range rows {
		id, err := strconv.ParseInt(strings.TrimSpace(row.OrderID), 10, 64)
		if err != nil {
			rejected = append(rejected, rejectRow("order", row.Line, "invalid order_id"))
			continue
		}
		custID, err := strconv.ParseInt(strings.TrimSpace(row.CustomerID), 10, 64)
		if err != nil {
			rejected = append(rejected, rejectRow("order", row.Line, "invalid customer_id"))
			continue
		}
		date, err := time.Parse(model.DateLayout, strings.TrimSpace(row.OrderDate))
		if err != nil {
			rejected = append(rejected, rejectRow("order", row.Line, "invalid order_date"))
			continue
		}
		qty, err := strconv.Atoi(strings.TrimSpace(row.Quantity))
		if err != nil {
			rejected = append(rejected, rejectRow("order", row.Line, "invalid quantity"))
			continue
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(row.Amount), 64)
		if err != nil {
			rejected = append(rejected, rejectRow("order", row.Line, "invalid amount"))
			continue
		}

		orders = append(orders, model.Order{
			OrderID:    id,
			CustomerID: custID,
			OrderDate:  date,
			Product:    row.Product,
			Quantity:   qty,
			Amount:     amount,
			Status:     row.Status,
		})
		metrics.RowsTotal.WithLabelValues("order", "accepted").Inc()
	}
	return orders, rejected
}

func rejectRow(entity string, line int, reason string) Rejection {
	logger.Log.Warn("row rejected",
		zap.String("entity", entity),
		zap.Int("line", line),
		zap.String("reason", reason),
	)
	metrics.RowsTotal.WithLabelValues(entity, "rejected").Inc()
	return Rejection{Line: line, Reason: reason}
}
