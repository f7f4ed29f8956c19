package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/jmehdipour/order-insights/internal/logger"
	"github.com/jmehdipour/order-insights/internal/metrics"
	"go.uber.org/zap"
)

// customerFieldCount is the number of logical customer fields. Input rows may
// carry more tokens because the address field contains unescaped commas; the
// surplus tokens all belong to the address.
const customerFieldCount = 7

const orderFieldCount = 7

// CustomerRow is a parsed but not yet validated customer record. All fields
// are raw strings straight from the input file.
type CustomerRow struct {
	Line       int
	CustomerID string
	Name       string
	DOB        string
	Province   string
	City       string
	Email      string
	Address    string
}

// OrderRow is a parsed but not yet validated order record.
type OrderRow struct {
	Line       int
	OrderID    string
	CustomerID string
	OrderDate  string
	Product    string
	Quantity   string
	Amount     string
	Status     string
}

// ParseCustomers reads the customer source: header line, then rows of
// customer_id,name,dob,province,city,email,address... The address occupies
// every trailing token and is reconstructed by joining them with ", ".
// Rows with fewer than 7 tokens are dropped; they never reach validation.
func ParseCustomers(r io.Reader) ([]CustomerRow, error) {
	records, err := readAll(r)
	if err != nil {
		return nil, err
	}

	rows := make([]CustomerRow, 0, len(records))
	for _, rec := range records {
		if len(rec.fields) < customerFieldCount {
			logger.Log.Warn("customer row dropped: too few fields",
				zap.Int("line", rec.line),
				zap.Int("fields", len(rec.fields)),
			)
			metrics.RowsTotal.WithLabelValues("customer", "dropped").Inc()
			continue
		}
		f := rec.fields
		rows = append(rows, CustomerRow{
			Line:       rec.line,
			CustomerID: f[0],
			Name:       f[1],
			DOB:        f[2],
			Province:   f[3],
			City:       f[4],
			Email:      f[5],
			Address:    strings.Join(f[6:], ", "),
		})
	}
	return rows, nil
}

// ParseOrders reads the order source: header line, then strict 7-column rows
// of order_id,customer_id,order_date,product,quantity,amount,status.
func ParseOrders(r io.Reader) ([]OrderRow, error) {
	records, err := readAll(r)
	if err != nil {
		return nil, err
	}

	rows := make([]OrderRow, 0, len(records))
	for _, rec := range records {
		if len(rec.fields) != orderFieldCount {
			logger.Log.Warn("order row dropped: wrong field count",
				zap.Int("line", rec.line),
				zap.Int("fields", len(rec.fields)),
			)
			metrics.RowsTotal.WithLabelValues("order", "dropped").Inc()
			continue
		}
		f := rec.fields
		rows = append(rows, OrderRow{
			Line:       rec.line,
			OrderID:    f[0],
			CustomerID: f[1],
			OrderDate:  f[2],
			Product:    f[3],
			Quantity:   f[4],
			Amount:     f[5],
			Status:     f[6],
		})
	}
	return rows, nil
}

type record struct {
	line   int
	fields []string
}

// readAll splits comma-separated lines respecting quoting, consumes the
// header row, and keeps per-line syntax errors local (the offending row is
// skipped, not the whole file).
func readAll(r io.Reader) ([]record, error) {
	cr := csv.NewReader(r)
	// Arity is checked by the callers; leading spaces are trimmed so that
	// ", "-separated address tokens come back without a space prefix.
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		records []record
		line    int
		header  bool
	)
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		line++
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				logger.Log.Warn("row dropped: csv syntax error",
					zap.Int("line", line),
					zap.Error(err),
				)
				continue
			}
			return nil, err
		}
		if !header {
			header = true // discard header row
			continue
		}
		records = append(records, record{line: line, fields: fields})
	}
}
