package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmehdipour/order-insights/internal/db"
	"github.com/jmehdipour/order-insights/internal/model"
	"github.com/jmehdipour/order-insights/internal/repository"
	"github.com/jmehdipour/order-insights/internal/stats"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, customers []model.Customer, orders []model.Order) *stats.Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	dbx, err := db.NewSQLiteConnection(path, db.SQLiteOpts{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbx.Close() })

	store := repository.NewStore(dbx)
	_, err = store.Initialize(context.Background(), customers, orders)
	require.NoError(t, err)

	return stats.New(repository.NewStatsRepository(dbx))
}

func doGet(t *testing.T, h echo.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSummaryHandler(t *testing.T) {
	svc := newTestService(t,
		[]model.Customer{
			{CustomerID: 1, Name: "Alice", DateOfBirth: mustDate("1990-01-01"), Province: "Beijing"},
		},
		[]model.Order{
			{OrderID: 10, CustomerID: 1, OrderDate: mustDate("2024-01-05"), Product: "Widget", Quantity: 2, Amount: 100.00, Status: "completed"},
			{OrderID: 11, CustomerID: 1, OrderDate: mustDate("2024-02-01"), Product: "Widget", Quantity: 1, Amount: 50.005, Status: "pending"},
		},
	)

	rec := doGet(t, summaryHandler(svc, nil), "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Customers struct {
			Total int64 `json:"total"`
		} `json:"customers"`
		Orders struct {
			Total              int64            `json:"total"`
			TotalRevenue       float64          `json:"total_revenue"`
			AvgOrderValue      float64          `json:"avg_order_value"`
			StatusDistribution map[string]int64 `json:"status_distribution"`
		} `json:"orders"`
		Products []struct {
			Product    string `json:"product"`
			OrderCount int64  `json:"order_count"`
		} `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Equal(t, int64(1), body.Customers.Total)
	require.Equal(t, int64(2), body.Orders.Total)
	require.InDelta(t, 150.01, body.Orders.TotalRevenue, 1e-9)
	require.Equal(t, map[string]int64{"completed": 1, "pending": 1}, body.Orders.StatusDistribution)
	require.Len(t, body.Products, 1)
	require.Equal(t, "Widget", body.Products[0].Product)
}

func TestMapDataHandler(t *testing.T) {
	svc := newTestService(t,
		[]model.Customer{
			{CustomerID: 1, Name: "Alice", DateOfBirth: mustDate("1990-01-01"), Province: "Beijing"},
			{CustomerID: 2, Name: "Bob", DateOfBirth: mustDate("1985-06-15"), Province: "Narnia"},
		},
		[]model.Order{
			{OrderID: 10, CustomerID: 1, OrderDate: mustDate("2024-01-05"), Product: "Widget", Quantity: 1, Amount: 80, Status: "completed"},
			{OrderID: 11, CustomerID: 2, OrderDate: mustDate("2024-01-06"), Product: "Widget", Quantity: 1, Amount: 20, Status: "completed"},
		},
	)

	rec := doGet(t, mapDataHandler(svc, nil), "/api/map-data")
	require.Equal(t, http.StatusOK, rec.Code)

	var points []struct {
		Province    string  `json:"province"`
		TotalAmount float64 `json:"total_amount"`
		Lat         float64 `json:"lat"`
		Lon         float64 `json:"lon"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))

	// Narnia is not in the reference table and is silently excluded.
	require.Len(t, points, 1)
	require.Equal(t, "Beijing", points[0].Province)
	require.InDelta(t, 80.0, points[0].TotalAmount, 1e-9)
	require.InDelta(t, 39.9042, points[0].Lat, 1e-9)
}

func TestChartsHandler(t *testing.T) {
	svc := newTestService(t,
		[]model.Customer{
			{CustomerID: 1, Name: "Alice", DateOfBirth: mustDate("1990-01-01"), Province: "Beijing"},
		},
		[]model.Order{
			{OrderID: 10, CustomerID: 1, OrderDate: mustDate("2024-02-05"), Product: "Widget", Quantity: 1, Amount: 10, Status: "completed"},
			{OrderID: 11, CustomerID: 1, OrderDate: mustDate("2024-01-05"), Product: "Widget", Quantity: 1, Amount: 20, Status: "completed"},
		},
	)

	rec := doGet(t, chartsHandler(svc, nil), "/api/charts")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		MonthlyRevenue []struct {
			Month   string  `json:"month"`
			Revenue float64 `json:"revenue"`
		} `json:"monthly_revenue"`
		AgeDistribution map[string]int64 `json:"age_distribution"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Len(t, body.MonthlyRevenue, 2)
	require.Equal(t, "2024-01", body.MonthlyRevenue[0].Month)
	require.Equal(t, "2024-02", body.MonthlyRevenue[1].Month)

	var total int64
	for _, n := range body.AgeDistribution {
		total += n
	}
	require.Equal(t, int64(1), total)
}

func TestChartsHandler_EmptyStore(t *testing.T) {
	svc := newTestService(t, nil, nil)

	rec := doGet(t, chartsHandler(svc, nil), "/api/charts")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		MonthlyRevenue  []any            `json:"monthly_revenue"`
		AgeDistribution map[string]int64 `json:"age_distribution"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Empty(t, body.MonthlyRevenue)
	require.Equal(t, int64(0), body.AgeDistribution["18-25"])
}
