package stats

import (
	"context"
	"testing"
	"time"

	"github.com/jmehdipour/order-insights/internal/repository"
	"github.com/stretchr/testify/require"
)

// stubRepo returns canned aggregation rows.
type stubRepo struct {
	customers int64
	orders    int64
	revenue   float64
	statuses  []repository.StatusCount
	products  []repository.ProductStat
	provinces []repository.ProvinceAmount
	months    []repository.MonthRevenue
	dobs      []string
}

func (s *stubRepo) CountCustomers(context.Context) (int64, error) { return s.customers, nil }
func (s *stubRepo) CountOrders(context.Context) (int64, error)    { return s.orders, nil }
func (s *stubRepo) TotalRevenue(context.Context) (float64, error) { return s.revenue, nil }
func (s *stubRepo) StatusDistribution(context.Context) ([]repository.StatusCount, error) {
	return s.statuses, nil
}
func (s *stubRepo) ProductStats(context.Context) ([]repository.ProductStat, error) {
	return s.products, nil
}
func (s *stubRepo) ProvinceTotals(context.Context) ([]repository.ProvinceAmount, error) {
	return s.provinces, nil
}
func (s *stubRepo) MonthlyRevenue(context.Context) ([]repository.MonthRevenue, error) {
	return s.months, nil
}
func (s *stubRepo) DatesOfBirth(context.Context) ([]string, error) { return s.dobs, nil }

var _ repository.StatsRepository = (*stubRepo)(nil)

func newService(repo repository.StatsRepository, now time.Time) *Service {
	svc := New(repo)
	svc.now = func() time.Time { return now }
	return svc
}

func TestSummary_RoundsAtBoundary(t *testing.T) {
	svc := New(&stubRepo{
		customers: 3,
		orders:    2,
		revenue:   150.005, // 100.00 + 50.005, summed unrounded in the store
		statuses: []repository.StatusCount{
			{Status: "completed", Count: 1},
			{Status: "pending", Count: 1},
		},
		products: []repository.ProductStat{
			{Product: "Widget", OrderCount: 2, TotalRevenue: 150.005, AvgRevenue: 75.0025},
		},
	})

	got, err := svc.Summary(context.Background())
	require.NoError(t, err)

	require.Equal(t, int64(3), got.Customers.Total)
	require.Equal(t, int64(2), got.Orders.Total)
	require.InDelta(t, 150.01, got.Orders.TotalRevenue, 1e-9)
	require.InDelta(t, 75.0, got.Orders.AvgOrderValue, 1e-9)
	require.Equal(t, map[string]int64{"completed": 1, "pending": 1}, got.Orders.StatusDistribution)

	require.Len(t, got.Products, 1)
	require.InDelta(t, 150.01, got.Products[0].TotalRevenue, 1e-9)
	require.InDelta(t, 75.0, got.Products[0].AvgRevenue, 1e-9)
}

func TestSummary_ProductOrderCountsSumToTotal(t *testing.T) {
	svc := New(&stubRepo{
		orders: 5,
		products: []repository.ProductStat{
			{Product: "Widget", OrderCount: 3, TotalRevenue: 30, AvgRevenue: 10},
			{Product: "Gadget", OrderCount: 2, TotalRevenue: 50, AvgRevenue: 25},
		},
	})

	got, err := svc.Summary(context.Background())
	require.NoError(t, err)

	var sum int64
	for _, p := range got.Products {
		sum += p.OrderCount
	}
	require.Equal(t, got.Orders.Total, sum)
}

func TestSummary_EmptyStore(t *testing.T) {
	svc := New(&stubRepo{})

	got, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Zero(t, got.Customers.Total)
	require.Zero(t, got.Orders.Total)
	require.Zero(t, got.Orders.TotalRevenue)
	require.Zero(t, got.Orders.AvgOrderValue) // defined as 0, no division
	require.Empty(t, got.Orders.StatusDistribution)
	require.Empty(t, got.Products)
}

func TestMapData_FiltersUnknownProvinces(t *testing.T) {
	svc := New(&stubRepo{
		provinces: []repository.ProvinceAmount{
			{Province: "Beijing", TotalAmount: 120.5},
			{Province: "Atlantis", TotalAmount: 99},  // not in reference table
			{Province: "Unknown", TotalAmount: 10.0}, // sentinel is a valid key
		},
	})

	got, err := svc.MapData(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.Equal(t, "Beijing", got[0].Province)
	require.InDelta(t, 120.5, got[0].TotalAmount, 1e-9)
	require.InDelta(t, 39.9042, got[0].Lat, 1e-9)
	require.InDelta(t, 116.4074, got[0].Lon, 1e-9)

	require.Equal(t, "Unknown", got[1].Province)
}

func TestMonthlyRevenue_PreservesOrderAndRounds(t *testing.T) {
	svc := New(&stubRepo{
		months: []repository.MonthRevenue{
			{Month: "2024-01", Revenue: 10.004},
			{Month: "2024-02", Revenue: 20.006},
		},
	})

	got, err := svc.MonthlyRevenue(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "2024-01", got[0].Month)
	require.InDelta(t, 10.0, got[0].Revenue, 1e-9)
	require.Equal(t, "2024-02", got[1].Month)
	require.InDelta(t, 20.01, got[1].Revenue, 1e-9)
}

func TestAgeDistribution_Bands(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	svc := newService(&stubRepo{dobs: []string{
		"2010-01-01", // 16 by day count: lands in 18-25, inherited boundary
		"2002-05-01", // 24
		"1994-01-01", // 32
		"1985-01-01", // 41
		"1960-01-01", // 66
	}}, now)

	got, err := svc.AgeDistribution(context.Background())
	require.NoError(t, err)

	require.Equal(t, int64(2), got["18-25"])
	require.Equal(t, int64(1), got["26-35"])
	require.Equal(t, int64(1), got["36-45"])
	require.Equal(t, int64(1), got["46+"])
}

func TestAgeDistribution_SumsToTotalCustomers(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	dobs := []string{"2001-02-03", "1999-12-31", "1980-07-07", "1955-01-01", "2008-08-08"}
	svc := newService(&stubRepo{dobs: dobs}, now)

	got, err := svc.AgeDistribution(context.Background())
	require.NoError(t, err)

	var sum int64
	for _, n := range got {
		sum += n
	}
	require.Equal(t, int64(len(dobs)), sum)
	require.Len(t, got, 4) // all bands present even when empty
}

func TestAgeDistribution_EmptyStore(t *testing.T) {
	svc := New(&stubRepo{})

	got, err := svc.AgeDistribution(context.Background())
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"18-25": 0, "26-35": 0, "36-45": 0, "46+": 0}, got)
}

func TestAgeDistribution_AcceptsDriverTimeSuffix(t *testing.T) {
	now := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	svc := newService(&stubRepo{dobs: []string{"1990-01-01T00:00:00Z"}}, now)

	got, err := svc.AgeDistribution(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), got["36-45"])
}
