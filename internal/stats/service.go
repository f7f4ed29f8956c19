// Package stats is the aggregation engine: it composes the repository's
// group-by queries into the JSON shapes the dashboard API serves.
package stats

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jmehdipour/order-insights/internal/geo"
	"github.com/jmehdipour/order-insights/internal/model"
	"github.com/jmehdipour/order-insights/internal/repository"
)

// Summary is the /api/summary payload.
type Summary struct {
	Customers CustomerStats `json:"customers"`
	Orders    OrderStats    `json:"orders"`
	Products  []ProductStat `json:"products"`
}

type CustomerStats struct {
	Total int64 `json:"total"`
}

type OrderStats struct {
	Total              int64            `json:"total"`
	TotalRevenue       float64          `json:"total_revenue"`
	AvgOrderValue      float64          `json:"avg_order_value"`
	StatusDistribution map[string]int64 `json:"status_distribution"`
}

type ProductStat struct {
	Product      string  `json:"product"`
	OrderCount   int64   `json:"order_count"`
	TotalRevenue float64 `json:"total_revenue"`
	AvgRevenue   float64 `json:"avg_revenue"`
}

// MapPoint is one province of the geographic rollup.
type MapPoint struct {
	Province    string  `json:"province"`
	TotalAmount float64 `json:"total_amount"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// MonthRevenue is one bucket of the monthly trend, labelled YYYY-MM.
type MonthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// ageBands lists the cohort labels in presentation order.
var ageBands = []string{"18-25", "26-35", "36-45", "46+"}

// Service derives the read-only views. All methods are side-effect-free
// and safe to run concurrently.
type Service struct {
	repo repository.StatsRepository
	now  func() time.Time
}

func New(repo repository.StatsRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Summary computes counts, revenue, status distribution and per-product
// performance. Money is rounded to 2 decimals here and nowhere earlier.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	totalCustomers, err := s.repo.CountCustomers(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("count customers: %w", err)
	}
	totalOrders, err := s.repo.CountOrders(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("count orders: %w", err)
	}
	totalRevenue, err := s.repo.TotalRevenue(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("total revenue: %w", err)
	}

	avg := 0.0
	if totalOrders > 0 {
		avg = totalRevenue / float64(totalOrders)
	}

	statusRows, err := s.repo.StatusDistribution(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("status distribution: %w", err)
	}
	statuses := make(map[string]int64, len(statusRows))
	for _, row := range statusRows {
		statuses[row.Status] = row.Count
	}

	productRows, err := s.repo.ProductStats(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("product stats: %w", err)
	}
	products := make([]ProductStat, 0, len(productRows))
	for _, row := range productRows {
		products = append(products, ProductStat{
			Product:      row.Product,
			OrderCount:   row.OrderCount,
			TotalRevenue: round2(row.TotalRevenue),
			AvgRevenue:   round2(row.AvgRevenue),
		})
	}

	return Summary{
		Customers: CustomerStats{Total: totalCustomers},
		Orders: OrderStats{
			Total:              totalOrders,
			TotalRevenue:       round2(totalRevenue),
			AvgOrderValue:      round2(avg),
			StatusDistribution: statuses,
		},
		Products: products,
	}, nil
}

// MapData joins orders to customers by province and keeps only provinces
// present in the reference table; anything else is silently excluded.
func (s *Service) MapData(ctx context.Context) ([]MapPoint, error) {
	rows, err := s.repo.ProvinceTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("province totals: %w", err)
	}

	points := make([]MapPoint, 0, len(rows))
	for _, row := range rows {
		p, ok := geo.Lookup(row.Province)
		if !ok {
			continue
		}
		points = append(points, MapPoint{
			Province:    row.Province,
			TotalAmount: round2(row.TotalAmount),
			Lat:         p.Lat,
			Lon:         p.Lon,
		})
	}
	return points, nil
}

// MonthlyRevenue returns the trend ascending by month label, one entry per
// month that has at least one order.
func (s *Service) MonthlyRevenue(ctx context.Context) ([]MonthRevenue, error) {
	rows, err := s.repo.MonthlyRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}

	trend := make([]MonthRevenue, 0, len(rows))
	for _, row := range rows {
		trend = append(trend, MonthRevenue{Month: row.Month, Revenue: round2(row.Revenue)})
	}
	return trend, nil
}

// AgeDistribution buckets every customer by floor(days/365) whole years.
// The day-count approximation and the band edges are kept exactly as the
// dashboard has always reported them; under-18 customers land in "18-25".
func (s *Service) AgeDistribution(ctx context.Context) (map[string]int64, error) {
	dobs, err := s.repo.DatesOfBirth(ctx)
	if err != nil {
		return nil, fmt.Errorf("dates of birth: %w", err)
	}

	groups := make(map[string]int64, len(ageBands))
	for _, band := range ageBands {
		groups[band] = 0
	}

	now := s.now()
	for _, raw := range dobs {
		dob, err := time.Parse(model.DateLayout, normalizeDate(raw))
		if err != nil {
			// A stored dob always passed validation; an unparseable value
			// means driver-level date formatting drift, not bad data.
			return nil, fmt.Errorf("stored date_of_birth %q: %w", raw, err)
		}
		age := int(now.Sub(dob).Hours()/24) / 365
		switch {
		case age <= 25:
			groups["18-25"]++
		case age <= 35:
			groups["26-35"]++
		case age <= 45:
			groups["36-45"]++
		default:
			groups["46+"]++
		}
	}
	return groups, nil
}

// normalizeDate strips a time suffix some drivers append to DATE columns.
func normalizeDate(s string) string {
	if len(s) > len("2006-01-02") {
		return s[:len("2006-01-02")]
	}
	return s
}

// round2 rounds half away from zero to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
