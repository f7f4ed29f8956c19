package http

import (
	"encoding/json"
	"net/http"

	"github.com/jmehdipour/order-insights/internal/cache"
	"github.com/jmehdipour/order-insights/internal/stats"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type chartsResponse struct {
	MonthlyRevenue  []stats.MonthRevenue `json:"monthly_revenue"`
	AgeDistribution map[string]int64     `json:"age_distribution"`
}

// chartsHandler serves the monthly revenue trend and the age cohorts in
// one payload, the shape the dashboard charts consume.
func chartsHandler(svc *stats.Service, respCache *cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if b, ok := respCache.Get(ctx, "api:charts"); ok {
			return c.JSONBlob(http.StatusOK, b)
		}

		trend, err := svc.MonthlyRevenue(ctx)
		if err != nil {
			log.Errorf("monthly revenue failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
		}
		ages, err := svc.AgeDistribution(ctx)
		if err != nil {
			log.Errorf("age distribution failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
		}

		b, err := json.Marshal(chartsResponse{MonthlyRevenue: trend, AgeDistribution: ages})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "encode failed"})
		}
		respCache.Set(ctx, "api:charts", b)

		return c.JSONBlob(http.StatusOK, b)
	}
}
