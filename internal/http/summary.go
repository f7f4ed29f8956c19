package http

import (
	"encoding/json"
	"net/http"

	"github.com/jmehdipour/order-insights/internal/cache"
	"github.com/jmehdipour/order-insights/internal/stats"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

func summaryHandler(svc *stats.Service, respCache *cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if b, ok := respCache.Get(ctx, "api:summary"); ok {
			return c.JSONBlob(http.StatusOK, b)
		}

		summary, err := svc.Summary(ctx)
		if err != nil {
			log.Errorf("summary failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
		}

		b, err := json.Marshal(summary)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "encode failed"})
		}
		respCache.Set(ctx, "api:summary", b)

		return c.JSONBlob(http.StatusOK, b)
	}
}
