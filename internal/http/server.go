package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jmehdipour/order-insights/internal/cache"
	"github.com/jmehdipour/order-insights/internal/config"
	"github.com/jmehdipour/order-insights/internal/http/middleware"
	"github.com/jmehdipour/order-insights/internal/metrics"
	"github.com/jmehdipour/order-insights/internal/repository"
	"github.com/jmehdipour/order-insights/internal/stats"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type Server struct{ e *echo.Echo }

// NewServer wires the aggregation engine and dashboard routes. rds may be
// nil (no cache, no rate limiting).
func NewServer(cfg config.Config, dbx *sqlx.DB, rds *redis.Client) *Server {
	statsRepo := repository.NewStatsRepository(dbx)
	statsSvc := stats.New(statsRepo)

	var respCache *cache.Cache
	if cfg.Cache.Enabled && rds != nil {
		respCache = cache.New(rds, cfg.Cache.TTL)
	}

	// echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger())

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// middlewares
	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:          rds,
		RPS:            cfg.RateLimit.RPS,
		KeyPrefix:      "rl:ip:",
		Window:         time.Second,
		RetryAfterHint: true,
	})

	// routes
	api := e.Group("/api", rlMW)
	api.GET("/summary", summaryHandler(statsSvc, respCache))
	api.GET("/map-data", mapDataHandler(statsSvc, respCache))
	api.GET("/charts", chartsHandler(statsSvc, respCache))

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	log.Printf("http: listening on %s", addr)
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
