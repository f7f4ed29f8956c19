package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmehdipour/order-insights/internal/config"
	"github.com/jmehdipour/order-insights/internal/db"
	httpSrv "github.com/jmehdipour/order-insights/internal/http"
	"github.com/jmehdipour/order-insights/internal/ingest"
	"github.com/jmehdipour/order-insights/internal/logger"
	"github.com/jmehdipour/order-insights/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP server (loads the store first if it is empty)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger.Init(cfg.Log.Level)
		defer logger.Sync()

		dbx, err := db.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("db connect: %w", err)
		}
		defer dbx.Close()

		// Bootstrap: reinitialize before the listener binds, so no reader
		// can observe a partially populated store.
		store := repository.NewStore(dbx)
		if err := bootstrap(cmd.Context(), cfg, store); err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}

		var redisClient *redis.Client
		if cfg.Redis.Addr != "" {
			redisClient, err = db.NewRedisClient(db.RedisOpts{
				Addr:        cfg.Redis.Addr,
				Password:    cfg.Redis.Password,
				DB:          cfg.Redis.DB,
				DialTimeout: cfg.Redis.DialTimeout,
			})
			if err != nil {
				return fmt.Errorf("redis connect: %w", err)
			}
			defer func() { _ = redisClient.Close() }()
		}

		server := httpSrv.NewServer(cfg, dbx, redisClient)

		errCh := make(chan error, 1)
		go func() {
			log.Printf("starting http on %s", cfg.HTTP.Addr)
			errCh <- server.Start(cfg.HTTP.Addr)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			log.Printf("signal received: %s, shutting down...", sig)
		case err := <-errCh:
			if err != nil {
				log.Printf("http server exited: %v", err)
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)

		return nil
	},
}

// bootstrap runs the full load when the store does not exist yet or holds
// no rows; otherwise it only logs the current counts and serves reads.
func bootstrap(ctx context.Context, cfg config.Config, store *repository.Store) error {
	empty, err := store.IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("check store: %w", err)
	}
	if !empty {
		customers, orders, err := store.Counts(ctx)
		if err != nil {
			return fmt.Errorf("count store: %w", err)
		}
		log.Printf("store ready: %d customers, %d orders", customers, orders)
		return nil
	}

	log.Println("store is empty, initializing...")
	customers, orders, err := ingest.LoadFiles(cfg.Data.CustomersFile, cfg.Data.OrdersFile)
	if err != nil {
		return err
	}
	report, err := store.Initialize(ctx, customers, orders)
	if err != nil {
		return err
	}
	log.Printf("load %s complete: %d customers, %d orders",
		report.LoadID, report.Customers, report.Orders)
	return nil
}
