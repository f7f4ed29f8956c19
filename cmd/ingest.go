package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/jmehdipour/order-insights/internal/config"
	"github.com/jmehdipour/order-insights/internal/db"
	"github.com/jmehdipour/order-insights/internal/ingest"
	"github.com/jmehdipour/order-insights/internal/logger"
	"github.com/jmehdipour/order-insights/internal/repository"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Full reload of the store from the configured input files",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1) load config
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger.Init(cfg.Log.Level)

		// 2) connect store
		dbx, err := db.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer dbx.Close()

		log.Println(">> Ingesting customer and order files...")

		// 3) parse + validate
		customers, orders, err := ingest.LoadFiles(cfg.Data.CustomersFile, cfg.Data.OrdersFile)
		if err != nil {
			return err
		}

		// 4) wipe and repopulate
		store := repository.NewStore(dbx)
		report, err := store.Initialize(context.Background(), customers, orders)
		if err != nil {
			return fmt.Errorf("initialize store: %w", err)
		}

		log.Printf(">> Load %s complete: %d customers, %d orders ✅",
			report.LoadID, report.Customers, report.Orders)
		return nil
	},
}
