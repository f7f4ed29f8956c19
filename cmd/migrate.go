package cmd

import (
	"context"
	"fmt"

	"github.com/jmehdipour/order-insights/internal/config"
	"github.com/jmehdipour/order-insights/internal/db"
	"github.com/jmehdipour/order-insights/internal/logger"
	"github.com/jmehdipour/order-insights/internal/repository"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Recreate the store schema (DROP & CREATE tables)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger.Init(cfg.Log.Level)

		dbx, err := db.Open(cfg.Database)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer dbx.Close()

		store := repository.NewStore(dbx)
		if err := store.Migrate(context.Background()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}

		fmt.Println(">> Migration complete ✅")
		return nil
	},
}
