package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sangkips/fuelinvoice-api/internal/infrastructure/database"
	"github.com/sangkips/fuelinvoice-api/internal/logger"
)

var warmCacheCmd = &cobra.Command{
	Use:   "warm-cache",
	Short: "Preload the reference data cache",
	Long: `Loads the current VAT rate, companies, their vehicles and the fuel
types of each category through the reference cache and reports what was
loaded. A running server warms its own cache at start-up and through
POST /api/v1/admin/cache/warm.`,
	Example: `  # Warm from scratch
  fuelinvoice warm-cache --clear`,
	RunE: runWarmCache,
}

func init() {
	warmCacheCmd.Flags().Bool("clear", false, "Flush the cache before warming")
}

func runWarmCache(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("warm-cache")
	flush, _ := cmd.Flags().GetBool("clear")

	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		return err
	}
	defer database.Close(db)

	a := newApp(cfg, db)
	defer a.close()

	if flush {
		a.warmer.Flush()
		log.Info().Msg("cache flushed")
	}

	result, err := a.warmer.Warm(cmd.Context())
	if err != nil {
		return fmt.Errorf("warm cache: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "companies: %d\nvehicles: %d\ncategories: %d\nfuel types: %d\ncached keys: %d\n",
		result.Companies, result.Vehicles, result.Categories, result.FuelTypes, a.refCache.Len())
	return nil
}
