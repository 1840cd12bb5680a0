package main

import (
	"github.com/spf13/cobra"

	"github.com/sangkips/fuelinvoice-api/internal/infrastructure/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the schema and seed reference data",
	Long: `Creates or updates every table, then seeds fuel categories, fuel
types, payment methods and the administrator named by ADMIN_NAME and
ADMIN_PASSWORD.`,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().Bool("no-seed", false, "Skip seeding default data")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	noSeed, _ := cmd.Flags().GetBool("no-seed")

	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	if noSeed {
		return nil
	}
	return database.SeedDefaultData(db, cfg.Admin)
}
