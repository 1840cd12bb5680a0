package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sangkips/fuelinvoice-api/internal/config"
	"github.com/sangkips/fuelinvoice-api/internal/logger"
)

var version = "1.0.0"

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "fuelinvoice",
	Short: "Fuel station invoicing API",
	Long: `fuelinvoice serves the fuel invoicing API: daily fuelling records,
tax invoices with sequential numbering, invoice summaries and cash sale
statements.

Configuration is read from .env and the environment.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if err := logger.Setup(logger.Config{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Output: cfg.Log.Output,
		}); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, warmCacheCmd)
}
