package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/sangkips/fuelinvoice-api/internal/infrastructure/database"
	"github.com/sangkips/fuelinvoice-api/internal/logger"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/middleware"
	"github.com/sangkips/fuelinvoice-api/internal/presentation/http/routes"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Connects to PostgreSQL, migrates and seeds the schema, warms the
reference cache and serves the API until interrupted.`,
	Example: `  # Serve on APP_PORT
  fuelinvoice serve

  # Serve without running migrations
  fuelinvoice serve --skip-migrate`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Bool("skip-migrate", false, "Do not migrate or seed before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("server")
	skipMigrate, _ := cmd.Flags().GetBool("skip-migrate")

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if !skipMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
		if err := database.SeedDefaultData(db, cfg.Admin); err != nil {
			log.Warn().Err(err).Msg("failed to seed default data")
		}
	}

	a := newApp(cfg, db)
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := a.warmer.Warm(ctx); err != nil {
		log.Warn().Err(err).Msg("cache warm-up failed, serving cold")
	}

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond(),
		BurstSize:         cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	defer rateLimiter.Close()

	router := routes.Setup(a.handlers(), &routes.Deps{
		JWTManager:      a.jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: a.idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("service", cfg.App.Name).
			Str("port", port).
			Str("env", cfg.App.Env).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}
