package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/username/bigmacindex/src/config"
	"github.com/username/bigmacindex/src/geo"
	"github.com/username/bigmacindex/src/handlers"
	"github.com/username/bigmacindex/src/logger"
	"github.com/username/bigmacindex/src/metrics"
	"github.com/username/bigmacindex/src/security"
	"github.com/username/bigmacindex/src/services"
	"github.com/username/bigmacindex/src/store/sqlite"
	"github.com/username/bigmacindex/src/valuation"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, config.Cfg)
	},
}

func runServe(ctx context.Context, cfg *config.AppConfig) error {
	logger.L.Info("Big Mac Index server starting...")

	authService := security.NewAuthService(cfg.JWTSecret, cfg.AccessTokenExpiry)
	if err := authService.CheckSecret(); err != nil {
		logger.L.Error("JWT_SECRET configuration invalid", "error", err)
		return err
	}

	logger.L.Info("Initializing database...", "path", cfg.DatabasePath)
	st, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.L.Error("Failed to close database", "error", err)
		}
	}()
	logger.L.Info("Database initialized successfully.")

	logger.L.Info("Loading country coordinates...")
	table := geo.NewStaticTable()
	if cfg.CoordinatesPath != "" {
		if err := table.LoadOverrides(cfg.CoordinatesPath); err != nil {
			logger.L.Error("Failed to load coordinate overrides", "path", cfg.CoordinatesPath, "error", err)
		}
	}
	logger.L.Info("Country coordinates loaded", "count", table.Len())

	logger.L.Info("Initializing result cache...", "ttl", cfg.CacheTTL)
	resultCache := services.NewResultCache(cfg.CacheTTL)

	metrics.Init()

	logger.L.Info("Initializing services and handlers...")
	classifier := valuation.NewClassifier(table, valuation.ParseLocale(cfg.LabelLocale))
	logger.L.Info("Valuation labels configured", "locale", classifier.Locale())
	router := handlers.NewRouter(handlers.RouterConfig{
		Query:          services.NewQueryService(st, resultCache),
		Write:          services.NewWriteService(st, resultCache, nil),
		Visualization:  services.NewVisualizationService(st, classifier),
		Auth:           authService,
		Pinger:         st,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit:      cfg.RateLimitRPS,
		RateBurst:      cfg.RateLimitBurst,
		StaticDir:      cfg.StaticDir,
	})

	serverAddr := ":" + cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.L.Info("Server starting", "address", serverAddr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L.Error("Failed to start server", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.L.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L.Error("Graceful shutdown failed", "error", err)
		return err
	}
	logger.L.Info("Server stopped gracefully.")
	return nil
}
