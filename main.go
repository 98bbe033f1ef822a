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
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/calvinlm/Arco-Prototype/config"
	"github.com/calvinlm/Arco-Prototype/database"
	"github.com/calvinlm/Arco-Prototype/fixtures"
	"github.com/calvinlm/Arco-Prototype/handlers"
	"github.com/calvinlm/Arco-Prototype/logging"
	"github.com/calvinlm/Arco-Prototype/services"
)

const (
	thumbnailFolder = "arco"
	shutdownTimeout = 10 * time.Second
)

var rootCmd = &cobra.Command{
	Use:          "arco",
	Short:        "Arco condo furnishing storefront server",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the catalog tables in Postgres and load the fixture catalog",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(serveCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	demo, err := fixtures.Load()
	if err != nil {
		return err
	}

	var provider services.CatalogProvider = demo
	if cfg.CatalogSource == config.CatalogSourcePostgres {
		db, err := database.Connect(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		provider = db
	}

	media, err := services.NewThumbnailResolver(cfg.CloudinaryURL, thumbnailFolder, logger)
	if err != nil {
		return err
	}
	catalog, err := services.LoadCatalog(ctx, provider, media)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded",
		zap.String("source", cfg.CatalogSource),
		zap.Int("products", len(catalog.Products())),
		zap.Int("floor_plans", len(catalog.FloorPlans())),
	)

	currencies, err := services.NewCurrencyConverter(cfg.ExchangeRates, cfg.DisplayCurrency)
	if err != nil {
		return err
	}

	registry := services.NewSessionRegistry(cfg.SessionTTL, services.SessionDefaults{
		Settings: services.DefaultSettings(),
		Profile:  demo.Profile(),
		Catalog:  catalog,
	}, logger)

	srv := &handlers.Server{
		Sessions:   registry,
		Catalog:    catalog,
		Currencies: currencies,
		Redirector: services.NewCheckoutRedirector(cfg.VATRate, currencies, logger),
		History:    demo,
		Tokens:     handlers.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Logger:     logger,
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           srv.Handler(cfg.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", zap.String("addr", httpServer.Addr), zap.String("environment", cfg.Environment))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return registry.Run(gctx, cfg.SessionSweepInterval)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required to seed")
	}

	ctx := cmd.Context()
	db, err := database.Connect(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.InitializeTables(ctx); err != nil {
		return err
	}

	demo, err := fixtures.Load()
	if err != nil {
		return err
	}
	products, err := demo.Products(ctx)
	if err != nil {
		return err
	}
	plans, err := demo.FloorPlans(ctx)
	if err != nil {
		return err
	}
	return db.SeedCatalog(ctx, products, plans)
}
