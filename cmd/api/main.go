package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hexearth/hexearth/internal/adapter"
	"github.com/hexearth/hexearth/internal/api/server"
	"github.com/hexearth/hexearth/internal/config"
	"github.com/hexearth/hexearth/internal/ledger"
	"github.com/hexearth/hexearth/internal/logger"
	"github.com/hexearth/hexearth/internal/store"
	"github.com/hexearth/hexearth/internal/sweeper"
	"github.com/hexearth/hexearth/internal/tiles"
	"github.com/hexearth/hexearth/internal/verifier"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting HexEarth API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize ledger gateway
	httpClient := adapter.NewHTTPClient(cfg.Ledger.HTTPTimeout)
	gateway := ledger.NewGateway(ledger.Config{
		RPCURL:            cfg.Ledger.RPCURL,
		MerchantAddress:   cfg.Ledger.MerchantAddress,
		MerchantSeed:      cfg.Ledger.MerchantSeed,
		SubmitWaitTimeout: cfg.Ledger.SubmitWaitTimeout,
	}, httpClient)

	// Load the embedded tile image pool
	images, err := tiles.LoadImagePool()
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load tile images", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Loaded tile images", zap.Int("count", images.Size()))

	// Initialize the acquisition orchestrator
	paymentVerifier := verifier.New(gateway)
	orchestrator := tiles.NewOrchestrator(tiles.Config{
		PriceDrops:    cfg.Tiles.PriceDrops,
		PublicBaseURL: cfg.Tiles.PublicBaseURL,
		MintWorkers:   cfg.Tiles.MintWorkers,
	}, dataStore, gateway, paymentVerifier, images)

	// The API embeds a sweeper for the manual /cron/process-escrows trigger;
	// periodic sweeping is the standalone sweeper binary's job
	escrowSweep := sweeper.NewEscrowSweeper(&sweeper.EscrowSweeperConfig{
		Interval:       cfg.Sweeper.Interval,
		WorkerPoolSize: cfg.Sweeper.WorkerPoolSize,
		BatchSize:      cfg.Sweeper.BatchSize,
	}, dataStore, orchestrator, adapter.NewClock())

	// Create server config
	serverConfig := server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}

	// Create and start server
	srv := server.New(serverConfig, dataStore, orchestrator, gateway, escrowSweep, images)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
