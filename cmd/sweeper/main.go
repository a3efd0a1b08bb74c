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
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "escrow-sweeper",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Escrow Sweeper")

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

	// Initialize ledger gateway with the merchant signing identity
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

	// Initialize clock adapter
	clock := adapter.NewClock()

	// Initialize the acquisition orchestrator; the sweeper uses its maturation path
	paymentVerifier := verifier.New(gateway)
	orchestrator := tiles.NewOrchestrator(tiles.Config{
		PriceDrops:    cfg.Tiles.PriceDrops,
		PublicBaseURL: cfg.Tiles.PublicBaseURL,
		MintWorkers:   cfg.Tiles.MintWorkers,
	}, dataStore, gateway, paymentVerifier, images)

	// Initialize escrow maturation sweeper
	sweeperConfig := &sweeper.EscrowSweeperConfig{
		Interval:       cfg.Sweeper.Interval,
		WorkerPoolSize: cfg.Sweeper.WorkerPoolSize,
		BatchSize:      cfg.Sweeper.BatchSize,
	}
	escrowSweeper := sweeper.NewEscrowSweeper(sweeperConfig, dataStore, orchestrator, clock)

	logger.InfoCtx(ctx, "Initialized escrow sweeper (continuous mode)",
		zap.Duration("interval", cfg.Sweeper.Interval),
		zap.Int("worker_pool_size", cfg.Sweeper.WorkerPoolSize),
		zap.Int("batch_size", cfg.Sweeper.BatchSize),
	)

	// Start the sweeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := escrowSweeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the sweeper
	cancel()

	// Give the sweeper time to shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := escrowSweeper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Sweeper stopped")
}
