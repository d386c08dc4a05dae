package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/feral-file/yield-ingester/internal/adapter"
	"github.com/feral-file/yield-ingester/internal/config"
	"github.com/feral-file/yield-ingester/internal/ingest"
	"github.com/feral-file/yield-ingester/internal/logger"
	"github.com/feral-file/yield-ingester/internal/metrics"
	"github.com/feral-file/yield-ingester/internal/providers/defillama"
	"github.com/feral-file/yield-ingester/internal/scheduler"
	"github.com/feral-file/yield-ingester/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadIngesterConfig(*configFile, *envPath)
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
			"service": "yield-ingester",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting yield ingester")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to open database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}

	// Initialize store and wait until the database accepts queries
	dataStore := store.NewPGStore(db)
	if err := store.WaitForDatabase(ctx, dataStore, cfg.Startup.MaxAttempts, cfg.Startup.RetryDelay); err != nil {
		logger.ErrorCtx(ctx, err)
		return 1
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(registry)
	if cfg.Metrics.Address != "" {
		metricsServer := metrics.NewServer(cfg.Metrics.Address, registry, cfg.Debug)
		go func() {
			if err := metricsServer.Start(); err != nil {
				logger.ErrorCtx(ctx, err)
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer shutdownCancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
		logger.InfoCtx(ctx, "Serving metrics", zap.String("address", cfg.Metrics.Address))
	}

	// Initialize feed client and pipeline
	httpClient := adapter.NewHTTPClient(cfg.Sources.HTTPTimeout)
	feedClient := defillama.NewClient(httpClient, cfg.Sources.PoolsURL, cfg.Sources.ProtocolsURL)
	pipeline := ingest.NewPipeline(dataStore, feedClient, adapter.NewClock(), recorder)

	runOnce := func(ctx context.Context) error {
		result, err := pipeline.Run(ctx)
		if err != nil {
			return err
		}
		if result.MetadataErr != nil {
			logger.WarnCtx(ctx, "Run completed without protocol metadata", zap.String("run_id", result.RunID))
		}
		return nil
	}

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	// One-shot mode
	if cfg.Schedule == "" {
		runCtx := ctx
		if cfg.RunTimeout > 0 {
			var runCancel context.CancelFunc
			runCtx, runCancel = context.WithTimeout(ctx, cfg.RunTimeout)
			defer runCancel()
		}
		if err := runOnce(runCtx); err != nil {
			logger.ErrorCtx(ctx, err)
			return 1
		}
		logger.InfoCtx(ctx, "Yield ingester finished")
		return 0
	}

	// Scheduled mode
	cronScheduler, err := scheduler.NewCronScheduler("yield-ingest", cfg.Schedule, cfg.RunTimeout, runOnce)
	if err != nil {
		logger.ErrorCtx(ctx, err)
		return 1
	}
	if err := cronScheduler.Start(ctx); err != nil {
		logger.ErrorCtx(ctx, err)
		return 1
	}

	logger.InfoCtx(context.Background(), "Yield ingester stopped")
	return 0
}
