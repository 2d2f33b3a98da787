// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/statecraft-labs/statecraft-go/internal/application/container"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/cleanup"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/manager"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/observability/logging"
	"github.com/statecraft-labs/statecraft-go/internal/presentation/http/server"
	"github.com/statecraft-labs/statecraft-go/pkg/config"
)

// Initialize performs the complete startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	log.Println("\033[32m" + `

   ___ _____ _   _____ ___ ___ ___    _   ___ _____
  / __|_   _/ \ |_   _| __/ __| _ \  / \ | __|_   _|
  \__ \ | |/ _ \  | | | _| (__|   / / _ \| _|  | |
  |___/ |_/_/ \_\ |_| |___\___|_|_\/_/ \_\_|   |_|
` + "\033[97m" + `
  session state engine
` + "\033[0m")

	// Step 1: Initialize channeled logging
	log.Println("Initializing...")
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Startup().Info("Channeled logging initialized")

	// Step 2: Initialize the state engine
	logger.Startup().Info("Initializing state engine...")
	cacheManager := manager.NewManager(logger)

	// Step 3: Seed the demo catalog
	if config.SeedDemoData {
		startSeedTime := time.Now()
		cacheManager.SeedCatalog()
		logger.Startup().Info("Demo catalog seeded", "duration", time.Since(startSeedTime))
	} else {
		logger.Startup().Info("Demo catalog seeding disabled")
	}

	// Step 4: Create dependency injection container
	logger.Startup().Info("Initializing dependency injection container...")
	appContainer := container.NewContainer(cacheManager, logger)
	logger.Startup().Info("Dependency injection container created with singleton services")

	// Step 5: Start background sweep worker
	logger.Startup().Info("Starting background sweep worker...")
	startWorkerTime := time.Now()

	cleanupConfig := cleanup.NewConfig()
	cleanupWorker := cleanup.NewWorker(cacheManager, cleanupConfig)
	go cleanupWorker.Start(ctx)

	logger.Startup().Info("Background sweep worker started", "duration", time.Since(startWorkerTime))

	// Step 6: Start HTTP server
	logger.Startup().Info("Starting HTTP server...")
	startServerTime := time.Now()

	port := config.Port
	httpServer := server.New(port, appContainer)

	logger.Startup().Info("HTTP server initialized", "port", port, "duration", time.Since(startServerTime))

	// Step 7: Setup graceful shutdown
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	totalStartupTime := time.Since(start)
	logger.Startup().Info("Application startup complete",
		"totalDuration", totalStartupTime,
		"sessionTTL", config.SessionTTL,
		"sweepInterval", config.SweepInterval,
		"port", port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	// Cancel background tasks
	cancelBackgroundTasks()

	// Stop server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	stats := cacheManager.Stats()
	logger.Shutdown().Info("Discarding transient state",
		"sessions", stats.Sessions,
		"carts", stats.Carts,
		"requests", stats.Counter)

	if err := logger.Close(); err != nil {
		log.Printf("Error closing logger: %v", err)
	}

	elapsed := time.Since(start)
	log.Printf("Application shutdown complete (uptime %v, shutdown %v)",
		elapsed, time.Since(shutdownStart))

	return nil
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
