package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trayd-platform/trayd_service/internal/api/handlers"
	"github.com/trayd-platform/trayd_service/internal/api/routes"
	"github.com/trayd-platform/trayd_service/internal/domain/services/funding"
	"github.com/trayd-platform/trayd_service/internal/domain/services/profile"
	"github.com/trayd-platform/trayd_service/internal/domain/services/purchase"
	"github.com/trayd-platform/trayd_service/internal/domain/services/report"
	"github.com/trayd-platform/trayd_service/internal/domain/services/team"
	"github.com/trayd-platform/trayd_service/internal/domain/services/wallet"
	"github.com/trayd-platform/trayd_service/internal/infrastructure/cache"
	"github.com/trayd-platform/trayd_service/internal/infrastructure/config"
	"github.com/trayd-platform/trayd_service/internal/infrastructure/database"
	"github.com/trayd-platform/trayd_service/internal/infrastructure/repositories"
	packageexpiry "github.com/trayd-platform/trayd_service/internal/workers/package_expiry"
	"github.com/trayd-platform/trayd_service/pkg/logger"
	"github.com/trayd-platform/trayd_service/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.Environment)
	defer log.Sync()

	log.Info("starting trayd service", "environment", cfg.Environment)

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}
	log.Info("database ready")

	// Redis is optional: catalog caching and readiness reporting degrade
	// gracefully without it.
	cacheClient, err := cache.NewClient(cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, catalog caching disabled", "error", err)
		cacheClient = nil
	} else {
		defer cacheClient.Close()
	}

	go func() {
		for range time.Tick(15 * time.Second) {
			metrics.DatabaseConnectionsGauge.Set(float64(db.Stats().OpenConnections))
		}
	}()

	walletRepo := repositories.NewWalletRepository(db)
	ledgerRepo := repositories.NewLedgerRepository(db)
	userRepo := repositories.NewUserRepository(db)
	packageRepo := repositories.NewPackageRepository(db)

	var catalogCache purchase.CatalogCache
	if cacheClient != nil {
		catalogCache = cacheClient
	}

	walletService := wallet.NewService(walletRepo, ledgerRepo, cfg.Platform.WithdrawalFeePercent, log)
	fundingService := funding.NewService(ledgerRepo, cfg.Platform.DefaultCoinType, log)
	purchaseService := purchase.NewService(walletRepo, ledgerRepo, packageRepo, catalogCache,
		cfg.Platform.CatalogTTL(), cfg.Platform.MinPackageAmount, cfg.Platform.PackageTermMonths, log)
	reportService := report.NewService(ledgerRepo, log)
	teamService := team.NewService(userRepo, log)
	profileService := profile.NewService(userRepo, log)

	router := routes.Setup(cfg, routes.Handlers{
		Core:     handlers.NewCoreHandler(db, cacheClient, log),
		Wallet:   handlers.NewWalletHandler(walletService, log),
		Funding:  handlers.NewFundingHandler(fundingService, log),
		Purchase: handlers.NewPurchaseHandler(purchaseService, log),
		Report:   handlers.NewReportHandler(reportService, log),
		Team:     handlers.NewTeamHandler(teamService, log),
		Profile:  handlers.NewProfileHandler(profileService, log),
	}, log)

	var expiryWorker *packageexpiry.Worker
	if cfg.Workers.PackageExpiryEnabled {
		expiryWorker = packageexpiry.NewWorker(ledgerRepo, cfg.Workers.PackageExpiryCron,
			log.With("component", "package_expiry"))
		if err := expiryWorker.Start(); err != nil {
			log.Fatal("failed to start package expiry worker", "error", err)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	if expiryWorker != nil {
		expiryWorker.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
	log.Info("server stopped")
}
