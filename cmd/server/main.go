package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	financeapp "github.com/hamsefx10-lgtm/revlo-backend/internal/application/finance"
	reportapp "github.com/hamsefx10-lgtm/revlo-backend/internal/application/report"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/finance"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared/valueobject"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/infrastructure/config"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/infrastructure/logger"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/infrastructure/persistence"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/interfaces/http/handler"
	"github.com/hamsefx10-lgtm/revlo-backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting ledger service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Repositories
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	fixedAssetRepo := persistence.NewGormFixedAssetRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)

	// Domain services
	resolver := finance.NewDimensionResolver(
		accountRepo, expenseRepo, projectRepo, customerRepo, vendorRepo, employeeRepo,
	)
	maintainer := finance.NewBalanceMaintainer()
	settlements := finance.NewSettlementResolver(
		transactionRepo, expenseRepo, paymentRepo, projectRepo, customerRepo, vendorRepo,
	)

	// Application services
	scope := persistence.NewGormLedgerTransactionScope(db.DB)
	ledgerService := financeapp.NewLedgerService(scope, resolver, maintainer, log)
	accountService := financeapp.NewAccountService(accountRepo, transactionRepo, log)
	accountService.SetDefaultCurrency(valueobject.Currency(cfg.Report.DefaultCurrency))
	statementService := reportapp.NewStatementService(
		accountRepo, transactionRepo, expenseRepo, paymentRepo, fixedAssetRepo,
		projectRepo, itemRepo, settlements, log,
	)
	statementService.SetMaxLedgerRows(cfg.Report.LedgerMaxRows)

	// HTTP layer
	engine := router.NewEngine(cfg, log)
	router.NewRouter(engine).
		Register(handler.NewAccountHandler(accountService, ledgerService)).
		Register(handler.NewLedgerHandler(ledgerService)).
		Register(handler.NewReportHandler(statementService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
