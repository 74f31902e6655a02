package main

import (
	"context"
	"embed"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/lo"

	"github.com/Alialhaj1/SLMS-sub009/internal/api"
	"github.com/Alialhaj1/SLMS-sub009/internal/config"
	"github.com/Alialhaj1/SLMS-sub009/internal/costing"
	"github.com/Alialhaj1/SLMS-sub009/internal/database"
	"github.com/Alialhaj1/SLMS-sub009/internal/domain"
	"github.com/Alialhaj1/SLMS-sub009/internal/export"
	"github.com/Alialhaj1/SLMS-sub009/internal/ledger"
	"github.com/Alialhaj1/SLMS-sub009/internal/rates"
	"github.com/Alialhaj1/SLMS-sub009/internal/worker"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	// Connect to database
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Run migrations
	migrationsSub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		log.Fatalf("Failed to create migrations sub-fs: %v", err)
	}
	if err := database.RunMigrations(ctx, pool, migrationsSub); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Exchange rate service
	fxClient := rates.NewClient(cfg.FXBaseURL, cfg.FXRetryBaseDelay, cfg.FXRetryMax)
	quoteRepo := rates.NewPgQuoteRepository(pool)
	currencies := lo.Map(cfg.QuoteCurrencies, func(c string, _ int) domain.CurrencyCode {
		return domain.CurrencyCode(c)
	})
	rateSvc := rates.NewService(fxClient, quoteRepo, domain.CurrencyCode(cfg.LocalCurrency), currencies, cfg.QuoteStaleThreshold)

	// Calculation ledger
	ledgerRepo := ledger.NewPgRepository(pool)
	ledgerSvc := ledger.NewService(costing.New(), ledgerRepo)

	// Start workers
	rateWorker := worker.NewRateWorker(rateSvc, cfg.RateWorkerInterval)
	go rateWorker.Run(ctx)

	if cfg.SpreadsheetID != "" && cfg.GoogleCredentials != "" {
		writer, err := export.NewSheetsWriter(ctx, cfg.SpreadsheetID, cfg.GoogleCredentials)
		if err != nil {
			log.Fatalf("Failed to create sheets writer: %v", err)
		}
		exportWorker := worker.NewExportWorker(export.NewService(ledgerRepo, writer), cfg.ExportWorkerInterval)
		go exportWorker.Run(ctx)
	} else {
		slog.Info("spreadsheet export disabled, SHEETS_SPREADSHEET_ID or GOOGLE_CREDENTIALS_JSON not set")
	}

	if cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY not set, calculation endpoint is unprotected")
	}

	// Start HTTP server
	srv := api.NewServer(cfg.HTTPPort, api.NewHandler(ledgerSvc, rateSvc), cfg.AdminAPIKey)

	go func() {
		log.Printf("HTTP server listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}
