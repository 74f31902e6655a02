package worker

import (
	"context"
	"log/slog"
	"time"
)

// QuoteFetcher defines the interface for refreshing stored exchange quotes.
type QuoteFetcher interface {
	FetchAndStoreQuotes(ctx context.Context) error
}

// RateWorker periodically refreshes exchange quotes from the external API.
type RateWorker struct {
	fetcher  QuoteFetcher
	interval time.Duration
}

// NewRateWorker creates a new RateWorker.
func NewRateWorker(fetcher QuoteFetcher, interval time.Duration) *RateWorker {
	return &RateWorker{
		fetcher:  fetcher,
		interval: interval,
	}
}

// Run starts the rate worker loop. It blocks until the context is cancelled.
func (w *RateWorker) Run(ctx context.Context) {
	slog.Info("RateWorker: starting")

	// Refresh immediately on startup
	if err := w.fetcher.FetchAndStoreQuotes(ctx); err != nil {
		slog.Error("RateWorker: initial refresh failed", "error", err)
	} else {
		slog.Info("RateWorker: initial refresh completed")
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("RateWorker: shutting down")
			return
		case <-ticker.C:
			if err := w.fetcher.FetchAndStoreQuotes(ctx); err != nil {
				slog.Error("RateWorker: refresh failed", "error", err)
			} else {
				slog.Info("RateWorker: refresh completed")
			}
		}
	}
}
