// Package worker keeps the on-disk bookings report fresh in the background.
package worker

import (
	"context"
	"time"

	"shareit/internal/export"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// ReportWorker regenerates the xlsx report whenever a booking changes.
// Signals are coalesced: a refresh already queued absorbs later ones.
type ReportWorker struct {
	exporter *export.Exporter
	queue    chan struct{}
	retry    RetryPolicy
	log      zerolog.Logger
}

func NewReportWorker(exporter *export.Exporter, logger *zerolog.Logger) *ReportWorker {
	var log zerolog.Logger
	if logger != nil {
		log = logger.With().Str("component", "report-worker").Logger()
	}
	return &ReportWorker{
		exporter: exporter,
		queue:    make(chan struct{}, 1),
		retry: RetryPolicy{
			MaxRetries:    3,
			InitialDelay:  time.Second,
			MaxDelay:      30 * time.Second,
			BackoffFactor: 2,
		},
		log: log,
	}
}

// Enqueue requests a report refresh without blocking the caller.
func (w *ReportWorker) Enqueue() {
	select {
	case w.queue <- struct{}{}:
	default:
	}
}

// Start runs the worker loop until the context is canceled.
func (w *ReportWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *ReportWorker) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.queue:
			w.refresh(ctx)
		}
	}
}

func (w *ReportWorker) refresh(ctx context.Context) {
	now := time.Now()
	start := now.AddDate(0, -models.DefaultExportRangeMonthsBefore, 0)
	end := now.AddDate(0, models.DefaultExportRangeMonthsAfter, 0)

	for attempt := 1; ; attempt++ {
		path, err := w.exporter.WriteFile(ctx, start, end)
		if err == nil {
			w.log.Debug().Str("path", path).Msg("report refreshed")
			return
		}

		if attempt > w.retry.MaxRetries {
			w.log.Error().Err(err).Int("attempts", attempt).Msg("report refresh failed")
			return
		}

		w.log.Warn().Err(err).Int("attempt", attempt).Msg("report refresh retry")
		select {
		case <-ctx.Done():
			return
		case <-time.After(w.retry.NextDelay(attempt)):
		}
	}
}
