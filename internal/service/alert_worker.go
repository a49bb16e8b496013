package service

import (
	"context"
	"sync"
	"time"

	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/util"
	"github.com/rs/zerolog"
)

// AlertNotifier delivers the alerts raised for one workspace and month
type AlertNotifier interface {
	NotifyAlerts(ctx context.Context, workspaceID int32, year, month int, alerts []domain.Alert) error
}

// AlertWorker periodically computes spending insights for every workspace and
// hands any alerts to the notifier
type AlertWorker struct {
	insightsService *InsightsService
	workspaceRepo   domain.WorkspaceRepository
	notifier        AlertNotifier
	logger          zerolog.Logger
	interval        time.Duration
	now             func() time.Time
	stopCh          chan struct{}
	doneCh          chan struct{}
	mu              sync.Mutex
	running         bool
}

// AlertWorkerConfig holds configuration for the alert worker
type AlertWorkerConfig struct {
	Interval time.Duration // How often to sweep all workspaces
}

func DefaultAlertWorkerConfig() AlertWorkerConfig {
	return AlertWorkerConfig{Interval: 6 * time.Hour}
}

func NewAlertWorker(
	insightsService *InsightsService,
	workspaceRepo domain.WorkspaceRepository,
	notifier AlertNotifier,
	logger zerolog.Logger,
	config AlertWorkerConfig,
) *AlertWorker {
	if config.Interval <= 0 {
		config.Interval = DefaultAlertWorkerConfig().Interval
	}

	return &AlertWorker{
		insightsService: insightsService,
		workspaceRepo:   workspaceRepo,
		notifier:        notifier,
		logger:          logger.With().Str("component", "alert_worker").Logger(),
		interval:        config.Interval,
		now:             time.Now,
	}
}

// Start begins the background sweep. Calling Start on a running worker is a no-op.
// A stopped worker can be started again.
func (w *AlertWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	stop, done := make(chan struct{}), make(chan struct{})
	w.stopCh, w.doneCh = stop, done
	w.mu.Unlock()

	w.logger.Info().Dur("interval", w.interval).Msg("Starting alert worker")

	go w.run(ctx, stop, done)
}

// Stop gracefully stops the worker and waits for the current sweep to finish
func (w *AlertWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	stop, done := w.stopCh, w.doneCh
	w.running = false
	w.mu.Unlock()

	w.logger.Info().Msg("Stopping alert worker")
	close(stop)
	<-done
	w.logger.Info().Msg("Alert worker stopped")
}

func (w *AlertWorker) run(ctx context.Context, stop <-chan struct{}, done chan struct{}) {
	defer close(done)
	defer func() {
		w.mu.Lock()
		// a cancelled context ends the run without Stop
		if w.doneCh == done {
			w.running = false
		}
		w.mu.Unlock()
	}()

	w.Sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// SweepResult counts the outcome of one sweep
type SweepResult struct {
	Workspaces int
	Alerts     int
	Errors     int
}

// Sweep checks the current month of every workspace once
func (w *AlertWorker) Sweep(ctx context.Context) SweepResult {
	startTime := time.Now()
	year, month := util.CurrentYearMonth(w.now())
	result := SweepResult{}

	ids, err := w.workspaceRepo.ListIDs(ctx)
	if err != nil {
		w.logger.Error().Err(err).Msg("Failed to list workspaces for alert sweep")
		result.Errors++
		return result
	}

	for _, id := range ids {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Context cancelled, stopping sweep")
			return result
		case <-w.stopCh:
			w.logger.Info().Msg("Stop signal received, stopping sweep")
			return result
		default:
		}

		result.Workspaces++
		report, err := w.insightsService.GetSpendingInsights(ctx, id, year, month)
		if err != nil {
			w.logger.Error().Err(err).Int32("workspace_id", id).Msg("Failed to compute insights for workspace")
			result.Errors++
			continue
		}
		if len(report.Alerts) == 0 {
			continue
		}

		if err := w.notifier.NotifyAlerts(ctx, id, year, month, report.Alerts); err != nil {
			w.logger.Error().Err(err).Int32("workspace_id", id).Int("alerts", len(report.Alerts)).Msg("Failed to deliver spending alerts")
			result.Errors++
			continue
		}
		result.Alerts += len(report.Alerts)
	}

	w.logger.Info().
		Int("workspaces", result.Workspaces).
		Int("alerts", result.Alerts).
		Int("errors", result.Errors).
		Dur("elapsed", time.Since(startTime)).
		Msg("Completed alert sweep")
	return result
}

func (w *AlertWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
