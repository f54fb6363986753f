// Package packageexpiry runs the nightly sweep that flips purchases past
// their end date to expired.
package packageexpiry

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/trayd-platform/trayd_service/pkg/logger"
)

// LedgerStore expires due packages.
type LedgerStore interface {
	ExpireDuePackages(ctx context.Context, now time.Time) (int64, error)
}

// Worker schedules the expiry sweep.
type Worker struct {
	ledger LedgerStore
	cron   *cron.Cron
	spec   string
	logger *logger.Logger
}

func NewWorker(ledger LedgerStore, spec string, log *logger.Logger) *Worker {
	return &Worker{
		ledger: ledger,
		cron:   cron.New(),
		spec:   spec,
		logger: log,
	}
}

// Start registers the sweep and starts the scheduler.
func (w *Worker) Start() error {
	if _, err := w.cron.AddFunc(w.spec, w.run); err != nil {
		return fmt.Errorf("schedule package expiry: %w", err)
	}
	w.cron.Start()
	w.logger.Info("package expiry worker started", "schedule", w.spec)
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (w *Worker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.logger.Info("package expiry worker stopped")
}

func (w *Worker) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	expired, err := w.ledger.ExpireDuePackages(ctx, time.Now().UTC())
	if err != nil {
		w.logger.Error("package expiry sweep failed", "error", err)
		return
	}
	if expired > 0 {
		w.logger.Info("package expiry sweep completed", "expired", expired)
	}
}
