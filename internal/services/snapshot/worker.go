// Package snapshot keeps the redis snapshot slot in step with the ledger.
package snapshot

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"welfare/internal/ledger"

	log "github.com/sirupsen/logrus"
)

const defaultInterval = 30 * time.Second

// Slot persists one ledger snapshot.
type Slot interface {
	Save(ctx context.Context, snap ledger.Snapshot) error
	Load(ctx context.Context) (*ledger.Snapshot, bool, error)
}

// CatalogSource loads the ledger from the relational store.
type CatalogSource func(ctx context.Context) (ledger.Catalog, error)

// Worker periodically copies the ledger into the slot when it changed.
type Worker struct {
	store    *ledger.Store
	slot     Slot
	interval time.Duration

	dirty atomic.Bool
	// saveMu keeps the ticker and Flush from writing concurrently.
	saveMu sync.Mutex
}

func NewWorker(store *ledger.Store, slot Slot, interval time.Duration) *Worker {
	if store == nil {
		panic("store is required")
	}
	if slot == nil {
		panic("slot is required")
	}
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Worker{store: store, slot: slot, interval: interval}
}

// MarkDirty schedules a save on the next tick.
func (w *Worker) MarkDirty() {
	w.dirty.Store(true)
}

// Restore hydrates the store from the slot, falling back to fallback when the
// slot is empty, unreadable or holds an incompatible snapshot. It reports
// where the state came from.
func (w *Worker) Restore(ctx context.Context, fallback CatalogSource) (string, error) {
	snap, found, err := w.slot.Load(ctx)
	switch {
	case err != nil:
		log.WithError(err).Warn("snapshot slot unreadable, loading catalog from database")
	case found:
		errRestore := w.store.Restore(*snap)
		if errRestore == nil {
			log.WithField("taken_at", snap.TakenAt).Info("ledger restored from snapshot")
			return "snapshot", nil
		}
		log.WithError(errRestore).Warn("snapshot rejected, loading catalog from database")
	}

	if fallback == nil {
		return "empty", nil
	}
	catalog, err := fallback(ctx)
	if err != nil {
		return "", fmt.Errorf("load catalog: %w", err)
	}
	if err := w.store.Load(catalog); err != nil {
		return "", fmt.Errorf("hydrate ledger: %w", err)
	}
	w.MarkDirty()
	log.WithField("employees", len(catalog.Employees)).Info("ledger loaded from database")
	return "database", nil
}

// Start launches the save loop in a background goroutine.
func (w *Worker) Start(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	go w.run(ctx)
	log.Infof("snapshot worker started (interval=%s)", w.interval)
}

func (w *Worker) run(ctx context.Context) {
	for {
		timer := time.NewTimer(w.interval)
		select {
		case <-ctx.Done():
			if !timer.Stop() {
				<-timer.C
			}
			return
		case <-timer.C:
		}
		if err := w.saveIfDirty(ctx); err != nil {
			log.WithError(err).Warn("snapshot worker: save failed")
		}
	}
}

// Flush saves immediately if anything changed since the last save.
func (w *Worker) Flush(ctx context.Context) error {
	return w.saveIfDirty(ctx)
}

func (w *Worker) saveIfDirty(ctx context.Context) error {
	w.saveMu.Lock()
	defer w.saveMu.Unlock()

	if !w.dirty.Swap(false) {
		return nil
	}
	if err := w.store.CheckInvariants(); err != nil {
		log.WithError(err).Error("snapshot worker: ledger invariant broken, skipping save")
		return err
	}

	snap := w.store.Snapshot()
	if err := w.slot.Save(ctx, snap); err != nil {
		w.dirty.Store(true)
		return err
	}
	log.WithField("transactions", len(snap.Transactions)).Debug("ledger snapshot saved")
	return nil
}
