package workers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

// StorageGCWorker reclaims badger value-log space in the background. Badger
// never runs GC on its own, so a long-lived process has to drive it.
type StorageGCWorker struct {
	log      *slog.Logger
	db       *badger.DB
	interval time.Duration
}

func NewStorageGCWorker(log *slog.Logger, db *badger.DB, interval time.Duration) *StorageGCWorker {
	return &StorageGCWorker{log: log, db: db, interval: interval}
}

func (w *StorageGCWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			// One successful rewrite may unlock another, loop until clean.
			for {
				err := w.db.RunValueLogGC(0.5)
				if err == nil {
					w.log.Debug("Value log file rewritten")
					continue
				}
				if errors.Is(err, badger.ErrNoRewrite) {
					break
				}
				w.log.Warn("Value log GC failed", "error", err)
				break
			}
		}
	}
}
