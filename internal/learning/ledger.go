package learning

import (
	"context"
	"fmt"
	"sync"

	"github.com/pennywise/pennywise/internal/common"
	"github.com/pennywise/pennywise/internal/model"
	"github.com/pennywise/pennywise/internal/service"
)

// Ledger is the append-only log of user category corrections, bounded to a
// fixed maximum. When the cap is exceeded the oldest entries are discarded
// first, keeping memory bounded no matter how long the ledger lives.
type Ledger struct {
	storage     service.Storage
	corrections []model.Correction
	max         int
	mu          sync.Mutex
}

// NewLedger creates a correction ledger over the persistence collaborator.
// A load failure degrades to an empty ledger with a warning.
func NewLedger(ctx context.Context, storage service.Storage, maxEntries int) *Ledger {
	l := &Ledger{storage: storage, max: maxEntries}

	if storage == nil {
		return l
	}

	corrections, err := storage.LoadCorrections(ctx)
	if err != nil {
		common.LogWarn("failed to load correction ledger, starting empty",
			common.Fields{"error": err.Error()})
		return l
	}

	l.corrections = corrections
	l.trimLocked()
	return l
}

// Append records a correction, trims the ledger to its cap, and persists.
func (l *Ledger) Append(ctx context.Context, correction model.Correction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.corrections = append(l.corrections, correction)
	l.trimLocked()

	if l.storage == nil {
		return nil
	}
	if err := l.storage.SaveCorrections(ctx, l.corrections); err != nil {
		return fmt.Errorf("failed to save correction ledger: %w", err)
	}
	return nil
}

// Corrections returns a snapshot of the ledger, oldest first.
func (l *Ledger) Corrections() []model.Correction {
	l.mu.Lock()
	defer l.mu.Unlock()

	snapshot := make([]model.Correction, len(l.corrections))
	copy(snapshot, l.corrections)
	return snapshot
}

// Len returns the current number of ledger entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.corrections)
}

func (l *Ledger) trimLocked() {
	if l.max > 0 && len(l.corrections) > l.max {
		excess := len(l.corrections) - l.max
		l.corrections = append(l.corrections[:0:0], l.corrections[excess:]...)
	}
}
