package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/pennywise/pennywise/internal/learning"
	"github.com/pennywise/pennywise/internal/model"
	"github.com/pennywise/pennywise/internal/rules"
)

// Feedback orchestrates the mutation path triggered by a user correction:
// ledger append, pattern aggregation, and rule confidence adjustment. One
// correction is processed at a time; each collaborator serializes its own
// writes.
type Feedback struct {
	ledger     *learning.Ledger
	aggregator *learning.Aggregator
	store      *rules.Store
}

// NewFeedback creates the correction feedback orchestrator.
func NewFeedback(ledger *learning.Ledger, aggregator *learning.Aggregator, store *rules.Store) *Feedback {
	return &Feedback{
		ledger:     ledger,
		aggregator: aggregator,
		store:      store,
	}
}

// Apply records a user's category override for a transaction. ruleID names
// the rule whose verdict is being overridden, when known; its confidence is
// penalized. The correction is appended to the ledger and mined for
// learning patterns.
func (f *Feedback) Apply(ctx context.Context, txn model.Transaction, newCategory string, ruleID *int) error {
	correction := model.Correction{
		Timestamp:        time.Now(),
		Description:      txn.Name,
		OldCategory:      txn.Category,
		NewCategory:      newCategory,
		Amount:           txn.Amount,
		MerchantName:     txn.MerchantName,
		SourceConfidence: txn.Confidence,
	}

	if err := f.ledger.Append(ctx, correction); err != nil {
		return fmt.Errorf("failed to record correction: %w", err)
	}
	if err := f.aggregator.RecordCorrection(ctx, correction); err != nil {
		return fmt.Errorf("failed to aggregate correction: %w", err)
	}
	if ruleID != nil {
		if err := f.store.RecordCorrection(ctx, *ruleID); err != nil {
			return fmt.Errorf("failed to penalize rule %d: %w", *ruleID, err)
		}
	}
	return nil
}
