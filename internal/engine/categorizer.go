// Package engine implements the batch categorizer: the full classification
// pipeline applied across an imported record batch.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/pennywise/pennywise/internal/model"
	"github.com/pennywise/pennywise/internal/rules"
	"github.com/pennywise/pennywise/internal/service"
)

// Config holds the categorizer's tunable thresholds. Fallback confidences
// must stay strictly below AutoApplyThreshold so fallback verdicts are
// never silently auto-applied.
type Config struct {
	AutoApplyThreshold        float64 // Verdicts at or above are auto-applied
	HighConfidenceThreshold   float64 // Subset reported for summary purposes
	MerchantBypassConfidence  float64 // Curated lookup bar that skips arbitration
	IncomeFallbackConfidence  float64
	KeywordFallbackConfidence float64
	MinimalConfidence         float64
	ChunkSize                 int // Records committed per chunk
	Workers                   int // Parallel classifiers per chunk, 0 = NumCPU
}

// DefaultConfig returns the default categorizer thresholds.
func DefaultConfig() Config {
	return Config{
		AutoApplyThreshold:        0.70,
		HighConfidenceThreshold:   0.90,
		MerchantBypassConfidence:  0.85,
		IncomeFallbackConfidence:  0.30,
		KeywordFallbackConfidence: 0.50,
		MinimalConfidence:         0.10,
		ChunkSize:                 500,
		Workers:                   0,
	}
}

// Categorizer applies merchant lookup, rule arbitration, and fallback
// heuristics across record batches. Classification is a pure read path;
// all mutation happens in the feedback path after a batch completes.
type Categorizer struct {
	store     *rules.Store
	merchants service.MerchantLookup
	storage   service.Storage
	cfg       Config
}

// New creates a batch categorizer. storage may be nil when the caller
// manages persistence itself; chunk commits are then skipped.
func New(store *rules.Store, merchants service.MerchantLookup, storage service.Storage, cfg Config) *Categorizer {
	return &Categorizer{
		store:     store,
		merchants: merchants,
		storage:   storage,
		cfg:       cfg,
	}
}

// Classify produces a verdict for a single transaction using the given
// matcher snapshot: curated merchant lookup first, then rule arbitration,
// then last-resort heuristics. Per-record anomalies are absorbed; Classify
// always returns a verdict.
func (c *Categorizer) Classify(ctx context.Context, txn model.Transaction, matcher *rules.Matcher) model.Verdict {
	if c.merchants != nil {
		match, err := c.merchants.Categorize(ctx, txn)
		if err != nil {
			slog.Debug("merchant lookup failed, falling through to rules",
				"transaction", txn.ID, "error", err)
		} else if match != nil &&
			match.Source == service.MerchantSourceCurated &&
			match.Confidence >= c.cfg.MerchantBypassConfidence {
			return model.Verdict{
				Category:       match.Category,
				Confidence:     match.Confidence,
				Source:         model.SourceMerchantDatabase,
				MatchedPattern: match.MatchedPattern,
			}
		}
	}

	if rule, confidence := matcher.Arbitrate(txn); rule != nil {
		id := rule.ID
		return model.Verdict{
			Category:   rule.Category,
			Confidence: confidence,
			Source:     model.SourceRule,
			RuleID:     &id,
		}
	}

	return c.fallback(txn)
}

// ClassifyBatch runs the pipeline over an ordered record batch in chunks,
// committing each chunk independently so an interrupted run never loses
// already-committed results. Only verdicts at or above AutoApplyThreshold
// are committed; the rest are reported for review and remain pending in
// storage. Records within a chunk are classified in parallel; the rule
// store must not be edited mid-batch.
//
// On a chunk failure the summary still reports every remaining record as
// uncategorized, alongside the error.
func (c *Categorizer) ClassifyBatch(ctx context.Context, txns []model.Transaction) (*service.BatchSummary, error) {
	summary := &service.BatchSummary{Total: len(txns)}
	matcher := c.store.Matcher()

	chunkSize := c.cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = len(txns)
	}

	var ruleMatches []int

	for start := 0; start < len(txns); start += chunkSize {
		end := start + chunkSize
		if end > len(txns) {
			end = len(txns)
		}

		if err := ctx.Err(); err != nil {
			c.reportRemainder(summary, txns[start:])
			return summary, err
		}

		chunk := make([]model.Transaction, end-start)
		copy(chunk, txns[start:end])

		verdicts, err := c.classifyChunk(ctx, chunk, matcher)
		if err != nil {
			c.reportRemainder(summary, txns[start:])
			return summary, err
		}

		// Only auto-applied verdicts are committed. Records below the
		// threshold keep an empty category so they stay in the pending
		// set and later runs can pick them up with new rules.
		applied := make([]model.Transaction, 0, len(chunk))
		for i := range chunk {
			if verdicts[i].Confidence >= c.cfg.AutoApplyThreshold {
				applyVerdict(&chunk[i], verdicts[i])
				applied = append(applied, chunk[i])
			}
		}

		if c.storage != nil && len(applied) > 0 {
			if err := c.storage.SaveClassified(ctx, applied); err != nil {
				c.reportRemainder(summary, txns[start:])
				return summary, fmt.Errorf("failed to commit chunk: %w", err)
			}
		}

		for i := range chunk {
			c.tally(summary, chunk[i], verdicts[i], &ruleMatches)
		}
	}

	// Feedback on applied rule verdicts happens after the read-only batch.
	for _, id := range ruleMatches {
		if err := c.store.RecordMatch(ctx, id); err != nil {
			slog.Warn("failed to record rule match", "rule", id, "error", err)
		}
	}

	slog.Info("batch categorization complete",
		"total", summary.Total,
		"categorized", summary.CategorizedCount,
		"high_confidence", summary.HighConfidenceCount,
		"uncategorized", summary.UncategorizedCount)

	return summary, nil
}

// classifyChunk classifies one chunk in parallel, bounded by CPU count.
func (c *Categorizer) classifyChunk(ctx context.Context, chunk []model.Transaction, matcher *rules.Matcher) ([]model.Verdict, error) {
	verdicts := make([]model.Verdict, len(chunk))

	workers := c.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range chunk {
		i := i
		g.Go(func() error {
			verdicts[i] = c.Classify(gctx, chunk[i], matcher)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return verdicts, nil
}

// tally partitions one classified record into the summary.
func (c *Categorizer) tally(summary *service.BatchSummary, txn model.Transaction, verdict model.Verdict, ruleMatches *[]int) {
	if verdict.Confidence >= c.cfg.AutoApplyThreshold {
		summary.Categorized = append(summary.Categorized, txn)
		summary.CategorizedCount++
		if verdict.Confidence >= c.cfg.HighConfidenceThreshold {
			summary.HighConfidenceCount++
		}
		if verdict.Source == model.SourceRule && verdict.RuleID != nil {
			*ruleMatches = append(*ruleMatches, *verdict.RuleID)
		}
		return
	}
	summary.Uncategorized = append(summary.Uncategorized, txn)
	summary.UncategorizedCount++
}

// reportRemainder routes every not-yet-committed record to manual review.
func (c *Categorizer) reportRemainder(summary *service.BatchSummary, remainder []model.Transaction) {
	for _, txn := range remainder {
		txn.Category = model.CategoryUncategorized
		summary.Uncategorized = append(summary.Uncategorized, txn)
		summary.UncategorizedCount++
	}
}

// applyVerdict mutates the record's category and confidence, the only two
// fields the engine ever writes.
func applyVerdict(txn *model.Transaction, verdict model.Verdict) {
	txn.Category = verdict.Category
	confidence := verdict.Confidence
	txn.Confidence = &confidence
}
