package learning

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pennywise/pennywise/internal/common"
	"github.com/pennywise/pennywise/internal/model"
	"github.com/pennywise/pennywise/internal/service"
)

// Aggregator mines the correction ledger into reusable patterns with
// rolling confidence. One pattern exists per mined token; corrections that
// confirm the pattern's category raise its confidence, contradicting
// corrections lower it without crediting a successful match.
type Aggregator struct {
	storage  service.Storage
	now      func() time.Time
	patterns map[string]model.CorrectionPattern
	cfg      Config
	mu       sync.Mutex
}

// NewAggregator creates a pattern aggregator over the persistence
// collaborator. A load failure degrades to an empty pattern set.
func NewAggregator(ctx context.Context, storage service.Storage, cfg Config) *Aggregator {
	a := &Aggregator{
		storage:  storage,
		cfg:      cfg,
		now:      time.Now,
		patterns: make(map[string]model.CorrectionPattern),
	}

	if storage == nil {
		return a
	}

	patterns, err := storage.LoadPatterns(ctx)
	if err != nil {
		common.LogWarn("failed to load learning patterns, starting empty",
			common.Fields{"error": err.Error()})
		return a
	}
	if patterns != nil {
		a.patterns = patterns
	}
	return a
}

// RecordCorrection updates or creates a pattern for every token mined from
// the correction, then persists the pattern set.
func (a *Aggregator) RecordCorrection(ctx context.Context, correction model.Correction) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	for _, token := range correction.LearningPatterns() {
		pattern, exists := a.patterns[token]
		if !exists {
			a.patterns[token] = model.CorrectionPattern{
				Token:             token,
				Category:          correction.NewCategory,
				Confidence:        a.cfg.InitialConfidence,
				OccurrenceCount:   1,
				SuccessfulMatches: 1,
				FirstSeen:         now,
				LastUpdated:       now,
			}
			continue
		}

		pattern.OccurrenceCount++
		if pattern.Category == correction.NewCategory {
			pattern.SuccessfulMatches++
			pattern.Confidence += a.cfg.ConfidenceStep
			if pattern.Confidence > a.cfg.MaxPatternConfidence {
				pattern.Confidence = a.cfg.MaxPatternConfidence
			}
		} else {
			// The token is proving unreliable for its category.
			pattern.Confidence -= a.cfg.ConfidencePenalty
			if pattern.Confidence < a.cfg.MinPatternConfidence {
				pattern.Confidence = a.cfg.MinPatternConfidence
			}
		}
		pattern.LastUpdated = now
		a.patterns[token] = pattern
	}

	return a.persistLocked(ctx)
}

// EligiblePatterns returns the patterns currently qualifying for rule
// suggestion, re-derived from the promotion thresholds on every call.
func (a *Aggregator) EligiblePatterns() []model.CorrectionPattern {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	var eligible []model.CorrectionPattern
	for _, pattern := range a.patterns {
		if pattern.ShouldSuggestRule(now, a.cfg.MinOccurrences, a.cfg.MinConfidence, a.cfg.MaxPatternAge) {
			eligible = append(eligible, pattern)
		}
	}
	return eligible
}

// Pattern returns the pattern for a token, if it exists.
func (a *Aggregator) Pattern(token string) (model.CorrectionPattern, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	pattern, ok := a.patterns[token]
	return pattern, ok
}

// Patterns returns a snapshot of all tracked patterns.
func (a *Aggregator) Patterns() map[string]model.CorrectionPattern {
	a.mu.Lock()
	defer a.mu.Unlock()

	snapshot := make(map[string]model.CorrectionPattern, len(a.patterns))
	for token, pattern := range a.patterns {
		snapshot[token] = pattern
	}
	return snapshot
}

// Discard removes a pattern permanently, preventing endless re-suggestion
// of a dismissed candidate.
func (a *Aggregator) Discard(ctx context.Context, token string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.patterns[token]; !ok {
		return fmt.Errorf("%w: %q", common.ErrPatternNotFound, token)
	}
	delete(a.patterns, token)
	return a.persistLocked(ctx)
}

func (a *Aggregator) persistLocked(ctx context.Context) error {
	if a.storage == nil {
		return nil
	}
	if err := a.storage.SavePatterns(ctx, a.patterns); err != nil {
		return fmt.Errorf("failed to save learning patterns: %w", err)
	}
	return nil
}
