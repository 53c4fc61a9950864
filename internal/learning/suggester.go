package learning

import (
	"context"
	"fmt"
	"sort"

	"github.com/pennywise/pennywise/internal/common"
	"github.com/pennywise/pennywise/internal/model"
	"github.com/pennywise/pennywise/internal/rules"
)

// Suggester turns promotion-eligible patterns into user-reviewable rule
// proposals. Suggestions are never auto-activated: a candidate joins the
// custom rule set only through an explicit Promote, and a Dismiss discards
// the underlying pattern so it is never suggested again.
type Suggester struct {
	aggregator *Aggregator
	store      *rules.Store
	cfg        Config
}

// NewSuggester creates a rule suggestion generator.
func NewSuggester(aggregator *Aggregator, store *rules.Store, cfg Config) *Suggester {
	return &Suggester{
		aggregator: aggregator,
		store:      store,
		cfg:        cfg,
	}
}

// Suggestions returns one inactive, low-priority candidate rule per
// currently eligible pattern, sorted by confidence descending with ties
// broken by token so the order is stable run to run. The set is
// regenerated from the pattern state on every call, never cached.
func (s *Suggester) Suggestions() []model.Rule {
	eligible := s.aggregator.EligiblePatterns()

	suggestions := make([]model.Rule, 0, len(eligible))
	for _, pattern := range eligible {
		suggestions = append(suggestions, s.candidateRule(pattern))
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Confidence != suggestions[j].Confidence {
			return suggestions[i].Confidence > suggestions[j].Confidence
		}
		return suggestions[i].DescriptionContains < suggestions[j].DescriptionContains
	})
	return suggestions
}

// Promote activates the candidate rule for a token: the rule is appended to
// the custom rule list as active and the source pattern is retired so it is
// not suggested again.
func (s *Suggester) Promote(ctx context.Context, token string) (model.Rule, error) {
	pattern, ok := s.aggregator.Pattern(token)
	if !ok {
		return model.Rule{}, fmt.Errorf("%w: %q", common.ErrPatternNotFound, token)
	}

	candidate := s.candidateRule(pattern)
	candidate.IsActive = true

	rule, err := s.store.Add(ctx, candidate)
	if err != nil {
		return model.Rule{}, fmt.Errorf("failed to promote pattern %q: %w", token, err)
	}

	if err := s.aggregator.Discard(ctx, token); err != nil {
		return model.Rule{}, fmt.Errorf("failed to retire promoted pattern %q: %w", token, err)
	}
	return rule, nil
}

// Dismiss discards a pattern entirely, preventing endless re-suggestion.
func (s *Suggester) Dismiss(ctx context.Context, token string) error {
	return s.aggregator.Discard(ctx, token)
}

func (s *Suggester) candidateRule(pattern model.CorrectionPattern) model.Rule {
	return model.Rule{
		Name:                fmt.Sprintf("Learned: %s", pattern.Token),
		Category:            pattern.Category,
		DescriptionContains: pattern.Token,
		Priority:            s.cfg.SuggestionPriority,
		Confidence:          pattern.Confidence,
		IsActive:            false,
	}
}
