package rules

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pennywise/pennywise/internal/common"
	"github.com/pennywise/pennywise/internal/model"
	"github.com/pennywise/pennywise/internal/service"
)

// Custom rule IDs start here; lower IDs are reserved for system rules.
const customIDBase = 1000

// StoreConfig holds the tunable feedback constants. The step sizes are
// heuristics, not load-bearing values; the asymmetry (small reward, larger
// penalty) biases the engine toward caution after repeated mistakes.
type StoreConfig struct {
	MatchReward       float64 // Confidence nudge when a rule's verdict is applied
	CorrectionPenalty float64 // Confidence drop when a user overrides a rule
	MaxConfidence     float64 // Confidence never reaches full certainty
	MinConfidence     float64 // Confidence never reaches zero
}

// DefaultStoreConfig returns the default feedback tuning.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		MatchReward:       0.01,
		CorrectionPenalty: 0.05,
		MaxConfidence:     0.99,
		MinConfidence:     0.10,
	}
}

// Store holds the immutable system rule set and the mutable, persisted
// custom rule set, and exposes the merged set to the matching engine.
// All mutation happens under a single writer lock; persistence failures at
// load time degrade to system-rules-only operation.
type Store struct {
	storage service.Storage
	system  []model.Rule
	custom  []model.Rule
	cfg     StoreConfig
	nextID  int
	mu      sync.RWMutex
}

// NewStore creates a rule store over the given persistence collaborator.
// A load failure is not fatal: the store starts with system rules only.
func NewStore(ctx context.Context, storage service.Storage, cfg StoreConfig) *Store {
	s := &Store{
		storage: storage,
		system:  SystemRules(),
		cfg:     cfg,
		nextID:  customIDBase,
	}

	if storage == nil {
		return s
	}

	custom, err := storage.LoadCustomRules(ctx)
	if err != nil {
		common.LogWarn("failed to load custom rules, continuing with system rules only",
			common.Fields{"error": err.Error()})
		return s
	}

	s.custom = custom
	for _, rule := range custom {
		if rule.ID >= s.nextID {
			s.nextID = rule.ID + 1
		}
	}
	return s
}

// Rules returns a snapshot of the merged rule set, system rules first.
func (s *Store) Rules() []model.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	merged := make([]model.Rule, 0, len(s.system)+len(s.custom))
	merged = append(merged, s.system...)
	merged = append(merged, s.custom...)
	return merged
}

// CustomRules returns a snapshot of the user-defined rules.
func (s *Store) CustomRules() []model.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	custom := make([]model.Rule, len(s.custom))
	copy(custom, s.custom)
	return custom
}

// Matcher builds a matcher over the current merged rule set. The matcher
// holds its own snapshot, so it stays consistent for the length of a batch
// even if rules are edited afterwards.
func (s *Store) Matcher() *Matcher {
	return NewMatcher(s.Rules())
}

// Add validates and appends a custom rule, assigning its ID, and persists
// the custom rule list. Returns the stored rule.
func (s *Store) Add(ctx context.Context, rule model.Rule) (model.Rule, error) {
	if err := Validate(&rule); err != nil {
		return model.Rule{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	rule.ID = s.nextID
	rule.IsSystem = false
	rule.CreatedAt = now
	rule.UpdatedAt = now
	s.nextID++

	s.custom = append(s.custom, rule)
	if err := s.persistLocked(ctx); err != nil {
		s.custom = s.custom[:len(s.custom)-1]
		s.nextID--
		return model.Rule{}, fmt.Errorf("failed to save custom rules: %w", err)
	}
	return rule, nil
}

// Update performs a read-modify-write on a custom rule under the single
// writer lock. The mutated rule is re-validated before it is stored.
func (s *Store) Update(ctx context.Context, id int, mutate func(*model.Rule)) (model.Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.customIndexLocked(id)
	if idx < 0 {
		if s.systemIndexLocked(id) >= 0 {
			return model.Rule{}, fmt.Errorf("%w: rule %d", common.ErrSystemRuleEdit, id)
		}
		return model.Rule{}, fmt.Errorf("%w: rule %d", common.ErrRuleNotFound, id)
	}

	updated := s.custom[idx]
	mutate(&updated)
	updated.ID = id // Identity is immutable
	updated.UpdatedAt = time.Now()
	if err := Validate(&updated); err != nil {
		return model.Rule{}, err
	}

	previous := s.custom[idx]
	s.custom[idx] = updated
	if err := s.persistLocked(ctx); err != nil {
		s.custom[idx] = previous
		return model.Rule{}, fmt.Errorf("failed to save custom rules: %w", err)
	}
	return updated, nil
}

// RecordMatch registers that a rule's verdict was applied: bumps the match
// count and last-matched time and nudges confidence up by the reward step,
// capped below full certainty. Feedback on system rules is kept in memory
// only; the system set is regenerated from the binary on every start.
func (s *Store) RecordMatch(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rule := s.findLocked(id)
	if rule == nil {
		return fmt.Errorf("%w: rule %d", common.ErrRuleNotFound, id)
	}

	now := time.Now()
	rule.MatchCount++
	rule.LastMatchedAt = &now
	if rule.Confidence+s.cfg.MatchReward < s.cfg.MaxConfidence {
		rule.Confidence += s.cfg.MatchReward
	} else {
		rule.Confidence = s.cfg.MaxConfidence
	}
	rule.UpdatedAt = now

	if rule.IsSystem {
		return nil
	}
	return s.persistLocked(ctx)
}

// RecordCorrection registers that a user overrode this rule's verdict:
// confidence drops by the penalty step, floored above zero so a rule is
// never permanently dead.
func (s *Store) RecordCorrection(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rule := s.findLocked(id)
	if rule == nil {
		return fmt.Errorf("%w: rule %d", common.ErrRuleNotFound, id)
	}

	rule.Confidence -= s.cfg.CorrectionPenalty
	if rule.Confidence < s.cfg.MinConfidence {
		rule.Confidence = s.cfg.MinConfidence
	}
	rule.UpdatedAt = time.Now()

	if rule.IsSystem {
		return nil
	}
	return s.persistLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) error {
	if s.storage == nil {
		return nil
	}
	return s.storage.SaveCustomRules(ctx, s.custom)
}

func (s *Store) customIndexLocked(id int) int {
	for i := range s.custom {
		if s.custom[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) systemIndexLocked(id int) int {
	for i := range s.system {
		if s.system[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) findLocked(id int) *model.Rule {
	if idx := s.customIndexLocked(id); idx >= 0 {
		return &s.custom[idx]
	}
	if idx := s.systemIndexLocked(id); idx >= 0 {
		return &s.system[idx]
	}
	return nil
}
