// Package rules implements the rule matching engine: condition evaluation,
// match confidence scoring, arbitration, and the merged rule store.
package rules

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pennywise/pennywise/internal/model"
)

// Confidence bonuses awarded for condition specificity.
const (
	bonusMerchantExact    = 0.3
	bonusMerchantContains = 0.2
	bonusAmountBound      = 0.1
	bonusDayOfWeek        = 0.1
	bonusPattern          = 0.2
	bonusHistoryCap       = 0.2
	bonusHistoryStep      = 0.01
)

// Matcher evaluates transactions against a fixed rule snapshot. Regex
// conditions are compiled once at construction; a rule whose pattern fails
// to compile fails closed and never matches.
type Matcher struct {
	compiled map[int]*regexp.Regexp
	broken   map[int]bool
	rules    []model.Rule
}

// NewMatcher creates a matcher over the given rules.
func NewMatcher(ruleSet []model.Rule) *Matcher {
	m := &Matcher{
		rules:    ruleSet,
		compiled: make(map[int]*regexp.Regexp),
		broken:   make(map[int]bool),
	}

	for _, rule := range ruleSet {
		if rule.Pattern == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			m.broken[rule.ID] = true
			continue
		}
		m.compiled[rule.ID] = re
	}

	return m
}

// Matches evaluates every populated condition of the rule against the
// transaction. Any failed condition short-circuits to false. A rule with no
// conditions never matches.
func (m *Matcher) Matches(rule model.Rule, txn model.Transaction) bool {
	if !rule.HasConditions() {
		return false
	}

	merchant := strings.ToLower(txn.SearchText())
	description := strings.ToLower(txn.Name)

	if rule.MerchantExact != "" && merchant != strings.ToLower(rule.MerchantExact) {
		return false
	}
	if rule.MerchantContains != "" && !strings.Contains(merchant, strings.ToLower(rule.MerchantContains)) {
		return false
	}
	if rule.DescriptionContains != "" && !strings.Contains(description, strings.ToLower(rule.DescriptionContains)) {
		return false
	}

	if !m.matchesAmount(rule, txn.Amount) {
		return false
	}

	switch rule.AmountSign {
	case model.SignPositive:
		if txn.Amount <= 0 {
			return false
		}
	case model.SignNegative:
		if txn.Amount >= 0 {
			return false
		}
	}

	if len(rule.DaysOfWeek) > 0 && !matchesDayOfWeek(rule.DaysOfWeek, txn) {
		return false
	}

	if rule.Pattern != "" {
		if m.broken[rule.ID] {
			return false
		}
		re, ok := m.compiled[rule.ID]
		if !ok || !re.MatchString(txn.Name) {
			return false
		}
	}

	return true
}

// matchesAmount applies the rule's amount bounds. When both bounds are set
// they are normalized first, so a reversed band still matches the intended
// range. A negative bound compares against the signed amount directly; a
// non-negative bound compares against the absolute value, so "at least $50"
// holds for a $50 expense regardless of sign.
func (m *Matcher) matchesAmount(rule model.Rule, amount float64) bool {
	low, high := rule.AmountMin, rule.AmountMax
	if low != nil && high != nil && *low > *high {
		low, high = high, low
	}

	if low != nil {
		if *low < 0 {
			if amount < *low {
				return false
			}
		} else if math.Abs(amount) < *low {
			return false
		}
	}
	if high != nil {
		if *high < 0 {
			if amount > *high {
				return false
			}
		} else if math.Abs(amount) > *high {
			return false
		}
	}
	return true
}

// matchesDayOfWeek interprets the transaction timestamp in the local
// calendar and maps it to the 1=Monday .. 7=Sunday convention. Imported
// timestamps keep the statement's own offset, so the conversion matters
// near midnight.
func matchesDayOfWeek(days []int, txn model.Transaction) bool {
	weekday := int(txn.Date.In(time.Local).Weekday())
	if weekday == 0 {
		weekday = 7 // time.Sunday is 0
	}
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}

// MatchConfidence scores a successful match. The base is the rule's own
// confidence; specificity bonuses and a capped track-record bonus are added
// on top, and the sum is clamped to [0,1]. Only meaningful when Matches
// returned true for the same rule and transaction.
func (m *Matcher) MatchConfidence(rule model.Rule, _ model.Transaction) float64 {
	confidence := rule.Confidence

	if rule.MerchantExact != "" {
		confidence += bonusMerchantExact
	}
	if rule.MerchantContains != "" {
		confidence += bonusMerchantContains
	}
	if rule.AmountMin != nil || rule.AmountMax != nil {
		confidence += bonusAmountBound
	}
	if len(rule.DaysOfWeek) > 0 {
		confidence += bonusDayOfWeek
	}
	if rule.Pattern != "" {
		confidence += bonusPattern
	}

	confidence += math.Min(bonusHistoryCap, float64(rule.MatchCount)*bonusHistoryStep)

	return math.Max(0, math.Min(1, confidence))
}

// Arbitrate selects the single best rule for a transaction: active matching
// rules sorted by priority descending, ties broken by confidence descending.
// The sort is stable, so among full ties the first-declared rule wins.
// Returns nil when no rule matches.
func (m *Matcher) Arbitrate(txn model.Transaction) (*model.Rule, float64) {
	var matched []model.Rule
	for _, rule := range m.rules {
		if !rule.IsActive {
			continue
		}
		if m.Matches(rule, txn) {
			matched = append(matched, rule)
		}
	}
	if len(matched) == 0 {
		return nil, 0
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Priority != matched[j].Priority {
			return matched[i].Priority > matched[j].Priority
		}
		return matched[i].Confidence > matched[j].Confidence
	})

	winner := matched[0]
	return &winner, m.MatchConfidence(winner, txn)
}
