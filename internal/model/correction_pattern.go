package model

import "time"

// CorrectionPattern is a mined token aggregated across corrections, tracked
// for potential promotion into a rule suggestion.
type CorrectionPattern struct {
	FirstSeen         time.Time
	LastUpdated       time.Time
	Token             string
	Category          string // The category this token most often resolves to
	Confidence        float64
	OccurrenceCount   int
	SuccessfulMatches int
}

// Accuracy returns the fraction of occurrences that confirmed the pattern's
// category. Zero when the pattern has never been observed.
func (p *CorrectionPattern) Accuracy() float64 {
	if p.OccurrenceCount == 0 {
		return 0
	}
	return float64(p.SuccessfulMatches) / float64(p.OccurrenceCount)
}

// ShouldSuggestRule reports whether the pattern currently qualifies for
// promotion into a rule suggestion. Eligibility is re-derived on every call
// rather than cached: occurrence count, confidence, and recency must all
// hold simultaneously.
func (p *CorrectionPattern) ShouldSuggestRule(now time.Time, minOccurrences int, minConfidence float64, maxAge time.Duration) bool {
	if p.OccurrenceCount < minOccurrences {
		return false
	}
	if p.Confidence < minConfidence {
		return false
	}
	return now.Sub(p.LastUpdated) <= maxAge
}
