// Package learning implements the feedback loop: the bounded correction
// ledger, the pattern aggregator that mines it, and the rule suggestion
// generator that promotes qualifying patterns.
package learning

import "time"

// Config holds the learning loop's tunable constants. The numeric steps
// are heuristics; treat them as configuration, not precise values.
type Config struct {
	MaxLedgerEntries int // Correction ledger cap, oldest discarded first

	MinOccurrences int           // Pattern promotion: minimum observations
	MinConfidence  float64       // Pattern promotion: minimum confidence
	MaxPatternAge  time.Duration // Pattern promotion: maximum staleness

	InitialConfidence    float64 // Confidence of a newly mined pattern
	ConfidenceStep       float64 // Raise when a correction confirms the pattern
	ConfidencePenalty    float64 // Drop when a correction contradicts it
	MaxPatternConfidence float64
	MinPatternConfidence float64

	SuggestionPriority int // Priority assigned to suggested rules (low)
}

// DefaultConfig returns the default learning tuning.
func DefaultConfig() Config {
	return Config{
		MaxLedgerEntries:     1000,
		MinOccurrences:       2,
		MinConfidence:        0.65,
		MaxPatternAge:        90 * 24 * time.Hour,
		InitialConfidence:    0.50,
		ConfidenceStep:       0.10,
		ConfidencePenalty:    0.15,
		MaxPatternConfidence: 0.95,
		MinPatternConfidence: 0.05,
		SuggestionPriority:   1,
	}
}
