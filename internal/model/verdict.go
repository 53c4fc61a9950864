package model

// VerdictSource indicates which tier of the classification pipeline
// produced a verdict. Call sites switch over it exhaustively.
type VerdictSource string

// Verdict source constants.
const (
	// SourceMerchantDatabase means the curated merchant table matched.
	SourceMerchantDatabase VerdictSource = "MERCHANT_DATABASE"
	// SourceRule means a rule won arbitration.
	SourceRule VerdictSource = "RULE"
	// SourceFallback means a last-resort heuristic applied.
	SourceFallback VerdictSource = "FALLBACK"
	// SourceUncategorized means nothing matched at all.
	SourceUncategorized VerdictSource = "UNCATEGORIZED"
)

// Verdict is the classification result for one transaction.
type Verdict struct {
	RuleID         *int // Set only when Source == SourceRule
	Category       string
	MatchedPattern string // Set only when Source == SourceMerchantDatabase
	Source         VerdictSource
	Confidence     float64
}
