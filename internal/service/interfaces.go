// Package service defines the interfaces for the engine's collaborators.
package service

import (
	"context"

	"github.com/pennywise/pennywise/internal/model"
)

// Storage defines the persistence contract the engine requires. The custom
// rule list, correction ledger, and pattern map are each saved as a whole
// collection; every save must be atomic (no partial-write corruption) and
// every load must round-trip each field losslessly.
type Storage interface {
	// Rule operations
	LoadCustomRules(ctx context.Context) ([]model.Rule, error)
	SaveCustomRules(ctx context.Context, rules []model.Rule) error

	// Correction ledger operations
	LoadCorrections(ctx context.Context) ([]model.Correction, error)
	SaveCorrections(ctx context.Context, corrections []model.Correction) error

	// Learning pattern operations
	LoadPatterns(ctx context.Context) (map[string]model.CorrectionPattern, error)
	SavePatterns(ctx context.Context, patterns map[string]model.CorrectionPattern) error

	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransactionsToClassify(ctx context.Context) ([]model.Transaction, error)
	SaveClassified(ctx context.Context, transactions []model.Transaction) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// MerchantSource indicates where a merchant lookup answer came from. Only
// curated answers qualify for the high-confidence arbitration bypass.
type MerchantSource string

const (
	// MerchantSourceCurated means the answer came from the curated database.
	MerchantSourceCurated MerchantSource = "CURATED"
	// MerchantSourceFallback means the collaborator guessed heuristically.
	MerchantSourceFallback MerchantSource = "FALLBACK"
)

// MerchantMatch is a merchant lookup answer.
type MerchantMatch struct {
	Category       string
	MatchedPattern string
	Source         MerchantSource
	Confidence     float64
}

// MerchantLookup is the curated merchant table collaborator. Implementations
// must answer from memory; no blocking calls inside the classification path.
type MerchantLookup interface {
	// Categorize returns the best merchant-table answer for a transaction,
	// or nil when the table has nothing to say.
	Categorize(ctx context.Context, txn model.Transaction) (*MerchantMatch, error)
}

// BatchSummary is the result of one batch categorization run.
type BatchSummary struct {
	Categorized   []model.Transaction
	Uncategorized []model.Transaction

	Total               int
	CategorizedCount    int
	HighConfidenceCount int
	UncategorizedCount  int
}
