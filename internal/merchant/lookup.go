// Package merchant implements the curated merchant lookup collaborator:
// a higher-trust classification source consulted before generic rules.
package merchant

import (
	"context"
	"strings"

	"github.com/pennywise/pennywise/internal/model"
	"github.com/pennywise/pennywise/internal/service"
)

// Entry is one curated merchant table row. Pattern is matched as a
// case-insensitive substring of the merchant name or description.
type Entry struct {
	Pattern    string
	Category   string
	Confidence float64
}

// Lookup answers merchant categorization queries from an in-memory table.
// The table is fully loaded before any batch run; Categorize never blocks.
type Lookup struct {
	entries []Entry
}

var _ service.MerchantLookup = (*Lookup)(nil)

// NewLookup creates a lookup over the given curated entries. Entries are
// matched in declaration order; put more specific patterns first.
func NewLookup(entries []Entry) *Lookup {
	normalized := make([]Entry, len(entries))
	for i, e := range entries {
		e.Pattern = strings.ToLower(e.Pattern)
		normalized[i] = e
	}
	return &Lookup{entries: normalized}
}

// Categorize returns the best merchant-table answer for a transaction.
// Curated hits carry MerchantSourceCurated; when the table has no row, a
// couple of generic guesses are offered as MerchantSourceFallback, which
// the engine does not trust for its high-confidence bypass. Returns nil
// when there is nothing to say.
func (l *Lookup) Categorize(_ context.Context, txn model.Transaction) (*service.MerchantMatch, error) {
	text := strings.ToLower(txn.SearchText())
	if text == "" {
		return nil, nil
	}

	for _, e := range l.entries {
		if strings.Contains(text, e.Pattern) {
			return &service.MerchantMatch{
				Category:       e.Category,
				MatchedPattern: e.Pattern,
				Source:         service.MerchantSourceCurated,
				Confidence:     e.Confidence,
			}, nil
		}
	}

	// Generic guesses: low trust, never eligible for the bypass.
	switch {
	case strings.Contains(text, "market"):
		return &service.MerchantMatch{
			Category:       "Groceries",
			MatchedPattern: "market",
			Source:         service.MerchantSourceFallback,
			Confidence:     0.40,
		}, nil
	case strings.Contains(text, "pharmacy"):
		return &service.MerchantMatch{
			Category:       "Health",
			MatchedPattern: "pharmacy",
			Source:         service.MerchantSourceFallback,
			Confidence:     0.40,
		}, nil
	}

	return nil, nil
}
