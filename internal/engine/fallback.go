package engine

import (
	"strings"

	"github.com/pennywise/pennywise/internal/model"
)

// keywordCategory maps a well-known description substring to a coarse
// category for the medium-confidence fallback tier.
type keywordCategory struct {
	keyword  string
	category string
}

// Checked in order; first hit wins.
var fallbackKeywords = []keywordCategory{
	{"uber", model.CategoryTransportation},
	{"lyft", model.CategoryTransportation},
	{"taxi", model.CategoryTransportation},
	{"walmart", model.CategoryShopping},
	{"target", model.CategoryShopping},
	{"costco", model.CategoryShopping},
	{"amazon", model.CategoryShopping},
	{"ebay", model.CategoryShopping},
	{"etsy", model.CategoryShopping},
	{"card payment", model.CategoryTransfers},
	{"credit card pmt", model.CategoryTransfers},
	{"autopay", model.CategoryTransfers},
}

// fallback applies the last-resort heuristics: positive amounts default to
// income at low confidence, well-known substrings map to coarse categories
// at medium confidence, and everything else lands in the uncategorized
// bucket at minimal confidence. Every tier sits below the auto-apply
// threshold, so fallback verdicts always route to manual review.
func (c *Categorizer) fallback(txn model.Transaction) model.Verdict {
	if txn.Amount > 0 {
		return model.Verdict{
			Category:   model.CategoryIncome,
			Confidence: c.cfg.IncomeFallbackConfidence,
			Source:     model.SourceFallback,
		}
	}

	text := strings.ToLower(txn.Name + " " + txn.MerchantName)
	for _, kc := range fallbackKeywords {
		if strings.Contains(text, kc.keyword) {
			return model.Verdict{
				Category:   kc.category,
				Confidence: c.cfg.KeywordFallbackConfidence,
				Source:     model.SourceFallback,
			}
		}
	}

	return model.Verdict{
		Category:   model.CategoryUncategorized,
		Confidence: c.cfg.MinimalConfidence,
		Source:     model.SourceUncategorized,
	}
}
