package merchant

import "github.com/pennywise/pennywise/internal/model"

// DefaultTable returns the curated merchant table compiled into the binary.
// Confidences reflect how unambiguous each merchant string is; only entries
// at or above the engine's bypass threshold short-circuit rule arbitration.
func DefaultTable() []Entry {
	return []Entry{
		{Pattern: "starbucks", Category: model.CategoryDining, Confidence: 0.95},
		{Pattern: "mcdonald", Category: model.CategoryDining, Confidence: 0.95},
		{Pattern: "chipotle", Category: model.CategoryDining, Confidence: 0.95},
		{Pattern: "doordash", Category: model.CategoryDining, Confidence: 0.90},
		{Pattern: "grubhub", Category: model.CategoryDining, Confidence: 0.90},
		{Pattern: "uber eats", Category: model.CategoryDining, Confidence: 0.90},
		{Pattern: "netflix", Category: "Entertainment", Confidence: 0.95},
		{Pattern: "spotify", Category: "Entertainment", Confidence: 0.95},
		{Pattern: "amc theatres", Category: "Entertainment", Confidence: 0.90},
		{Pattern: "whole foods", Category: "Groceries", Confidence: 0.95},
		{Pattern: "trader joe", Category: "Groceries", Confidence: 0.95},
		{Pattern: "kroger", Category: "Groceries", Confidence: 0.95},
		{Pattern: "safeway", Category: "Groceries", Confidence: 0.95},
		{Pattern: "chevron", Category: model.CategoryTransportation, Confidence: 0.95},
		{Pattern: "shell oil", Category: model.CategoryTransportation, Confidence: 0.90},
		{Pattern: "delta air", Category: "Travel", Confidence: 0.95},
		{Pattern: "united airlines", Category: "Travel", Confidence: 0.95},
		{Pattern: "marriott", Category: "Travel", Confidence: 0.90},
		{Pattern: "airbnb", Category: "Travel", Confidence: 0.90},
		{Pattern: "home depot", Category: "Home", Confidence: 0.95},
		{Pattern: "lowe's", Category: "Home", Confidence: 0.95},
		{Pattern: "cvs", Category: "Health", Confidence: 0.90},
		{Pattern: "walgreens", Category: "Health", Confidence: 0.90},
		{Pattern: "rite aid", Category: "Health", Confidence: 0.90},

		// Ambiguous merchants stay below the bypass bar on purpose.
		{Pattern: "amazon", Category: model.CategoryShopping, Confidence: 0.70},
		{Pattern: "walmart", Category: model.CategoryShopping, Confidence: 0.75},
		{Pattern: "target", Category: model.CategoryShopping, Confidence: 0.75},
		{Pattern: "costco", Category: model.CategoryShopping, Confidence: 0.75},
	}
}
