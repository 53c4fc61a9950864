package rules

import "github.com/pennywise/pennywise/internal/model"

func floatPtr(f float64) *float64 { return &f }

// SystemRules returns the immutable rule set owned by the binary. These are
// regenerated on every start and never persisted; users tune behavior with
// custom rules, which win ties at equal priority only on confidence.
func SystemRules() []model.Rule {
	return []model.Rule{
		{
			ID:         1,
			Name:       "Payroll deposit",
			Category:   model.CategoryIncome,
			Pattern:    `\b(payroll|direct\s*dep|dir\s*dep|salary|wages)\b`,
			AmountSign: model.SignPositive,
			Priority:   100,
			Confidence: 0.95,
			IsActive:   true,
			IsSystem:   true,
		},
		{
			ID:         2,
			Name:       "Interest and dividends",
			Category:   model.CategoryIncome,
			Pattern:    `\b(interest|int\s*earned|dividend)\b`,
			AmountSign: model.SignPositive,
			Priority:   95,
			Confidence: 0.90,
			IsActive:   true,
			IsSystem:   true,
		},
		{
			ID:         3,
			Name:       "Gas stations",
			Category:   model.CategoryTransportation,
			Pattern:    `\b(chevron|shell|exxon|mobil|texaco|arco|76|bp)\b`,
			AmountSign: model.SignNegative,
			Priority:   80,
			Confidence: 0.85,
			IsActive:   true,
			IsSystem:   true,
		},
		{
			ID:               4,
			Name:             "Ride share",
			Category:         model.CategoryTransportation,
			MerchantContains: "uber",
			AmountSign:       model.SignNegative,
			Priority:         80,
			Confidence:       0.85,
			IsActive:         true,
			IsSystem:         true,
		},
		{
			ID:               5,
			Name:             "Lyft",
			Category:         model.CategoryTransportation,
			MerchantContains: "lyft",
			AmountSign:       model.SignNegative,
			Priority:         80,
			Confidence:       0.85,
			IsActive:         true,
			IsSystem:         true,
		},
		{
			ID:         6,
			Name:       "Groceries",
			Category:   "Groceries",
			Pattern:    `\b(kroger|safeway|albertsons|trader\s*joe|whole\s*foods|aldi)\b`,
			AmountSign: model.SignNegative,
			Priority:   75,
			Confidence: 0.85,
			IsActive:   true,
			IsSystem:   true,
		},
		{
			ID:         7,
			Name:       "Streaming subscriptions",
			Category:   "Entertainment",
			Pattern:    `\b(netflix|spotify|hulu|disney\+|hbo\s*max|youtube\s*premium)\b`,
			AmountSign: model.SignNegative,
			AmountMax:  floatPtr(50),
			Priority:   75,
			Confidence: 0.90,
			IsActive:   true,
			IsSystem:   true,
		},
		{
			ID:         8,
			Name:       "Coffee shops",
			Category:   model.CategoryDining,
			Pattern:    `\b(starbucks|dunkin|peet'?s|philz)\b`,
			AmountSign: model.SignNegative,
			AmountMax:  floatPtr(25),
			Priority:   70,
			Confidence: 0.85,
			IsActive:   true,
			IsSystem:   true,
		},
		{
			ID:         9,
			Name:       "Fast food",
			Category:   model.CategoryDining,
			Pattern:    `\b(mcdonald|burger\s*king|wendy|taco\s*bell|chipotle|subway)\b`,
			AmountSign: model.SignNegative,
			Priority:   70,
			Confidence: 0.80,
			IsActive:   true,
			IsSystem:   true,
		},
		{
			ID:         10,
			Name:       "Utilities",
			Category:   "Utilities",
			Pattern:    `\b(electric|water\s*dist|gas\s*co|comcast|xfinity|at&t|verizon)\b`,
			AmountSign: model.SignNegative,
			Priority:   75,
			Confidence: 0.85,
			IsActive:   true,
			IsSystem:   true,
		},
		{
			ID:         11,
			Name:       "Rent or mortgage",
			Category:   "Housing",
			Pattern:    `\b(rent|mortgage|property\s*mgmt)\b`,
			AmountSign: model.SignNegative,
			AmountMin:  floatPtr(500),
			Priority:   85,
			Confidence: 0.90,
			IsActive:   true,
			IsSystem:   true,
		},
		{
			ID:         12,
			Name:       "Insurance premiums",
			Category:   "Insurance",
			Pattern:    `\b(geico|allstate|state\s*farm|progressive|insurance)\b`,
			AmountSign: model.SignNegative,
			Priority:   75,
			Confidence: 0.85,
			IsActive:   true,
			IsSystem:   true,
		},
		{
			ID:         13,
			Name:       "ATM withdrawals",
			Category:   model.CategoryTransfers,
			Pattern:    `\b(atm\s*withdrawal|cash\s*withdrawal)\b`,
			AmountSign: model.SignNegative,
			Priority:   90,
			Confidence: 0.95,
			IsActive:   true,
			IsSystem:   true,
		},
	}
}
