package model

import "time"

// AmountSign restricts a rule to expenses, income, or both.
type AmountSign string

// Amount sign constants.
const (
	SignAny      AmountSign = "any"
	SignPositive AmountSign = "positive"
	SignNegative AmountSign = "negative"
)

// Rule is a named, prioritized predicate set mapping matching transactions
// to a category. All populated conditions must hold (logical AND). The
// feedback fields (Confidence, MatchCount, LastMatchedAt) are the only
// fields mutated after creation.
type Rule struct {
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastMatchedAt *time.Time
	AmountMin     *float64
	AmountMax     *float64

	Name                string
	Category            string // Target category identifier
	MerchantContains    string // Case-insensitive substring condition
	MerchantExact       string // Case-insensitive exact-match condition
	DescriptionContains string // Case-insensitive substring over the raw description
	Pattern             string // Regular expression, compiled case-insensitive
	AmountSign          AmountSign
	DaysOfWeek          []int // 1=Monday .. 7=Sunday

	ID         int
	Priority   int // Higher wins ties during arbitration
	Confidence float64
	MatchCount int
	IsActive   bool
	IsSystem   bool
}

// HasConditions reports whether at least one condition field is populated.
// A rule with no conditions is invalid: it must never match anything.
func (r *Rule) HasConditions() bool {
	return r.MerchantContains != "" ||
		r.MerchantExact != "" ||
		r.DescriptionContains != "" ||
		r.AmountMin != nil ||
		r.AmountMax != nil ||
		(r.AmountSign != "" && r.AmountSign != SignAny) ||
		len(r.DaysOfWeek) > 0 ||
		r.Pattern != ""
}
