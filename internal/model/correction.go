package model

import (
	"strings"
	"time"
	"unicode"
)

// Correction records a user-issued category override. Corrections are the
// engine's only learning signal: each one feeds the pattern aggregator.
type Correction struct {
	Timestamp        time.Time
	SourceConfidence *float64 // Confidence of the verdict being corrected, if known
	Description      string
	OldCategory      string
	NewCategory      string
	MerchantName     string
	Amount           float64
}

// processorTokens are payment-processor prefixes that frequently carry the
// real merchant identity in transaction descriptions.
var processorTokens = []string{
	"paypal",
	"venmo",
	"zelle",
	"cashapp",
	"square",
	"stripe",
	"toast",
	"clover",
}

// stopWords are common description words that carry no merchant signal.
var stopWords = map[string]struct{}{
	"with": {}, "from": {}, "payment": {}, "purchase": {}, "debit": {},
	"credit": {}, "card": {}, "online": {}, "transaction": {}, "auth": {},
	"transfer": {}, "withdrawal": {}, "deposit": {}, "recurring": {},
	"pending": {}, "point": {}, "sale": {},
}

// LearningPatterns extracts the reusable tokens mined from this correction:
// the merchant name when known, any recognized payment-processor token, and
// up to three alphabetic words of at least four characters from the
// description. All tokens are lowercased.
func (c *Correction) LearningPatterns() []string {
	seen := make(map[string]struct{})
	var patterns []string

	add := func(token string) {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			return
		}
		if _, ok := seen[token]; ok {
			return
		}
		seen[token] = struct{}{}
		patterns = append(patterns, token)
	}

	if c.MerchantName != "" {
		add(c.MerchantName)
	}

	desc := strings.ToLower(c.Description)
	for _, processor := range processorTokens {
		if strings.Contains(desc, processor) {
			add(processor)
		}
	}

	// Split on anything non-alphabetic so "NETFLIX.COM" yields "netflix".
	words := 0
	fields := strings.FieldsFunc(desc, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, word := range fields {
		if words >= 3 {
			break
		}
		if len(word) < 4 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		add(word)
		words++
	}

	return patterns
}
