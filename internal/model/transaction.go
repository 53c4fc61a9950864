// Package model defines the core data structures for the pennywise engine.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction represents a single financial transaction from any source.
// Amount is signed: negative values are expenses, positive values income.
type Transaction struct {
	Date         time.Time
	Confidence   *float64 // Classification confidence, nil until classified
	ID           string
	Name         string // Raw transaction description
	MerchantName string // Cleaned merchant name, may be empty
	AccountID    string
	AccountType  string // Originating account classification (e.g. checking, credit)
	Category     string // Mutable category label, empty until classified
	Hash         string
	Amount       float64
}

// GenerateHash creates a stable hash for duplicate detection and identity.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Name,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// SearchText returns the text the matching engine inspects: the cleaned
// merchant name when present, otherwise the raw description.
func (t *Transaction) SearchText() string {
	if t.MerchantName != "" {
		return t.MerchantName
	}
	return t.Name
}
