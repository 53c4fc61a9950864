package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pennywise/pennywise/internal/model"
)

func TestCategorizer_Fallback(t *testing.T) {
	cfg := DefaultConfig()
	c := New(nil, nil, nil, cfg)

	tests := []struct {
		name           string
		txn            model.Transaction
		wantCategory   string
		wantConfidence float64
		wantSource     model.VerdictSource
	}{
		{
			name:           "positive amount defaults to income",
			txn:            model.Transaction{Name: "MYSTERY DEPOSIT", Amount: 125.00},
			wantCategory:   model.CategoryIncome,
			wantConfidence: cfg.IncomeFallbackConfidence,
			wantSource:     model.SourceFallback,
		},
		{
			name:           "known keyword maps to a coarse category",
			txn:            model.Transaction{Name: "YELLOW TAXI NYC", Amount: -23.50},
			wantCategory:   model.CategoryTransportation,
			wantConfidence: cfg.KeywordFallbackConfidence,
			wantSource:     model.SourceFallback,
		},
		{
			name:           "keyword is found in the merchant name too",
			txn:            model.Transaction{Name: "POS PURCHASE", MerchantName: "Walmart", Amount: -60.00},
			wantCategory:   model.CategoryShopping,
			wantConfidence: cfg.KeywordFallbackConfidence,
			wantSource:     model.SourceFallback,
		},
		{
			name:           "autopay routes to transfers",
			txn:            model.Transaction{Name: "AUTOPAY THANK YOU", Amount: -300.00},
			wantCategory:   model.CategoryTransfers,
			wantConfidence: cfg.KeywordFallbackConfidence,
			wantSource:     model.SourceFallback,
		},
		{
			name:           "anything else lands in the uncategorized bucket",
			txn:            model.Transaction{Name: "ZZZ WIDGETS", Amount: -3.00},
			wantCategory:   model.CategoryUncategorized,
			wantConfidence: cfg.MinimalConfidence,
			wantSource:     model.SourceUncategorized,
		},
		{
			name:           "zero amounts are not income",
			txn:            model.Transaction{Name: "BALANCE ADJUSTMENT", Amount: 0},
			wantCategory:   model.CategoryUncategorized,
			wantConfidence: cfg.MinimalConfidence,
			wantSource:     model.SourceUncategorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := c.fallback(tt.txn)
			assert.Equal(t, tt.wantCategory, verdict.Category)
			assert.InDelta(t, tt.wantConfidence, verdict.Confidence, 1e-9)
			assert.Equal(t, tt.wantSource, verdict.Source)
		})
	}
}

func TestDefaultConfig_FallbackTiersBelowAutoApply(t *testing.T) {
	cfg := DefaultConfig()
	assert.Less(t, cfg.IncomeFallbackConfidence, cfg.AutoApplyThreshold)
	assert.Less(t, cfg.KeywordFallbackConfidence, cfg.AutoApplyThreshold)
	assert.Less(t, cfg.MinimalConfidence, cfg.AutoApplyThreshold)
}
