package merchant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennywise/pennywise/internal/model"
	"github.com/pennywise/pennywise/internal/service"
)

func TestLookup_Categorize(t *testing.T) {
	ctx := context.Background()
	lookup := NewLookup([]Entry{
		{Pattern: "Starbucks", Category: "Dining", Confidence: 0.92},
		{Pattern: "delta air", Category: "Travel", Confidence: 0.95},
		{Pattern: "amazon", Category: "Shopping", Confidence: 0.70},
	})

	t.Run("curated pattern matches case-insensitively", func(t *testing.T) {
		match, err := lookup.Categorize(ctx, model.Transaction{
			Name: "STARBUCKS STORE #1234",
		})
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "Dining", match.Category)
		assert.Equal(t, "starbucks", match.MatchedPattern)
		assert.Equal(t, service.MerchantSourceCurated, match.Source)
		assert.InDelta(t, 0.92, match.Confidence, 1e-9)
	})

	t.Run("merchant name wins over the raw description", func(t *testing.T) {
		match, err := lookup.Categorize(ctx, model.Transaction{
			Name:         "POS 9912 PURCHASE",
			MerchantName: "Delta Air Lines",
		})
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "Travel", match.Category)
	})

	t.Run("earlier entries win when several would match", func(t *testing.T) {
		match, err := lookup.Categorize(ctx, model.Transaction{
			Name: "STARBUCKS VIA AMAZON RELOAD",
		})
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "Dining", match.Category)
	})

	t.Run("generic guess carries the fallback source", func(t *testing.T) {
		match, err := lookup.Categorize(ctx, model.Transaction{
			Name: "CORNER FARMERS MARKET",
		})
		require.NoError(t, err)
		require.NotNil(t, match)
		assert.Equal(t, "Groceries", match.Category)
		assert.Equal(t, service.MerchantSourceFallback, match.Source)
		assert.InDelta(t, 0.40, match.Confidence, 1e-9)
	})

	t.Run("unknown merchant yields no answer", func(t *testing.T) {
		match, err := lookup.Categorize(ctx, model.Transaction{
			Name: "ZZZ WIDGETS",
		})
		require.NoError(t, err)
		assert.Nil(t, match)
	})

	t.Run("blank transaction yields no answer", func(t *testing.T) {
		match, err := lookup.Categorize(ctx, model.Transaction{})
		require.NoError(t, err)
		assert.Nil(t, match)
	})
}

func TestDefaultTable_AmbiguousMerchantsStayBelowBypass(t *testing.T) {
	ctx := context.Background()
	lookup := NewLookup(DefaultTable())

	// Marketplace merchants sell everything, so their curated confidence
	// must be low enough that the engine still consults rules.
	for _, name := range []string{"AMAZON.COM", "WALMART SUPERCENTER", "TARGET T-0421"} {
		match, err := lookup.Categorize(ctx, model.Transaction{Name: name})
		require.NoError(t, err)
		require.NotNil(t, match, name)
		assert.Less(t, match.Confidence, 0.85, name)
	}
}
