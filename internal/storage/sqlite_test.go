package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennywise/pennywise/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	s, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func floatPtr(f float64) *float64 { return &f }

func TestSQLiteStorage_MigrateIsIdempotent(t *testing.T) {
	s := newTestStorage(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestSQLiteStorage_CustomRulesRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	created := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	matched := time.Date(2026, 5, 2, 18, 30, 0, 0, time.UTC)

	rules := []model.Rule{
		{
			ID:                  1000,
			Name:                "Corner coffee",
			Category:            "Dining",
			DescriptionContains: "corner coffee",
			AmountSign:          model.SignNegative,
			AmountMax:           floatPtr(20),
			DaysOfWeek:          []int{1, 2, 3, 4, 5},
			Priority:            10,
			Confidence:          0.80,
			MatchCount:          7,
			LastMatchedAt:       &matched,
			IsActive:            true,
			CreatedAt:           created,
			UpdatedAt:           created,
		},
		{
			ID:            1001,
			Name:          "Gym membership",
			Category:      "Health",
			MerchantExact: "iron works gym",
			AmountSign:    model.SignAny,
			Priority:      5,
			Confidence:    0.75,
			IsActive:      false,
			CreatedAt:     created,
			UpdatedAt:     created,
		},
	}

	require.NoError(t, s.SaveCustomRules(ctx, rules))

	loaded, err := s.LoadCustomRules(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	got := loaded[0]
	assert.Equal(t, 1000, got.ID)
	assert.Equal(t, "Corner coffee", got.Name)
	assert.Equal(t, "Dining", got.Category)
	assert.Equal(t, "corner coffee", got.DescriptionContains)
	assert.Equal(t, model.SignNegative, got.AmountSign)
	require.NotNil(t, got.AmountMax)
	assert.InDelta(t, 20, *got.AmountMax, 1e-9)
	assert.Nil(t, got.AmountMin)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got.DaysOfWeek)
	assert.Equal(t, 7, got.MatchCount)
	require.NotNil(t, got.LastMatchedAt)
	assert.True(t, matched.Equal(*got.LastMatchedAt))
	assert.True(t, got.IsActive)

	got = loaded[1]
	assert.Equal(t, "iron works gym", got.MerchantExact)
	assert.Nil(t, got.LastMatchedAt)
	assert.Empty(t, got.DaysOfWeek)
	assert.False(t, got.IsActive)
}

func TestSQLiteStorage_SaveCustomRulesStoresSignVerbatim(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	// Sign normalization belongs to rule validation; persistence must not
	// rewrite fields, so the zero value rounds-trips unchanged.
	rules := []model.Rule{
		{ID: 1000, Name: "Unsigned", Category: "Misc", MerchantContains: "kiosk"},
	}
	require.NoError(t, s.SaveCustomRules(ctx, rules))

	loaded, err := s.LoadCustomRules(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, model.AmountSign(""), loaded[0].AmountSign)
}

func TestSQLiteStorage_SaveCustomRulesReplacesWholeList(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	two := []model.Rule{
		{ID: 1000, Name: "A", Category: "X", MerchantContains: "a", AmountSign: model.SignAny},
		{ID: 1001, Name: "B", Category: "Y", MerchantContains: "b", AmountSign: model.SignAny},
	}
	require.NoError(t, s.SaveCustomRules(ctx, two))

	one := []model.Rule{
		{ID: 1002, Name: "C", Category: "Z", MerchantContains: "c", AmountSign: model.SignAny},
	}
	require.NoError(t, s.SaveCustomRules(ctx, one))

	loaded, err := s.LoadCustomRules(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "C", loaded[0].Name)
}

func TestSQLiteStorage_SaveNilCollectionsRejected(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	assert.ErrorIs(t, s.SaveCustomRules(ctx, nil), ErrNilParameter)
	assert.ErrorIs(t, s.SaveCorrections(ctx, nil), ErrNilParameter)
	assert.ErrorIs(t, s.SavePatterns(ctx, nil), ErrNilParameter)
}

func TestSQLiteStorage_CorrectionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	when := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	corrections := []model.Correction{
		{
			Timestamp:        when,
			Description:      "CHEVRON GAS STATION",
			OldCategory:      "Shopping",
			NewCategory:      "Transportation",
			Amount:           -45.00,
			MerchantName:     "Chevron",
			SourceConfidence: floatPtr(0.82),
		},
		{
			Timestamp:   when.Add(time.Hour),
			Description: "LOCAL BAKERY",
			OldCategory: "Uncategorized",
			NewCategory: "Dining",
			Amount:      -7.25,
		},
	}

	require.NoError(t, s.SaveCorrections(ctx, corrections))

	loaded, err := s.LoadCorrections(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	// Insertion order is ledger order.
	assert.Equal(t, "CHEVRON GAS STATION", loaded[0].Description)
	assert.Equal(t, "Transportation", loaded[0].NewCategory)
	require.NotNil(t, loaded[0].SourceConfidence)
	assert.InDelta(t, 0.82, *loaded[0].SourceConfidence, 1e-9)
	assert.True(t, when.Equal(loaded[0].Timestamp))

	assert.Equal(t, "LOCAL BAKERY", loaded[1].Description)
	assert.Nil(t, loaded[1].SourceConfidence)
}

func TestSQLiteStorage_PatternsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	seen := time.Date(2026, 4, 15, 8, 0, 0, 0, time.UTC)
	patterns := map[string]model.CorrectionPattern{
		"chevron": {
			Token:             "chevron",
			Category:          "Transportation",
			Confidence:        0.70,
			OccurrenceCount:   3,
			SuccessfulMatches: 3,
			FirstSeen:         seen,
			LastUpdated:       seen.Add(48 * time.Hour),
		},
		"bakery": {
			Token:             "bakery",
			Category:          "Dining",
			Confidence:        0.50,
			OccurrenceCount:   1,
			SuccessfulMatches: 1,
			FirstSeen:         seen,
			LastUpdated:       seen,
		},
	}

	require.NoError(t, s.SavePatterns(ctx, patterns))

	loaded, err := s.LoadPatterns(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	chevron, ok := loaded["chevron"]
	require.True(t, ok)
	assert.Equal(t, "Transportation", chevron.Category)
	assert.InDelta(t, 0.70, chevron.Confidence, 1e-9)
	assert.Equal(t, 3, chevron.OccurrenceCount)
	assert.Equal(t, 3, chevron.SuccessfulMatches)
	assert.True(t, seen.Equal(chevron.FirstSeen))
}

func TestSQLiteStorage_Transactions(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	day := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	batch := []model.Transaction{
		{ID: "t2", Hash: "h2", Date: day.AddDate(0, 0, 1), Name: "NETFLIX.COM", Amount: -15.99},
		{ID: "t1", Hash: "h1", Date: day, Name: "CHEVRON GAS STATION", Amount: -45.00},
	}
	require.NoError(t, s.SaveTransactions(ctx, batch))

	t.Run("re-import with the same hash is a no-op", func(t *testing.T) {
		dupe := []model.Transaction{
			{ID: "t3", Hash: "h1", Date: day, Name: "CHEVRON GAS STATION", Amount: -45.00},
		}
		require.NoError(t, s.SaveTransactions(ctx, dupe))

		pending, err := s.GetTransactionsToClassify(ctx)
		require.NoError(t, err)
		assert.Len(t, pending, 2)
	})

	t.Run("pending transactions come back oldest first", func(t *testing.T) {
		pending, err := s.GetTransactionsToClassify(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 2)
		assert.Equal(t, "t1", pending[0].ID)
		assert.Equal(t, "t2", pending[1].ID)
		assert.True(t, day.Equal(pending[0].Date))
	})

	t.Run("classified transactions leave the pending set", func(t *testing.T) {
		classified := []model.Transaction{
			{ID: "t1", Category: "Transportation", Confidence: floatPtr(0.95)},
		}
		require.NoError(t, s.SaveClassified(ctx, classified))

		pending, err := s.GetTransactionsToClassify(ctx)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "t2", pending[0].ID)
	})
}

//nolint:staticcheck // passing a nil context is the point of the test
func TestSQLiteStorage_NilContextRejected(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.LoadCustomRules(nil)
	assert.ErrorIs(t, err, ErrNilContext)

	assert.ErrorIs(t, s.SaveCorrections(nil, []model.Correction{}), ErrNilContext)
}
