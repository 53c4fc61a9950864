package learning

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennywise/pennywise/internal/model"
)

func correction(description string) model.Correction {
	return model.Correction{
		Timestamp:   time.Now(),
		Description: description,
		OldCategory: "Uncategorized",
		NewCategory: "Dining",
		Amount:      -12.50,
	}
}

func TestLedger_Append(t *testing.T) {
	ctx := context.Background()
	mock := &mockStorage{}

	ledger := NewLedger(ctx, mock, 1000)

	require.NoError(t, ledger.Append(ctx, correction("STARBUCKS")))
	require.NoError(t, ledger.Append(ctx, correction("BLUE BOTTLE")))

	assert.Equal(t, 2, ledger.Len())
	assert.Equal(t, 2, mock.correctionSaves)
	assert.Len(t, mock.corrections, 2)
}

func TestLedger_TrimsOldestFirst(t *testing.T) {
	ctx := context.Background()
	ledger := NewLedger(ctx, &mockStorage{}, 5)

	for i := 0; i < 8; i++ {
		require.NoError(t, ledger.Append(ctx, correction(fmt.Sprintf("ENTRY %d", i))))
	}

	corrections := ledger.Corrections()
	require.Len(t, corrections, 5)
	assert.Equal(t, "ENTRY 3", corrections[0].Description)
	assert.Equal(t, "ENTRY 7", corrections[4].Description)
}

func TestLedger_TrimsOversizedLoad(t *testing.T) {
	ctx := context.Background()
	mock := &mockStorage{}
	for i := 0; i < 10; i++ {
		mock.corrections = append(mock.corrections, correction(fmt.Sprintf("OLD %d", i)))
	}

	ledger := NewLedger(ctx, mock, 4)

	corrections := ledger.Corrections()
	require.Len(t, corrections, 4)
	assert.Equal(t, "OLD 6", corrections[0].Description)
}

func TestLedger_LoadFailureStartsEmpty(t *testing.T) {
	ctx := context.Background()
	mock := &mockStorage{loadCorrectionsErr: errors.New("corrupt")}

	ledger := NewLedger(ctx, mock, 1000)

	assert.Zero(t, ledger.Len())
	require.NoError(t, ledger.Append(ctx, correction("FRESH START")))
	assert.Equal(t, 1, ledger.Len())
}

func TestLedger_AppendSurfacesSaveFailure(t *testing.T) {
	ctx := context.Background()
	mock := &mockStorage{saveErr: errors.New("disk full")}

	ledger := NewLedger(ctx, mock, 1000)
	assert.Error(t, ledger.Append(ctx, correction("DOOMED")))
}
