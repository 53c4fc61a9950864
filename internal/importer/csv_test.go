package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVParser_ParseFile(t *testing.T) {
	ctx := context.Background()
	p := NewCSVParser()

	t.Run("parses a statement with optional columns", func(t *testing.T) {
		input := strings.Join([]string{
			"Date,Description,Amount,Merchant,Account",
			"2026-07-01,CHEVRON GAS STATION,-45.00,Chevron,checking-1",
			`07/02/2026,"ACME CORP PAYROLL","2,800.00",,checking-1`,
		}, "\n")

		txns, err := p.ParseFile(ctx, strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, txns, 2)

		first := txns[0]
		assert.Equal(t, "CHEVRON GAS STATION", first.Name)
		assert.Equal(t, "Chevron", first.MerchantName)
		assert.Equal(t, "checking-1", first.AccountID)
		assert.InDelta(t, -45.00, first.Amount, 1e-9)
		assert.Equal(t, 2026, first.Date.Year())
		assert.NotEmpty(t, first.ID)
		assert.NotEmpty(t, first.Hash)

		second := txns[1]
		assert.InDelta(t, 2800.00, second.Amount, 1e-9)
		assert.Empty(t, second.MerchantName)
	})

	t.Run("column order does not matter", func(t *testing.T) {
		input := strings.Join([]string{
			"amount,description,date",
			"-7.25,LOCAL BAKERY,2026-07-03",
		}, "\n")

		txns, err := p.ParseFile(ctx, strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, txns, 1)
		assert.Equal(t, "LOCAL BAKERY", txns[0].Name)
		assert.InDelta(t, -7.25, txns[0].Amount, 1e-9)
	})

	t.Run("missing required column fails", func(t *testing.T) {
		input := "date,description\n2026-07-01,NO AMOUNT HERE\n"

		_, err := p.ParseFile(ctx, strings.NewReader(input))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount")
	})

	t.Run("bad amount fails with the line number", func(t *testing.T) {
		input := strings.Join([]string{
			"date,description,amount",
			"2026-07-01,GOOD ROW,-1.00",
			"2026-07-02,BAD ROW,not-a-number",
		}, "\n")

		_, err := p.ParseFile(ctx, strings.NewReader(input))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 3")
	})

	t.Run("unrecognized date fails", func(t *testing.T) {
		input := "date,description,amount\nJuly first,MYSTERY,-1.00\n"

		_, err := p.ParseFile(ctx, strings.NewReader(input))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unrecognized date")
	})

	t.Run("identical rows share a hash across parses", func(t *testing.T) {
		input := "date,description,amount\n2026-07-01,CHEVRON GAS STATION,-45.00\n"

		a, err := p.ParseFile(ctx, strings.NewReader(input))
		require.NoError(t, err)
		b, err := p.ParseFile(ctx, strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, a[0].Hash, b[0].Hash)
		assert.NotEqual(t, a[0].ID, b[0].ID)
	})
}
