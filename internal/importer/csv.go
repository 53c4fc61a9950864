package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pennywise/pennywise/internal/model"
)

// csvDateLayouts are tried in order when parsing the date column.
var csvDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02T15:04:05Z07:00",
}

// CSVParser parses simple statement exports with a header row. Recognized
// columns: date, description, amount, merchant, account (merchant and
// account are optional). Column order does not matter.
type CSVParser struct{}

// NewCSVParser creates a new CSV parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// ParseFile parses a CSV statement and returns its transactions. Records
// without a derivable stable identity get a generated UUID.
func (p *CSVParser) ParseFile(_ context.Context, reader io.Reader) ([]model.Transaction, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "description", "amount"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("CSV is missing required column %q", required)
		}
	}

	var transactions []model.Transaction
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		txn, err := p.convert(record, cols)
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: %w", line, err)
		}
		transactions = append(transactions, txn)
	}

	return transactions, nil
}

func (p *CSVParser) convert(record []string, cols map[string]int) (model.Transaction, error) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	date, err := parseCSVDate(field("date"))
	if err != nil {
		return model.Transaction{}, err
	}

	amount, err := strconv.ParseFloat(strings.ReplaceAll(field("amount"), ",", ""), 64)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("bad amount %q: %w", field("amount"), err)
	}

	txn := model.Transaction{
		Date:         date,
		Name:         field("description"),
		MerchantName: field("merchant"),
		AccountID:    field("account"),
		Amount:       amount,
	}
	txn.Hash = txn.GenerateHash()
	txn.ID = uuid.NewString()
	return txn, nil
}

func parseCSVDate(value string) (time.Time, error) {
	for _, layout := range csvDateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}
