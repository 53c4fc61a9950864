package learning

import (
	"context"

	"github.com/pennywise/pennywise/internal/model"
)

// mockStorage implements service.Storage in memory for learning tests.
type mockStorage struct {
	loadCorrectionsErr error
	loadPatternsErr    error
	saveErr            error

	corrections []model.Correction
	patterns    map[string]model.CorrectionPattern
	rules       []model.Rule

	correctionSaves int
	patternSaves    int
}

func (m *mockStorage) LoadCustomRules(_ context.Context) ([]model.Rule, error) {
	return m.rules, nil
}

func (m *mockStorage) SaveCustomRules(_ context.Context, rules []model.Rule) error {
	m.rules = append([]model.Rule(nil), rules...)
	return nil
}

func (m *mockStorage) LoadCorrections(_ context.Context) ([]model.Correction, error) {
	if m.loadCorrectionsErr != nil {
		return nil, m.loadCorrectionsErr
	}
	return m.corrections, nil
}

func (m *mockStorage) SaveCorrections(_ context.Context, corrections []model.Correction) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.corrections = append([]model.Correction(nil), corrections...)
	m.correctionSaves++
	return nil
}

func (m *mockStorage) LoadPatterns(_ context.Context) (map[string]model.CorrectionPattern, error) {
	if m.loadPatternsErr != nil {
		return nil, m.loadPatternsErr
	}
	return m.patterns, nil
}

func (m *mockStorage) SavePatterns(_ context.Context, patterns map[string]model.CorrectionPattern) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.patterns = make(map[string]model.CorrectionPattern, len(patterns))
	for token, p := range patterns {
		m.patterns[token] = p
	}
	m.patternSaves++
	return nil
}

func (m *mockStorage) SaveTransactions(_ context.Context, _ []model.Transaction) error { return nil }
func (m *mockStorage) GetTransactionsToClassify(_ context.Context) ([]model.Transaction, error) {
	return nil, nil
}
func (m *mockStorage) SaveClassified(_ context.Context, _ []model.Transaction) error { return nil }
func (m *mockStorage) Migrate(_ context.Context) error                               { return nil }
func (m *mockStorage) Close() error                                                  { return nil }
