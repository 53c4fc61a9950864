package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pennywise/pennywise/internal/model"
)

// SaveTransactions inserts imported transactions, skipping records whose
// hash is already present so re-imports are idempotent.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(transactions) == 0 {
		return nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT OR IGNORE INTO transactions (
			id, hash, date, name, merchant_name,
			account_id, account_type, amount, category, confidence
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, txn := range transactions {
		hash := txn.Hash
		if hash == "" {
			hash = txn.GenerateHash()
		}
		_, err := tx.ExecContext(ctx, query,
			txn.ID, hash, txn.Date, txn.Name, txn.MerchantName,
			txn.AccountID, txn.AccountType, txn.Amount, txn.Category, txn.Confidence,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
		}
	}
	return tx.Commit()
}

// GetTransactionsToClassify returns stored transactions with no category
// yet, oldest first.
func (s *SQLiteStorage) GetTransactionsToClassify(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, hash, date, name, merchant_name,
			account_id, account_type, amount, category, confidence
		FROM transactions
		WHERE category = ''
		ORDER BY date
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var confidence sql.NullFloat64
		err := rows.Scan(
			&txn.ID, &txn.Hash, &txn.Date, &txn.Name, &txn.MerchantName,
			&txn.AccountID, &txn.AccountType, &txn.Amount, &txn.Category, &confidence,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if confidence.Valid {
			txn.Confidence = &confidence.Float64
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return transactions, nil
}

// SaveClassified commits one classified chunk: category and confidence are
// the only columns updated, and the chunk commits as a single transaction.
func (s *SQLiteStorage) SaveClassified(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(transactions) == 0 {
		return nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `UPDATE transactions SET category = ?, confidence = ? WHERE id = ?`
	for _, txn := range transactions {
		if _, err := tx.ExecContext(ctx, query, txn.Category, txn.Confidence, txn.ID); err != nil {
			return fmt.Errorf("failed to update transaction %s: %w", txn.ID, err)
		}
	}
	return tx.Commit()
}
