package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pennywise/pennywise/internal/model"
)

// LoadCorrections returns the persisted correction ledger, oldest first.
func (s *SQLiteStorage) LoadCorrections(ctx context.Context) ([]model.Correction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT timestamp, description, old_category, new_category,
			amount, merchant_name, source_confidence
		FROM corrections
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query corrections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var corrections []model.Correction
	for rows.Next() {
		var c model.Correction
		var sourceConfidence sql.NullFloat64

		err := rows.Scan(
			&c.Timestamp, &c.Description, &c.OldCategory, &c.NewCategory,
			&c.Amount, &c.MerchantName, &sourceConfidence,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}
		if sourceConfidence.Valid {
			c.SourceConfidence = &sourceConfidence.Float64
		}
		corrections = append(corrections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate corrections: %w", err)
	}
	return corrections, nil
}

// SaveCorrections replaces the persisted correction ledger atomically.
func (s *SQLiteStorage) SaveCorrections(ctx context.Context, corrections []model.Correction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if corrections == nil {
		return fmt.Errorf("%w: corrections", ErrNilParameter)
	}

	return s.replaceAll(ctx, "corrections", func(tx *sql.Tx) error {
		query := `
			INSERT INTO corrections (
				timestamp, description, old_category, new_category,
				amount, merchant_name, source_confidence
			) VALUES (?, ?, ?, ?, ?, ?, ?)
		`
		for i, c := range corrections {
			_, err := tx.ExecContext(ctx, query,
				c.Timestamp, c.Description, c.OldCategory, c.NewCategory,
				c.Amount, c.MerchantName, c.SourceConfidence,
			)
			if err != nil {
				return fmt.Errorf("failed to insert correction %d: %w", i, err)
			}
		}
		return nil
	})
}
