package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pennywise/pennywise/internal/model"
)

// LoadPatterns returns the persisted learning patterns keyed by token.
func (s *SQLiteStorage) LoadPatterns(ctx context.Context) (map[string]model.CorrectionPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT token, category, confidence, occurrence_count,
			successful_matches, first_seen, last_updated
		FROM learning_patterns
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query learning patterns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	patterns := make(map[string]model.CorrectionPattern)
	for rows.Next() {
		var p model.CorrectionPattern
		err := rows.Scan(
			&p.Token, &p.Category, &p.Confidence, &p.OccurrenceCount,
			&p.SuccessfulMatches, &p.FirstSeen, &p.LastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan learning pattern: %w", err)
		}
		patterns[p.Token] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate learning patterns: %w", err)
	}
	return patterns, nil
}

// SavePatterns replaces the persisted learning pattern set atomically.
func (s *SQLiteStorage) SavePatterns(ctx context.Context, patterns map[string]model.CorrectionPattern) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if patterns == nil {
		return fmt.Errorf("%w: patterns", ErrNilParameter)
	}

	return s.replaceAll(ctx, "learning_patterns", func(tx *sql.Tx) error {
		query := `
			INSERT INTO learning_patterns (
				token, category, confidence, occurrence_count,
				successful_matches, first_seen, last_updated
			) VALUES (?, ?, ?, ?, ?, ?, ?)
		`
		for token, p := range patterns {
			_, err := tx.ExecContext(ctx, query,
				token, p.Category, p.Confidence, p.OccurrenceCount,
				p.SuccessfulMatches, p.FirstSeen, p.LastUpdated,
			)
			if err != nil {
				return fmt.Errorf("failed to insert learning pattern %q: %w", token, err)
			}
		}
		return nil
	})
}
