package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/pennywise/pennywise/internal/model"
)

// LoadCustomRules returns every persisted user-defined rule, ordered by ID.
func (s *SQLiteStorage) LoadCustomRules(ctx context.Context) ([]model.Rule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, category, priority, confidence, is_active,
			merchant_contains, merchant_exact, description_contains, pattern,
			amount_min, amount_max, amount_sign, days_of_week,
			match_count, last_matched_at, created_at, updated_at
		FROM custom_rules
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []model.Rule
	for rows.Next() {
		var rule model.Rule
		var amountMin, amountMax sql.NullFloat64
		var lastMatchedAt sql.NullTime
		var days string

		err := rows.Scan(
			&rule.ID, &rule.Name, &rule.Category, &rule.Priority,
			&rule.Confidence, &rule.IsActive,
			&rule.MerchantContains, &rule.MerchantExact,
			&rule.DescriptionContains, &rule.Pattern,
			&amountMin, &amountMax, &rule.AmountSign, &days,
			&rule.MatchCount, &lastMatchedAt,
			&rule.CreatedAt, &rule.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan custom rule: %w", err)
		}

		if amountMin.Valid {
			rule.AmountMin = &amountMin.Float64
		}
		if amountMax.Valid {
			rule.AmountMax = &amountMax.Float64
		}
		if lastMatchedAt.Valid {
			rule.LastMatchedAt = &lastMatchedAt.Time
		}
		rule.DaysOfWeek = parseDays(days)

		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate custom rules: %w", err)
	}
	return rules, nil
}

// SaveCustomRules replaces the persisted custom rule list atomically.
func (s *SQLiteStorage) SaveCustomRules(ctx context.Context, rules []model.Rule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if rules == nil {
		return fmt.Errorf("%w: rules", ErrNilParameter)
	}

	return s.replaceAll(ctx, "custom_rules", func(tx *sql.Tx) error {
		query := `
			INSERT INTO custom_rules (
				id, name, category, priority, confidence, is_active,
				merchant_contains, merchant_exact, description_contains, pattern,
				amount_min, amount_max, amount_sign, days_of_week,
				match_count, last_matched_at, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		for _, rule := range rules {
			_, err := tx.ExecContext(ctx, query,
				rule.ID, rule.Name, rule.Category, rule.Priority,
				rule.Confidence, rule.IsActive,
				rule.MerchantContains, rule.MerchantExact,
				rule.DescriptionContains, rule.Pattern,
				rule.AmountMin, rule.AmountMax, string(rule.AmountSign), formatDays(rule.DaysOfWeek),
				rule.MatchCount, rule.LastMatchedAt,
				rule.CreatedAt, rule.UpdatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert custom rule %d: %w", rule.ID, err)
			}
		}
		return nil
	})
}

// formatDays encodes a day-of-week set as a comma-separated string.
func formatDays(days []int) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

// parseDays decodes a comma-separated day-of-week set.
func parseDays(encoded string) []int {
	if encoded == "" {
		return nil
	}
	parts := strings.Split(encoded, ",")
	days := make([]int, 0, len(parts))
	for _, part := range parts {
		if d, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			days = append(days, d)
		}
	}
	return days
}
