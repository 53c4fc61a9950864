package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pennywise/pennywise/internal/model"
)

func correctCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "correct",
		Short: "Record a category correction",
		Long: `Record that a transaction's category was wrong. The correction is
appended to the ledger, mined for learning patterns, and penalizes the
rule that produced the original verdict when one is named.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, cleanup, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			svc := buildServices(ctx, db)

			description, _ := cmd.Flags().GetString("description")
			merchant, _ := cmd.Flags().GetString("merchant")
			amount, _ := cmd.Flags().GetFloat64("amount")
			oldCategory, _ := cmd.Flags().GetString("from")
			newCategory, _ := cmd.Flags().GetString("to")

			txn := model.Transaction{
				Name:         description,
				MerchantName: merchant,
				Amount:       amount,
				Category:     oldCategory,
			}

			var ruleID *int
			if cmd.Flags().Changed("rule") {
				id, _ := cmd.Flags().GetInt("rule")
				ruleID = &id
			}

			if err := svc.feedback.Apply(ctx, txn, newCategory, ruleID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded correction: %q -> %s\n", description, newCategory)
			if suggestions := svc.suggester.Suggestions(); len(suggestions) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%d rule suggestion(s) available; run 'pennywise suggestions list'.\n", len(suggestions))
			}
			return nil
		},
	}

	cmd.Flags().String("description", "", "transaction description (required)")
	cmd.Flags().String("merchant", "", "merchant name, if known")
	cmd.Flags().Float64("amount", 0, "signed transaction amount")
	cmd.Flags().String("from", "", "category being corrected")
	cmd.Flags().String("to", "", "corrected category (required)")
	cmd.Flags().Int("rule", 0, "ID of the rule that produced the wrong verdict")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
