package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Categorize imported transactions",
		Long: `Run the classification pipeline over every stored transaction that has
no category yet: curated merchant lookup, then rule arbitration, then
fallback heuristics. Verdicts below the auto-apply threshold are routed
to manual review.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, cleanup, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			svc := buildServices(ctx, db)

			txns, err := db.GetTransactionsToClassify(ctx)
			if err != nil {
				return fmt.Errorf("failed to load transactions: %w", err)
			}
			if len(txns) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No transactions to classify.")
				return nil
			}

			summary, err := svc.categorize.ClassifyBatch(ctx, txns)
			if summary != nil {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintf(w, "Total\t%d\n", summary.Total)
				fmt.Fprintf(w, "Categorized\t%d\n", summary.CategorizedCount)
				fmt.Fprintf(w, "High confidence\t%d\n", summary.HighConfidenceCount)
				fmt.Fprintf(w, "Needs review\t%d\n", summary.UncategorizedCount)
				_ = w.Flush()
			}
			return err
		},
	}
	return cmd
}
