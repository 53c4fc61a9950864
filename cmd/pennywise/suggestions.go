package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func suggestionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggestions",
		Short: "Review learned rule suggestions",
	}

	cmd.AddCommand(suggestionsListCmd())
	cmd.AddCommand(suggestionsPromoteCmd())
	cmd.AddCommand(suggestionsDismissCmd())

	return cmd
}

func suggestionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List promotion-eligible rule suggestions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, cleanup, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			svc := buildServices(ctx, db)

			suggestions := svc.suggester.Suggestions()
			if len(suggestions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No suggestions yet.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TOKEN\tCATEGORY\tCONFIDENCE")
			for _, s := range suggestions {
				fmt.Fprintf(w, "%s\t%s\t%.2f\n", s.DescriptionContains, s.Category, s.Confidence)
			}
			return w.Flush()
		},
	}
}

func suggestionsPromoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote <token>",
		Short: "Promote a suggestion into an active custom rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, cleanup, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			svc := buildServices(ctx, db)

			rule, err := svc.suggester.Promote(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Promoted %q as rule %d -> %s\n",
				args[0], rule.ID, rule.Category)
			return nil
		},
	}
}

func suggestionsDismissCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <token>",
		Short: "Dismiss a suggestion permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, cleanup, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			svc := buildServices(ctx, db)

			if err := svc.suggester.Dismiss(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dismissed %q\n", args[0])
			return nil
		},
	}
}
