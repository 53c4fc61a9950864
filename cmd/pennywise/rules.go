package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pennywise/pennywise/internal/model"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage categorization rules",
	}

	cmd.AddCommand(rulesListCmd())
	cmd.AddCommand(rulesCreateCmd())
	cmd.AddCommand(rulesSetActiveCmd("enable", true))
	cmd.AddCommand(rulesSetActiveCmd("disable", false))

	return cmd
}

func rulesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List system and custom rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, cleanup, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			svc := buildServices(ctx, db)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRIORITY\tCONFIDENCE\tMATCHES\tACTIVE\tKIND")
			for _, rule := range svc.store.Rules() {
				kind := "custom"
				if rule.IsSystem {
					kind = "system"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.2f\t%d\t%v\t%s\n",
					rule.ID, rule.Name, rule.Category, rule.Priority,
					rule.Confidence, rule.MatchCount, rule.IsActive, kind)
			}
			return w.Flush()
		},
	}
	return cmd
}

func rulesCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a custom rule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			db, cleanup, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			svc := buildServices(ctx, db)

			rule := model.Rule{IsActive: true, AmountSign: model.SignAny}
			rule.Name, _ = cmd.Flags().GetString("name")
			rule.Category, _ = cmd.Flags().GetString("category")
			rule.MerchantContains, _ = cmd.Flags().GetString("merchant-contains")
			rule.MerchantExact, _ = cmd.Flags().GetString("merchant-exact")
			rule.DescriptionContains, _ = cmd.Flags().GetString("description-contains")
			rule.Pattern, _ = cmd.Flags().GetString("pattern")
			rule.Priority, _ = cmd.Flags().GetInt("priority")
			rule.Confidence, _ = cmd.Flags().GetFloat64("confidence")

			if sign, _ := cmd.Flags().GetString("sign"); sign != "" {
				rule.AmountSign = model.AmountSign(sign)
			}
			if cmd.Flags().Changed("min") {
				v, _ := cmd.Flags().GetFloat64("min")
				rule.AmountMin = &v
			}
			if cmd.Flags().Changed("max") {
				v, _ := cmd.Flags().GetFloat64("max")
				rule.AmountMax = &v
			}
			if days, _ := cmd.Flags().GetIntSlice("days"); len(days) > 0 {
				rule.DaysOfWeek = days
			}

			created, err := svc.store.Add(ctx, rule)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created rule %d: %s -> %s\n",
				created.ID, created.Name, created.Category)
			return nil
		},
	}

	cmd.Flags().String("name", "", "rule name (required)")
	cmd.Flags().String("category", "", "target category (required)")
	cmd.Flags().String("merchant-contains", "", "merchant substring condition")
	cmd.Flags().String("merchant-exact", "", "merchant exact-match condition")
	cmd.Flags().String("description-contains", "", "description substring condition")
	cmd.Flags().String("pattern", "", "regular expression condition")
	cmd.Flags().String("sign", "", "amount sign: positive, negative, any")
	cmd.Flags().Float64("min", 0, "minimum amount")
	cmd.Flags().Float64("max", 0, "maximum amount")
	cmd.Flags().IntSlice("days", nil, "days of week (1=Monday..7=Sunday)")
	cmd.Flags().Int("priority", 50, "rule priority")
	cmd.Flags().Float64("confidence", 0.7, "rule confidence")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func rulesSetActiveCmd(use string, active bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <rule-id>",
		Short: use + " a custom rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid rule ID %q", args[0])
			}

			db, cleanup, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			svc := buildServices(ctx, db)

			rule, err := svc.store.Update(ctx, id, func(r *model.Rule) {
				r.IsActive = active
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rule %d (%s) active=%v\n", rule.ID, rule.Name, rule.IsActive)
			return nil
		},
	}
}
