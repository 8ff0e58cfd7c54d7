package main

import (
	"strings"

	"github.com/spf13/cobra"

	"sales-dashboard/internal/models"
	"sales-dashboard/internal/report"
)

func summaryCmd(a *app) *cobra.Command {
	var sel models.Selection

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print KPIs and sales aggregates",
		Long: `Print total sales, average rating, average sale per transaction and the
sales totals per product line and per hour for the selected cities,
customer types and genders. A flag that is not given selects every value;
a flag given with an empty value selects none. Repeat a flag to select
several values; each value is taken whole.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dashboard, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			sel.Cities = flagValues(flags.Changed("city"), sel.Cities)
			sel.Genders = flagValues(flags.Changed("gender"), sel.Genders)
			sel.CustomerTypes = flagValues(flags.Changed("customer-type"), sel.CustomerTypes)

			return report.Write(cmd.OutOrStdout(), sel, dashboard.Snapshot(sel))
		},
	}

	cmd.Flags().StringArrayVar(&sel.Cities, "city", nil, "city to include (repeatable)")
	cmd.Flags().StringArrayVar(&sel.Genders, "gender", nil, "gender to include (repeatable)")
	cmd.Flags().StringArrayVar(&sel.CustomerTypes, "customer-type", nil, "customer type to include (repeatable)")

	return cmd
}

// flagValues maps an unset flag to nil (every value) and drops blank values
// from a set one, so an empty flag selects nothing.
func flagValues(changed bool, values []string) []string {
	if !changed {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
