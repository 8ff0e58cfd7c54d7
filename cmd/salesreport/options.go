package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sales-dashboard/internal/report"
)

func optionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the values available for each filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dashboard, err := a.load(cmd.Context())
			if err != nil {
				return err
			}

			opts := dashboard.Options()
			out := cmd.OutOrStdout()
			for _, dim := range []struct {
				label  string
				values []string
			}{
				{"City", opts.Cities},
				{"Customer type", opts.CustomerTypes},
				{"Gender", opts.Genders},
			} {
				fmt.Fprintf(out, "%s %s\n", report.LabelStyle.Render(dim.label+":"), strings.Join(dim.values, ", "))
			}
			return nil
		},
	}
}
