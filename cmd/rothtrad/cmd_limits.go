package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/rothtrad/internal/output"
)

func newLimitsCmd(a *app) *cobra.Command {
	var year int
	cmd := &cobra.Command{
		Use:   "limits",
		Short: "Show 401(k) contribution limits for a plan year",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("year") {
				year = a.settings.PlanYear
			}
			limits, err := a.engine.LimitsFor(year)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "401(k) CONTRIBUTION LIMITS (%d)\n", limits.Year)
			fmt.Fprintf(w, "  Employee Limit:        %s\n", output.FormatCurrency(limits.BaseLimit))
			fmt.Fprintf(w, "  Catch-up (age %d+):    %s\n", limits.CatchUpAge, output.FormatCurrency(limits.CatchUpLimit))
			fmt.Fprintf(w, "  Total With Catch-up:   %s\n", output.FormatCurrency(limits.TotalWithCatchUp))
			return nil
		},
	}
	cmd.Flags().IntVarP(&year, "year", "y", 0, "Plan year (defaults to the configured plan_year)")
	return cmd
}
