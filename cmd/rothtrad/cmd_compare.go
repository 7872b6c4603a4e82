package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rpgo/rothtrad/internal/config"
	"github.com/rpgo/rothtrad/internal/domain"
	"github.com/rpgo/rothtrad/internal/output"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		input  string
		format string
		out    string
		split  float64
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare Traditional and Roth contributions for a scenario file",
		Example: `  rothtrad compare --input scenario.yaml
  rothtrad compare --input scenario.yaml --format detailed-csv --out projection.csv
  rothtrad compare --input scenario.yaml --split 40 --format summary`,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := config.NewInputParser().LoadFromFile(input)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("split") {
				scenario.TraditionalSplit = decimal.NewFromFloat(split)
			}
			return a.runCompare(cmd, *scenario, format, out)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Scenario file (YAML or JSON)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", fmt.Sprintf("Output format (%s, or all)", strings.Join(output.AvailableFormatterNames(), ", ")))
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the report to this file; \"auto\" picks a timestamped name")
	cmd.Flags().Float64Var(&split, "split", 0, "Override the scenario's Traditional split (whole percent)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func (a *app) runCompare(cmd *cobra.Command, scenario domain.ScenarioInput, format, out string) error {
	result, err := a.engine.Compare(cmd.Context(), scenario)
	if err != nil {
		return err
	}

	switch out {
	case "":
		return output.WriteReport(cmd.OutOrStdout(), result, format)
	case "auto":
		name, err := output.GenerateReport(result, format)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", name)
		return nil
	default:
		name, err := output.SaveReport(result, format, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", name)
		return nil
	}
}
