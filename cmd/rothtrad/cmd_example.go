package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/rothtrad/internal/config"
)

func newExampleCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print or save an example scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			scenario := parser.CreateExampleScenario()
			if out != "" {
				if err := parser.SaveToFile(scenario, out); err != nil {
					return err
				}
				a.logger.WithField("path", out).Info("example scenario written")
				return nil
			}
			data, err := parser.Marshal(scenario)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the example to this file instead of stdout")
	return cmd
}
