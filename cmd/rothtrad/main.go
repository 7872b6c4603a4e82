package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rpgo/rothtrad/internal/calculation"
	"github.com/rpgo/rothtrad/internal/config"
	"github.com/rpgo/rothtrad/internal/logging"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// app carries the state shared by every subcommand once settings are loaded
type app struct {
	configFile string
	settings   *config.Settings
	logger     *logrus.Logger
	engine     *calculation.CalculationEngine
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "rothtrad",
		Short:         "Compare Traditional and Roth 401(k) contribution splits",
		Long:          `Projects Traditional, Roth and mixed 401(k) deferrals to retirement and finds the split with the highest after-tax wealth.`,
		Version:       fmt.Sprintf("%s (%s)", Version, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "Path to settings file (optional)")

	root.AddCommand(
		newCompareCmd(a),
		newLimitsCmd(a),
		newExampleCmd(a),
		newServeCmd(a),
	)
	return root
}

func (a *app) setup() error {
	s, err := config.LoadSettings(a.configFile)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	a.settings = s
	a.logger = logging.New(s.LogLevel, s.LogFormat)

	tables, err := config.LoadTables(s.TaxTables)
	if err != nil {
		return err
	}
	a.engine = calculation.NewCalculationEngine(tables)
	a.engine.DefaultPlanYear = s.PlanYear
	a.engine.SetWorkers(s.Workers)
	a.engine.SetLogger(a.logger)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
