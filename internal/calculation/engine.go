package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/rothtrad/internal/config"
	"github.com/rpgo/rothtrad/internal/domain"
	"github.com/rpgo/rothtrad/pkg/money"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates the Traditional vs Roth comparison. It
// holds only read-only reference data and is safe for concurrent use.
type CalculationEngine struct {
	Tables *domain.TaxTableSet
	// DefaultPlanYear applies to scenarios without a plan year; the CLI and
	// server set it from Settings.PlanYear
	DefaultPlanYear int
	Optimizer       *Optimizer
	Logger          Logger
}

// NewCalculationEngine creates a new calculation engine over loaded tax tables
func NewCalculationEngine(tables *domain.TaxTableSet) *CalculationEngine {
	return &CalculationEngine{
		Tables:          tables,
		DefaultPlanYear: config.DefaultPlanYear,
		Optimizer:       NewOptimizer(0),
		Logger:          NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	ce.Optimizer.Logger = l
}

// SetWorkers bounds the optimizer's concurrent split evaluations
func (ce *CalculationEngine) SetWorkers(n int) {
	ce.Optimizer.Workers = NewOptimizer(n).Workers
}

// LimitsFor returns the contribution limits configured for a plan year
func (ce *CalculationEngine) LimitsFor(year int) (*domain.LimitsInfo, error) {
	ty, err := ce.Tables.ForYear(year)
	if err != nil {
		return nil, err
	}
	l := ty.ContributionLimits
	return &domain.LimitsInfo{
		Year:             year,
		BaseLimit:        l.Base,
		CatchUpLimit:     l.CatchUp,
		CatchUpAge:       l.CatchUpAge,
		TotalWithCatchUp: l.TotalWithCatchUp(),
	}, nil
}

// planYear resolves the plan year a scenario runs under
func (ce *CalculationEngine) planYear(s domain.ScenarioInput) int {
	if s.PlanYear != 0 {
		return s.PlanYear
	}
	return ce.DefaultPlanYear
}

// prepare validates the scenario, resolves every table lookup it needs and
// builds the shared projection plan. Nothing is computed for an invalid
// scenario.
func (ce *CalculationEngine) prepare(s domain.ScenarioInput) (*projectionPlan, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	ty, err := ce.Tables.ForYear(ce.planYear(s))
	if err != nil {
		return nil, err
	}
	if _, err := ty.BracketsFor(s.FilingStatus); err != nil {
		return nil, err
	}
	if _, err := ty.StateRate(s.CurrentState); err != nil {
		return nil, fmt.Errorf("current_state: %w", err)
	}
	if _, err := ty.StateRate(s.RetirementState); err != nil {
		return nil, fmt.Errorf("retirement_state: %w", err)
	}
	return newProjectionPlan(s, ty)
}

// ProjectSplit runs the year-by-year projection for one Traditional split
// (whole percent).
func (ce *CalculationEngine) ProjectSplit(ctx context.Context, s domain.ScenarioInput, split decimal.Decimal) (*domain.SplitProjection, error) {
	if split.IsNegative() || split.GreaterThan(decimal.NewFromInt(MaxSplit)) {
		return nil, fmt.Errorf("%w: split %s outside [0,100]", domain.ErrInvalidInput, split)
	}
	plan, err := ce.prepare(s)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	proj, err := plan.project(split)
	if err != nil {
		return nil, err
	}
	return &proj, nil
}

// OptimizeSplit searches every whole-percent split for the highest terminal
// after-tax wealth and explains the choice with the bracket heuristic.
func (ce *CalculationEngine) OptimizeSplit(ctx context.Context, s domain.ScenarioInput) (*domain.OptimizationResult, error) {
	plan, err := ce.prepare(s)
	if err != nil {
		return nil, err
	}
	result, err := ce.optimize(ctx, plan)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ce *CalculationEngine) optimize(ctx context.Context, plan *projectionPlan) (domain.OptimizationResult, error) {
	result, err := ce.Optimizer.FindOptimalSplit(ctx, func(_ context.Context, split int) (decimal.Decimal, error) {
		proj, err := plan.project(decimal.NewFromInt(int64(split)))
		if err != nil {
			return decimal.Zero, err
		}
		return proj.AfterTaxWealth, nil
	})
	if err != nil {
		return domain.OptimizationResult{}, err
	}

	bracketSplit, explanation, err := ce.bracketHeuristic(plan)
	if err != nil {
		return domain.OptimizationResult{}, err
	}
	result.BracketOptimalSplit = bracketSplit
	result.Explanation = explanation
	return result, nil
}

// bracketHeuristic applies the bracket rule to the first year's deferral
func (ce *CalculationEngine) bracketHeuristic(plan *projectionPlan) (int, string, error) {
	s := plan.scenario
	employee := plan.years[0].contribution.EmployeeContribution
	stateRate, err := plan.taxYear.StateRate(s.CurrentState)
	if err != nil {
		return 0, "", err
	}
	amount, explanation, err := plan.taxCalc.FederalTaxCalc.BracketOptimalTraditional(
		plan.gross, employee, stateRate, plan.retirementRate, s.FilingStatus)
	if err != nil {
		return 0, "", err
	}
	if !employee.IsPositive() {
		return 0, explanation, nil
	}
	split := amount.Div(employee).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return int(split), explanation, nil
}

// Compare runs the 100% Traditional, 100% Roth and chosen-split projections
// plus the optimizer and assembles the full comparison.
func (ce *CalculationEngine) Compare(ctx context.Context, s domain.ScenarioInput) (*domain.ComparisonResult, error) {
	plan, err := ce.prepare(s)
	if err != nil {
		return nil, err
	}
	ce.Logger.Debugf("comparing plan year %d, ages %d-%d, split %s%%", plan.taxYear.Year, s.CurrentAge, s.RetirementAge, s.TraditionalSplit)

	traditional, err := plan.project(decimal.NewFromInt(100))
	if err != nil {
		return nil, err
	}
	roth, err := plan.project(decimal.Zero)
	if err != nil {
		return nil, err
	}
	current, err := plan.project(s.TraditionalSplit)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opt, err := ce.optimize(ctx, plan)
	if err != nil {
		return nil, err
	}

	taxComparison, err := ce.taxComparison(plan)
	if err != nil {
		return nil, err
	}

	crossover, err := FindCrossover(traditional.Snapshots, roth.Snapshots)
	if err != nil {
		return nil, err
	}

	winner, margin := domain.WinnerTraditional, traditional.AfterTaxWealth.Sub(roth.AfterTaxWealth)
	if roth.AfterTaxWealth.GreaterThan(traditional.AfterTaxWealth) {
		winner, margin = domain.WinnerRoth, roth.AfterTaxWealth.Sub(traditional.AfterTaxWealth)
	}

	result := &domain.ComparisonResult{
		Scenario:      s,
		PlanYear:      plan.taxYear.Year,
		Contribution:  plan.years[0].contribution,
		TaxComparison: taxComparison,
		Summary: domain.ProjectionSummary{
			Winner:                   winner,
			Margin:                   margin,
			TraditionalAfterTax:      traditional.AfterTaxWealth,
			RothAfterTax:             roth.AfterTaxWealth,
			OptimalSplit:             opt.OptimalSplit,
			OptimalAfterTax:          opt.OptimalAfterTax,
			CurrentSplit:             s.TraditionalSplit,
			CurrentSplitAfterTax:     current.AfterTaxWealth,
			TraditionalFinalBalance:  current.TraditionalBalance,
			RothFinalBalance:         current.RothBalance,
			TaxableFinalBalance:      current.TaxableBalance,
			MegaBackdoorFinalBalance: current.MegaBackdoorBalance,
			ActualMegaBackdoor:       current.ActualMegaBackdoor,
			TotalContributions:       current.TotalContributions,
			TotalEmployerMatch:       current.TotalEmployerMatch,
			TotalGrowthTraditional:   traditional.TotalGrowth.Total(),
			TotalGrowthRoth:          roth.TotalGrowth.Total(),
			BracketOptimalSplit:      opt.BracketOptimalSplit,
			BracketExplanation:       opt.Explanation,
		},
		TraditionalProjections:  traditional.Snapshots,
		RothProjections:         roth.Snapshots,
		CurrentSplitProjections: current.Snapshots,
		SplitCurve:              opt.Curve,
		Crossover:               crossover,
		Assumptions:             GenerateAssumptions(s, plan.taxYear, plan.retirementRate),
	}

	if c := result.Contribution; c.IsOverLimit {
		ce.Logger.Warnf("requested contribution exceeds the %d limit; deferring %s", c.LimitYear, money.Format(c.MaxEmployeeAllowed))
	}
	if s.MegaBackdoorContribution.GreaterThan(current.ActualMegaBackdoor) {
		ce.Logger.Warnf("mega backdoor capped at take-home pay: %s of %s", money.Format(current.ActualMegaBackdoor), money.Format(s.MegaBackdoorContribution))
	}
	ce.Logger.Infof("%s wins by %s; optimal split %d%% (%s)", winner, money.Format(margin), opt.OptimalSplit, money.Format(opt.OptimalAfterTax))
	return result, nil
}

// taxComparison contrasts this year's taxes with the full deferral taken as
// Traditional against taking it all as Roth.
func (ce *CalculationEngine) taxComparison(plan *projectionPlan) (domain.TaxComparison, error) {
	s := plan.scenario
	first := plan.years[0]
	traditional, err := plan.taxCalc.TotalTax(plan.gross, first.contribution.EmployeeContribution, s.FilingStatus, s.CurrentState)
	if err != nil {
		return domain.TaxComparison{}, err
	}
	breakEven := decimal.Zero
	if first.contribution.EmployeeContribution.IsPositive() {
		breakEven = traditional.MarginalRate
	}
	return domain.TaxComparison{
		CurrentTraditional:    traditional,
		CurrentRoth:           first.rothTax,
		CurrentYearTaxSavings: first.rothTax.TotalTax.Sub(traditional.TotalTax),
		Retirement:            plan.retirementTax,
		RetirementTaxRate:     plan.retirementRate,
		BreakEvenRate:         breakEven,
	}, nil
}
