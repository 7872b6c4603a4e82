package calculation

import (
	"context"
	"testing"

	"github.com/rpgo/rothtrad/internal/config"
	"github.com/rpgo/rothtrad/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare_TraditionalWins(t *testing.T) {
	engine := newTestEngine(t)
	result, err := engine.Compare(context.Background(), oneYearScenario())
	require.NoError(t, err)

	assert.Equal(t, 2024, result.PlanYear)
	assertDecimal(t, dec(10000), result.Contribution.EmployeeContribution)

	summary := result.Summary
	assert.Equal(t, domain.WinnerTraditional, summary.Winner)
	assertDecimal(t, dec(989), summary.Margin)
	assertDecimal(t, dec(10989), summary.TraditionalAfterTax)
	assertDecimal(t, dec(10000), summary.RothAfterTax)
	assert.Equal(t, 100, summary.OptimalSplit)
	assertDecimal(t, dec(10989), summary.OptimalAfterTax)
	assertDecimal(t, dec(10989), summary.CurrentSplitAfterTax)
	assert.Equal(t, 100, summary.BracketOptimalSplit)
	assert.Equal(t, "Use 100% Traditional: All your contribution reduces income taxed at 22% (> 12.1% retirement rate)", summary.BracketExplanation)

	require.Len(t, result.SplitCurve, 101)
	assertDecimal(t, dec(10494.50), result.SplitCurve[50].AfterTaxWealth)

	tc := result.TaxComparison
	assertDecimal(t, dec(2200), tc.CurrentYearTaxSavings)
	assertDecimal(t, dec(22503), tc.CurrentTraditional.TotalTax)
	assertDecimal(t, dec(24703), tc.CurrentRoth.TotalTax)
	assertDecimal(t, dec(0.1211), tc.RetirementTaxRate)
	assertDecimal(t, dec(0.22), tc.BreakEvenRate)

	require.Len(t, result.TraditionalProjections, 1)
	require.Len(t, result.RothProjections, 1)
	require.Len(t, result.CurrentSplitProjections, 1)
	assert.NotEmpty(t, result.Assumptions)
	assert.Nil(t, result.Crossover, "a single year cannot change the lead")
}

func TestCompare_RothWins(t *testing.T) {
	engine := newTestEngine(t)
	s := oneYearScenario()
	s.AnnualSalary = dec(50000)
	s.ExpectedRetirementIncome = dec(200000)
	s.RetirementState = "CA"
	s.TraditionalSplit = dec(50)

	result, err := engine.Compare(context.Background(), s)
	require.NoError(t, err)

	summary := result.Summary
	assert.Equal(t, domain.WinnerRoth, summary.Winner)
	// 5000 × (1 − 0.3014) + 885
	assertDecimal(t, dec(4378), summary.TraditionalAfterTax)
	assertDecimal(t, dec(5000), summary.RothAfterTax)
	assertDecimal(t, dec(622), summary.Margin)
	assert.Equal(t, 0, summary.OptimalSplit)
	assertDecimal(t, dec(5000), summary.OptimalAfterTax)
	assert.True(t, summary.CurrentSplitAfterTax.LessThan(summary.RothAfterTax))
	assert.True(t, summary.CurrentSplitAfterTax.GreaterThan(summary.TraditionalAfterTax))
	assert.Equal(t, 0, summary.BracketOptimalSplit)
	assert.Equal(t, "Use 100% Roth: Your marginal rate (12%) <= retirement rate (30.1%)", summary.BracketExplanation)
	assertDecimal(t, dec(0.3014), result.TaxComparison.RetirementTaxRate)
}

func TestCompare_ContributionExample(t *testing.T) {
	engine := newTestEngine(t)
	s := domain.DefaultScenario()
	s.CurrentAge = 30
	s.RetirementAge = 65
	s.AnnualSalary = dec(100000)
	s.AnnualBonus = decimal.Zero
	s.ContributionMode = domain.ContributionPercentage
	s.ContributionAmount = dec(10)
	s.EmployerMatchPercent = dec(50)
	s.EmployerMatchCapPercent = dec(6)
	s.TraditionalSplit = dec(100)
	s.CurrentState = "TX"
	s.RetirementState = "TX"
	s.ExpectedReturn = dec(7)
	s.ExpectedRetirementIncome = dec(60000)

	result, err := engine.Compare(context.Background(), s)
	require.NoError(t, err)

	c := result.Contribution
	assertDecimal(t, dec(10000), c.EmployeeContribution)
	assertDecimal(t, dec(3000), c.EmployerMatch)
	assertDecimal(t, dec(13000), c.TotalContribution)
	assert.False(t, c.IsOverLimit)
	require.Len(t, result.TraditionalProjections, 35)

	// the optimum dominates both pure strategies
	assert.True(t, result.Summary.OptimalAfterTax.GreaterThanOrEqual(result.Summary.TraditionalAfterTax))
	assert.True(t, result.Summary.OptimalAfterTax.GreaterThanOrEqual(result.Summary.RothAfterTax))

	// match lands in Traditional even on the all-Roth path
	last := result.RothProjections[len(result.RothProjections)-1]
	assert.True(t, last.TraditionalBalance.IsPositive())
	assertDecimal(t, dec(105000), last.CumulativeEmployerMatch)
}

func TestCompare_Idempotent(t *testing.T) {
	engine := newTestEngine(t)
	s := domain.DefaultScenario()
	s.MegaBackdoorContribution = dec(8000)
	s.Initial401kBalance = dec(40000)

	first, err := engine.Compare(context.Background(), s)
	require.NoError(t, err)
	second, err := engine.Compare(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCompare_Errors(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name    string
		modify  func(s *domain.ScenarioInput)
		wantErr error
	}{
		{"retirement not after current age", func(s *domain.ScenarioInput) { s.RetirementAge = s.CurrentAge }, domain.ErrInvalidInput},
		{"negative salary", func(s *domain.ScenarioInput) { s.AnnualSalary = dec(-1) }, domain.ErrInvalidInput},
		{"split above 100", func(s *domain.ScenarioInput) { s.TraditionalSplit = dec(101) }, domain.ErrInvalidInput},
		{"unknown current state", func(s *domain.ScenarioInput) { s.CurrentState = "ZZ" }, domain.ErrInvalidJurisdiction},
		{"unknown retirement state", func(s *domain.ScenarioInput) { s.RetirementState = "QQ" }, domain.ErrInvalidJurisdiction},
		{"three-letter state", func(s *domain.ScenarioInput) { s.CurrentState = "XYZ" }, domain.ErrInvalidJurisdiction},
		{"unknown filing status", func(s *domain.ScenarioInput) { s.FilingStatus = "head_of_household" }, domain.ErrInvalidJurisdiction},
		{"missing filing status", func(s *domain.ScenarioInput) { s.FilingStatus = "" }, domain.ErrInvalidInput},
		{"unconfigured plan year", func(s *domain.ScenarioInput) { s.PlanYear = 2030 }, domain.ErrLimitLookupFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := oneYearScenario()
			tt.modify(&s)
			result, err := engine.Compare(context.Background(), s)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCompare_Cancelled(t *testing.T) {
	engine := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := engine.Compare(ctx, oneYearScenario())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLimitsFor(t *testing.T) {
	engine := newTestEngine(t)

	limits, err := engine.LimitsFor(2025)
	require.NoError(t, err)
	assertDecimal(t, dec(23500), limits.BaseLimit)
	assertDecimal(t, dec(7500), limits.CatchUpLimit)
	assert.Equal(t, 50, limits.CatchUpAge)
	assertDecimal(t, dec(31000), limits.TotalWithCatchUp)

	_, err = engine.LimitsFor(2019)
	assert.ErrorIs(t, err, domain.ErrLimitLookupFailure)
}

func TestOptimizeSplit_UsesPlanDefaults(t *testing.T) {
	engine := newTestEngine(t)
	engine.SetWorkers(2)
	engine.SetLogger(nil)

	s := oneYearScenario()
	s.PlanYear = 0
	result, err := engine.OptimizeSplit(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 100, result.OptimalSplit)
	assert.Equal(t, 2, engine.Optimizer.Workers)
}

func TestCompare_PlanYearFallsBackToEngineDefault(t *testing.T) {
	engine := newTestEngine(t)
	assert.Equal(t, config.DefaultPlanYear, engine.DefaultPlanYear)

	s := oneYearScenario()
	s.PlanYear = 0
	result, err := engine.Compare(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPlanYear, result.PlanYear)

	engine.DefaultPlanYear = 2025
	result, err = engine.Compare(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 2025, result.PlanYear)
	assertDecimal(t, dec(23500), result.Contribution.MaxEmployeeAllowed)
}

func TestCompare_LogsPolicyWarnings(t *testing.T) {
	engine := newTestEngine(t)
	logger, hook := logtest.NewNullLogger()
	engine.SetLogger(logger)

	s := oneYearScenario()
	s.ContributionMode = domain.ContributionDollar
	s.ContributionAmount = dec(30000)
	s.MegaBackdoorContribution = dec(200000)
	_, err := engine.Compare(context.Background(), s)
	require.NoError(t, err)

	var warnings []string
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings = append(warnings, e.Message)
		}
	}
	require.Len(t, warnings, 2)
	assert.Equal(t, "requested contribution exceeds the 2024 limit; deferring $23,000.00", warnings[0])
	assert.Contains(t, warnings[1], "mega backdoor capped at take-home pay")
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)

	hook.Reset()
	_, err = engine.Compare(context.Background(), oneYearScenario())
	require.NoError(t, err)
	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, logrus.WarnLevel, e.Level, e.Message)
	}
}
