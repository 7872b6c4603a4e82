package calculation

import (
	"context"
	"testing"

	"github.com/rpgo/rothtrad/internal/config"
	"github.com/rpgo/rothtrad/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *CalculationEngine {
	t.Helper()
	tables, err := config.LoadDefaultTables()
	require.NoError(t, err)
	return NewCalculationEngine(tables)
}

// oneYearScenario is a single year at $100k in Texas with a 10% deferral,
// no match, no savings and a 12.11% retirement rate.
func oneYearScenario() domain.ScenarioInput {
	s := domain.DefaultScenario()
	s.CurrentAge = 30
	s.RetirementAge = 31
	s.PlanYear = 2024
	s.AnnualSalary = dec(100000)
	s.AnnualBonus = decimal.Zero
	s.ContributionMode = domain.ContributionPercentage
	s.ContributionAmount = dec(10)
	s.ContributionTiming = domain.TimingEnd
	s.EmployerMatchPercent = decimal.Zero
	s.ExpectedRetirementIncome = dec(50000)
	s.ExpectedReturn = dec(10)
	s.TaxableReturn = dec(5)
	s.DividendYield = decimal.Zero
	s.SavingsRate = decimal.Zero
	s.FilingStatus = domain.FilingSingle
	s.CurrentState = "TX"
	s.RetirementState = "TX"
	s.TraditionalSplit = dec(100)
	return s
}

func TestProjectSplit_EndOfYear(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()
	s := oneYearScenario()

	trad, err := engine.ProjectSplit(ctx, s, dec(100))
	require.NoError(t, err)
	require.Len(t, trad.Snapshots, 1)

	snap := trad.Snapshots[0]
	assert.Equal(t, 1, snap.Year)
	assert.Equal(t, 31, snap.Age)
	assertDecimal(t, dec(10000), snap.TraditionalBalance)
	assert.True(t, snap.RothBalance.IsZero())
	assertDecimal(t, dec(2200), snap.TaxSavings)
	assertDecimal(t, dec(2200), snap.TaxableDeposit)
	assertDecimal(t, dec(2200), snap.TaxableBalance)
	assertDecimal(t, dec(12200), snap.TotalWealth)
	// 10000 × (1 − 0.1211) + 2200
	assertDecimal(t, dec(10989), trad.AfterTaxWealth)
	assertDecimal(t, trad.AfterTaxWealth, snap.AfterTaxWealth)

	roth, err := engine.ProjectSplit(ctx, s, decimal.Zero)
	require.NoError(t, err)
	assertDecimal(t, dec(10000), roth.RothBalance)
	assert.True(t, roth.TaxableBalance.IsZero())
	assertDecimal(t, dec(10000), roth.AfterTaxWealth)

	half, err := engine.ProjectSplit(ctx, s, dec(50))
	require.NoError(t, err)
	assertDecimal(t, dec(5000), half.TraditionalBalance)
	assertDecimal(t, dec(5000), half.RothBalance)
	assertDecimal(t, dec(1100), half.TaxableBalance)
	assertDecimal(t, dec(10494.50), half.AfterTaxWealth)
}

func TestProjectSplit_BeginningOfYear(t *testing.T) {
	engine := newTestEngine(t)
	s := oneYearScenario()
	s.ContributionTiming = domain.TimingBeginning

	trad, err := engine.ProjectSplit(context.Background(), s, dec(100))
	require.NoError(t, err)
	assertDecimal(t, dec(11000), trad.TraditionalBalance)
	assertDecimal(t, dec(2310), trad.TaxableBalance)
	assertDecimal(t, dec(1000), trad.TotalGrowth.Traditional)
	assertDecimal(t, dec(110), trad.TotalGrowth.Taxable)
	// 11000 × 0.8789 + 2310 − 110 × 0.15
	assertDecimal(t, dec(11961.40), trad.AfterTaxWealth)

	roth, err := engine.ProjectSplit(context.Background(), s, decimal.Zero)
	require.NoError(t, err)
	assertDecimal(t, dec(11000), roth.AfterTaxWealth)
}

func TestProjectSplit_PureStrategiesKeepAccountsSeparate(t *testing.T) {
	engine := newTestEngine(t)
	s := oneYearScenario()
	s.RetirementAge = 65
	s.ContributionTiming = domain.TimingMonthly
	s.Initial401kBalance = dec(50000)
	s.SavingsRate = dec(20)
	s.DividendYield = dec(1.5)

	roth, err := engine.ProjectSplit(context.Background(), s, decimal.Zero)
	require.NoError(t, err)
	require.Len(t, roth.Snapshots, 35)
	for _, snap := range roth.Snapshots {
		assert.True(t, snap.TraditionalBalance.IsZero(), "age %d", snap.Age)
		assert.True(t, snap.TaxSavings.IsZero(), "age %d", snap.Age)
	}

	trad, err := engine.ProjectSplit(context.Background(), s, dec(100))
	require.NoError(t, err)
	for _, snap := range trad.Snapshots {
		assert.True(t, snap.RothBalance.IsZero(), "age %d", snap.Age)
		assert.True(t, snap.CumulativeGrowth.Roth.IsZero(), "age %d", snap.Age)
	}

	// balances only grow with non-negative returns and deposits
	for i := 1; i < len(trad.Snapshots); i++ {
		assert.True(t, trad.Snapshots[i].TraditionalBalance.GreaterThan(trad.Snapshots[i-1].TraditionalBalance))
		assert.True(t, trad.Snapshots[i].TaxableBalance.GreaterThan(trad.Snapshots[i-1].TaxableBalance))
	}
	assert.Equal(t, 65, trad.Snapshots[len(trad.Snapshots)-1].Age)
	assertDecimal(t, dec(350000), trad.TotalContributions)
}

func TestProjectSplit_SymmetryWithoutReinvestment(t *testing.T) {
	engine := newTestEngine(t)
	s := oneYearScenario()
	s.RetirementAge = 60
	s.ContributionTiming = domain.TimingMonthly
	s.SavingsRate = dec(20)
	s.DividendYield = dec(1.5)
	s.ExpectedRetirementIncome = decimal.Zero
	s.DisableTaxSavingsReinvestment = true

	trad, err := engine.ProjectSplit(context.Background(), s, dec(100))
	require.NoError(t, err)
	roth, err := engine.ProjectSplit(context.Background(), s, decimal.Zero)
	require.NoError(t, err)

	assertDecimal(t, trad.TraditionalBalance, roth.RothBalance)
	assertDecimal(t, trad.TaxableBalance, roth.TaxableBalance)
	assertDecimal(t, trad.AfterTaxWealth, roth.AfterTaxWealth)
	assert.True(t, trad.TaxableBalance.IsPositive())
}

func TestProjectSplit_MegaBackdoorCappedAtTakeHome(t *testing.T) {
	engine := newTestEngine(t)
	s := oneYearScenario()
	s.MegaBackdoorContribution = dec(200000)

	trad, err := engine.ProjectSplit(context.Background(), s, dec(100))
	require.NoError(t, err)
	// 100000 − 10000 − 22503
	assertDecimal(t, dec(67497), trad.ActualMegaBackdoor)
	assertDecimal(t, dec(67497), trad.MegaBackdoorBalance)
	assert.True(t, trad.TaxableBalance.IsZero(), "nothing is left for the taxable account")

	s.MegaBackdoorContribution = dec(5000)
	trad, err = engine.ProjectSplit(context.Background(), s, dec(100))
	require.NoError(t, err)
	assertDecimal(t, dec(5000), trad.ActualMegaBackdoor)
	// mega backdoor is tax free at withdrawal
	assertDecimal(t, dec(15989), trad.AfterTaxWealth)
}

func TestProjectSplit_InitialBalances(t *testing.T) {
	engine := newTestEngine(t)
	s := oneYearScenario()
	s.ExpectedReturn = decimal.Zero
	s.TaxableReturn = decimal.Zero
	s.Initial401kBalance = dec(10000)
	s.InitialTaxableBalance = dec(10000)
	s.DividendYield = dec(2)
	s.DisableTaxSavingsReinvestment = true

	proj, err := engine.ProjectSplit(context.Background(), s, dec(60))
	require.NoError(t, err)
	assertDecimal(t, dec(12000), proj.TraditionalBalance)
	assertDecimal(t, dec(8000), proj.RothBalance)
	// dividend drag: 10000 × 2% × 15%
	assertDecimal(t, dec(9970), proj.TaxableBalance)
	assertDecimal(t, dec(-30), proj.TotalGrowth.Taxable)
	assertDecimal(t, dec(10000), proj.Snapshots[0].TaxableBasis)
}

func TestProjectSplit_CatchUpContributions(t *testing.T) {
	engine := newTestEngine(t)
	s := oneYearScenario()
	s.CurrentAge = 48
	s.RetirementAge = 52
	s.ContributionMode = domain.ContributionDollar
	s.ContributionAmount = dec(30000)

	proj, err := engine.ProjectSplit(context.Background(), s, dec(100))
	require.NoError(t, err)
	require.Len(t, proj.Snapshots, 4)
	expected := []decimal.Decimal{dec(23000), dec(23000), dec(30000), dec(30000)}
	for i, snap := range proj.Snapshots {
		assertDecimal(t, expected[i], snap.EmployeeContribution, "year %d", snap.Year)
	}
	assertDecimal(t, dec(106000), proj.TotalContributions)
}

func TestProjectSplit_Errors(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.ProjectSplit(context.Background(), oneYearScenario(), dec(101))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	s := oneYearScenario()
	s.RetirementAge = s.CurrentAge
	_, err = engine.ProjectSplit(context.Background(), s, dec(50))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
