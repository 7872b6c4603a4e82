package integration

import (
	"context"
	"testing"

	"github.com/rpgo/rothtrad/internal/calculation"
	"github.com/rpgo/rothtrad/internal/config"
	"github.com/rpgo/rothtrad/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compareFile(t *testing.T, path string) (*domain.ScenarioInput, *domain.ComparisonResult) {
	t.Helper()
	scenario, err := config.NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	tables, err := config.LoadDefaultTables()
	require.NoError(t, err)
	engine := calculation.NewCalculationEngine(tables)

	result, err := engine.Compare(context.Background(), *scenario)
	require.NoError(t, err)
	require.NotNil(t, result)
	return scenario, result
}

func TestEndToEndComparison(t *testing.T) {
	for _, path := range []string{"../testdata/example_scenario.yaml", "../testdata/low_bracket_scenario.yaml"} {
		t.Run(path, func(t *testing.T) {
			scenario, result := compareFile(t, path)
			summary := result.Summary
			years := scenario.Years()

			assert.Equal(t, scenario.PlanYear, result.PlanYear)
			require.Len(t, result.TraditionalProjections, years)
			require.Len(t, result.RothProjections, years)
			require.Len(t, result.CurrentSplitProjections, years)
			assert.Len(t, result.SplitCurve, 101)
			assert.NotEmpty(t, result.Assumptions)

			for i := 0; i < years; i++ {
				trad, roth := result.TraditionalProjections[i], result.RothProjections[i]
				assert.Equal(t, i+1, trad.Year)
				assert.Equal(t, scenario.CurrentAge+i+1, trad.Age)
				assert.True(t, trad.EmployeeContribution.Equal(roth.EmployeeContribution), "year %d contributions differ", i+1)
				assert.True(t, trad.EmployerMatch.Equal(roth.EmployerMatch), "year %d match differs", i+1)
				assert.True(t, trad.RothBalance.IsZero(), "all-Traditional projection holds no Roth money")
			}

			last := years - 1
			assert.True(t, summary.TraditionalAfterTax.Equal(result.TraditionalProjections[last].AfterTaxWealth))
			assert.True(t, summary.RothAfterTax.Equal(result.RothProjections[last].AfterTaxWealth))
			assert.True(t, summary.CurrentSplitAfterTax.Equal(result.CurrentSplitProjections[last].AfterTaxWealth))

			// margin is the gap between the pure strategies and the winner holds the larger one
			assert.True(t, summary.Margin.Equal(summary.TraditionalAfterTax.Sub(summary.RothAfterTax).Abs()))
			if summary.Winner == domain.WinnerTraditional {
				assert.True(t, summary.TraditionalAfterTax.GreaterThanOrEqual(summary.RothAfterTax))
			} else {
				assert.True(t, summary.RothAfterTax.GreaterThan(summary.TraditionalAfterTax))
			}

			// the optimizer searched every whole split, including both pure strategies and the current one
			for _, v := range []decimal.Decimal{summary.TraditionalAfterTax, summary.RothAfterTax, summary.CurrentSplitAfterTax} {
				assert.True(t, summary.OptimalAfterTax.GreaterThanOrEqual(v))
			}
			assert.True(t, result.SplitCurve[summary.OptimalSplit].AfterTaxWealth.Equal(summary.OptimalAfterTax))

			if c := result.Crossover; c != nil {
				assert.True(t, c.Year >= 1 && c.Year <= years)
				assert.True(t, c.Age.GreaterThanOrEqual(decimal.NewFromInt(int64(scenario.CurrentAge))))
				assert.True(t, c.Age.LessThanOrEqual(decimal.NewFromInt(int64(scenario.RetirementAge))))
			}
		})
	}
}

func TestLowBracketFavorsRoth(t *testing.T) {
	_, result := compareFile(t, "../testdata/low_bracket_scenario.yaml")

	assert.Equal(t, domain.WinnerRoth, result.Summary.Winner)
	assert.Equal(t, 0, result.Summary.OptimalSplit)
	assert.Equal(t, 0, result.Summary.BracketOptimalSplit)
	assert.Nil(t, result.Crossover, "Roth leads from the first year")
	assert.False(t, result.Contribution.IsOverLimit)
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()

	scenario, err := parser.LoadFromFile("../testdata/example_scenario.yaml")
	require.NoError(t, err)
	assert.NoError(t, scenario.Validate())

	bad := *scenario
	bad.RetirementAge = bad.CurrentAge
	assert.ErrorIs(t, bad.Validate(), domain.ErrInvalidInput)
}
