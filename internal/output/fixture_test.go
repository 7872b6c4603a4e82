package output

import (
	"github.com/rpgo/rothtrad/internal/domain"
	"github.com/shopspring/decimal"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func snapshot(year int, afterTax, total, savings float64) domain.YearSnapshot {
	return domain.YearSnapshot{
		Year:                 year,
		Age:                  30 + year,
		EmployeeContribution: d(10000),
		TaxSavings:           d(savings),
		TraditionalBalance:   d(total),
		TotalWealth:          d(total),
		AfterTaxWealth:       d(afterTax),
	}
}

func buildTestComparison() *domain.ComparisonResult {
	s := domain.DefaultScenario()
	s.CurrentAge, s.RetirementAge = 30, 32
	s.TraditionalSplit = decimal.NewFromInt(50)
	return &domain.ComparisonResult{
		Scenario: s,
		PlanYear: 2024,
		Contribution: domain.ContributionResult{
			EmployeeContribution: d(10000),
			TotalContribution:    d(10000),
			MaxEmployeeAllowed:   d(23000),
			LimitYear:            2024,
		},
		TaxComparison: domain.TaxComparison{
			CurrentTraditional:    domain.TaxResult{TaxableIncome: d(90000), TotalTax: d(22503), EffectiveRate: d(0.225), MarginalRate: d(0.22)},
			CurrentRoth:           domain.TaxResult{TaxableIncome: d(100000), TotalTax: d(24703), EffectiveRate: d(0.247), MarginalRate: d(0.22)},
			CurrentYearTaxSavings: d(2200),
			RetirementTaxRate:     d(0.1211),
			BreakEvenRate:         d(0.22),
		},
		Summary: domain.ProjectionSummary{
			Winner:               domain.WinnerTraditional,
			Margin:               d(989),
			TraditionalAfterTax:  d(10989),
			RothAfterTax:         d(10000),
			OptimalSplit:         100,
			OptimalAfterTax:      d(10989),
			CurrentSplit:         decimal.NewFromInt(50),
			CurrentSplitAfterTax: d(10494.50),
			BracketOptimalSplit:  100,
			BracketExplanation:   "Use 100% Traditional: All your contribution reduces income taxed at 22% (> 12.1% retirement rate)",
		},
		TraditionalProjections:  []domain.YearSnapshot{snapshot(1, 10989, 12500, 2200), snapshot(2, 23000, 26000, 2200)},
		RothProjections:         []domain.YearSnapshot{snapshot(1, 10000, 10000, 0), snapshot(2, 21000, 21000, 0)},
		CurrentSplitProjections: []domain.YearSnapshot{snapshot(1, 10494.50, 11250, 1100), snapshot(2, 22000, 23500, 1100)},
		SplitCurve: []domain.SplitPoint{
			{Split: 0, AfterTaxWealth: d(10000)},
			{Split: 50, AfterTaxWealth: d(10494.50)},
			{Split: 100, AfterTaxWealth: d(10989)},
		},
		Assumptions: []string{"Returns are constant at 7% a year"},
	}
}
