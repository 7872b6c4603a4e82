package calculation

import (
	"github.com/rpgo/rothtrad/internal/domain"
	"github.com/rpgo/rothtrad/pkg/money"
	"github.com/shopspring/decimal"
)

// ContributionCalculator applies the plan year's deferral limits and the
// employer match formula.
type ContributionCalculator struct {
	Year   int
	Limits domain.ContributionLimits
}

// NewContributionCalculator creates a contribution calculator for one plan year
func NewContributionCalculator(ty *domain.TaxYear) *ContributionCalculator {
	return &ContributionCalculator{
		Year:   ty.Year,
		Limits: ty.ContributionLimits,
	}
}

// MaxContribution is the employee deferral limit at the given age,
// including catch-up from the catch-up age onward.
func (cc *ContributionCalculator) MaxContribution(age int) decimal.Decimal {
	if cc.Limits.CatchUpAge > 0 && age >= cc.Limits.CatchUpAge {
		return cc.Limits.TotalWithCatchUp()
	}
	return cc.Limits.Base
}

// Calculate computes the applied employee deferral and the employer match
// for a participant of the given age. The match is paid on the applied
// deferral up to the cap percent of eligible pay.
func (cc *ContributionCalculator) Calculate(s domain.ScenarioInput, age int) domain.ContributionResult {
	maxAllowed := cc.MaxContribution(age)
	eligible := s.EligiblePay()

	requested := s.ContributionAmount
	if s.ContributionMode == domain.ContributionPercentage {
		requested = eligible.Mul(money.FromPercent(s.ContributionAmount))
	}
	requested = money.Round(requested)

	employee := decimal.Min(requested, maxAllowed)
	matchable := eligible.Mul(money.FromPercent(s.EmployerMatchCapPercent))
	match := money.Round(decimal.Min(employee, matchable).Mul(money.FromPercent(s.EmployerMatchPercent)))

	return domain.ContributionResult{
		EmployeeContribution: employee,
		EmployerMatch:        match,
		TotalContribution:    employee.Add(match),
		MaxEmployeeAllowed:   maxAllowed,
		IsOverLimit:          requested.GreaterThan(maxAllowed),
		LimitYear:            cc.Year,
	}
}
