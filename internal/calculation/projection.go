package calculation

import (
	"fmt"

	"github.com/rpgo/rothtrad/internal/domain"
	"github.com/rpgo/rothtrad/pkg/money"
	"github.com/shopspring/decimal"
)

// projectionPlan holds everything about a scenario that does not depend on
// the split. It is read-only once built and is shared by every split
// evaluation, including concurrent ones in the optimizer.
type projectionPlan struct {
	scenario domain.ScenarioInput
	taxYear  *domain.TaxYear
	taxCalc  *ComprehensiveTaxCalculator

	gross          decimal.Decimal
	years          []plannedYear
	retirementTax  domain.TaxResult
	retirementRate decimal.Decimal
	capitalGains   decimal.Decimal
	dividendDrag   decimal.Decimal // dividend yield × capital gains rate
	savingsRate    decimal.Decimal
	reinvest       bool

	accountGrowth AccountGrower
	taxableGrowth AccountGrower
}

// plannedYear is the split-independent part of one simulated year
type plannedYear struct {
	startAge     int
	contribution domain.ContributionResult
	rothTax      domain.TaxResult // no pretax deferral
	rothTakeHome decimal.Decimal
}

func newProjectionPlan(s domain.ScenarioInput, ty *domain.TaxYear) (*projectionPlan, error) {
	taxCalc := NewComprehensiveTaxCalculator(ty)
	contribCalc := NewContributionCalculator(ty)

	retirementTax, err := taxCalc.RetirementTax(s.ExpectedRetirementIncome, s.FilingStatus, s.RetirementState)
	if err != nil {
		return nil, fmt.Errorf("retirement tax: %w", err)
	}

	plan := &projectionPlan{
		scenario:       s,
		taxYear:        ty,
		taxCalc:        taxCalc,
		gross:          s.EligiblePay(),
		retirementTax:  retirementTax,
		retirementRate: retirementTax.EffectiveRate,
		capitalGains:   ty.CapitalGainsRate,
		dividendDrag:   money.FromPercent(s.DividendYield).Mul(ty.CapitalGainsRate),
		savingsRate:    money.FromPercent(s.SavingsRate),
		reinvest:       !s.DisableTaxSavingsReinvestment,
		accountGrowth:  NewAccountGrower(s.ExpectedReturn, s.ContributionTiming),
		taxableGrowth:  NewAccountGrower(s.TaxableReturn, s.ContributionTiming),
	}

	plan.years = make([]plannedYear, s.Years())
	for i := range plan.years {
		age := s.CurrentAge + i
		contribution := contribCalc.Calculate(s, age)
		rothTax, err := taxCalc.TotalTax(plan.gross, decimal.Zero, s.FilingStatus, s.CurrentState)
		if err != nil {
			return nil, fmt.Errorf("current tax: %w", err)
		}
		plan.years[i] = plannedYear{
			startAge:     age,
			contribution: contribution,
			rothTax:      rothTax,
			rothTakeHome: plan.gross.Sub(contribution.EmployeeContribution).Sub(rothTax.TotalTax),
		}
	}
	return plan, nil
}

// afterTaxWealth is the liquidation value of the accounts: Traditional pays
// the retirement effective rate, Roth and mega backdoor withdraw tax free,
// and the taxable account pays capital gains on growth above basis.
func (p *projectionPlan) afterTaxWealth(traditional, roth, mega, taxable, basis decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	gains := money.NonNegative(taxable.Sub(basis))
	return money.Round(traditional.Mul(one.Sub(p.retirementRate)).
		Add(roth).
		Add(mega).
		Add(taxable).
		Sub(gains.Mul(p.capitalGains)))
}

// project runs the year-by-year simulation for one Traditional split
// (whole percent, 0..100).
func (p *projectionPlan) project(split decimal.Decimal) (domain.SplitProjection, error) {
	s := p.scenario
	ratio := money.FromPercent(split)

	traditional := money.Round(s.Initial401kBalance.Mul(ratio))
	roth := s.Initial401kBalance.Sub(traditional)
	mega := decimal.Zero
	taxable := s.InitialTaxableBalance
	basis := s.InitialTaxableBalance

	var (
		cumContrib, cumMatch decimal.Decimal
		cumGrowth            domain.AccountGrowth
		actualMega           decimal.Decimal
	)
	snapshots := make([]domain.YearSnapshot, 0, len(p.years))

	for i, py := range p.years {
		employee := py.contribution.EmployeeContribution
		match := py.contribution.EmployerMatch
		tradShare := money.Round(employee.Mul(ratio))
		rothShare := employee.Sub(tradShare)

		splitTax := py.rothTax
		if tradShare.IsPositive() {
			var err error
			splitTax, err = p.taxCalc.TotalTax(p.gross, tradShare, s.FilingStatus, s.CurrentState)
			if err != nil {
				return domain.SplitProjection{}, err
			}
		}
		savings := py.rothTax.TotalTax.Sub(splitTax.TotalTax)
		takeHome := p.gross.Sub(employee).Sub(splitTax.TotalTax)

		megaDeposit := decimal.Min(s.MegaBackdoorContribution, money.NonNegative(takeHome))
		if i == 0 {
			actualMega = megaDeposit
		}

		// Both paths save the same share of Roth-baseline spending money;
		// only the Traditional share's tax savings differ.
		deposit := money.Round(money.NonNegative(py.rothTakeHome.Sub(megaDeposit)).Mul(p.savingsRate))
		if p.reinvest {
			deposit = deposit.Add(savings)
		}
		deposit = money.NonNegative(decimal.Min(deposit, takeHome.Sub(megaDeposit)))

		drag := money.Round(taxable.Mul(p.dividendDrag))

		var growth domain.AccountGrowth
		traditional, growth.Traditional = p.accountGrowth.Grow(traditional, tradShare.Add(match))
		roth, growth.Roth = p.accountGrowth.Grow(roth, rothShare)
		mega, growth.MegaBackdoor = p.accountGrowth.Grow(mega, megaDeposit)
		taxable, growth.Taxable = p.taxableGrowth.Grow(taxable, deposit)
		taxable = taxable.Sub(drag)
		growth.Taxable = growth.Taxable.Sub(drag)
		basis = basis.Add(deposit)

		cumContrib = cumContrib.Add(employee)
		cumMatch = cumMatch.Add(match)
		cumGrowth = cumGrowth.Add(growth)

		snapshots = append(snapshots, domain.YearSnapshot{
			Year:                    i + 1,
			Age:                     py.startAge + 1,
			EmployeeContribution:    employee,
			EmployerMatch:           match,
			MegaBackdoorDeposit:     megaDeposit,
			TaxSavings:              savings,
			TaxableDeposit:          deposit,
			TraditionalBalance:      traditional,
			RothBalance:             roth,
			MegaBackdoorBalance:     mega,
			TaxableBalance:          taxable,
			TaxableBasis:            basis,
			CumulativeContributions: cumContrib,
			CumulativeEmployerMatch: cumMatch,
			CumulativeGrowth:        cumGrowth,
			TotalWealth:             traditional.Add(roth).Add(mega).Add(taxable),
			AfterTaxWealth:          p.afterTaxWealth(traditional, roth, mega, taxable, basis),
		})
	}

	return domain.SplitProjection{
		Split:               split,
		Snapshots:           snapshots,
		TraditionalBalance:  traditional,
		RothBalance:         roth,
		MegaBackdoorBalance: mega,
		TaxableBalance:      taxable,
		AfterTaxWealth:      p.afterTaxWealth(traditional, roth, mega, taxable, basis),
		TotalContributions:  cumContrib,
		TotalEmployerMatch:  cumMatch,
		TotalGrowth:         cumGrowth,
		ActualMegaBackdoor:  actualMega,
	}, nil
}
