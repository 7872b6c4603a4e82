package calculation

import (
	"fmt"
	"strings"

	"github.com/rpgo/rothtrad/internal/domain"
	"github.com/rpgo/rothtrad/pkg/money"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Federal brackets come from the plan year's table and are applied to
//    gross income minus pre-tax deferrals. No standard deduction is taken
//    in TotalTax; the standard deduction is only used by the bracket
//    heuristic in BracketOptimalTraditional.
//
// 2. State tax is a flat rate on the same taxable income.
//
// 3. FICA is charged on gross wages; 401(k) deferrals do not reduce it.
//
// 4. Retirement withdrawals pay federal and state tax only.

// FederalTaxCalculator handles federal income tax calculations
type FederalTaxCalculator struct {
	Year              int
	StandardDeduction map[domain.FilingStatus]decimal.Decimal
	Brackets          map[domain.FilingStatus][]domain.TaxBracket
}

// NewFederalTaxCalculator creates a federal tax calculator for one plan year
func NewFederalTaxCalculator(ty *domain.TaxYear) *FederalTaxCalculator {
	return &FederalTaxCalculator{
		Year:              ty.Year,
		StandardDeduction: ty.Federal.StandardDeduction,
		Brackets:          ty.Federal.Brackets,
	}
}

func (ftc *FederalTaxCalculator) brackets(status domain.FilingStatus) ([]domain.TaxBracket, error) {
	b, ok := ftc.Brackets[status]
	if !ok || len(b) == 0 {
		return nil, fmt.Errorf("%w: unknown filing status %q", domain.ErrInvalidJurisdiction, status)
	}
	return b, nil
}

// FederalTax applies the bracket schedule to taxable income. Income at or
// below zero owes nothing.
func (ftc *FederalTaxCalculator) FederalTax(taxableIncome decimal.Decimal, status domain.FilingStatus) (decimal.Decimal, error) {
	brackets, err := ftc.brackets(status)
	if err != nil {
		return decimal.Zero, err
	}
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	tax := decimal.Zero
	lower := decimal.Zero
	for _, b := range brackets {
		if b.UpTo == nil || taxableIncome.LessThanOrEqual(*b.UpTo) {
			tax = tax.Add(taxableIncome.Sub(lower).Mul(b.Rate))
			break
		}
		tax = tax.Add(b.UpTo.Sub(lower).Mul(b.Rate))
		lower = *b.UpTo
	}
	return money.Round(tax), nil
}

// MarginalRate returns the rate of the bracket holding the top dollar of
// income. Zero income reports the first bracket's rate.
func (ftc *FederalTaxCalculator) MarginalRate(taxableIncome decimal.Decimal, status domain.FilingStatus) (decimal.Decimal, error) {
	brackets, err := ftc.brackets(status)
	if err != nil {
		return decimal.Zero, err
	}
	for _, b := range brackets {
		if b.UpTo == nil || taxableIncome.LessThanOrEqual(*b.UpTo) {
			return b.Rate, nil
		}
	}
	return brackets[len(brackets)-1].Rate, nil
}

// BracketOptimalTraditional finds how much of maxContribution should go
// Traditional so that deferrals only shelter income taxed above the
// expected retirement rate. The comparison uses the bracket rate plus the
// current state rate against retirementRate. It returns the dollar amount
// and a one-line explanation.
func (ftc *FederalTaxCalculator) BracketOptimalTraditional(income, maxContribution, stateRate, retirementRate decimal.Decimal, status domain.FilingStatus) (decimal.Decimal, string, error) {
	brackets, err := ftc.brackets(status)
	if err != nil {
		return decimal.Zero, "", err
	}
	taxable := money.NonNegative(income.Sub(ftc.StandardDeduction[status]))
	marginal, err := ftc.MarginalRate(taxable, status)
	if err != nil {
		return decimal.Zero, "", err
	}
	currentMarginal := marginal.Add(stateRate)

	target := taxable
	lower := decimal.Zero
	for _, b := range brackets {
		inBracket := b.UpTo == nil || taxable.LessThanOrEqual(*b.UpTo)
		if b.Rate.Add(stateRate).LessThanOrEqual(retirementRate) {
			if inBracket {
				target = taxable
				break
			}
		} else if inBracket {
			target = lower
			break
		}
		lower = *b.UpTo
	}

	optimal := taxable.Sub(target)
	optimal = decimal.Max(decimal.Zero, decimal.Min(optimal, maxContribution))

	marginalPct := money.ToPercent(currentMarginal).StringFixed(0)
	retirementPct := money.ToPercent(retirementRate).StringFixed(1)
	var explanation string
	switch {
	case maxContribution.IsPositive() && optimal.GreaterThanOrEqual(maxContribution):
		explanation = fmt.Sprintf("Use 100%% Traditional: All your contribution reduces income taxed at %s%% (> %s%% retirement rate)", marginalPct, retirementPct)
	case !optimal.IsPositive():
		explanation = fmt.Sprintf("Use 100%% Roth: Your marginal rate (%s%%) <= retirement rate (%s%%)", marginalPct, retirementPct)
	default:
		pct := optimal.Div(maxContribution).Mul(decimal.NewFromInt(100)).StringFixed(0)
		explanation = fmt.Sprintf("Use %s%% Traditional (%s) to reduce %s%% bracket income, rest as Roth", pct, money.FormatWhole(optimal), marginalPct)
	}
	return money.Round(optimal), explanation, nil
}

// StateTaxCalculator applies flat state income tax rates
type StateTaxCalculator struct {
	Rates map[string]decimal.Decimal
}

// NewStateTaxCalculator creates a state tax calculator for one plan year
func NewStateTaxCalculator(ty *domain.TaxYear) *StateTaxCalculator {
	return &StateTaxCalculator{Rates: ty.StateRates}
}

// Rate looks up the flat rate for a two-letter state code
func (stc *StateTaxCalculator) Rate(state string) (decimal.Decimal, error) {
	rate, ok := stc.Rates[strings.ToUpper(strings.TrimSpace(state))]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unknown state %q", domain.ErrInvalidJurisdiction, state)
	}
	return rate, nil
}

// StateTax calculates state income tax on taxable income
func (stc *StateTaxCalculator) StateTax(taxableIncome decimal.Decimal, state string) (decimal.Decimal, error) {
	rate, err := stc.Rate(state)
	if err != nil {
		return decimal.Zero, err
	}
	return money.Round(money.NonNegative(taxableIncome).Mul(rate)), nil
}

// FICACalculator handles FICA tax calculations
type FICACalculator struct {
	Year                int
	SSWageBase          decimal.Decimal
	SSRate              decimal.Decimal
	MedicareRate        decimal.Decimal
	AdditionalRate      decimal.Decimal
	AdditionalThreshold map[domain.FilingStatus]decimal.Decimal
}

// NewFICACalculator creates a FICA calculator for one plan year
func NewFICACalculator(ty *domain.TaxYear) *FICACalculator {
	return &FICACalculator{
		Year:                ty.Year,
		SSWageBase:          ty.FICA.SocialSecurityWageBase,
		SSRate:              ty.FICA.SocialSecurityRate,
		MedicareRate:        ty.FICA.MedicareRate,
		AdditionalRate:      ty.FICA.AdditionalMedicareRate,
		AdditionalThreshold: ty.FICA.AdditionalMedicareThreshold,
	}
}

// FICATax calculates Social Security and Medicare on gross wages
func (fc *FICACalculator) FICATax(grossWages decimal.Decimal, status domain.FilingStatus) (decimal.Decimal, error) {
	threshold, ok := fc.AdditionalThreshold[status]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unknown filing status %q", domain.ErrInvalidJurisdiction, status)
	}
	if grossWages.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	ssTax := decimal.Min(grossWages, fc.SSWageBase).Mul(fc.SSRate)
	medicareTax := grossWages.Mul(fc.MedicareRate)
	additionalMedicare := money.NonNegative(grossWages.Sub(threshold)).Mul(fc.AdditionalRate)

	return money.Round(ssTax.Add(medicareTax).Add(additionalMedicare)), nil
}

// ComprehensiveTaxCalculator handles all tax calculations
type ComprehensiveTaxCalculator struct {
	Year           int
	FederalTaxCalc *FederalTaxCalculator
	StateTaxCalc   *StateTaxCalculator
	FICATaxCalc    *FICACalculator
}

// NewComprehensiveTaxCalculator creates a comprehensive tax calculator for one plan year
func NewComprehensiveTaxCalculator(ty *domain.TaxYear) *ComprehensiveTaxCalculator {
	return &ComprehensiveTaxCalculator{
		Year:           ty.Year,
		FederalTaxCalc: NewFederalTaxCalculator(ty),
		StateTaxCalc:   NewStateTaxCalculator(ty),
		FICATaxCalc:    NewFICACalculator(ty),
	}
}

// TotalTax calculates a working year's taxes. Income taxes apply to gross
// minus pretax deferrals; FICA applies to gross.
func (ctc *ComprehensiveTaxCalculator) TotalTax(gross, pretax decimal.Decimal, status domain.FilingStatus, state string) (domain.TaxResult, error) {
	return ctc.calculate(gross, pretax, status, state, true)
}

// RetirementTax calculates taxes on retirement withdrawals, which are not
// wages and owe no FICA. EffectiveRate is the withdrawal tax rate.
func (ctc *ComprehensiveTaxCalculator) RetirementTax(income decimal.Decimal, status domain.FilingStatus, state string) (domain.TaxResult, error) {
	return ctc.calculate(income, decimal.Zero, status, state, false)
}

func (ctc *ComprehensiveTaxCalculator) calculate(gross, pretax decimal.Decimal, status domain.FilingStatus, state string, wages bool) (domain.TaxResult, error) {
	taxable := money.NonNegative(gross.Sub(pretax))

	federal, err := ctc.FederalTaxCalc.FederalTax(taxable, status)
	if err != nil {
		return domain.TaxResult{}, err
	}
	marginal, err := ctc.FederalTaxCalc.MarginalRate(taxable, status)
	if err != nil {
		return domain.TaxResult{}, err
	}
	stateRate, err := ctc.StateTaxCalc.Rate(state)
	if err != nil {
		return domain.TaxResult{}, err
	}
	stateTax := money.Round(taxable.Mul(stateRate))

	fica := decimal.Zero
	if wages {
		fica, err = ctc.FICATaxCalc.FICATax(gross, status)
		if err != nil {
			return domain.TaxResult{}, err
		}
	}

	total := federal.Add(stateTax).Add(fica)
	effective := decimal.Zero
	if gross.IsPositive() {
		effective = money.RoundRate(total.Div(gross))
	}

	return domain.TaxResult{
		TaxableIncome: money.Round(taxable),
		FederalTax:    federal,
		StateTax:      stateTax,
		FICATax:       fica,
		TotalTax:      total,
		EffectiveRate: effective,
		MarginalRate:  marginal.Add(stateRate),
	}, nil
}
