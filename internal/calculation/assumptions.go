package calculation

import (
	"fmt"

	"github.com/rpgo/rothtrad/internal/domain"
	"github.com/rpgo/rothtrad/pkg/money"
	"github.com/shopspring/decimal"
)

// GenerateAssumptions lists the modelling assumptions behind a comparison,
// filled in from the scenario and the plan year's tables.
func GenerateAssumptions(s domain.ScenarioInput, ty *domain.TaxYear, retirementRate decimal.Decimal) []string {
	timing := map[domain.ContributionTiming]string{
		domain.TimingBeginning: "at the start of each year",
		domain.TimingEnd:       "at the end of each year",
		domain.TimingMonthly:   "in twelve monthly installments",
	}[s.ContributionTiming]

	reinvest := "Traditional tax savings are reinvested in the taxable account"
	if s.DisableTaxSavingsReinvestment {
		reinvest = "Traditional tax savings are not reinvested"
	}

	return []string{
		fmt.Sprintf("Plan year %d tax tables and limits held constant (no inflation indexing)", ty.Year),
		"Salary, bonus and contributions held constant in nominal dollars",
		fmt.Sprintf("Contributions invested %s", timing),
		fmt.Sprintf("401(k) growth: %s%% annually; taxable account growth: %s%% annually", s.ExpectedReturn.StringFixed(1), s.TaxableReturn.StringFixed(1)),
		"Employer match is always pre-tax (Traditional) regardless of split",
		"Mega backdoor contributions are Roth-equivalent and capped at take-home pay",
		reinvest,
		fmt.Sprintf("Taxable account saves %s%% of Roth-baseline take-home after mega backdoor", s.SavingsRate.StringFixed(1)),
		fmt.Sprintf("Dividends of %s%% taxed yearly at %s", s.DividendYield.StringFixed(1), money.FormatRate(ty.CapitalGainsRate)),
		fmt.Sprintf("Capital gains on taxable growth above contributed basis taxed at %s", money.FormatRate(ty.CapitalGainsRate)),
		fmt.Sprintf("Traditional withdrawals taxed at the %s effective rate on %s retirement income (%s)", money.FormatRate(retirementRate), money.FormatWhole(s.ExpectedRetirementIncome), s.RetirementState),
		"State income tax modeled as a flat rate",
	}
}
