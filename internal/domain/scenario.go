package domain

import (
	"github.com/shopspring/decimal"
)

// FilingStatus selects the federal bracket schedule and FICA thresholds
type FilingStatus string

const (
	FilingSingle               FilingStatus = "single"
	FilingMarriedFilingJointly FilingStatus = "married_filing_jointly"
)

// ContributionMode says how ContributionAmount is interpreted
type ContributionMode string

const (
	// ContributionPercentage treats the amount as a percent of salary + bonus
	ContributionPercentage ContributionMode = "percentage"
	// ContributionDollar treats the amount as an annual dollar figure
	ContributionDollar ContributionMode = "dollar"
)

// ContributionTiming controls whether a year's deposits earn that year's growth
type ContributionTiming string

const (
	TimingBeginning ContributionTiming = "beginning"
	TimingEnd       ContributionTiming = "end"
	TimingMonthly   ContributionTiming = "monthly"
)

// ScenarioInput is one comparison request. Percent-valued fields use whole
// percents (7 means 7%), matching how the plan documents quote them.
type ScenarioInput struct {
	CurrentAge    int `yaml:"current_age" json:"current_age" validate:"gte=18,lte=70"`
	RetirementAge int `yaml:"retirement_age" json:"retirement_age" validate:"gtfield=CurrentAge,lte=80"`
	// PlanYear selects contribution limits and tax tables; zero uses the engine default
	PlanYear int `yaml:"plan_year,omitempty" json:"plan_year,omitempty" validate:"omitempty,gte=2000,lte=2100"`

	AnnualSalary          decimal.Decimal `yaml:"annual_salary" json:"annual_salary" validate:"gte=0"`
	AnnualBonus           decimal.Decimal `yaml:"annual_bonus" json:"annual_bonus" validate:"gte=0"`
	Initial401kBalance    decimal.Decimal `yaml:"initial_401k_balance" json:"initial_401k_balance" validate:"gte=0"`
	InitialTaxableBalance decimal.Decimal `yaml:"initial_taxable_balance" json:"initial_taxable_balance" validate:"gte=0"`

	ContributionMode   ContributionMode   `yaml:"contribution_mode" json:"contribution_mode" validate:"oneof=percentage dollar"`
	ContributionAmount decimal.Decimal    `yaml:"contribution_amount" json:"contribution_amount" validate:"gte=0"`
	ContributionTiming ContributionTiming `yaml:"contribution_timing" json:"contribution_timing" validate:"oneof=beginning end monthly"`

	MegaBackdoorContribution decimal.Decimal `yaml:"mega_backdoor_contribution" json:"mega_backdoor_contribution" validate:"gte=0"`
	TraditionalSplit         decimal.Decimal `yaml:"traditional_split" json:"traditional_split" validate:"gte=0,lte=100"`

	EmployerMatchPercent    decimal.Decimal `yaml:"employer_match_percent" json:"employer_match_percent" validate:"gte=0,lte=100"`
	EmployerMatchCapPercent decimal.Decimal `yaml:"employer_match_cap_percent" json:"employer_match_cap_percent" validate:"gte=0,lte=100"`

	ExpectedRetirementIncome decimal.Decimal `yaml:"expected_retirement_income" json:"expected_retirement_income" validate:"gte=0"`
	ExpectedReturn           decimal.Decimal `yaml:"expected_return" json:"expected_return" validate:"gte=0,lte=100"`
	TaxableReturn            decimal.Decimal `yaml:"taxable_return" json:"taxable_return" validate:"gte=0,lte=100"`
	DividendYield            decimal.Decimal `yaml:"dividend_yield" json:"dividend_yield" validate:"gte=0,lte=100"`

	// Filing status and state codes are resolved against the plan year's
	// tables; an unknown code is an ErrInvalidJurisdiction, not bad input.
	FilingStatus    FilingStatus `yaml:"filing_status" json:"filing_status" validate:"required"`
	CurrentState    string       `yaml:"current_state" json:"current_state" validate:"required"`
	RetirementState string       `yaml:"retirement_state" json:"retirement_state" validate:"required"`

	SavingsRate decimal.Decimal `yaml:"savings_rate" json:"savings_rate" validate:"gte=0,lte=100"`
	// DisableTaxSavingsReinvestment stops the Traditional share's tax savings
	// from being deposited into the taxable account.
	DisableTaxSavingsReinvestment bool `yaml:"disable_tax_savings_reinvestment,omitempty" json:"disable_tax_savings_reinvestment,omitempty"`
}

// DefaultScenario returns the baseline request. Files and API bodies are
// decoded on top of it so omitted fields keep these values.
func DefaultScenario() ScenarioInput {
	return ScenarioInput{
		CurrentAge:               35,
		RetirementAge:            65,
		AnnualSalary:             decimal.NewFromInt(100000),
		AnnualBonus:              decimal.Zero,
		Initial401kBalance:       decimal.Zero,
		InitialTaxableBalance:    decimal.Zero,
		ContributionMode:         ContributionPercentage,
		ContributionAmount:       decimal.NewFromInt(10),
		ContributionTiming:       TimingMonthly,
		MegaBackdoorContribution: decimal.Zero,
		TraditionalSplit:         decimal.NewFromInt(100),
		EmployerMatchPercent:     decimal.NewFromInt(50),
		EmployerMatchCapPercent:  decimal.NewFromInt(6),
		ExpectedRetirementIncome: decimal.NewFromInt(60000),
		ExpectedReturn:           decimal.NewFromInt(7),
		TaxableReturn:            decimal.NewFromInt(6),
		DividendYield:            decimal.NewFromFloat(1.5),
		FilingStatus:             FilingSingle,
		CurrentState:             "CA",
		RetirementState:          "CA",
		SavingsRate:              decimal.NewFromInt(20),
	}
}

// Years returns the number of simulated years
func (s ScenarioInput) Years() int {
	return s.RetirementAge - s.CurrentAge
}

// EligiblePay is the pay base for percentage contributions and the match cap
func (s ScenarioInput) EligiblePay() decimal.Decimal {
	return s.AnnualSalary.Add(s.AnnualBonus)
}
