package domain

import (
	"github.com/shopspring/decimal"
)

// TaxResult is a single-year tax breakdown
type TaxResult struct {
	TaxableIncome decimal.Decimal `json:"taxable_income"`
	FederalTax    decimal.Decimal `json:"federal_tax"`
	StateTax      decimal.Decimal `json:"state_tax"`
	FICATax       decimal.Decimal `json:"fica_tax"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	EffectiveRate decimal.Decimal `json:"effective_rate"`
	MarginalRate  decimal.Decimal `json:"marginal_rate"` // federal + state, excludes FICA
}

// ContributionResult is the employee deferral and employer match for one year
type ContributionResult struct {
	EmployeeContribution decimal.Decimal `json:"employee_contribution"`
	EmployerMatch        decimal.Decimal `json:"employer_match"`
	TotalContribution    decimal.Decimal `json:"total_contribution"`
	MaxEmployeeAllowed   decimal.Decimal `json:"max_employee_allowed"`
	IsOverLimit          bool            `json:"is_over_limit"`
	LimitYear            int             `json:"limit_year"`
}

// TaxComparison contrasts this year's taxes with and without the Traditional deferral
type TaxComparison struct {
	CurrentTraditional    TaxResult       `json:"current_traditional"`
	CurrentRoth           TaxResult       `json:"current_roth"`
	CurrentYearTaxSavings decimal.Decimal `json:"current_year_tax_savings"`
	Retirement            TaxResult       `json:"retirement"`
	RetirementTaxRate     decimal.Decimal `json:"retirement_tax_rate"`
	BreakEvenRate         decimal.Decimal `json:"break_even_rate"`
}

// YearSnapshot is the state of every account at the end of one simulated year
type YearSnapshot struct {
	Year int `json:"year"`
	Age  int `json:"age"`

	EmployeeContribution decimal.Decimal `json:"employee_contribution"`
	EmployerMatch        decimal.Decimal `json:"employer_match"`
	MegaBackdoorDeposit  decimal.Decimal `json:"mega_backdoor_deposit"`
	TaxSavings           decimal.Decimal `json:"tax_savings"`
	TaxableDeposit       decimal.Decimal `json:"taxable_deposit"`

	TraditionalBalance  decimal.Decimal `json:"traditional_balance"`
	RothBalance         decimal.Decimal `json:"roth_balance"`
	MegaBackdoorBalance decimal.Decimal `json:"mega_backdoor_balance"`
	TaxableBalance      decimal.Decimal `json:"taxable_balance"`
	TaxableBasis        decimal.Decimal `json:"taxable_basis"`

	CumulativeContributions decimal.Decimal `json:"cumulative_contributions"`
	CumulativeEmployerMatch decimal.Decimal `json:"cumulative_employer_match"`
	CumulativeGrowth        AccountGrowth   `json:"cumulative_growth"`

	TotalWealth    decimal.Decimal `json:"total_wealth"`
	AfterTaxWealth decimal.Decimal `json:"after_tax_wealth"`
}

// Balance401k is the combined Traditional and Roth 401(k) balance
func (ys YearSnapshot) Balance401k() decimal.Decimal {
	return ys.TraditionalBalance.Add(ys.RothBalance)
}

// AccountGrowth splits investment growth by account
type AccountGrowth struct {
	Traditional  decimal.Decimal `json:"traditional"`
	Roth         decimal.Decimal `json:"roth"`
	MegaBackdoor decimal.Decimal `json:"mega_backdoor"`
	Taxable      decimal.Decimal `json:"taxable"`
}

// Total sums growth across accounts
func (ag AccountGrowth) Total() decimal.Decimal {
	return ag.Traditional.Add(ag.Roth).Add(ag.MegaBackdoor).Add(ag.Taxable)
}

// Add returns the element-wise sum
func (ag AccountGrowth) Add(o AccountGrowth) AccountGrowth {
	return AccountGrowth{
		Traditional:  ag.Traditional.Add(o.Traditional),
		Roth:         ag.Roth.Add(o.Roth),
		MegaBackdoor: ag.MegaBackdoor.Add(o.MegaBackdoor),
		Taxable:      ag.Taxable.Add(o.Taxable),
	}
}

// SplitProjection is the full simulation for one Traditional split
type SplitProjection struct {
	Split     decimal.Decimal `json:"split"`
	Snapshots []YearSnapshot  `json:"snapshots"`

	TraditionalBalance  decimal.Decimal `json:"traditional_balance"`
	RothBalance         decimal.Decimal `json:"roth_balance"`
	MegaBackdoorBalance decimal.Decimal `json:"mega_backdoor_balance"`
	TaxableBalance      decimal.Decimal `json:"taxable_balance"`
	AfterTaxWealth      decimal.Decimal `json:"after_tax_wealth"`

	TotalContributions decimal.Decimal `json:"total_contributions"`
	TotalEmployerMatch decimal.Decimal `json:"total_employer_match"`
	TotalGrowth        AccountGrowth   `json:"total_growth"`
	ActualMegaBackdoor decimal.Decimal `json:"actual_mega_backdoor"` // first-year deposit after the take-home cap
}

// SplitPoint is one evaluation of the optimizer's search
type SplitPoint struct {
	Split          int             `json:"split"`
	AfterTaxWealth decimal.Decimal `json:"after_tax_wealth"`
}

// OptimizationResult is the optimizer's answer
type OptimizationResult struct {
	OptimalSplit        int             `json:"optimal_split"`
	OptimalAfterTax     decimal.Decimal `json:"optimal_after_tax"`
	Explanation         string          `json:"explanation"`
	BracketOptimalSplit int             `json:"bracket_optimal_split"`
	Curve               []SplitPoint    `json:"curve"`
}

// ProjectionSummary condenses the three projections and the optimizer result
type ProjectionSummary struct {
	Winner string          `json:"winner"`
	Margin decimal.Decimal `json:"margin"`

	TraditionalAfterTax decimal.Decimal `json:"traditional_after_tax"`
	RothAfterTax        decimal.Decimal `json:"roth_after_tax"`

	OptimalSplit         int             `json:"optimal_split"`
	OptimalAfterTax      decimal.Decimal `json:"optimal_after_tax"`
	CurrentSplit         decimal.Decimal `json:"current_split"`
	CurrentSplitAfterTax decimal.Decimal `json:"current_split_after_tax"`

	TraditionalFinalBalance  decimal.Decimal `json:"traditional_final_balance"`
	RothFinalBalance         decimal.Decimal `json:"roth_final_balance"`
	TaxableFinalBalance      decimal.Decimal `json:"taxable_final_balance"`
	MegaBackdoorFinalBalance decimal.Decimal `json:"mega_backdoor_final_balance"`
	ActualMegaBackdoor       decimal.Decimal `json:"actual_mega_backdoor"`

	TotalContributions     decimal.Decimal `json:"total_contributions"`
	TotalEmployerMatch     decimal.Decimal `json:"total_employer_match"`
	TotalGrowthTraditional decimal.Decimal `json:"total_growth_traditional"`
	TotalGrowthRoth        decimal.Decimal `json:"total_growth_roth"`

	BracketOptimalSplit int    `json:"bracket_optimal_split"`
	BracketExplanation  string `json:"bracket_explanation"`
}

// ComparisonResult is the complete response for one ScenarioInput
type ComparisonResult struct {
	Scenario                ScenarioInput      `json:"scenario"`
	PlanYear                int                `json:"plan_year"`
	Contribution            ContributionResult `json:"contribution"`
	TaxComparison           TaxComparison      `json:"tax_comparison"`
	Summary                 ProjectionSummary  `json:"projection_summary"`
	TraditionalProjections  []YearSnapshot     `json:"traditional_projections"`
	RothProjections         []YearSnapshot     `json:"roth_projections"`
	CurrentSplitProjections []YearSnapshot     `json:"current_split_projections"`
	SplitCurve              []SplitPoint       `json:"split_curve"`
	Crossover               *Crossover         `json:"crossover,omitempty"`
	Assumptions             []string           `json:"assumptions"`
}

// Crossover marks where the lead in after-tax wealth passes between the pure strategies
type Crossover struct {
	Year     int             `json:"year"`             // projection year in which the lead changes
	Fraction decimal.Decimal `json:"fraction_of_year"` // 0..1 into that year
	Age      decimal.Decimal `json:"age"`              // fractional age at the crossover
	Leader   string          `json:"leader"`           // strategy ahead afterwards
}

// Winner labels
const (
	WinnerTraditional = "Traditional 401(k)"
	WinnerRoth        = "Roth 401(k)"
)

// LimitsInfo is the standalone contribution limit lookup for a plan year
type LimitsInfo struct {
	Year             int             `json:"year"`
	BaseLimit        decimal.Decimal `json:"base_limit"`
	CatchUpLimit     decimal.Decimal `json:"catchup_limit"`
	CatchUpAge       int             `json:"catchup_age"`
	TotalWithCatchUp decimal.Decimal `json:"total_with_catchup"`
}
