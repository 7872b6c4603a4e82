package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxBracket is one marginal bracket. A nil UpTo marks the unbounded top bracket.
type TaxBracket struct {
	UpTo *decimal.Decimal `yaml:"up_to,omitempty" json:"up_to,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// FederalTaxConfig holds the bracket schedules for one plan year
type FederalTaxConfig struct {
	StandardDeduction map[FilingStatus]decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	Brackets          map[FilingStatus][]TaxBracket    `yaml:"brackets" json:"brackets"`
}

// FICAConfig holds payroll tax parameters. Nothing here is inflation indexed;
// future years need their own entry.
type FICAConfig struct {
	SocialSecurityRate          decimal.Decimal                  `yaml:"social_security_rate" json:"social_security_rate"`
	SocialSecurityWageBase      decimal.Decimal                  `yaml:"social_security_wage_base" json:"social_security_wage_base"`
	MedicareRate                decimal.Decimal                  `yaml:"medicare_rate" json:"medicare_rate"`
	AdditionalMedicareRate      decimal.Decimal                  `yaml:"additional_medicare_rate" json:"additional_medicare_rate"`
	AdditionalMedicareThreshold map[FilingStatus]decimal.Decimal `yaml:"additional_medicare_threshold" json:"additional_medicare_threshold"`
}

// ContributionLimits are the employee elective deferral limits for a plan year
type ContributionLimits struct {
	Base       decimal.Decimal `yaml:"base" json:"base_limit"`
	CatchUp    decimal.Decimal `yaml:"catchup" json:"catchup_limit"`
	CatchUpAge int             `yaml:"catchup_age" json:"catchup_age"`
}

// TotalWithCatchUp is the limit for participants at or past the catch-up age
func (cl ContributionLimits) TotalWithCatchUp() decimal.Decimal {
	return cl.Base.Add(cl.CatchUp)
}

// TaxYear is the full reference data for one plan year
type TaxYear struct {
	Year               int                        `yaml:"-" json:"year"`
	Federal            FederalTaxConfig           `yaml:"federal" json:"federal"`
	FICA               FICAConfig                 `yaml:"fica" json:"fica"`
	ContributionLimits ContributionLimits         `yaml:"contribution_limits" json:"contribution_limits"`
	CapitalGainsRate   decimal.Decimal            `yaml:"capital_gains_rate" json:"capital_gains_rate"`
	StateRates         map[string]decimal.Decimal `yaml:"states" json:"states"`
}

// TaxTableSet is the versioned lookup of reference data keyed by plan year
type TaxTableSet struct {
	Years map[int]*TaxYear `yaml:"years" json:"years"`
}

// ForYear returns the tables for a plan year
func (ts *TaxTableSet) ForYear(year int) (*TaxYear, error) {
	if ts == nil {
		return nil, fmt.Errorf("%w: no tax tables loaded", ErrLimitLookupFailure)
	}
	ty, ok := ts.Years[year]
	if !ok {
		return nil, fmt.Errorf("%w: plan year %d not configured (available: %v)", ErrLimitLookupFailure, year, ts.AvailableYears())
	}
	return ty, nil
}

// AvailableYears lists configured plan years in ascending order
func (ts *TaxTableSet) AvailableYears() []int {
	years := make([]int, 0, len(ts.Years))
	for y := range ts.Years {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// StateRate looks up the flat income tax rate for a two-letter state code
func (ty *TaxYear) StateRate(code string) (decimal.Decimal, error) {
	rate, ok := ty.StateRates[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unknown state %q", ErrInvalidJurisdiction, code)
	}
	return rate, nil
}

// BracketsFor returns the bracket schedule for a filing status
func (ty *TaxYear) BracketsFor(status FilingStatus) ([]TaxBracket, error) {
	b, ok := ty.Federal.Brackets[status]
	if !ok || len(b) == 0 {
		return nil, fmt.Errorf("%w: unknown filing status %q", ErrInvalidJurisdiction, status)
	}
	return b, nil
}

// Validate checks bracket ordering and the presence of every lookup the
// calculators depend on.
func (ty *TaxYear) Validate() error {
	if len(ty.Federal.Brackets) == 0 {
		return fmt.Errorf("year %d: no federal brackets", ty.Year)
	}
	for status, brackets := range ty.Federal.Brackets {
		if err := validateBrackets(brackets); err != nil {
			return fmt.Errorf("year %d %s brackets: %w", ty.Year, status, err)
		}
		if _, ok := ty.FICA.AdditionalMedicareThreshold[status]; !ok {
			return fmt.Errorf("year %d: no additional Medicare threshold for %s", ty.Year, status)
		}
		if _, ok := ty.Federal.StandardDeduction[status]; !ok {
			return fmt.Errorf("year %d: no standard deduction for %s", ty.Year, status)
		}
	}
	if ty.FICA.SocialSecurityWageBase.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("year %d: social security wage base must be positive", ty.Year)
	}
	if ty.ContributionLimits.Base.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("year %d: base contribution limit must be positive", ty.Year)
	}
	if len(ty.StateRates) == 0 {
		return fmt.Errorf("year %d: no state rates", ty.Year)
	}
	for code, rate := range ty.StateRates {
		if rate.LessThan(decimal.Zero) || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("year %d: state %s rate %s out of range", ty.Year, code, rate)
		}
	}
	return nil
}

func validateBrackets(brackets []TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("empty schedule")
	}
	var prevUpTo, prevRate decimal.Decimal
	for i, b := range brackets {
		last := i == len(brackets)-1
		if b.UpTo == nil && !last {
			return fmt.Errorf("bracket %d is unbounded but not last", i)
		}
		if b.UpTo != nil && last {
			return fmt.Errorf("last bracket must be unbounded")
		}
		if b.UpTo != nil && i > 0 && !b.UpTo.GreaterThan(prevUpTo) {
			return fmt.Errorf("bracket %d bound %s not above %s", i, b.UpTo, prevUpTo)
		}
		if i > 0 && b.Rate.LessThan(prevRate) {
			return fmt.Errorf("bracket %d rate %s below previous %s", i, b.Rate, prevRate)
		}
		if b.UpTo != nil {
			prevUpTo = *b.UpTo
		}
		prevRate = b.Rate
	}
	return nil
}
