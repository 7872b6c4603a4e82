package calculation

import (
	"math"

	"github.com/rpgo/rothtrad/internal/domain"
	"github.com/rpgo/rothtrad/pkg/money"
	"github.com/shopspring/decimal"
)

// AccountGrower applies one year of compound growth to an account balance
// under a contribution timing convention.
type AccountGrower struct {
	Rate   decimal.Decimal // annual return as a fraction
	Timing domain.ContributionTiming

	factor  decimal.Decimal // 1 + Rate
	monthly decimal.Decimal // future value of 1.00 paid in twelve monthly installments
}

// NewAccountGrower creates a grower for an annual return given in whole percent
func NewAccountGrower(returnPercent decimal.Decimal, timing domain.ContributionTiming) AccountGrower {
	rate := money.FromPercent(returnPercent)
	return AccountGrower{
		Rate:    rate,
		Timing:  timing,
		factor:  decimal.NewFromInt(1).Add(rate),
		monthly: decimal.NewFromFloat(monthlyContributionFactor(rate.InexactFloat64())),
	}
}

// monthlyContributionFactor is the year-end value of twelve equal deposits
// of 1/12 compounded at the monthly equivalent of annual rate r. The deposit
// in month m grows for 11-m months.
func monthlyContributionFactor(r float64) float64 {
	monthlyRate := math.Pow(1+r, 1.0/12) - 1
	total := 0.0
	for month := 0; month < 12; month++ {
		total += math.Pow(1+monthlyRate, float64(11-month)) / 12
	}
	return total
}

// Grow returns the year-end balance and the growth earned during the year.
// Balances are rounded to cents.
func (g AccountGrower) Grow(balance, contribution decimal.Decimal) (ending, growth decimal.Decimal) {
	switch g.Timing {
	case domain.TimingBeginning:
		ending = balance.Add(contribution).Mul(g.factor)
	case domain.TimingEnd:
		ending = balance.Mul(g.factor).Add(contribution)
	default:
		ending = balance.Mul(g.factor).Add(contribution.Mul(g.monthly))
	}
	ending = money.Round(ending)
	return ending, ending.Sub(balance).Sub(contribution)
}
