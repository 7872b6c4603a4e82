package calculation

import (
	"fmt"

	"github.com/rpgo/rothtrad/internal/domain"
	"github.com/shopspring/decimal"
)

// FindCrossover finds the first year in which the lead in after-tax wealth
// passes from one pure strategy to the other. Projections must be aligned by
// year. The crossover point inside the year is found by linear interpolation
// of the wealth difference. If the lead never changes, it returns nil, nil.
func FindCrossover(traditional, roth []domain.YearSnapshot) (*domain.Crossover, error) {
	if len(traditional) == 0 || len(roth) == 0 {
		return nil, fmt.Errorf("one or both projections are empty")
	}

	n := len(traditional)
	if len(roth) < n {
		n = len(roth)
	}

	one := decimal.NewFromInt(1)
	var prevDiff decimal.Decimal
	lastSign := 0
	for i := 0; i < n; i++ {
		currDiff := traditional[i].AfterTaxWealth.Sub(roth[i].AfterTaxWealth)
		sign := currDiff.Sign()

		if sign != 0 && lastSign != 0 && sign != lastSign {
			// diff(t) = prevDiff + t*(currDiff - prevDiff); solve diff(t) = 0
			t := prevDiff.Neg().Div(currDiff.Sub(prevDiff))
			if t.IsNegative() {
				t = decimal.Zero
			} else if t.GreaterThan(one) {
				t = one
			}

			leader := domain.WinnerRoth
			if sign > 0 {
				leader = domain.WinnerTraditional
			}
			startAge := decimal.NewFromInt(int64(traditional[i].Age - 1))
			return &domain.Crossover{
				Year:     traditional[i].Year,
				Fraction: t.Round(4),
				Age:      startAge.Add(t).Round(2),
				Leader:   leader,
			}, nil
		}

		if sign != 0 {
			lastSign = sign
		}
		prevDiff = currDiff
	}

	return nil, nil
}
