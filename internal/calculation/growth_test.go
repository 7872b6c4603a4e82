package calculation

import (
	"math"
	"testing"

	"github.com/rpgo/rothtrad/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountGrower_Timing(t *testing.T) {
	tests := []struct {
		timing domain.ContributionTiming
		ending decimal.Decimal
		growth decimal.Decimal
	}{
		{domain.TimingBeginning, dec(12100), dec(1100)},
		{domain.TimingEnd, dec(12000), dec(1000)},
	}
	for _, tt := range tests {
		t.Run(string(tt.timing), func(t *testing.T) {
			g := NewAccountGrower(dec(10), tt.timing)
			ending, growth := g.Grow(dec(10000), dec(1000))
			assertDecimal(t, tt.ending, ending)
			assertDecimal(t, tt.growth, growth)
		})
	}
}

func TestAccountGrower_MonthlyBetweenEndAndBeginning(t *testing.T) {
	begin, _ := NewAccountGrower(dec(7), domain.TimingBeginning).Grow(dec(5000), dec(12000))
	end, _ := NewAccountGrower(dec(7), domain.TimingEnd).Grow(dec(5000), dec(12000))
	monthly, growth := NewAccountGrower(dec(7), domain.TimingMonthly).Grow(dec(5000), dec(12000))

	assert.True(t, monthly.GreaterThan(end))
	assert.True(t, monthly.LessThan(begin))
	assert.True(t, growth.IsPositive())
}

func TestAccountGrower_ZeroReturn(t *testing.T) {
	for _, timing := range []domain.ContributionTiming{domain.TimingBeginning, domain.TimingEnd, domain.TimingMonthly} {
		ending, growth := NewAccountGrower(decimal.Zero, timing).Grow(dec(2500), dec(1200))
		assertDecimal(t, dec(3700), ending, timing)
		assert.True(t, growth.IsZero(), "timing %s", timing)
	}
}

func TestMonthlyContributionFactor(t *testing.T) {
	assert.InDelta(t, 1.0, monthlyContributionFactor(0), 1e-12)

	// closed form: annuity-immediate of twelve 1/12 payments
	r := 0.12
	mr := math.Pow(1+r, 1.0/12) - 1
	expected := (math.Pow(1+mr, 12) - 1) / mr / 12
	assert.InDelta(t, expected, monthlyContributionFactor(r), 1e-12)
}
