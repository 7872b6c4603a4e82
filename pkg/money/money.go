// Package money holds the rounding, percent and currency helpers shared by
// the calculators and formatters.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round rounds an amount to cents
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// RoundRate rounds a rate to four places (basis-point hundredths)
func RoundRate(d decimal.Decimal) decimal.Decimal {
	return d.Round(4)
}

// FromPercent converts a whole percent (7) into a rate (0.07)
func FromPercent(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred)
}

// ToPercent converts a rate (0.07) into a whole percent (7)
func ToPercent(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(hundred)
}

// NonNegative clamps negative amounts to zero
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Format renders an amount as $1,234.56
func Format(d decimal.Decimal) string {
	return formatWithPlaces(d, 2)
}

// FormatWhole renders an amount as $1,235
func FormatWhole(d decimal.Decimal) string {
	return formatWithPlaces(d, 0)
}

// FormatRate renders a rate (0.2215) as 22.15%
func FormatRate(rate decimal.Decimal) string {
	return ToPercent(rate).StringFixed(2) + "%"
}

func formatWithPlaces(d decimal.Decimal, places int32) string {
	s := d.Abs().StringFixed(places)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	if d.IsNegative() && !d.Round(places).IsZero() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}
