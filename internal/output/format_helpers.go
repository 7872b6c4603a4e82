package output

import (
	"strconv"

	"github.com/rpgo/rothtrad/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as USD currency with 2 decimals and thousands separators.
func FormatCurrency(amount decimal.Decimal) string { return money.Format(amount) }

// FormatPercentage formats a fractional rate (0.22) as a percentage with 2 decimals.
func FormatPercentage(rate decimal.Decimal) string { return money.FormatRate(rate) }

// FormatSplit formats a whole-percent Traditional split.
func FormatSplit(split decimal.Decimal) string { return split.String() + "%" }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
