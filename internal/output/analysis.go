package output

import (
	"fmt"

	"github.com/rpgo/rothtrad/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation condenses a comparison into the advice shown to the user.
type Recommendation struct {
	Strategy      string
	Margin        decimal.Decimal
	MarginPercent decimal.Decimal // margin relative to the losing strategy, in whole percent
	OptimalSplit  int
	SplitGain     decimal.Decimal // optimal split after-tax minus the user's split
	Notes         []string
}

// AnalyzeComparison derives the recommendation and supporting notes from a
// comparison result. Extracted from the console formatters for testability.
func AnalyzeComparison(results *domain.ComparisonResult) Recommendation {
	s := results.Summary
	rec := Recommendation{
		Strategy:     s.Winner,
		Margin:       s.Margin,
		OptimalSplit: s.OptimalSplit,
		SplitGain:    s.OptimalAfterTax.Sub(s.CurrentSplitAfterTax),
	}

	loser := s.RothAfterTax
	if s.Winner == domain.WinnerRoth {
		loser = s.TraditionalAfterTax
	}
	if loser.IsPositive() {
		rec.MarginPercent = s.Margin.Div(loser).Mul(decimal.NewFromInt(100)).Round(2)
	}

	if rec.SplitGain.IsPositive() {
		rec.Notes = append(rec.Notes, fmt.Sprintf("Moving from %s to %d%% Traditional adds %s after tax",
			FormatSplit(s.CurrentSplit), s.OptimalSplit, FormatCurrency(rec.SplitGain)))
	} else {
		rec.Notes = append(rec.Notes, fmt.Sprintf("Your %s Traditional split already reaches the best after-tax result found",
			FormatSplit(s.CurrentSplit)))
	}

	if s.BracketOptimalSplit != s.OptimalSplit {
		rec.Notes = append(rec.Notes, fmt.Sprintf("Bracket rule suggests %d%% Traditional; the full projection favors %d%%",
			s.BracketOptimalSplit, s.OptimalSplit))
	}

	c := results.Contribution
	if c.IsOverLimit {
		rec.Notes = append(rec.Notes, fmt.Sprintf("Requested contribution exceeds the %s limit for %d; only the limit is deferred",
			FormatCurrency(c.MaxEmployeeAllowed), c.LimitYear))
	}

	requested := results.Scenario.MegaBackdoorContribution
	if requested.IsPositive() && s.ActualMegaBackdoor.LessThan(requested) {
		rec.Notes = append(rec.Notes, fmt.Sprintf("Mega backdoor capped at take-home pay: %s of %s requested",
			FormatCurrency(s.ActualMegaBackdoor), FormatCurrency(requested)))
	}

	return rec
}
