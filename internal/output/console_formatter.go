package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/rothtrad/internal/domain"
)

// ConsoleFormatter renders the full comparison report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results *domain.ComparisonResult) ([]byte, error) {
	var buf bytes.Buffer
	s := results.Scenario
	sum := results.Summary

	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintf(&buf, "TRADITIONAL VS ROTH 401(K) COMPARISON (PLAN YEAR %d)\n", results.PlanYear)
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "SCENARIO")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "  Ages:                   %d to %d (%d years)\n", s.CurrentAge, s.RetirementAge, s.Years())
	fmt.Fprintf(&buf, "  Filing Status:          %s\n", s.FilingStatus)
	fmt.Fprintf(&buf, "  States:                 %s now, %s in retirement\n", s.CurrentState, s.RetirementState)
	fmt.Fprintf(&buf, "  Salary + Bonus:         %s\n", FormatCurrency(s.EligiblePay()))
	fmt.Fprintf(&buf, "  Expected Return:        %s%%\n", s.ExpectedReturn)
	fmt.Fprintf(&buf, "  Retirement Income:      %s\n", FormatCurrency(s.ExpectedRetirementIncome))
	fmt.Fprintln(&buf)

	contrib := results.Contribution
	fmt.Fprintln(&buf, "FIRST-YEAR CONTRIBUTIONS")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "  Employee:               %s\n", FormatCurrency(contrib.EmployeeContribution))
	fmt.Fprintf(&buf, "  Employer Match:         %s\n", FormatCurrency(contrib.EmployerMatch))
	fmt.Fprintf(&buf, "  Total:                  %s\n", FormatCurrency(contrib.TotalContribution))
	fmt.Fprintf(&buf, "  Employee Limit (%d):  %s\n", contrib.LimitYear, FormatCurrency(contrib.MaxEmployeeAllowed))
	if contrib.IsOverLimit {
		fmt.Fprintln(&buf, "  ** Requested contribution exceeds the limit **")
	}
	if s.MegaBackdoorContribution.IsPositive() {
		fmt.Fprintf(&buf, "  Mega Backdoor:          %s\n", FormatCurrency(sum.ActualMegaBackdoor))
	}
	fmt.Fprintln(&buf)

	writeTaxComparison(&buf, results.TaxComparison)

	fmt.Fprintln(&buf, "PROJECTED AFTER-TAX WEALTH AT RETIREMENT")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "  100%% Traditional:       %s\n", FormatCurrency(sum.TraditionalAfterTax))
	fmt.Fprintf(&buf, "  100%% Roth:              %s\n", FormatCurrency(sum.RothAfterTax))
	fmt.Fprintf(&buf, "  Your Split (%s):       %s\n", FormatSplit(sum.CurrentSplit), FormatCurrency(sum.CurrentSplitAfterTax))
	fmt.Fprintf(&buf, "  Optimal Split (%d%%):    %s\n", sum.OptimalSplit, FormatCurrency(sum.OptimalAfterTax))
	fmt.Fprintf(&buf, "  Winner:                 %s by %s\n", sum.Winner, FormatCurrency(sum.Margin))
	if x := results.Crossover; x != nil {
		fmt.Fprintf(&buf, "  Lead Change:            %s leads from age %s (year %d)\n", x.Leader, x.Age.StringFixed(1), x.Year)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "FINAL BALANCES (YOUR SPLIT)")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "  Traditional 401(k):     %s\n", FormatCurrency(sum.TraditionalFinalBalance))
	fmt.Fprintf(&buf, "  Roth 401(k):            %s\n", FormatCurrency(sum.RothFinalBalance))
	fmt.Fprintf(&buf, "  Mega Backdoor Roth:     %s\n", FormatCurrency(sum.MegaBackdoorFinalBalance))
	fmt.Fprintf(&buf, "  Taxable Brokerage:      %s\n", FormatCurrency(sum.TaxableFinalBalance))
	fmt.Fprintf(&buf, "  Contributions:          %s\n", FormatCurrency(sum.TotalContributions))
	fmt.Fprintf(&buf, "  Employer Match:         %s\n", FormatCurrency(sum.TotalEmployerMatch))
	fmt.Fprintln(&buf)

	writeYearTable(&buf, results)

	rec := AnalyzeComparison(results)
	fmt.Fprintln(&buf, "RECOMMENDATION")
	fmt.Fprintln(&buf, strings.Repeat("-", 40))
	fmt.Fprintf(&buf, "  %s (Δ %s / %s%%)\n", rec.Strategy, FormatCurrency(rec.Margin), rec.MarginPercent.StringFixed(2))
	fmt.Fprintf(&buf, "  Bracket rule: %s\n", sum.BracketExplanation)
	for _, n := range rec.Notes {
		fmt.Fprintf(&buf, "  • %s\n", n)
	}
	fmt.Fprintln(&buf)

	if len(results.Assumptions) > 0 {
		fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
		for _, a := range results.Assumptions {
			fmt.Fprintf(&buf, "• %s\n", a)
		}
	}
	return buf.Bytes(), nil
}

func writeTaxComparison(buf *bytes.Buffer, tc domain.TaxComparison) {
	fmt.Fprintln(buf, "CURRENT-YEAR TAXES")
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	fmt.Fprintf(buf, "  %-18s %16s %16s\n", "", "Traditional", "Roth")
	row := func(label string, trad, roth string) {
		fmt.Fprintf(buf, "  %-18s %16s %16s\n", label, trad, roth)
	}
	t, r := tc.CurrentTraditional, tc.CurrentRoth
	row("Taxable Income", FormatCurrency(t.TaxableIncome), FormatCurrency(r.TaxableIncome))
	row("Federal Tax", FormatCurrency(t.FederalTax), FormatCurrency(r.FederalTax))
	row("State Tax", FormatCurrency(t.StateTax), FormatCurrency(r.StateTax))
	row("FICA", FormatCurrency(t.FICATax), FormatCurrency(r.FICATax))
	row("Total Tax", FormatCurrency(t.TotalTax), FormatCurrency(r.TotalTax))
	row("Effective Rate", FormatPercentage(t.EffectiveRate), FormatPercentage(r.EffectiveRate))
	row("Marginal Rate", FormatPercentage(t.MarginalRate), FormatPercentage(r.MarginalRate))
	fmt.Fprintf(buf, "  Tax Savings This Year:  %s\n", FormatCurrency(tc.CurrentYearTaxSavings))
	fmt.Fprintf(buf, "  Retirement Tax Rate:    %s\n", FormatPercentage(tc.RetirementTaxRate))
	fmt.Fprintf(buf, "  Break-even Rate:        %s\n", FormatPercentage(tc.BreakEvenRate))
	fmt.Fprintln(buf)
}

// writeYearTable prints after-tax wealth for both pure strategies at five-year
// intervals and at the final year.
func writeYearTable(buf *bytes.Buffer, results *domain.ComparisonResult) {
	trad, roth := results.TraditionalProjections, results.RothProjections
	if len(trad) == 0 || len(trad) != len(roth) {
		return
	}
	fmt.Fprintln(buf, "YEAR-BY-YEAR AFTER-TAX WEALTH")
	fmt.Fprintln(buf, strings.Repeat("-", 40))
	fmt.Fprintf(buf, "  %4s %4s %16s %16s %14s\n", "Year", "Age", "Traditional", "Roth", "Difference")
	for i := range trad {
		if (i+1)%5 != 0 && i != len(trad)-1 {
			continue
		}
		t, r := trad[i], roth[i]
		fmt.Fprintf(buf, "  %4d %4d %16s %16s %14s\n", t.Year, t.Age,
			FormatCurrency(t.AfterTaxWealth), FormatCurrency(r.AfterTaxWealth),
			FormatCurrency(t.AfterTaxWealth.Sub(r.AfterTaxWealth)))
	}
	fmt.Fprintln(buf)
}

// ConsoleLiteFormatter provides a concise summary.
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(results *domain.ComparisonResult) ([]byte, error) {
	var buf bytes.Buffer
	sum := results.Summary
	fmt.Fprintln(&buf, "TRADITIONAL VS ROTH SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Traditional=%s Roth=%s\n", FormatCurrency(sum.TraditionalAfterTax), FormatCurrency(sum.RothAfterTax))
	fmt.Fprintf(&buf, "YourSplit=%s (%s) Optimal=%d%% (%s)\n",
		FormatSplit(sum.CurrentSplit), FormatCurrency(sum.CurrentSplitAfterTax),
		sum.OptimalSplit, FormatCurrency(sum.OptimalAfterTax))
	fmt.Fprintf(&buf, "TaxSavingsThisYear=%s RetirementRate=%s\n",
		FormatCurrency(results.TaxComparison.CurrentYearTaxSavings), FormatPercentage(results.TaxComparison.RetirementTaxRate))
	rec := AnalyzeComparison(results)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Recommended: %s (Δ %s / %s%%)\n", rec.Strategy, FormatCurrency(rec.Margin), rec.MarginPercent.StringFixed(2))
	return buf.Bytes(), nil
}
