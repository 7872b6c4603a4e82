package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/rothtrad/internal/domain"
)

// CSVDetailedExporter provides every snapshot field per strategy/year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ComparisonResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Strategy", "Year", "Age",
		"EmployeeContribution", "EmployerMatch", "MegaBackdoorDeposit", "TaxSavings", "TaxableDeposit",
		"TraditionalBalance", "RothBalance", "MegaBackdoorBalance", "TaxableBalance", "TaxableBasis",
		"CumulativeContributions", "CumulativeEmployerMatch", "CumulativeGrowth",
		"TotalWealth", "AfterTaxWealth",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	paths := []struct {
		name  string
		years []domain.YearSnapshot
	}{
		{"traditional", results.TraditionalProjections},
		{"roth", results.RothProjections},
		{"current_split", results.CurrentSplitProjections},
	}
	for _, p := range paths {
		for _, yr := range p.years {
			row := []string{
				p.name,
				intToString(yr.Year),
				intToString(yr.Age),
				yr.EmployeeContribution.StringFixed(2),
				yr.EmployerMatch.StringFixed(2),
				yr.MegaBackdoorDeposit.StringFixed(2),
				yr.TaxSavings.StringFixed(2),
				yr.TaxableDeposit.StringFixed(2),
				yr.TraditionalBalance.StringFixed(2),
				yr.RothBalance.StringFixed(2),
				yr.MegaBackdoorBalance.StringFixed(2),
				yr.TaxableBalance.StringFixed(2),
				yr.TaxableBasis.StringFixed(2),
				yr.CumulativeContributions.StringFixed(2),
				yr.CumulativeEmployerMatch.StringFixed(2),
				yr.CumulativeGrowth.Total().StringFixed(2),
				yr.TotalWealth.StringFixed(2),
				yr.AfterTaxWealth.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// CSVCurveExporter writes the optimizer's split curve for charting.
type CSVCurveExporter struct{}

func (c CSVCurveExporter) Name() string { return "curve-csv" }

func (c CSVCurveExporter) Format(results *domain.ComparisonResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"TraditionalSplit", "AfterTaxWealth", "Optimal"}); err != nil {
		return nil, err
	}
	for _, p := range results.SplitCurve {
		row := []string{
			intToString(p.Split),
			p.AfterTaxWealth.StringFixed(2),
			boolToString(p.Split == results.Summary.OptimalSplit),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
