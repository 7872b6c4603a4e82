package output

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/rpgo/rothtrad/internal/domain"
)

// CSVSummarizer implements the year-by-year comparison CSV (one row per year).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ComparisonResult) ([]byte, error) {
	trad, roth, current := results.TraditionalProjections, results.RothProjections, results.CurrentSplitProjections
	if len(roth) != len(trad) || len(current) != len(trad) {
		return nil, fmt.Errorf("projection lengths differ: traditional=%d roth=%d current=%d", len(trad), len(roth), len(current))
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Age", "TraditionalAfterTax", "RothAfterTax", "Difference", "CurrentSplitAfterTax", "TraditionalTotalWealth", "RothTotalWealth", "TaxSavings"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i := range trad {
		t, r, cur := trad[i], roth[i], current[i]
		row := []string{
			intToString(t.Year),
			intToString(t.Age),
			t.AfterTaxWealth.StringFixed(2),
			r.AfterTaxWealth.StringFixed(2),
			t.AfterTaxWealth.Sub(r.AfterTaxWealth).StringFixed(2),
			cur.AfterTaxWealth.StringFixed(2),
			t.TotalWealth.StringFixed(2),
			r.TotalWealth.StringFixed(2),
			t.TaxSavings.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
