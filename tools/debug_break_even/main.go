// debug_break_even prints the year-by-year after-tax wealth of the pure
// Traditional and pure Roth strategies for a scenario file, followed by
// the point where the lead changes hands.
package main

import (
	"context"
	"fmt"
	"os"

	calc "github.com/rpgo/rothtrad/internal/calculation"
	"github.com/rpgo/rothtrad/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_break_even <scenario-file> [tax-tables-file]")
		return
	}
	scenario, err := config.NewInputParser().LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	tablesPath := ""
	if len(os.Args) > 2 {
		tablesPath = os.Args[2]
	}
	tables, err := config.LoadTables(tablesPath)
	if err != nil {
		panic(err)
	}

	res, err := calc.NewCalculationEngine(tables).Compare(context.Background(), *scenario)
	if err != nil {
		panic(err)
	}
	if len(res.TraditionalProjections) == 0 {
		fmt.Println("no projection data")
		return
	}

	fmt.Println("Year,Age,Trad_Balance,Trad_Taxable,Trad_AfterTax,Roth_Balance,Roth_Taxable,Roth_AfterTax,Diff")
	for i, trad := range res.TraditionalProjections {
		roth := res.RothProjections[i]
		fmt.Printf("%d,%d,%s,%s,%s,%s,%s,%s,%s\n", trad.Year, trad.Age,
			trad.Balance401k().StringFixed(0), trad.TaxableBalance.StringFixed(0), trad.AfterTaxWealth.StringFixed(0),
			roth.Balance401k().StringFixed(0), roth.TaxableBalance.StringFixed(0), roth.AfterTaxWealth.StringFixed(0),
			trad.AfterTaxWealth.Sub(roth.AfterTaxWealth).StringFixed(0))
	}

	crossover, err := calc.FindCrossover(res.TraditionalProjections, res.RothProjections)
	fmt.Printf("\nCrossover: %+v, err=%v\n", crossover, err)
}
