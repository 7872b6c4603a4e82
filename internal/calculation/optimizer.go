package calculation

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rpgo/rothtrad/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// MaxSplit is the upper end of the split search; splits are whole percents
const MaxSplit = 100

// SplitEvaluator returns terminal after-tax wealth for a Traditional split.
// It must be safe for concurrent use.
type SplitEvaluator func(ctx context.Context, split int) (decimal.Decimal, error)

// Optimizer searches every whole-percent split for the highest terminal
// after-tax wealth.
type Optimizer struct {
	Workers int
	Logger  Logger
}

// NewOptimizer creates an optimizer running at most workers evaluations at
// once. Non-positive workers uses GOMAXPROCS.
func NewOptimizer(workers int) *Optimizer {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Optimizer{Workers: workers, Logger: NopLogger{}}
}

// FindOptimalSplit evaluates splits 0..100 concurrently and reduces them in
// ascending order with a strict comparison, so ties go to the lowest split.
// Explanation and BracketOptimalSplit are left for the caller.
func (o *Optimizer) FindOptimalSplit(ctx context.Context, eval SplitEvaluator) (domain.OptimizationResult, error) {
	values := make([]decimal.Decimal, MaxSplit+1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Workers)
	for split := 0; split <= MaxSplit; split++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := eval(gctx, split)
			if err != nil {
				return fmt.Errorf("split %d: %w", split, err)
			}
			values[split] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.OptimizationResult{}, err
	}

	result := domain.OptimizationResult{
		OptimalSplit:    0,
		OptimalAfterTax: values[0],
		Curve:           make([]domain.SplitPoint, 0, MaxSplit+1),
	}
	for split, v := range values {
		result.Curve = append(result.Curve, domain.SplitPoint{Split: split, AfterTaxWealth: v})
		if v.GreaterThan(result.OptimalAfterTax) {
			result.OptimalSplit = split
			result.OptimalAfterTax = v
		}
	}
	o.Logger.Debugf("optimal split %d%% after-tax %s (workers=%d)", result.OptimalSplit, result.OptimalAfterTax.StringFixed(2), o.Workers)
	return result, nil
}
