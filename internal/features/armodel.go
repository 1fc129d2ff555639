package features

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/tsfeat/tsfeat/internal/catalog"
)

// ARModelFit fits an AR(2) model y[t] = a1*y[t-1] + a2*y[t-2] + e to the
// standardized series by least squares and reports the coefficients, the
// residual variance and the fraction of variance explained.
func ARModelFit(_, y []float64) (catalog.Payload, error) {
	n := len(y)
	if n < 10 {
		return catalog.Payload{}, fmt.Errorf("need at least 10 samples, got %d", n)
	}

	rows := n - 2
	a := mat.NewDense(rows, 2, nil)
	b := mat.NewVecDense(rows, nil)
	for t := 2; t < n; t++ {
		a.Set(t-2, 0, y[t-1])
		a.Set(t-2, 1, y[t-2])
		b.SetVec(t-2, y[t])
	}

	var beta mat.VecDense
	if err := beta.SolveVec(a, b); err != nil {
		return catalog.Payload{}, fmt.Errorf("least squares solve: %w", err)
	}
	a1 := beta.AtVec(0)
	a2 := beta.AtVec(1)

	var ssRes float64
	for t := 2; t < n; t++ {
		r := y[t] - a1*y[t-1] - a2*y[t-2]
		ssRes += r * r
	}
	residVar := ssRes / float64(rows)

	// y is z-scored so its population variance is 1, but compute it from the
	// fitted window for correctness on short series.
	yVar := stat.Variance(y[2:], nil)
	r2 := 1 - residVar/yVar

	return catalog.Fields(map[string]float64{
		"a1":        a1,
		"a2":        a2,
		"resid_var": residVar,
		"r2":        r2,
	}), nil
}
