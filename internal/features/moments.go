package features

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/tsfeat/tsfeat/internal/catalog"
)

// DistributionMoments summarizes the raw sample distribution: location,
// spread, shape and quartile structure. Operates on the raw series so
// location and scale survive.
func DistributionMoments(x, _ []float64) (catalog.Payload, error) {
	if len(x) < 2 {
		return catalog.Payload{}, fmt.Errorf("need at least 2 samples, got %d", len(x))
	}

	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	mean := stat.Mean(x, nil)
	sd := stat.StdDev(x, nil)
	q1 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	q3 := stat.Quantile(0.75, stat.Empirical, sorted, nil)

	return catalog.Fields(map[string]float64{
		"mean":     mean,
		"std":      sd,
		"skew":     stat.Skew(x, nil),
		"kurtosis": stat.ExKurtosis(x, nil),
		"min":      sorted[0],
		"max":      sorted[len(sorted)-1],
		"median":   stat.Quantile(0.5, stat.Empirical, sorted, nil),
		"iqr":      q3 - q1,
		"range":    sorted[len(sorted)-1] - sorted[0],
	}), nil
}

// MeanAbsChange is a direct-scalar master: the mean absolute first
// difference of the raw series. Exercises the empty-field extraction path.
func MeanAbsChange(x, _ []float64) (catalog.Payload, error) {
	if len(x) < 2 {
		return catalog.Payload{}, fmt.Errorf("need at least 2 samples, got %d", len(x))
	}
	var sum float64
	for i := 1; i < len(x); i++ {
		d := x[i] - x[i-1]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return catalog.Scalar(sum / float64(len(x)-1)), nil
}
