package features

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tsfeat/tsfeat/internal/catalog"
)

// HistogramEntropy bins the standardized series into sqrt(n) equal-width
// bins and reports the Shannon entropy of the bin occupancy, the entropy
// normalized by its maximum, and the modal bin fraction.
func HistogramEntropy(_, y []float64) (catalog.Payload, error) {
	n := len(y)
	if n < 4 {
		return catalog.Payload{}, fmt.Errorf("need at least 4 samples, got %d", n)
	}

	bins := int(math.Ceil(math.Sqrt(float64(n))))
	lo := floats.Min(y)
	hi := floats.Max(y)
	width := (hi - lo) / float64(bins)

	p := make([]float64, bins)
	if width == 0 || math.IsNaN(width) {
		// Degenerate spread: every sample lands in one bin (or the series
		// standardized to NaN). Entropy of a point mass is 0; NaN input
		// stays NaN through the fields below.
		p[0] = 1
		if math.IsNaN(width) {
			return catalog.Fields(map[string]float64{
				"entropy":       math.NaN(),
				"norm_entropy":  math.NaN(),
				"mode_fraction": math.NaN(),
			}), nil
		}
	} else {
		for _, v := range y {
			idx := int((v - lo) / width)
			if idx >= bins {
				idx = bins - 1
			}
			p[idx]++
		}
		for i := range p {
			p[i] /= float64(n)
		}
	}

	return catalog.Fields(map[string]float64{
		"entropy":       stat.Entropy(p),
		"norm_entropy":  stat.Entropy(p) / math.Log(float64(bins)),
		"mode_fraction": floats.Max(p),
	}), nil
}
