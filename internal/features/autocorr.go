package features

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/tsfeat/tsfeat/internal/catalog"
)

// maxACLag bounds the autocorrelation structure scan. Short series are
// scanned up to n-1.
const maxACLag = 20

// AutocorrelationStructure computes the autocorrelation function of the
// standardized series over the first lags and summarizes its shape: early
// coefficients, the first zero crossing, and the 1/e decay time.
//
// Lags with no zero crossing (or no decay below 1/e) within the scanned
// window report NaN, which the quality classifier surfaces as such.
func AutocorrelationStructure(_, y []float64) (catalog.Payload, error) {
	n := len(y)
	if n < 5 {
		return catalog.Payload{}, fmt.Errorf("need at least 5 samples, got %d", n)
	}

	maxLag := maxACLag
	if maxLag > n-1 {
		maxLag = n - 1
	}

	denom := floats.Dot(y, y)
	acf := make([]float64, maxLag+1)
	acf[0] = 1
	for k := 1; k <= maxLag; k++ {
		acf[k] = floats.Dot(y[:n-k], y[k:]) / denom
	}

	firstZero := math.NaN()
	for k := 1; k <= maxLag; k++ {
		if acf[k] <= 0 {
			firstZero = float64(k)
			break
		}
	}

	decayTime := math.NaN()
	for k := 1; k <= maxLag; k++ {
		if acf[k] < 1/math.E {
			decayTime = float64(k)
			break
		}
	}

	var sumAbs float64
	for k := 1; k <= maxLag && k <= 10; k++ {
		sumAbs += math.Abs(acf[k])
	}

	fields := map[string]float64{
		"ac1":        acf[1],
		"ac2":        acf[2],
		"ac3":        acf[3],
		"sum_abs_10": sumAbs,
		"first_zero": firstZero,
		"decay_time": decayTime,
	}
	return catalog.Fields(fields), nil
}
