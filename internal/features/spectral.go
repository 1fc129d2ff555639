package features

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/tsfeat/tsfeat/internal/catalog"
)

// SpectralSummary computes the one-sided power spectrum of the standardized
// series and summarizes it: peak frequency, power-weighted centroid,
// normalized spectral entropy and total power. The DC bin is excluded:
// the standardized series is zero-mean, so it carries only rounding noise.
func SpectralSummary(_, y []float64) (catalog.Payload, error) {
	n := len(y)
	if n < 8 {
		return catalog.Payload{}, fmt.Errorf("need at least 8 samples, got %d", n)
	}

	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, y)

	// One-sided spectrum without the DC bin.
	power := make([]float64, len(coeff)-1)
	freq := make([]float64, len(coeff)-1)
	var total float64
	for i := 1; i < len(coeff); i++ {
		p := cmplx.Abs(coeff[i])
		p *= p
		power[i-1] = p
		freq[i-1] = fft.Freq(i)
		total += p
	}

	if total == 0 {
		// Flat spectrum (constant input). Everything downstream is NaN.
		return catalog.Fields(map[string]float64{
			"peak_freq":   math.NaN(),
			"centroid":    math.NaN(),
			"entropy":     math.NaN(),
			"total_power": 0,
		}), nil
	}

	var peak int
	var centroid, entropy float64
	for i, p := range power {
		if p > power[peak] {
			peak = i
		}
		rel := p / total
		centroid += rel * freq[i]
		if rel > 0 {
			entropy -= rel * math.Log(rel)
		}
	}
	entropy /= math.Log(float64(len(power)))

	return catalog.Fields(map[string]float64{
		"peak_freq":   freq[peak],
		"centroid":    centroid,
		"entropy":     entropy,
		"total_power": total,
	}), nil
}
