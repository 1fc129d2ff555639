package engine

import "math"

// Quality classifies one operation's output. The stored feature value is
// the raw number only for QualityOK; every other code stores 0 so the
// feature vector is always fully populated with finite reals.
type Quality int

const (
	// QualityOK marks a finite real output.
	QualityOK Quality = iota
	// QualityFatal marks a failed evaluation (master failure or field
	// retrieval error). The numeric classifier is never consulted.
	QualityFatal
	// QualityNaN marks a NaN output.
	QualityNaN
	// QualityPosInf marks a +Inf output.
	QualityPosInf
	// QualityNegInf marks a -Inf output.
	QualityNegInf
	// QualityComplex marks an output with a non-zero imaginary component.
	QualityComplex
)

func (q Quality) String() string {
	switch q {
	case QualityOK:
		return "ok"
	case QualityFatal:
		return "fatal"
	case QualityNaN:
		return "nan"
	case QualityPosInf:
		return "+inf"
	case QualityNegInf:
		return "-inf"
	case QualityComplex:
		return "complex"
	default:
		return "unknown"
	}
}

// classify maps a raw output onto its stored value and quality code. The
// checks are ordered so exactly one applies: NaN in the real part wins over
// infinities, which win over a residual imaginary component.
func classify(v complex128) (float64, Quality) {
	re, im := real(v), imag(v)
	switch {
	case math.IsNaN(re) || math.IsNaN(im):
		return 0, QualityNaN
	case math.IsInf(re, 1):
		return 0, QualityPosInf
	case math.IsInf(re, -1):
		return 0, QualityNegInf
	case im != 0:
		return 0, QualityComplex
	default:
		return re, QualityOK
	}
}
