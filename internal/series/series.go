// Package series holds the univariate time-series input model: ingest,
// shape validation, and the z-score standardization every feature run
// computes exactly once per series.
package series

import (
	"fmt"
	"math"
)

// Series is a single univariate time series with identity metadata.
// Data is always a single column; row-oriented input is transposed on
// ingest and anything genuinely multivariate is rejected.
type Series struct {
	Name string
	ID   int64
	Data []float64
}

// Standardized is the z-scored companion of a Series, derived once per run
// and never cached across series.
type Standardized struct {
	Name string
	ID   int64
	Data []float64
}

// ShapeError reports input that is neither a single column nor a single row.
type ShapeError struct {
	Rows, Cols int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("series must be a single row or column, got %dx%d", e.Rows, e.Cols)
}

// New creates a Series from a bare sample slice with defaulted identity
// metadata.
func New(data []float64) *Series {
	return &Series{Name: "series", ID: 0, Data: data}
}

// FromMatrix ingests a row- or column-oriented matrix as a Series. A single
// row is silently transposed into a column. Ragged or multivariate input
// fails with *ShapeError.
func FromMatrix(name string, id int64, m [][]float64) (*Series, error) {
	if len(m) == 0 {
		return nil, &ShapeError{Rows: 0, Cols: 0}
	}

	// Single row: transpose into a column.
	if len(m) == 1 {
		if len(m[0]) == 0 {
			return nil, &ShapeError{Rows: 1, Cols: 0}
		}
		data := make([]float64, len(m[0]))
		copy(data, m[0])
		return &Series{Name: name, ID: id, Data: data}, nil
	}

	// Multiple rows: acceptable only as a single column.
	data := make([]float64, len(m))
	for i, row := range m {
		if len(row) != 1 {
			return nil, &ShapeError{Rows: len(m), Cols: len(row)}
		}
		data[i] = row[0]
	}
	return &Series{Name: name, ID: id, Data: data}, nil
}

// Normalize validates s and produces the (raw, standardized) pair consumed
// by the evaluation engine. An empty series fails with *ShapeError.
func Normalize(s *Series) (*Series, *Standardized, error) {
	if s == nil || len(s.Data) == 0 {
		return nil, nil, &ShapeError{Rows: 0, Cols: 0}
	}
	return s, s.Standardize(), nil
}

// Standardize returns the z-scored series: subtract the mean, divide by the
// population standard deviation. The mean and deviation are computed inline
// rather than through a stats dependency so the transform is exactly the
// classical definition with no estimator surprises.
//
// A constant series has zero deviation; division then follows IEEE float
// semantics and every sample standardizes to NaN. That NaN propagates into
// downstream feature values, where the quality classifier reports it, so no
// guard is applied here.
func (s *Series) Standardize() *Standardized {
	n := float64(len(s.Data))

	var sum float64
	for _, v := range s.Data {
		sum += v
	}
	mean := sum / n

	var ss float64
	for _, v := range s.Data {
		d := v - mean
		ss += d * d
	}
	sd := math.Sqrt(ss / n)

	out := make([]float64, len(s.Data))
	for i, v := range s.Data {
		out[i] = (v - mean) / sd
	}
	return &Standardized{Name: s.Name, ID: s.ID, Data: out}
}
