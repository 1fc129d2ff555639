// Package catalog defines the two-tier feature catalog: master operations
// (expensive computations producing named sub-results) and operations
// (cheap extractions of one scalar from a master's payload). Catalog
// entries are immutable once loaded.
package catalog

// Payload is the value set produced by one master evaluation: either a
// direct scalar or a named mapping of sub-results. Fields == nil means the
// master returns a direct scalar in Value. Values are complex128 at this
// boundary so outputs with an imaginary component survive to the quality
// classifier instead of being truncated.
type Payload struct {
	Value  complex128
	Fields map[string]complex128
}

// Scalar wraps a real direct output.
func Scalar(v float64) Payload {
	return Payload{Value: complex(v, 0)}
}

// ComplexScalar wraps a complex direct output.
func ComplexScalar(v complex128) Payload {
	return Payload{Value: v}
}

// Fields wraps a real-valued named mapping.
func Fields(m map[string]float64) Payload {
	out := make(map[string]complex128, len(m))
	for k, v := range m {
		out[k] = complex(v, 0)
	}
	return Payload{Fields: out}
}

// MasterFunc is the executable unit of a MasterOperation. It receives the
// raw series and its standardized companion and returns a payload or an
// error. Implementations are treated as black boxes; a panic inside one is
// contained by the evaluator.
type MasterFunc func(x, y []float64) (Payload, error)

// MasterOperation is one catalog entry for a shared, potentially expensive
// computation, evaluated at most once per series per run.
type MasterOperation struct {
	ID    int64
	Label string
	// FuncName is the registry name of the executable; it is what catalog
	// stores persist. Fn is the linked executable itself.
	FuncName string
	Fn       MasterFunc
}

// Operation is one catalog entry for a derived extraction. Field names the
// sub-result to pull from the owning master's payload; the empty string
// means the master's direct output.
type Operation struct {
	ID       int64
	Name     string
	MasterID int64
	Field    string
}
