package engine

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/tsfeat/tsfeat/internal/catalog"
	"github.com/tsfeat/tsfeat/internal/monitoring"
)

// MasterResult is the outcome of evaluating one master operation: a payload
// or a failure, plus the elapsed wall time of that single attempt. Produced
// by the master phase, read-only afterwards.
type MasterResult struct {
	Payload catalog.Payload
	Err     error
	Elapsed time.Duration
}

// evalMaster invokes one master with the shared (x, y) pair. A panic inside
// the callable is captured as a failure marker so one bad master never
// unwinds the phase.
func evalMaster(m catalog.MasterOperation, x, y []float64) (res MasterResult) {
	start := time.Now()
	defer func() {
		res.Elapsed = time.Since(start)
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("master %q panicked: %v", m.Label, r)
		}
	}()

	payload, err := m.Fn(x, y)
	if err != nil {
		res.Err = fmt.Errorf("master %q: %w", m.Label, err)
		return res
	}
	res.Payload = payload
	return res
}

// evalOperation extracts and classifies one operation's scalar from its
// master's completed result.
//
// Cost attribution: a failed master already carries its own recorded
// attempt, so its dependents report 0. Dependents of a successful master
// all report the master's elapsed time uniformly: derived extractions are
// free, the cost was paid once by the master.
func evalOperation(op catalog.Operation, master catalog.MasterOperation, mr MasterResult) (value float64, q Quality, calcSeconds float64) {
	if mr.Err != nil {
		return 0, QualityFatal, 0
	}

	raw, err := extract(op, master, mr.Payload)
	if err != nil {
		// Retrieval failure: a catalog/label mismatch, not a numeric
		// outcome. Logged so mismatches are visible, scored as fatal.
		monitoring.Logf("engine: %v", err)
		return 0, QualityFatal, mr.Elapsed.Seconds()
	}

	value, q = classify(raw)
	return value, q, mr.Elapsed.Seconds()
}

// extract pulls the operation's scalar from a successful payload. An empty
// field means the master's direct output; anything else is a lookup into
// the named sub-results.
func extract(op catalog.Operation, master catalog.MasterOperation, p catalog.Payload) (complex128, error) {
	if op.Field == "" {
		if p.Fields != nil {
			return 0, &FieldMissingError{OperationID: op.ID, Field: "", MasterLabel: master.Label}
		}
		return p.Value, nil
	}
	if p.Fields == nil {
		return 0, &FieldMissingError{OperationID: op.ID, Field: op.Field, MasterLabel: master.Label}
	}
	v, ok := p.Fields[op.Field]
	if !ok {
		return 0, &FieldMissingError{OperationID: op.ID, Field: op.Field, MasterLabel: master.Label}
	}
	return v, nil
}

// IsRetrievalError reports whether err is a field-extraction failure as
// opposed to a computation failure.
func IsRetrievalError(err error) bool {
	var fm *FieldMissingError
	return errors.As(err, &fm)
}

// unknownTime is the CalcTime sentinel for an operation whose cost could
// not be attributed to a single timed step.
var unknownTime = math.NaN()
