// Package engine evaluates a feature catalog against one time series: it
// resolves which masters are needed, runs each exactly once (serially or
// fanned out across workers), then extracts and classifies every
// operation's scalar into a fixed-size feature vector.
package engine

import (
	"runtime"
	"sync"
	"time"

	"github.com/tsfeat/tsfeat/internal/catalog"
	"github.com/tsfeat/tsfeat/internal/monitoring"
	"github.com/tsfeat/tsfeat/internal/series"
)

// Config selects the execution mode for one run. Constructed once per run;
// the zero value is a valid serial, quiet configuration.
type Config struct {
	// Parallel fans master evaluation out across Workers goroutines.
	// Results are identical to serial execution; only wall time differs.
	Parallel bool
	// Workers is the fan-out width when Parallel is set. Zero or negative
	// means GOMAXPROCS. A width below 2 silently falls back to serial.
	Workers int
	// Verbose narrates progress through the monitoring logger. Never
	// affects semantics.
	Verbose bool
}

// Result holds the three parallel output arrays of a run, indexed exactly
// like the input operation list, plus the per-master outcomes.
type Result struct {
	// Values is the feature vector. Every slot is a finite real; failures
	// are encoded as 0 with a non-OK quality code.
	Values []float64
	// Quality classifies each slot of Values.
	Quality []Quality
	// CalcSeconds is the per-operation elapsed time attribution. NaN means
	// unknown.
	CalcSeconds []float64
	// Masters holds the completed outcome of each distinct master, in
	// first-reference order.
	Masters []MasterResult
}

// Run evaluates ops against s. The master catalog must contain every
// referenced master; a dangling or unlinked reference aborts with
// *CatalogCorruptError before any evaluation starts. Individual master or
// extraction failures never abort the run; they surface as quality codes.
func Run(cfg Config, s *series.Series, ops []catalog.Operation, masters []catalog.MasterOperation) (*Result, error) {
	x, y, err := series.Normalize(s)
	if err != nil {
		return nil, err
	}

	p, err := resolve(ops, masters)
	if err != nil {
		return nil, err
	}

	workers := 1
	if cfg.Parallel {
		workers = cfg.Workers
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		if workers > len(p.masters) && len(p.masters) > 0 {
			workers = len(p.masters)
		}
	}
	if workers < 2 {
		workers = 1
	}

	if cfg.Verbose {
		monitoring.Logf("engine: %s: %d operations over %d masters, %d worker(s)",
			x.Name, len(ops), len(p.masters), workers)
	}

	// Phase 1: evaluate each distinct master exactly once. Tasks share only
	// the read-only (x, y) pair and each writes its own result slot, so the
	// fan-out needs no locks. The phase joins fully, failures included,
	// before any operation is extracted.
	start := time.Now()
	results := make([]MasterResult, len(p.masters))
	fanOut(workers, len(p.masters), func(i int) {
		results[i] = evalMaster(p.masters[i], x.Data, y.Data)
	})

	if cfg.Verbose {
		var failed int
		for _, r := range results {
			if r.Err != nil {
				failed++
				monitoring.Logf("engine: %v", r.Err)
			}
		}
		monitoring.Logf("engine: master phase done in %s (%d/%d failed)",
			time.Since(start).Round(time.Microsecond), failed, len(results))
	}

	// Phase 2: extract and classify every operation from the completed,
	// read-only master results.
	out := &Result{
		Values:      make([]float64, len(ops)),
		Quality:     make([]Quality, len(ops)),
		CalcSeconds: make([]float64, len(ops)),
		Masters:     results,
	}
	for i := range out.CalcSeconds {
		out.CalcSeconds[i] = unknownTime
	}
	fanOut(workers, len(ops), func(i int) {
		mi := p.index[i]
		out.Values[i], out.Quality[i], out.CalcSeconds[i] = evalOperation(ops[i], p.masters[mi], results[mi])
	})

	return out, nil
}

// fanOut runs fn(0..n-1) across the given number of workers, joining before
// it returns. With one worker it degenerates to a plain loop so serial runs
// pay no scheduling cost.
func fanOut(workers, n int, fn func(i int)) {
	if workers < 2 || n < 2 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	tasks := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range tasks {
				fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		tasks <- i
	}
	close(tasks)
	wg.Wait()
}
