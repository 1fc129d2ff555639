// Package api exposes feature computation over HTTP: one endpoint to
// compute a vector for a posted series, and read access to persisted runs.
package api

import (
	"encoding/json"
	"math"
	"net/http"
	"sync"

	"github.com/tsfeat/tsfeat/internal/catalog"
	"github.com/tsfeat/tsfeat/internal/config"
	"github.com/tsfeat/tsfeat/internal/engine"
	"github.com/tsfeat/tsfeat/internal/series"
	storage "github.com/tsfeat/tsfeat/internal/storage/sqlite"
)

// Server serves feature computation requests against a fixed catalog. The
// run config may be swapped at runtime (config hot reload); swaps only
// affect execution mode, never the catalog.
type Server struct {
	mu      sync.RWMutex
	cfg     *config.RunConfig
	masters []catalog.MasterOperation
	ops     []catalog.Operation
	store   *storage.RunStore // nil disables persistence
}

// NewServer creates a Server for the given catalog. store may be nil.
func NewServer(cfg *config.RunConfig, masters []catalog.MasterOperation, ops []catalog.Operation, store *storage.RunStore) *Server {
	return &Server{cfg: cfg, masters: masters, ops: ops, store: store}
}

// SetConfig swaps the active run config. Safe to call while serving.
func (s *Server) SetConfig(cfg *config.RunConfig) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

func (s *Server) config() *config.RunConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// ServeMux returns the route table.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/features", s.computeHandler)
	mux.HandleFunc("/api/runs", s.listRunsHandler)
	mux.HandleFunc("/", s.homeHandler)
	return mux
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("tsfeat feature server"))
}

type computeRequest struct {
	Name     string    `json:"name"`
	ID       int64     `json:"id"`
	Data     []float64 `json:"data"`
	Parallel *bool     `json:"parallel,omitempty"`
	Persist  bool      `json:"persist,omitempty"`
}

type computeResponse struct {
	RunID       string     `json:"run_id,omitempty"`
	Names       []string   `json:"names"`
	Values      []float64  `json:"values"`
	Quality     []string   `json:"quality"`
	CalcSeconds []*float64 `json:"calc_seconds"`
}

func (s *Server) computeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		req.Name = "series"
	}

	cfg := s.config()
	runCfg := engine.Config{
		Parallel: cfg.GetParallel(),
		Workers:  cfg.GetWorkers(),
		Verbose:  cfg.GetVerbose(),
	}
	if req.Parallel != nil {
		runCfg.Parallel = *req.Parallel
	}

	in := &series.Series{Name: req.Name, ID: req.ID, Data: req.Data}
	res, err := engine.Run(runCfg, in, s.ops, s.masters)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := computeResponse{
		Names:       make([]string, len(s.ops)),
		Values:      res.Values,
		Quality:     make([]string, len(res.Quality)),
		CalcSeconds: make([]*float64, len(res.CalcSeconds)),
	}
	for i := range s.ops {
		resp.Names[i] = s.ops[i].Name
	}
	for i, q := range res.Quality {
		resp.Quality[i] = q.String()
	}
	// NaN is not valid JSON; unknown times serialize as null.
	for i, c := range res.CalcSeconds {
		if !math.IsNaN(c) {
			v := c
			resp.CalcSeconds[i] = &v
		}
	}

	if req.Persist && s.store != nil {
		rows := make([]storage.FeatureRow, len(s.ops))
		for i := range s.ops {
			rows[i] = storage.FeatureRow{
				OperationID: s.ops[i].ID,
				Name:        s.ops[i].Name,
				Value:       res.Values[i],
				Quality:     int(res.Quality[i]),
				CalcSeconds: res.CalcSeconds[i],
			}
		}
		runID, err := s.store.InsertRun(&storage.Run{
			SeriesName:   in.Name,
			SeriesID:     in.ID,
			SeriesLength: len(in.Data),
			Parallel:     runCfg.Parallel,
			Workers:      runCfg.Workers,
		}, rows)
		if err != nil {
			http.Error(w, "Failed to persist run: "+err.Error(), http.StatusInternalServerError)
			return
		}
		resp.RunID = runID
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) listRunsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.store == nil {
		http.Error(w, "Run persistence not configured", http.StatusNotFound)
		return
	}

	if runID := r.URL.Query().Get("run_id"); runID != "" {
		rows, err := s.store.FeaturesByRun(runID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeFeatureRows(w, rows)
		return
	}

	runs, err := s.store.ListRuns()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

// writeFeatureRows encodes feature rows, mapping NaN calc times to null.
func writeFeatureRows(w http.ResponseWriter, rows []storage.FeatureRow) {
	type row struct {
		OperationID int64    `json:"operation_id"`
		Name        string   `json:"name"`
		Value       float64  `json:"value"`
		Quality     int      `json:"quality"`
		CalcSeconds *float64 `json:"calc_seconds"`
	}
	out := make([]row, len(rows))
	for i, fr := range rows {
		out[i] = row{
			OperationID: fr.OperationID,
			Name:        fr.Name,
			Value:       fr.Value,
			Quality:     fr.Quality,
		}
		if !math.IsNaN(fr.CalcSeconds) {
			v := fr.CalcSeconds
			out[i].CalcSeconds = &v
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
