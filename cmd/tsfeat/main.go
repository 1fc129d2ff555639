// Command tsfeat computes a feature vector for a time series, either as a
// one-shot CLI run or as an HTTP service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tsfeat/tsfeat/internal/api"
	"github.com/tsfeat/tsfeat/internal/catalog"
	"github.com/tsfeat/tsfeat/internal/config"
	"github.com/tsfeat/tsfeat/internal/engine"
	"github.com/tsfeat/tsfeat/internal/features"
	"github.com/tsfeat/tsfeat/internal/report"
	"github.com/tsfeat/tsfeat/internal/series"
	storage "github.com/tsfeat/tsfeat/internal/storage/sqlite"
)

var (
	inputPath   = flag.String("input", "", "CSV file with the input series (one row or one column)")
	seriesName  = flag.String("name", "", "Series name (defaults to the input filename)")
	configPath  = flag.String("config", "", "Run config JSON file")
	catalogPath = flag.String("catalog", "", "Catalog database (empty = built-in catalog)")
	initCatalog = flag.Bool("init-catalog", false, "Seed the built-in catalog into -catalog and exit")
	dbPath      = flag.String("db", "", "Results database (empty = no persistence)")
	migrations  = flag.String("migrations", config.DefaultMigrations, "Migrations directory for the results database")
	parallel    = flag.Bool("parallel", config.DefaultParallel, "Fan master evaluation out across workers")
	workers     = flag.Int("workers", config.DefaultWorkers, "Worker count for -parallel (0 = GOMAXPROCS)")
	verbose     = flag.Bool("verbose", config.DefaultVerbose, "Narrate engine progress")
	reportPath  = flag.String("report", "", "Write an HTML quality report to this path")
	plotPath    = flag.String("plot", "", "Write a PNG plot of the series to this path")
	serve       = flag.Bool("serve", false, "Run the HTTP feature server")
	listen      = flag.String("listen", config.DefaultListen, "Listen address for -serve")
)

func main() {
	flag.Parse()

	cfg := &config.RunConfig{}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}
	applyFlagOverrides(cfg)

	masters, ops, err := loadCatalog(*catalogPath)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	if *initCatalog {
		if *catalogPath == "" {
			log.Fatal("-init-catalog requires -catalog")
		}
		if err := seedCatalog(*catalogPath); err != nil {
			log.Fatalf("seed catalog: %v", err)
		}
		log.Printf("seeded built-in catalog into %s", *catalogPath)
		return
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("open results database: %v", err)
	}

	if *serve {
		runServer(cfg, masters, ops, store)
		return
	}

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: tsfeat -input series.csv [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	runOnce(cfg, masters, ops, store)
}

// applyFlagOverrides copies explicitly-set flags over the loaded config, so
// the precedence is: flag > config file > default.
func applyFlagOverrides(cfg *config.RunConfig) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "parallel":
			cfg.Parallel = parallel
		case "workers":
			cfg.Workers = workers
		case "verbose":
			cfg.Verbose = verbose
		case "catalog":
			cfg.CatalogDB = catalogPath
		case "db":
			cfg.ResultsDB = dbPath
		case "migrations":
			cfg.Migrations = migrations
		case "listen":
			cfg.Listen = listen
		}
	})
}

func loadCatalog(path string) ([]catalog.MasterOperation, []catalog.Operation, error) {
	if path == "" {
		masters, ops := features.DefaultCatalog()
		return masters, ops, nil
	}
	cs, err := catalog.OpenStore(path)
	if err != nil {
		return nil, nil, err
	}
	defer cs.Close()

	masters, err := cs.LoadMasterOperations()
	if err != nil {
		return nil, nil, err
	}
	ops, err := cs.LoadOperations()
	if err != nil {
		return nil, nil, err
	}
	return masters, ops, nil
}

func seedCatalog(path string) error {
	cs, err := catalog.OpenStore(path)
	if err != nil {
		return err
	}
	defer cs.Close()
	masters, ops := features.DefaultCatalog()
	return cs.Seed(masters, ops)
}

func openStore(cfg *config.RunConfig) (*storage.RunStore, error) {
	path := cfg.GetResultsDB()
	if path == "" {
		return nil, nil
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, err
	}
	if err := storage.MigrateUp(db, cfg.GetMigrations()); err != nil {
		return nil, err
	}
	return storage.NewRunStore(db), nil
}

func runServer(cfg *config.RunConfig, masters []catalog.MasterOperation, ops []catalog.Operation, store *storage.RunStore) {
	srv := api.NewServer(cfg, masters, ops, store)

	if *configPath != "" {
		go func() {
			err := config.Watch(context.Background(), *configPath, srv.SetConfig)
			if err != nil {
				log.Printf("config watch disabled: %v", err)
			}
		}()
	}

	addr := cfg.GetListen()
	log.Printf("tsfeat serving on %s (%d operations, %d masters)", addr, len(ops), len(masters))
	if err := http.ListenAndServe(addr, srv.ServeMux()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runOnce(cfg *config.RunConfig, masters []catalog.MasterOperation, ops []catalog.Operation, store *storage.RunStore) {
	s, err := loadSeries(*inputPath, *seriesName)
	if err != nil {
		log.Fatalf("load series: %v", err)
	}

	res, err := engine.Run(engine.Config{
		Parallel: cfg.GetParallel(),
		Workers:  cfg.GetWorkers(),
		Verbose:  cfg.GetVerbose(),
	}, s, ops, masters)
	if err != nil {
		log.Fatalf("run: %v", err)
	}

	printResults(ops, res)

	if store != nil {
		rows := make([]storage.FeatureRow, len(ops))
		for i := range ops {
			rows[i] = storage.FeatureRow{
				OperationID: ops[i].ID,
				Name:        ops[i].Name,
				Value:       res.Values[i],
				Quality:     int(res.Quality[i]),
				CalcSeconds: res.CalcSeconds[i],
			}
		}
		runID, err := store.InsertRun(&storage.Run{
			SeriesName:   s.Name,
			SeriesID:     s.ID,
			SeriesLength: len(s.Data),
			Parallel:     cfg.GetParallel(),
			Workers:      cfg.GetWorkers(),
		}, rows)
		if err != nil {
			log.Fatalf("persist run: %v", err)
		}
		log.Printf("persisted run %s", runID)
	}

	if *reportPath != "" {
		f, err := os.Create(*reportPath)
		if err != nil {
			log.Fatalf("create report: %v", err)
		}
		if err := report.WriteHTML(f, s.Name, ops, res); err != nil {
			log.Fatalf("write report: %v", err)
		}
		f.Close()
		log.Printf("wrote report to %s", *reportPath)
	}

	if *plotPath != "" {
		if err := report.SaveSeriesPlot(*plotPath, s, s.Standardize()); err != nil {
			log.Fatalf("write plot: %v", err)
		}
		log.Printf("wrote plot to %s", *plotPath)
	}
}

// loadSeries reads a CSV file holding one row or one column of numbers.
func loadSeries(path, name string) (*series.Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var matrix [][]float64
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var row []float64
		for _, cell := range strings.Split(line, ",") {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("parse %q: %w", cell, err)
			}
			row = append(row, v)
		}
		if len(row) > 0 {
			matrix = append(matrix, row)
		}
	}

	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return series.FromMatrix(name, 0, matrix)
}

func printResults(ops []catalog.Operation, res *engine.Result) {
	fmt.Printf("%-24s %14s %9s %12s\n", "operation", "value", "quality", "calc_time")
	for i := range ops {
		calc := "unknown"
		if !math.IsNaN(res.CalcSeconds[i]) {
			calc = fmt.Sprintf("%.6fs", res.CalcSeconds[i])
		}
		fmt.Printf("%-24s %14.6g %9s %12s\n",
			ops[i].Name, res.Values[i], res.Quality[i], calc)
	}
}
