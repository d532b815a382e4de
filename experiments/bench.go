package experiments

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mcsat/dimacs"
	"mcsat/engine"
	"mcsat/experiments/metrics"
	"mcsat/meta"
	"mcsat/sat"
	"mcsat/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	Dir       string
	Algorithm engine.Algorithm
	// Runs is the number of runs per file. Run r uses seed Seed+r.
	Runs       int
	Seed       uint64
	Goroutines int
	// OutputDir receives bench/<timestamp>/run_records.csv.
	OutputDir string
	// Textfile, when set, receives the run metrics in Prometheus text format.
	Textfile string
	// Engine defaults to the local engine.
	Engine  engine.Engine
	Options []searcher.Option
}

type Report struct {
	Dir     string
	Records []metrics.RunRecord
}

// Files lists the instance files of dir in name order.
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	var files []string
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".cnf" && ext != ".wcnf") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	slices.Sort(files)
	return files, nil
}

// Run solves every instance of cfg.Dir cfg.Runs times and stores one record per run.
func Run(ctx context.Context, cfg Config) (Report, error) {
	if cfg.Runs <= 0 {
		return Report{}, fmt.Errorf("runs must be positive, got %d", cfg.Runs)
	}
	if cfg.Goroutines <= 0 {
		cfg.Goroutines = meta.GO_ROUTINES
	}
	if cfg.Engine == nil {
		cfg.Engine = engine.LocalEngine()
	}

	files, err := Files(cfg.Dir)
	if err != nil {
		return Report{}, err
	}
	instances := make([]*sat.Instance, len(files))
	for i, file := range files {
		instances[i], err = dimacs.ReadFile(file)
		if err != nil {
			return Report{}, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	log.Info().Msgf("starting %s bench over %d files with %d runs each...", cfg.Algorithm, len(files), cfg.Runs)

	records := make([]metrics.RunRecord, len(files)*cfg.Runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Goroutines)
	for fi := range files {
		for r := 0; r < cfg.Runs; r++ {
			r := r
			id := fi*cfg.Runs + r
			name := filepath.Base(files[fi])
			inst := instances[fi]
			seed := cfg.Seed + uint64(r)
			g.Go(func() error {
				options := append(slices.Clone(cfg.Options), searcher.WithSeed(seed), searcher.WithMetrics(metrics.NewCollector()))
				outcome, err := cfg.Engine.Solve(ctx, inst, cfg.Algorithm, options...)
				if err != nil {
					return fmt.Errorf("failed to solve %s with seed %d: %w", name, seed, err)
				}
				records[id] = metrics.RunRecord{
					ID: id + 1,
					RunMetric: metrics.RunMetric{
						File:         name,
						Solved:       outcome.Solved,
						SearchMetric: outcome.Metric,
					},
				}
				log.Info().Msgf("completed %s run %d of %d with score %v", name, r+1, cfg.Runs, outcome.Score)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	log.Info().Msgf("completed %s bench", cfg.Algorithm)

	writer, err := metrics.NewWriter(cfg.OutputDir, "bench")
	if err != nil {
		return Report{}, err
	}
	if err := writer.WriteRunRecords(records); err != nil {
		return Report{}, err
	}
	log.Info().Msgf("stored run records in %s", writer.Dir())

	if cfg.Textfile != "" {
		exporter := metrics.NewExporter()
		for _, record := range records {
			exporter.Observe(record.RunMetric)
		}
		if err := exporter.WriteTextfile(cfg.Textfile); err != nil {
			return Report{}, err
		}
		log.Info().Msgf("stored run metrics in %s", cfg.Textfile)
	}

	return Report{Dir: writer.Dir(), Records: records}, nil
}
