package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/i474232898/temperature-trend/internal/climate"
	"github.com/i474232898/temperature-trend/internal/climate/meteostat"
	"github.com/i474232898/temperature-trend/internal/config"
	"github.com/i474232898/temperature-trend/internal/report"
	"github.com/i474232898/temperature-trend/internal/store"
)

// temptrend fetches the configured range twice, once sequentially and once
// on the worker pool, prints both timings and the predictions, and saves the
// plot of the parallel run.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	client := meteostat.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, meteostat.Options{
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		StationID: cfg.StationID,
		Backoff:   cfg.RateLimit,
	})

	service := climate.NewService(
		store.NewMemoryStore(2, 0),
		climate.NewFetcher(client, cfg.EndYear),
		climate.RunConfig{
			StationID: cfg.StationID,
			StartYear: cfg.StartYear,
			EndYear:   cfg.EndYear,
			Workers:   cfg.Workers,
			ChunkSize: cfg.ChunkSize,
		},
	)

	ctx := context.Background()

	fmt.Println("Start sequential:")
	seq, err := service.RunSequential(ctx)
	if err != nil {
		log.Fatalf("sequential run failed: %v", err)
	}
	fmt.Printf("\nTime to receive and average temp data sequentially: %v\n\n", seq.Duration)

	fmt.Println("Start parallel:")
	par, err := service.RunParallel(ctx)
	if err != nil {
		log.Fatalf("parallel run failed: %v", err)
	}
	fmt.Printf("\nTime to receive and average temp data in parallel: %v\n\n", par.Duration)

	if p, err := report.Predict(par.Averages, cfg.PredictYear); err != nil {
		log.Printf("ERROR: no prediction for %d: %v", cfg.PredictYear, err)
	} else if err := report.PrintPredictions(os.Stdout, p); err != nil {
		log.Fatalf("failed to print predictions: %v", err)
	}

	if err := report.SavePlot(cfg.PlotPath, par.Averages); err != nil {
		log.Fatalf("failed to save plot: %v", err)
	}
	log.Printf("INFO: plot saved to %s", cfg.PlotPath)
}
