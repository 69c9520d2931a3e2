package climate

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// Store is the contract the in-memory run store must satisfy.
type Store interface {
	SaveRun(run Run)
	Latest() (Run, error)
	Get(id string) (Run, error)
	List() []Run
}

// RunConfig fixes the year range and the shape of the worker pool.
type RunConfig struct {
	StationID int
	StartYear int
	EndYear   int // exclusive
	Workers   int // <= 0 means one per CPU
	ChunkSize int // 0 means balanced across workers
}

// Service runs the sequential and parallel fetch strategies and records
// every run in the store.
type Service struct {
	store   Store
	fetcher TaskFetcher
	cfg     RunConfig
}

// NewService creates a new Service.
func NewService(store Store, fetcher TaskFetcher, cfg RunConfig) *Service {
	return &Service{
		store:   store,
		fetcher: fetcher,
		cfg:     cfg,
	}
}

// RunSequential fetches one year at a time on the calling goroutine.
func (s *Service) RunSequential(ctx context.Context) (Run, error) {
	tasks, err := GenerateTasks(s.cfg.StartYear, s.cfg.EndYear, 1)
	if err != nil {
		return Run{}, err
	}

	run := s.newRun(ModeSequential, 1, 1, len(tasks))
	log.Printf("INFO: service: sequential run %s over %d years", run.ID, len(tasks))

	start := time.Now()
	for _, t := range tasks {
		run.Averages.Merge(s.fetcher.FetchTask(ctx, t))
	}
	run.Duration = time.Since(start)

	s.store.SaveRun(run)
	log.Printf("INFO: service: sequential run %s finished in %v", run.ID, run.Duration)
	return run, nil
}

// RunParallel spreads the tasks over the worker pool.
func (s *Service) RunParallel(ctx context.Context) (Run, error) {
	pool := NewPool(s.cfg.Workers, s.fetcher)

	chunk := s.cfg.ChunkSize
	if chunk <= 0 {
		chunk = BalancedChunkSize(s.cfg.StartYear, s.cfg.EndYear, pool.Workers())
	}

	tasks, err := GenerateTasks(s.cfg.StartYear, s.cfg.EndYear, chunk)
	if err != nil {
		return Run{}, err
	}
	if len(tasks) > 0 {
		chunk = tasks[0].Size
	}

	run := s.newRun(ModeParallel, pool.Workers(), chunk, len(tasks))
	log.Printf("INFO: service: parallel run %s, %d tasks of %d year(s) on %d workers",
		run.ID, len(tasks), chunk, pool.Workers())

	start := time.Now()
	run.Averages = pool.Run(ctx, tasks)
	run.Duration = time.Since(start)

	s.store.SaveRun(run)
	log.Printf("INFO: service: parallel run %s finished in %v", run.ID, run.Duration)
	return run, nil
}

func (s *Service) newRun(mode Mode, workers, chunk, tasks int) Run {
	return Run{
		ID:        uuid.NewString(),
		Mode:      mode,
		StationID: s.cfg.StationID,
		StartYear: s.cfg.StartYear,
		EndYear:   s.cfg.EndYear,
		Workers:   workers,
		ChunkSize: chunk,
		Tasks:     tasks,
		StartedAt: time.Now().UTC(),
		Averages:  NewYearlyAverages(),
	}
}

// Latest delegates to the underlying store.
func (s *Service) Latest() (Run, error) {
	return s.store.Latest()
}

// Get delegates to the underlying store.
func (s *Service) Get(id string) (Run, error) {
	return s.store.Get(id)
}

// History delegates to the underlying store.
func (s *Service) History() []Run {
	return s.store.List()
}
