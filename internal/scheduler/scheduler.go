package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/temperature-trend/internal/climate"
)

// Runner is the part of climate.Service the scheduler drives.
type Runner interface {
	RunParallel(ctx context.Context) (climate.Run, error)
}

// Scheduler periodically refetches the configured year range.
type Scheduler struct {
	scheduler *gocron.Scheduler
	runner    Runner
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. Each run is bounded by timeout.
func New(interval, timeout time.Duration, runner Runner) *Scheduler {
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}

	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		runner:    runner,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start schedules the refresh job, runs it once right away and starts the
// underlying scheduler. Runs never overlap.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.interval = 24 * time.Hour
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(func() {
		log.Println("scheduler: running temperature refresh job")

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		run, err := s.runner.RunParallel(ctx)
		if err != nil {
			log.Printf("scheduler: refresh failed: %v", err)
			return
		}
		log.Printf("scheduler: completed run %s (%d min, %d max years) in %v",
			run.ID, len(run.Averages.Min), len(run.Averages.Max), run.Duration)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
