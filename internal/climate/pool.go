package climate

import (
	"context"
	"fmt"
	"log"
	"runtime"
)

// taskMessage is what travels on the task queue. EndOfWork tells the
// receiving worker to exit.
type taskMessage struct {
	Task      Task
	EndOfWork bool
}

// Result is what travels on the result queue. A Result with WorkerDone set
// carries no data and means Worker has exited.
type Result struct {
	Worker     string
	Task       Task
	Averages   YearlyAverages
	WorkerDone bool
}

// Pool is a fixed set of workers sharing one task queue and one result queue.
type Pool struct {
	workers int
	fetcher TaskFetcher
}

// NewPool creates a pool of workers goroutines. workers <= 0 means one per CPU.
func NewPool(workers int, fetcher TaskFetcher) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{
		workers: workers,
		fetcher: fetcher,
	}
}

// Workers returns the number of workers the pool starts.
func (p *Pool) Workers() int {
	return p.workers
}

// Start launches the workers, enqueues every task followed by one end-of-work
// message per worker, and returns the result queue. Exactly one WorkerDone
// result is sent per worker.
func (p *Pool) Start(ctx context.Context, tasks []Task) <-chan Result {
	queue := make(chan taskMessage, len(tasks)+p.workers)
	results := make(chan Result, len(tasks)+p.workers)

	for i := 0; i < p.workers; i++ {
		go p.work(ctx, fmt.Sprintf("P%d", i), queue, results)
	}

	for _, t := range tasks {
		queue <- taskMessage{Task: t}
	}
	for i := 0; i < p.workers; i++ {
		queue <- taskMessage{EndOfWork: true}
	}

	return results
}

func (p *Pool) work(ctx context.Context, name string, queue <-chan taskMessage, results chan<- Result) {
	log.Printf("pool: [%s] worker started", name)

	for msg := range queue {
		if msg.EndOfWork {
			log.Printf("pool: [%s] worker quits", name)
			results <- Result{Worker: name, WorkerDone: true}
			return
		}

		log.Printf("pool: [%s] fetching %d year(s) from %d", name, msg.Task.Size, msg.Task.Start)
		avg := p.fetcher.FetchTask(ctx, msg.Task)
		log.Printf("pool: [%s] task %d done: %d min, %d max averages", name, msg.Task.Start, len(avg.Min), len(avg.Max))

		results <- Result{Worker: name, Task: msg.Task, Averages: avg}
	}
}

// Aggregate drains results until workers WorkerDone results have been seen
// and merges everything else. Later results overwrite earlier ones.
func Aggregate(results <-chan Result, workers int) YearlyAverages {
	out := NewYearlyAverages()

	finished := 0
	for finished < workers {
		r := <-results
		if r.WorkerDone {
			finished++
			continue
		}
		out.Merge(r.Averages)
	}

	return out
}

// Run starts the pool on tasks and blocks until every worker has exited.
func (p *Pool) Run(ctx context.Context, tasks []Task) YearlyAverages {
	return Aggregate(p.Start(ctx, tasks), p.workers)
}
