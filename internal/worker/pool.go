package worker

import (
	"context"
	"sync"
)

// Job is one unit of work executed by the pool.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job.
type Result interface {
	Err() error
}

// Pool runs jobs across a fixed number of workers.
type Pool struct {
	workers int
}

// NewPool creates a pool with the given worker count.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes all jobs and returns their results in submission order.
// Workers stop pulling new jobs once ctx is done; jobs already in flight
// are responsible for honoring ctx themselves.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	type indexed struct {
		idx int
		job Job
	}

	queue := make(chan indexed)
	var wg sync.WaitGroup

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range queue {
				results[item.idx] = item.job.Execute(ctx)
			}
		}()
	}

	for i, job := range jobs {
		queue <- indexed{idx: i, job: job}
	}
	close(queue)
	wg.Wait()

	return results
}
