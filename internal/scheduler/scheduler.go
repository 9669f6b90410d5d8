// Package scheduler enqueues recurring jobs on wall-clock intervals.
package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ilerise/farmsim/internal/worker"
)

// Scheduler manages interval-scheduled jobs
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	wg         sync.WaitGroup
	log        *slog.Logger
}

// New creates a new scheduler
func New(pool *worker.Pool, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
		log:        log,
	}
}

// Schedule registers a job to run at a fixed interval. The job is
// handed to the worker pool; if the pool's queue is full the run is
// skipped rather than blocking the scheduler.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !s.workerPool.Enqueue(job) {
					s.log.Warn(worker.LogMsgJobQueueFull)
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	close(s.quit)
	s.wg.Wait()
}
