package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingJob struct {
	executed *int32
}

func (j *countingJob) Process(_ context.Context) error {
	atomic.AddInt32(j.executed, 1)
	return nil
}

type failingJob struct{}

func (failingJob) Process(_ context.Context) error {
	return errors.New("backend unavailable")
}

func TestPool_ProcessesJobs(t *testing.T) {
	var executed int32
	pool := NewPool(2, 10)
	pool.Start()

	job := &countingJob{executed: &executed}
	assert.True(t, pool.Enqueue(job))
	assert.True(t, pool.Enqueue(job))

	time.Sleep(100 * time.Millisecond)
	pool.Stop()

	assert.Equal(t, int32(2), atomic.LoadInt32(&executed))
}

func TestPool_SurvivesFailingJob(t *testing.T) {
	var executed int32
	pool := NewPool(1, 10)
	pool.Start()

	assert.True(t, pool.Enqueue(failingJob{}))
	assert.True(t, pool.Enqueue(&countingJob{executed: &executed}))

	time.Sleep(100 * time.Millisecond)
	pool.Stop()

	assert.Equal(t, int32(1), atomic.LoadInt32(&executed))
}

func TestPool_EnqueueDropsWhenFull(t *testing.T) {
	// Pool not started, so the queue fills up
	pool := NewPool(1, 1)

	var executed int32
	assert.True(t, pool.Enqueue(&countingJob{executed: &executed}))
	assert.False(t, pool.Enqueue(&countingJob{executed: &executed}))
}

type syncRecorder struct {
	calls int32
	err   error
}

func (r *syncRecorder) Save(_ context.Context) error {
	atomic.AddInt32(&r.calls, 1)
	return r.err
}

func TestSyncJob_Process(t *testing.T) {
	rec := &syncRecorder{}
	job := NewSyncJob(rec)

	assert.NoError(t, job.Process(context.Background()))
	assert.Equal(t, int32(1), atomic.LoadInt32(&rec.calls))
}

func TestSyncJob_PropagatesError(t *testing.T) {
	rec := &syncRecorder{err: errors.New("remote down")}
	job := NewSyncJob(rec)

	err := job.Process(context.Background())
	assert.ErrorContains(t, err, "remote down")
}
