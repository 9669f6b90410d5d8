package worker

import (
	"context"
	"fmt"

	"github.com/ilerise/farmsim/internal/logger"
)

// Saver persists the current farm snapshot
type Saver interface {
	Save(ctx context.Context) error
}

// SyncJob pushes the latest snapshot through a Saver. Enqueued on a
// wall-clock interval by the scheduler so persistence never runs on
// the tick loop.
type SyncJob struct {
	saver Saver
}

// NewSyncJob creates a snapshot sync job
func NewSyncJob(saver Saver) *SyncJob {
	return &SyncJob{saver: saver}
}

// Process saves the snapshot
func (j *SyncJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgSyncStarting)

	if err := j.saver.Save(ctx); err != nil {
		return fmt.Errorf("snapshot sync: %w", err)
	}

	log.Debug(LogMsgSyncCompleted)
	return nil
}
