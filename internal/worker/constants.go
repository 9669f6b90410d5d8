package worker

// Log Messages - Worker Pool
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgJobQueueFull    = "Job queue full, dropping job"
)

// Log Messages - Sync Job
const (
	LogMsgSyncStarting  = "Snapshot sync starting"
	LogMsgSyncCompleted = "Snapshot sync completed"
)
