package bootstrap

import "time"

// Component defaults
const (
	// WorkerPoolSize is the number of background workers for sync jobs
	WorkerPoolSize = 1

	// WorkerQueueSize bounds the background job queue
	WorkerQueueSize = 4

	// ShutdownSaveTimeout bounds the final snapshot write on shutdown
	ShutdownSaveTimeout = 10 * time.Second
)

// File names under the data directory
const (
	CropCatalogFile   = "crops.json"
	ActionCatalogFile = "actions.json"
)

// Log messages for application lifecycle
const (
	LogMsgStartingApp          = "Starting farm simulation"
	LogMsgCatalogsLoaded       = "Catalogs loaded"
	LogMsgEnvironmentLoaded    = "Environment dataset loaded"
	LogMsgEnvironmentFallback  = "Environment dataset missing, using defaults"
	LogMsgDatabaseDisabled     = "POSTGRES_DSN not set, Postgres snapshot store disabled"
	LogMsgRemoteSyncDisabled   = "REMOTE_SYNC_URL not set, remote sync disabled"
	LogMsgNoSavedGame          = "No saved game found, starting fresh"
	LogMsgSavedGameRestored    = "Saved game restored"
	LogMsgShuttingDownServer   = "Shutting down server"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgFinalSaveFailed      = "Final snapshot save failed"
	LogMsgServerStopped        = "Server stopped"
)
