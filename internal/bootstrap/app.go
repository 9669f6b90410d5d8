// Package bootstrap composes the application: configuration, logging,
// catalogs, simulation subsystems, persistence, background sync and the
// HTTP server. The main package stays a thin shell around it.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ilerise/farmsim/internal/action"
	"github.com/ilerise/farmsim/internal/clock"
	"github.com/ilerise/farmsim/internal/config"
	"github.com/ilerise/farmsim/internal/crop"
	"github.com/ilerise/farmsim/internal/database"
	"github.com/ilerise/farmsim/internal/domain"
	"github.com/ilerise/farmsim/internal/event"
	"github.com/ilerise/farmsim/internal/farm"
	"github.com/ilerise/farmsim/internal/handler"
	"github.com/ilerise/farmsim/internal/ledger"
	"github.com/ilerise/farmsim/internal/livestock"
	"github.com/ilerise/farmsim/internal/logger"
	"github.com/ilerise/farmsim/internal/market"
	"github.com/ilerise/farmsim/internal/metrics"
	"github.com/ilerise/farmsim/internal/plot"
	"github.com/ilerise/farmsim/internal/progression"
	"github.com/ilerise/farmsim/internal/scheduler"
	"github.com/ilerise/farmsim/internal/server"
	"github.com/ilerise/farmsim/internal/store"
	"github.com/ilerise/farmsim/internal/weather"
	"github.com/ilerise/farmsim/internal/worker"
)

// App holds every composed component for lifecycle management.
type App struct {
	Config    *config.Config
	Log       *slog.Logger
	Farm      *farm.Service
	Server    *server.Server
	Scheduler *scheduler.Scheduler
	Pool      *worker.Pool
	DBPool    *pgxpool.Pool
	Bus       event.Bus
}

// SetupLogger initializes the default slog logger from app configuration.
func SetupLogger(cfg *config.Config) *slog.Logger {
	addSource := cfg.Env == "dev" || cfg.Env == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		"farmsim",
		handler.Version,
		cfg.Env,
		addSource,
	)

	return logger.Setup(loggerConfig)
}

// Build wires every component from configuration. The returned App is
// not yet running; call Run to start the clock, scheduler and server.
func Build(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	log.Info(LogMsgStartingApp, "environment", cfg.Env, "port", cfg.Port)

	// Catalogs
	crops, err := crop.Load(filepath.Join(cfg.DataDir, CropCatalogFile))
	if err != nil {
		return nil, fmt.Errorf("load crop catalog: %w", err)
	}
	actionCatalog, err := action.LoadCatalog(filepath.Join(cfg.DataDir, ActionCatalogFile))
	if err != nil {
		return nil, fmt.Errorf("load action catalog: %w", err)
	}
	log.Info(LogMsgCatalogsLoaded, "crops", crops.Len(), "actions", actionCatalog.Len())

	// Environment dataset for the configured location
	env := defaultEnvironment(cfg.Location)
	datasets, err := weather.NewDatasets(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("init dataset loader: %w", err)
	}
	if loaded, err := datasets.Get(cfg.Location); err != nil {
		log.Warn(LogMsgEnvironmentFallback, "location", cfg.Location, "error", err)
	} else {
		env = loaded
		log.Info(LogMsgEnvironmentLoaded, "location", env.Location, "temperature", env.Temperature)
	}

	// Simulation subsystems
	ledg := ledger.New()
	plots := plot.New(ledg, crops, env, nil, log)
	actions := action.NewService(actionCatalog, ledg, plots, log)
	mkt := market.New(ledg, nil, log)
	herds := livestock.New(ledg, log)
	clk := clock.New(time.Duration(cfg.TickIntervalMs)*time.Millisecond, log)
	engine := weather.NewEngine(&env, rand.New(rand.NewSource(time.Now().UnixNano())))

	bus := event.NewMemoryBus()
	progress := progression.New(bus, log)

	collector := metrics.NewEventMetricsCollector()
	if err := collector.Register(bus); err != nil {
		return nil, fmt.Errorf("register metrics collector: %w", err)
	}

	// Persistence
	local := store.NewFileStore(cfg.SaveDir)

	var remote store.Store
	if cfg.RemoteURL != "" {
		remote = store.NewRemoteStore(cfg.RemoteURL, cfg.RemoteAPIKey)
	} else {
		log.Info(LogMsgRemoteSyncDisabled)
	}

	var dbPool *pgxpool.Pool
	if cfg.PostgresDSN != "" {
		dbPool, err = database.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		remote = store.NewPostgresStore(dbPool, store.DefaultSlot)
	} else {
		log.Info(LogMsgDatabaseDisabled)
	}

	farmSvc := farm.New(farm.Deps{
		Clock:         clk,
		Ledger:        ledg,
		Plots:         plots,
		Actions:       actions,
		ActionCatalog: actionCatalog,
		Crops:         crops,
		Market:        mkt,
		Livestock:     herds,
		Weather:       engine,
		Progress:      progress,
		Bus:           bus,
		Local:         local,
		Remote:        remote,
		Env:           env,
		Log:           log,
	})

	// Restore a previous session when one exists
	if err := farmSvc.Load(ctx); err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			log.Info(LogMsgNoSavedGame)
		} else {
			return nil, fmt.Errorf("restore saved game: %w", err)
		}
	} else {
		log.Info(LogMsgSavedGameRestored)
	}

	// Background snapshot sync
	pool := worker.NewPool(WorkerPoolSize, WorkerQueueSize)
	sched := scheduler.New(pool, log)

	var dbIface database.Pool
	if dbPool != nil {
		dbIface = dbPool
	}
	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, dbIface, farmSvc)

	return &App{
		Config:    cfg,
		Log:       log,
		Farm:      farmSvc,
		Server:    srv,
		Scheduler: sched,
		Pool:      pool,
		DBPool:    dbPool,
		Bus:       bus,
	}, nil
}

// Run starts the worker pool, sync scheduler, simulation clock and HTTP
// server. It blocks until the server stops.
func (a *App) Run() error {
	a.Pool.Start()
	a.Scheduler.Schedule(
		time.Duration(a.Config.SyncIntervalSec)*time.Second,
		worker.NewSyncJob(a.Farm),
	)
	a.Farm.Start()

	return a.Server.Start()
}

// defaultEnvironment is the fallback when no dataset file exists for
// the configured location.
func defaultEnvironment(location string) domain.EnvironmentData {
	return domain.EnvironmentData{
		Location:      location,
		Temperature:   28,
		SoilMoisture:  40,
		NDVI:          0.5,
		Precipitation: 2,
	}
}
