// Package farm composes the clock, ledger, plots, actions, market and
// livestock into the single command surface the HTTP layer talks to.
// Day-change side effects run in a fixed order for every day: plots,
// livestock, market, action resolution, observer callbacks.
package farm

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ilerise/farmsim/internal/action"
	"github.com/ilerise/farmsim/internal/clock"
	"github.com/ilerise/farmsim/internal/crop"
	"github.com/ilerise/farmsim/internal/domain"
	"github.com/ilerise/farmsim/internal/event"
	"github.com/ilerise/farmsim/internal/ledger"
	"github.com/ilerise/farmsim/internal/livestock"
	"github.com/ilerise/farmsim/internal/market"
	"github.com/ilerise/farmsim/internal/metrics"
	"github.com/ilerise/farmsim/internal/plot"
	"github.com/ilerise/farmsim/internal/progression"
	"github.com/ilerise/farmsim/internal/store"
	"github.com/ilerise/farmsim/internal/weather"
)

const (
	// SaveEveryDays is the autosave cadence on the day-change observer
	SaveEveryDays = 5

	// MarketUpdateEveryDays is how often market prices fluctuate
	MarketUpdateEveryDays = 3

	harvestActionID = "harvest"
)

// Deps bundles the subsystems the orchestrator composes
type Deps struct {
	Clock         *clock.Clock
	Ledger        *ledger.Ledger
	Plots         *plot.Manager
	Actions       *action.Service
	ActionCatalog *action.Catalog
	Crops         *crop.Catalog
	Market        *market.Market
	Livestock     *livestock.Service
	Weather       *weather.Engine
	Progress      *progression.Tracker
	Bus           event.Bus
	Local         store.Store
	Remote        store.Store // optional
	Env           domain.EnvironmentData
	Log           *slog.Logger
}

// Service is the farm orchestrator
type Service struct {
	mu sync.Mutex // guards env and lastSeason across commands and ticks

	clock     *clock.Clock
	ledger    *ledger.Ledger
	plots     *plot.Manager
	actions   *action.Service
	catalog   *action.Catalog
	crops     *crop.Catalog
	market    *market.Market
	livestock *livestock.Service
	weather   *weather.Engine
	progress  *progression.Tracker
	bus       event.Bus
	local     store.Store
	remote    store.Store

	env        domain.EnvironmentData
	lastSeason domain.Season

	log *slog.Logger
}

// New wires the orchestrator to the clock's day and hour notifications
func New(d Deps) *Service {
	if d.Log == nil {
		d.Log = slog.Default()
	}

	s := &Service{
		clock:      d.Clock,
		ledger:     d.Ledger,
		plots:      d.Plots,
		actions:    d.Actions,
		catalog:    d.ActionCatalog,
		crops:      d.Crops,
		market:     d.Market,
		livestock:  d.Livestock,
		weather:    d.Weather,
		progress:   d.Progress,
		bus:        d.Bus,
		local:      d.Local,
		remote:     d.Remote,
		env:        d.Env,
		lastSeason: clock.SeasonForDay(d.Clock.Day()),
		log:        d.Log,
	}

	s.clock.OnDayChange(s.handleDayChange)
	s.clock.OnHour(s.handleHourChange)

	return s
}

// handleDayChange runs the ordered daily pipeline. Subsystem failures
// are logged and isolated; nothing here may stop the clock.
func (s *Service) handleDayChange(day int) {
	ctx := context.Background()

	// 1. Refresh ambient conditions, then age every plot.
	s.mu.Lock()
	if s.weather != nil {
		daily := s.weather.DailyWeather(day)
		s.env.Temperature = daily.Temp
		s.env.Precipitation = daily.Rain
		s.plots.SetEnvironment(s.env)
	}
	env := s.env
	s.mu.Unlock()

	season := clock.SeasonForDay(day)
	mods := weather.Modifiers(season, s.clock.TimeOfDay(), nil)
	s.plots.UpdateAll(mods)

	// 2. Livestock husbandry.
	s.livestock.Update(day)

	// 3. Market fluctuation.
	if day%MarketUpdateEveryDays == 0 {
		if evt := s.market.Update(day); evt != nil {
			s.log.Info("market event", "name", evt.Name, "message", evt.Message)
		}
	}

	// 4. Resolve actions whose day range has elapsed.
	s.resolveActions(ctx, day)

	// 5. Observer callbacks.
	s.publish(ctx, event.NewDayChangedEvent(day, season))

	s.mu.Lock()
	seasonChanged := season != s.lastSeason
	s.lastSeason = season
	s.mu.Unlock()
	if seasonChanged {
		s.publish(ctx, event.NewSeasonChangedEvent(day, season))
		s.log.Info("season changed", "day", day, "season", season)
	}

	if day%SaveEveryDays == 0 {
		if err := s.saveTo(ctx, s.local); err != nil {
			s.log.Warn("autosave failed", "day", day, "error", err)
		}
	}

	s.log.Debug("day processed", "day", day, "season", season, "temperature", env.Temperature)
}

// handleHourChange collects eggs at the morning hour
func (s *Service) handleHourChange(day, hour int) {
	if hour != clock.StartHour {
		return
	}
	if eggs := s.livestock.CollectEggs(); eggs > 0 {
		s.log.Info("morning egg collection", "day", day, "eggs", eggs)
	}
}

func (s *Service) resolveActions(ctx context.Context, day int) {
	level := s.progress.Level()
	for _, res := range s.actions.Resolve(day, level) {
		s.publish(ctx, event.NewActionCompletedEvent(res.Action.ActionID, res.Action.PlotID, day, res.Changes))
		s.progress.AddXP(ctx, progression.XPPerCompletedAction)

		if res.Harvest != nil {
			s.publish(ctx, event.NewHarvestEvent(
				res.Action.PlotID, res.Harvest.CropID, res.Harvest.Yield,
				res.Harvest.Result.Score, res.Harvest.Result.Stars, day))
			s.progress.AwardHarvest(ctx, res.Harvest.Result.Score)
		}
	}
}

func (s *Service) publish(ctx context.Context, e event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, e); err != nil {
		s.log.Warn("event handler failed", "type", e.Type, "error", err)
	}
}

// ExecuteAction validates and schedules a catalog action on a plot.
// The cost is charged immediately; effects land when the action's day
// range elapses.
func (s *Service) ExecuteAction(ctx context.Context, actionID string, plotID int, cropID string) (domain.ActiveAction, error) {
	active, err := s.actions.Execute(actionID, plotID, cropID, s.clock.Day(), s.progress.Level())
	if err != nil {
		return domain.ActiveAction{}, err
	}

	metrics.ActionsExecuted.WithLabelValues(actionID).Inc()
	s.publish(ctx, event.NewResourceChangedEvent(domain.TransactionExpense, actionID, activeCost(s.catalog, actionID, cropID)))
	return active, nil
}

// activeCost reports what an execution charged, including dynamic seed
// costs for planting.
func activeCost(catalog *action.Catalog, actionID, cropID string) domain.Cost {
	def, err := catalog.Get(actionID)
	if err != nil {
		return nil
	}
	cost := append(domain.Cost{}, def.Cost...)
	for _, e := range def.Effects {
		if e.Kind == domain.EffectPlant && cropID != "" {
			cost = append(cost, domain.Seeds(cropID, action.SeedsPerPlanting))
		}
	}
	return cost
}

// PlantCrop schedules the planting action for a crop on a plot
func (s *Service) PlantCrop(ctx context.Context, cropID string, plotID int) (domain.ActiveAction, error) {
	if _, err := s.crops.Get(cropID); err != nil {
		return domain.ActiveAction{}, err
	}
	return s.ExecuteAction(ctx, "plant", plotID, cropID)
}

// HarvestPlot harvests a mature plot immediately, charging the harvest
// action's cost and crediting the yield to the ledger.
func (s *Service) HarvestPlot(ctx context.Context, plotID int) (domain.HarvestOutcome, error) {
	def, err := s.catalog.Get(harvestActionID)
	if err != nil {
		return domain.HarvestOutcome{}, err
	}
	if !s.ledger.HasResources(def.Cost) {
		return domain.HarvestOutcome{}, fmt.Errorf("%w: %s", domain.ErrInsufficientResources, harvestActionID)
	}

	outcome, err := s.plots.Harvest(plotID)
	if err != nil {
		return domain.HarvestOutcome{}, err
	}
	s.ledger.Consume(def.Cost, harvestActionID)
	s.plots.RecordAction(plotID, harvestActionID)

	day := s.clock.Day()
	metrics.ActionsExecuted.WithLabelValues(harvestActionID).Inc()
	s.publish(ctx, event.NewHarvestEvent(plotID, outcome.CropID, outcome.Yield,
		outcome.Result.Score, outcome.Result.Stars, day))
	s.progress.AwardHarvest(ctx, outcome.Result.Score)

	s.log.Info("plot harvested", "plot", plotID, "crop", outcome.CropID,
		"yield_tonnes", outcome.Yield, "score", outcome.Result.Score, "stars", outcome.Result.Stars)
	return outcome, nil
}

// UnlockPlot buys a locked plot if the player level allows it
func (s *Service) UnlockPlot(_ context.Context, plotID int) error {
	return s.plots.UnlockPlot(plotID, s.progress.Level())
}

// AvailableActions reports per-action availability for a plot
func (s *Service) AvailableActions(plotID int) (map[string]domain.Availability, error) {
	p, err := s.plots.Get(plotID)
	if err != nil {
		return nil, err
	}
	return s.actions.AvailableFor(p, s.progress.Level()), nil
}

// BuyFromMarket purchases stock at the current market price
func (s *Service) BuyFromMarket(ctx context.Context, category domain.ResourceCategory, item string, quantity float64) (float64, error) {
	total, err := s.market.Buy(category, item, quantity)
	if err != nil {
		return 0, err
	}
	metrics.MarketTrades.WithLabelValues("buy", string(category)).Inc()
	s.publish(ctx, event.NewResourceChangedEvent(domain.TransactionExpense, "market buy", domain.Cost{domain.Money(total)}))
	return total, nil
}

// SellToMarket sells stock at the current market price
func (s *Service) SellToMarket(ctx context.Context, category domain.ResourceCategory, item string, quantity float64) (float64, error) {
	total, err := s.market.Sell(category, item, quantity)
	if err != nil {
		return 0, err
	}
	metrics.MarketTrades.WithLabelValues("sell", string(category)).Inc()
	s.publish(ctx, event.NewResourceChangedEvent(domain.TransactionIncome, "market sell", domain.Cost{domain.Money(total)}))
	return total, nil
}

// Livestock commands, gated on the same player level as everything else

// UnlockBuilding unlocks housing for a species
func (s *Service) UnlockBuilding(sp livestock.Species) error {
	return s.livestock.Unlock(sp, s.progress.Level())
}

// UpgradeBuilding raises a building's capacity tier
func (s *Service) UpgradeBuilding(sp livestock.Species) error {
	return s.livestock.Upgrade(sp)
}

// UnlockCompostPit unlocks manure composting
func (s *Service) UnlockCompostPit() error {
	return s.livestock.UnlockCompostPit()
}

// BuyAnimals purchases animals up to the building capacity
func (s *Service) BuyAnimals(sp livestock.Species, count int) error {
	return s.livestock.Buy(sp, count)
}

// FeedAnimals refills a herd's feed
func (s *Service) FeedAnimals(sp livestock.Species) error {
	return s.livestock.Feed(sp)
}

// StartComposting queues manure for conversion to organic fertilizer
func (s *Service) StartComposting(manureKg float64) error {
	return s.livestock.StartComposting(manureKg, s.clock.Day())
}

// CollectMilk moves accumulated milk into the ledger
func (s *Service) CollectMilk() float64 {
	return s.livestock.CollectMilk()
}

// LivestockState returns the current herds and building levels
func (s *Service) LivestockState() domain.LivestockState {
	return s.livestock.State()
}

// MarketTrends returns current prices with their recent direction
func (s *Service) MarketTrends() []domain.MarketTrend {
	return s.market.Trends()
}

// MarketHistory returns recorded price snapshots, oldest first
func (s *Service) MarketHistory() []domain.PriceSnapshot {
	return s.market.History()
}

// Clock control

// Start begins the simulation tick loop
func (s *Service) Start() { s.clock.Start() }

// Stop halts the tick loop
func (s *Service) Stop() { s.clock.Stop() }

// TogglePause flips the pause flag and reports the new value
func (s *Service) TogglePause() bool { return s.clock.TogglePause() }

// SetSpeed changes the simulation speed multiplier
func (s *Service) SetSpeed(speed int) error { return s.clock.SetSpeed(speed) }

// SkipDay advances directly to the next day, running the same ordered
// day pipeline as a natural rollover
func (s *Service) SkipDay() { s.clock.SkipToNextDay() }

// State returns the aggregated read-only view of the farm
func (s *Service) State() domain.FarmState {
	return domain.FarmState{
		Time:        s.clock.State(),
		Resources:   s.ledger.Summary(),
		Plots:       s.plots.Summaries(),
		Livestock:   s.livestock.State(),
		Market:      s.market.Trends(),
		PlayerLevel: s.progress.Level(),
	}
}

// Snapshot serializes the entire mutable state tree
func (s *Service) Snapshot() domain.FarmSnapshot {
	s.mu.Lock()
	env := s.env
	s.mu.Unlock()

	level, xp := s.progress.State()
	return domain.FarmSnapshot{
		Version:       domain.SnapshotVersion,
		SavedAt:       time.Now().UTC(),
		Environment:   env,
		Time:          s.clock.State(),
		PlayerLevel:   level,
		PlayerXP:      xp,
		Plots:         s.plots.State(),
		Resources:     s.ledger.State(),
		Livestock:     s.livestock.State(),
		Market:        s.market.State(),
		ActiveActions: s.actions.Active(),
		IsPaused:      s.clock.IsPaused(),
	}
}

// Save persists the current snapshot locally and, when configured,
// to the remote store. Remote failures degrade to local-only.
func (s *Service) Save(ctx context.Context) error {
	if err := s.saveTo(ctx, s.local); err != nil {
		return err
	}
	if s.remote != nil {
		if err := s.saveTo(ctx, s.remote); err != nil {
			s.log.Warn("remote sync failed, continuing with local persistence", "error", err)
		}
	}
	return nil
}

func (s *Service) saveTo(ctx context.Context, st store.Store) error {
	if st == nil {
		return nil
	}
	if err := st.Save(ctx, s.Snapshot()); err != nil {
		metrics.SyncFailures.WithLabelValues(st.Name()).Inc()
		s.publish(ctx, event.NewSyncFailedEvent(st.Name(), err))
		return fmt.Errorf("save to %s store: %w", st.Name(), err)
	}
	return nil
}

// Load restores state from the remote store when configured, falling
// back to the local snapshot.
func (s *Service) Load(ctx context.Context) error {
	var snap domain.FarmSnapshot
	var err error

	if s.remote != nil {
		snap, err = s.remote.Load(ctx)
		if err != nil {
			s.log.Warn("remote load failed, trying local snapshot", "error", err)
		}
	}
	if s.remote == nil || err != nil {
		snap, err = s.local.Load(ctx)
		if err != nil {
			return err
		}
	}

	return s.Restore(snap)
}

// Restore applies a snapshot to every subsystem
func (s *Service) Restore(snap domain.FarmSnapshot) error {
	if err := s.clock.Restore(snap.Time); err != nil {
		return err
	}

	s.ledger.Restore(snap.Resources)
	if err := s.plots.Restore(snap.Plots); err != nil {
		return err
	}
	s.livestock.Restore(snap.Livestock)
	s.market.Restore(snap.Market)
	s.actions.Restore(snap.ActiveActions)
	s.progress.Restore(snap.PlayerLevel, snap.PlayerXP)

	s.mu.Lock()
	s.env = snap.Environment
	s.lastSeason = clock.SeasonForDay(snap.Time.Day)
	s.mu.Unlock()
	s.plots.SetEnvironment(snap.Environment)

	s.log.Info("farm state restored", "day", snap.Time.Day, "level", snap.PlayerLevel)
	return nil
}
