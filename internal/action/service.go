package action

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/ilerise/farmsim/internal/domain"
	"github.com/ilerise/farmsim/internal/ledger"
	"github.com/ilerise/farmsim/internal/plot"
)

// SeedsPerPlanting is the seed stock consumed by one planting action.
const SeedsPerPlanting = 10

// Result is one resolved action: the deltas it applied, plus the
// harvest outcome when the action was a harvest.
type Result struct {
	Action  domain.ActiveAction    `json:"action"`
	Changes domain.AppliedChanges  `json:"changes,omitempty"`
	Harvest *domain.HarvestOutcome `json:"harvest,omitempty"`
}

// Service validates, schedules and resolves farm actions. Costs are
// charged up front at execution; effects land when the action's day
// range elapses during the daily resolution pass.
type Service struct {
	mu      sync.Mutex
	catalog *Catalog
	ledger  *ledger.Ledger
	plots   *plot.Manager
	active  []domain.ActiveAction
	log     *slog.Logger
}

// NewService creates the action service.
func NewService(catalog *Catalog, l *ledger.Ledger, plots *plot.Manager, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		catalog: catalog,
		ledger:  l,
		plots:   plots,
		log:     log,
	}
}

// IsAvailable checks whether an action can be started on a plot right
// now. It reports a reason instead of an error; unavailability is an
// expected query outcome.
func (s *Service) IsAvailable(actionID string, p domain.Plot, playerLevel int) domain.Availability {
	def, err := s.catalog.Get(actionID)
	if err != nil {
		return domain.Availability{Reason: domain.ErrMsgActionNotFound}
	}

	if playerLevel < def.UnlockLevel {
		return domain.Availability{Reason: fmt.Sprintf("level %d required", def.UnlockLevel)}
	}

	if !s.ledger.HasResources(def.Cost) {
		return domain.Availability{Reason: domain.ErrMsgInsufficientResources}
	}

	for _, req := range def.Requires {
		switch req {
		case domain.PrereqPlowed:
			if !p.IsPlowed {
				return domain.Availability{Reason: domain.ErrMsgPlotNotPlowed}
			}
		case domain.PrereqMatureCrop:
			if !p.IsPlanted || p.GrowthStage < domain.StageMaturation {
				return domain.Availability{Reason: domain.ErrMsgCropNotMature}
			}
		}
	}

	if !def.Repeatable {
		for _, done := range p.ActionsHistory {
			if done == actionID {
				return domain.Availability{Reason: domain.ErrMsgActionNotRepeatable}
			}
		}
	}

	return domain.Availability{Available: true}
}

// AvailableFor returns every catalog action a player has unlocked,
// each annotated with its availability on the given plot.
func (s *Service) AvailableFor(p domain.Plot, playerLevel int) map[string]domain.Availability {
	out := make(map[string]domain.Availability)
	for _, def := range s.catalog.All() {
		if def.UnlockLevel > playerLevel {
			continue
		}
		out[def.ID] = s.IsAvailable(def.ID, p, playerLevel)
	}
	return out
}

// Execute charges an action's cost and schedules it on a plot. cropID
// is only meaningful for planting actions, where it selects the crop
// and its seed cost.
func (s *Service) Execute(actionID string, plotID int, cropID string, currentDay, playerLevel int) (domain.ActiveAction, error) {
	def, err := s.catalog.Get(actionID)
	if err != nil {
		return domain.ActiveAction{}, err
	}

	p, err := s.plots.Get(plotID)
	if err != nil {
		return domain.ActiveAction{}, err
	}

	if avail := s.IsAvailable(actionID, p, playerLevel); !avail.Available {
		return domain.ActiveAction{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, avail.Reason)
	}

	cost := def.Cost
	if isPlanting(def) {
		if cropID == "" {
			return domain.ActiveAction{}, fmt.Errorf("%w: planting needs a crop", domain.ErrInvalidInput)
		}
		cost = append(append(domain.Cost{}, cost...), domain.Seeds(cropID, SeedsPerPlanting))
	}

	if !s.ledger.Consume(cost, def.ID) {
		return domain.ActiveAction{}, domain.ErrInsufficientResources
	}

	act := domain.ActiveAction{
		ActionID: actionID,
		PlotID:   plotID,
		StartDay: currentDay,
		EndDay:   currentDay + def.Duration,
		Status:   domain.ActionInProgress,
	}
	if isPlanting(def) {
		act.CropID = cropID
	}

	s.mu.Lock()
	s.active = append(s.active, act)
	s.mu.Unlock()

	s.log.Info("action started", "action", actionID, "plot", plotID, "ends", act.EndDay)
	return act, nil
}

func isPlanting(def *domain.ActionDef) bool {
	for _, e := range def.Effects {
		if e.Kind == domain.EffectPlant {
			return true
		}
	}
	return false
}

// Resolve completes every active action whose end day has arrived and
// applies its effects. Called once per day from the orchestrator, after
// plot updates.
func (s *Service) Resolve(currentDay, playerLevel int) []Result {
	s.mu.Lock()
	var due []domain.ActiveAction
	remaining := s.active[:0]
	for _, a := range s.active {
		if currentDay >= a.EndDay {
			a.Status = domain.ActionCompleted
			due = append(due, a)
		} else {
			remaining = append(remaining, a)
		}
	}
	s.active = remaining
	s.mu.Unlock()

	results := make([]Result, 0, len(due))
	for _, a := range due {
		results = append(results, s.complete(a, playerLevel))
	}
	return results
}

func (s *Service) complete(a domain.ActiveAction, playerLevel int) Result {
	def, err := s.catalog.Get(a.ActionID)
	if err != nil {
		s.log.Error("active action missing from catalog", "action", a.ActionID)
		return Result{Action: a}
	}

	res := Result{Action: a}

	var soil []domain.Effect
	for _, e := range def.Effects {
		switch e.Kind {
		case domain.EffectPlant:
			if err := s.plots.PlantCrop(a.PlotID, a.CropID, playerLevel); err != nil {
				s.log.Warn("planting failed at resolution", "plot", a.PlotID, "crop", a.CropID, "error", err)
			}
		case domain.EffectHarvestYield:
			out, err := s.plots.Harvest(a.PlotID)
			if err != nil {
				s.log.Warn("harvest failed at resolution", "plot", a.PlotID, "error", err)
			} else {
				res.Harvest = &out
			}
		default:
			soil = append(soil, e)
		}
	}

	if len(soil) > 0 {
		changes, err := s.plots.ApplyEffects(a.PlotID, soil)
		if err != nil {
			s.log.Warn("effect application failed", "action", a.ActionID, "plot", a.PlotID, "error", err)
		} else {
			res.Changes = changes
		}
	}

	if a.ActionID == "plow" {
		if err := s.plots.MarkPlowed(a.PlotID); err != nil {
			s.log.Warn("plow flag not set", "plot", a.PlotID, "error", err)
		}
	}

	s.plots.RecordAction(a.PlotID, a.ActionID)
	s.log.Info("action completed", "action", a.ActionID, "plot", a.PlotID)
	return res
}

// Cancel drops an in-progress action without refunding its cost.
func (s *Service) Cancel(actionID string, plotID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.active {
		if a.ActionID == actionID && a.PlotID == plotID && a.Status == domain.ActionInProgress {
			s.active = append(s.active[:i], s.active[i+1:]...)
			s.log.Info("action cancelled", "action", actionID, "plot", plotID)
			return true
		}
	}
	return false
}

// Active returns a copy of the in-progress action queue.
func (s *Service) Active() []domain.ActiveAction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ActiveAction, len(s.active))
	copy(out, s.active)
	return out
}

// Restore replaces the in-progress queue from a snapshot.
func (s *Service) Restore(active []domain.ActiveAction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = make([]domain.ActiveAction, len(active))
	copy(s.active, active)
}
