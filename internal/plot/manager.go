package plot

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"

	"github.com/ilerise/farmsim/internal/crop"
	"github.com/ilerise/farmsim/internal/domain"
	"github.com/ilerise/farmsim/internal/ledger"
	"github.com/ilerise/farmsim/internal/simulation"
)

// pestOutbreakChance is the per-day probability of a pest outbreak on
// a plot whose resistance is below pestResistanceFloor.
const (
	pestOutbreakChance  = 0.05
	pestResistanceFloor = 30.0
	initialPlantCount   = 100
	squareMetersPerHa   = 10000.0
)

// Manager owns the plots and their daily state transitions. All access
// goes through the mutex; callbacks from the clock and commands from
// the API arrive on different goroutines.
type Manager struct {
	mu     sync.Mutex
	plots  []*domain.Plot
	ledger *ledger.Ledger
	crops  *crop.Catalog
	env    domain.EnvironmentData
	rng    *rand.Rand
	log    *slog.Logger
}

// New creates a manager with the standard four plots: the first
// unlocked, the rest gated behind player levels and money.
func New(l *ledger.Ledger, crops *crop.Catalog, env domain.EnvironmentData, rng *rand.Rand, log *slog.Logger) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		plots:  defaultPlots(),
		ledger: l,
		crops:  crops,
		env:    env,
		rng:    rng,
		log:    log,
	}
}

// SetEnvironment replaces the ambient environment readings used by
// degradation and harvest.
func (m *Manager) SetEnvironment(env domain.EnvironmentData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.env = env
}

func defaultPlots() []*domain.Plot {
	newPlot := func(id int, size float64, unlocked bool, unlockLevel int, unlockCost float64) *domain.Plot {
		return &domain.Plot{
			ID:           id,
			Name:         fmt.Sprintf("Plot %d", id),
			Size:         size,
			Unlocked:     unlocked,
			UnlockLevel:  unlockLevel,
			UnlockCost:   unlockCost,
			Health:       domain.HealthMax,
			SoilMoisture: 30,
			NPKLevel:     50,
			PH:           6.5,
			SoilQuality:  70,
			SoilOrganic:  50,
		}
	}
	return []*domain.Plot{
		newPlot(1, 100, true, 0, 0),
		newPlot(2, 100, false, 3, 200),
		newPlot(3, 150, false, 7, 500),
		newPlot(4, 150, false, 10, 1000),
	}
}

func (m *Manager) find(plotID int) (*domain.Plot, error) {
	for _, p := range m.plots {
		if p.ID == plotID {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", domain.ErrPlotNotFound, plotID)
}

// Get returns a copy of one plot's state.
func (m *Manager) Get(plotID int) (domain.Plot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.find(plotID)
	if err != nil {
		return domain.Plot{}, err
	}
	return *p, nil
}

// UnlockPlot pays the unlock cost and opens a plot. Unlocking an
// already open plot succeeds without charge.
func (m *Manager) UnlockPlot(plotID, playerLevel int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.find(plotID)
	if err != nil {
		return err
	}
	if p.Unlocked {
		return nil
	}
	if playerLevel < p.UnlockLevel {
		return fmt.Errorf("%w: level %d needed", domain.ErrLevelRequired, p.UnlockLevel)
	}
	if !m.ledger.Consume(domain.Cost{domain.Money(p.UnlockCost)}, fmt.Sprintf("unlock plot %d", plotID)) {
		return domain.ErrInsufficientResources
	}

	p.Unlocked = true
	m.log.Info("plot unlocked", "plot", plotID)
	return nil
}

// MarkPlowed flips the plowed flag after a plow action completes.
func (m *Manager) MarkPlowed(plotID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.find(plotID)
	if err != nil {
		return err
	}
	p.IsPlowed = true
	return nil
}

// PlantCrop assigns a crop to a plowed, empty plot and starts its
// growth cycle. Seed consumption is the action layer's concern.
func (m *Manager) PlantCrop(plotID int, cropID string, playerLevel int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.find(plotID)
	if err != nil {
		return err
	}
	if !p.Unlocked {
		return fmt.Errorf("%w: %d", domain.ErrPlotLocked, plotID)
	}
	if p.IsPlanted {
		return fmt.Errorf("%w: %d", domain.ErrPlotAlreadyPlanted, plotID)
	}
	if !p.IsPlowed {
		return fmt.Errorf("%w: %d", domain.ErrPlotNotPlowed, plotID)
	}

	c, err := m.crops.Get(cropID)
	if err != nil {
		return err
	}
	if playerLevel < c.UnlockLevel {
		return fmt.Errorf("%w: level %d needed for %s", domain.ErrLevelRequired, c.UnlockLevel, cropID)
	}

	p.CropID = c.ID
	p.Crop = c
	p.IsPlanted = true
	p.DaysSincePlant = 0
	p.GrowthStage = domain.StageGermination
	p.PlantCount = initialPlantCount

	m.log.Info("crop planted", "plot", plotID, "crop", cropID)
	return nil
}

// UpdateAll runs the daily state transition on every planted plot.
func (m *Manager) UpdateAll(mods domain.EnvModifiers) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.plots {
		if p.IsPlanted && p.Crop != nil {
			m.updatePlot(p, mods)
		}
	}
}

func (m *Manager) updatePlot(p *domain.Plot, mods domain.EnvModifiers) {
	p.DaysSincePlant++

	m.degrade(p, mods)
	p.GrowthStage = StageFor(p.Crop, p.DaysSincePlant)
	p.Health = health(p)
	m.grow(p)
}

func (m *Manager) degrade(p *domain.Plot, mods domain.EnvModifiers) {
	p.SoilMoisture = math.Max(0, p.SoilMoisture-mods.Evaporation*2)
	if mods.Rainfall > 0 {
		p.SoilMoisture = math.Min(domain.SoilMoistureMax, p.SoilMoisture+mods.Rainfall)
	}

	if p.GrowthStage >= domain.StageVegetative {
		p.NPKLevel = math.Max(0, p.NPKLevel-1)
	}

	if p.WeedLevel < domain.WeedLevelMax {
		p.WeedLevel = math.Min(domain.WeedLevelMax, p.WeedLevel+m.rng.Float64()*3)
	}

	if m.rng.Float64() < pestOutbreakChance && p.PestResistance < pestResistanceFloor {
		p.PestLevel = math.Min(domain.PestLevelMax, p.PestLevel+m.rng.Float64()*10)
	} else if p.PestResistance > 0 {
		p.PestLevel = math.Max(0, p.PestLevel-2)
		p.PestResistance = math.Max(0, p.PestResistance-5)
	}
}

// StageFor derives the growth stage from elapsed days alone.
func StageFor(c *domain.Crop, daysSincePlant int) domain.GrowthStage {
	progress := float64(daysSincePlant) / float64(c.GrowthDuration)
	switch {
	case progress < 0.15:
		return domain.StageGermination
	case progress < 0.50:
		return domain.StageVegetative
	case progress < 0.75:
		return domain.StageFlowering
	case progress < 1.0:
		return domain.StageMaturation
	default:
		return domain.StageOverripe
	}
}

func health(p *domain.Plot) float64 {
	h := domain.HealthMax

	h -= math.Abs(p.SoilMoisture-p.Crop.WaterNeed.Optimal) * 0.5
	h -= math.Max(0, p.Crop.NPKNeed.Optimal-p.NPKLevel) * 0.3
	h -= p.WeedLevel * 0.2
	h -= p.PestLevel * 0.4
	h -= math.Abs(p.PH-p.Crop.PHRange.Optimal) * 5

	return math.Max(0, math.Min(domain.HealthMax, h))
}

func (m *Manager) grow(p *domain.Plot) {
	waterFactor := p.SoilMoisture / 100
	nutrientFactor := p.NPKLevel / 100
	healthFactor := p.Health / 100

	// canopy stops expanding after flowering
	if p.GrowthStage <= domain.StageFlowering {
		p.LAI = math.Min(domain.LAIMax, p.LAI+0.2*waterFactor*nutrientFactor*healthFactor)
	}
	p.Biomass += p.LAI * 5 * healthFactor
}

// Harvest runs the yield model on a mature plot, credits the tonnage to
// the ledger and resets the plot for the next cycle.
func (m *Manager) Harvest(plotID int) (domain.HarvestOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.find(plotID)
	if err != nil {
		return domain.HarvestOutcome{}, err
	}
	if !p.IsPlanted || p.Crop == nil {
		return domain.HarvestOutcome{}, fmt.Errorf("%w: %d", domain.ErrPlotNotPlanted, plotID)
	}
	if p.GrowthStage < domain.StageMaturation {
		return domain.HarvestOutcome{}, fmt.Errorf("%w: stage %s", domain.ErrCropNotMature, p.GrowthStage)
	}

	result := simulation.CalculateYield(p.Crop, simulation.Inputs{
		WaterInput:   p.SoilMoisture,
		SoilMoisture: m.env.SoilMoisture,
		NPKInput:     p.NPKLevel,
		PH:           p.PH,
		Temperature:  m.env.Temperature,
	})

	// yield is t/ha, plots are measured in m²
	tonnage := result.ActualYield * (p.Size / squareMetersPerHa)
	cropID := p.Crop.ID

	m.ledger.Add(domain.Cost{domain.HarvestGoods(cropID, tonnage)}, fmt.Sprintf("harvest plot %d", plotID))
	resetAfterHarvest(p)

	m.log.Info("plot harvested", "plot", plotID, "crop", cropID, "tonnes", tonnage, "stars", result.Stars)

	return domain.HarvestOutcome{CropID: cropID, Yield: tonnage, Result: result}, nil
}

func resetAfterHarvest(p *domain.Plot) {
	p.IsPlanted = false
	p.IsPlowed = false
	p.CropID = ""
	p.Crop = nil
	p.DaysSincePlant = 0
	p.GrowthStage = domain.StageEmpty
	p.PlantCount = 0
	p.Health = domain.HealthMax
	p.Biomass = 0
	p.LAI = 0
	p.ActionsHistory = nil

	// each cycle wears the soil down
	p.SoilQuality -= 5
	p.SoilOrganic -= 10
	p.NPKLevel = math.Max(20, p.NPKLevel-20)
}

// ApplyEffects mutates a plot's soil attributes, clamping each to its
// bounds, and returns the deltas actually applied. The plant and
// harvest_yield kinds are commands, not soil deltas, and are rejected
// here.
func (m *Manager) ApplyEffects(plotID int, effects []domain.Effect) (domain.AppliedChanges, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.find(plotID)
	if err != nil {
		return nil, err
	}

	changes := make(domain.AppliedChanges, len(effects))
	for _, e := range effects {
		before, after, err := applyEffect(p, e)
		if err != nil {
			return nil, err
		}
		changes[e.Kind] = after - before
	}
	return changes, nil
}

func applyEffect(p *domain.Plot, e domain.Effect) (before, after float64, err error) {
	clampTo := func(field *float64, lo, hi float64) (float64, float64) {
		b := *field
		*field = math.Max(lo, math.Min(hi, b+e.Amount))
		return b, *field
	}

	switch e.Kind {
	case domain.EffectSoilMoisture:
		before, after = clampTo(&p.SoilMoisture, 0, domain.SoilMoistureMax)
	case domain.EffectNPKLevel:
		before, after = clampTo(&p.NPKLevel, 0, domain.NPKLevelMax)
	case domain.EffectWeedLevel:
		before, after = clampTo(&p.WeedLevel, 0, domain.WeedLevelMax)
	case domain.EffectPestLevel:
		before, after = clampTo(&p.PestLevel, 0, domain.PestLevelMax)
	case domain.EffectPestResistance:
		before, after = clampTo(&p.PestResistance, 0, 100)
	case domain.EffectPH:
		before, after = clampTo(&p.PH, domain.PHMin, domain.PHMax)
	case domain.EffectSoilQuality:
		before, after = clampTo(&p.SoilQuality, 0, 100)
	case domain.EffectSoilOrganic:
		before, after = clampTo(&p.SoilOrganic, 0, 100)
	default:
		return 0, 0, fmt.Errorf("%w: effect %s", domain.ErrInvalidInput, e.Kind)
	}
	return before, after, nil
}

// RecordAction appends an action id to a plot's history.
func (m *Manager) RecordAction(plotID int, actionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, err := m.find(plotID); err == nil {
		p.ActionsHistory = append(p.ActionsHistory, actionID)
	}
}

// Summaries returns the read-only per-plot view.
func (m *Manager) Summaries() []domain.PlotSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.PlotSummary, 0, len(m.plots))
	for _, p := range m.plots {
		s := domain.PlotSummary{
			ID:          p.ID,
			Name:        p.Name,
			Unlocked:    p.Unlocked,
			IsPlanted:   p.IsPlanted,
			Crop:        "empty",
			Progress:    "-",
			Health:      p.Health,
			GrowthStage: p.GrowthStage.String(),
		}
		if p.Crop != nil {
			s.Crop = p.Crop.DisplayName
			s.Progress = fmt.Sprintf("%d/%d", p.DaysSincePlant, p.Crop.GrowthDuration)
		}
		out = append(out, s)
	}
	return out
}

// State returns a deep copy of all plots for serialization.
func (m *Manager) State() []domain.Plot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Plot, len(m.plots))
	for i, p := range m.plots {
		out[i] = *p
	}
	return out
}

// Restore replaces the plot set from a snapshot and re-resolves each
// planted plot's crop from the catalog.
func (m *Manager) Restore(plots []domain.Plot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	restored := make([]*domain.Plot, len(plots))
	for i := range plots {
		p := plots[i]
		if p.IsPlanted && p.CropID != "" {
			c, err := m.crops.Get(p.CropID)
			if err != nil {
				return fmt.Errorf("restore plot %d: %w", p.ID, err)
			}
			p.Crop = c
		}
		restored[i] = &p
	}
	m.plots = restored
	return nil
}
