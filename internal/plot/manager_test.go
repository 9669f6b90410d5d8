package plot

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilerise/farmsim/internal/crop"
	"github.com/ilerise/farmsim/internal/domain"
	"github.com/ilerise/farmsim/internal/ledger"
)

func newManager(t *testing.T) (*Manager, *ledger.Ledger) {
	t.Helper()
	cat, err := crop.Load("../../configs/crops.json")
	require.NoError(t, err)

	l := ledger.New()
	env := domain.EnvironmentData{SoilMoisture: 20, Temperature: 28}
	m := New(l, cat, env, rand.New(rand.NewSource(1)), nil)
	return m, l
}

func plant(t *testing.T, m *Manager, plotID int, cropID string) {
	t.Helper()
	require.NoError(t, m.MarkPlowed(plotID))
	require.NoError(t, m.PlantCrop(plotID, cropID, 10))
}

func TestDefaultPlots(t *testing.T) {
	m, _ := newManager(t)

	p1, err := m.Get(1)
	require.NoError(t, err)
	assert.True(t, p1.Unlocked)
	assert.Equal(t, 100.0, p1.Size)
	assert.Equal(t, 30.0, p1.SoilMoisture)

	p4, err := m.Get(4)
	require.NoError(t, err)
	assert.False(t, p4.Unlocked)
	assert.Equal(t, 10, p4.UnlockLevel)
	assert.Equal(t, 1000.0, p4.UnlockCost)

	_, err = m.Get(9)
	assert.ErrorIs(t, err, domain.ErrPlotNotFound)
}

func TestUnlockPlot(t *testing.T) {
	m, l := newManager(t)

	// level too low
	err := m.UnlockPlot(2, 1)
	assert.ErrorIs(t, err, domain.ErrLevelRequired)

	// level ok, 500 money covers the 200 cost
	require.NoError(t, m.UnlockPlot(2, 3))
	assert.Equal(t, 300.0, l.Get(domain.ResourceMoney, ""))

	// idempotent, no second charge
	require.NoError(t, m.UnlockPlot(2, 3))
	assert.Equal(t, 300.0, l.Get(domain.ResourceMoney, ""))

	// cannot afford plot 3
	err = m.UnlockPlot(3, 10)
	assert.ErrorIs(t, err, domain.ErrInsufficientResources)
}

func TestPlantRequiresPlow(t *testing.T) {
	m, _ := newManager(t)

	err := m.PlantCrop(1, "maize", 1)
	assert.ErrorIs(t, err, domain.ErrPlotNotPlowed)

	require.NoError(t, m.MarkPlowed(1))
	require.NoError(t, m.PlantCrop(1, "maize", 1))

	p, _ := m.Get(1)
	assert.True(t, p.IsPlanted)
	assert.Equal(t, domain.StageGermination, p.GrowthStage)
	assert.Equal(t, 100, p.PlantCount)
}

func TestPlantChecks(t *testing.T) {
	m, _ := newManager(t)

	assert.ErrorIs(t, m.PlantCrop(2, "maize", 1), domain.ErrPlotLocked)

	require.NoError(t, m.MarkPlowed(1))
	assert.ErrorIs(t, m.PlantCrop(1, "wheat", 1), domain.ErrCropNotFound)
	assert.ErrorIs(t, m.PlantCrop(1, "cacao", 1), domain.ErrLevelRequired)

	require.NoError(t, m.PlantCrop(1, "maize", 1))
	assert.ErrorIs(t, m.PlantCrop(1, "maize", 1), domain.ErrPlotAlreadyPlanted)
}

func TestStageFor(t *testing.T) {
	c := &domain.Crop{GrowthDuration: 100}

	tests := []struct {
		days int
		want domain.GrowthStage
	}{
		{0, domain.StageGermination},
		{14, domain.StageGermination},
		{15, domain.StageVegetative},
		{49, domain.StageVegetative},
		{50, domain.StageFlowering},
		{74, domain.StageFlowering},
		{75, domain.StageMaturation},
		{99, domain.StageMaturation},
		{100, domain.StageOverripe},
		{150, domain.StageOverripe},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StageFor(c, tt.days), "day %d", tt.days)
	}
}

func TestUpdateAllAdvancesPlantedPlots(t *testing.T) {
	m, _ := newManager(t)
	plant(t, m, 1, "maize")

	mods := domain.EnvModifiers{Evaporation: 1.0}
	m.UpdateAll(mods)

	p, _ := m.Get(1)
	assert.Equal(t, 1, p.DaysSincePlant)
	assert.Equal(t, 28.0, p.SoilMoisture) // 30 - 2

	// empty plots do not age
	p2, _ := m.Get(2)
	assert.Equal(t, 0, p2.DaysSincePlant)
}

func TestRainfallRefillsMoisture(t *testing.T) {
	m, _ := newManager(t)
	plant(t, m, 1, "maize")

	m.UpdateAll(domain.EnvModifiers{Evaporation: 1.0, Rainfall: 10})
	p, _ := m.Get(1)
	assert.Equal(t, 38.0, p.SoilMoisture) // 30 - 2 + 10
}

func TestNPKConsumedFromVegetativeStage(t *testing.T) {
	m, _ := newManager(t)
	plant(t, m, 1, "maize")

	// germination days: no NPK draw
	m.UpdateAll(domain.EnvModifiers{})
	p, _ := m.Get(1)
	assert.Equal(t, 50.0, p.NPKLevel)

	// advance into vegetative (day 14 of 90 is 15.5%)
	for i := 0; i < 13; i++ {
		m.UpdateAll(domain.EnvModifiers{})
	}
	p, _ = m.Get(1)
	require.Equal(t, domain.StageVegetative, p.GrowthStage)
	npkAtVegetative := p.NPKLevel

	m.UpdateAll(domain.EnvModifiers{})
	p, _ = m.Get(1)
	assert.Equal(t, npkAtVegetative-1, p.NPKLevel)
}

func TestHarvestRejectsImmature(t *testing.T) {
	m, _ := newManager(t)
	plant(t, m, 1, "maize")

	_, err := m.Harvest(1)
	assert.ErrorIs(t, err, domain.ErrCropNotMature)

	_, err = m.Harvest(2)
	assert.ErrorIs(t, err, domain.ErrPlotNotPlanted)
}

func TestHarvestCreditsLedgerAndResets(t *testing.T) {
	m, l := newManager(t)
	plant(t, m, 1, "maize")

	// hold conditions near optimal while the crop matures
	for day := 0; day < 70; day++ {
		m.UpdateAll(domain.EnvModifiers{})
		_, err := m.ApplyEffects(1, []domain.Effect{
			{Kind: domain.EffectSoilMoisture, Amount: 10},
			{Kind: domain.EffectNPKLevel, Amount: 2},
			{Kind: domain.EffectWeedLevel, Amount: -50},
			{Kind: domain.EffectPestLevel, Amount: -50},
		})
		require.NoError(t, err)
	}

	p, _ := m.Get(1)
	require.GreaterOrEqual(t, p.GrowthStage, domain.StageMaturation)

	out, err := m.Harvest(1)
	require.NoError(t, err)
	assert.Equal(t, "maize", out.CropID)
	assert.Greater(t, out.Yield, 0.0)
	// 100 m² plot is 1% of a hectare
	assert.InDelta(t, out.Result.ActualYield*0.01, out.Yield, 1e-9)
	assert.Equal(t, out.Yield, l.Get(domain.ResourceHarvest, "maize"))

	p, _ = m.Get(1)
	assert.False(t, p.IsPlanted)
	assert.False(t, p.IsPlowed)
	assert.Empty(t, p.CropID)
	assert.Equal(t, domain.StageEmpty, p.GrowthStage)
	assert.Equal(t, 65.0, p.SoilQuality) // 70 - 5
	assert.Equal(t, 40.0, p.SoilOrganic) // 50 - 10
	assert.GreaterOrEqual(t, p.NPKLevel, 20.0)
}

func TestApplyEffectsClamps(t *testing.T) {
	m, _ := newManager(t)

	changes, err := m.ApplyEffects(1, []domain.Effect{
		{Kind: domain.EffectSoilMoisture, Amount: 200},
	})
	require.NoError(t, err)
	// 30 -> 100, delta reported is what actually applied
	assert.Equal(t, 70.0, changes[domain.EffectSoilMoisture])

	changes, err = m.ApplyEffects(1, []domain.Effect{
		{Kind: domain.EffectPH, Amount: 5},
	})
	require.NoError(t, err)
	p, _ := m.Get(1)
	assert.Equal(t, domain.PHMax, p.PH)
	assert.InDelta(t, 1.5, changes[domain.EffectPH], 1e-9)

	_, err = m.ApplyEffects(1, []domain.Effect{{Kind: domain.EffectPlant}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStateRestoreRoundTrip(t *testing.T) {
	m, _ := newManager(t)
	plant(t, m, 1, "maize")
	m.UpdateAll(domain.EnvModifiers{Evaporation: 1.0})

	state := m.State()
	require.Len(t, state, 4)
	assert.Equal(t, "maize", state[0].CropID)

	m2, _ := newManager(t)
	require.NoError(t, m2.Restore(state))

	p, err := m2.Get(1)
	require.NoError(t, err)
	assert.True(t, p.IsPlanted)
	require.NotNil(t, p.Crop)
	assert.Equal(t, "maize", p.Crop.ID)
	assert.Equal(t, 1, p.DaysSincePlant)
}

func TestRestoreUnknownCrop(t *testing.T) {
	m, _ := newManager(t)

	err := m.Restore([]domain.Plot{{ID: 1, IsPlanted: true, CropID: "wheat"}})
	assert.ErrorIs(t, err, domain.ErrCropNotFound)
}

func TestSummaries(t *testing.T) {
	m, _ := newManager(t)
	plant(t, m, 1, "maize")

	sums := m.Summaries()
	require.Len(t, sums, 4)
	assert.Equal(t, "Maize", sums[0].Crop)
	assert.Equal(t, "0/90", sums[0].Progress)
	assert.Equal(t, "germination", sums[0].GrowthStage)
	assert.Equal(t, "empty", sums[1].Crop)
}
