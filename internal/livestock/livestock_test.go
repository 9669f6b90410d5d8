package livestock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilerise/farmsim/internal/domain"
	"github.com/ilerise/farmsim/internal/ledger"
)

func newService(t *testing.T) (*Service, *ledger.Ledger) {
	t.Helper()
	l := ledger.New()
	return New(l, nil), l
}

func richService(t *testing.T) (*Service, *ledger.Ledger) {
	t.Helper()
	s, l := newService(t)
	l.Set(domain.ResourceMoney, "", 10000)
	return s, l
}

func TestUnlockChickenCoop(t *testing.T) {
	s, l := newService(t)

	require.NoError(t, s.Unlock(Chickens, 1))
	assert.Equal(t, 400.0, l.Get(domain.ResourceMoney, ""))

	st := s.State()
	assert.True(t, st.ChickenCoop.Unlocked)
	assert.Equal(t, 1, st.ChickenCoop.Level)
	assert.Equal(t, 20, st.Chickens.MaxCount)

	// idempotent
	require.NoError(t, s.Unlock(Chickens, 1))
	assert.Equal(t, 400.0, l.Get(domain.ResourceMoney, ""))
}

func TestGoatShedLevelGate(t *testing.T) {
	s, _ := richService(t)

	err := s.Unlock(Goats, 5)
	assert.ErrorIs(t, err, domain.ErrLevelRequired)

	require.NoError(t, s.Unlock(Goats, 8))
	st := s.State()
	assert.Equal(t, 10, st.Goats.MaxCount)
}

func TestUpgrade(t *testing.T) {
	s, _ := richService(t)
	require.NoError(t, s.Unlock(Chickens, 1))

	require.NoError(t, s.Upgrade(Chickens))
	st := s.State()
	assert.Equal(t, 2, st.ChickenCoop.Level)
	assert.Equal(t, 40, st.Chickens.MaxCount)

	require.NoError(t, s.Upgrade(Chickens))
	assert.ErrorIs(t, s.Upgrade(Chickens), domain.ErrMaxLevel)
}

func TestUpgradeRequiresUnlock(t *testing.T) {
	s, _ := richService(t)
	assert.ErrorIs(t, s.Upgrade(Chickens), domain.ErrNotUnlocked)
}

func TestBuyChickens(t *testing.T) {
	s, l := richService(t)
	require.NoError(t, s.Unlock(Chickens, 1))
	moneyBefore := l.Get(domain.ResourceMoney, "")

	require.NoError(t, s.Buy(Chickens, 5))
	assert.Equal(t, moneyBefore-250, l.Get(domain.ResourceMoney, ""))
	assert.Equal(t, 5, s.State().Chickens.Count)

	assert.ErrorIs(t, s.Buy(Chickens, 16), domain.ErrCapacityExceeded)
	assert.ErrorIs(t, s.Buy(Chickens, 0), domain.ErrInvalidInput)
}

func TestBuyLocked(t *testing.T) {
	s, _ := richService(t)
	assert.ErrorIs(t, s.Buy(Chickens, 1), domain.ErrNotUnlocked)
}

func TestFeed(t *testing.T) {
	s, _ := richService(t)
	require.NoError(t, s.Unlock(Chickens, 1))

	assert.ErrorIs(t, s.Feed(Chickens), domain.ErrInsufficientFeed)

	require.NoError(t, s.Buy(Chickens, 10))
	s.Update(5) // feed drains
	require.NoError(t, s.Feed(Chickens))
	assert.Equal(t, 100.0, s.State().Chickens.Feed)
}

func TestChickensLayAfterMaturity(t *testing.T) {
	s, l := richService(t)
	require.NoError(t, s.Unlock(Chickens, 1))
	require.NoError(t, s.Buy(Chickens, 10))

	// young flock produces manure but no eggs
	s.Update(1)
	st := s.State()
	assert.Equal(t, 0.0, st.Eggs)
	assert.Equal(t, 20.0, st.Manure) // 10 birds * 2 kg

	// age past laying threshold, keeping them fed
	day := 1
	for day < 160 {
		day++
		require.NoError(t, s.Feed(Chickens))
		s.Update(day)
	}
	st = s.State()
	assert.Greater(t, st.Eggs, 0.0)

	collected := s.CollectEggs()
	assert.Greater(t, collected, 0.0)
	assert.Equal(t, collected, l.Get(domain.ResourceAnimalProducts, "eggs"))
	assert.Equal(t, 0.0, s.State().Eggs)
}

func TestStarvationDegradesHealth(t *testing.T) {
	s, _ := richService(t)
	require.NoError(t, s.Unlock(Chickens, 1))
	require.NoError(t, s.Buy(Chickens, 5))

	// never feed; feed hits zero and health slides
	for day := 1; day <= 30; day++ {
		s.Update(day)
	}
	st := s.State()
	assert.Equal(t, 0.0, st.Chickens.Feed)
	assert.Less(t, st.Chickens.Health, 100.0)
}

func TestCompostingLifecycle(t *testing.T) {
	s, l := richService(t)
	require.NoError(t, s.Unlock(Chickens, 1))
	require.NoError(t, s.Buy(Chickens, 10))
	require.NoError(t, s.UnlockCompostPit())

	// accumulate manure
	s.Update(5)
	st := s.State()
	require.GreaterOrEqual(t, st.Manure, 100.0)

	organicBefore := l.Get(domain.ResourceFertilizers, "organic")
	require.NoError(t, s.StartComposting(100, 5))

	st = s.State()
	assert.Len(t, st.ActiveComposting, 1)
	assert.Equal(t, 80.0, st.ActiveComposting[0].Output)

	// not done yet
	s.Update(11)
	assert.Equal(t, organicBefore, l.Get(domain.ResourceFertilizers, "organic"))

	// day 12 >= endDay 5+7
	s.Update(12)
	st = s.State()
	assert.Empty(t, st.ActiveComposting)
	assert.Equal(t, 80.0, st.Compost)
	assert.Equal(t, organicBefore+80, l.Get(domain.ResourceFertilizers, "organic"))
}

func TestCompostingGuards(t *testing.T) {
	s, _ := richService(t)

	assert.ErrorIs(t, s.StartComposting(10, 1), domain.ErrNotUnlocked)

	require.NoError(t, s.UnlockCompostPit())
	assert.ErrorIs(t, s.StartComposting(10, 1), domain.ErrInsufficientInput)
	assert.ErrorIs(t, s.StartComposting(-5, 1), domain.ErrInvalidInput)
}

func TestCompostCapacityBound(t *testing.T) {
	s, _ := richService(t)
	require.NoError(t, s.Unlock(Chickens, 1))
	require.NoError(t, s.Buy(Chickens, 20))
	require.NoError(t, s.UnlockCompostPit())

	// 20 birds * 2 kg * 20 days = 800 kg manure
	for day := 1; day <= 20; day++ {
		require.NoError(t, s.Feed(Chickens))
		s.Update(day)
	}

	// level 1 pit holds 500 kg of output
	err := s.StartComposting(700, 20)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	require.NoError(t, s.StartComposting(600, 20)) // 480 kg output fits
}

func TestStateRestoreRoundTrip(t *testing.T) {
	s, _ := richService(t)
	require.NoError(t, s.Unlock(Chickens, 1))
	require.NoError(t, s.Buy(Chickens, 3))
	s.Update(4)

	state := s.State()

	s2, _ := newService(t)
	s2.Restore(state)
	assert.Equal(t, state, s2.State())
}
