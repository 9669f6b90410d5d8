package market

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilerise/farmsim/internal/domain"
	"github.com/ilerise/farmsim/internal/ledger"
)

func newMarket(t *testing.T) (*Market, *ledger.Ledger) {
	t.Helper()
	l := ledger.New()
	return New(l, rand.New(rand.NewSource(1)), nil), l
}

func TestBasePrices(t *testing.T) {
	m, _ := newMarket(t)

	assert.Equal(t, 150.0, m.Price(domain.ResourceHarvest, "maize"))
	assert.Equal(t, 2500.0, m.Price(domain.ResourceHarvest, "cacao"))
	assert.Equal(t, 0.05, m.Price(domain.ResourceWater, ""))
	assert.Equal(t, 0.0, m.Price(domain.ResourceHarvest, "wheat"))
}

func TestBuy(t *testing.T) {
	m, l := newMarket(t)

	cost, err := m.Buy(domain.ResourceSeeds, "maize", 20)
	require.NoError(t, err)
	assert.Equal(t, 40.0, cost)
	assert.Equal(t, 460.0, l.Get(domain.ResourceMoney, ""))
	assert.Equal(t, 70.0, l.Get(domain.ResourceSeeds, "maize"))
}

func TestBuyInsufficientMoney(t *testing.T) {
	m, l := newMarket(t)

	// a tonne of cacao at 2500 exceeds the starting 500
	_, err := m.Buy(domain.ResourceHarvest, "cacao", 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientResources)
	assert.Equal(t, 500.0, l.Get(domain.ResourceMoney, ""))
}

func TestBuyUnpricedItem(t *testing.T) {
	m, _ := newMarket(t)

	_, err := m.Buy(domain.ResourceHarvest, "wheat", 1)
	assert.ErrorIs(t, err, domain.ErrItemNotPriced)
}

func TestSell(t *testing.T) {
	m, l := newMarket(t)
	l.Set(domain.ResourceHarvest, "maize", 2)

	revenue, err := m.Sell(domain.ResourceHarvest, "maize", 2)
	require.NoError(t, err)
	assert.Equal(t, 300.0, revenue)
	assert.Equal(t, 800.0, l.Get(domain.ResourceMoney, ""))
	assert.Equal(t, 0.0, l.Get(domain.ResourceHarvest, "maize"))
}

func TestSellInsufficientStock(t *testing.T) {
	m, _ := newMarket(t)

	_, err := m.Sell(domain.ResourceHarvest, "maize", 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestSellPressureLowersPrice(t *testing.T) {
	m, l := newMarket(t)
	l.Set(domain.ResourceHarvest, "maize", 100)

	before := m.Price(domain.ResourceHarvest, "maize")
	for i := 0; i < 10; i++ {
		_, err := m.Sell(domain.ResourceHarvest, "maize", 1)
		require.NoError(t, err)
	}
	after := m.Price(domain.ResourceHarvest, "maize")
	assert.Less(t, after, before)
}

func TestModifierBounds(t *testing.T) {
	m, l := newMarket(t)
	l.Set(domain.ResourceHarvest, "maize", 10000)

	// hammer the price down; the floor caps the fall at half base
	for i := 0; i < 100; i++ {
		_, err := m.Sell(domain.ResourceHarvest, "maize", 1)
		require.NoError(t, err)
	}
	assert.Equal(t, 75.0, m.Price(domain.ResourceHarvest, "maize"))
}

func TestUpdateFluctuatesAndRecords(t *testing.T) {
	m, _ := newMarket(t)

	for day := 3; day <= 9; day += 3 {
		m.Update(day)
	}

	hist := m.History()
	require.Len(t, hist, 3)
	assert.Equal(t, 3, hist[0].Day)
	assert.Equal(t, 9, hist[2].Day)
	assert.Contains(t, hist[0].Prices, domain.MarketItemKey("harvest.maize"))

	// prices stay within modifier bounds
	for _, crop := range []string{"maize", "cowpea", "rice", "cassava", "cacao", "cotton"} {
		p := m.Price(domain.ResourceHarvest, crop)
		base := basePrices()[domain.MarketItemKey("harvest."+crop)]
		assert.GreaterOrEqual(t, p, base*0.5-1)
		assert.LessOrEqual(t, p, base*2.0+1)
	}
}

func TestHistoryRetention(t *testing.T) {
	m, _ := newMarket(t)

	for day := 1; day <= 40; day++ {
		m.Update(day)
	}
	hist := m.History()
	assert.Len(t, hist, historyDays)
	assert.Equal(t, 11, hist[0].Day)
}

func TestTrends(t *testing.T) {
	m, _ := newMarket(t)

	trends := m.Trends()
	require.Len(t, trends, 6)
	assert.Equal(t, "maize", trends[0].Item)
	assert.Equal(t, domain.TrendStable, trends[0].Trend)
	assert.Equal(t, "+0%", trends[0].Change)
}

func TestStateRestoreRoundTrip(t *testing.T) {
	m, l := newMarket(t)
	l.Set(domain.ResourceHarvest, "maize", 100)
	for i := 0; i < 10; i++ {
		_, err := m.Sell(domain.ResourceHarvest, "maize", 1)
		require.NoError(t, err)
	}
	m.Update(5)

	state := m.State()

	m2, _ := newMarket(t)
	m2.Restore(state)

	assert.Equal(t, m.Price(domain.ResourceHarvest, "maize"), m2.Price(domain.ResourceHarvest, "maize"))
	assert.Equal(t, m.History(), m2.History())
}

func TestRestoreClampsModifiers(t *testing.T) {
	m, _ := newMarket(t)

	m.Restore(domain.MarketState{
		PriceModifiers: map[domain.MarketItemKey]float64{
			"harvest.maize": 9.0,
			"harvest.bogus": 1.5,
		},
	})
	assert.Equal(t, 300.0, m.Price(domain.ResourceHarvest, "maize"))
}
