package market

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"

	"github.com/ilerise/farmsim/internal/domain"
)

// Price modifier bounds and history retention.
const (
	modifierFloor   = 0.5
	modifierCeiling = 2.0
	historyDays     = 30
	eventChance     = 0.05
	sellPressure    = -0.02
)

// Market holds dynamic prices and trades against the ledger. Prices
// are base price times a bounded modifier that drifts with daily
// fluctuations, market events and sell pressure.
type Market struct {
	mu        sync.Mutex
	base      map[domain.MarketItemKey]float64
	modifiers map[domain.MarketItemKey]float64
	trends    map[domain.MarketItemKey]domain.PriceTrend
	history   []domain.PriceSnapshot
	ledger    ledgerAPI
	rng       *rand.Rand
	log       *slog.Logger
}

// ledgerAPI is the slice of the ledger the market trades through.
type ledgerAPI interface {
	HasResources(cost domain.Cost) bool
	Consume(cost domain.Cost, reason string) bool
	Add(gain domain.Cost, source string)
	Get(category domain.ResourceCategory, item string) float64
}

// Event is a market shock applied to one or more items.
type Event struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func key(category domain.ResourceCategory, item string) domain.MarketItemKey {
	if item == "" {
		return domain.MarketItemKey(category)
	}
	return domain.MarketItemKey(fmt.Sprintf("%s.%s", category, item))
}

// New creates a market with the standard base prices and all modifiers
// at 1.0.
func New(l ledgerAPI, rng *rand.Rand, log *slog.Logger) *Market {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	if log == nil {
		log = slog.Default()
	}

	m := &Market{
		base:      basePrices(),
		modifiers: make(map[domain.MarketItemKey]float64),
		trends:    make(map[domain.MarketItemKey]domain.PriceTrend),
		ledger:    l,
		rng:       rng,
		log:       log,
	}
	for k := range m.base {
		m.modifiers[k] = 1.0
		m.trends[k] = domain.TrendStable
	}
	return m
}

func basePrices() map[domain.MarketItemKey]float64 {
	return map[domain.MarketItemKey]float64{
		key(domain.ResourceSeeds, "maize"):   2,
		key(domain.ResourceSeeds, "cowpea"):  2.5,
		key(domain.ResourceSeeds, "rice"):    3,
		key(domain.ResourceSeeds, "cassava"): 4,
		key(domain.ResourceSeeds, "cacao"):   5,
		key(domain.ResourceSeeds, "cotton"):  2,

		key(domain.ResourceWater, ""): 0.05,

		key(domain.ResourceFertilizers, "organic"):   1.5,
		key(domain.ResourceFertilizers, "npk"):       3,
		key(domain.ResourceFertilizers, "urea"):      2.5,
		key(domain.ResourceFertilizers, "phosphate"): 2,

		key(domain.ResourcePesticides, "natural"):  15,
		key(domain.ResourcePesticides, "chemical"): 25,

		key(domain.ResourceHarvest, "maize"):   150,
		key(domain.ResourceHarvest, "cowpea"):  200,
		key(domain.ResourceHarvest, "rice"):    180,
		key(domain.ResourceHarvest, "cassava"): 100,
		key(domain.ResourceHarvest, "cacao"):   2500,
		key(domain.ResourceHarvest, "cotton"):  300,

		key(domain.ResourceAnimalProducts, "eggs"):   5,
		key(domain.ResourceAnimalProducts, "milk"):   3,
		key(domain.ResourceAnimalProducts, "manure"): 1,
	}
}

// Price returns the current unit price of an item, zero when the item
// is not traded.
func (m *Market) Price(category domain.ResourceCategory, item string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.priceLocked(category, item)
}

func (m *Market) priceLocked(category domain.ResourceCategory, item string) float64 {
	k := key(category, item)
	base, ok := m.base[k]
	if !ok {
		return 0
	}
	price := base * m.modifiers[k]
	if item != "" {
		return math.Round(price)
	}
	return price
}

// Buy purchases quantity units of an item with ledger money.
func (m *Market) Buy(category domain.ResourceCategory, item string, quantity float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	unit := m.priceLocked(category, item)
	if unit == 0 {
		return 0, fmt.Errorf("%w: %s", domain.ErrItemNotPriced, key(category, item))
	}
	total := unit * quantity

	if !m.ledger.Consume(domain.Cost{domain.Money(total)}, fmt.Sprintf("buy %gx %s", quantity, key(category, item))) {
		return 0, domain.ErrInsufficientResources
	}
	m.ledger.Add(domain.Cost{{Category: category, Item: item, Quantity: quantity}}, "market purchase")

	m.log.Info("market buy", "item", key(category, item), "qty", quantity, "cost", total)
	return total, nil
}

// Sell converts stock into money at the current price and applies mild
// downward pressure on that item's price.
func (m *Market) Sell(category domain.ResourceCategory, item string, quantity float64) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ledger.Get(category, item) < quantity {
		return 0, domain.ErrInsufficientStock
	}

	unit := m.priceLocked(category, item)
	if unit == 0 {
		return 0, fmt.Errorf("%w: %s", domain.ErrItemNotPriced, key(category, item))
	}
	total := unit * quantity

	if !m.ledger.Consume(domain.Cost{{Category: category, Item: item, Quantity: quantity}}, fmt.Sprintf("sell %gx %s", quantity, key(category, item))) {
		return 0, domain.ErrInsufficientStock
	}
	m.ledger.Add(domain.Cost{domain.Money(total)}, fmt.Sprintf("sold %gx %s", quantity, key(category, item)))

	m.adjustLocked(key(category, item), sellPressure)

	m.log.Info("market sell", "item", key(category, item), "qty", quantity, "revenue", total)
	return total, nil
}

func (m *Market) adjustLocked(k domain.MarketItemKey, change float64) {
	if _, ok := m.base[k]; !ok {
		return
	}
	m.modifiers[k] = math.Max(modifierFloor, math.Min(modifierCeiling, m.modifiers[k]+change))

	switch {
	case change > 0.05:
		m.trends[k] = domain.TrendRising
	case change < -0.05:
		m.trends[k] = domain.TrendFalling
	default:
		m.trends[k] = domain.TrendStable
	}
}

// Update runs one market cycle: random fluctuations on harvest and
// animal product prices, an occasional market event, and a price
// history record. Returns the triggered event, if any.
func (m *Market) Update(day int) *Event {
	m.mu.Lock()
	defer m.mu.Unlock()

	// harvest prices are the most volatile
	for _, crop := range []string{"maize", "cowpea", "rice", "cassava", "cacao", "cotton"} {
		m.adjustLocked(key(domain.ResourceHarvest, crop), (m.rng.Float64()-0.5)*0.2)
	}
	for _, product := range []string{"eggs", "milk", "manure"} {
		m.adjustLocked(key(domain.ResourceAnimalProducts, product), (m.rng.Float64()-0.5)*0.1)
	}

	var ev *Event
	if m.rng.Float64() < eventChance {
		ev = m.triggerEventLocked()
	}

	m.recordLocked(day)
	m.log.Info("market updated", "day", day)
	return ev
}

func (m *Market) triggerEventLocked() *Event {
	events := []struct {
		Event
		apply func()
	}{
		{Event{"maize demand surge", "High maize demand, prices up 30%"}, func() {
			m.adjustLocked(key(domain.ResourceHarvest, "maize"), 0.3)
		}},
		{Event{"cowpea surplus", "Cowpea surplus on the market, prices down 20%"}, func() {
			m.adjustLocked(key(domain.ResourceHarvest, "cowpea"), -0.2)
		}},
		{Event{"fertilizer price hike", "Mineral fertilizer prices up 25%"}, func() {
			m.adjustLocked(key(domain.ResourceFertilizers, "npk"), 0.25)
			m.adjustLocked(key(domain.ResourceFertilizers, "urea"), 0.25)
		}},
		{Event{"cacao boom", "Cacao market boom, prices up 50%"}, func() {
			m.adjustLocked(key(domain.ResourceHarvest, "cacao"), 0.5)
		}},
		{Event{"cotton crash", "Cotton prices down 30%"}, func() {
			m.adjustLocked(key(domain.ResourceHarvest, "cotton"), -0.3)
		}},
	}

	picked := events[m.rng.Intn(len(events))]
	picked.apply()
	m.log.Info("market event", "event", picked.Name)
	return &picked.Event
}

func (m *Market) recordLocked(day int) {
	snap := domain.PriceSnapshot{Day: day, Prices: make(map[domain.MarketItemKey]float64)}
	for _, crop := range []string{"maize", "cowpea", "rice", "cassava", "cacao", "cotton"} {
		snap.Prices[key(domain.ResourceHarvest, crop)] = m.priceLocked(domain.ResourceHarvest, crop)
	}
	for _, product := range []string{"eggs", "milk", "manure"} {
		snap.Prices[key(domain.ResourceAnimalProducts, product)] = m.priceLocked(domain.ResourceAnimalProducts, product)
	}

	m.history = append(m.history, snap)
	if len(m.history) > historyDays {
		m.history = m.history[len(m.history)-historyDays:]
	}
}

// Trends reports the current harvest price trends.
func (m *Market) Trends() []domain.MarketTrend {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.MarketTrend, 0, 6)
	for _, crop := range []string{"maize", "cowpea", "rice", "cassava", "cacao", "cotton"} {
		k := key(domain.ResourceHarvest, crop)
		mod := m.modifiers[k]
		out = append(out, domain.MarketTrend{
			Category:     domain.ResourceHarvest,
			Item:         crop,
			BasePrice:    m.base[k],
			CurrentPrice: m.priceLocked(domain.ResourceHarvest, crop),
			Change:       fmt.Sprintf("%+.0f%%", (mod-1.0)*100),
			Trend:        m.trends[k],
		})
	}
	return out
}

// History returns the recorded price snapshots, oldest first.
func (m *Market) History() []domain.PriceSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.PriceSnapshot, len(m.history))
	copy(out, m.history)
	return out
}

// State captures the serializable market state.
func (m *Market) State() domain.MarketState {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := domain.MarketState{
		PriceModifiers: make(map[domain.MarketItemKey]float64, len(m.modifiers)),
		Trends:         make(map[domain.MarketItemKey]domain.PriceTrend, len(m.trends)),
		PriceHistory:   make([]domain.PriceSnapshot, len(m.history)),
	}
	for k, v := range m.modifiers {
		state.PriceModifiers[k] = v
	}
	for k, v := range m.trends {
		state.Trends[k] = v
	}
	copy(state.PriceHistory, m.history)
	return state
}

// Restore replaces modifiers, trends and history from a snapshot.
// Unknown keys are dropped; missing keys reset to neutral.
func (m *Market) Restore(state domain.MarketState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k := range m.base {
		m.modifiers[k] = 1.0
		m.trends[k] = domain.TrendStable
	}
	for k, v := range state.PriceModifiers {
		if _, ok := m.base[k]; ok {
			m.modifiers[k] = math.Max(modifierFloor, math.Min(modifierCeiling, v))
		}
	}
	for k, v := range state.Trends {
		if _, ok := m.base[k]; ok {
			m.trends[k] = v
		}
	}
	m.history = make([]domain.PriceSnapshot, len(state.PriceHistory))
	copy(m.history, state.PriceHistory)
}
