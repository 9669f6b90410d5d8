package ledger

import (
	"sync"
	"time"

	"github.com/ilerise/farmsim/internal/domain"
)

// PersistedTransactionLimit bounds how many transactions are carried in
// a snapshot. The in-memory log is unbounded.
const PersistedTransactionLimit = 50

// Ledger is the single source of truth for all resource stocks. All
// mutation is funneled through Consume and Add; no component mutates
// stock levels directly.
type Ledger struct {
	mu           sync.RWMutex
	stocks       map[domain.ResourceCategory]map[string]float64
	capacities   map[domain.ResourceCategory]map[string]float64
	transactions []domain.Transaction
	now          func() time.Time
}

// New creates a ledger with the standard starting stocks and capacities.
func New() *Ledger {
	l := &Ledger{
		stocks:     defaultStocks(),
		capacities: defaultCapacities(),
		now:        time.Now,
	}
	return l
}

func defaultStocks() map[domain.ResourceCategory]map[string]float64 {
	return map[domain.ResourceCategory]map[string]float64{
		domain.ResourceMoney: {"": 500},
		domain.ResourceWater: {"": 1000},
		domain.ResourceSeeds: {
			"maize": 50, "cowpea": 30, "rice": 20,
			"cassava": 15, "cacao": 10, "cotton": 25,
		},
		domain.ResourceFertilizers: {
			"organic": 100, "npk": 50, "urea": 30, "phosphate": 20,
		},
		domain.ResourcePesticides: {"natural": 10, "chemical": 5},
		domain.ResourceHarvest: {
			"maize": 0, "cowpea": 0, "rice": 0,
			"cassava": 0, "cacao": 0, "cotton": 0,
		},
		domain.ResourceAnimalProducts: {"eggs": 0, "milk": 0, "manure": 0},
	}
}

func defaultCapacities() map[domain.ResourceCategory]map[string]float64 {
	return map[domain.ResourceCategory]map[string]float64{
		domain.ResourceWater: {"": 2000},
		domain.ResourceFertilizers: {
			"organic": 500, "npk": 200, "urea": 100, "phosphate": 100,
		},
		domain.ResourcePesticides: {"natural": 50, "chemical": 20},
		domain.ResourceHarvest: {
			"maize": 10, "cowpea": 10, "rice": 10,
			"cassava": 10, "cacao": 10, "cotton": 10,
		},
		domain.ResourceAnimalProducts: {"eggs": 100, "milk": 50, "manure": 500},
	}
}

// HasResources reports whether every component of cost is available.
// Pure check, no mutation.
func (l *Ledger) HasResources(cost domain.Cost) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.hasLocked(cost)
}

func (l *Ledger) hasLocked(cost domain.Cost) bool {
	for _, a := range cost {
		if l.stocks[a.Category][a.Item] < a.Quantity {
			return false
		}
	}
	return true
}

// Consume atomically deducts cost. If any single component is
// insufficient, nothing is deducted and Consume returns false.
// Insufficient funds are an expected outcome, not an error.
func (l *Ledger) Consume(cost domain.Cost, reason string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.hasLocked(cost) {
		return false
	}

	for _, a := range cost {
		l.stocks[a.Category][a.Item] -= a.Quantity
	}

	l.transactions = append(l.transactions, domain.Transaction{
		Timestamp: l.now(),
		Kind:      domain.TransactionExpense,
		Reason:    reason,
		Deltas:    cloneCost(cost),
	})
	return true
}

// Add credits gain, clamping each component to its capacity ceiling.
// A zero/absent capacity means unbounded.
func (l *Ledger) Add(gain domain.Cost, source string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, a := range gain {
		if l.stocks[a.Category] == nil {
			l.stocks[a.Category] = make(map[string]float64)
		}
		next := l.stocks[a.Category][a.Item] + a.Quantity
		if cap := l.capacities[a.Category][a.Item]; cap > 0 && next > cap {
			next = cap
		}
		l.stocks[a.Category][a.Item] = next
	}

	l.transactions = append(l.transactions, domain.Transaction{
		Timestamp: l.now(),
		Kind:      domain.TransactionIncome,
		Reason:    source,
		Deltas:    cloneCost(gain),
	})
}

// Get returns the current quantity of one (category, item) stock.
// Item is empty for scalar categories.
func (l *Ledger) Get(category domain.ResourceCategory, item string) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.stocks[category][item]
}

// Set overwrites a stock directly. Intended for load/admin paths only;
// it does not append a transaction.
func (l *Ledger) Set(category domain.ResourceCategory, item string, quantity float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stocks[category] == nil {
		l.stocks[category] = make(map[string]float64)
	}
	l.stocks[category][item] = quantity
}

// Capacity returns the capacity ceiling for a stock; 0 means unbounded.
func (l *Ledger) Capacity(category domain.ResourceCategory, item string) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.capacities[category][item]
}

// IsFull reports whether a stock has reached its capacity.
func (l *Ledger) IsFull(category domain.ResourceCategory, item string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	cap := l.capacities[category][item]
	return cap > 0 && l.stocks[category][item] >= cap
}

// History returns the most recent limit transactions, newest first.
func (l *Ledger) History(limit int) []domain.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := len(l.transactions)
	if limit > n {
		limit = n
	}
	out := make([]domain.Transaction, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, l.transactions[i])
	}
	return out
}

// Summary returns a deep copy of all stocks for read-only display.
func (l *Ledger) Summary() map[domain.ResourceCategory]map[string]float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneStocks(l.stocks)
}

// State captures the serializable ledger state. The transaction log is
// truncated to PersistedTransactionLimit entries.
func (l *Ledger) State() domain.LedgerState {
	l.mu.RLock()
	defer l.mu.RUnlock()

	txns := l.transactions
	if len(txns) > PersistedTransactionLimit {
		txns = txns[len(txns)-PersistedTransactionLimit:]
	}
	out := make([]domain.Transaction, len(txns))
	copy(out, txns)

	return domain.LedgerState{
		Stocks:       cloneStocks(l.stocks),
		Transactions: out,
	}
}

// Restore replaces the ledger's stocks and transaction log from a
// snapshot. Capacities are configuration, not state, and are kept.
func (l *Ledger) Restore(state domain.LedgerState) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if state.Stocks != nil {
		l.stocks = cloneStocks(state.Stocks)
	}
	l.transactions = make([]domain.Transaction, len(state.Transactions))
	copy(l.transactions, state.Transactions)
}

func cloneCost(c domain.Cost) domain.Cost {
	out := make(domain.Cost, len(c))
	copy(out, c)
	return out
}

func cloneStocks(in map[domain.ResourceCategory]map[string]float64) map[domain.ResourceCategory]map[string]float64 {
	out := make(map[domain.ResourceCategory]map[string]float64, len(in))
	for cat, items := range in {
		m := make(map[string]float64, len(items))
		for k, v := range items {
			m[k] = v
		}
		out[cat] = m
	}
	return out
}
