package livestock

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/ilerise/farmsim/internal/domain"
	"github.com/ilerise/farmsim/internal/ledger"
)

// Species selects a herd for buy/feed operations.
type Species string

const (
	Chickens Species = "chickens"
	Goats    Species = "goats"
)

const (
	chickenPrice = 50.0
	goatPrice    = 500.0

	// laying and lactation thresholds
	chickenLayAgeDays = 150.0
	chickenLayHealth  = 50.0
	goatMilkAgeDays   = 365.0
	goatMilkHealth    = 60.0

	compostRatio    = 0.8
	compostDays     = 7
	goatUnlockLevel = 8
)

// Service manages herds, livestock buildings and the manure-to-compost
// loop. All spending and production flows through the ledger.
type Service struct {
	mu     sync.Mutex
	state  domain.LivestockState
	ledger *ledger.Ledger
	log    *slog.Logger
}

// New creates the service with everything still locked.
func New(l *ledger.Ledger, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		state: domain.LivestockState{
			Chickens: domain.Herd{Feed: 100, Health: 100, ManurePerDay: 2, FeedPerDay: 0.12},
			Goats:    domain.Herd{Feed: 100, Health: 100, ManurePerDay: 5, FeedPerDay: 2},
			ChickenCoop: domain.Building{
				MaxLevel:    3,
				Capacities:  []float64{0, 20, 40, 60},
				UpgradeCost: []float64{100, 200, 400},
			},
			GoatShed: domain.Building{
				MaxLevel:    2,
				Capacities:  []float64{0, 10, 20},
				UpgradeCost: []float64{500, 1000},
				UnlockLevel: goatUnlockLevel,
			},
			CompostPit: domain.Building{
				MaxLevel:    3,
				Capacities:  []float64{0, 500, 1000, 2000},
				UpgradeCost: []float64{50, 150, 300},
			},
		},
		ledger: l,
		log:    log,
	}
}

func (s *Service) building(sp Species) (*domain.Building, *domain.Herd) {
	if sp == Goats {
		return &s.state.GoatShed, &s.state.Goats
	}
	return &s.state.ChickenCoop, &s.state.Chickens
}

// Unlock pays for level 1 of a species' building and opens the herd.
// Goats additionally require the player level gate.
func (s *Service) Unlock(sp Species, playerLevel int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, herd := s.building(sp)
	if b.Unlocked {
		return nil
	}
	if playerLevel < b.UnlockLevel {
		return fmt.Errorf("%w: level %d needed", domain.ErrLevelRequired, b.UnlockLevel)
	}

	cost := b.UpgradeCost[0]
	if !s.ledger.Consume(domain.Cost{domain.Money(cost)}, fmt.Sprintf("unlock %s housing", sp)) {
		return domain.ErrInsufficientResources
	}

	b.Unlocked = true
	b.Level = 1
	herd.Unlocked = true
	herd.MaxCount = int(b.Capacity())

	s.log.Info("livestock housing unlocked", "species", sp)
	return nil
}

// Upgrade raises a species' building one level, growing herd capacity.
func (s *Service) Upgrade(sp Species) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, herd := s.building(sp)
	if !b.Unlocked {
		return domain.ErrNotUnlocked
	}
	if b.Level >= b.MaxLevel {
		return domain.ErrMaxLevel
	}

	cost := b.UpgradeCost[b.Level]
	if !s.ledger.Consume(domain.Cost{domain.Money(cost)}, fmt.Sprintf("upgrade %s housing to level %d", sp, b.Level+1)) {
		return domain.ErrInsufficientResources
	}

	b.Level++
	herd.MaxCount = int(b.Capacity())

	s.log.Info("livestock housing upgraded", "species", sp, "level", b.Level)
	return nil
}

// UnlockCompostPit pays for level 1 of the compost pit.
func (s *Service) UnlockCompostPit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pit := &s.state.CompostPit
	if pit.Unlocked {
		return nil
	}
	if !s.ledger.Consume(domain.Cost{domain.Money(pit.UpgradeCost[0])}, "unlock compost pit") {
		return domain.ErrInsufficientResources
	}
	pit.Unlocked = true
	pit.Level = 1
	return nil
}

// Buy adds animals to an unlocked herd, bounded by housing capacity.
func (s *Service) Buy(sp Species, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if count <= 0 {
		return domain.ErrInvalidInput
	}

	_, herd := s.building(sp)
	if !herd.Unlocked {
		return domain.ErrNotUnlocked
	}
	if herd.Count+count > herd.MaxCount {
		return domain.ErrCapacityExceeded
	}

	price := chickenPrice
	if sp == Goats {
		price = goatPrice
	}
	cost := float64(count) * price
	if !s.ledger.Consume(domain.Cost{domain.Money(cost)}, fmt.Sprintf("buy %d %s", count, sp)) {
		return domain.ErrInsufficientResources
	}

	herd.Count += count
	s.log.Info("animals bought", "species", sp, "count", count, "herd", herd.Count)
	return nil
}

// Feed refills a herd's feed level, buying grain with money.
func (s *Service) Feed(sp Species) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, herd := s.building(sp)
	if herd.Count == 0 {
		return domain.ErrInsufficientFeed
	}

	grain := float64(herd.Count) * herd.FeedPerDay
	cost := math.Ceil(grain)
	if !s.ledger.Consume(domain.Cost{domain.Money(cost)}, fmt.Sprintf("feed for %s", sp)) {
		return domain.ErrInsufficientResources
	}

	herd.Feed = 100
	s.log.Info("herd fed", "species", sp, "grain_kg", grain)
	return nil
}

// Update advances the husbandry simulation to currentDay: herds age,
// eat and produce, and due compost batches finish.
func (s *Service) Update(currentDay int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if currentDay == s.state.LastUpdateDay {
		return
	}
	days := float64(currentDay - s.state.LastUpdateDay)
	s.state.LastUpdateDay = currentDay

	if s.state.Chickens.Unlocked && s.state.Chickens.Count > 0 {
		s.updateChickens(days)
	}
	if s.state.Goats.Unlocked && s.state.Goats.Count > 0 {
		s.updateGoats(days)
	}
	s.finishComposting(currentDay)
}

func (s *Service) updateChickens(days float64) {
	h := &s.state.Chickens
	ageHerd(h, days, 10, 5, 2)

	if h.AgeDays > chickenLayAgeDays && h.Health > chickenLayHealth {
		// most of a healthy flock lays daily
		laying := math.Floor(float64(h.Count) * (h.Health / 100) * 0.8)
		h.DailyProduction = laying
		s.state.Eggs += laying * days
	} else {
		h.DailyProduction = 0
	}

	s.state.Manure += float64(h.Count) * h.ManurePerDay * days
}

func (s *Service) updateGoats(days float64) {
	h := &s.state.Goats
	ageHerd(h, days, 15, 7, 3)

	if h.AgeDays > goatMilkAgeDays && h.Health > goatMilkHealth {
		litres := float64(h.Count) * (h.Health / 100) * 2
		h.DailyProduction = litres
		s.state.Milk += litres * days
	} else {
		h.DailyProduction = 0
	}

	s.state.Manure += float64(h.Count) * h.ManurePerDay * days
}

func ageHerd(h *domain.Herd, days, feedDrain, starveRate, recoverRate float64) {
	h.AgeDays += days
	h.Feed = math.Max(0, h.Feed-days*feedDrain)

	if h.Feed < 30 {
		h.Health -= days * starveRate
	} else if h.Feed > 70 {
		h.Health = math.Min(100, h.Health+days*recoverRate)
	}
	h.Health = math.Max(0, h.Health)
}

// CollectEggs moves accumulated eggs into the ledger.
func (s *Service) CollectEggs() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	eggs := s.state.Eggs
	if eggs == 0 {
		return 0
	}
	s.ledger.Add(domain.Cost{domain.AnimalProduct("eggs", eggs)}, "egg collection")
	s.state.Eggs = 0

	s.log.Info("eggs collected", "count", eggs)
	return eggs
}

// CollectMilk moves accumulated milk into the ledger.
func (s *Service) CollectMilk() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	milk := s.state.Milk
	if milk == 0 {
		return 0
	}
	s.ledger.Add(domain.Cost{domain.AnimalProduct("milk", milk)}, "milking")
	s.state.Milk = 0
	return milk
}

// StartComposting queues a manure batch for conversion. The pit's
// capacity bounds ready compost plus everything in flight.
func (s *Service) StartComposting(manureKg float64, currentDay int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pit := s.state.CompostPit
	if !pit.Unlocked {
		return domain.ErrNotUnlocked
	}
	if manureKg <= 0 {
		return domain.ErrInvalidInput
	}
	if s.state.Manure < manureKg {
		return domain.ErrInsufficientInput
	}

	output := manureKg * compostRatio
	pending := s.state.Compost + output
	for _, b := range s.state.ActiveComposting {
		pending += b.Output
	}
	if pending > pit.Capacity() {
		return domain.ErrCapacityExceeded
	}

	s.state.Manure -= manureKg
	s.state.ActiveComposting = append(s.state.ActiveComposting, domain.CompostBatch{
		StartDay: currentDay,
		EndDay:   currentDay + compostDays,
		Input:    manureKg,
		Output:   output,
	})

	s.log.Info("composting started", "manure_kg", manureKg, "output_kg", output, "ready_day", currentDay+compostDays)
	return nil
}

func (s *Service) finishComposting(currentDay int) {
	remaining := s.state.ActiveComposting[:0]
	for _, b := range s.state.ActiveComposting {
		if currentDay >= b.EndDay {
			s.state.Compost += b.Output
			s.ledger.Add(domain.Cost{domain.Fertilizer("organic", b.Output)}, "composting finished")
			s.log.Info("compost ready", "kg", b.Output)
		} else {
			remaining = append(remaining, b)
		}
	}
	s.state.ActiveComposting = remaining
}

// State returns a deep copy of the livestock state.
func (s *Service) State() domain.LivestockState {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state
	out.ActiveComposting = append([]domain.CompostBatch(nil), s.state.ActiveComposting...)
	out.ChickenCoop.Capacities = append([]float64(nil), s.state.ChickenCoop.Capacities...)
	out.ChickenCoop.UpgradeCost = append([]float64(nil), s.state.ChickenCoop.UpgradeCost...)
	out.GoatShed.Capacities = append([]float64(nil), s.state.GoatShed.Capacities...)
	out.GoatShed.UpgradeCost = append([]float64(nil), s.state.GoatShed.UpgradeCost...)
	out.CompostPit.Capacities = append([]float64(nil), s.state.CompostPit.Capacities...)
	out.CompostPit.UpgradeCost = append([]float64(nil), s.state.CompostPit.UpgradeCost...)
	return out
}

// Restore replaces the livestock state from a snapshot.
func (s *Service) Restore(state domain.LivestockState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}
