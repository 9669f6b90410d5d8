package domain

// Herd is the mutable state of one animal species.
type Herd struct {
	Count    int     `json:"count"`
	MaxCount int     `json:"max_count"`
	AgeDays  float64 `json:"age_days"`
	Feed     float64 `json:"feed"`   // 0-100
	Health   float64 `json:"health"` // 0-100
	Unlocked bool    `json:"unlocked"`

	// Per-head daily rates
	ManurePerDay float64 `json:"manure_per_day"` // kg
	FeedPerDay   float64 `json:"feed_per_day"`   // kg

	// Yesterday's output, for display
	DailyProduction float64 `json:"daily_production"`
}

// Building is one upgradeable piece of livestock infrastructure with
// level-indexed capacities and upgrade costs.
type Building struct {
	Level       int       `json:"level"`
	MaxLevel    int       `json:"max_level"`
	Capacities  []float64 `json:"capacities"`   // indexed by level
	UpgradeCost []float64 `json:"upgrade_cost"` // cost to reach level i+1
	Unlocked    bool      `json:"unlocked"`
	UnlockLevel int       `json:"unlock_level,omitempty"`
}

// Capacity returns the building's capacity at its current level.
func (b Building) Capacity() float64 {
	if b.Level < 0 || b.Level >= len(b.Capacities) {
		return 0
	}
	return b.Capacities[b.Level]
}

// CompostBatch is an in-progress manure-to-compost conversion.
type CompostBatch struct {
	StartDay int     `json:"start_day"`
	EndDay   int     `json:"end_day"`
	Input    float64 `json:"input"`  // kg manure
	Output   float64 `json:"output"` // kg compost when done
}

// LivestockState is the serializable state of the husbandry subsystem.
type LivestockState struct {
	Chickens Herd `json:"chickens"`
	Goats    Herd `json:"goats"`

	ChickenCoop Building `json:"chicken_coop"`
	GoatShed    Building `json:"goat_shed"`
	CompostPit  Building `json:"compost_pit"`

	// Uncollected production
	Manure  float64 `json:"manure"`  // kg
	Compost float64 `json:"compost"` // kg
	Eggs    float64 `json:"eggs"`
	Milk    float64 `json:"milk"` // litres

	ActiveComposting []CompostBatch `json:"active_composting,omitempty"`
	LastUpdateDay    int            `json:"last_update_day"`
}
