package domain

import "time"

// SnapshotVersion is the current snapshot schema version. Loaders reject
// snapshots with a different major version.
const SnapshotVersion = "3.0"

// FarmSnapshot is the versioned, transport-agnostic serialization of
// the entire mutable simulation state. Loading a snapshot and
// immediately saving it reproduces byte-equivalent state modulo SavedAt.
type FarmSnapshot struct {
	Version string    `json:"version"`
	SavedAt time.Time `json:"saved_at"`

	Environment EnvironmentData `json:"environment"`
	Time        ClockState      `json:"time"`

	PlayerLevel int `json:"player_level"`
	PlayerXP    int `json:"player_xp"`

	Plots         []Plot         `json:"plots"`
	Resources     LedgerState    `json:"resources"`
	Livestock     LivestockState `json:"livestock"`
	Market        MarketState    `json:"market"`
	ActiveActions []ActiveAction `json:"active_actions"`

	IsPaused bool `json:"is_paused"`
}

// FarmState is the aggregated read-only view returned by the state query.
type FarmState struct {
	Time        ClockState                              `json:"time"`
	Resources   map[ResourceCategory]map[string]float64 `json:"resources"`
	Plots       []PlotSummary                           `json:"plots"`
	Livestock   LivestockState                          `json:"livestock"`
	Market      []MarketTrend                           `json:"market_trends"`
	PlayerLevel int                                     `json:"player_level"`
}
