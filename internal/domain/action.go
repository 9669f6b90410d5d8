package domain

// ActionCategory groups catalog actions by farming phase.
type ActionCategory string

const (
	ActionPreparation ActionCategory = "preparation"
	ActionPlanting    ActionCategory = "planting"
	ActionMaintenance ActionCategory = "maintenance"
	ActionProtection  ActionCategory = "protection"
	ActionHarvesting  ActionCategory = "harvest"
	ActionPostHarvest ActionCategory = "post_harvest"
)

// EffectKind is the closed set of plot attribute deltas an action can
// declare. Every kind is interpreted explicitly by the effect applier;
// there is no generic string-keyed dispatch.
type EffectKind string

const (
	EffectSoilMoisture   EffectKind = "soil_moisture"
	EffectNPKLevel       EffectKind = "npk_level"
	EffectWeedLevel      EffectKind = "weed_level"
	EffectPestLevel      EffectKind = "pest_level"
	EffectPestResistance EffectKind = "pest_resistance"
	EffectPH             EffectKind = "ph"
	EffectSoilQuality    EffectKind = "soil_quality"
	EffectSoilOrganic    EffectKind = "soil_organic"

	// EffectPlant marks the planting action: it sets the plot to planted
	// with Amount seedlings rather than adding to an attribute.
	EffectPlant EffectKind = "plant"

	// EffectHarvestYield marks the harvest action: the yield is computed
	// by the simulation engine at application time.
	EffectHarvestYield EffectKind = "harvest_yield"
)

// Valid reports whether k is a known effect kind.
func (k EffectKind) Valid() bool {
	switch k {
	case EffectSoilMoisture, EffectNPKLevel, EffectWeedLevel, EffectPestLevel,
		EffectPestResistance, EffectPH, EffectSoilQuality, EffectSoilOrganic,
		EffectPlant, EffectHarvestYield:
		return true
	}
	return false
}

// Effect is one declared attribute delta of an action.
type Effect struct {
	Kind   EffectKind `json:"kind" validate:"required"`
	Amount float64    `json:"amount"`
}

// Prerequisite is a plot-state condition an action requires.
type Prerequisite string

const (
	PrereqPlowed     Prerequisite = "plowed"
	PrereqMatureCrop Prerequisite = "mature_crop"
)

// ActionDef is an immutable catalog entry for a player-invokable action.
type ActionDef struct {
	ID          string         `json:"id" validate:"required"`
	DisplayName string         `json:"display_name" validate:"required"`
	Icon        string         `json:"icon,omitempty"`
	Category    ActionCategory `json:"category" validate:"required"`

	// Duration in whole days. Zero-duration actions complete on the
	// next day tick.
	Duration int `json:"duration" validate:"gte=0"`

	Cost    Cost     `json:"cost"`
	Effects []Effect `json:"effects" validate:"dive"`

	UnlockLevel int            `json:"unlock_level" validate:"gte=1"`
	Repeatable  bool           `json:"repeatable"`
	Requires    []Prerequisite `json:"requires,omitempty"`

	Description string `json:"description,omitempty"`
}

// ActionStatus tracks an active action's lifecycle.
type ActionStatus string

const (
	ActionInProgress ActionStatus = "in_progress"
	ActionCompleted  ActionStatus = "completed"
)

// ActiveAction is a scheduled instance of a catalog action bound to a
// specific plot and day range.
type ActiveAction struct {
	ActionID string `json:"action_id"`
	PlotID   int    `json:"plot_id"`

	// CropID is set for planting actions only.
	CropID string `json:"crop_id,omitempty"`

	StartDay int          `json:"start_day"`
	EndDay   int          `json:"end_day"`
	Status   ActionStatus `json:"status"`
}

// Availability is the result of an action precondition check.
type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// AppliedChanges records the attribute deltas actually applied when an
// action completed, keyed by effect kind.
type AppliedChanges map[EffectKind]float64
