package domain

// GrowthStage is the ordinal phase of a planted crop's lifecycle,
// determined solely by elapsed days relative to the crop's growth duration.
type GrowthStage int

const (
	StageEmpty GrowthStage = iota
	StageGermination
	StageVegetative
	StageFlowering
	StageMaturation
	StageOverripe
)

// String returns the stage's display name.
func (s GrowthStage) String() string {
	switch s {
	case StageEmpty:
		return "empty"
	case StageGermination:
		return "germination"
	case StageVegetative:
		return "vegetative"
	case StageFlowering:
		return "flowering"
	case StageMaturation:
		return "maturation"
	case StageOverripe:
		return "overripe"
	default:
		return "unknown"
	}
}

// Soil attribute bounds. Attributes are clamped to these ranges by the
// plot state machine and the action effect applier.
const (
	SoilMoistureMax = 100.0
	NPKLevelMax     = 150.0
	WeedLevelMax    = 100.0
	PestLevelMax    = 100.0
	PHMin           = 4.0
	PHMax           = 8.0
	HealthMax       = 100.0
	LAIMax          = 6.0
)

// Plot is one cultivable parcel and its full mutable state.
type Plot struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	Size float64 `json:"size"` // m²

	Unlocked    bool    `json:"unlocked"`
	UnlockLevel int     `json:"unlock_level,omitempty"`
	UnlockCost  float64 `json:"unlock_cost,omitempty"`

	IsPlowed  bool `json:"is_plowed"`
	IsPlanted bool `json:"is_planted"`

	// CropID is the assigned crop; Crop is resolved from the catalog
	// after load and never serialized.
	CropID string `json:"crop_id,omitempty"`
	Crop   *Crop  `json:"-"`

	DaysSincePlant int         `json:"days_since_plant"`
	GrowthStage    GrowthStage `json:"growth_stage"`
	PlantCount     int         `json:"plant_count"`

	Health float64 `json:"health"`

	// Soil state
	SoilMoisture   float64 `json:"soil_moisture"`
	NPKLevel       float64 `json:"npk_level"`
	PH             float64 `json:"ph"`
	SoilQuality    float64 `json:"soil_quality"`
	SoilOrganic    float64 `json:"soil_organic"`
	WeedLevel      float64 `json:"weed_level"`
	PestLevel      float64 `json:"pest_level"`
	PestResistance float64 `json:"pest_resistance"`

	// Growth accumulators for visualization
	Biomass float64 `json:"biomass"`
	LAI     float64 `json:"lai"`

	ActionsHistory []string `json:"actions_history"`
}

// PlotSummary is the read-only per-plot view returned by the state query.
type PlotSummary struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Unlocked    bool    `json:"unlocked"`
	IsPlanted   bool    `json:"is_planted"`
	Crop        string  `json:"crop"`
	Progress    string  `json:"progress"`
	Health      float64 `json:"health"`
	GrowthStage string  `json:"growth_stage"`
}
