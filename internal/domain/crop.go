package domain

// Tolerance is a crop's {min, optimal, max} envelope for one input factor.
type Tolerance struct {
	Min     float64 `json:"min" validate:"ltefield=Optimal"`
	Optimal float64 `json:"optimal" validate:"ltefield=Max"`
	Max     float64 `json:"max"`
}

// Crop is immutable reference data for one cultivable crop.
type Crop struct {
	ID          string `json:"id" validate:"required"`
	DisplayName string `json:"display_name" validate:"required"`
	Emoji       string `json:"emoji,omitempty"`

	UnlockLevel int     `json:"unlock_level" validate:"gte=1"`
	UnlockCost  float64 `json:"unlock_cost" validate:"gte=0"`

	// Yield in tonnes per hectare
	MaxYield    float64 `json:"max_yield" validate:"gt=0"`
	TargetYield float64 `json:"target_yield" validate:"gte=0"`

	// Growth cycle length in days
	GrowthDuration int `json:"growth_duration" validate:"gt=0"`

	WaterNeed Tolerance `json:"water_need"` // soil moisture percent
	NPKNeed   Tolerance `json:"npk_need"`   // kg/ha
	PHRange   Tolerance `json:"ph_range"`
	TempRange Tolerance `json:"temp_range"` // degrees C

	Description string   `json:"description,omitempty"`
	Tips        []string `json:"tips,omitempty"`
}
