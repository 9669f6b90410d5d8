package domain

// Season is one of the three climate bands derived from day-of-year.
type Season string

const (
	SeasonDry        Season = "dry"
	SeasonTransition Season = "transition"
	SeasonRainy      Season = "rainy"
)

// TimeOfDay is one of the four bands derived from the hour.
type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeNight     TimeOfDay = "night"
)

// EnvironmentData is the opaque satellite-derived input set for a
// location. The core consumes it read-only and never validates its
// provenance.
type EnvironmentData struct {
	Location      string  `json:"location"`
	Temperature   float64 `json:"temperature"`   // ambient, degrees C
	SoilMoisture  float64 `json:"soil_moisture"` // percent
	NDVI          float64 `json:"ndvi"`          // vegetation index
	Precipitation float64 `json:"precipitation"` // mm/day
}

// EnvModifiers are the per-tick ambient conditions derived from season
// and time of day, applied to plot degradation.
type EnvModifiers struct {
	Temperature float64 `json:"temperature"` // degrees C
	Sunlight    float64 `json:"sunlight"`    // 0-1
	Rainfall    float64 `json:"rainfall"`    // mm
	Evaporation float64 `json:"evaporation"` // multiplier
}

// ClockState is the serializable position of the simulation clock.
type ClockState struct {
	Day       int       `json:"day"`
	Hour      int       `json:"hour"`
	Speed     int       `json:"speed"`
	Season    Season    `json:"season"`
	TimeOfDay TimeOfDay `json:"time_of_day"`
	IsPaused  bool      `json:"is_paused"`
	IsRunning bool      `json:"is_running"`
}
