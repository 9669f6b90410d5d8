package domain

// StressFactors holds the four [0,1] stress multipliers; 1.0 = optimal.
type StressFactors struct {
	Water       float64 `json:"water"`
	Nutrient    float64 `json:"nutrient"`
	PH          float64 `json:"ph"`
	Temperature float64 `json:"temperature"`
}

// Overall is the multiplicative combination: a single near-zero factor
// dominates, modeling the limiting-factor principle.
func (f StressFactors) Overall() float64 {
	return f.Water * f.Nutrient * f.PH * f.Temperature
}

// Mean is the arithmetic mean of the four factors.
func (f StressFactors) Mean() float64 {
	return (f.Water + f.Nutrient + f.PH + f.Temperature) / 4
}

// Diagnosis is the textual assessment attached to a simulation result.
type Diagnosis struct {
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
	Summary         string   `json:"summary"`
}

// SimulationResult is the immutable output of the yield/stress model.
type SimulationResult struct {
	ActualYield     float64       `json:"actual_yield"`    // t/ha
	PotentialYield  float64       `json:"potential_yield"` // t/ha
	YieldPercentage int           `json:"yield_percentage"`
	Score           int           `json:"score"` // 0-1000
	Stars           int           `json:"stars"` // 0-3
	Stress          StressFactors `json:"stress"`
	Diagnosis       Diagnosis     `json:"diagnosis"`
}

// HarvestOutcome is returned by the harvest command: the tonnage credited
// to the ledger (scaled by plot size) plus the underlying model result.
type HarvestOutcome struct {
	CropID string           `json:"crop_id"`
	Yield  float64          `json:"yield"` // tonnes credited
	Result SimulationResult `json:"result"`
}
