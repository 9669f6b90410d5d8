package simulation

import (
	"math"

	"github.com/ilerise/farmsim/internal/domain"
)

// Inputs are the environmental factors applied to one yield
// calculation.
type Inputs struct {
	WaterInput   float64 // irrigation, percent
	SoilMoisture float64 // ambient soil moisture, percent
	NPKInput     float64 // kg/ha
	PH           float64
	Temperature  float64 // degrees C
}

// stressThreshold separates a reported issue from an acceptable factor.
const stressThreshold = 0.6

// CalculateYield runs the stress model for a crop against a set of
// inputs. Actual yield is the crop's potential scaled by the product of
// the four stress factors, so a single collapsed factor collapses the
// harvest.
func CalculateYield(crop *domain.Crop, in Inputs) domain.SimulationResult {
	stress := domain.StressFactors{
		Water:       WaterStress(crop, in.WaterInput, in.SoilMoisture),
		Nutrient:    NutrientStress(crop, in.NPKInput),
		PH:          PHStress(crop, in.PH),
		Temperature: TempStress(crop, in.Temperature),
	}

	potential := crop.MaxYield
	actual := potential * stress.Overall()

	return domain.SimulationResult{
		ActualYield:     math.Round(actual*100) / 100,
		PotentialYield:  potential,
		YieldPercentage: int(math.Round(actual / potential * 100)),
		Score:           score(actual, potential, stress),
		Stars:           stars(score(actual, potential, stress)),
		Stress:          stress,
		Diagnosis:       diagnose(stress),
	}
}

// WaterStress rates total water (irrigation plus soil moisture) against
// the crop's envelope. Below minimum degrades linearly toward zero;
// excess floors at 0.3.
func WaterStress(crop *domain.Crop, waterInput, soilMoisture float64) float64 {
	need := crop.WaterNeed
	total := waterInput + soilMoisture

	switch {
	case total < need.Min:
		return total / need.Min
	case total > need.Max:
		return math.Max(0.3, 1-(total-need.Max)/50)
	case total >= need.Optimal-10 && total <= need.Optimal+10:
		return 1.0
	default:
		return 1 - math.Abs(total-need.Optimal)/100
	}
}

// NutrientStress rates NPK input against the crop's envelope. Excess
// models toxicity and floors at 0.3.
func NutrientStress(crop *domain.Crop, npkInput float64) float64 {
	need := crop.NPKNeed

	switch {
	case npkInput < need.Min:
		return npkInput / need.Min
	case npkInput > need.Max:
		return math.Max(0.3, 1-(npkInput-need.Max)/100)
	case npkInput >= need.Optimal-10 && npkInput <= need.Optimal+10:
		return 1.0
	default:
		return 1 - math.Abs(npkInput-need.Optimal)/150
	}
}

// PHStress rates soil pH. Outside the tolerable range the factor drops
// to a flat 0.2.
func PHStress(crop *domain.Crop, ph float64) float64 {
	r := crop.PHRange

	switch {
	case ph < r.Min || ph > r.Max:
		return 0.2
	case ph >= r.Optimal-0.3 && ph <= r.Optimal+0.3:
		return 1.0
	default:
		return 1 - math.Abs(ph-r.Optimal)/4
	}
}

// TempStress rates ambient temperature against the crop's envelope,
// flooring at 0.2 on either side.
func TempStress(crop *domain.Crop, temp float64) float64 {
	r := crop.TempRange

	switch {
	case temp < r.Min:
		return math.Max(0.2, 1-(r.Min-temp)/20)
	case temp > r.Max:
		return math.Max(0.2, 1-(temp-r.Max)/20)
	case temp >= r.Optimal-3 && temp <= r.Optimal+3:
		return 1.0
	default:
		return 1 - math.Abs(temp-r.Optimal)/30
	}
}

// score blends relative yield (60%) with mean resource efficiency
// (40%) into a 0-1000 score.
func score(actual, potential float64, stress domain.StressFactors) int {
	yieldScore := actual / potential * 600
	efficiencyScore := stress.Mean() * 400
	s := int(math.Round(yieldScore + efficiencyScore))
	if s > 1000 {
		s = 1000
	}
	return s
}

func stars(score int) int {
	switch {
	case score >= 900:
		return 3
	case score >= 700:
		return 2
	case score >= 500:
		return 1
	default:
		return 0
	}
}

func diagnose(stress domain.StressFactors) domain.Diagnosis {
	var issues, recs []string

	if stress.Water < stressThreshold {
		issues = append(issues, "Water stress detected")
		recs = append(recs, "Increase irrigation or wait for rain")
	} else if stress.Water == 1.0 {
		recs = append(recs, "Water level optimal")
	}

	if stress.Nutrient < stressThreshold {
		issues = append(issues, "Nutrient deficiency (NPK)")
		recs = append(recs, "Apply NPK fertilizer")
	} else if stress.Nutrient == 1.0 {
		recs = append(recs, "Fertilization optimal")
	}

	if stress.PH < stressThreshold {
		issues = append(issues, "Soil pH unsuited to this crop")
		recs = append(recs, "Adjust pH with lime or sulfur")
	} else if stress.PH == 1.0 {
		recs = append(recs, "pH optimal for this crop")
	}

	if stress.Temperature < stressThreshold {
		issues = append(issues, "Thermal stress")
		recs = append(recs, "Temperature outside optimum, climate driven")
	} else if stress.Temperature == 1.0 {
		recs = append(recs, "Temperature ideal")
	}

	if len(issues) == 0 {
		issues = []string{"No major issues"}
	}

	return domain.Diagnosis{
		Issues:          issues,
		Recommendations: recs,
		Summary:         summary(stress.Mean()),
	}
}

func summary(mean float64) string {
	switch {
	case mean >= 0.9:
		return "Excellent management, optimal conditions"
	case mean >= 0.7:
		return "Good management, minor adjustments possible"
	case mean >= 0.5:
		return "Acceptable management, improvements needed"
	default:
		return "Management needs work, heavy stress detected"
	}
}
