package weather

import (
	"math/rand"

	"github.com/ilerise/farmsim/internal/domain"
)

const (
	baseTemperature  = 28.0
	rainyRainMM      = 10.0
	transitionRainMM = 5.0
)

// Modifiers derives the environment modifiers for one hour of
// simulation from the season and time-of-day band. rng supplies values
// in [0,1) and drives the rainfall rolls; pass a deterministic source
// in tests, or nil for the global source.
func Modifiers(season domain.Season, tod domain.TimeOfDay, rng func() float64) domain.EnvModifiers {
	if rng == nil {
		rng = rand.Float64
	}
	m := domain.EnvModifiers{
		Temperature: baseTemperature,
		Sunlight:    1.0,
		Rainfall:    0,
		Evaporation: 1.0,
	}

	switch tod {
	case domain.TimeNight:
		m.Temperature -= 8
		m.Sunlight = 0
		m.Evaporation = 0.3
	case domain.TimeMorning, domain.TimeEvening:
		m.Temperature -= 3
		m.Sunlight = 0.7
		m.Evaporation = 0.7
	case domain.TimeAfternoon:
		m.Temperature += 2
		m.Sunlight = 1.0
		m.Evaporation = 1.5
	}

	switch season {
	case domain.SeasonDry:
		m.Evaporation *= 1.5
		m.Rainfall = 0
	case domain.SeasonRainy:
		m.Evaporation *= 0.7
		if rng() > 0.6 {
			m.Rainfall = rainyRainMM
		}
	default:
		if rng() > 0.8 {
			m.Rainfall = transitionRainMM
		}
	}

	return m
}
