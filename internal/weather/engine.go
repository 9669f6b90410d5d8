package weather

import (
	"math"
	"math/rand"
	"sync"

	"github.com/ilerise/farmsim/internal/domain"
)

// EventType classifies a multi-day weather pattern.
type EventType string

const (
	EventDrought   EventType = "drought"
	EventHeavyRain EventType = "heavy_rain"
	EventHeatwave  EventType = "heatwave"
)

// Severity grades a weather event.
type Severity string

const (
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Daily is generated weather for one simulated day.
type Daily struct {
	Day       int       `json:"day"`
	Temp      float64   `json:"temp"`      // degrees C
	Rain      float64   `json:"rain"`      // mm
	Radiation float64   `json:"radiation"` // MJ/m2/day
	Humidity  float64   `json:"humidity"`  // percent
	WindSpeed float64   `json:"wind_speed"`
	Event     EventType `json:"event,omitempty"`
}

type pattern struct {
	kind     EventType
	severity Severity
	startDay int
	duration int
}

// Engine generates stochastic daily weather, anchored to a location's
// satellite dataset when one is available. Generated days are cached so
// repeated queries for the same day agree.
type Engine struct {
	mu      sync.Mutex
	env     *domain.EnvironmentData
	rng     *rand.Rand
	current *pattern
	cache   map[int]Daily

	baseTemp      float64
	tempRange     float64
	baseRain      float64
	baseRadiation float64
}

// Event probabilities, checked in order.
const (
	probDrought   = 0.20
	probHeavyRain = 0.15
	probHeatwave  = 0.10
)

// NewEngine creates a weather engine. env may be nil, in which case the
// West African climatology defaults drive generation alone.
func NewEngine(env *domain.EnvironmentData, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Engine{
		env:           env,
		rng:           rng,
		cache:         make(map[int]Daily),
		baseTemp:      28,
		tempRange:     8,
		baseRain:      4,
		baseRadiation: 18,
	}
}

// DailyWeather returns the weather for a day, generating and caching it
// on first access.
func (e *Engine) DailyWeather(day int) Daily {
	e.mu.Lock()
	defer e.mu.Unlock()

	if w, ok := e.cache[day]; ok {
		return w
	}
	w := e.generate(day)
	e.cache[day] = w
	return w
}

func (e *Engine) generate(day int) Daily {
	seasonal := math.Sin(float64(day) / 90 * math.Pi * 2)

	temp := e.baseTemp + e.tempRange/2*seasonal
	rain := e.baseRain + 3*math.Max(0, seasonal)
	radiation := e.baseRadiation + 3*seasonal

	if e.env != nil {
		if e.env.Temperature > 0 {
			temp = e.env.Temperature
		}
		if e.env.Precipitation > 0 {
			rain = e.env.Precipitation
		}
	}

	if p := e.eventFor(day); p != nil {
		temp, rain, radiation = applyEvent(p, temp, rain, radiation)
	}

	temp += (e.rng.Float64() - 0.5) * 3
	rain += (e.rng.Float64() - 0.5) * 2
	radiation += (e.rng.Float64() - 0.5) * 2

	temp = clamp(temp, 20, 42)
	rain = math.Max(0, rain)
	radiation = clamp(radiation, 10, 25)

	w := Daily{
		Day:       day,
		Temp:      round1(temp),
		Rain:      round1(rain),
		Radiation: round1(radiation),
		Humidity:  humidity(temp, rain),
		WindSpeed: 2 + e.rng.Float64()*3,
	}
	if e.current != nil {
		w.Event = e.current.kind
	}
	return w
}

func (e *Engine) eventFor(day int) *pattern {
	if e.current != nil && day < e.current.startDay+e.current.duration {
		return e.current
	}

	roll := e.rng.Float64()
	severity := SeverityModerate
	if e.rng.Float64() > 0.5 {
		severity = SeveritySevere
	}

	switch {
	case roll < probDrought:
		e.current = &pattern{EventDrought, severity, day, 7 + e.rng.Intn(7)}
	case roll < probDrought+probHeavyRain:
		e.current = &pattern{EventHeavyRain, severity, day, 3 + e.rng.Intn(3)}
	case roll < probDrought+probHeavyRain+probHeatwave:
		e.current = &pattern{EventHeatwave, severity, day, 5 + e.rng.Intn(5)}
	default:
		e.current = nil
	}
	return e.current
}

func applyEvent(p *pattern, temp, rain, radiation float64) (float64, float64, float64) {
	severe := p.severity == SeveritySevere
	switch p.kind {
	case EventDrought:
		if severe {
			rain = 0
			temp += 4
		} else {
			rain *= 0.3
			temp += 2
		}
		radiation += 2
	case EventHeavyRain:
		if severe {
			rain *= 8
		} else {
			rain *= 4
		}
		temp -= 2
		radiation -= 3
	case EventHeatwave:
		if severe {
			temp += 8
		} else {
			temp += 5
		}
		rain *= 0.5
		radiation += 3
	}
	return temp, rain, radiation
}

func humidity(temp, rain float64) float64 {
	return clamp(70-(temp-25)*2+rain*2, 30, 95)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
