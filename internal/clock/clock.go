package clock

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/ilerise/farmsim/internal/domain"
)

const (
	// HoursPerDay is the tick count that rolls a day over.
	HoursPerDay = 24
	// StartHour is the in-game hour a fresh simulation begins at.
	StartHour = 6
	// DaysPerYear drives season derivation.
	DaysPerYear = 365
)

// validSpeeds are the accepted time multipliers.
var validSpeeds = map[int]bool{1: true, 2: true, 4: true, 8: true}

// DayHandler is invoked once per simulated day, after the day counter
// has advanced. Handlers run on the clock goroutine in registration
// order.
type DayHandler func(day int)

// HourHandler is invoked on every simulated hour.
type HourHandler func(day, hour int)

type scheduledEvent struct {
	day int
	run func(day int)
}

// Clock owns simulated time. One tick is one in-game hour; the real
// interval between ticks is baseInterval divided by the speed
// multiplier.
type Clock struct {
	mu           sync.Mutex
	day          int
	hour         int
	speed        int
	paused       bool
	running      bool
	baseInterval time.Duration
	ticker       *time.Ticker
	quit         chan struct{}
	wg           sync.WaitGroup

	dayHandlers  []DayHandler
	hourHandlers []HourHandler
	scheduled    []scheduledEvent

	log *slog.Logger
}

// New creates a stopped clock at day 1, 06:00, speed 1.
func New(baseInterval time.Duration, log *slog.Logger) *Clock {
	if log == nil {
		log = slog.Default()
	}
	return &Clock{
		day:          1,
		hour:         StartHour,
		speed:        1,
		baseInterval: baseInterval,
		log:          log,
	}
}

// OnDayChange registers a handler fired after each day rollover.
func (c *Clock) OnDayChange(h DayHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dayHandlers = append(c.dayHandlers, h)
}

// OnHour registers a handler fired on every simulated hour.
func (c *Clock) OnHour(h HourHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hourHandlers = append(c.hourHandlers, h)
}

// ScheduleAt registers a one-shot callback for the start of the given
// day. Events scheduled for a day already passed fire on the next
// rollover.
func (c *Clock) ScheduleAt(day int, run func(day int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scheduled = append(c.scheduled, scheduledEvent{day: day, run: run})
	sort.SliceStable(c.scheduled, func(i, j int) bool {
		return c.scheduled[i].day < c.scheduled[j].day
	})
}

// Start launches the tick loop. Calling Start on a running clock is a
// no-op.
func (c *Clock) Start() {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return
	}
	c.running = true
	c.quit = make(chan struct{})
	c.ticker = time.NewTicker(c.tickInterval())
	ticker, quit := c.ticker, c.quit
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case <-ticker.C:
				c.Tick()
			case <-quit:
				return
			}
		}
	}()
	c.log.Info("clock started", "day", c.Day(), "speed", c.Speed())
}

// Stop halts the tick loop and waits for it to exit.
func (c *Clock) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	c.ticker.Stop()
	close(c.quit)
	c.mu.Unlock()

	c.wg.Wait()
	c.log.Info("clock stopped", "day", c.Day())
}

// Tick advances one in-game hour. While paused it is a no-op. Exposed
// so that SkipToNextDay and tests can drive time synchronously.
func (c *Clock) Tick() {
	c.mu.Lock()
	if c.paused {
		c.mu.Unlock()
		return
	}

	c.hour++
	rolled := false
	if c.hour >= HoursPerDay {
		c.hour = 0
		c.day++
		rolled = true
	}
	day, hour := c.day, c.hour
	hourHandlers := c.hourHandlers

	var dayHandlers []DayHandler
	var due []scheduledEvent
	if rolled {
		dayHandlers = c.dayHandlers
		i := 0
		for ; i < len(c.scheduled) && c.scheduled[i].day <= day; i++ {
			due = append(due, c.scheduled[i])
		}
		c.scheduled = c.scheduled[i:]
	}
	c.mu.Unlock()

	for _, h := range hourHandlers {
		h(day, hour)
	}
	for _, h := range dayHandlers {
		h(day)
	}
	for _, e := range due {
		e.run(day)
	}
}

// SkipToNextDay advances hour by hour until the day rolls over, running
// the same handler pipeline a live tick would.
func (c *Clock) SkipToNextDay() {
	start := c.Day()
	for c.Day() == start {
		c.Tick()
		// a paused clock would spin forever
		if c.IsPaused() {
			return
		}
	}
}

// TogglePause flips the paused flag and returns the new value.
func (c *Clock) TogglePause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = !c.paused
	return c.paused
}

// SetSpeed changes the time multiplier. Invalid speeds return
// ErrInvalidInput and leave the clock unchanged.
func (c *Clock) SetSpeed(speed int) error {
	if !validSpeeds[speed] {
		return domain.ErrInvalidInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = speed
	if c.running {
		c.ticker.Reset(c.tickInterval())
	}
	return nil
}

func (c *Clock) tickInterval() time.Duration {
	return c.baseInterval / time.Duration(c.speed)
}

// Day returns the current simulated day, starting at 1.
func (c *Clock) Day() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.day
}

// Hour returns the current simulated hour, 0..23.
func (c *Clock) Hour() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hour
}

// Speed returns the current time multiplier.
func (c *Clock) Speed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// IsPaused reports whether the clock is paused.
func (c *Clock) IsPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Season derives the current season from the day of year.
func (c *Clock) Season() domain.Season {
	return SeasonForDay(c.Day())
}

// TimeOfDay derives the current time-of-day band from the hour.
func (c *Clock) TimeOfDay() domain.TimeOfDay {
	return TimeOfDayForHour(c.Hour())
}

// State captures the serializable clock state.
func (c *Clock) State() domain.ClockState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.ClockState{
		Day:       c.day,
		Hour:      c.hour,
		Speed:     c.speed,
		Season:    SeasonForDay(c.day),
		TimeOfDay: TimeOfDayForHour(c.hour),
		IsPaused:  c.paused,
		IsRunning: c.running,
	}
}

// Restore rewinds the clock to a snapshot. Restoring to an earlier day
// than the current one on a live clock returns ErrClockRegression.
func (c *Clock) Restore(state domain.ClockState) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running && state.Day < c.day {
		return domain.ErrClockRegression
	}
	c.day = state.Day
	c.hour = state.Hour
	if validSpeeds[state.Speed] {
		c.speed = state.Speed
		if c.running {
			c.ticker.Reset(c.tickInterval())
		}
	}
	c.paused = state.IsPaused
	return nil
}

// SeasonForDay maps a simulation day to its season using the day of
// year: late and early year are dry, a short transition window, then
// the rainy season.
func SeasonForDay(day int) domain.Season {
	dayOfYear := day % DaysPerYear
	switch {
	case dayOfYear >= 305 || dayOfYear < 90:
		return domain.SeasonDry
	case dayOfYear < 150:
		return domain.SeasonTransition
	default:
		return domain.SeasonRainy
	}
}

// TimeOfDayForHour maps an hour to its band: morning 06-11, afternoon
// 12-17, evening 18-20, night otherwise.
func TimeOfDayForHour(hour int) domain.TimeOfDay {
	switch {
	case hour >= 6 && hour < 12:
		return domain.TimeMorning
	case hour >= 12 && hour < 18:
		return domain.TimeAfternoon
	case hour >= 18 && hour < 21:
		return domain.TimeEvening
	default:
		return domain.TimeNight
	}
}
