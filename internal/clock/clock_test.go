package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilerise/farmsim/internal/domain"
)

func TestTickAdvancesHour(t *testing.T) {
	c := New(time.Hour, nil)

	assert.Equal(t, 1, c.Day())
	assert.Equal(t, StartHour, c.Hour())

	c.Tick()
	assert.Equal(t, StartHour+1, c.Hour())
	assert.Equal(t, 1, c.Day())
}

func TestDayRollover(t *testing.T) {
	c := New(time.Hour, nil)

	var gotDays []int
	c.OnDayChange(func(day int) { gotDays = append(gotDays, day) })

	// 18 ticks from 06:00 reach midnight
	for i := 0; i < HoursPerDay-StartHour; i++ {
		c.Tick()
	}

	assert.Equal(t, 2, c.Day())
	assert.Equal(t, 0, c.Hour())
	assert.Equal(t, []int{2}, gotDays)
}

func TestSkipToNextDay(t *testing.T) {
	c := New(time.Hour, nil)

	fired := 0
	c.OnDayChange(func(day int) { fired++ })

	c.SkipToNextDay()
	assert.Equal(t, 2, c.Day())
	assert.Equal(t, 1, fired)

	c.SkipToNextDay()
	assert.Equal(t, 3, c.Day())
	assert.Equal(t, 2, fired)
}

func TestPauseBlocksTicks(t *testing.T) {
	c := New(time.Hour, nil)

	require.True(t, c.TogglePause())
	c.Tick()
	assert.Equal(t, StartHour, c.Hour())

	require.False(t, c.TogglePause())
	c.Tick()
	assert.Equal(t, StartHour+1, c.Hour())
}

func TestSetSpeed(t *testing.T) {
	c := New(time.Hour, nil)

	for _, s := range []int{1, 2, 4, 8} {
		assert.NoError(t, c.SetSpeed(s))
		assert.Equal(t, s, c.Speed())
	}

	err := c.SetSpeed(3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 8, c.Speed())
}

func TestScheduledEvents(t *testing.T) {
	c := New(time.Hour, nil)

	var order []int
	c.ScheduleAt(3, func(day int) { order = append(order, 3) })
	c.ScheduleAt(2, func(day int) { order = append(order, 2) })

	c.SkipToNextDay() // day 2
	assert.Equal(t, []int{2}, order)

	c.SkipToNextDay() // day 3
	assert.Equal(t, []int{2, 3}, order)
}

func TestScheduledEventInPastFiresOnNextRollover(t *testing.T) {
	c := New(time.Hour, nil)
	c.SkipToNextDay()
	c.SkipToNextDay() // day 3

	fired := false
	c.ScheduleAt(1, func(day int) { fired = true })
	c.SkipToNextDay()
	assert.True(t, fired)
}

func TestSeasonForDay(t *testing.T) {
	tests := []struct {
		day  int
		want domain.Season
	}{
		{1, domain.SeasonDry},
		{89, domain.SeasonDry},
		{90, domain.SeasonTransition},
		{149, domain.SeasonTransition},
		{150, domain.SeasonRainy},
		{304, domain.SeasonRainy},
		{305, domain.SeasonDry},
		{364, domain.SeasonDry},
		{365 + 100, domain.SeasonTransition}, // wraps across years
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SeasonForDay(tt.day), "day %d", tt.day)
	}
}

func TestTimeOfDayForHour(t *testing.T) {
	tests := []struct {
		hour int
		want domain.TimeOfDay
	}{
		{0, domain.TimeNight},
		{5, domain.TimeNight},
		{6, domain.TimeMorning},
		{11, domain.TimeMorning},
		{12, domain.TimeAfternoon},
		{17, domain.TimeAfternoon},
		{18, domain.TimeEvening},
		{20, domain.TimeEvening},
		{21, domain.TimeNight},
		{23, domain.TimeNight},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TimeOfDayForHour(tt.hour), "hour %d", tt.hour)
	}
}

func TestStateRestore(t *testing.T) {
	c := New(time.Hour, nil)
	c.SkipToNextDay()
	c.SkipToNextDay()
	require.NoError(t, c.SetSpeed(4))

	state := c.State()
	assert.Equal(t, 3, state.Day)
	assert.Equal(t, 0, state.Hour)
	assert.Equal(t, 4, state.Speed)

	fresh := New(time.Hour, nil)
	require.NoError(t, fresh.Restore(state))
	assert.Equal(t, 3, fresh.Day())
	assert.Equal(t, 4, fresh.Speed())
}

func TestRestoreRegressionOnRunningClock(t *testing.T) {
	c := New(time.Minute, nil)
	c.SkipToNextDay()
	c.SkipToNextDay()

	c.Start()
	defer c.Stop()

	err := c.Restore(domain.ClockState{Day: 1, Speed: 1})
	assert.ErrorIs(t, err, domain.ErrClockRegression)
}

func TestStartStop(t *testing.T) {
	c := New(5*time.Millisecond, nil)
	c.Start()
	c.Start() // idempotent

	assert.Eventually(t, func() bool {
		return c.Hour() > StartHour || c.Day() > 1
	}, time.Second, 5*time.Millisecond)

	c.Stop()
	c.Stop() // idempotent
}
