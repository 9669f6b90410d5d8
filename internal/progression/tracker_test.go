package progression

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilerise/farmsim/internal/event"
)

func newTestTracker(bus event.Bus) *Tracker {
	return New(bus, slog.Default())
}

func TestTracker_StartsAtLevelOne(t *testing.T) {
	tr := newTestTracker(nil)

	assert.Equal(t, 1, tr.Level())
	assert.Equal(t, 0, tr.XP())
	assert.Equal(t, 100, tr.XPToNextLevel())
}

func TestTracker_AddXP_AccumulatesBelowThreshold(t *testing.T) {
	tr := newTestTracker(nil)

	tr.AddXP(context.Background(), 40)

	assert.Equal(t, 1, tr.Level())
	assert.Equal(t, 40, tr.XP())
	assert.Equal(t, 60, tr.XPToNextLevel())
}

func TestTracker_AddXP_LevelsUpAtThreshold(t *testing.T) {
	tr := newTestTracker(nil)

	tr.AddXP(context.Background(), 100)

	assert.Equal(t, 2, tr.Level())
	assert.Equal(t, 0, tr.XP())
	// Level 2 requires 200 XP
	assert.Equal(t, 200, tr.XPToNextLevel())
}

func TestTracker_AddXP_CarriesRemainderAcrossLevels(t *testing.T) {
	tr := newTestTracker(nil)

	// 100 for level 2, 200 for level 3, 50 left over
	tr.AddXP(context.Background(), 350)

	assert.Equal(t, 3, tr.Level())
	assert.Equal(t, 50, tr.XP())
}

func TestTracker_AddXP_IgnoresNonPositive(t *testing.T) {
	tr := newTestTracker(nil)

	tr.AddXP(context.Background(), 0)
	tr.AddXP(context.Background(), -10)

	assert.Equal(t, 1, tr.Level())
	assert.Equal(t, 0, tr.XP())
}

func TestTracker_AddXP_PublishesLevelUpEvent(t *testing.T) {
	bus := event.NewMemoryBus()

	var payloads []event.PlayerLeveledUpPayloadV1
	bus.Subscribe(event.PlayerLeveledUp, func(_ context.Context, e event.Event) error {
		payload, err := event.DecodePayload[event.PlayerLeveledUpPayloadV1](e.Payload)
		require.NoError(t, err)
		payloads = append(payloads, payload)
		return nil
	})

	tr := newTestTracker(bus)
	tr.AddXP(context.Background(), 120)

	require.Len(t, payloads, 1)
	assert.Equal(t, 1, payloads[0].OldLevel)
	assert.Equal(t, 2, payloads[0].NewLevel)
	assert.Equal(t, 20, payloads[0].XP)
}

func TestTracker_AwardHarvest_ScalesWithScore(t *testing.T) {
	tr := newTestTracker(nil)

	tr.AwardHarvest(context.Background(), 850)

	assert.Equal(t, 85, tr.XP())
	assert.Equal(t, 1, tr.Level())
}

func TestTracker_Restore(t *testing.T) {
	tr := newTestTracker(nil)

	tr.Restore(5, 230)
	assert.Equal(t, 5, tr.Level())
	assert.Equal(t, 230, tr.XP())

	// Invalid values are clamped to sane defaults
	tr.Restore(0, -1)
	assert.Equal(t, 1, tr.Level())
	assert.Equal(t, 0, tr.XP())
}

func TestTracker_StateRoundTrip(t *testing.T) {
	tr := newTestTracker(nil)
	tr.AddXP(context.Background(), 275)

	level, xp := tr.State()

	restored := newTestTracker(nil)
	restored.Restore(level, xp)

	assert.Equal(t, tr.Level(), restored.Level())
	assert.Equal(t, tr.XP(), restored.XP())
}
