package progression

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ilerise/farmsim/internal/event"
)

// XP awards for notable accomplishments
const (
	XPPerCompletedAction = 5
	xpPerLevelBase       = 100
)

// Tracker accumulates experience and derives the player level.
// Each level requires 100 * level XP, so the thresholds grow linearly.
type Tracker struct {
	mu    sync.Mutex
	level int
	xp    int
	bus   event.Bus
	log   *slog.Logger
}

// New creates a tracker starting at level 1 with no experience
func New(bus event.Bus, log *slog.Logger) *Tracker {
	if log == nil {
		log = slog.Default()
	}
	return &Tracker{
		level: 1,
		bus:   bus,
		log:   log,
	}
}

// Level returns the current player level
func (t *Tracker) Level() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.level
}

// XP returns experience accumulated toward the next level
func (t *Tracker) XP() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.xp
}

// XPToNextLevel returns the remaining experience needed to level up
func (t *Tracker) XPToNextLevel() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return xpPerLevelBase*t.level - t.xp
}

// AddXP grants experience and publishes a level-up event for every
// level threshold crossed. Negative amounts are ignored.
func (t *Tracker) AddXP(ctx context.Context, amount int) {
	if amount <= 0 {
		return
	}

	t.mu.Lock()
	oldLevel := t.level
	t.xp += amount
	for t.xp >= xpPerLevelBase*t.level {
		t.xp -= xpPerLevelBase * t.level
		t.level++
	}
	newLevel := t.level
	xp := t.xp
	t.mu.Unlock()

	if newLevel > oldLevel {
		t.log.Info("player leveled up", "old_level", oldLevel, "new_level", newLevel)
		if t.bus != nil {
			if err := t.bus.Publish(ctx, event.NewPlayerLeveledUpEvent(oldLevel, newLevel, xp)); err != nil {
				t.log.Warn("failed to publish level-up event", "error", err)
			}
		}
	}
}

// AwardHarvest grants experience proportional to the harvest score
func (t *Tracker) AwardHarvest(ctx context.Context, score int) {
	t.AddXP(ctx, score/10)
}

// State returns the current level and experience for serialization
func (t *Tracker) State() (level, xp int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.level, t.xp
}

// Restore replaces the tracker state from a snapshot
func (t *Tracker) Restore(level, xp int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if level < 1 {
		level = 1
	}
	if xp < 0 {
		xp = 0
	}
	t.level = level
	t.xp = xp
}
