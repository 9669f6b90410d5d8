package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ilerise/farmsim/internal/domain"
)

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Common event types
const (
	DayChanged      Type = "clock.day_changed"
	SeasonChanged   Type = "clock.season_changed"
	ResourceChanged Type = "ledger.resource_changed"
	ActionCompleted Type = "action.completed"
	HarvestDone     Type = "plot.harvested"
	MarketUpdated   Type = "market.updated"
	SyncFailed      Type = "persistence.sync_failed"
	PlayerLeveledUp Type = "player.leveled_up"
)

// Typed event payloads for type safety

// DayChangedPayloadV1 is the typed payload for day change events
type DayChangedPayloadV1 struct {
	Day    int           `json:"day"`
	Season domain.Season `json:"season"`
}

// SeasonChangedPayloadV1 is the typed payload for season change events
type SeasonChangedPayloadV1 struct {
	Day    int           `json:"day"`
	Season domain.Season `json:"season"`
}

// ResourceChangedPayloadV1 is the typed payload for ledger mutations
type ResourceChangedPayloadV1 struct {
	Kind   domain.TransactionKind `json:"kind"`
	Reason string                 `json:"reason"`
	Deltas domain.Cost            `json:"deltas"`
}

// ActionCompletedPayloadV1 is the typed payload for completed actions
type ActionCompletedPayloadV1 struct {
	ActionID string                `json:"action_id"`
	PlotID   int                   `json:"plot_id"`
	Day      int                   `json:"day"`
	Changes  domain.AppliedChanges `json:"changes"`
}

// HarvestPayloadV1 is the typed payload for harvest completion events
type HarvestPayloadV1 struct {
	PlotID int     `json:"plot_id"`
	CropID string  `json:"crop_id"`
	Yield  float64 `json:"yield"`
	Score  int     `json:"score"`
	Stars  int     `json:"stars"`
	Day    int     `json:"day"`
}

// SyncFailedPayloadV1 is the typed payload for persistence failures
type SyncFailedPayloadV1 struct {
	Store    string    `json:"store"`
	Error    string    `json:"error"`
	Occurred time.Time `json:"occurred"`
}

// PlayerLeveledUpPayloadV1 is the typed payload for level-up events
type PlayerLeveledUpPayloadV1 struct {
	OldLevel int `json:"old_level"`
	NewLevel int `json:"new_level"`
	XP       int `json:"xp"`
}

// Type-safe event constructors

// NewDayChangedEvent creates a new day change event
func NewDayChangedEvent(day int, season domain.Season) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DayChanged,
		Payload: DayChangedPayloadV1{Day: day, Season: season},
	}
}

// NewSeasonChangedEvent creates a new season change event
func NewSeasonChangedEvent(day int, season domain.Season) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SeasonChanged,
		Payload: SeasonChangedPayloadV1{Day: day, Season: season},
	}
}

// NewResourceChangedEvent creates a new resource change event
func NewResourceChangedEvent(kind domain.TransactionKind, reason string, deltas domain.Cost) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ResourceChanged,
		Payload: ResourceChangedPayloadV1{Kind: kind, Reason: reason, Deltas: deltas},
	}
}

// NewActionCompletedEvent creates a new action completed event
func NewActionCompletedEvent(actionID string, plotID, day int, changes domain.AppliedChanges) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ActionCompleted,
		Payload: ActionCompletedPayloadV1{ActionID: actionID, PlotID: plotID, Day: day, Changes: changes},
	}
}

// NewHarvestEvent creates a new harvest completion event
func NewHarvestEvent(plotID int, cropID string, yield float64, score, stars, day int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    HarvestDone,
		Payload: HarvestPayloadV1{PlotID: plotID, CropID: cropID, Yield: yield, Score: score, Stars: stars, Day: day},
	}
}

// NewSyncFailedEvent creates a new persistence failure event
func NewSyncFailedEvent(store string, err error) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SyncFailed,
		Payload: SyncFailedPayloadV1{Store: store, Error: err.Error(), Occurred: time.Now()},
	}
}

// NewPlayerLeveledUpEvent creates a new level-up event
func NewPlayerLeveledUpEvent(oldLevel, newLevel, xp int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PlayerLeveledUp,
		Payload: PlayerLeveledUpPayloadV1{OldLevel: oldLevel, NewLevel: newLevel, XP: xp},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run
// synchronously in subscription order; errors are collected so one
// failing observer never prevents the others from running.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("encountered %d errors while handling event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
