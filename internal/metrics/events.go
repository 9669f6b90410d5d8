package metrics

import (
	"context"

	"github.com/ilerise/farmsim/internal/domain"
	"github.com/ilerise/farmsim/internal/event"
	"github.com/ilerise/farmsim/internal/logger"
)

// EventMetricsCollector subscribes to simulation events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all event types the collector cares about
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.DayChanged,
		event.ResourceChanged,
		event.ActionCompleted,
		event.HarvestDone,
		event.SyncFailed,
		event.PlayerLeveledUp,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.DayChanged:
		DaysSimulated.Inc()

	case event.ResourceChanged:
		payload, err := event.DecodePayload[event.ResourceChangedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadMismatch, "type", evt.Type)
			return nil
		}
		for _, entry := range payload.Deltas {
			if entry.Category != domain.ResourceMoney {
				continue
			}
			switch payload.Kind {
			case domain.TransactionIncome:
				MoneyEarned.Add(entry.Quantity)
			case domain.TransactionExpense:
				MoneySpent.Add(entry.Quantity)
			}
		}

	case event.ActionCompleted:
		payload, err := event.DecodePayload[event.ActionCompletedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadMismatch, "type", evt.Type)
			return nil
		}
		ActionsCompleted.WithLabelValues(payload.ActionID).Inc()

	case event.HarvestDone:
		payload, err := event.DecodePayload[event.HarvestPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadMismatch, "type", evt.Type)
			return nil
		}
		Harvests.WithLabelValues(payload.CropID).Inc()
		HarvestYieldTonnes.WithLabelValues(payload.CropID).Add(payload.Yield)

	case event.SyncFailed:
		payload, err := event.DecodePayload[event.SyncFailedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadMismatch, "type", evt.Type)
			return nil
		}
		SyncFailures.WithLabelValues(payload.Store).Inc()

	case event.PlayerLeveledUp:
		payload, err := event.DecodePayload[event.PlayerLeveledUpPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadMismatch, "type", evt.Type)
			return nil
		}
		PlayerLevel.Set(float64(payload.NewLevel))
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
