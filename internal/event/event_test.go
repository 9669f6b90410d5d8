package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilerise/farmsim/internal/domain"
)

func TestMemoryBusPublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()

	var got []int
	bus.Subscribe(DayChanged, func(ctx context.Context, e Event) error {
		payload, err := DecodePayload[DayChangedPayloadV1](e.Payload)
		require.NoError(t, err)
		got = append(got, payload.Day)
		return nil
	})

	err := bus.Publish(context.Background(), NewDayChangedEvent(7, domain.SeasonDry))
	require.NoError(t, err)
	assert.Equal(t, []int{7}, got)
}

func TestMemoryBusNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	err := bus.Publish(context.Background(), NewDayChangedEvent(1, domain.SeasonRainy))
	assert.NoError(t, err)
}

func TestMemoryBusHandlerErrorsDoNotShortCircuit(t *testing.T) {
	bus := NewMemoryBus()

	calls := 0
	bus.Subscribe(HarvestDone, func(ctx context.Context, e Event) error {
		calls++
		return errors.New("observer one failed")
	})
	bus.Subscribe(HarvestDone, func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	err := bus.Publish(context.Background(), NewHarvestEvent(1, "maize", 4.2, 850, 2, 90))
	assert.Error(t, err)
	assert.Equal(t, 2, calls, "second handler must run despite the first failing")
}

func TestDecodePayloadJSONFallback(t *testing.T) {
	raw := map[string]interface{}{"day": float64(12), "season": "rainy"}

	payload, err := DecodePayload[DayChangedPayloadV1](raw)
	require.NoError(t, err)
	assert.Equal(t, 12, payload.Day)
	assert.Equal(t, domain.SeasonRainy, payload.Season)
}
