package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDowntimeEvents_ModernShape(t *testing.T) {
	raw := []byte(`[{"reason":"Tool Change","durationMinutes":25},{"reason":"Power Failure","durationMinutes":40.5}]`)

	events := NormalizeDowntimeEvents(raw)

	assert.Len(t, events, 2)
	assert.Equal(t, "Tool Change", events[0].Reason)
	assert.Equal(t, 25, events[0].DurationMinutes)
	assert.Equal(t, 40, events[1].DurationMinutes)
}

func TestNormalizeDowntimeEvents_LegacyKeys(t *testing.T) {
	// Older rows used "type" for the reason and "minutes" for the duration.
	raw := []byte(`[{"type":"Maintenance","minutes":15},{"minutes":10}]`)

	events := NormalizeDowntimeEvents(raw)

	assert.Len(t, events, 2)
	assert.Equal(t, "Maintenance", events[0].Reason)
	assert.Equal(t, 15, events[0].DurationMinutes)
	assert.Equal(t, "Other", events[1].Reason)
	assert.Equal(t, 10, events[1].DurationMinutes)
}

func TestNormalizeDowntimeEvents_MissingDuration(t *testing.T) {
	raw := []byte(`[{"reason":"No Operator"}]`)

	events := NormalizeDowntimeEvents(raw)

	assert.Len(t, events, 1)
	assert.Equal(t, 0, events[0].DurationMinutes)
}

func TestNormalizeDowntimeEvents_Garbage(t *testing.T) {
	assert.Nil(t, NormalizeDowntimeEvents(nil))
	assert.Nil(t, NormalizeDowntimeEvents([]byte("")))
	assert.Nil(t, NormalizeDowntimeEvents([]byte("not json")))
	assert.Nil(t, NormalizeDowntimeEvents([]byte(`{"reason":"object, not array"}`)))
}

func TestEfficiencyPercent(t *testing.T) {
	withTarget := &ProductionLogEntry{ActualQuantity: 90, TargetQuantity: 100}
	assert.InDelta(t, 90.0, withTarget.EfficiencyPercent(), 0.001)

	noTarget := &ProductionLogEntry{ActualQuantity: 90}
	assert.Equal(t, 0.0, noTarget.EfficiencyPercent())
}
