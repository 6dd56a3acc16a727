package ctdf

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartureSetAppend(t *testing.T) {
	set := NewDepartureSet()

	assert.NotNil(t, set.Get(DirectionNorthbound))
	assert.NotNil(t, set.Get(DirectionSouthbound))
	assert.Equal(t, 0, set.Len())

	aimed := time.Date(2026, time.October, 18, 8, 10, 0, 0, time.UTC)

	require.NoError(t, set.Append(DepartureRecord{AimedTime: aimed, Direction: DirectionSouthbound, Destination: "Egersund"}))
	require.NoError(t, set.Append(DepartureRecord{AimedTime: aimed, Direction: DirectionNorthbound, Destination: "Stavanger"}))
	require.NoError(t, set.Append(DepartureRecord{AimedTime: aimed, Direction: DirectionSouthbound, Destination: "Nærbø"}))

	assert.Error(t, set.Append(DepartureRecord{AimedTime: aimed, Direction: "eastbound"}))
	assert.Error(t, set.Append(DepartureRecord{AimedTime: aimed}))

	assert.Equal(t, 3, set.Len())

	for _, direction := range Directions {
		for _, record := range set.Get(direction) {
			assert.Equal(t, direction, record.Direction)
		}
	}

	southbound := set.Get(DirectionSouthbound)
	require.Len(t, southbound, 2)
	assert.Equal(t, "Egersund", southbound[0].Destination)
	assert.Equal(t, "Nærbø", southbound[1].Destination)
}

func TestDepartureSetClone(t *testing.T) {
	set := NewDepartureSet()
	aimed := time.Date(2026, time.October, 18, 8, 10, 0, 0, time.UTC)
	actual := aimed.Add(2 * time.Minute)

	require.NoError(t, set.Append(DepartureRecord{AimedTime: aimed, ActualTime: &actual, Direction: DirectionNorthbound}))

	clone := set.Clone()
	clone.Departures[DirectionNorthbound] = clone.Departures[DirectionNorthbound][:0]

	assert.Len(t, set.Get(DirectionNorthbound), 1)
	assert.Empty(t, clone.Get(DirectionNorthbound))
	assert.NotNil(t, clone.Get(DirectionSouthbound))
}

func TestDepartureRecordEffectiveTime(t *testing.T) {
	aimed := time.Date(2026, time.October, 18, 8, 10, 0, 0, time.UTC)
	record := DepartureRecord{AimedTime: aimed}

	assert.Equal(t, aimed.Add(2*time.Hour), record.EffectiveTime(2*time.Hour))
	assert.Equal(t, aimed, record.EffectiveTime(0))
	assert.False(t, record.HasActualTime())
}

func TestDirection(t *testing.T) {
	assert.True(t, DirectionNorthbound.IsValid())
	assert.True(t, DirectionSouthbound.IsValid())
	assert.False(t, Direction("").IsValid())
	assert.False(t, Direction("Northbound").IsValid())
}

func TestDisplaySetJSON(t *testing.T) {
	display := NewDisplaySet(time.Date(2026, time.October, 18, 10, 0, 0, 0, time.FixedZone("", 2*60*60)))
	display.Departures[DirectionSouthbound] = append(display.Departures[DirectionSouthbound], DisplayRecord{
		Aimed:       "10:20",
		Actual:      "10:24",
		Destination: "Egersund",
		Status:      DepartureStatusDelayed,
	})

	// Buckets removed by a caller still serialise as empty arrays
	delete(display.Departures, DirectionNorthbound)

	output, err := json.Marshal(display)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"northbound": [],
		"southbound": [{"aimed": "10:20", "actual": "10:24", "destination": "Egersund", "status": "delayed"}],
		"timestamp": "2026-10-18T10:00:00+02:00"
	}`, string(output))
}
