package departureboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/togtider/pkg/ctdf"
	"github.com/travigo/togtider/pkg/station"
)

type staticFetcher struct {
	xmlText string
	err     error
}

func (f staticFetcher) FetchTimetable(ctx context.Context) (string, error) {
	return f.xmlText, f.err
}

func testStation(t *testing.T) *station.Station {
	s := &station.Station{
		Identifier:              "no-jattavagen",
		Name:                    "Jåttåvågen",
		StopPointRefs:           []string{"NSR:Quay:609", "NSR:Quay:607"},
		NorthboundDirectionRefs: []string{"STV"},
		CorrectionOffset:        "PT2H",
	}
	require.NoError(t, s.Validate())

	return s
}

func newTestBoard(t *testing.T, fetcher Fetcher) *Board {
	board, err := NewBoard(testStation(t), fetcher, zerolog.Nop())
	require.NoError(t, err)

	board.Now = func() time.Time { return testNow }

	return board
}

type testCall struct {
	stopRef string
	minutes int
	// Minutes of delay on the actual departure, negative for none
	delay int
}

func timetable(journeys ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<Siri xmlns="http://www.siri.org.uk/siri" version="2.0">
  <ServiceDelivery>
    <EstimatedTimetableDelivery>
      <EstimatedJourneyVersionFrame>` + strings.Join(journeys, "\n") + `</EstimatedJourneyVersionFrame>
    </EstimatedTimetableDelivery>
  </ServiceDelivery>
</Siri>`
}

func timetableJourney(directionRef string, destination string, calls ...testCall) string {
	var recordedCalls strings.Builder
	for _, call := range calls {
		recordedCalls.WriteString("<RecordedCall>")
		fmt.Fprintf(&recordedCalls, "<StopPointRef>%s</StopPointRef>", call.stopRef)
		fmt.Fprintf(&recordedCalls, "<AimedDepartureTime>%s</AimedDepartureTime>", feedTime(call.minutes).Format(time.RFC3339))
		if call.delay >= 0 {
			fmt.Fprintf(&recordedCalls, "<ActualDepartureTime>%s</ActualDepartureTime>", feedTime(call.minutes+call.delay).Format(time.RFC3339))
		}
		recordedCalls.WriteString("</RecordedCall>")
	}

	return fmt.Sprintf(`<EstimatedVehicleJourney>
  <DirectionRef>%s</DirectionRef>
  <DestinationName>%s</DestinationName>
  <RecordedCalls>%s</RecordedCalls>
</EstimatedVehicleJourney>`, directionRef, destination, recordedCalls.String())
}

func TestBoardScenarios(t *testing.T) {
	t.Run("northbound departure on schedule", func(t *testing.T) {
		board := newTestBoard(t, staticFetcher{xmlText: timetable(
			timetableJourney("STV", "Stavanger", testCall{stopRef: "NSR:Quay:609", minutes: 10, delay: -1}),
		)})

		display, err := board.Generate(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []ctdf.DisplayRecord{
			{Aimed: "10:10", Actual: "10:10", Destination: "Stavanger", Status: ctdf.DepartureStatusOnSchedule},
		}, display.Get(ctdf.DirectionNorthbound))
		assert.Empty(t, display.Get(ctdf.DirectionSouthbound))
	})

	t.Run("southbound departure", func(t *testing.T) {
		board := newTestBoard(t, staticFetcher{xmlText: timetable(
			timetableJourney("EGS", "Egersund", testCall{stopRef: "NSR:Quay:609", minutes: 10, delay: -1}),
		)})

		display, err := board.Generate(context.Background())
		require.NoError(t, err)

		assert.Empty(t, display.Get(ctdf.DirectionNorthbound))
		assert.Len(t, display.Get(ctdf.DirectionSouthbound), 1)
	})

	t.Run("departure in the past", func(t *testing.T) {
		board := newTestBoard(t, staticFetcher{xmlText: timetable(
			timetableJourney("STV", "Stavanger", testCall{stopRef: "NSR:Quay:609", minutes: -10, delay: -1}),
		)})

		display, err := board.Generate(context.Background())
		require.NoError(t, err)

		assert.Empty(t, display.Get(ctdf.DirectionNorthbound))
		assert.Empty(t, display.Get(ctdf.DirectionSouthbound))
	})

	t.Run("departures out of document order", func(t *testing.T) {
		board := newTestBoard(t, staticFetcher{xmlText: timetable(
			timetableJourney("EGS", "Egersund", testCall{stopRef: "NSR:Quay:609", minutes: 20, delay: -1}),
			timetableJourney("EGS", "Nærbø", testCall{stopRef: "NSR:Quay:607", minutes: 10, delay: -1}),
		)})

		display, err := board.Generate(context.Background())
		require.NoError(t, err)

		southbound := display.Get(ctdf.DirectionSouthbound)
		require.Len(t, southbound, 2)
		assert.Equal(t, "10:10", southbound[0].Aimed)
		assert.Equal(t, "Nærbø", southbound[0].Destination)
		assert.Equal(t, "10:20", southbound[1].Aimed)
	})

	t.Run("delayed departure", func(t *testing.T) {
		board := newTestBoard(t, staticFetcher{xmlText: timetable(
			timetableJourney("STV", "Stavanger", testCall{stopRef: "NSR:Quay:609", minutes: 10, delay: 2}),
		)})

		display, err := board.Generate(context.Background())
		require.NoError(t, err)

		northbound := display.Get(ctdf.DirectionNorthbound)
		require.Len(t, northbound, 1)
		assert.Equal(t, "10:10", northbound[0].Aimed)
		assert.Equal(t, "10:12", northbound[0].Actual)
		assert.Equal(t, ctdf.DepartureStatusDelayed, northbound[0].Status)
	})

	t.Run("call at another stop", func(t *testing.T) {
		board := newTestBoard(t, staticFetcher{xmlText: timetable(
			timetableJourney("STV", "Stavanger", testCall{stopRef: "NSR:Quay:583", minutes: 10, delay: -1}),
		)})

		display, err := board.Generate(context.Background())
		require.NoError(t, err)

		assert.Empty(t, display.Get(ctdf.DirectionNorthbound))
		assert.Empty(t, display.Get(ctdf.DirectionSouthbound))
	})
}

func TestBoardErrors(t *testing.T) {
	board := newTestBoard(t, staticFetcher{err: errors.New("connection refused")})

	_, err := board.Generate(context.Background())
	assert.EqualError(t, err, "connection refused")

	board = newTestBoard(t, staticFetcher{xmlText: "<Siri>"})

	_, err = board.UpcomingDepartures(context.Background())
	assert.Error(t, err)
}

func TestBoardBuild(t *testing.T) {
	board := newTestBoard(t, staticFetcher{})

	set := ctdf.NewDepartureSet()
	require.NoError(t, set.Append(record(ctdf.DirectionNorthbound, "Stavanger", 25)))
	require.NoError(t, set.Append(record(ctdf.DirectionNorthbound, "Stavanger", -25)))
	require.NoError(t, set.Append(record(ctdf.DirectionNorthbound, "Sandnes", 5)))

	display := board.Build(set)

	northbound := display.Get(ctdf.DirectionNorthbound)
	require.Len(t, northbound, 2)
	assert.Equal(t, "10:05", northbound[0].Aimed)
	assert.Equal(t, "10:25", northbound[1].Aimed)
	assert.Equal(t, testNow, display.GeneratedAt)
}

func TestBoardUpcomingDepartures(t *testing.T) {
	board := newTestBoard(t, staticFetcher{xmlText: timetable(
		timetableJourney("STV", "Stavanger",
			testCall{stopRef: "NSR:Quay:609", minutes: 30, delay: 1},
			testCall{stopRef: "NSR:Quay:607", minutes: -30, delay: -1},
		),
	)})

	set, err := board.UpcomingDepartures(context.Background())
	require.NoError(t, err)

	northbound := set.Get(ctdf.DirectionNorthbound)
	require.Len(t, northbound, 1)
	assert.True(t, feedTime(30).Equal(northbound[0].AimedTime))
	require.True(t, northbound[0].HasActualTime())
	assert.True(t, feedTime(31).Equal(*northbound[0].ActualTime))
}
