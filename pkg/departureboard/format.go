package departureboard

import (
	"time"

	"github.com/travigo/togtider/pkg/ctdf"
)

const displayTimeFormat = "15:04"

// Format renders every departure as corrected times of day with an on schedule/delayed status.
// A nil location keeps the UTC offset each timestamp was reported with.
func Format(set *ctdf.DepartureSet, correctionOffset time.Duration, location *time.Location, generatedAt time.Time) *ctdf.DisplaySet {
	display := ctdf.NewDisplaySet(generatedAt)

	for _, direction := range ctdf.Directions {
		for _, record := range set.Get(direction) {
			aimed := formatDepartureTime(record.AimedTime, correctionOffset, location)

			// No live estimate means we assume it is running on time
			actual := aimed
			if record.HasActualTime() {
				actual = formatDepartureTime(*record.ActualTime, correctionOffset, location)
			}

			status := ctdf.DepartureStatusOnSchedule
			if aimed != actual {
				status = ctdf.DepartureStatusDelayed
			}

			display.Departures[direction] = append(display.Departures[direction], ctdf.DisplayRecord{
				Aimed:       aimed,
				Actual:      actual,
				Destination: record.Destination,
				Status:      status,
			})
		}
	}

	return display
}

func formatDepartureTime(t time.Time, correctionOffset time.Duration, location *time.Location) string {
	corrected := t.Add(correctionOffset)

	if location != nil {
		corrected = corrected.In(location)
	}

	return corrected.Format(displayTimeFormat)
}
