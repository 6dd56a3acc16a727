package ctdf

import (
	"encoding/json"
	"time"
)

type DepartureStatus string

const (
	DepartureStatusOnSchedule DepartureStatus = "on schedule"
	DepartureStatusDelayed    DepartureStatus = "delayed"
)

// DisplayRecord is the presentation form of a departure, times rendered as 15:04
type DisplayRecord struct {
	Aimed       string          `json:"aimed"`
	Actual      string          `json:"actual"`
	Destination string          `json:"destination"`
	Status      DepartureStatus `json:"status"`
}

// DisplaySet is the final departure board. It is never fed back into the pipeline.
type DisplaySet struct {
	Departures  map[Direction][]DisplayRecord
	GeneratedAt time.Time
}

func NewDisplaySet(generatedAt time.Time) *DisplaySet {
	display := &DisplaySet{
		Departures:  map[Direction][]DisplayRecord{},
		GeneratedAt: generatedAt,
	}

	for _, direction := range Directions {
		display.Departures[direction] = []DisplayRecord{}
	}

	return display
}

func (d *DisplaySet) Get(direction Direction) []DisplayRecord {
	return d.Departures[direction]
}

// MarshalJSON flattens the board so each direction becomes a top level key next to the timestamp
func (d DisplaySet) MarshalJSON() ([]byte, error) {
	board := map[string]interface{}{
		"timestamp": d.GeneratedAt.Format(time.RFC3339),
	}

	for _, direction := range Directions {
		records := d.Departures[direction]
		if records == nil {
			records = []DisplayRecord{}
		}

		board[string(direction)] = records
	}

	return json.Marshal(board)
}
