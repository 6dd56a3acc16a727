package ctdf

import (
	"fmt"
	"time"
)

const UnknownDestination = "Unknown"

// DepartureRecord is a single scheduled call of a vehicle at the monitored station
type DepartureRecord struct {
	StopRef string `groups:"basic"`

	AimedTime  time.Time  `groups:"basic"`
	ActualTime *time.Time `groups:"basic"`

	Direction   Direction `groups:"basic"`
	Destination string    `groups:"basic"`
}

// EffectiveTime is the aimed departure time shifted by the station correction offset.
// Both filtering and ordering are based on it.
func (d DepartureRecord) EffectiveTime(offset time.Duration) time.Time {
	return d.AimedTime.Add(offset)
}

func (d DepartureRecord) HasActualTime() bool {
	return d.ActualTime != nil
}

// DepartureSet groups departure records by direction.
// Both direction buckets always exist, even when empty.
type DepartureSet struct {
	Departures map[Direction][]DepartureRecord `groups:"basic"`
}

func NewDepartureSet() *DepartureSet {
	set := &DepartureSet{
		Departures: map[Direction][]DepartureRecord{},
	}

	for _, direction := range Directions {
		set.Departures[direction] = []DepartureRecord{}
	}

	return set
}

// Append adds the record to the bucket matching its own direction
func (s *DepartureSet) Append(record DepartureRecord) error {
	if !record.Direction.IsValid() {
		return fmt.Errorf("departure record has unsupported direction %q", record.Direction)
	}

	s.Departures[record.Direction] = append(s.Departures[record.Direction], record)

	return nil
}

func (s *DepartureSet) Get(direction Direction) []DepartureRecord {
	return s.Departures[direction]
}

func (s *DepartureSet) Len() int {
	total := 0
	for _, records := range s.Departures {
		total += len(records)
	}

	return total
}

// Clone copies the bucket slices so the parsed set survives in-place filtering.
// Records themselves are never mutated so they are shared.
func (s *DepartureSet) Clone() *DepartureSet {
	clone := NewDepartureSet()

	for direction, records := range s.Departures {
		clone.Departures[direction] = append([]DepartureRecord{}, records...)
	}

	return clone
}
