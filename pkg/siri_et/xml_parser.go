package siri_et

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/travigo/togtider/pkg/ctdf"
	"golang.org/x/net/html/charset"
)

type SkipReason string

const (
	SkipReasonNoDirection          SkipReason = "no-direction"
	SkipReasonUnsupportedDirection SkipReason = "unsupported-direction"
	SkipReasonNoRecordedCalls      SkipReason = "no-recorded-calls"
	SkipReasonOtherStop            SkipReason = "other-stop"
	SkipReasonNoAimedTime          SkipReason = "no-aimed-time"
	SkipReasonInvalidAimedTime     SkipReason = "invalid-aimed-time"
)

// Skip records a journey or call that was dropped without failing the parse
type Skip struct {
	Reason SkipReason
	Detail string
}

type ParseResult struct {
	Departures   *ctdf.DepartureSet
	JourneyCount int
	Skipped      []Skip
}

func (r *ParseResult) SkippedCount(reason SkipReason) int {
	count := 0
	for _, skip := range r.Skipped {
		if skip.Reason == reason {
			count++
		}
	}

	return count
}

func (r *ParseResult) skip(reason SkipReason, detail string) {
	r.Skipped = append(r.Skipped, Skip{Reason: reason, Detail: detail})
}

// StationMatcher decides which calls belong to the monitored station and which way they travel
type StationMatcher interface {
	IsStopPoint(stopRef string) bool
	ClassifyDirection(directionRef string) ctdf.Direction
}

type Parser struct {
	Station StationMatcher

	// Also read EstimatedCalls, using ExpectedDepartureTime as the actual time
	IncludeEstimatedCalls bool

	Logger zerolog.Logger
}

func NewParser(station StationMatcher, logger zerolog.Logger) *Parser {
	return &Parser{
		Station: station,
		Logger:  logger,
	}
}

// Parse extracts the station departures from a SIRI estimated timetable document.
// Only an empty or malformed document is an error, data quality problems are recorded as skips.
func (p *Parser) Parse(xmlText string) (*ParseResult, error) {
	if xmlText == "" {
		p.Logger.Error().Msg("Empty timetable document provided")
		return nil, &InputError{Reason: "document is empty"}
	}

	result := &ParseResult{
		Departures: ctdf.NewDepartureSet(),
	}

	// Files saved on Windows often start with a UTF-8 byte order mark
	xmlText = strings.TrimPrefix(xmlText, "\ufeff")

	d := xml.NewDecoder(strings.NewReader(xmlText))
	d.CharsetReader = charset.NewReaderLabel

	rootSeen := false
	depth := 0

	for {
		tok, err := d.Token()
		if tok == nil && err == io.EOF {
			// EOF means we're done.
			break
		} else if err != nil {
			p.Logger.Error().Err(err).Msg("Error decoding timetable token")
			return nil, &MalformedInputError{Err: err}
		}

		switch ty := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				if rootSeen {
					return nil, &MalformedInputError{Err: errors.New("junk after document element")}
				}
				rootSeen = true

				if ty.Name.Local != "Siri" || ty.Name.Space != Namespace {
					p.Logger.Warn().Str("root", ty.Name.Local).Str("namespace", ty.Name.Space).Msg("Unexpected XML root element")
				}
			}

			if ty.Name.Local == "EstimatedVehicleJourney" {
				var journey EstimatedVehicleJourney

				if err = d.DecodeElement(&journey, &ty); err != nil {
					p.Logger.Error().Err(err).Msg("Error decoding EstimatedVehicleJourney")
					return nil, &MalformedInputError{Err: err}
				}

				result.JourneyCount += 1
				p.processJourney(result, &journey)
			} else {
				depth += 1
			}
		case xml.EndElement:
			depth -= 1
		case xml.CharData:
			if depth == 0 && len(strings.TrimSpace(string(ty))) > 0 {
				return nil, &MalformedInputError{Err: errors.New("text outside of document element")}
			}
		}
	}

	if !rootSeen {
		return nil, &MalformedInputError{Err: errors.New("no document element found")}
	}

	p.Logger.Info().
		Int("journeys", result.JourneyCount).
		Int("northbound", len(result.Departures.Get(ctdf.DirectionNorthbound))).
		Int("southbound", len(result.Departures.Get(ctdf.DirectionSouthbound))).
		Int("skipped", len(result.Skipped)).
		Msg("Parsed estimated timetable")

	return result, nil
}

func (p *Parser) processJourney(result *ParseResult, journey *EstimatedVehicleJourney) {
	if journey.DirectionRef == nil {
		p.Logger.Warn().Str("line", journey.LineRef).Msg("Journey without DirectionRef found, skipping")
		result.skip(SkipReasonNoDirection, journey.FramedVehicleJourneyRef.DatedVehicleJourneyRef)
		return
	}

	directionRef := strings.TrimSpace(*journey.DirectionRef)
	direction := p.Station.ClassifyDirection(directionRef)

	if !direction.IsValid() {
		p.Logger.Warn().Str("directionref", directionRef).Msg("Direction classified to an unsupported value, skipping")
		result.skip(SkipReasonUnsupportedDirection, directionRef)
		return
	}

	destination := strings.TrimSpace(journey.DestinationName)
	if destination == "" {
		destination = ctdf.UnknownDestination
	}

	if journey.RecordedCalls == nil {
		p.Logger.Warn().Str("destination", destination).Msg("No RecordedCalls found for journey")
		result.skip(SkipReasonNoRecordedCalls, destination)
		return
	}

	for _, call := range journey.RecordedCalls.RecordedCall {
		p.processCall(result, direction, destination, call.StopPointRef, call.AimedDepartureTime, call.ActualDepartureTime)
	}

	if p.IncludeEstimatedCalls && journey.EstimatedCalls != nil {
		for _, call := range journey.EstimatedCalls.EstimatedCall {
			p.processCall(result, direction, destination, call.StopPointRef, call.AimedDepartureTime, call.ExpectedDepartureTime)
		}
	}

	p.Logger.Debug().Str("direction", string(direction)).Str("destination", destination).Msg("Processed journey")
}

func (p *Parser) processCall(result *ParseResult, direction ctdf.Direction, destination string, stopRef string, aimed string, actual string) {
	stopRef = strings.TrimSpace(stopRef)

	// Calls at any other stop belong to a different platform
	if !p.Station.IsStopPoint(stopRef) {
		result.skip(SkipReasonOtherStop, stopRef)
		return
	}

	aimed = strings.TrimSpace(aimed)
	if aimed == "" {
		p.Logger.Warn().Str("destination", destination).Msg("Skipping departure without AimedDepartureTime")
		result.skip(SkipReasonNoAimedTime, destination)
		return
	}

	aimedTime, err := parseTimestamp(aimed)
	if err != nil {
		p.Logger.Warn().Err(err).Str("aimed", aimed).Msg("Skipping departure with invalid AimedDepartureTime")
		result.skip(SkipReasonInvalidAimedTime, aimed)
		return
	}

	record := ctdf.DepartureRecord{
		StopRef:     stopRef,
		AimedTime:   aimedTime,
		Direction:   direction,
		Destination: destination,
	}

	actual = strings.TrimSpace(actual)
	if actual != "" {
		actualTime, err := parseTimestamp(actual)
		if err != nil {
			p.Logger.Warn().Err(err).Str("actual", actual).Msg("Ignoring invalid actual departure time")
		} else {
			record.ActualTime = &actualTime
		}
	}

	if err := result.Departures.Append(record); err != nil {
		p.Logger.Error().Err(err).Str("stopref", stopRef).Msg("Failed to add departure")
		return
	}

	p.Logger.Debug().Str("direction", string(direction)).Str("destination", destination).Msg("Added departure")
}

// Timestamps must carry a UTC offset, fractional seconds are accepted
func parseTimestamp(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}
