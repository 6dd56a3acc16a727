package departureboard

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/travigo/togtider/pkg/ctdf"
	"github.com/travigo/togtider/pkg/siri_et"
	"github.com/travigo/togtider/pkg/station"
)

// Fetcher supplies a SIRI estimated timetable document
type Fetcher interface {
	FetchTimetable(ctx context.Context) (string, error)
}

// Board runs one invocation of the departure pipeline for a station.
// The same correction offset drives both the filter boundary and the rendered times.
type Board struct {
	Fetcher Fetcher
	Parser  *siri_et.Parser

	CorrectionOffset time.Duration
	Location         *time.Location

	Now    func() time.Time
	Logger zerolog.Logger
}

func NewBoard(s *station.Station, fetcher Fetcher, logger zerolog.Logger) (*Board, error) {
	offset, err := s.Offset()
	if err != nil {
		return nil, err
	}

	location, err := s.Location()
	if err != nil {
		return nil, err
	}

	parser := siri_et.NewParser(s, logger)
	parser.IncludeEstimatedCalls = s.IncludeEstimatedCalls

	return &Board{
		Fetcher:          fetcher,
		Parser:           parser,
		CorrectionOffset: offset,
		Location:         location,
		Now:              time.Now,
		Logger:           logger,
	}, nil
}

func (b *Board) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}

	return b.Now()
}

// Build filters, orders and formats an already parsed set using a single reference time
func (b *Board) Build(set *ctdf.DepartureSet) *ctdf.DisplaySet {
	now := b.now()

	b.filter(set, now)

	return Format(set, b.CorrectionOffset, b.Location, now)
}

// Generate performs the complete fetch, parse, filter and format invocation
func (b *Board) Generate(ctx context.Context) (*ctdf.DisplaySet, error) {
	now := b.now()

	set, err := b.upcoming(ctx, now)
	if err != nil {
		return nil, err
	}

	return Format(set, b.CorrectionOffset, b.Location, now), nil
}

// UpcomingDepartures returns the filtered and ordered records without formatting them
func (b *Board) UpcomingDepartures(ctx context.Context) (*ctdf.DepartureSet, error) {
	return b.upcoming(ctx, b.now())
}

func (b *Board) upcoming(ctx context.Context, now time.Time) (*ctdf.DepartureSet, error) {
	xmlText, err := b.Fetcher.FetchTimetable(ctx)
	if err != nil {
		return nil, err
	}

	result, err := b.Parser.Parse(xmlText)
	if err != nil {
		return nil, err
	}

	return b.filter(result.Departures, now), nil
}

func (b *Board) filter(set *ctdf.DepartureSet, now time.Time) *ctdf.DepartureSet {
	parsed := set.Len()

	FilterAndSort(set, now, b.CorrectionOffset)

	b.Logger.Debug().
		Int("parsed", parsed).
		Int("upcoming", set.Len()).
		Str("offset", b.CorrectionOffset.String()).
		Msg("Filtered departures")

	return set
}
