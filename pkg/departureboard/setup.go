package departureboard

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/travigo/togtider/pkg/banenor"
	"github.com/travigo/togtider/pkg/station"
)

// FileFetcher reads a previously saved timetable document instead of calling the API
type FileFetcher struct {
	Path string
}

func (f FileFetcher) FetchTimetable(ctx context.Context) (string, error) {
	contents, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read timetable file %s: %w", f.Path, err)
	}

	return string(contents), nil
}

// Setup loads the station and wires a board to either the upstream API or a local file
func Setup(stationPath string, timetableFile string) (*Board, *station.Station, error) {
	s, err := station.Load(stationPath)
	if err != nil {
		return nil, nil, err
	}

	var fetcher Fetcher
	if timetableFile != "" {
		fetcher = FileFetcher{Path: timetableFile}
	} else {
		client, err := banenor.NewClientFromEnvironment(s.Request)
		if err != nil {
			return nil, nil, err
		}
		fetcher = client
	}

	board, err := NewBoard(s, fetcher, log.Logger.With().Str("station", s.Identifier).Logger())
	if err != nil {
		return nil, nil, err
	}

	return board, s, nil
}
