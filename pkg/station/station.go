package station

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	iso8601 "github.com/senseyeio/duration"
	"github.com/travigo/togtider/pkg/ctdf"
	"github.com/travigo/togtider/pkg/util"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "data/stations/jattavagen.yaml"

// Station holds everything the departure pipeline needs to know about the monitored station.
// None of these values are hardcoded in the pipeline itself.
type Station struct {
	Identifier string `yaml:"Identifier"`
	Name       string `yaml:"Name"`

	StopPointRefs           []string `yaml:"StopPointRefs"`
	NorthboundDirectionRefs []string `yaml:"NorthboundDirectionRefs"`

	CorrectionOffset string `yaml:"CorrectionOffset"`
	Timezone         string `yaml:"Timezone"`

	IncludeEstimatedCalls bool `yaml:"IncludeEstimatedCalls"`

	Request Request `yaml:"Request"`
}

// Request describes the upstream estimated timetable subscription for the station
type Request struct {
	OperatorRef     string `yaml:"OperatorRef"`
	LineRef         string `yaml:"LineRef"`
	DirectionRef    string `yaml:"DirectionRef"`
	StopPointRef    string `yaml:"StopPointRef"`
	PreviewInterval string `yaml:"PreviewInterval"`
}

func Load(path string) (*Station, error) {
	log.Debug().Str("path", path).Msg("Loading station file")

	stationYaml, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read station file %s: %w", path, err)
	}

	return Parse(stationYaml)
}

func Parse(stationYaml []byte) (*Station, error) {
	var station Station
	if err := yaml.Unmarshal(stationYaml, &station); err != nil {
		return nil, fmt.Errorf("failed to decode station file: %w", err)
	}

	station.applyEnvironment(util.GetEnvironmentVariables())

	if err := station.Validate(); err != nil {
		return nil, err
	}

	return &station, nil
}

func (s *Station) applyEnvironment(env map[string]string) {
	if env["TOGTIDER_CORRECTION_OFFSET"] != "" {
		s.CorrectionOffset = env["TOGTIDER_CORRECTION_OFFSET"]
	}

	if env["TOGTIDER_TIMEZONE"] != "" {
		s.Timezone = env["TOGTIDER_TIMEZONE"]
	}
}

func (s *Station) Validate() error {
	if len(s.StopPointRefs) == 0 {
		return errors.New("station must list at least one StopPointRef")
	}

	if len(s.NorthboundDirectionRefs) == 0 {
		return errors.New("station must list at least one NorthboundDirectionRef")
	}

	if _, err := s.Offset(); err != nil {
		return err
	}

	if _, err := s.Location(); err != nil {
		return err
	}

	if s.Request.PreviewInterval != "" {
		if _, err := iso8601.ParseISO8601(s.Request.PreviewInterval); err != nil {
			return fmt.Errorf("invalid PreviewInterval %q: %w", s.Request.PreviewInterval, err)
		}
	}

	return nil
}

// Offset returns the configured correction offset.
// The value is an ISO 8601 duration which may be prefixed with '-'.
func (s *Station) Offset() (time.Duration, error) {
	return ParseOffset(s.CorrectionOffset)
}

// Location returns the timezone departure times are rendered in.
// A nil location keeps the UTC offset supplied by the feed.
func (s *Station) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return nil, nil
	}

	location, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid Timezone %q: %w", s.Timezone, err)
	}

	return location, nil
}

func (s *Station) IsStopPoint(stopRef string) bool {
	return slices.Contains(s.StopPointRefs, stopRef)
}

// ClassifyDirection maps a raw direction code to a direction.
// Known northbound codes are northbound, any other value is southbound.
func (s *Station) ClassifyDirection(directionRef string) ctdf.Direction {
	if slices.Contains(s.NorthboundDirectionRefs, directionRef) {
		return ctdf.DirectionNorthbound
	}

	return ctdf.DirectionSouthbound
}

func ParseOffset(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	negative := strings.HasPrefix(value, "-")
	value = strings.TrimPrefix(value, "-")

	isoDuration, err := iso8601.ParseISO8601(value)
	if err != nil {
		return 0, fmt.Errorf("invalid CorrectionOffset %q: %w", value, err)
	}

	// Shift from a fixed UTC reference so day components are always 24 hours
	reference := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	offset := isoDuration.Shift(reference).Sub(reference)

	if negative {
		offset = -offset
	}

	return offset, nil
}
