package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/togtider/pkg/api"
	"github.com/travigo/togtider/pkg/departureboard"
	"github.com/travigo/togtider/pkg/station"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("TOGTIDER_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("TOGTIDER_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	commands := []*cli.Command{
		api.RegisterCLI(),
	}
	commands = append(commands, departureboard.RegisterCLI()...)

	app := &cli.App{
		Name:        "togtider",
		Description: "Upcoming train departures for a single station from SIRI estimated timetables",

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "station",
				Value:   station.DefaultConfigPath,
				Usage:   "station configuration file",
				EnvVars: []string{"TOGTIDER_STATION_CONFIG"},
			},
		},

		Commands: commands,
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
