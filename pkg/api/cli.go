package api

import (
	"github.com/rs/zerolog/log"
	"github.com/travigo/togtider/pkg/departureboard"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the departures web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "file",
						Usage: "serve a saved timetable XML file instead of calling the API",
					},
				},
				Action: func(c *cli.Context) error {
					board, s, err := departureboard.Setup(c.String("station"), c.String("file"))
					if err != nil {
						return err
					}

					log.Info().Str("listen", c.String("listen")).Str("station", s.Name).Msg("Starting web api")

					return SetupServer(c.String("listen"), board, s.Name)
				},
			},
		},
	}
}
