package departureboard

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kr/pretty"
	"github.com/travigo/togtider/pkg/ctdf"
	"github.com/urfave/cli/v2"
)

var timetableFileFlag = &cli.StringFlag{
	Name:  "file",
	Usage: "read the timetable XML from a file instead of the API",
}

func RegisterCLI() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "departures",
			Usage: "Print the upcoming departures for the station",
			Flags: []cli.Flag{
				timetableFileFlag,
				&cli.BoolFlag{
					Name:  "json",
					Usage: "output the departure board as JSON",
				},
			},
			Action: func(c *cli.Context) error {
				board, s, err := Setup(c.String("station"), c.String("file"))
				if err != nil {
					return err
				}

				display, err := board.Generate(c.Context)
				if err != nil {
					return err
				}

				if c.Bool("json") {
					return printJSON(display, true)
				}

				printDisplaySet(s.Name, display)

				return nil
			},
		},
		{
			Name:  "tool",
			Usage: "Run the departures tool and print its JSON envelope",
			Flags: []cli.Flag{
				timetableFileFlag,
				&cli.BoolFlag{
					Name:  "json",
					Usage: "output compact JSON instead of pretty JSON",
				},
			},
			Action: func(c *cli.Context) error {
				board, s, err := Setup(c.String("station"), c.String("file"))
				if err != nil {
					return err
				}

				response, toolError := board.RunTool(c.Context, s.Name)
				if toolError != nil {
					fmt.Println("Error:", toolError.Message)
					return cli.Exit("", 1)
				}

				return printJSON(response, !c.Bool("json"))
			},
		},
		{
			Name:  "parse",
			Usage: "Dump the parsed departures of a saved timetable document",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "file",
					Usage:    "timetable XML file",
					Required: true,
				},
			},
			Action: func(c *cli.Context) error {
				board, _, err := Setup(c.String("station"), c.String("file"))
				if err != nil {
					return err
				}

				xmlText, err := board.Fetcher.FetchTimetable(c.Context)
				if err != nil {
					return err
				}

				result, err := board.Parser.Parse(xmlText)
				if err != nil {
					return err
				}

				pretty.Println(result)

				upcoming := board.Build(result.Departures.Clone())
				pretty.Println(upcoming)

				return nil
			},
		},
	}
}

func printJSON(value interface{}, indent bool) error {
	var output []byte
	var err error

	if indent {
		output, err = json.MarshalIndent(value, "", "  ")
	} else {
		output, err = json.Marshal(value)
	}

	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	_, err = fmt.Fprintln(os.Stdout, string(output))
	return err
}

func printDisplaySet(stationName string, display *ctdf.DisplaySet) {
	fmt.Printf("Departures from %s:\n", stationName)

	for _, direction := range ctdf.Directions {
		records := display.Get(direction)

		fmt.Printf("\n%s\n", direction)

		if len(records) == 0 {
			fmt.Println("  No departures found.")
			continue
		}

		for _, record := range records {
			fmt.Printf("  Aimed: %s, Actual: %s, %s (%s)\n", record.Aimed, record.Actual, record.Destination, record.Status)
		}
	}
}
