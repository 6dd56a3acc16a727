package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/togtider/pkg/ctdf"
	"github.com/travigo/togtider/pkg/departureboard"
)

type Departures struct {
	Board       *departureboard.Board
	StationName string
}

func DeparturesRouter(router fiber.Router, departures *Departures) {
	router.Get("/", departures.getDepartureBoard)
	router.Get("/records", departures.getDepartureRecords)
	router.Get("/tool", departures.getToolResponse)
}

func (d *Departures) getDepartureBoard(c *fiber.Ctx) error {
	display, err := d.Board.Generate(c.UserContext())
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(display)
}

func (d *Departures) getDepartureRecords(c *fiber.Ctx) error {
	set, err := d.Board.UpcomingDepartures(c.UserContext())
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	records := map[string]interface{}{}
	for _, direction := range ctdf.Directions {
		reduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: []string{"basic"},
		}, set.Get(direction))

		if err != nil {
			c.Status(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Sherrif could not reduce departure records",
			})
		}

		records[string(direction)] = reduced
	}

	return c.JSON(records)
}

// Tool callers expect failures as data so errors are still returned with 200
func (d *Departures) getToolResponse(c *fiber.Ctx) error {
	response, toolError := d.Board.RunTool(c.UserContext(), d.StationName)
	if toolError != nil {
		return c.JSON(toolError)
	}

	return c.JSON(response)
}
