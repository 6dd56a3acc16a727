package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/togtider/pkg/api/routes"
	"github.com/travigo/togtider/pkg/departureboard"
)

func NewApp(board *departureboard.Board, stationName string) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	webApp.Get("version", routes.APIVersion)

	routes.DeparturesRouter(webApp.Group("/departures"), &routes.Departures{
		Board:       board,
		StationName: stationName,
	})

	return webApp
}

func SetupServer(listen string, board *departureboard.Board, stationName string) error {
	return NewApp(board, stationName).Listen(listen)
}
