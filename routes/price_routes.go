package routes

import (
	"github.com/ahmedsamir45/big-mac-index/controllers"

	"github.com/gofiber/fiber/v2"
)

func RegisterPriceRoutes(app *fiber.App) {
	app.Get("/data", controllers.GetMapData)                // snapshot for the map
	app.Get("/country/:code", controllers.GetCountryDetail) // one country's history
	app.Get("/chart_data", controllers.GetChartData)        // ranking, series, scatter
}
