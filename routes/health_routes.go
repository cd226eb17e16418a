package routes

import (
	"github.com/ahmedsamir45/big-mac-index/controllers"

	"github.com/gofiber/fiber/v2"
)

func RegisterHealthRoutes(app *fiber.App) {
	app.Get("/healthz", controllers.Health)
	app.Get("/readyz", controllers.Ready)
}
