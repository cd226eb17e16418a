package routes

import (
	"github.com/ahmedsamir45/big-mac-index/controllers"

	"github.com/gofiber/fiber/v2"
)

// RegisterPageRoutes serves the HTML pages plus their assets. The raw
// template files stay reachable under /templates.
func RegisterPageRoutes(app *fiber.App, viewsDir, staticDir string) {
	app.Get("/", controllers.Index)
	app.Get("/charts", controllers.Charts)
	app.Get("/documentation", controllers.Documentation)

	app.Static("/static", staticDir)
	app.Static("/templates", viewsDir)
}
