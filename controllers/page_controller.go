package controllers

import "github.com/gofiber/fiber/v2"

// HTML shells; the pages fetch their data from the JSON endpoints.

func Index(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{"css": "index", "js": "index"})
}

func Charts(c *fiber.Ctx) error {
	return c.Render("charts", fiber.Map{"css": "charts", "js": "charts"})
}

func Documentation(c *fiber.Ctx) error {
	return c.Render("documentation", fiber.Map{"css": "documentation"})
}
